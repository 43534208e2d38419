package product

import (
	"context"

	"loan-marketplace/internal/domain/borrower"
)

type Repository interface {
	// MatchEligible returns the active products b qualifies for, cheapest rate first.
	// No match is an empty slice, not an error.
	MatchEligible(ctx context.Context, b *borrower.Borrower) ([]Candidate, error)
}
