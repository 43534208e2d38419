package productmock

import (
	"context"

	"loan-marketplace/internal/domain/borrower"
	domain "loan-marketplace/internal/domain/product"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	MatchEligibleFn func(ctx context.Context, b *borrower.Borrower) ([]domain.Candidate, error)
}

func (m *Repo) MatchEligible(ctx context.Context, b *borrower.Borrower) ([]domain.Candidate, error) {
	if m.MatchEligibleFn != nil {
		return m.MatchEligibleFn(ctx, b)
	}
	return nil, context.Canceled
}
