package borrowermock

import (
	"context"

	domain "loan-marketplace/internal/domain/borrower"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	OwnerOfFn func(ctx context.Context, borrowerID string) (string, error)
	GetByIDFn func(ctx context.Context, borrowerID string) (*domain.Borrower, error)
}

func (m *Repo) OwnerOf(ctx context.Context, borrowerID string) (string, error) {
	if m.OwnerOfFn != nil {
		return m.OwnerOfFn(ctx, borrowerID)
	}
	return "", context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, borrowerID string) (*domain.Borrower, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, borrowerID)
	}
	return nil, context.Canceled
}
