package borrower

import "context"

type Repository interface {
	// OwnerOf returns only the owning account id, so ownership can be checked
	// before any profile data is loaded.
	OwnerOf(ctx context.Context, borrowerID string) (string, error)
	GetByID(ctx context.Context, borrowerID string) (*Borrower, error)
}
