package uow

import (
	"context"

	"loan-marketplace/internal/domain/borrower"
	"loan-marketplace/internal/domain/product"
)

// domain/uow/uow.go
type Repos struct {
	Borrowers borrower.Repository
	Products  product.Repository
}

type UnitOfWork interface {
	// WithinTx gives fn repositories bound to one transaction, so the
	// ownership check, profile read and product match see one snapshot.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
