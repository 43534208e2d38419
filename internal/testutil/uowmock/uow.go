package uowmock

import (
	"context"
	"errors"

	"loan-marketplace/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Set WithinTxFn for full control, or Repos to run the callback against fixed repositories.
type UoW struct {
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
	Repos      *uow.Repos
}

func New() *UoW { return &UoW{} }

// WithRepos makes WithinTx call the callback directly with r.
func (m *UoW) WithRepos(r uow.Repos) *UoW {
	m.Repos = &r
	return m
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	if m.Repos != nil {
		return fn(*m.Repos)
	}
	return errUnimplemented
}
