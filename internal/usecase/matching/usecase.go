package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-marketplace/internal/domain/borrower"
	"loan-marketplace/internal/domain/identity"
	"loan-marketplace/internal/domain/product"
	"loan-marketplace/internal/domain/uow"
	"loan-marketplace/pkg/emi"
	"loan-marketplace/pkg/id"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrForbidden        = errors.New("borrower does not belong to caller")
	ErrBorrowerNotFound = errors.New("borrower not found")
	ErrDependency       = errors.New("offer matching unavailable")
	ErrPricing          = errors.New("offer pricing failed")
)

const DefaultMatchTimeout = 5 * time.Second

type Config struct {
	TenureYears  int
	MatchTimeout time.Duration
}

type Usecase struct {
	uow          uow.UnitOfWork
	tenureYears  int
	matchTimeout time.Duration
	now          func() time.Time
}

// NewUsecase: zero config values fall back to a 20 year tenure and a 5s match timeout.
func NewUsecase(tx uow.UnitOfWork, cfg Config) *Usecase {
	if cfg.TenureYears < 1 {
		cfg.TenureYears = emi.DefaultTenureYears
	}
	if cfg.MatchTimeout <= 0 {
		cfg.MatchTimeout = DefaultMatchTimeout
	}
	return &Usecase{uow: tx, tenureYears: cfg.TenureYears, matchTimeout: cfg.MatchTimeout, now: time.Now}
}

// Match returns the priced offers for a borrower owned by callerID.
// Ownership is checked before any profile data is read; an unknown borrower
// and a foreign borrower are indistinguishable to the caller.
func (u *Usecase) Match(ctx context.Context, callerID string, in MatchInput) (*MatchResultDTO, error) {
	if callerID == "" {
		return nil, identity.ErrUnauthenticated
	}
	borrowerID := id.Normalize(in.BorrowerID)
	if !id.Valid(borrowerID) {
		return nil, ErrInvalidInput
	}

	var (
		b     *borrower.Borrower
		cands []product.Candidate
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		owner, err := r.Borrowers.OwnerOf(ctx, borrowerID)
		switch {
		case errors.Is(err, borrower.ErrNotFound):
			return ErrForbidden
		case err != nil:
			return fmt.Errorf("%w: owner lookup: %v", ErrDependency, err)
		}
		if owner != callerID {
			return ErrForbidden
		}

		b, err = r.Borrowers.GetByID(ctx, borrowerID)
		switch {
		case errors.Is(err, borrower.ErrNotFound):
			return ErrBorrowerNotFound
		case err != nil:
			return fmt.Errorf("%w: borrower fetch: %v", ErrDependency, err)
		}

		mctx, cancel := context.WithTimeout(ctx, u.matchTimeout)
		defer cancel()
		cands, err = r.Products.MatchEligible(mctx, b)
		if err != nil {
			return fmt.Errorf("%w: match: %v", ErrDependency, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			slog.WarnContext(ctx, "match: ownership check failed", "caller", callerID, "borrower_id", borrowerID)
		}
		return nil, err
	}

	offers, err := AssembleOffers(cands, b.LoanAmountRequired, u.tenureYears)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPricing, err)
	}

	return &MatchResultDTO{
		BorrowerID:  b.ID,
		Offers:      offers,
		Count:       len(offers),
		GeneratedAt: u.now().UTC(),
		UserID:      callerID,
	}, nil
}
