package matching

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"loan-marketplace/internal/domain/borrower"
	"loan-marketplace/internal/domain/identity"
	"loan-marketplace/internal/domain/product"
	"loan-marketplace/internal/domain/uow"
	"loan-marketplace/internal/testutil/borrowermock"
	"loan-marketplace/internal/testutil/productmock"
	"loan-marketplace/internal/testutil/uowmock"
)

const (
	callerA    = "user-a"
	callerB    = "user-b"
	borrowerID = "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88"
)

var fixedNow = time.Date(2025, 3, 1, 10, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

func profile() *borrower.Borrower {
	return &borrower.Borrower{
		ID:                 borrowerID,
		UserID:             callerA,
		LoanAmountRequired: 3_000_000,
		EmploymentType:     borrower.EmploymentSalaried,
		MonthlyIncome:      150_000,
	}
}

// newUsecase wires mocks through a pass-through unit of work.
func newUsecase(b *borrowermock.Repo, p *productmock.Repo) *Usecase {
	uc := NewUsecase(uowmock.New().WithRepos(uow.Repos{Borrowers: b, Products: p}), Config{})
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func ownedBy(owner string) *borrowermock.Repo {
	return &borrowermock.Repo{
		OwnerOfFn: func(ctx context.Context, id string) (string, error) { return owner, nil },
		GetByIDFn: func(ctx context.Context, id string) (*borrower.Borrower, error) { return profile(), nil },
	}
}

func catalog(cands ...product.Candidate) *productmock.Repo {
	return &productmock.Repo{
		MatchEligibleFn: func(ctx context.Context, b *borrower.Borrower) ([]product.Candidate, error) {
			return cands, nil
		},
	}
}

func TestMatch_Success(t *testing.T) {
	uc := newUsecase(ownedBy(callerA), catalog(candidate("p1", 8.5), candidate("p2", 8.75)))

	got, err := uc.Match(context.Background(), callerA, MatchInput{BorrowerID: borrowerID})
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.BorrowerID != borrowerID || got.UserID != callerA {
		t.Fatalf("unexpected ids: %+v", got)
	}
	if got.Count != 2 || len(got.Offers) != 2 || got.Offers[0].ProductID != "p1" {
		t.Fatalf("unexpected offers: %+v", got.Offers)
	}
	if got.Offers[0].TenureYears != 20 || got.Offers[0].LoanAmount != 3_000_000 {
		t.Fatalf("defaults not applied: %+v", got.Offers[0])
	}
	if !got.GeneratedAt.Equal(fixedNow) || got.GeneratedAt.Location() != time.UTC {
		t.Fatalf("GeneratedAt = %v, want %v in UTC", got.GeneratedAt, fixedNow)
	}
}

func TestMatch_NormalizesBorrowerID(t *testing.T) {
	var seen string
	b := ownedBy(callerA)
	b.OwnerOfFn = func(ctx context.Context, id string) (string, error) {
		seen = id
		return callerA, nil
	}
	uc := newUsecase(b, catalog())

	if _, err := uc.Match(context.Background(), callerA, MatchInput{BorrowerID: "  " + strings.ToUpper(borrowerID) + " "}); err != nil {
		t.Fatalf("Match: %v", err)
	}
	if seen != borrowerID {
		t.Fatalf("OwnerOf got %q, want %q", seen, borrowerID)
	}
}

func TestMatch_ForeignBorrower_Forbidden(t *testing.T) {
	b := ownedBy(callerB)
	b.GetByIDFn = func(ctx context.Context, id string) (*borrower.Borrower, error) {
		t.Fatalf("profile must not be read before ownership is confirmed")
		return nil, nil
	}
	p := &productmock.Repo{
		MatchEligibleFn: func(context.Context, *borrower.Borrower) ([]product.Candidate, error) {
			t.Fatalf("match must not run for a foreign borrower")
			return nil, nil
		},
	}
	uc := newUsecase(b, p)

	_, err := uc.Match(context.Background(), callerA, MatchInput{BorrowerID: borrowerID})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if strings.Contains(err.Error(), callerB) {
		t.Fatalf("error leaks the owner: %v", err)
	}
}

func TestMatch_UnknownBorrower_LooksForbidden(t *testing.T) {
	b := &borrowermock.Repo{
		OwnerOfFn: func(context.Context, string) (string, error) { return "", borrower.ErrNotFound },
	}
	uc := newUsecase(b, catalog())

	if _, err := uc.Match(context.Background(), callerA, MatchInput{BorrowerID: borrowerID}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestMatch_BorrowerVanished(t *testing.T) {
	b := ownedBy(callerA)
	b.GetByIDFn = func(context.Context, string) (*borrower.Borrower, error) { return nil, borrower.ErrNotFound }
	uc := newUsecase(b, catalog())

	if _, err := uc.Match(context.Background(), callerA, MatchInput{BorrowerID: borrowerID}); !errors.Is(err, ErrBorrowerNotFound) {
		t.Fatalf("want ErrBorrowerNotFound, got %v", err)
	}
}

func TestMatch_DependencyFailures(t *testing.T) {
	boom := errors.New("connection refused")

	ownerFails := &borrowermock.Repo{
		OwnerOfFn: func(context.Context, string) (string, error) { return "", boom },
	}
	fetchFails := ownedBy(callerA)
	fetchFails.GetByIDFn = func(context.Context, string) (*borrower.Borrower, error) { return nil, boom }
	matchFails := &productmock.Repo{
		MatchEligibleFn: func(context.Context, *borrower.Borrower) ([]product.Candidate, error) { return nil, boom },
	}

	cases := map[string]*Usecase{
		"owner lookup":   newUsecase(ownerFails, catalog()),
		"borrower fetch": newUsecase(fetchFails, catalog()),
		"match":          newUsecase(ownedBy(callerA), matchFails),
	}
	for name, uc := range cases {
		got, err := uc.Match(context.Background(), callerA, MatchInput{BorrowerID: borrowerID})
		if !errors.Is(err, ErrDependency) {
			t.Fatalf("%s: want ErrDependency, got %v", name, err)
		}
		if got != nil {
			t.Fatalf("%s: no partial result expected, got %+v", name, got)
		}
	}
}

func TestMatch_Timeout(t *testing.T) {
	p := &productmock.Repo{
		MatchEligibleFn: func(ctx context.Context, _ *borrower.Borrower) ([]product.Candidate, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatalf("match context carries no deadline")
			}
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	uc := NewUsecase(uowmock.New().WithRepos(uow.Repos{Borrowers: ownedBy(callerA), Products: p}), Config{MatchTimeout: 20 * time.Millisecond})

	start := time.Now()
	_, err := uc.Match(context.Background(), callerA, MatchInput{BorrowerID: borrowerID})
	if !errors.Is(err, ErrDependency) {
		t.Fatalf("want ErrDependency, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not honoured")
	}
}

func TestMatch_EmptyIsSuccess(t *testing.T) {
	uc := newUsecase(ownedBy(callerA), catalog())

	got, err := uc.Match(context.Background(), callerA, MatchInput{BorrowerID: borrowerID})
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.Count != 0 || got.Offers == nil {
		t.Fatalf("want empty non-nil offers, got %+v", got)
	}
	raw, _ := json.Marshal(got)
	if !strings.Contains(string(raw), `"offers":[]`) || !strings.Contains(string(raw), `"count":0`) {
		t.Fatalf("unexpected json: %s", raw)
	}
}

func TestMatch_InvalidInput(t *testing.T) {
	uc := newUsecase(ownedBy(callerA), catalog())
	ctx := context.Background()

	if _, err := uc.Match(ctx, "", MatchInput{BorrowerID: borrowerID}); !errors.Is(err, identity.ErrUnauthenticated) {
		t.Fatalf("no caller: want ErrUnauthenticated, got %v", err)
	}
	for _, bad := range []string{"", "abc", "3f9a6a1b3d544fbe8b3a6b3e8d6b2c88"} {
		if _, err := uc.Match(ctx, callerA, MatchInput{BorrowerID: bad}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%q: want ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestMatch_PricingFailure(t *testing.T) {
	b := ownedBy(callerA)
	b.GetByIDFn = func(context.Context, string) (*borrower.Borrower, error) {
		p := profile()
		p.LoanAmountRequired = 0
		return p, nil
	}
	uc := newUsecase(b, catalog(candidate("p1", 9)))

	if _, err := uc.Match(context.Background(), callerA, MatchInput{BorrowerID: borrowerID}); !errors.Is(err, ErrPricing) {
		t.Fatalf("want ErrPricing, got %v", err)
	}
}

func TestMatch_Idempotent(t *testing.T) {
	uc := newUsecase(ownedBy(callerA), catalog(candidate("p1", 8.5), candidate("p2", 11.25)))
	ctx := context.Background()

	first, err := uc.Match(ctx, callerA, MatchInput{BorrowerID: borrowerID})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := uc.Match(ctx, callerA, MatchInput{BorrowerID: borrowerID})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\n%+v\n%+v", first, second)
	}
}

func TestMatch_TransactionError(t *testing.T) {
	sentinel := errors.New("begin failed")
	uc := NewUsecase(uowmock.New().WithWithinTx(func(context.Context, func(uow.Repos) error) error { return sentinel }), Config{})

	if _, err := uc.Match(context.Background(), callerA, MatchInput{BorrowerID: borrowerID}); !errors.Is(err, sentinel) {
		t.Fatalf("want %v, got %v", sentinel, err)
	}
}

func TestNewUsecase_Config(t *testing.T) {
	uc := NewUsecase(nil, Config{TenureYears: 15, MatchTimeout: time.Second})
	if uc.tenureYears != 15 || uc.matchTimeout != time.Second {
		t.Fatalf("config not applied: %+v", uc)
	}
	uc = NewUsecase(nil, Config{TenureYears: -1})
	if uc.tenureYears != 20 || uc.matchTimeout != DefaultMatchTimeout {
		t.Fatalf("defaults not applied: %+v", uc)
	}
}
