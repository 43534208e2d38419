package product

import (
	"loan-marketplace/internal/domain/borrower"

	"github.com/shopspring/decimal"
)

// Candidate is a product row joined with its lender, as returned by the eligibility query.
type Candidate struct {
	ProductID          string
	LenderID           string
	LenderName         string
	LenderActive       bool
	ProductName        string
	ProductActive      bool
	InterestRateMin    float64
	InterestRateMax    float64
	ProcessingFeeType  FeeType
	ProcessingFeeValue float64
	MaxLTVRatioTier1   float64
	MinLoanAmount      int64
	MaxLoanAmount      int64
	TargetSegment      Segments
	MinMonthlyIncome   int64
}

// Admits reports whether b qualifies for the product. Bounds are inclusive.
// An empty target segment admits nobody.
func (c *Candidate) Admits(b *borrower.Borrower) bool {
	if b == nil || !c.ProductActive || !c.LenderActive {
		return false
	}
	amt := b.LoanAmountRequired
	if amt < c.MinLoanAmount || amt > c.MaxLoanAmount {
		return false
	}
	if !c.TargetSegment.Contains(b.EmploymentType) {
		return false
	}
	if c.MinMonthlyIncome > 0 && b.MonthlyIncomeEstimate() < c.MinMonthlyIncome {
		return false
	}
	if c.MaxLTVRatioTier1 > 0 && b.PropertyValue > 0 {
		ltv := decimal.NewFromInt(amt).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(b.PropertyValue))
		if ltv.GreaterThan(decimal.NewFromFloat(c.MaxLTVRatioTier1)) {
			return false
		}
	}
	return true
}

// ProcessingFee is the one-off fee charged on loanAmount, rounded to a whole unit.
func (c *Candidate) ProcessingFee(loanAmount int64) int64 {
	v := decimal.NewFromFloat(c.ProcessingFeeValue)
	if c.ProcessingFeeType == FeePercentage {
		v = decimal.NewFromInt(loanAmount).Mul(v).Div(decimal.NewFromInt(100))
	}
	return v.Round(0).IntPart()
}
