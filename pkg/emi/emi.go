package emi

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// DefaultTenureYears is the comparison tenure used when quoting offers.
const DefaultTenureYears = 20

var ErrInvalidInput = errors.New("emi: invalid input")

// Monthly returns the equated monthly installment for a reducing-balance loan,
// rounded to the nearest whole currency unit.
//
//	r   = annualRatePercent / 100 / 12
//	n   = tenureYears * 12
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)
func Monthly(principal int64, annualRatePercent float64, tenureYears int) (int64, error) {
	if principal < 0 || tenureYears < 1 || annualRatePercent < 0 ||
		math.IsNaN(annualRatePercent) || math.IsInf(annualRatePercent, 0) {
		return 0, ErrInvalidInput
	}
	v := monthly(float64(principal), annualRatePercent, tenureYears*12)
	if math.IsNaN(v) || math.IsInf(v, 0) || v > math.MaxInt64 {
		return 0, ErrInvalidInput
	}
	return round(v), nil
}

// monthly works in log space so (1+r)^n - 1 keeps its precision as r approaches zero.
func monthly(p, annualRatePercent float64, months int) float64 {
	r := annualRatePercent / 100 / 12
	if r == 0 {
		return p / float64(months)
	}
	growth := float64(months) * math.Log1p(r)
	return p * r * math.Exp(growth) / math.Expm1(growth)
}

// round is half away from zero, matching what borrowers see on amortization tables.
func round(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// Totals summarises the full repayment at a fixed installment.
type Totals struct {
	Installment   int64 `json:"installment"`
	Months        int   `json:"months"`
	TotalPayable  int64 `json:"total_payable"`
	TotalInterest int64 `json:"total_interest"`
}

// Summarise computes the installment and what the borrower pays over the whole tenure.
func Summarise(principal int64, annualRatePercent float64, tenureYears int) (Totals, error) {
	inst, err := Monthly(principal, annualRatePercent, tenureYears)
	if err != nil {
		return Totals{}, err
	}
	months := tenureYears * 12
	total := decimal.NewFromInt(inst).Mul(decimal.NewFromInt(int64(months)))
	interest := total.Sub(decimal.NewFromInt(principal))
	if interest.IsNegative() {
		// zero-rate rounding can undershoot the principal by a few units
		interest = decimal.Zero
	}
	return Totals{
		Installment:   inst,
		Months:        months,
		TotalPayable:  total.IntPart(),
		TotalInterest: interest.IntPart(),
	}, nil
}
