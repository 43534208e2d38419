package matching

import (
	"errors"
	"fmt"

	"loan-marketplace/internal/domain/product"
	"loan-marketplace/pkg/emi"
)

var ErrNonPositiveEMI = errors.New("estimated emi is not positive")

// AssembleOffers prices every candidate at its minimum advertised rate for the
// requested amount. Output order and length follow products; any pricing
// failure fails the whole batch.
func AssembleOffers(products []product.Candidate, loanAmount int64, tenureYears int) ([]OfferDTO, error) {
	out := make([]OfferDTO, 0, len(products))
	for i := range products {
		c := &products[i]
		totals, err := emi.Summarise(loanAmount, c.InterestRateMin, tenureYears)
		if err != nil {
			return nil, fmt.Errorf("price product %s: %w", c.ProductID, err)
		}
		if totals.Installment <= 0 {
			return nil, fmt.Errorf("price product %s: %w", c.ProductID, ErrNonPositiveEMI)
		}
		fee := c.ProcessingFee(loanAmount)
		out = append(out, OfferDTO{
			ProductID:             c.ProductID,
			LenderID:              c.LenderID,
			LenderName:            c.LenderName,
			ProductName:           c.ProductName,
			InterestRateMin:       c.InterestRateMin,
			ProcessingFeeValue:    c.ProcessingFeeValue,
			ProcessingFeeType:     string(c.ProcessingFeeType),
			MaxLTVRatioTier1:      c.MaxLTVRatioTier1,
			LoanAmount:            loanAmount,
			EstimatedEMI:          totals.Installment,
			TenureYears:           tenureYears,
			MinLoanAmount:         c.MinLoanAmount,
			MaxLoanAmount:         c.MaxLoanAmount,
			TargetBorrowerSegment: c.TargetSegment.Strings(),
			ProcessingFeeAmount:   fee,
			TotalPayable:          totals.TotalPayable + fee,
		})
	}
	return out, nil
}
