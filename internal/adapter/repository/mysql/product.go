package mysql

import (
	"context"

	borrowerDomain "loan-marketplace/internal/domain/borrower"
	productDomain "loan-marketplace/internal/domain/product"

	"gorm.io/gorm"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

type candidateRow struct {
	ProductID          string                 `gorm:"column:product_id"`
	LenderID           string                 `gorm:"column:lender_id"`
	LenderName         string                 `gorm:"column:lender_name"`
	LenderActive       bool                   `gorm:"column:lender_active"`
	ProductName        string                 `gorm:"column:product_name"`
	ProductActive      bool                   `gorm:"column:product_active"`
	InterestRateMin    float64                `gorm:"column:interest_rate_min"`
	InterestRateMax    float64                `gorm:"column:interest_rate_max"`
	ProcessingFeeType  string                 `gorm:"column:processing_fee_type"`
	ProcessingFeeValue float64                `gorm:"column:processing_fee_value"`
	MaxLTVRatioTier1   float64                `gorm:"column:max_ltv_ratio_tier1"`
	MinLoanAmount      int64                  `gorm:"column:min_loan_amount"`
	MaxLoanAmount      int64                  `gorm:"column:max_loan_amount"`
	TargetSegment      productDomain.Segments `gorm:"column:target_borrower_segment"`
	MinMonthlyIncome   int64                  `gorm:"column:min_monthly_income"`
}

func (c candidateRow) toDomain() productDomain.Candidate {
	return productDomain.Candidate{
		ProductID:          c.ProductID,
		LenderID:           c.LenderID,
		LenderName:         c.LenderName,
		LenderActive:       c.LenderActive,
		ProductName:        c.ProductName,
		ProductActive:      c.ProductActive,
		InterestRateMin:    c.InterestRateMin,
		InterestRateMax:    c.InterestRateMax,
		ProcessingFeeType:  productDomain.FeeType(c.ProcessingFeeType),
		ProcessingFeeValue: c.ProcessingFeeValue,
		MaxLTVRatioTier1:   c.MaxLTVRatioTier1,
		MinLoanAmount:      c.MinLoanAmount,
		MaxLoanAmount:      c.MaxLoanAmount,
		TargetSegment:      c.TargetSegment,
		MinMonthlyIncome:   c.MinMonthlyIncome,
	}
}

const candidateColumns = `p.id AS product_id, p.lender_id, l.name AS lender_name, l.is_active AS lender_active,
p.name AS product_name, p.is_active AS product_active, p.interest_rate_min, p.interest_rate_max,
p.processing_fee_type, p.processing_fee_value, p.max_ltv_ratio_tier1, p.min_loan_amount,
p.max_loan_amount, p.target_borrower_segment, p.min_monthly_income`

// MatchEligible narrows by status and amount in SQL, then applies the full
// predicate (segment, income, LTV) in process. Order is cheapest rate first,
// product id breaking ties.
func (r *ProductRepository) MatchEligible(ctx context.Context, b *borrowerDomain.Borrower) ([]productDomain.Candidate, error) {
	out := []productDomain.Candidate{}
	if b == nil {
		return out, nil
	}
	var rows []candidateRow
	res := r.db.WithContext(ctx).
		Table("products AS p").
		Select(candidateColumns).
		Joins("JOIN lenders AS l ON l.id = p.lender_id AND l.deleted_at IS NULL").
		Where("p.deleted_at IS NULL AND p.is_active = ? AND l.is_active = ?", true, true).
		Where("p.min_loan_amount <= ? AND p.max_loan_amount >= ?", b.LoanAmountRequired, b.LoanAmountRequired).
		Order("p.interest_rate_min ASC, p.id ASC").
		Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	for _, row := range rows {
		c := row.toDomain()
		if c.Admits(b) {
			out = append(out, c)
		}
	}
	return out, nil
}
