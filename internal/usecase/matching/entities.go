package matching

import "time"

type MatchInput struct {
	BorrowerID string `json:"borrower_id"`
}

type OfferDTO struct {
	ProductID             string   `json:"product_id"`
	LenderID              string   `json:"lender_id"`
	LenderName            string   `json:"lender_name"`
	ProductName           string   `json:"product_name"`
	InterestRateMin       float64  `json:"interest_rate_min"`
	ProcessingFeeValue    float64  `json:"processing_fee_value"`
	ProcessingFeeType     string   `json:"processing_fee_type"`
	MaxLTVRatioTier1      float64  `json:"max_ltv_ratio_tier1"`
	LoanAmount            int64    `json:"loan_amount"`
	EstimatedEMI          int64    `json:"estimated_emi"`
	TenureYears           int      `json:"tenure_years"`
	MinLoanAmount         int64    `json:"min_loan_amount"`
	MaxLoanAmount         int64    `json:"max_loan_amount"`
	TargetBorrowerSegment []string `json:"target_borrower_segment"`
	ProcessingFeeAmount   int64    `json:"processing_fee_amount"`
	TotalPayable          int64    `json:"total_payable"`
}

type MatchResultDTO struct {
	BorrowerID  string     `json:"borrower_id"`
	Offers      []OfferDTO `json:"offers"`
	Count       int        `json:"count"`
	GeneratedAt time.Time  `json:"generated_at"`
	UserID      string     `json:"user_id"`
}
