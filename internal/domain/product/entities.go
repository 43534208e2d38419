package product

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"loan-marketplace/internal/domain/borrower"

	"gorm.io/gorm"
)

type FeeType string

const (
	FeePercentage FeeType = "Percentage"
	FeeFixed      FeeType = "Fixed"
)

type LenderType string

const (
	LenderBank        LenderType = "bank"
	LenderNBFC        LenderType = "nbfc"
	LenderCooperative LenderType = "cooperative"
)

type Lender struct {
	ID        string         `gorm:"primaryKey;type:char(36);column:id" json:"id"`
	Name      string         `gorm:"size:160;not null;column:name" json:"name"`
	Type      LenderType     `gorm:"type:enum('bank','nbfc','cooperative');not null;column:lender_type" json:"lender_type"`
	IsActive  bool           `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lender) TableName() string { return "lenders" }

type Product struct {
	ID                 string         `gorm:"primaryKey;type:char(36);column:id" json:"id"`
	LenderID           string         `gorm:"type:char(36);not null;index;column:lender_id" json:"lender_id"`
	Name               string         `gorm:"size:160;not null;column:name" json:"name"`
	MinLoanAmount      int64          `gorm:"not null;column:min_loan_amount" json:"min_loan_amount"`
	MaxLoanAmount      int64          `gorm:"not null;column:max_loan_amount" json:"max_loan_amount"`
	InterestRateMin    float64        `gorm:"type:decimal(5,2);not null;column:interest_rate_min" json:"interest_rate_min"`
	InterestRateMax    float64        `gorm:"type:decimal(5,2);column:interest_rate_max" json:"interest_rate_max"`
	ProcessingFeeType  FeeType        `gorm:"type:enum('Percentage','Fixed');not null;column:processing_fee_type" json:"processing_fee_type"`
	ProcessingFeeValue float64        `gorm:"type:decimal(12,2);not null;column:processing_fee_value" json:"processing_fee_value"`
	MaxLTVRatioTier1   float64        `gorm:"type:decimal(5,2);column:max_ltv_ratio_tier1" json:"max_ltv_ratio_tier1"`
	TargetSegment      Segments       `gorm:"type:json;column:target_borrower_segment" json:"target_borrower_segment"`
	MinMonthlyIncome   int64          `gorm:"column:min_monthly_income" json:"min_monthly_income"`
	IsActive           bool           `gorm:"not null;default:true;index;column:is_active" json:"is_active"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string { return "products" }

// Segments is the set of employment types a product targets, stored as a JSON array.
type Segments []borrower.EmploymentType

func (s Segments) Contains(e borrower.EmploymentType) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}

func (s Segments) Strings() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = string(v)
	}
	return out
}

func (s Segments) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]borrower.EmploymentType(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Segments) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("segments: unsupported source type %T", src)
	}
	if len(raw) == 0 {
		*s = nil
		return nil
	}
	var out []borrower.EmploymentType
	if err := json.Unmarshal(raw, &out); err != nil {
		return errors.Join(errors.New("segments: malformed json"), err)
	}
	*s = out
	return nil
}
