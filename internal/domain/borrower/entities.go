package borrower

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("borrower not found")

type EmploymentType string

const (
	EmploymentSalaried                 EmploymentType = "salaried"
	EmploymentSelfEmployedProfessional EmploymentType = "self_employed_professional"
	EmploymentSelfEmployedBusiness     EmploymentType = "self_employed_business"
)

func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentSalaried, EmploymentSelfEmployedProfessional, EmploymentSelfEmployedBusiness:
		return true
	}
	return false
}

// Borrower is the financial profile captured by onboarding. Amounts are whole currency units.
type Borrower struct {
	ID                 string         `gorm:"primaryKey;type:char(36);column:id" json:"id"`
	UserID             string         `gorm:"type:char(36);not null;index:idx_borrowers_user;column:user_id" json:"user_id"`
	LoanAmountRequired int64          `gorm:"not null;column:loan_amount_required" json:"loan_amount_required"`
	EmploymentType     EmploymentType `gorm:"type:enum('salaried','self_employed_professional','self_employed_business');not null;column:employment_type" json:"employment_type"`
	MonthlyIncome      int64          `gorm:"column:monthly_income" json:"monthly_income"`
	AnnualIncome       int64          `gorm:"column:annual_income" json:"annual_income"`
	ExistingEMI        int64          `gorm:"column:existing_emi" json:"existing_emi"`
	PropertyValue      int64          `gorm:"column:property_value" json:"property_value"`
	City               string         `gorm:"size:120;column:city" json:"city"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Borrower) TableName() string { return "borrowers" }

// MonthlyIncomeEstimate prefers the declared monthly figure and falls back to annual/12.
func (b *Borrower) MonthlyIncomeEstimate() int64 {
	if b.MonthlyIncome > 0 {
		return b.MonthlyIncome
	}
	return b.AnnualIncome / 12
}
