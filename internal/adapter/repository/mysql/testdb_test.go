package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM, JSON as text) ---

type borrowerSQLite struct {
	ID                 string         `gorm:"primaryKey;column:id"`
	UserID             string         `gorm:"column:user_id"`
	LoanAmountRequired int64          `gorm:"column:loan_amount_required"`
	EmploymentType     string         `gorm:"type:text;column:employment_type"`
	MonthlyIncome      int64          `gorm:"column:monthly_income"`
	AnnualIncome       int64          `gorm:"column:annual_income"`
	ExistingEMI        int64          `gorm:"column:existing_emi"`
	PropertyValue      int64          `gorm:"column:property_value"`
	City               string         `gorm:"column:city"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (borrowerSQLite) TableName() string { return "borrowers" }

type lenderSQLite struct {
	ID        string         `gorm:"primaryKey;column:id"`
	Name      string         `gorm:"column:name"`
	Type      string         `gorm:"type:text;column:lender_type"`
	IsActive  bool           `gorm:"column:is_active"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (lenderSQLite) TableName() string { return "lenders" }

type productSQLite struct {
	ID                 string         `gorm:"primaryKey;column:id"`
	LenderID           string         `gorm:"column:lender_id"`
	Name               string         `gorm:"column:name"`
	MinLoanAmount      int64          `gorm:"column:min_loan_amount"`
	MaxLoanAmount      int64          `gorm:"column:max_loan_amount"`
	InterestRateMin    float64        `gorm:"column:interest_rate_min"`
	InterestRateMax    float64        `gorm:"column:interest_rate_max"`
	ProcessingFeeType  string         `gorm:"type:text;column:processing_fee_type"`
	ProcessingFeeValue float64        `gorm:"column:processing_fee_value"`
	MaxLTVRatioTier1   float64        `gorm:"column:max_ltv_ratio_tier1"`
	TargetSegment      string         `gorm:"type:text;column:target_borrower_segment"`
	MinMonthlyIncome   int64          `gorm:"column:min_monthly_income"`
	IsActive           bool           `gorm:"column:is_active"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (productSQLite) TableName() string { return "products" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// every pooled connection to :memory: is a fresh database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&borrowerSQLite{}, &lenderSQLite{}, &productSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedBorrower(t *testing.T, db *gorm.DB, b borrowerSQLite) {
	t.Helper()
	if b.EmploymentType == "" {
		b.EmploymentType = "salaried"
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("seed borrower: %v", err)
	}
}

func seedLender(t *testing.T, db *gorm.DB, id, name string, active bool) {
	t.Helper()
	l := lenderSQLite{ID: id, Name: name, Type: "bank", IsActive: active}
	if err := db.Create(&l).Error; err != nil {
		t.Fatalf("seed lender: %v", err)
	}
}

func seedProduct(t *testing.T, db *gorm.DB, p productSQLite, active bool) {
	t.Helper()
	p.IsActive = active
	if p.ProcessingFeeType == "" {
		p.ProcessingFeeType = "Percentage"
	}
	if p.TargetSegment == "" {
		p.TargetSegment = `["salaried"]`
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
}
