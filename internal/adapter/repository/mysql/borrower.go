package mysql

import (
	"context"
	"errors"

	borrowerDomain "loan-marketplace/internal/domain/borrower"

	"gorm.io/gorm"
)

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

func (r *BorrowerRepository) OwnerOf(ctx context.Context, borrowerID string) (string, error) {
	var owners []string
	res := r.db.WithContext(ctx).
		Model(&borrowerDomain.Borrower{}).
		Where("id = ?", borrowerID).
		Limit(1).
		Pluck("user_id", &owners)
	if res.Error != nil {
		return "", res.Error
	}
	if len(owners) == 0 {
		return "", borrowerDomain.ErrNotFound
	}
	return owners[0], nil
}

func (r *BorrowerRepository) GetByID(ctx context.Context, borrowerID string) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := r.db.WithContext(ctx).Where("id = ?", borrowerID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, borrowerDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
