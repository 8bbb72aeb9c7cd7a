package repository

import (
	"context"

	"luxurystay/internal/domain"

	"gorm.io/gorm"
)

type InquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(ctx context.Context, in *domain.Inquiry) error {
	if in.ID == "" {
		in.ID = domain.NewID()
	}
	if in.Status == "" {
		in.Status = domain.InquiryNew
	}
	return translate(r.db.WithContext(ctx).Create(in).Error)
}

func (r *InquiryRepository) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	var in domain.Inquiry
	if err := r.db.WithContext(ctx).First(&in, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &in, nil
}

// List returns inquiries newest first, optionally restricted to one status.
func (r *InquiryRepository) List(ctx context.Context, status domain.InquiryStatus) ([]domain.Inquiry, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Inquiry
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) (*domain.Inquiry, error) {
	res := r.db.WithContext(ctx).Model(&domain.Inquiry{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
