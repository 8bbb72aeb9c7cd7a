package inquiry

import (
	"context"

	"luxurystay/internal/domain"
)

type InquiryRepository interface {
	Create(ctx context.Context, in *domain.Inquiry) error
	List(ctx context.Context, status domain.InquiryStatus) ([]domain.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) (*domain.Inquiry, error)
}

type Notifier interface {
	Dispatch(ctx context.Context, channel, event string, payload any)
}
