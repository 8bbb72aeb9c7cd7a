package inquiry

import (
	"context"
	"fmt"
	"log"
	"strings"

	"luxurystay/internal/domain"
	"luxurystay/internal/realtime"
)

type Service struct {
	inquiries InquiryRepository
	notifier  Notifier
}

func NewService(inquiries InquiryRepository, notifier Notifier) *Service {
	return &Service{inquiries: inquiries, notifier: notifier}
}

// Create stores a contact-form inquiry and alerts every staff connection.
func (s *Service) Create(ctx context.Context, req CreateInquiryRequest) (*domain.Inquiry, error) {
	in := &domain.Inquiry{
		ID:      domain.NewID(),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Status:  domain.InquiryNew,
	}
	switch {
	case in.Name == "":
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	case in.Subject == "":
		return nil, fmt.Errorf("%w: subject is required", domain.ErrValidation)
	case in.Message == "":
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	if err := s.inquiries.Create(ctx, in); err != nil {
		return nil, err
	}

	log.Printf("inquiry_created inquiry_id=%s email=%s", in.ID, in.Email)
	s.notifier.Dispatch(ctx, domain.StaffChannel, realtime.EventNewInquiry, InquiryEvent{Inquiry: in})
	return in, nil
}

func (s *Service) List(ctx context.Context, status domain.InquiryStatus) ([]domain.Inquiry, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown inquiry status %q", domain.ErrValidation, status)
	}
	return s.inquiries.List(ctx, status)
}

func (s *Service) UpdateStatus(ctx context.Context, actor domain.Principal, id string, status domain.InquiryStatus) (*domain.Inquiry, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown inquiry status %q", domain.ErrValidation, status)
	}
	in, err := s.inquiries.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	log.Printf("inquiry_status_updated inquiry_id=%s status=%s by=%s", id, status, actor.UserID)
	return in, nil
}
