package inquiry

import "luxurystay/internal/domain"

type CreateInquiryRequest struct {
	Name    string `json:"name" binding:"required,max=128"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=4000"`
}

type UpdateStatusRequest struct {
	Status domain.InquiryStatus `json:"status" binding:"required"`
}

// InquiryEvent is the payload of new_inquiry.
type InquiryEvent struct {
	Inquiry *domain.Inquiry `json:"inquiry"`
}
