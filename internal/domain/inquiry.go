package domain

import "time"

type InquiryStatus string

const (
	InquiryNew      InquiryStatus = "New"
	InquiryAnswered InquiryStatus = "Answered"
	InquiryClosed   InquiryStatus = "Closed"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryAnswered, InquiryClosed:
		return true
	}
	return false
}

// Inquiry is a contact-form message from a visitor. No account is needed.
type Inquiry struct {
	ID        string        `json:"id" gorm:"primaryKey;size:36"`
	Name      string        `json:"name" gorm:"not null"`
	Email     string        `json:"email" gorm:"not null;index"`
	Subject   string        `json:"subject" gorm:"not null"`
	Message   string        `json:"message" gorm:"not null"`
	Status    InquiryStatus `json:"status" gorm:"not null;default:'New';index"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (Inquiry) TableName() string { return "inquiries" }
