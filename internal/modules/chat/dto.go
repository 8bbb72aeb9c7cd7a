package chat

import (
	"time"

	"luxurystay/internal/domain"
)

// MaxMessageLength bounds a chat message, in characters.
const MaxMessageLength = 4000

type UserBrief struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Role     domain.UserRole `json:"role"`
}

func brief(u *domain.User) UserBrief {
	return UserBrief{ID: u.ID, Username: u.Username, Role: u.Role}
}

// MessageResponse is a stored message with both participants resolved. It is
// also the data of the receive_message event.
type MessageResponse struct {
	ID        string    `json:"id"`
	Sender    UserBrief `json:"sender"`
	Receiver  UserBrief `json:"receiver"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// SendMessagePayload is the data of a send_message frame.
type SendMessagePayload struct {
	Sender   string `json:"sender" validate:"required"`
	Receiver string `json:"receiver" validate:"required"`
	Message  string `json:"message" validate:"required"`
}
