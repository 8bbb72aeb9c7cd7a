package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"luxurystay/internal/domain"
	"luxurystay/internal/metrics"
	"luxurystay/internal/realtime"
)

type Service struct {
	messages MessageRepository
	users    UserRepository
	notifier Notifier
	now      func() time.Time
}

func NewService(messages MessageRepository, users UserRepository, notifier Notifier) *Service {
	return &Service{
		messages: messages,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

// Send stores a message and pushes it to the receiver's live connections.
// An offline receiver finds it later through History.
func (s *Service) Send(ctx context.Context, senderID, receiverID, text string) (*MessageResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message is empty", domain.ErrValidation)
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", domain.ErrValidation, MaxMessageLength)
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("%w: cannot message yourself", domain.ErrValidation)
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("receiver: %w", err)
	}
	if !domain.CanChatWith(sender.Role, receiver.Role) {
		return nil, fmt.Errorf("%w: %s may not chat with %s", domain.ErrForbidden, sender.Role, receiver.Role)
	}

	msg := &domain.Message{
		ID:         domain.NewID(),
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Text:       text,
		Read:       false,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	metrics.IncMessageSent()

	out := toResponse(msg, brief(sender), brief(receiver))
	s.notifier.Dispatch(ctx, receiver.ID, realtime.EventReceiveMessage, out)
	return &out, nil
}

// History returns the conversation between a and b, oldest first. The result
// does not depend on argument order.
func (s *Service) History(ctx context.Context, a, b string) ([]MessageResponse, error) {
	ua, err := s.users.GetByID(ctx, a)
	if err != nil {
		return nil, err
	}
	ub, err := s.users.GetByID(ctx, b)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.History(ctx, a, b)
	if err != nil {
		return nil, err
	}

	briefs := map[string]UserBrief{ua.ID: brief(ua), ub.ID: brief(ub)}
	out := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		m := &msgs[i]
		out = append(out, toResponse(m, briefs[m.SenderID], briefs[m.ReceiverID]))
	}
	return out, nil
}

// MarkRead marks what other sent to reader as read. Repeating it changes nothing.
func (s *Service) MarkRead(ctx context.Context, reader, other string) (int64, error) {
	n, err := s.messages.MarkRead(ctx, reader, other)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("chat_marked_read reader=%s sender=%s count=%d", reader, other, n)
	}
	return n, nil
}

// Partners lists the users userID may chat with.
func (s *Service) Partners(ctx context.Context, userID string) ([]UserBrief, error) {
	me, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var roles []domain.UserRole
	if me.Role != domain.RoleReceptionist {
		roles = []domain.UserRole{domain.RoleReceptionist}
	}
	users, err := s.users.List(ctx, roles...)
	if err != nil {
		return nil, err
	}

	out := make([]UserBrief, 0, len(users))
	for i := range users {
		u := &users[i]
		if u.ID == me.ID || !domain.CanChatWith(me.Role, u.Role) {
			continue
		}
		out = append(out, brief(u))
	}
	return out, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.messages.CountUnread(ctx, userID)
}

func toResponse(m *domain.Message, sender, receiver UserBrief) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Sender:    sender,
		Receiver:  receiver,
		Message:   m.Text,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}
