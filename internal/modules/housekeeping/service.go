package housekeeping

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"luxurystay/internal/domain"
	"luxurystay/internal/realtime"
)

type Service struct {
	tasks    TaskRepository
	rooms    RoomRepository
	users    UserRepository
	notifier Notifier
}

func NewService(tasks TaskRepository, rooms RoomRepository, users UserRepository, notifier Notifier) *Service {
	return &Service{tasks: tasks, rooms: rooms, users: users, notifier: notifier}
}

func (s *Service) Create(ctx context.Context, actor domain.Principal, req CreateTaskRequest) (*domain.Task, error) {
	if !actor.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown task type %q", domain.ErrValidation, req.Type)
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, priority)
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}

	if _, err := s.rooms.GetByID(ctx, req.RoomID); err != nil {
		return nil, err
	}

	var assignee *string
	if req.AssignedTo != nil && *req.AssignedTo != "" {
		u, err := s.users.GetByID(ctx, *req.AssignedTo)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: assignee %s does not exist", domain.ErrValidation, *req.AssignedTo)
		}
		if err != nil {
			return nil, err
		}
		if !u.Role.CanBeAssignedTasks() {
			return nil, fmt.Errorf("%w: tasks go to housekeeping or hotel staff, not %s", domain.ErrValidation, u.Role)
		}
		assignee = &u.ID
	}

	t := &domain.Task{
		ID:          domain.NewID(),
		RoomID:      req.RoomID,
		Description: desc,
		Type:        req.Type,
		Priority:    priority,
		Status:      domain.TaskPending,
		AssignedTo:  assignee,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}

	log.Printf("task_created task_id=%s room_id=%s type=%s by=%s", t.ID, t.RoomID, t.Type, actor.UserID)
	if assignee != nil {
		s.notifier.Dispatch(ctx, *assignee, realtime.EventTaskAssigned, TaskEvent{Task: t})
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown task status %q", domain.ErrValidation, status)
	}
	return s.tasks.List(ctx, status)
}

// UpdateStatus accepts any of the three statuses. Completing a cleaning or
// maintenance task hands a room that was out of service back to reception.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown task status %q", domain.ErrValidation, status)
	}

	t, err := s.tasks.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if t.Status == domain.TaskCompleted && t.RestoresRoom() {
		if err := s.releaseRoom(ctx, t.RoomID); err != nil {
			return nil, fmt.Errorf("task %s completed but room release failed: %v", t.ID, err)
		}
	}
	return t, nil
}

func (s *Service) releaseRoom(ctx context.Context, roomID string) error {
	room, err := s.rooms.GetByID(ctx, roomID)
	if errors.Is(err, domain.ErrNotFound) {
		// room was removed after the task was opened
		return nil
	}
	if err != nil {
		return err
	}
	if room.Status != domain.RoomCleaning && room.Status != domain.RoomMaintenance {
		return nil
	}
	if err := s.rooms.UpdateStatus(ctx, roomID, domain.RoomAvailable); err != nil {
		return err
	}
	log.Printf("room_released room_id=%s from=%s", roomID, room.Status)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Service) ClearCompleted(ctx context.Context) (int64, error) {
	n, err := s.tasks.DeleteCompleted(ctx)
	if err != nil {
		return 0, err
	}
	log.Printf("tasks_cleared count=%d", n)
	return n, nil
}
