package housekeeping

import "luxurystay/internal/domain"

type CreateTaskRequest struct {
	RoomID      string              `json:"room_id" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Type        domain.TaskType     `json:"type" binding:"required"`
	Priority    domain.TaskPriority `json:"priority"`
	AssignedTo  *string             `json:"assigned_to"`
}

type UpdateTaskStatusRequest struct {
	Status domain.TaskStatus `json:"status" binding:"required"`
}

// TaskEvent is the payload of task_assigned.
type TaskEvent struct {
	Task *domain.Task `json:"task"`
}
