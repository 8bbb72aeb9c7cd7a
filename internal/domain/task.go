package domain

import "time"

type TaskType string

const (
	TaskCleaning    TaskType = "Cleaning"
	TaskMaintenance TaskType = "Maintenance"
	TaskInspection  TaskType = "Inspection"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskCleaning, TaskMaintenance, TaskInspection:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TaskStatus is deliberately unordered: any status may follow any other.
type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          string       `json:"id" gorm:"primaryKey;size:36"`
	RoomID      string       `json:"room_id" gorm:"not null;index"`
	Description string       `json:"description"`
	Type        TaskType     `json:"type" gorm:"not null"`
	Priority    TaskPriority `json:"priority" gorm:"not null;default:'Medium'"`
	Status      TaskStatus   `json:"status" gorm:"not null;default:'Pending';index"`
	AssignedTo  *string      `json:"assigned_to,omitempty" gorm:"size:36"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// RestoresRoom reports whether completing the task makes its room bookable again.
func (t *Task) RestoresRoom() bool {
	return t.Type == TaskCleaning || t.Type == TaskMaintenance
}
