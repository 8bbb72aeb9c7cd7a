package repository

import (
	"context"

	"luxurystay/internal/domain"

	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = domain.NewID()
	}
	if t.Status == "" {
		t.Status = domain.TaskPending
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// List returns tasks newest first, optionally restricted to one status.
func (r *TaskRepository) List(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Task
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	res := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteCompleted(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("status = ?", domain.TaskCompleted).Delete(&domain.Task{})
	return res.RowsAffected, res.Error
}
