package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"task-tracker/internal/model"
)

// errTaskMissing aborts a move transaction whose task does not exist.
var errTaskMissing = errors.New("task missing")

// TaskRepository handles CRUD for tasks. Every method is its own unit of
// work: a single statement or one transaction.
type TaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, classify("list tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&task).Error; err != nil {
		return nil, classify("find task", err)
	}
	return &task, nil
}

// Create resolves the category, stamps the task as Pending and inserts it,
// all in one transaction. A rejected insert leaves no new category behind.
func (r *TaskRepository) Create(ctx context.Context, in model.NewTask) (uint, error) {
	now := r.now()
	task := model.Task{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Status:      model.StatusPending,
		CreatedAt:   now.Format(model.TimestampLayout),
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryID, err := resolveOrCreate(tx, in.CategoryName, now)
		if err != nil {
			return err
		}
		task.CategoryID = categoryID
		return tx.Create(&task).Error
	})
	if err != nil {
		return 0, classify("create task", err)
	}
	return task.ID, nil
}

// Update writes only the columns named by patch and reports whether a task
// with that id existed. An empty patch returns ErrEmptyPatch without
// touching the database.
func (r *TaskRepository) Update(ctx context.Context, id uint, patch model.TaskPatch) (bool, error) {
	if patch.IsEmpty() {
		return false, ErrEmptyPatch
	}
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(patch.Columns())
	if res.Error != nil {
		return false, classify("update task", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the task and reports whether it existed.
func (r *TaskRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return false, classify("delete task", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// MoveToCategory reassigns the task to the category called name, creating
// the category if needed. Both writes commit together; when the task does not
// exist the transaction is rolled back, including any category it created,
// and the move reports false.
func (r *TaskRepository) MoveToCategory(ctx context.Context, taskID uint, name string) (bool, error) {
	now := r.now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryID, err := resolveOrCreate(tx, name, now)
		if err != nil {
			return err
		}
		res := tx.Model(&model.Task{}).Where("id = ?", taskID).Update("category_id", categoryID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errTaskMissing
		}
		return nil
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errTaskMissing):
		return false, nil
	default:
		return false, classify("move task", err)
	}
}

// CountByStatus returns the number of tasks per status. Statuses with no
// tasks are absent from the map.
func (r *TaskRepository) CountByStatus(ctx context.Context) (map[model.Status]int64, error) {
	var rows []struct {
		Status model.Status
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, classify("count tasks", err)
	}

	counts := make(map[model.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
