package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// DefaultCategory is used when a task is created without a category.
const DefaultCategory = "General"

const (
	moveAttempts = 3
	moveBackoff  = 50 * time.Millisecond
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	Priority    model.Priority
	DueDate     string
	Category    string
}

// TaskStore is implemented by repository.TaskRepository.
type TaskStore interface {
	List(ctx context.Context) ([]model.Task, error)
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	Create(ctx context.Context, in model.NewTask) (uint, error)
	Update(ctx context.Context, id uint, patch model.TaskPatch) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	MoveToCategory(ctx context.Context, taskID uint, name string) (bool, error)
	CountByStatus(ctx context.Context) (map[model.Status]int64, error)
}

// CategoryLister is implemented by repository.CategoryRepository.
type CategoryLister interface {
	List(ctx context.Context) ([]model.Category, error)
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo     TaskStore
	categoryRepo CategoryLister
}

func NewTaskService(taskRepo TaskStore, categoryRepo CategoryLister) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

// CreateTask fills in defaults, stores the task and returns it as persisted.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = DefaultCategory
	}
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	id, err := s.taskRepo.Create(ctx, model.NewTask{
		Title:        input.Title,
		Description:  input.Description,
		Priority:     priority,
		DueDate:      input.DueDate,
		CategoryName: category,
	})
	if err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.List(ctx)
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, id)
}

// UpdateTask applies a partial update. The category is never changed here;
// use MoveTask for that.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, patch model.TaskPatch) (bool, error) {
	return s.taskRepo.Update(ctx, id, patch)
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint) (bool, error) {
	return s.taskRepo.Delete(ctx, id)
}

// MoveTask moves a task to the named category, retrying a few times while
// the database is locked by another writer.
func (s *TaskService) MoveTask(ctx context.Context, id uint, category string) (bool, error) {
	var err error
	for attempt := 1; attempt <= moveAttempts; attempt++ {
		var moved bool
		moved, err = s.taskRepo.MoveToCategory(ctx, id, category)
		if !errors.Is(err, repository.ErrBusy) {
			return moved, err
		}
		log.Printf("[warn] move task %d: attempt %d/%d: %v", id, attempt, moveAttempts, err)
		if attempt == moveAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(time.Duration(attempt) * moveBackoff):
		}
	}
	return false, err
}

func (s *TaskService) StatusCounts(ctx context.Context) (map[model.Status]int64, error) {
	return s.taskRepo.CountByStatus(ctx)
}

func (s *TaskService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}
