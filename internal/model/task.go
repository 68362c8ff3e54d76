package model

// TimestampLayout is the textual format of created_at columns.
const TimestampLayout = "2006-01-02 15:04:05"

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Status is the progress state of a task.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Task represents a single tracked item.
type Task struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Title       string   `gorm:"not null" json:"title"`
	Description string   `json:"description"`
	Priority    Priority `gorm:"type:text;not null;default:Medium;check:chk_tasks_priority,priority IN ('Low','Medium','High')" json:"priority"`
	DueDate     string   `json:"due_date"`
	Status      Status   `gorm:"type:text;not null;default:Pending;check:chk_tasks_status,status IN ('Pending','In Progress','Completed')" json:"status"`
	CreatedAt   string   `gorm:"not null" json:"created_at"`
	CategoryID  uint     `gorm:"not null;index" json:"category_id"`
}

// NewTask carries the values needed to insert a task. The category is given
// by name and resolved (or created) by the store.
type NewTask struct {
	Title        string
	Description  string
	Priority     Priority
	DueDate      string
	CategoryName string
}

// TaskPatch is a partial update. A nil field is left unchanged; a non-nil
// pointer to an empty string is written as-is.
type TaskPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *Priority `json:"priority"`
	DueDate     *string   `json:"due_date"`
	Status      *Status   `json:"status"`
}

// IsEmpty reports whether the patch names no fields.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.DueDate == nil && p.Status == nil
}

// Columns returns the column/value pairs supplied by the patch.
func (p TaskPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Priority != nil {
		cols["priority"] = string(*p.Priority)
	}
	if p.DueDate != nil {
		cols["due_date"] = *p.DueDate
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	return cols
}
