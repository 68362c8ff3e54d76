package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"task-tracker/internal/model"
)

// StatusCounter is the part of the task store the report needs.
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[model.Status]int64, error)
}

// ReportService builds human-readable status summaries.
type ReportService struct {
	counter StatusCounter
}

func NewReportService(counter StatusCounter) *ReportService {
	return &ReportService{counter: counter}
}

// StatusSummary lists the task count for every status, including empty ones,
// followed by the total.
func (s *ReportService) StatusSummary(ctx context.Context, now time.Time) (string, error) {
	counts, err := s.counter.CountByStatus(ctx)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Task status report %s\n", now.Format(model.TimestampLayout)))

	var total int64
	for _, status := range model.Statuses {
		n := counts[status]
		total += n
		builder.WriteString(fmt.Sprintf("%s %s: %d\n", statusIcon(status), status, n))
	}
	builder.WriteString(fmt.Sprintf("Total: %d", total))

	return builder.String(), nil
}

func statusIcon(status model.Status) string {
	switch status {
	case model.StatusCompleted:
		return "✅"
	case model.StatusInProgress:
		return "⏳"
	default:
		return "🟢"
	}
}
