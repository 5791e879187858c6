package services

import (
	"context"
	"sort"
	"time"

	"ftms-portal/internal/adapters/api"
	"ftms-portal/internal/core/domain"
)

// DashboardService computes the dashboard statistics and the pie-chart
// summary from the task list. All numbers are derived client-side from
// a single fetch; nothing here mutates server state.
type DashboardService struct {
	tasks *api.TaskClient
	now   func() time.Time
}

// NewDashboardService creates a dashboard service over the task client
func NewDashboardService(tasks *api.TaskClient) *DashboardService {
	return &DashboardService{tasks: tasks, now: time.Now}
}

// TaskStats represents the dashboard counters
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Submitted  int `json:"submitted"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
}

// PieSegment represents one labeled slice of the status pie chart
type PieSegment struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardData bundles everything the dashboard view renders
type DashboardData struct {
	Stats          TaskStats     `json:"stats"`
	Pie            []PieSegment  `json:"pie"`
	PendingReviews []domain.Task `json:"pending_reviews"`
	RecentTasks    []domain.Task `json:"recent_tasks"`
}

// Load fetches the visible tasks and computes the dashboard data
func (s *DashboardService) Load(ctx context.Context) (*DashboardData, error) {
	tasks, err := s.tasks.List(ctx, "")
	if err != nil {
		return nil, err
	}
	return &DashboardData{
		Stats:          s.Stats(tasks),
		Pie:            s.PieSegments(tasks),
		PendingReviews: s.PendingReviews(tasks),
		RecentTasks:    s.RecentTasks(tasks),
	}, nil
}

// isDisplayOverdue applies the dashboard's own overdue definition: past
// due and not completed, regardless of the server-reported status.
func (s *DashboardService) isDisplayOverdue(t domain.Task) bool {
	return t.DueAt.Before(s.now()) && t.Status != domain.StatusCompleted
}

// Stats counts tasks per status. Overdue uses the display-side
// definition rather than the OVERDUE status alone.
func (s *DashboardService) Stats(tasks []domain.Task) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusSubmitted:
			stats.Submitted++
		case domain.StatusCompleted:
			stats.Completed++
		}
		if s.isDisplayOverdue(t) {
			stats.Overdue++
		}
	}
	return stats
}

// PieSegments builds the pie-chart summary. Zero-count segments are
// dropped so the chart never renders empty slices.
func (s *DashboardService) PieSegments(tasks []domain.Task) []PieSegment {
	stats := s.Stats(tasks)
	all := []PieSegment{
		{Label: "In Progress", Count: stats.InProgress},
		{Label: "Overdue", Count: stats.Overdue},
		{Label: "Pending", Count: stats.Pending},
		{Label: "Completed", Count: stats.Completed},
		{Label: "Submitted", Count: stats.Submitted},
	}
	segments := make([]PieSegment, 0, len(all))
	for _, seg := range all {
		if seg.Count > 0 {
			segments = append(segments, seg)
		}
	}
	return segments
}

// PendingReviews returns up to five submitted tasks, soonest due first
func (s *DashboardService) PendingReviews(tasks []domain.Task) []domain.Task {
	reviews := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.Status == domain.StatusSubmitted {
			reviews = append(reviews, t)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].DueAt.Before(reviews[j].DueAt)
	})
	return capTasks(reviews, 5)
}

// RecentTasks returns up to five tasks, most recently updated first
func (s *DashboardService) RecentTasks(tasks []domain.Task) []domain.Task {
	recent := make([]domain.Task, len(tasks))
	copy(recent, tasks)
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
	})
	return capTasks(recent, 5)
}

func capTasks(tasks []domain.Task, n int) []domain.Task {
	if len(tasks) > n {
		return tasks[:n]
	}
	return tasks
}
