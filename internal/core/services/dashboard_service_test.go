package services

import (
	"testing"
	"time"

	"ftms-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

var statsNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newFixedDashboard() *DashboardService {
	svc := NewDashboardService(nil)
	svc.now = func() time.Time { return statsNow }
	return svc
}

func task(id int64, status domain.TaskStatus, due, updated time.Time) domain.Task {
	return domain.Task{ID: id, Title: "t", Status: status, DueAt: due, UpdatedAt: updated}
}

func TestDashboardService_Stats(t *testing.T) {
	past := statsNow.Add(-time.Hour)
	future := statsNow.Add(time.Hour)

	tasks := []domain.Task{
		task(1, domain.StatusPending, future, statsNow),
		task(2, domain.StatusInProgress, past, statsNow), // past due, counts as overdue too
		task(3, domain.StatusSubmitted, future, statsNow),
		task(4, domain.StatusCompleted, past, statsNow), // completed is never overdue
		task(5, domain.StatusOverdue, past, statsNow),
	}

	stats := newFixedDashboard().Stats(tasks)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 1, stats.Submitted)
	assert.Equal(t, 1, stats.Completed)
	// Display-side overdue: past due and not completed, regardless of
	// the server-reported status.
	assert.Equal(t, 2, stats.Overdue)
}

func TestDashboardService_PieSegmentsDropZeroCounts(t *testing.T) {
	future := statsNow.Add(time.Hour)
	tasks := []domain.Task{
		task(1, domain.StatusPending, future, statsNow),
		task(2, domain.StatusPending, future, statsNow),
		task(3, domain.StatusCompleted, future, statsNow),
	}

	segments := newFixedDashboard().PieSegments(tasks)

	assert.Equal(t, []PieSegment{
		{Label: "Pending", Count: 2},
		{Label: "Completed", Count: 1},
	}, segments)
}

func TestDashboardService_PieSegmentsEmptyList(t *testing.T) {
	assert.Empty(t, newFixedDashboard().PieSegments(nil))
}

func TestDashboardService_PendingReviews(t *testing.T) {
	future := statsNow.Add(time.Hour)
	tasks := []domain.Task{
		task(1, domain.StatusSubmitted, statsNow.Add(3*time.Hour), statsNow),
		task(2, domain.StatusPending, future, statsNow),
		task(3, domain.StatusSubmitted, statsNow.Add(time.Hour), statsNow),
		task(4, domain.StatusSubmitted, statsNow.Add(2*time.Hour), statsNow),
	}

	reviews := newFixedDashboard().PendingReviews(tasks)

	ids := make([]int64, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.ID)
	}
	// Submitted only, soonest due first.
	assert.Equal(t, []int64{3, 4, 1}, ids)
}

func TestDashboardService_PendingReviewsCapsAtFive(t *testing.T) {
	tasks := make([]domain.Task, 0, 7)
	for i := int64(1); i <= 7; i++ {
		tasks = append(tasks, task(i, domain.StatusSubmitted, statsNow.Add(time.Duration(i)*time.Hour), statsNow))
	}

	reviews := newFixedDashboard().PendingReviews(tasks)
	assert.Len(t, reviews, 5)
}

func TestDashboardService_RecentTasks(t *testing.T) {
	tasks := []domain.Task{
		task(1, domain.StatusPending, statsNow, statsNow.Add(-3*time.Hour)),
		task(2, domain.StatusPending, statsNow, statsNow.Add(-time.Hour)),
		task(3, domain.StatusPending, statsNow, statsNow.Add(-2*time.Hour)),
	}

	recent := newFixedDashboard().RecentTasks(tasks)

	ids := make([]int64, 0, len(recent))
	for _, r := range recent {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{2, 3, 1}, ids)
}
