package devserver

import (
	"testing"
	"time"

	"ftms-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, *User, *User, *User) {
	store := NewStore()
	hod := store.AddUser("Head", "hod@ftms.local", domain.RoleHOD, "CSE", "x")
	f1 := store.AddUser("One", "one@ftms.local", domain.RoleFaculty, "CSE", "x")
	f2 := store.AddUser("Two", "two@ftms.local", domain.RoleFaculty, "ECE", "x")
	return store, hod, f1, f2
}

func mustCreateTask(t *testing.T, store *Store, hod, assignee *User, due time.Time) domain.Task {
	t.Helper()
	task, err := store.CreateTask(domain.TaskDraft{
		Title:            "write report",
		Description:      "quarterly report",
		DueAt:            due,
		AssignedToUserID: assignee.ID,
	}, hod)
	require.NoError(t, err)
	return task
}

func TestStore_CreateTask(t *testing.T) {
	store, hod, f1, _ := newTestStore()

	task := mustCreateTask(t, store, hod, f1, time.Now().Add(time.Hour))

	assert.Equal(t, domain.StatusPending, task.Status)
	assert.Equal(t, 3, task.Priority, "priority defaults to 3")
	assert.False(t, task.Locked)
	assert.Equal(t, f1.ID, task.AssignedTo.ID)
	assert.Equal(t, hod.ID, task.AssignedBy.ID)
	assert.Equal(t, "CSE", task.AssignedTo.Department)
}

func TestStore_CreateTaskUnknownAssignee(t *testing.T) {
	store, hod, _, _ := newTestStore()

	_, err := store.CreateTask(domain.TaskDraft{Title: "x", AssignedToUserID: 999}, hod)
	assert.ErrorIs(t, err, domain.ErrAssigneeNotFound)
}

func TestStore_StartTransitions(t *testing.T) {
	store, hod, f1, f2 := newTestStore()
	task := mustCreateTask(t, store, hod, f1, time.Now().Add(time.Hour))

	_, err := store.Start(task.ID, f2)
	assert.ErrorIs(t, err, domain.ErrNotAssignee)

	started, err := store.Start(task.ID, f1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, started.Status)

	_, err = store.Start(task.ID, f1)
	assert.ErrorIs(t, err, domain.ErrInvalidTaskState, "starting twice is invalid")
}

func TestStore_StartFromOverdue(t *testing.T) {
	store, hod, f1, _ := newTestStore()
	task := mustCreateTask(t, store, hod, f1, time.Now().Add(-time.Hour))
	require.Equal(t, 1, store.MarkOverdue())

	started, err := store.Start(task.ID, f1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, started.Status)
}

func TestStore_SubmitRequiresInProgress(t *testing.T) {
	store, hod, f1, _ := newTestStore()
	task := mustCreateTask(t, store, hod, f1, time.Now().Add(time.Hour))

	_, err := store.Submit(task.ID, f1, "done", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTaskState)

	_, err = store.Start(task.ID, f1)
	require.NoError(t, err)

	submitted, err := store.Submit(task.ID, f1, "done", []string{"https://repo/pr/1"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, submitted.Status)

	subs, err := store.Submissions(task.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, domain.DecisionPending, subs[0].Decision)
	assert.Equal(t, f1.ID, subs[0].SubmittedBy.ID)
	assert.Equal(t, []string{"https://repo/pr/1"}, subs[0].Links)
}

func TestStore_ReviewApprove(t *testing.T) {
	store, hod, f1, _ := newTestStore()
	task := mustCreateTask(t, store, hod, f1, time.Now().Add(time.Hour))
	_, err := store.Start(task.ID, f1)
	require.NoError(t, err)
	_, err = store.Submit(task.ID, f1, "done", nil)
	require.NoError(t, err)

	_, err = store.Review(task.ID, f1, domain.DecisionApproved, "")
	assert.ErrorIs(t, err, domain.ErrForbidden, "only an HOD may review")

	sub, err := store.Review(task.ID, hod, domain.DecisionApproved, "well done")
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionApproved, sub.Decision)
	assert.Equal(t, "well done", sub.DecisionNote)
	require.NotNil(t, sub.DecidedBy)
	assert.Equal(t, hod.ID, sub.DecidedBy.ID)
	require.NotNil(t, sub.DecidedAt)

	after, err := store.TaskByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, after.Status)
	assert.True(t, after.Locked)

	// A completed task cannot be started or submitted again.
	_, err = store.Start(task.ID, f1)
	assert.ErrorIs(t, err, domain.ErrTaskLocked)
}

func TestStore_ReviewReject(t *testing.T) {
	store, hod, f1, _ := newTestStore()
	task := mustCreateTask(t, store, hod, f1, time.Now().Add(time.Hour))
	_, err := store.Start(task.ID, f1)
	require.NoError(t, err)
	_, err = store.Submit(task.ID, f1, "half done", nil)
	require.NoError(t, err)

	sub, err := store.Review(task.ID, hod, domain.DecisionRejected, "needs detail")
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionRejected, sub.Decision)

	after, err := store.TaskByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, after.Status)
	assert.False(t, after.Locked)
}

func TestStore_ReviewInvalidDecision(t *testing.T) {
	store, hod, f1, _ := newTestStore()
	task := mustCreateTask(t, store, hod, f1, time.Now().Add(time.Hour))
	_, err := store.Start(task.ID, f1)
	require.NoError(t, err)
	_, err = store.Submit(task.ID, f1, "done", nil)
	require.NoError(t, err)

	_, err = store.Review(task.ID, hod, domain.DecisionPending, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_ListTasksVisibility(t *testing.T) {
	store, hod, f1, f2 := newTestStore()
	mustCreateTask(t, store, hod, f1, time.Now().Add(time.Hour))
	mustCreateTask(t, store, hod, f2, time.Now().Add(time.Hour))

	assert.Len(t, store.ListTasks(hod, ""), 2, "HOD sees every task")
	assert.Len(t, store.ListTasks(f1, ""), 1, "faculty sees own assignments only")

	f1Tasks := store.ListTasks(f1, "")
	assert.Equal(t, f1.ID, f1Tasks[0].AssignedTo.ID)

	assert.Len(t, store.ListTasks(hod, domain.StatusPending), 2)
	assert.Empty(t, store.ListTasks(hod, domain.StatusCompleted))
}

func TestStore_ListTasksByUser(t *testing.T) {
	store, hod, f1, f2 := newTestStore()
	mustCreateTask(t, store, hod, f1, time.Now().Add(time.Hour))
	mustCreateTask(t, store, hod, f2, time.Now().Add(time.Hour))

	tasks, err := store.ListTasksByUser(f2.ID, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, f2.ID, tasks[0].AssignedTo.ID)

	_, err = store.ListTasksByUser(999, "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_MarkOverdue(t *testing.T) {
	store, hod, f1, f2 := newTestStore()
	pastPending := mustCreateTask(t, store, hod, f1, time.Now().Add(-time.Hour))
	future := mustCreateTask(t, store, hod, f1, time.Now().Add(time.Hour))
	pastSubmitted := mustCreateTask(t, store, hod, f2, time.Now().Add(-time.Hour))
	_, err := store.Start(pastSubmitted.ID, f2)
	require.NoError(t, err)
	_, err = store.Submit(pastSubmitted.ID, f2, "done", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, store.MarkOverdue())

	got, err := store.TaskByID(pastPending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOverdue, got.Status)

	got, err = store.TaskByID(future.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)

	got, err = store.TaskByID(pastSubmitted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, got.Status, "submitted tasks are left alone")

	assert.Zero(t, store.MarkOverdue(), "second sweep changes nothing")
}

func TestStore_UpdateStatus(t *testing.T) {
	store, hod, f1, f2 := newTestStore()
	task := mustCreateTask(t, store, hod, f1, time.Now().Add(time.Hour))

	_, err := store.UpdateStatus(task.ID, f2, domain.StatusInProgress)
	assert.ErrorIs(t, err, domain.ErrNotAssignee)

	_, err = store.UpdateStatus(task.ID, f1, "BOGUS")
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)

	updated, err := store.UpdateStatus(task.ID, f1, domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
}

func TestStore_SubmissionsNewestFirst(t *testing.T) {
	store, hod, f1, _ := newTestStore()

	// Deterministic clock so the two submissions get distinct times.
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	task := mustCreateTask(t, store, hod, f1, base.Add(24*time.Hour))
	_, err := store.Start(task.ID, f1)
	require.NoError(t, err)
	_, err = store.Submit(task.ID, f1, "first attempt", nil)
	require.NoError(t, err)
	_, err = store.Review(task.ID, hod, domain.DecisionRejected, "redo")
	require.NoError(t, err)
	_, err = store.Start(task.ID, f1)
	require.NoError(t, err)
	_, err = store.Submit(task.ID, f1, "second attempt", nil)
	require.NoError(t, err)

	subs, err := store.Submissions(task.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "second attempt", subs[0].Summary)
	assert.Equal(t, "first attempt", subs[1].Summary)
}
