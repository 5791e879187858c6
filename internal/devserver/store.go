package devserver

import (
	"sort"
	"sync"
	"time"

	"ftms-portal/internal/core/domain"
)

// User is a seeded portal account held by the dev store
type User struct {
	domain.MiniUser
	PasswordHash string
}

// Store is the dev server's in-memory backing store. It mirrors the
// observable behavior of the real portal backend: task state
// transitions, submission records, and the overdue sweep.
type Store struct {
	mu          sync.RWMutex
	users       map[int64]*User
	tasks       map[int64]*domain.Task
	submissions map[int64]*domain.Submission
	nextUserID  int64
	nextTaskID  int64
	nextSubID   int64
	now         func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:       make(map[int64]*User),
		tasks:       make(map[int64]*domain.Task),
		submissions: make(map[int64]*domain.Submission),
		now:         time.Now,
	}
}

// AddUser registers an account and returns it
func (s *Store) AddUser(name, email string, role domain.Role, department, passwordHash string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	u := &User{
		MiniUser: domain.MiniUser{
			ID:         s.nextUserID,
			Name:       name,
			Email:      email,
			Role:       role,
			Department: department,
		},
		PasswordHash: passwordHash,
	}
	s.users[u.ID] = u
	return u
}

// UserByEmail looks up an account by email
func (s *Store) UserByEmail(email string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return nil, false
}

// UserByID looks up an account by id
func (s *Store) UserByID(id int64) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// CreateTask creates a PENDING task assigned by assigner
func (s *Store) CreateTask(draft domain.TaskDraft, assigner *User) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignee, ok := s.users[draft.AssignedToUserID]
	if !ok {
		return domain.Task{}, domain.ErrAssigneeNotFound
	}

	priority := 3
	if draft.Priority != nil {
		priority = *draft.Priority
	}

	now := s.now()
	s.nextTaskID++
	t := &domain.Task{
		ID:          s.nextTaskID,
		Title:       draft.Title,
		Description: draft.Description,
		DueAt:       draft.DueAt,
		Status:      domain.StatusPending,
		Priority:    priority,
		AssignedTo:  assignee.MiniUser,
		AssignedBy:  assigner.MiniUser,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[t.ID] = t
	return *t, nil
}

// TaskByID returns a copy of a task
func (s *Store) TaskByID(id int64) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return *t, nil
}

// ListTasks returns the tasks visible to requester: everything for an
// HOD, own assignments otherwise. An empty filter means all statuses.
func (s *Store) ListTasks(requester *User, filter domain.TaskStatus) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Task, 0)
	for _, t := range s.tasks {
		if requester.Role != domain.RoleHOD && t.AssignedTo.ID != requester.ID {
			continue
		}
		if filter != "" && t.Status != filter {
			continue
		}
		result = append(result, *t)
	}
	sortTasksByID(result)
	return result
}

// ListTasksByUser returns the tasks assigned to a specific user
func (s *Store) ListTasksByUser(userID int64, filter domain.TaskStatus) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	result := make([]domain.Task, 0)
	for _, t := range s.tasks {
		if t.AssignedTo.ID != userID {
			continue
		}
		if filter != "" && t.Status != filter {
			continue
		}
		result = append(result, *t)
	}
	sortTasksByID(result)
	return result, nil
}

// Start moves a task from PENDING or OVERDUE into IN_PROGRESS.
// Only the assignee may start a task.
func (s *Store) Start(taskID int64, current *User) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if t.AssignedTo.ID != current.ID {
		return domain.Task{}, domain.ErrNotAssignee
	}
	if t.Locked {
		return domain.Task{}, domain.ErrTaskLocked
	}
	if t.Status != domain.StatusPending && t.Status != domain.StatusOverdue {
		return domain.Task{}, domain.ErrInvalidTaskState
	}

	t.Status = domain.StatusInProgress
	t.UpdatedAt = s.now()
	return *t, nil
}

// Submit moves an IN_PROGRESS task to SUBMITTED and records a pending
// submission. Only the assignee may submit.
func (s *Store) Submit(taskID int64, current *User, summary string, links []string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if t.AssignedTo.ID != current.ID {
		return domain.Task{}, domain.ErrNotAssignee
	}
	if t.Locked {
		return domain.Task{}, domain.ErrTaskLocked
	}
	if t.Status != domain.StatusInProgress {
		return domain.Task{}, domain.ErrInvalidTaskState
	}

	if links == nil {
		links = []string{}
	}
	s.nextSubID++
	sub := &domain.Submission{
		ID:          s.nextSubID,
		TaskID:      taskID,
		SubmittedBy: current.MiniUser,
		Summary:     summary,
		Links:       links,
		SubmittedAt: s.now(),
		Decision:    domain.DecisionPending,
	}
	s.submissions[sub.ID] = sub

	t.Status = domain.StatusSubmitted
	t.UpdatedAt = s.now()
	return *t, nil
}

// Review decides the latest pending submission on a SUBMITTED task.
// APPROVED completes and locks the task; REJECTED sends it back to
// PENDING. Only an HOD may review.
func (s *Store) Review(taskID int64, current *User, decision domain.Decision, note string) (domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return domain.Submission{}, domain.ErrTaskNotFound
	}
	if current.Role != domain.RoleHOD {
		return domain.Submission{}, domain.ErrForbidden
	}
	if t.Status != domain.StatusSubmitted {
		return domain.Submission{}, domain.ErrInvalidTaskState
	}
	if decision != domain.DecisionApproved && decision != domain.DecisionRejected {
		return domain.Submission{}, domain.ErrInvalidInput
	}

	sub := s.latestPendingSubmission(taskID)
	if sub == nil {
		return domain.Submission{}, domain.ErrNoPendingReview
	}

	now := s.now()
	sub.Decision = decision
	sub.DecisionNote = note
	sub.DecidedAt = &now
	decider := current.MiniUser
	sub.DecidedBy = &decider

	if decision == domain.DecisionApproved {
		t.Status = domain.StatusCompleted
		t.Locked = true
	} else {
		t.Status = domain.StatusPending
		t.Locked = false
	}
	t.UpdatedAt = now
	return *sub, nil
}

// UpdateStatus sets a task's status directly. Only the assignee may
// change a task's status, and only to a known status value.
func (s *Store) UpdateStatus(taskID int64, current *User, status domain.TaskStatus) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if t.AssignedTo.ID != current.ID {
		return domain.Task{}, domain.ErrNotAssignee
	}
	if !domain.ValidStatus(status) {
		return domain.Task{}, domain.ErrInvalidTaskStatus
	}
	if t.Locked {
		return domain.Task{}, domain.ErrTaskLocked
	}

	t.Status = status
	t.UpdatedAt = s.now()
	return *t, nil
}

// Submissions returns the submission history of a task, newest first
func (s *Store) Submissions(taskID int64) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.tasks[taskID]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	result := make([]domain.Submission, 0)
	for _, sub := range s.submissions {
		if sub.TaskID == taskID {
			result = append(result, *sub)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

// MarkOverdue flips past-due tasks to OVERDUE, leaving SUBMITTED and
// COMPLETED tasks alone. Returns the number of tasks changed.
func (s *Store) MarkOverdue() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	changed := 0
	for _, t := range s.tasks {
		if !t.DueAt.Before(now) {
			continue
		}
		if t.Status == domain.StatusSubmitted || t.Status == domain.StatusCompleted || t.Status == domain.StatusOverdue {
			continue
		}
		t.Status = domain.StatusOverdue
		t.UpdatedAt = now
		changed++
	}
	return changed
}

func (s *Store) latestPendingSubmission(taskID int64) *domain.Submission {
	var latest *domain.Submission
	for _, sub := range s.submissions {
		if sub.TaskID != taskID || sub.Decision != domain.DecisionPending {
			continue
		}
		if latest == nil || sub.SubmittedAt.After(latest.SubmittedAt) {
			latest = sub
		}
	}
	return latest
}

func sortTasksByID(tasks []domain.Task) {
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
}
