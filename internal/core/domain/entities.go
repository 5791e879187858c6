package domain

import "time"

// Role represents a user role in the portal
type Role string

const (
	RoleHOD     Role = "HOD"
	RoleFaculty Role = "FACULTY"
	RoleAdmin   Role = "ADMIN"
)

// TaskStatus represents the server-reported task lifecycle state.
// The client never computes transitions itself; it displays the status
// and issues request-for-transition calls.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusSubmitted  TaskStatus = "SUBMITTED"
	StatusOverdue    TaskStatus = "OVERDUE"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// ValidStatus reports whether s is one of the known task statuses
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusSubmitted, StatusOverdue, StatusCompleted:
		return true
	}
	return false
}

// Decision represents a review decision on a submission
type Decision string

const (
	DecisionPending  Decision = "PENDING"
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// User represents the identity returned by /auth/me
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// MiniUser is the reduced user projection embedded in task and
// submission records
type MiniUser struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

// Task represents a task as reported by the server
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueAt       time.Time  `json:"dueAt"`
	Status      TaskStatus `json:"status"`
	Priority    int        `json:"priority"` // 1 (high) .. 5 (low)
	Locked      bool       `json:"locked"`
	AssignedTo  MiniUser   `json:"assignedTo"`
	AssignedBy  MiniUser   `json:"assignedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskDraft represents the POST /tasks payload for task creation
type TaskDraft struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	DueAt            time.Time `json:"dueAt"`
	AssignedToUserID int64     `json:"assignedToUserId"`
	Priority         *int      `json:"priority,omitempty"`
}

// Submission represents a review record attached to a task
type Submission struct {
	ID           int64      `json:"id"`
	TaskID       int64      `json:"taskId"`
	SubmittedBy  MiniUser   `json:"submittedBy"`
	Summary      string     `json:"summary"`
	Links        []string   `json:"links"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	Decision     Decision   `json:"decision"`
	DecisionNote string     `json:"decisionNote,omitempty"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	DecidedBy    *MiniUser  `json:"decidedBy,omitempty"`
}
