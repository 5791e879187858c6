package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ftms-portal/internal/core/domain"
)

// TaskClient wraps the task endpoints. Every operation maps 1:1 to a
// remote endpoint; domain validation belongs to the callers.
type TaskClient struct {
	gw *Gateway
}

// NewTaskClient creates a task client over gw
func NewTaskClient(gw *Gateway) *TaskClient {
	return &TaskClient{gw: gw}
}

func statusQuery(status domain.TaskStatus) string {
	if status == "" {
		return ""
	}
	return "?status=" + url.QueryEscape(string(status))
}

// List fetches the tasks visible to the current user, optionally
// filtered by status. An empty status means no filter.
func (c *TaskClient) List(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.gw.Do(ctx, http.MethodGet, "/tasks"+statusQuery(status), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get fetches a single task by id
func (c *TaskClient) Get(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := c.gw.Do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

type updateStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

// UpdateStatus requests a status change for a task
func (c *TaskClient) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error) {
	var task domain.Task
	err := c.gw.Do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d/status", id), updateStatusRequest{Status: status}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Start requests the pending-to-in-progress transition
func (c *TaskClient) Start(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := c.gw.Do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/start", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

type submitRequest struct {
	Summary string   `json:"summary"`
	Links   []string `json:"links"`
}

// Submit submits completed work on a task for review
func (c *TaskClient) Submit(ctx context.Context, id int64, summary string, links []string) (*domain.Task, error) {
	var task domain.Task
	err := c.gw.Do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/submit", id), submitRequest{Summary: summary, Links: links}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

type reviewRequest struct {
	Decision domain.Decision `json:"decision"`
	Note     string          `json:"note,omitempty"`
}

// Review records a review decision on the latest pending submission
func (c *TaskClient) Review(ctx context.Context, id int64, decision domain.Decision, note string) (*domain.Submission, error) {
	var sub domain.Submission
	err := c.gw.Do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/review", id), reviewRequest{Decision: decision, Note: note}, &sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Submissions fetches the submission history of a task, newest first
func (c *TaskClient) Submissions(ctx context.Context, id int64) ([]domain.Submission, error) {
	var subs []domain.Submission
	if err := c.gw.Do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d/submissions", id), nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Create creates and assigns a new task
func (c *TaskClient) Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	var task domain.Task
	if err := c.gw.Do(ctx, http.MethodPost, "/tasks", draft, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser fetches the tasks assigned to a specific user, optionally
// filtered by status
func (c *TaskClient) ListByUser(ctx context.Context, userID int64, status domain.TaskStatus) ([]domain.Task, error) {
	var tasks []domain.Task
	endpoint := fmt.Sprintf("/tasks/by-user/%d%s", userID, statusQuery(status))
	if err := c.gw.Do(ctx, http.MethodGet, endpoint, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
