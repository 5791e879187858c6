package devserver

import (
	"errors"
	"strconv"

	"ftms-portal/internal/core/domain"
	"ftms-portal/internal/pkg/jwt"
	"ftms-portal/internal/pkg/password"
	"ftms-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handler carries the dev server's handler dependencies
type Handler struct {
	store         *Store
	jwtSecret     string
	expiryMinutes int
}

// NewHandler creates the dev server handler set
func NewHandler(store *Store, jwtSecret string, expiryMinutes int) *Handler {
	return &Handler{store: store, jwtSecret: jwtSecret, expiryMinutes: expiryMinutes}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/auth/login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, ok := h.store.UserByEmail(req.Email)
	if !ok || !password.Verify(req.Password, user.PasswordHash) {
		return response.Unauthorized(c, "Invalid email or password")
	}

	token, err := jwt.Generate(user.ID, user.Email, user.Name, string(user.Role), h.jwtSecret, h.expiryMinutes)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue token")
	}
	return c.JSON(tokenResponse{Token: token})
}

// Me handles GET /api/auth/me
func (h *Handler) Me(c *fiber.Ctx) error {
	user := CurrentUser(c)
	return c.JSON(domain.User{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// ListTasks handles GET /api/tasks
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	filter, err := statusFilter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return c.JSON(h.store.ListTasks(CurrentUser(c), filter))
}

// GetTask handles GET /api/tasks/:id
func (h *Handler) GetTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task id")
	}

	task, err := h.store.TaskByID(id)
	if err != nil {
		return h.storeError(c, err)
	}

	current := CurrentUser(c)
	isHod := current.Role == domain.RoleHOD
	isAssignee := task.AssignedTo.ID == current.ID
	isAssigner := task.AssignedBy.ID == current.ID
	if !isHod && !isAssignee && !isAssigner {
		return response.Forbidden(c, "Not allowed to view this task")
	}
	return c.JSON(task)
}

// CreateTask handles POST /api/tasks (HOD or ADMIN only)
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	var draft domain.TaskDraft
	if err := c.BodyParser(&draft); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if draft.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	task, err := h.store.CreateTask(draft, CurrentUser(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// ListTasksByUser handles GET /api/tasks/by-user/:userId
func (h *Handler) ListTasksByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}
	filter, err := statusFilter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	current := CurrentUser(c)
	if current.Role != domain.RoleHOD && current.ID != userID {
		return response.Forbidden(c, "You can only view your own tasks")
	}

	tasks, err := h.store.ListTasksByUser(userID, filter)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(tasks)
}

type updateStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

// UpdateStatus handles PUT /api/tasks/:id/status
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task id")
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.store.UpdateStatus(id, CurrentUser(c), req.Status)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(task)
}

// StartTask handles PATCH /api/tasks/:id/start
func (h *Handler) StartTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task id")
	}

	task, err := h.store.Start(id, CurrentUser(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(task)
}

type submitRequest struct {
	Summary string   `json:"summary"`
	Links   []string `json:"links"`
}

// SubmitTask handles POST /api/tasks/:id/submit
func (h *Handler) SubmitTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task id")
	}
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.store.Submit(id, CurrentUser(c), req.Summary, req.Links)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(task)
}

type reviewRequest struct {
	Decision domain.Decision `json:"decision"`
	Note     string          `json:"note"`
}

// ReviewTask handles POST /api/tasks/:id/review
func (h *Handler) ReviewTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task id")
	}
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sub, err := h.store.Review(id, CurrentUser(c), req.Decision, req.Note)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(sub)
}

// ListSubmissions handles GET /api/tasks/:id/submissions
func (h *Handler) ListSubmissions(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task id")
	}

	subs, err := h.store.Submissions(id)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(subs)
}

// storeError maps store errors onto HTTP statuses
func (h *Handler) storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound), errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrNotAssignee), errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrTaskLocked),
		errors.Is(err, domain.ErrInvalidTaskState),
		errors.Is(err, domain.ErrNoPendingReview):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrAssigneeNotFound),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}

func taskID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func statusFilter(c *fiber.Ctx) (domain.TaskStatus, error) {
	raw := c.Query("status")
	if raw == "" {
		return "", nil
	}
	status := domain.TaskStatus(raw)
	if !domain.ValidStatus(status) {
		return "", errors.New("Invalid status: " + raw)
	}
	return status, nil
}
