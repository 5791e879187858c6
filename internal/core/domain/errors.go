package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Task errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskLocked        = errors.New("task is locked (completed)")
	ErrInvalidTaskState  = errors.New("invalid task state for this action")
	ErrNotAssignee       = errors.New("only the assignee can perform this action")
	ErrNoPendingReview   = errors.New("no pending submission")
	ErrAssigneeNotFound  = errors.New("assignee not found")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)
