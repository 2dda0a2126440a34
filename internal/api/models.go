package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/service"
)

// SignupRequest is the payload for POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"userRole" validate:"omitempty,oneof=ADMIN EMPLOYEE"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	JWT      string      `json:"jwt"`
	UserID   uuid.UUID   `json:"userId"`
	UserRole domain.Role `json:"userRole"`
}

// UserResponse is the public view of an identity.
type UserResponse struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	UserRole domain.Role `json:"userRole"`
}

// TaskRequest is the payload for creating or updating a task. DueDate
// accepts RFC 3339 timestamps and plain dates (2006-01-02).
type TaskRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	DueDate     string    `json:"dueDate" validate:"required"`
	Priority    string    `json:"priority" validate:"max=50"`
	EmployeeID  uuid.UUID `json:"employeeId" validate:"required"`
	TaskStatus  string    `json:"taskStatus"`
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	DueDate      time.Time         `json:"dueDate"`
	Priority     string            `json:"priority"`
	TaskStatus   domain.TaskStatus `json:"taskStatus"`
	EmployeeID   uuid.UUID         `json:"employeeId"`
	EmployeeName string            `json:"employeeName"`
}

// CommentRequest is the JSON form of a comment body. The content query
// parameter takes precedence when both are present.
type CommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse is the public view of a comment.
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	TaskID    uuid.UUID `json:"taskId"`
	UserID    uuid.UUID `json:"userId"`
	PostedBy  string    `json:"postedBy"`
}

func (req SignupRequest) input() service.SignupInput {
	return service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

func (req TaskRequest) input() (service.TaskInput, error) {
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return service.TaskInput{}, err
	}
	return service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Priority:    req.Priority,
		AssigneeID:  req.EmployeeID,
		Status:      req.TaskStatus,
	}, nil
}

func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError("dueDate",
		fmt.Sprintf("must be RFC 3339 or %s", time.DateOnly), domain.ErrValidation)
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, UserRole: u.Role}
}

func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	return out
}

func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		DueDate:      t.DueDate,
		Priority:     t.Priority,
		TaskStatus:   t.Status,
		EmployeeID:   t.AssigneeID,
		EmployeeName: t.AssigneeName,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

func commentToResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		TaskID:    c.TaskID,
		UserID:    c.AuthorID,
		PostedBy:  c.AuthorName,
	}
}

func commentsToResponse(comments []*domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentToResponse(c))
	}
	return out
}
