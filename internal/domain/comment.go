package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment validation errors
var (
	ErrEmptyCommentID       = errors.New("comment ID cannot be empty")
	ErrEmptyCommentTaskID   = errors.New("comment task ID cannot be empty")
	ErrEmptyCommentAuthorID = errors.New("comment author ID cannot be empty")
	ErrEmptyCommentContent  = errors.New("comment content cannot be empty")
)

// Comment is an immutable note attached to a task.
type Comment struct {
	ID       uuid.UUID `json:"id"`
	TaskID   uuid.UUID `json:"task_id"`
	AuthorID uuid.UUID `json:"author_id"`

	// AuthorName is filled in by reads; it is never written.
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewComment creates a comment authored now.
func NewComment(taskID, authorID uuid.UUID, content string) (*Comment, error) {
	comment := &Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		AuthorID:  authorID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UTC(),
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}
	return comment, nil
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	switch {
	case c.ID == uuid.Nil:
		return ErrEmptyCommentID
	case c.TaskID == uuid.Nil:
		return ErrEmptyCommentTaskID
	case c.AuthorID == uuid.Nil:
		return ErrEmptyCommentAuthorID
	case c.Content == "":
		return ErrEmptyCommentContent
	}
	return nil
}
