package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	t.Parallel()

	taskID, authorID := uuid.New(), uuid.New()

	c, err := NewComment(taskID, authorID, "  looks good  ")
	require.NoError(t, err)
	assert.Equal(t, "looks good", c.Content)
	assert.Equal(t, taskID, c.TaskID)
	assert.Equal(t, authorID, c.AuthorID)
	assert.False(t, c.CreatedAt.IsZero())

	_, err = NewComment(uuid.Nil, authorID, "x")
	assert.ErrorIs(t, err, ErrEmptyCommentTaskID)

	_, err = NewComment(taskID, uuid.Nil, "x")
	assert.ErrorIs(t, err, ErrEmptyCommentAuthorID)

	_, err = NewComment(taskID, authorID, "   ")
	assert.ErrorIs(t, err, ErrEmptyCommentContent)
}
