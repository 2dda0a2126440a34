package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/service"
)

// CommentHandler serves the comment endpoints for both roles.
type CommentHandler struct {
	comments service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// CreateComment handles POST .../task/comment/{taskId}. The content comes
// from the content query parameter or, failing that, a JSON body.
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	principal, taskID, ok := handlePrincipalAndPathUUID(w, r, "taskId")
	if !ok {
		return
	}

	content := r.URL.Query().Get("content")
	if content == "" {
		var req CommentRequest
		if err := shared.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
			return
		}
		content = req.Content
	}

	comment, err := h.comments.CreateComment(r.Context(), principal, taskID, content)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, commentToResponse(comment))
}

// ListComments handles GET .../comments/{taskId}.
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	principal, taskID, ok := handlePrincipalAndPathUUID(w, r, "taskId")
	if !ok {
		return
	}

	comments, err := h.comments.ListComments(r.Context(), principal, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, commentsToResponse(comments))
}
