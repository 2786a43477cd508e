package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tasklight/tasklight/internal/auth"
	"github.com/tasklight/tasklight/internal/handler/dto"
	"github.com/tasklight/tasklight/internal/service"
)

// TaskHandler handles task CRUD scoped to the authenticated user.
type TaskHandler struct {
	svc    *service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.MustUserIDFromContext(r.Context())

	tasks, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		h.handleTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskListResponse(tasks))
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.MustUserIDFromContext(r.Context())

	var req dto.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.svc.Create(r.Context(), ownerID, req.Text)
	if err != nil {
		h.handleTaskError(w, r, err)
		return
	}

	h.logger.Info("task_created",
		"task_id", task.ID,
		"request_id", requestID(r),
	)

	writeJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.MustUserIDFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Task ID is required")
		return
	}

	var req dto.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.svc.Update(r.Context(), ownerID, id, req.Text)
	if err != nil {
		h.handleTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// Delete handles DELETE /tasks/{id}.
// Deleting a task that does not exist (or belongs to someone else)
// reports success; the operation is idempotent.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.MustUserIDFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Task ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		h.handleTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Task deleted"})
}

// handleTaskError maps task service errors to HTTP responses.
// A foreign task and a missing task return the same 404 so task IDs
// cannot be probed across users.
func (h *TaskHandler) handleTaskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "TASK_NOT_FOUND", "Task not found")
	case errors.Is(err, service.ErrEmptyText):
		writeError(w, http.StatusBadRequest, "VALIDATION", "Task text must not be empty")
	case errors.Is(err, service.ErrTextTooLong):
		writeError(w, http.StatusBadRequest, "VALIDATION", "Task text is too long")
	default:
		h.logger.Error("task request failed",
			"error", err.Error(),
			"request_id", requestID(r),
		)
		writeServerError(w)
	}
}
