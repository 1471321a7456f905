package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lsp-fixtures/internal/api"
	"lsp-fixtures/internal/domain"
	"lsp-fixtures/internal/errors"
	"lsp-fixtures/internal/logging"
	"lsp-fixtures/internal/manager"
)

type handlers struct {
	api          api.API
	defaultOwner string
}

type createTaskRequest struct {
	Owner       string `json:"owner"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    *int   `json:"priority"`
}

type taskResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Completed   bool   `json:"completed"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type completeResponse struct {
	ID        int  `json:"id"`
	Completed bool `json:"completed"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *handlers) owner(r *http.Request, requested string) string {
	if requested == "" {
		requested = r.URL.Query().Get("owner")
	}
	if requested == "" {
		return h.defaultOwner
	}
	return requested
}

func (h *handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseCompletionFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, err)
		return
	}

	tasks, err := h.api.ListTasks(r.Context(), h.owner(r, ""), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) addTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewInvalidInputError("body", nil, "malformed JSON"))
		return
	}
	defer r.Body.Close()

	opts := []manager.TaskOption{manager.WithDescription(req.Description)}
	if req.Priority != nil {
		opts = append(opts, manager.WithPriority(*req.Priority))
	}

	task, err := h.api.AddTask(r.Context(), h.owner(r, req.Owner), req.Title, opts...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (h *handlers) completeTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, errors.NewInvalidInputError("id", chi.URLParam(r, "id"), "must be an integer"))
		return
	}

	ok, err := h.api.CompleteTask(r.Context(), h.owner(r, ""), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, errors.NewNotFoundError("task", strconv.Itoa(id)))
		return
	}
	writeJSON(w, http.StatusOK, completeResponse{ID: id, Completed: true})
}

func (h *handlers) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.api.SummarizeTasks(r.Context(), h.owner(r, ""))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *handlers) displayName(w http.ResponseWriter, r *http.Request) {
	key, err := uuid.Parse(chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, errors.NewInvalidInputError("key", chi.URLParam(r, "key"), "must be a UUID"))
		return
	}

	user, err := h.api.GetUser(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"display_name": user.DisplayName()})
}

func toTaskResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Completed:   t.Completed,
		Status:      t.Status(),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func statusFor(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.ShouldLogError(err) {
		logging.Debugf("request failed: %v\n", err)
	}
	writeJSON(w, statusFor(err), errorResponse{
		Error: errors.GetUserMessage(err),
		Code:  errors.GetErrorCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debugf("failed to encode response: %v\n", err)
	}
}
