package api

import (
	"log/slog"
	"net/http"

	"github.com/foodbridge/match-api/internal/api/shared"
	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/service"
	"github.com/google/uuid"
)

// TaskHandler serves the match task endpoints: request, poll, confirm, and
// complete.
type TaskHandler struct {
	matchService service.MatchService
	logger       *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(matchService service.MatchService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{
		matchService: matchService,
		logger:       logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks. The request is queued and answered with
// 202 before any recommendation work happens.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	volunteerID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	donationID, err := uuid.Parse(req.DonationID)
	if err != nil {
		HandleAPIError(w, r, domain.ErrInvalidID, "")
		return
	}

	ticket, err := h.matchService.RequestMatch(r.Context(), volunteerID, donationID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to queue match request")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, CreateTaskResponse{
		TaskID:  ticket.TaskID,
		Status:  string(ticket.Status),
		Message: "Match request accepted; poll for the result",
		PollURL: "/api/tasks/" + ticket.TaskID.String(),
	})
}

// GetTask handles GET /api/tasks/{taskID}. Unknown tasks answer 404 with a
// NOT_FOUND body so clients can keep a single decoder.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	_, taskID, ok := handleUserIDAndPathUUID(w, r, "taskID", log)
	if !ok {
		return
	}

	result, err := h.matchService.GetTaskResult(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load task result")
		return
	}

	status := http.StatusOK
	if result.Status == service.ResultStatusNotFound {
		status = http.StatusNotFound
	}
	shared.RespondWithJSON(w, r, status, taskResultToResponse(result))
}

// ConfirmMatch handles POST /api/tasks/{taskID}/confirm.
func (h *TaskHandler) ConfirmMatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	volunteerID, taskID, ok := handleUserIDAndPathUUID(w, r, "taskID", log)
	if !ok {
		return
	}

	var req ConfirmMatchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		HandleAPIError(w, r, domain.ErrInvalidID, "")
		return
	}

	match, err := h.matchService.ConfirmMatch(r.Context(), taskID, volunteerID, recipientID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to confirm match")
		return
	}

	log.Debug("match confirmed",
		slog.String("task_id", taskID.String()),
		slog.String("match_id", match.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, matchToResponse(match))
}

// CompleteDelivery handles POST /api/tasks/{taskID}/complete.
func (h *TaskHandler) CompleteDelivery(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	volunteerID, taskID, ok := handleUserIDAndPathUUID(w, r, "taskID", log)
	if !ok {
		return
	}

	match, err := h.matchService.CompleteDelivery(r.Context(), taskID, volunteerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete delivery")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, matchToResponse(match))
}

// ListHistory handles GET /api/volunteers/me/tasks.
func (h *TaskHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	volunteerID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	entries, err := h.matchService.VolunteerHistory(r.Context(), volunteerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load task history")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, historyToResponse(entries))
}
