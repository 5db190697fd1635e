package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/foodbridge/match-api/internal/task"
	"github.com/google/uuid"
)

// NotAvailable fills in profile fields that can no longer be loaded.
const NotAvailable = "N/A"

// ResultStatus is the state reported to a polling client.
type ResultStatus string

// Possible poll outcomes
const (
	ResultStatusProcessing ResultStatus = "PROCESSING"
	ResultStatusCompleted  ResultStatus = "COMPLETED"
	ResultStatusFailed     ResultStatus = "FAILED"
	ResultStatusNotFound   ResultStatus = "NOT_FOUND"
)

// TaskTicket is returned when a match request has been queued.
type TaskTicket struct {
	TaskID     uuid.UUID
	Status     domain.MatchTaskStatus
	DeliveryID string
}

// RecommendedRecipient is one recommendation joined with the recipient's
// current profile.
type RecommendedRecipient struct {
	RecipientID uuid.UUID
	Name        string
	PhoneNumber string
	PostNumber  string
	Address     string
	Reason      string
}

// TaskResult is the polling view of a match task.
type TaskResult struct {
	TaskID     uuid.UUID
	Status     ResultStatus
	Message    string
	Recipients []RecommendedRecipient
	Error      string
}

// HistoryEntry is one confirmed match in a volunteer's history.
type HistoryEntry struct {
	MatchID        uuid.UUID
	TaskID         uuid.UUID
	DonationID     uuid.UUID
	RecipientID    uuid.UUID
	Status         domain.ConfirmedMatchStatus
	TaskStatus     domain.MatchTaskStatus
	ItemName       string
	Category       string
	Quantity       int
	ExpirationDate string
	ConfirmedAt    time.Time
	DeliveredAt    *time.Time
}

// MatchService requests matches, reports their results, and records the
// volunteer's choice.
type MatchService interface {
	// RequestMatch queues a match request for a donation and returns the new
	// task ID. No task record exists until a worker picks the request up.
	RequestMatch(ctx context.Context, volunteerID, donationID uuid.UUID) (*TaskTicket, error)

	// GetTaskResult reports the current state of a task. An unknown task is
	// reported with ResultStatusNotFound rather than an error.
	GetTaskResult(ctx context.Context, taskID uuid.UUID) (*TaskResult, error)

	// ConfirmMatch records that the volunteer chose recipientID for the task.
	ConfirmMatch(ctx context.Context, taskID, volunteerID, recipientID uuid.UUID) (*domain.ConfirmedMatch, error)

	// CompleteDelivery marks the task's confirmed match as delivered.
	CompleteDelivery(ctx context.Context, taskID, volunteerID uuid.UUID) (*domain.ConfirmedMatch, error)

	// VolunteerHistory lists the volunteer's confirmed matches, newest first.
	VolunteerHistory(ctx context.Context, volunteerID uuid.UUID) ([]HistoryEntry, error)
}

// MatchServiceImpl implements the MatchService interface
type MatchServiceImpl struct {
	db         *sql.DB
	tasks      store.MatchTaskStore
	donations  store.DonationStore
	recipients store.RecipientStore
	matches    store.ConfirmedMatchStore
	publisher  task.Publisher
	logger     *slog.Logger
}

var _ MatchService = (*MatchServiceImpl)(nil)

// NewMatchService creates a MatchService.
// It returns an error if any of the required dependencies are nil.
func NewMatchService(
	db *sql.DB,
	tasks store.MatchTaskStore,
	donations store.DonationStore,
	recipients store.RecipientStore,
	matches store.ConfirmedMatchStore,
	publisher task.Publisher,
	logger *slog.Logger,
) (*MatchServiceImpl, error) {
	switch {
	case db == nil:
		return nil, errors.New("db cannot be nil")
	case tasks == nil:
		return nil, errors.New("match task store cannot be nil")
	case donations == nil:
		return nil, errors.New("donation store cannot be nil")
	case recipients == nil:
		return nil, errors.New("recipient store cannot be nil")
	case matches == nil:
		return nil, errors.New("confirmed match store cannot be nil")
	case publisher == nil:
		return nil, errors.New("publisher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MatchServiceImpl{
		db:         db,
		tasks:      tasks,
		donations:  donations,
		recipients: recipients,
		matches:    matches,
		publisher:  publisher,
		logger:     logger.With(slog.String("component", "match_service")),
	}, nil
}

// RequestMatch implements MatchService.RequestMatch
func (s *MatchServiceImpl) RequestMatch(
	ctx context.Context,
	volunteerID, donationID uuid.UUID,
) (*TaskTicket, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	donation, err := s.donations.GetByID(ctx, donationID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrDonationNotFound
		}
		return nil, NewMatchServiceError("request match", "failed to load donation", err)
	}

	origin, ok := donation.Location()
	if !ok {
		log.Warn("donation has no usable location",
			slog.String("donation_id", donationID.String()))
		return nil, fmt.Errorf("%w: %v", ErrDonationNotFound, domain.ErrMissingLocation)
	}

	taskID := uuid.New()
	body, err := task.NewMatchRequest(taskID, volunteerID, donationID, origin, donation.ItemName).Encode()
	if err != nil {
		return nil, NewMatchServiceError("request match", "failed to encode request", err)
	}

	deliveryID, err := s.publisher.Publish(ctx, body)
	if err != nil {
		log.Error("failed to enqueue match request",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		return nil, NewMatchServiceError("request match", "failed to enqueue request", err)
	}

	log.Info("match request queued",
		slog.String("task_id", taskID.String()),
		slog.String("donation_id", donationID.String()),
		slog.String("delivery_id", deliveryID))

	return &TaskTicket{
		TaskID:     taskID,
		Status:     domain.MatchTaskStatusPending,
		DeliveryID: deliveryID,
	}, nil
}

// GetTaskResult implements MatchService.GetTaskResult
func (s *MatchServiceImpl) GetTaskResult(ctx context.Context, taskID uuid.UUID) (*TaskResult, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return &TaskResult{
				TaskID:  taskID,
				Status:  ResultStatusNotFound,
				Message: "Task not found",
			}, nil
		}
		return nil, NewMatchServiceError("get task result", "failed to load task", err)
	}

	switch t.Status {
	case domain.MatchTaskStatusFailed:
		errText := t.ErrorMessage
		if errText == "" {
			errText = "matching failed"
		}
		return &TaskResult{
			TaskID:  taskID,
			Status:  ResultStatusFailed,
			Message: "Matching task failed",
			Error:   errText,
		}, nil

	case domain.MatchTaskStatusCompleted:
		if len(t.Recommendations) == 0 {
			return &TaskResult{
				TaskID:     taskID,
				Status:     ResultStatusCompleted,
				Message:    "No suitable recipients were found",
				Recipients: []RecommendedRecipient{},
			}, nil
		}

		recipients, err := s.assemble(ctx, t)
		if err != nil {
			return nil, NewMatchServiceError("get task result", "failed to load recipients", err)
		}
		return &TaskResult{
			TaskID:     taskID,
			Status:     ResultStatusCompleted,
			Message:    "Matching completed",
			Recipients: recipients,
		}, nil

	default:
		return &TaskResult{
			TaskID:  taskID,
			Status:  ResultStatusProcessing,
			Message: "Matching is still in progress",
		}, nil
	}
}

// assemble joins the stored recommendations with current recipient profiles,
// keeping order and length.
func (s *MatchServiceImpl) assemble(ctx context.Context, t *domain.MatchTask) ([]RecommendedRecipient, error) {
	profiles, err := s.recipients.GetByIDs(ctx, t.RecipientIDs())
	if err != nil {
		return nil, err
	}

	out := make([]RecommendedRecipient, len(t.Recommendations))
	for i, rec := range t.Recommendations {
		out[i] = RecommendedRecipient{
			RecipientID: rec.RecipientID,
			Name:        NotAvailable,
			PhoneNumber: NotAvailable,
			PostNumber:  NotAvailable,
			Address:     NotAvailable,
			Reason:      rec.Reason,
		}
		if p, ok := profiles[rec.RecipientID]; ok && p != nil {
			out[i].Name = p.Name
			out[i].PhoneNumber = p.PhoneNumber
			out[i].PostNumber = p.PostNumber
			out[i].Address = p.Address
		}
	}
	return out, nil
}

// ConfirmMatch implements MatchService.ConfirmMatch
//
// Checks run in a fixed order: existence, ownership, completion, then
// membership of the recipient in the recommendation list.
func (s *MatchServiceImpl) ConfirmMatch(
	ctx context.Context,
	taskID, volunteerID, recipientID uuid.UUID,
) (*domain.ConfirmedMatch, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	t, err := s.ownedTask(ctx, "confirm match", taskID, volunteerID)
	if err != nil {
		return nil, err
	}
	if t.Status != domain.MatchTaskStatusCompleted {
		return nil, ErrTaskNotCompleted
	}
	if !t.Recommends(recipientID) {
		return nil, ErrRecipientNotRecommended
	}

	match := domain.NewConfirmedMatch(t, recipientID)
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.matches.WithTx(tx).Create(ctx, match); err != nil {
			return err
		}
		return s.donations.WithTx(tx).UpdateStatus(ctx, t.DonationID, domain.DonationStatusMatched)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTaskAlreadyConfirmed):
			return nil, ErrAlreadyConfirmed
		case errors.Is(err, store.ErrDonationNotFound):
			return nil, ErrDonationNotFound
		}
		log.Error("failed to confirm match",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		return nil, NewMatchServiceError("confirm match", "failed to store confirmation", err)
	}

	log.Info("match confirmed",
		slog.String("task_id", taskID.String()),
		slog.String("match_id", match.ID.String()),
		slog.String("recipient_id", recipientID.String()))
	return match, nil
}

// CompleteDelivery implements MatchService.CompleteDelivery
func (s *MatchServiceImpl) CompleteDelivery(
	ctx context.Context,
	taskID, volunteerID uuid.UUID,
) (*domain.ConfirmedMatch, error) {
	if _, err := s.ownedTask(ctx, "complete delivery", taskID, volunteerID); err != nil {
		return nil, err
	}

	match, err := s.matches.GetByTaskID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrMatchNotConfirmed
		}
		return nil, NewMatchServiceError("complete delivery", "failed to load confirmed match", err)
	}

	if err := match.MarkDelivered(); err != nil {
		if errors.Is(err, domain.ErrMatchAlreadyDelivered) {
			return nil, ErrAlreadyDelivered
		}
		return nil, err
	}
	if err := s.matches.MarkDelivered(ctx, match); err != nil {
		return nil, NewMatchServiceError("complete delivery", "failed to store delivery", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("delivery completed",
		slog.String("task_id", taskID.String()),
		slog.String("match_id", match.ID.String()))
	return match, nil
}

func (s *MatchServiceImpl) ownedTask(
	ctx context.Context,
	operation string,
	taskID, volunteerID uuid.UUID,
) (*domain.MatchTask, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, NewMatchServiceError(operation, "failed to load task", err)
	}
	if !t.IsOwnedBy(volunteerID) {
		return nil, ErrTaskNotOwned
	}
	return t, nil
}

// VolunteerHistory implements MatchService.VolunteerHistory
func (s *MatchServiceImpl) VolunteerHistory(ctx context.Context, volunteerID uuid.UUID) ([]HistoryEntry, error) {
	matches, err := s.matches.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, NewMatchServiceError("volunteer history", "failed to list matches", err)
	}

	history := make([]HistoryEntry, 0, len(matches))
	for _, m := range matches {
		entry := HistoryEntry{
			MatchID:     m.ID,
			TaskID:      m.TaskID,
			DonationID:  m.DonationID,
			RecipientID: m.RecipientID,
			Status:      m.Status,
			ItemName:    NotAvailable,
			Category:    NotAvailable,
			ConfirmedAt: m.ConfirmedAt,
			DeliveredAt: m.DeliveredAt,
		}

		donation, err := s.donations.GetByID(ctx, m.DonationID)
		switch {
		case err == nil:
			entry.ItemName = donation.ItemName
			entry.Category = donation.Category
			entry.Quantity = donation.Quantity
			entry.ExpirationDate = donation.ExpirationDate
		case !store.IsNotFoundError(err):
			return nil, NewMatchServiceError("volunteer history", "failed to load donation", err)
		}

		t, err := s.tasks.GetByID(ctx, m.TaskID)
		switch {
		case err == nil:
			entry.TaskStatus = t.Status
		case !store.IsNotFoundError(err):
			return nil, NewMatchServiceError("volunteer history", "failed to load task", err)
		}

		history = append(history, entry)
	}
	return history, nil
}
