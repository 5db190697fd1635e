package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/foodbridge/match-api/internal/api/shared"
	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type mockMatchService struct {
	RequestMatchFn     func(ctx context.Context, volunteerID, donationID uuid.UUID) (*service.TaskTicket, error)
	GetTaskResultFn    func(ctx context.Context, taskID uuid.UUID) (*service.TaskResult, error)
	ConfirmMatchFn     func(ctx context.Context, taskID, volunteerID, recipientID uuid.UUID) (*domain.ConfirmedMatch, error)
	CompleteDeliveryFn func(ctx context.Context, taskID, volunteerID uuid.UUID) (*domain.ConfirmedMatch, error)
	VolunteerHistoryFn func(ctx context.Context, volunteerID uuid.UUID) ([]service.HistoryEntry, error)
}

func (m *mockMatchService) RequestMatch(
	ctx context.Context,
	volunteerID, donationID uuid.UUID,
) (*service.TaskTicket, error) {
	return m.RequestMatchFn(ctx, volunteerID, donationID)
}

func (m *mockMatchService) GetTaskResult(ctx context.Context, taskID uuid.UUID) (*service.TaskResult, error) {
	return m.GetTaskResultFn(ctx, taskID)
}

func (m *mockMatchService) ConfirmMatch(
	ctx context.Context,
	taskID, volunteerID, recipientID uuid.UUID,
) (*domain.ConfirmedMatch, error) {
	return m.ConfirmMatchFn(ctx, taskID, volunteerID, recipientID)
}

func (m *mockMatchService) CompleteDelivery(
	ctx context.Context,
	taskID, volunteerID uuid.UUID,
) (*domain.ConfirmedMatch, error) {
	return m.CompleteDeliveryFn(ctx, taskID, volunteerID)
}

func (m *mockMatchService) VolunteerHistory(ctx context.Context, volunteerID uuid.UUID) ([]service.HistoryEntry, error) {
	return m.VolunteerHistoryFn(ctx, volunteerID)
}

type mockDonationService struct {
	CreateDonationFn func(ctx context.Context, donorID uuid.UUID, input service.DonationInput) (*domain.Donation, error)
	ListAvailableFn  func(ctx context.Context) ([]service.AvailableDonation, error)
	ListByDonorFn    func(ctx context.Context, donorID uuid.UUID) ([]*domain.Donation, error)
}

func (m *mockDonationService) CreateDonation(
	ctx context.Context,
	donorID uuid.UUID,
	input service.DonationInput,
) (*domain.Donation, error) {
	return m.CreateDonationFn(ctx, donorID, input)
}

func (m *mockDonationService) ListAvailable(ctx context.Context) ([]service.AvailableDonation, error) {
	return m.ListAvailableFn(ctx)
}

func (m *mockDonationService) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*domain.Donation, error) {
	return m.ListByDonorFn(ctx, donorID)
}

type mockProfileService struct {
	CreateDonorFn     func(ctx context.Context, donor *domain.Donor) error
	CreateRecipientFn func(ctx context.Context, recipient *domain.Recipient) error
	CreateVolunteerFn func(ctx context.Context, volunteer *domain.Volunteer) error
}

func (m *mockProfileService) CreateDonor(ctx context.Context, donor *domain.Donor) error {
	return m.CreateDonorFn(ctx, donor)
}

func (m *mockProfileService) CreateRecipient(ctx context.Context, recipient *domain.Recipient) error {
	return m.CreateRecipientFn(ctx, recipient)
}

func (m *mockProfileService) CreateVolunteer(ctx context.Context, volunteer *domain.Volunteer) error {
	return m.CreateVolunteerFn(ctx, volunteer)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serve routes a single request through a chi router so path parameters
// resolve, authenticating it as userID unless userID is uuid.Nil.
func serve(
	method, pattern, target, body string,
	userID uuid.UUID,
	h http.HandlerFunc,
) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != uuid.Nil {
		req = req.WithContext(shared.WithUserID(req.Context(), userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
