package api

import (
	"log/slog"
	"net/http"

	"github.com/foodbridge/match-api/internal/api/shared"
	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/service"
)

// ProfileHandler creates donor, recipient, and volunteer profiles keyed by
// the caller's token subject.
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService service.ProfileService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProfileHandler")
	}
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger.With(slog.String("component", "profile_handler")),
	}
}

// CreateDonor handles POST /api/donors/profile.
func (h *ProfileHandler) CreateDonor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	var req DonorProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	donor := &domain.Donor{
		ID:          userID,
		Email:       req.Email,
		Name:        req.Name,
		Address:     req.Address,
		PostNumber:  req.PostNumber,
		PhoneNumber: req.PhoneNumber,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := h.profileService.CreateDonor(r.Context(), donor); err != nil {
		HandleAPIError(w, r, err, "Failed to create donor profile")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, ProfileResponse{
		ID: donor.ID, Kind: "donor", Name: donor.Name, CreatedAt: donor.CreatedAt,
	})
}

// CreateRecipient handles POST /api/recipients/profile.
func (h *ProfileHandler) CreateRecipient(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	var req RecipientProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	recipient := &domain.Recipient{
		ID:          userID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		PostNumber:  req.PostNumber,
		Email:       req.Email,
		Notes:       req.Notes,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := h.profileService.CreateRecipient(r.Context(), recipient); err != nil {
		HandleAPIError(w, r, err, "Failed to create recipient profile")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, ProfileResponse{
		ID: recipient.ID, Kind: "recipient", Name: recipient.Name, CreatedAt: recipient.CreatedAt,
	})
}

// CreateVolunteer handles POST /api/volunteers/profile.
func (h *ProfileHandler) CreateVolunteer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	var req VolunteerProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	volunteer := &domain.Volunteer{
		ID:          userID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	}
	if err := h.profileService.CreateVolunteer(r.Context(), volunteer); err != nil {
		HandleAPIError(w, r, err, "Failed to create volunteer profile")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, ProfileResponse{
		ID:        volunteer.ID,
		Kind:      "volunteer",
		Name:      volunteer.Name,
		Status:    string(volunteer.Status),
		CreatedAt: volunteer.CreatedAt,
	})
}
