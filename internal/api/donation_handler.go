package api

import (
	"log/slog"
	"net/http"

	"github.com/foodbridge/match-api/internal/api/shared"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/service"
)

// DonationHandler serves donation creation and listing.
type DonationHandler struct {
	donationService service.DonationService
	logger          *slog.Logger
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(donationService service.DonationService, logger *slog.Logger) *DonationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DonationHandler")
	}
	return &DonationHandler{
		donationService: donationService,
		logger:          logger.With(slog.String("component", "donation_handler")),
	}
}

// CreateDonation handles POST /api/donations for the calling donor.
func (h *DonationHandler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	donorID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateDonationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	donation, err := h.donationService.CreateDonation(r.Context(), donorID, service.DonationInput{
		Category:       req.Category,
		ItemName:       req.ItemName,
		Quantity:       req.Quantity,
		ExpirationDate: req.ExpirationDate,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create donation")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, donationToResponse(donation))
}

// ListAvailable handles GET /api/donations/available.
func (h *DonationHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	available, err := h.donationService.ListAvailable(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list donations")
		return
	}

	out := make([]AvailableDonationResponse, 0, len(available))
	for _, a := range available {
		out = append(out, AvailableDonationResponse{
			DonationResponse: donationToResponse(a.Donation),
			DonorName:        a.DonorName,
			DonorAddress:     a.DonorAddress,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// ListMine handles GET /api/donations/mine.
func (h *DonationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	donorID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	donations, err := h.donationService.ListByDonor(r.Context(), donorID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list donations")
		return
	}

	out := make([]DonationResponse, 0, len(donations))
	for _, d := range donations {
		out = append(out, donationToResponse(d))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
