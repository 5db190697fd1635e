package main

import (
	"net/http"

	"github.com/foodbridge/match-api/internal/api"
	apiMiddleware "github.com/foodbridge/match-api/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	taskHandler := api.NewTaskHandler(app.matchService, app.logger)
	donationHandler := api.NewDonationHandler(app.donationService, app.logger)
	profileHandler := api.NewProfileHandler(app.profileService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks/{taskID}", taskHandler.GetTask)
		r.Post("/tasks/{taskID}/confirm", taskHandler.ConfirmMatch)
		r.Post("/tasks/{taskID}/complete", taskHandler.CompleteDelivery)

		r.Post("/donors/profile", profileHandler.CreateDonor)
		r.Post("/recipients/profile", profileHandler.CreateRecipient)
		r.Post("/volunteers/profile", profileHandler.CreateVolunteer)

		r.Post("/donations", donationHandler.CreateDonation)
		r.Get("/donations/available", donationHandler.ListAvailable)
		r.Get("/donations/mine", donationHandler.ListMine)

		r.Get("/volunteers/me/tasks", taskHandler.ListHistory)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
