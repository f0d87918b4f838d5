package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventdesk/internal/delivery/http/controllers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Reads on the event and catalog collections are public; everything touching
// enrollments or accounts requires a Bearer token, and the administrative
// enrollment operations additionally require the admin role.
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	participantController *controllers.ParticipantController,
	catalogController *controllers.CatalogController,
	eventController *controllers.EventController,
	enrollmentController *controllers.EnrollmentController,
) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier)
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleAdmin)(next))
	}

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Participants
	mux.HandleFunc("POST /participants", participantController.Register)
	mux.HandleFunc("GET /participants", auth(participantController.List))
	mux.HandleFunc("GET /participants/{participantID}", auth(participantController.GetByID))
	mux.HandleFunc("PATCH /participants/{participantID}", auth(participantController.Update))
	mux.HandleFunc("DELETE /participants/{participantID}", admin(participantController.Delete))

	// Venues
	mux.HandleFunc("GET /venues", catalogController.ListVenues)
	mux.HandleFunc("GET /venues/{venueID}", catalogController.GetVenue)
	mux.HandleFunc("POST /venues", auth(catalogController.CreateVenue))
	mux.HandleFunc("PUT /venues/{venueID}", auth(catalogController.UpdateVenue))
	mux.HandleFunc("DELETE /venues/{venueID}", auth(catalogController.DeleteVenue))

	// Categories
	mux.HandleFunc("GET /categories", catalogController.ListCategories)
	mux.HandleFunc("GET /categories/{categoryID}", catalogController.GetCategory)
	mux.HandleFunc("POST /categories", auth(catalogController.CreateCategory))
	mux.HandleFunc("PUT /categories/{categoryID}", auth(catalogController.UpdateCategory))
	mux.HandleFunc("DELETE /categories/{categoryID}", auth(catalogController.DeleteCategory))

	// Events
	mux.HandleFunc("GET /events", eventController.Search)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetByID)
	mux.HandleFunc("POST /events", auth(eventController.Create))
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.Update))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.Delete))

	// Enrollments
	mux.HandleFunc("POST /enrollments", auth(enrollmentController.Create))
	mux.HandleFunc("GET /enrollments", auth(enrollmentController.Search))
	mux.HandleFunc("GET /enrollments/{enrollmentID}", auth(enrollmentController.GetByID))
	mux.HandleFunc("POST /enrollments/{enrollmentID}/confirm", auth(enrollmentController.Confirm))
	mux.HandleFunc("POST /enrollments/{enrollmentID}/cancel", auth(enrollmentController.Cancel))
	mux.HandleFunc("PATCH /enrollments/{enrollmentID}/status", admin(enrollmentController.SetStatus))
	mux.HandleFunc("DELETE /enrollments/{enrollmentID}", admin(enrollmentController.Delete))

	// Reports
	mux.HandleFunc("GET /reports/most-active-participants", auth(enrollmentController.MostActive))
	mux.HandleFunc("GET /reports/most-popular-events", auth(eventController.MostPopular))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
