package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/acadpages/homepage-be/internal/api/handlers"
	"github.com/acadpages/homepage-be/internal/auth"
	"github.com/acadpages/homepage-be/internal/config"
	"github.com/acadpages/homepage-be/internal/services"
	"github.com/acadpages/homepage-be/internal/session"
)

// NewRouter creates and configures a new Chi router. Reads are public;
// every mutation sits behind the auth gate.
func NewRouter(
	cfg *config.Config,
	sessions *session.Manager,
	authService *auth.Service,
	profileService services.ProfileServiceProvider,
	educationService services.EducationServiceProvider,
	publicationService services.PublicationServiceProvider,
	projectService services.ProjectServiceProvider,
	experienceService services.ExperienceServiceProvider,
	awardService services.AwardServiceProvider,
	friendService services.FriendServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, sessions, cfg.CaptchaMode)
	profileHandler := handlers.NewProfileHandler(profileService)
	educationHandler := handlers.NewEducationHandler(educationService)
	publicationHandler := handlers.NewPublicationHandler(publicationService)
	projectHandler := handlers.NewProjectHandler(projectService)
	experienceHandler := handlers.NewExperienceHandler(experienceService)
	awardHandler := handlers.NewAwardHandler(awardService)
	friendHandler := handlers.NewFriendHandler(friendService)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication
		r.Get("/captcha-challenge", authHandler.GetCaptcha)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/auth-status", authHandler.AuthStatus)

		// Public reads
		r.Get("/profile", profileHandler.GetProfile)
		r.Get("/settings", profileHandler.GetSettings)
		r.Get("/education", educationHandler.GetAll)
		r.Get("/publications", publicationHandler.GetAll)
		r.Get("/projects", projectHandler.GetAll)
		r.Get("/experience", experienceHandler.GetAll)
		r.Get("/awards", awardHandler.GetAll)
		r.Get("/friends", friendHandler.GetAll)

		// Admin mutations
		r.Group(func(r chi.Router) {
			r.Use(authService.RequireAuth)

			r.Put("/profile", profileHandler.UpdateProfile)
			r.Put("/settings", profileHandler.UpdateSettings)

			r.Post("/education", educationHandler.Create)
			r.Put("/education/{id}", educationHandler.Update)
			r.Delete("/education/{id}", educationHandler.Delete)

			r.Post("/publications", publicationHandler.Create)
			r.Put("/publications/{id}", publicationHandler.Update)
			r.Delete("/publications/{id}", publicationHandler.Delete)

			r.Post("/projects", projectHandler.Create)
			r.Put("/projects/{id}", projectHandler.Update)
			r.Delete("/projects/{id}", projectHandler.Delete)

			r.Post("/experience", experienceHandler.Create)
			r.Put("/experience/{id}", experienceHandler.Update)
			r.Delete("/experience/{id}", experienceHandler.Delete)

			r.Post("/awards", awardHandler.Create)
			r.Put("/awards/{id}", awardHandler.Update)
			r.Delete("/awards/{id}", awardHandler.Delete)

			r.Post("/friends", friendHandler.Create)
			r.Put("/friends/{id}", friendHandler.Update)
			r.Delete("/friends/{id}", friendHandler.Delete)

			r.Post("/upload", uploadHandler.Upload)
		})
	})

	// Uploaded files (avatars, documents)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	return r
}
