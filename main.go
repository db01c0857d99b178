package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/acadpages/homepage-be/internal/api"
	"github.com/acadpages/homepage-be/internal/auth"
	"github.com/acadpages/homepage-be/internal/captcha"
	"github.com/acadpages/homepage-be/internal/config"
	"github.com/acadpages/homepage-be/internal/database"
	"github.com/acadpages/homepage-be/internal/logger"
	"github.com/acadpages/homepage-be/internal/services"
	"github.com/acadpages/homepage-be/internal/session"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Ensure the upload directory exists
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload directory")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}
	if err := database.Seed(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default records")
	}

	// Set up services
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db)
	educationService := services.NewEducationService(db)
	publicationService := services.NewPublicationService(db)
	projectService := services.NewProjectService(db)
	experienceService := services.NewExperienceService(db)
	awardService := services.NewAwardService(db)
	friendService := services.NewFriendService(db)

	// Provision the admin credential when configured and none exists yet
	if err := bootstrapAdmin(cfg, userService); err != nil {
		log.Fatal().Err(err).Msg("Failed to provision admin credential")
	}

	// Set up the session store and its expiry sweeper
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.CaptchaTTL)
	go sessions.Run()

	// Set up authentication
	generator := captcha.NewGenerator(cfg.CaptchaMode == config.CaptchaModeImage)
	authService := auth.NewService(sessions, userService, generator)

	// Set up router
	router := api.NewRouter(cfg, sessions, authService,
		profileService, educationService, publicationService,
		projectService, experienceService, awardService, friendService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sessions.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// bootstrapAdmin creates the admin credential from configuration when the
// users table is empty. This is the only way credentials are created; the
// HTTP surface has no registration endpoint.
func bootstrapAdmin(cfg *config.Config, users *services.UserService) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	n, err := users.CountUsers()
	if err != nil {
		return err
	}
	if n > 0 {
		log.Debug().Msg("Admin credential already provisioned, skipping bootstrap")
		return nil
	}
	user, err := users.CreateAdmin(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail)
	if err != nil {
		return err
	}
	log.Info().Str("username", user.Username).Msg("Provisioned admin credential")
	return nil
}
