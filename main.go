package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"rent-backend/config"
	"rent-backend/controllers"
	"rent-backend/routes"
	"rent-backend/services"
	"rent-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Warn(".env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config parse failed: %v", err)
	}

	if cfg.JWTSecret == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set. Cannot issue sessions.")
	}

	if cfg.Env != "development" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Info("✅ Database connection established and migrations applied")

	// Initialize services
	mailer := utils.NewMailer(cfg.MailjetAPIKey, cfg.MailjetSecretKey, cfg.MailFromEmail, cfg.MailFromName)
	userService := services.NewUserService(db, cfg, mailer)
	propertyService := services.NewPropertyService(db)
	bookingService := services.NewBookingService(db)
	paymentService := services.NewPaymentService(cfg.StripeSecretKey)

	// Initialize controllers
	authController := controllers.NewAuthController(userService, cfg)
	propertyController := controllers.NewPropertyController(propertyService)
	bookingController := controllers.NewBookingController(bookingService, propertyService, paymentService)

	// Build router
	router := routes.SetupRouter(cfg, db, authController, propertyController, bookingController)

	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Warn("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Info("✅ Server stopped gracefully")
}
