package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trucking-quote-backend/config"
	_ "trucking-quote-backend/docs" // Important for Swagger
	v1 "trucking-quote-backend/internal/delivery/http/v1"
	"trucking-quote-backend/internal/usecase"
	"trucking-quote-backend/pkg/email"
	"trucking-quote-backend/pkg/logger"
	"trucking-quote-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Trucking Quote Backend API
// @version         1.0
// @description     Quote request notifications for Raquel Martinez Insurance.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Log.Info("Starting trucking quote backend", "port", cfg.Port, "mail_provider", cfg.MailProvider)

	// 3. Setup Mail Transport (built once, shared by every request)
	mailer, err := email.NewMailer(cfg, logger.Log)
	if err != nil {
		logger.Log.Error("Failed to build mail transport", "error", err)
		os.Exit(1)
	}
	if !email.Configured(mailer) {
		logger.Log.Warn("Mail transport not fully configured - quote requests will fail to send",
			"provider", mailer.Provider(),
			"user", mailer.Credentials().User,
			"pass", mailer.Credentials().Pass,
		)
	}

	// 4. Setup UseCases
	quoteUC := usecase.NewQuoteUsecase(mailer, validation.New(), usecase.QuoteConfig{
		Recipient:   cfg.QuoteRecipient,
		Subject:     cfg.QuoteSubject,
		SendTimeout: cfg.MailSendTimeout,
		Validate:    cfg.ValidateQuoteRequests,
	})
	healthUC := usecase.NewHealthUsecase(mailer)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		QuoteUC:  quoteUC,
		HealthUC: healthUC,
		Config:   cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Leave room for an in-flight send to finish
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MailSendTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
