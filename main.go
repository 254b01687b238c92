package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fraudguard/config"
	"fraudguard/controllers"
	"fraudguard/routes"
	"fraudguard/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.DebugMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.DebugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Generation.APIKey == "" {
		logger.Warnw("DASHSCOPE_API_KEY is not set; chat requests will fail until it is configured")
	}

	history := services.NewHistoryStore(services.MaxHistory)
	assistant := services.NewAssistant(history, newGenerator(cfg.Generation, logger), cfg.Generation.Model, logger)
	chat := controllers.NewChatController(services.NewChatService(history, assistant, time.Now, logger), logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           routes.SetupRouter(chat, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infow("Server starting",
			"addr", cfg.HTTPAddr,
			"provider", cfg.Generation.Provider,
			"model", cfg.Generation.Model,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("Server failed to start", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorw("Graceful shutdown failed", "error", err)
		_ = srv.Close()
	}
	logger.Infow("Server stopped")
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var (
		base *zap.Logger
		err  error
	)
	if debug {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return base.Sugar(), nil
}

func newGenerator(cfg config.GenerationConfig, logger *zap.SugaredLogger) services.Generator {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return services.NewOpenAIClient(cfg.BaseURL, cfg.APIKey)
	default:
		return services.NewDashScopeClient(cfg.BaseURL, cfg.APIKey, logger)
	}
}
