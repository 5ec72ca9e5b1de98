package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"notegram/internal/archive"
	"notegram/internal/config"
	"notegram/internal/constants"
	apperrors "notegram/internal/errors"
	"notegram/internal/retry"
	"notegram/internal/service"
	"notegram/internal/tracing"
	"notegram/pkg/media"
	"notegram/pkg/telegram"

	"github.com/sirupsen/logrus"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	// CLI flags
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	configPath = flag.String("config", "config.yaml", "Path to configuration file")
	version    = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("notegram %s\nBuild Time: %s\nGit Commit: %s\n", Version, BuildTime, GitCommit)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logrus.Fatalf("Application error: %v", err)
	}
}

func run(ctx context.Context) error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.WithFields(logrus.Fields{
		"version": Version,
		"build":   BuildTime,
		"commit":  GitCommit,
	}).Info("Starting notegram")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else if cfg.LogLevel != "" {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logger.Warnf("Invalid log level %q, defaulting to info", cfg.LogLevel)
			logger.SetLevel(logrus.InfoLevel)
		} else {
			logger.SetLevel(level)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	// Credentials come from the environment only; missing either is fatal.
	token := os.Getenv("NOTEGRAM_BOT_TOKEN")
	if token == "" {
		return apperrors.New(apperrors.ErrCodeMissingConfig, "NOTEGRAM_BOT_TOKEN environment variable is required")
	}
	allowedSender := os.Getenv("NOTEGRAM_ALLOWED_SENDER")
	if allowedSender == "" {
		return apperrors.New(apperrors.ErrCodeMissingConfig, "NOTEGRAM_ALLOWED_SENDER environment variable is required")
	}

	tracingManager := tracing.NewTracingManager(tracing.TracingConfig{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: Version,
		Environment:    cfg.Tracing.Environment,
		OTLPEndpoint:   cfg.Tracing.OTLPEndpoint,
		SampleRate:     cfg.Tracing.SampleRate,
		Enabled:        cfg.Tracing.Enabled,
		UseStdout:      cfg.Tracing.UseStdout,
	}, logger)

	if err := tracingManager.Initialize(ctx); err != nil {
		logger.Warnf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := tracingManager.Shutdown(context.Background()); err != nil {
			logger.Warnf("Failed to shutdown tracing: %v", err)
		}
	}()

	// Initialize the Telegram client with exponential backoff; the network
	// may not be up yet right after boot.
	var tgClient *telegram.Client
	backoffCfg := retry.DefaultBackoffConfig()
	backoffCfg.InitialDelay = time.Duration(cfg.Retry.InitialBackoffMs) * time.Millisecond
	backoffCfg.MaxDelay = time.Duration(cfg.Retry.MaxBackoffMs) * time.Millisecond
	backoffCfg.MaxAttempts = cfg.Retry.MaxAttempts
	backoff := retry.NewBackoff(backoffCfg)

	err = backoff.Retry(ctx, func() error {
		var initErr error
		tgClient, initErr = telegram.NewClient(token, cfg.Telegram.PollTimeoutSec, logger)
		if initErr != nil && apperrors.IsRetryable(initErr) {
			logger.Warnf("Failed to initialize Telegram client, retrying: %v", initErr)
		}
		return initErr
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Telegram client after retries: %w", err)
	}
	logger.WithField("bot", tgClient.Username()).Info("Telegram bot initialized")

	fetcher, err := media.NewFetcher(
		filepath.Join(cfg.DataDir, constants.AttachmentsDirName),
		tgClient,
		time.Duration(cfg.Media.FetchTimeoutSec)*time.Second,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize attachment fetcher: %w", err)
	}

	writer, err := archive.NewWriter(filepath.Join(cfg.DataDir, constants.NotesDirName))
	if err != nil {
		return fmt.Errorf("failed to initialize note archive: %w", err)
	}

	processor := service.NewProcessor(fetcher, writer, tgClient, cfg.AckText, logger)
	queue := service.NewDispatchQueue(processor, logger)
	authorizer := service.NewAuthorizer(allowedSender, logger)

	poller := service.NewUpdatePoller(tgClient, authorizer, queue, logger)
	if err := poller.Start(ctx); err != nil {
		return fmt.Errorf("failed to start update poller: %w", err)
	}
	defer poller.Stop()

	server := NewServer(cfg, logger)
	serverErrCh := make(chan error, constants.ServerErrorChannelSize)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case err := <-serverErrCh:
		logger.Error(err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(constants.DefaultGracefulShutdownSec)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}

	logger.Info("Server shutdown completed")
	return nil
}
