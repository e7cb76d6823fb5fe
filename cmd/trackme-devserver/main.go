package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/trackme/trackme/internal/common/logtrace"
	"github.com/trackme/trackme/internal/devserver/config"
	"github.com/trackme/trackme/internal/devserver/server"
)

type cmdoptions struct {
	configFile string
	port       string
	logLevel   string
	noSeed     bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opt := parseFlags()
	logtrace.InitLogger(opt.logLevel)

	if err := run(ctx, opt); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, opt cmdoptions) error {
	slog := log.With().Str("state", "init").Logger()

	// .env may carry the nutrition API credentials
	_ = godotenv.Load()

	if opt.configFile != "" {
		slog.Info().Str("config_file", opt.configFile).Msg("loading config file")
		if err := config.LoadConfig(opt.configFile); err != nil {
			return fmt.Errorf("loading config file: %w", err)
		}
	} else {
		config.ApplyEnvOverrides(config.Config())
	}
	cfg := config.Config()
	if opt.port != "" {
		cfg.ServerPort = opt.port
	}
	if opt.noSeed {
		cfg.Seed.Enabled = false
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logtrace.SetTrace(cfg.Debug)

	serverErrors, shutdownServer, err := createDevServer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		slog.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		shutdownServer()
	}

	slog.Info().Msg("server stopped")
	return nil
}

func createDevServer(ctx context.Context, cfg *config.ConfigParam) (chan error, func(), error) {
	slog := log.With().Str("state", "init").Logger()
	s, err := server.CreateNewServer(cfg)
	if err != nil {
		return nil, nil, err
	}
	s.MountHandlers()

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info().Str("port", cfg.ServerPort).Bool("seeded", cfg.Seed.Enabled).Msg("server started")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := func() {
		// Give outstanding requests 5 seconds to complete.
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error().Err(err).Msg("could not stop server gracefully")
			if err := srv.Close(); err != nil {
				slog.Error().Err(err).Msg("could not stop server")
			}
		}
	}

	return serverErrors, shutdown, nil
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	flag.StringVar(&opt.configFile, "config", "", "Path to the config file, defaults apply when empty")
	flag.StringVar(&opt.port, "port", "", "Port to listen on, overrides the config file")
	flag.StringVar(&opt.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opt.noSeed, "no-seed", false, "Start without the demo account")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
