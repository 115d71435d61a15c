// Command econstats is a terminal client for the EconStats search
// service: ask about US economic data in plain English and get charts,
// headline figures and commentary streamed back.
//
// Usage:
//
//	econstats [flags]
//
// Flags:
//
//	-config string    Path to config file (default: ~/.econstats/config.yaml)
//	-base-url string  Backend base URL (overrides config)
//	-session string   Path to a session file to resume
//	-debug            Log at debug level
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/econstats/econstats"
	"github.com/econstats/econstats/api"
	bt "github.com/econstats/econstats/bubbletea"
	"github.com/econstats/econstats/config"
	econjson "github.com/econstats/econstats/json"
	"github.com/econstats/econstats/log"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "econstats: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse flags.
	var (
		configPath  = flag.String("config", "", "Path to config file (default: ~/.econstats/config.yaml)")
		baseURL     = flag.String("base-url", "", "Backend base URL (overrides config)")
		sessionPath = flag.String("session", "", "Path to a session file to resume")
		debug       = flag.Bool("debug", false, "Log at debug level")
	)
	flag.Parse()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}

	// The TUI owns the terminal, so logs go to a file.
	level := cfg.Logging.Level
	if *debug {
		level = "debug"
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0o700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	logger, closeLog, err := log.NewFile(cfg.Logging.File, level)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	client := api.New(
		api.WithBaseURL(cfg.API.BaseURL),
		api.WithHTTPClient(newHTTPClient(cfg)),
		api.WithLogger(logger),
	)
	runner := econstats.NewRunner(client,
		econstats.WithLogger(logger),
		econstats.WithFallbackTimeout(time.Duration(cfg.API.FallbackTimeoutSec)*time.Second),
	)

	// Build the search function closure for the TUI.
	searchFn := func(ctx context.Context, req econstats.SearchRequest, onUpdate func(econstats.Result)) (econstats.Result, error) {
		return runner.Run(ctx, req, econstats.WithUpdateFunc(onUpdate))
	}

	// Load or create session.
	session, err := loadOrCreateSession(*sessionPath)
	if err != nil {
		return err
	}

	logger.Info("starting",
		zap.String("base_url", cfg.API.BaseURL),
		zap.String("session_id", session.ID))

	// Create and run TUI.
	tuiModel := bt.New(searchFn, &session, econstats.DefaultTheme())
	if err := bt.Run(ctx, tuiModel); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	// Save session on exit.
	if *sessionPath != "" {
		if err := econjson.Save(*sessionPath, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	} else if len(session.Queries) > 0 {
		// Auto-save to the sessions directory.
		savePath := filepath.Join(cfg.Sessions.Dir, session.ID+".json")
		if err := econjson.Save(savePath, session); err != nil {
			return fmt.Errorf("auto-save session: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Session saved to %s\n", savePath)
	}

	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// newHTTPClient builds the transport for API calls. The header timeout
// bounds connect-and-first-byte; the streaming body read after that is
// bounded only by the request context.
func newHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			ResponseHeaderTimeout: time.Duration(cfg.API.ResponseHeaderTimeoutSec) * time.Second,
		},
	}
}

func loadOrCreateSession(path string) (econstats.Session, error) {
	// Load existing session if path provided.
	if path != "" {
		s, err := econjson.Load(path)
		if err != nil {
			return econstats.Session{}, fmt.Errorf("load session: %w", err)
		}
		return s, nil
	}

	// Create new session.
	now := time.Now()
	return econstats.Session{
		ID:        fmt.Sprintf("%d", now.UnixNano()),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
