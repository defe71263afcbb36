package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rahulsaklanii-code/formula-status-trigger/internal/config"
	"github.com/rahulsaklanii-code/formula-status-trigger/internal/log"
	"github.com/rahulsaklanii-code/formula-status-trigger/internal/monday"
	"github.com/rahulsaklanii-code/formula-status-trigger/internal/processor"
	"github.com/rahulsaklanii-code/formula-status-trigger/internal/webhook"
)

const version = "0.1.0"

func main() {
	cmd := "start"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "start":
		os.Exit(runStart())
	case "version":
		fmt.Printf("formula-status-trigger version %s\n", version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`formula-status-trigger - monday.com formula-to-status webhook bridge

Usage:
  formula-status-trigger [command]

Commands:
  start     Start the service in foreground (default)
  version   Show version information
  help      Show this help message

Configuration comes from the environment (MONDAY_API_TOKEN,
MONDAY_SIGNING_SECRET, STATUS_COLUMN_ID, LISTEN_ADDR, RULES_FILE, ...)
and an optional rules.yaml holding threshold rules, event filter and
retry settings.
`)
}

func runStart() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	log.Setup(cfg.Env.LogLevel, cfg.Env.LogFormat)
	logger := log.WithComponent("main")

	logger.Info("starting formula-status-trigger",
		"version", version,
		"listen", cfg.Env.ListenAddr,
		"status_column", cfg.Env.StatusColumnID,
		"rules", len(cfg.Rules.Rules),
	)
	if cfg.RulesFingerprint != "" {
		logger.Info("rules file loaded",
			"path", cfg.Env.RulesFile,
			"blake3", cfg.RulesFingerprint,
		)
	}
	if cfg.Env.APIToken == "" {
		logger.Warn("MONDAY_API_TOKEN is not set, status updates will fail")
	}

	client := monday.New(cfg.Env.APIURL, cfg.Env.APIToken, cfg.Rules.Retry)

	proc := processor.New(
		client,
		client,
		cfg.Rules.Rules,
		cfg.Env.StatusColumnID,
		cfg.Rules.QueueSize,
		cfg.Rules.Workers,
	)

	server := webhook.New(
		webhook.Config{
			Listen:        cfg.Env.ListenAddr,
			SigningSecret: cfg.Env.SigningSecret,
		},
		webhook.NewFilter(cfg.Rules.Filter),
		proc,
		log.WithComponent("webhook"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.Start(ctx)
	proc.Stop()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server failed", "error", err)
		return 1
	}

	logger.Info("shutdown complete")
	return 0
}
