// Package main implements the migrate CLI, which moves legacy flat collections
// into the folder-scoped store.
package main

import (
	"log"
	"log/slog"
	"os"

	"ragstore/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
