package main

import (
	"fmt"
	"log/slog"

	"fileninja/internal/classify"
	"fileninja/internal/config"
	"fileninja/internal/daemon"
	"fileninja/internal/history"
	"fileninja/internal/organize"
	"fileninja/internal/watch"
)

type components struct {
	classifier  *classify.Classifier
	filter      *organize.Filter
	relocator   *organize.Relocator
	coordinator *watch.Coordinator
	scanner     *watch.Scanner
}

// buildComponents wires the classification and relocation pipeline shared by
// the daemon and one-shot organize runs. The store may be nil.
func buildComponents(cfg *config.Config, store *history.Store, logger *slog.Logger) (*components, error) {
	rules, err := config.LoadRules(cfg)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	classifier := classify.New(rules)

	var audit organize.AuditRecorder
	if store != nil {
		audit = store
	}
	relocator := organize.NewRelocator(cfg.OrganizedFolder, classifier, audit, logger)
	filter := organize.NewFilter(cfg.IgnorePatterns, cfg.MaxFileSizeBytes())
	coordinator := watch.NewCoordinator(cfg.QuietPeriod(), filter, relocator, logger)

	return &components{
		classifier:  classifier,
		filter:      filter,
		relocator:   relocator,
		coordinator: coordinator,
		scanner:     watch.NewScanner(coordinator, logger),
	}, nil
}

// buildDaemon assembles the full daemon; Close on the returned daemon also
// closes the store.
func buildDaemon(cfg *config.Config, logger *slog.Logger) (*daemon.Daemon, error) {
	store, err := history.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	parts, err := buildComponents(cfg, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	source, err := watch.NewFSNotifySource()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("create event source: %w", err)
	}
	session := watch.NewSession(source, parts.coordinator, logger)

	d, err := daemon.New(cfg, store, session, parts.scanner, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return d, nil
}
