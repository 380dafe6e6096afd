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

func buildDaemon(cfg *config.Config, logger *slog.Logger) (*daemon.Daemon, error) {
	store, err := history.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	rules, err := config.LoadRules(cfg)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load rules: %w", err)
	}
	classifier := classify.New(rules)
	relocator := organize.NewRelocator(cfg.OrganizedFolder, classifier, store, logger)
	filter := organize.NewFilter(cfg.IgnorePatterns, cfg.MaxFileSizeBytes())
	coordinator := watch.NewCoordinator(cfg.QuietPeriod(), filter, relocator, logger)

	source, err := watch.NewFSNotifySource()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("create event source: %w", err)
	}
	session := watch.NewSession(source, coordinator, logger)
	scanner := watch.NewScanner(coordinator, logger)

	d, err := daemon.New(cfg, store, session, scanner, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return d, nil
}
