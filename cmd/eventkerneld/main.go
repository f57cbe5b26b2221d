// Command eventkerneld runs the HTTP-facing event-booking workflow kernel
// daemon: load config, build the step dependencies, and serve the HTTP
// surface spec §6 describes until terminated.
//
// Grounded on cmd/spindled/main.go's shape (signal-driven context, config
// load, logger construction, graceful shutdown on ctx.Done), adapted to the
// slog-based internal/logging package (spindled's original zap wiring isn't
// carried forward; it never matched internal/logging's actual slog API).
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"eventkernel/internal/adapters"
	"eventkernel/internal/catalog"
	"eventkernel/internal/classify"
	"eventkernel/internal/config"
	"eventkernel/internal/eventapi"
	"eventkernel/internal/logging"
	"eventkernel/internal/steps"
	"eventkernel/internal/store"
	"eventkernel/internal/turn"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, path, existed, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	logger.Info("configuration loaded", logging.String("path", path), logging.Bool("existed", existed))

	// No external LLM/calendar/catalog integration is wired by default; the
	// classifier's nil-LLM fallback (internal/classify) degrades gracefully
	// to the keyword/regex tiers per spec §7's "LLM unavailable" row.
	deps := steps.Dependencies{
		Catalog:    catalog.New(adapters.DefaultStaticCatalog()),
		Calendar:   adapters.NewInMemoryCalendar(),
		Verbalizer: adapters.DefaultTemplateVerbalizer(),
		Classifier: classify.New(nil, cfg.NonsenseThreshold),
		Now:        func() time.Time { return time.Now().UTC() },
	}

	st := store.New(cfg)
	runner := turn.New(st, deps, cfg.TurnMaxStepIterations)
	server := eventapi.New(cfg, st, runner, logger)

	if err := server.Start(ctx); err != nil {
		logger.Error("start http server", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("eventkerneld shutting down")
	server.Stop()
}
