package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mhollis/agentcare/internal/adapter/demodata"
	"github.com/mhollis/agentcare/internal/adapter/fsartifact"
	achttp "github.com/mhollis/agentcare/internal/adapter/http"
	"github.com/mhollis/agentcare/internal/adapter/openairt"
	acotel "github.com/mhollis/agentcare/internal/adapter/otel"
	"github.com/mhollis/agentcare/internal/adapter/payloadcache"
	"github.com/mhollis/agentcare/internal/adapter/ws"
	"github.com/mhollis/agentcare/internal/agents"
	"github.com/mhollis/agentcare/internal/config"
	"github.com/mhollis/agentcare/internal/logger"
	"github.com/mhollis/agentcare/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, logCloser := logger.New(cfg.Logging)
	defer logCloser.Close()
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"model", cfg.OpenAI.Model,
		"hop_limit", cfg.Conversation.HopLimit,
	)

	ctx := context.Background()

	// --- Telemetry ---
	shutdownOtel, err := acotel.Init(ctx, cfg.Logging.Service, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(shutdownCtx); err != nil {
			slog.Warn("otel shutdown", "error", err)
		}
	}()

	metrics, err := acotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Infrastructure ---
	artifacts, err := fsartifact.New(cfg.Artifacts.Dir)
	if err != nil {
		return fmt.Errorf("artifact store: %w", err)
	}
	slog.Info("artifact store ready", "dir", cfg.Artifacts.Dir)

	cache, err := payloadcache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	if err != nil {
		return fmt.Errorf("payload cache: %w", err)
	}
	defer cache.Close()

	janitor, err := service.NewCleanupJob(artifacts, cfg.Artifacts.CleanupSchedule, cfg.Artifacts.MaxAge)
	if err != nil {
		return fmt.Errorf("cleanup job: %w", err)
	}
	janitor.Start()
	defer janitor.Stop()

	// --- Services ---
	data := demodata.New()
	tickets := service.NewTicketService(demodata.CustomerID, demodata.CustomerName, demodata.PhoneNumber)
	widgets := service.NewWidgetService(data, tickets, cache)
	refs := service.NewReferenceService(artifacts, widgets)

	registry := service.NewToolRegistry(metrics).
		Register(service.BillingTools(data, artifacts)...).
		Register(service.PlanTools(data)...).
		Register(service.SupportTools(tickets)...)

	invoker := openairt.New(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)

	factory := func(sessionID string) (*service.ConversationService, error) {
		router, err := agents.NewRouter(cfg.Conversation.HopLimit)
		if err != nil {
			return nil, err
		}
		convo := service.NewConversationService(router, invoker, registry, metrics, cfg.Conversation.TurnTimeout)
		convo.SetSessionID(sessionID)
		return convo, nil
	}

	// --- HTTP ---
	hub := ws.NewHub()
	wsHandler := ws.NewHandler(hub, factory, refs)
	handlers := achttp.NewHandlers(artifacts, hub, agents.Roster())

	r := chi.NewRouter()

	r.Use(achttp.SecurityHeaders)
	r.Use(achttp.CORS(cfg.Server.CORSOrigin))
	r.Use(achttp.RequestID)
	r.Use(achttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(acotel.HTTPMiddleware(cfg.Logging.Service))

	achttp.MountRoutes(r, handlers, wsHandler.HandleWS)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
