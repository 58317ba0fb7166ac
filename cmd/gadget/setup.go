package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/sandevgo/gadgetbot/internal/config"
	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/providers/catalog"
	"github.com/sandevgo/gadgetbot/internal/providers/llm"
	"github.com/sandevgo/gadgetbot/internal/service/analytics"
	"github.com/sandevgo/gadgetbot/internal/service/chat"
	"github.com/sandevgo/gadgetbot/internal/service/command"
	"github.com/sandevgo/gadgetbot/internal/service/fallback"
	"github.com/sandevgo/gadgetbot/internal/service/guard"
	"github.com/sandevgo/gadgetbot/internal/service/recommend"
	"github.com/sandevgo/gadgetbot/internal/storage/sqlite"
	"github.com/sandevgo/gadgetbot/internal/transport/api"
	"github.com/sandevgo/gadgetbot/internal/transport/telegram"
	"github.com/sandevgo/gadgetbot/pkg/log"
	"github.com/sandevgo/gadgetbot/pkg/srv"
)

// turnGrace is added to the response deadline for transport-level turn
// timeouts, leaving the simulation room to answer after the deadline.
const turnGrace = 15 * time.Second

// App holds the wired core shared by every transport.
type App struct {
	Config   *config.AppConfig
	Provider *config.ProviderConfig
	Listings *sqlite.Listings
	Specs    *sqlite.Specs
	Remote   *fallback.Remote
	Pipeline *chat.Pipeline
	Router   core.CmdRouter

	// Services that must be shut down with the process.
	Services []srv.Service
}

func NewApp(ctx context.Context) *App {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	appCfg := config.NewAppConfig(ctx)
	providerCfg := config.NewProviderConfig(ctx)
	app := &App{Config: appCfg, Provider: providerCfg}

	// Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	app.Services = append(app.Services, srv.NewNamedCleanup("sqlite", db.Close))
	app.Listings = sqlite.NewListings(db)
	app.Specs = sqlite.NewSpecs(db)

	// Remote assistant. Running without one is allowed; replies then come
	// from the lower tiers.
	aiProvider, err := llm.NewProvider(ctx, providerCfg)
	switch {
	case errors.Is(err, core.ErrNotConfigured):
		logger.Warn().Err(err).Msg("remote assistant disabled")
		aiProvider = nil
	case err != nil:
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	systemPrompt, err := fallback.LoadSystemPrompt(ctx, appCfg.GetSystemPath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load system prompt")
	}
	advisor := recommend.NewAdvisor(app.Specs, app.Listings)
	app.Remote = fallback.NewRemote(aiProvider, systemPrompt, fallback.WithRemoteAdvisor(advisor))

	// Fallback chain
	tiers := []fallback.Tier{{Provider: app.Remote, Timeout: providerCfg.Timeout}}
	if appCfg.CatalogSearch {
		client := catalog.NewClient(appCfg.CatalogURL, appCfg.CatalogTimeout)
		tier := fallback.NewCatalog(client, fallback.WithCatalogAdvisor(advisor))
		tiers = append(tiers, fallback.Tier{Provider: tier, Timeout: appCfg.CatalogTimeout})
	}

	sim, err := fallback.NewSimulation(appCfg.SimulationDelay, appCfg.SimulationJitter)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load simulation replies")
	}
	orchestrator := fallback.NewOrchestrator(sim, appCfg.ResponseDeadline, tiers...)

	policy := guard.FailOpen
	if appCfg.StrictResponseGuard {
		policy = guard.FailClosed
	}

	interactions := analytics.NewLogger(
		analytics.WithCapacity(appCfg.LogCapacity),
		analytics.WithTokenCounter(analytics.NewTiktokenCounter(ctx)),
	)

	conversations := chat.NewConversations(
		chat.WithMaxSessions(appCfg.MaxSessions),
		chat.WithMaxMessages(appCfg.SessionMessages),
	)

	app.Pipeline = chat.NewPipeline(guard.New(policy), orchestrator, interactions, conversations)
	app.Router = command.NewRouter(command.NewCommands(app.Pipeline, interactions, providerCfg))

	logger.Info().
		Str("assistant", app.Remote.Model()).
		Int("tiers", len(tiers)).
		Str("guard", policy.String()).
		Msg("pipeline ready")

	return app
}

// Transports returns the long-running front ends enabled in the config.
func (a *App) Transports(ctx context.Context) ([]srv.Service, error) {
	var services []srv.Service

	if a.Config.EnableHTTP {
		services = append(services, api.NewServer(ctx, a.Config.HTTPAddr, a.Config.CORSOrigins, api.Deps{
			Listings:  a.Listings,
			Specs:     a.Specs,
			Chat:      a.Pipeline,
			Assistant: a.Remote,
		}))
	}

	if a.Config.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.Pipeline, a.Router, a.Config.ResponseDeadline+turnGrace)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
