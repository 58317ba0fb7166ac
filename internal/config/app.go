package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"GADGET_RUNTIME_PATH" envDefault:".gadgetbot"`

	// Transports
	EnableHTTP     bool     `env:"GADGET_ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool     `env:"GADGET_ENABLE_TELEGRAM" envDefault:"false"`
	HTTPAddr       string   `env:"GADGET_HTTP_ADDR" envDefault:":8080"`
	CORSOrigins    []string `env:"GADGET_CORS_ORIGINS" envDefault:"*"`

	// Interaction log
	LogCapacity int `env:"GADGET_LOG_CAPACITY" envDefault:"1000"`

	// Conversations
	MaxSessions     int `env:"GADGET_MAX_SESSIONS" envDefault:"10000"`
	SessionMessages int `env:"GADGET_SESSION_MESSAGES" envDefault:"200"`

	// Fallback chain
	ResponseDeadline    time.Duration `env:"GADGET_RESPONSE_DEADLINE" envDefault:"40s"`
	StrictResponseGuard bool          `env:"GADGET_STRICT_RESPONSE_GUARD" envDefault:"false"`
	CatalogSearch       bool          `env:"GADGET_CATALOG_SEARCH" envDefault:"false"`
	CatalogURL          string        `env:"GADGET_CATALOG_URL" envDefault:"http://localhost:8080"`
	CatalogTimeout      time.Duration `env:"GADGET_CATALOG_TIMEOUT" envDefault:"5s"`
	SimulationDelay     time.Duration `env:"GADGET_SIMULATION_DELAY" envDefault:"0s"`
	SimulationJitter    time.Duration `env:"GADGET_SIMULATION_JITTER" envDefault:"0s"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetSystemPath() string {
	return filepath.Join(c.RuntimePath, "SYSTEM.md")
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "catalog.db")
}

func (c AppConfig) GetHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
