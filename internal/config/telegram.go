package config

import (
	"context"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"GADGET_TELEGRAM_TOKEN,required,notEmpty"`
	// AllowedUsers restricts the bot to these user IDs. Empty means public.
	AllowedUsers []int64 `env:"GADGET_TELEGRAM_ALLOWED_USERS" envSeparator:","`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}

func (c TelegramConfig) IsAllowed(userID int64) bool {
	return len(c.AllowedUsers) == 0 || slices.Contains(c.AllowedUsers, userID)
}
