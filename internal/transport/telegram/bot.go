package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/gadgetbot/internal/config"
	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/service/chat"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

const (
	baseContextKey = "base_context"

	errorMessage = "❌ Maaf, terjadi kesalahan. Silakan coba lagi."
)

type ChatHandler interface {
	Handle(ctx context.Context, sessionID, text string) (chat.Turn, error)
}

type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	chat    ChatHandler
	cmds    core.CmdRouter
	sender  *sender
	timeout time.Duration
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	chat ChatHandler,
	cmds core.CmdRouter,
	timeout time.Duration,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		chat:    chat,
		cmds:    cmds,
		sender:  newSender(b),
		timeout: timeout,
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || !cfg.IsAllowed(c.Sender().ID) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) String() string {
	return "telegram"
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func sessionID(c tele.Context) string {
	return fmt.Sprintf("telegram-%d", c.Chat().ID)
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	reply, _ := b.cmds.Execute(ctx, sessionID(c), "/new")
	return b.sender.sendMarkdown(ctx, c.Chat(), reply)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	session := sessionID(c)

	if reply, ok := b.cmds.Execute(ctx, session, c.Text()); ok {
		return b.sender.sendMarkdown(ctx, c.Chat(), reply)
	}

	_ = c.Notify(tele.Typing)

	turnCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		turnCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	turn, err := b.chat.Handle(turnCtx, session, c.Text())
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil
		}
		logger.Error().Err(err).Str("session", session).Msg("chat turn failed")
		return c.Send(errorMessage)
	}

	return b.sender.sendMarkdown(ctx, c.Chat(), turn.Reply)
}
