package command

import (
	"context"
)

type ProviderInfo interface {
	GetProvider() string
	GetModel() string
}

// ModelCommand shows which remote assistant answers first.
type ModelCommand struct {
	provider  ProviderInfo
	formatter *ResponseFormatter
}

func NewModelCommand(provider ProviderInfo) *ModelCommand {
	return &ModelCommand{
		provider:  provider,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Tampilkan model AI yang dipakai"
}

func (c *ModelCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	model := c.provider.GetModel()
	if model == "" {
		model = "-"
	}
	return c.formatter.Combine(
		c.formatter.Info("Model Aktif"),
		c.formatter.Label("Provider", c.provider.GetProvider())+c.formatter.Label("Model", model),
	), nil
}
