package fallback

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/sandevgo/gadgetbot/configs"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

const systemPromptFile = "SYSTEM.md"

// LoadSystemPrompt prefers an operator-edited prompt at path and falls back
// to the embedded default.
func LoadSystemPrompt(ctx context.Context, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil && len(data) > 0:
			return string(data), nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			log.FromCtx(ctx).Warn().Err(err).Str("path", path).Msg("failed to read system prompt, using default")
		}
	}

	data, err := configs.FS.ReadFile(systemPromptFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
