package analytics

import (
	"context"
	"sync/atomic"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

const encodingName = "cl100k_base"

type TokenCounter interface {
	Count(text string) int
}

// RuneCounter counts characters. It is the fallback when no tokenizer
// is available.
type RuneCounter struct{}

func (RuneCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

// TiktokenCounter counts cl100k_base tokens. The encoding loads in the
// background; until it is ready counts fall back to characters.
type TiktokenCounter struct {
	enc atomic.Pointer[tiktoken.Tiktoken]
}

func NewTiktokenCounter(ctx context.Context) *TiktokenCounter {
	c := &TiktokenCounter{}
	go func() {
		enc, err := tiktoken.GetEncoding(encodingName)
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("tiktoken unavailable, counting characters instead")
			return
		}
		c.enc.Store(enc)
		log.FromCtx(ctx).Debug().Str("encoding", encodingName).Msg("token counter ready")
	}()
	return c
}

func (c *TiktokenCounter) Count(text string) int {
	if enc := c.enc.Load(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return RuneCounter{}.Count(text)
}
