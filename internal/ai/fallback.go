package ai

import (
	"context"

	"github.com/rs/zerolog"
)

// Fallback wraps a generative provider and substitutes mock output when it
// fails. Neither Complete nor Chat ever returns a non-nil error, so provider
// outages stay invisible to callers beyond the "mock" tag on the reply.
type Fallback struct {
	primary Provider
	mock    *Mock
	log     *zerolog.Logger
}

// NewFallback wraps primary with the mock fallback.
func NewFallback(primary Provider, logger *zerolog.Logger) *Fallback {
	return &Fallback{
		primary: primary,
		mock:    NewMock(),
		log:     logger,
	}
}

// Complete delegates to the primary provider, falling back to the mock
// suggestion on any error.
func (f *Fallback) Complete(ctx context.Context, code string, cursor int, language string) (string, error) {
	suggestion, err := f.primary.Complete(ctx, code, cursor, language)
	if err != nil {
		f.log.Warn().Err(err).Str("provider", f.primary.Name()).Msg("completion failed, using mock")
		return f.mock.Complete(ctx, code, cursor, language)
	}
	return suggestion, nil
}

// Chat delegates to the primary provider, falling back to the mock reply
// on any error. The reply's Provider field reports who actually answered.
func (f *Fallback) Chat(ctx context.Context, prompt, codeContext string) (Reply, error) {
	reply, err := f.primary.Chat(ctx, prompt, codeContext)
	if err != nil {
		f.log.Warn().Err(err).Str("provider", f.primary.Name()).Msg("chat failed, using mock")
		return f.mock.Chat(ctx, prompt, codeContext)
	}
	return reply, nil
}

// Name identifies the primary provider; replies carry the actual source.
func (f *Fallback) Name() string {
	return f.primary.Name()
}
