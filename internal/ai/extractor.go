package ai

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/hr-scout/internal/logger"
	"github.com/spigell/hr-scout/internal/talent"
	"github.com/spigell/hr-scout/internal/utils"
)

const (
	defaultMaxLogLength = 200
	emptyReply          = "[]"
)

// Extractor turns search results into a ranked candidate list with the help of a language model.
type Extractor struct {
	completer Completer
	locale    talent.Locale
	scope     talent.Scope
	logger    *zap.Logger
	maxLogLen int
}

// NewExtractor creates an extractor that prompts the completer in the given locale.
// A non-positive maxLogLength selects the default preview length.
func NewExtractor(completer Completer, locale talent.Locale, scope talent.Scope, log *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Extractor{
		completer: completer,
		locale:    locale,
		scope:     scope,
		logger:    logger.WithCommonFields(log, completer.Provider(), completer.Model()),
		maxLogLen: maxLogLength,
	}
}

// Extract asks the model to pick candidates matching the brief out of the search results.
// Completion API failures are returned; an unusable reply yields an empty list.
func (e *Extractor) Extract(ctx context.Context, brief string, results []talent.SearchResult) ([]talent.Candidate, error) {
	prompt := BuildPrompt(e.locale, e.scope, brief, results)

	e.logger.Debug("completion request",
		zap.Int("results", len(results)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.completer.Complete(ctx, SystemPrompt(e.locale), prompt)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(raw) == "" {
		raw = emptyReply
	}

	e.logger.Debug("completion response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	candidates, skipped := parseCandidates(raw)
	if skipped > 0 {
		e.logger.Warn("some candidates in the model reply could not be decoded", zap.Int("skipped", skipped))
	}
	if len(candidates) == 0 {
		e.logger.Debug("model reply contained no usable candidates")
	}

	return candidates, nil
}
