package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/hr-scout/internal/talent"
)

type minScoreFilter struct {
	disabled bool
	reason   string
	minimum  int
}

// NewMinScore creates a filter that removes candidates scored below the configured minimum.
func NewMinScore() Filter {
	return &minScoreFilter{}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minScoreFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg != nil {
		f.minimum = cfg.MinScore
	}
	if f.minimum < 0 || f.minimum > 100 {
		return fmt.Errorf("minimum score must be between 0 and 100, got %d", f.minimum)
	}
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, deps Deps, c []talent.Candidate) ([]talent.Candidate, Step, error) {
	initial := len(c)
	if f.minimum == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	left, removed := keep(c, func(candidate talent.Candidate) bool {
		return candidate.Score >= f.minimum
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding candidates below minimum score",
			zap.Int("min_score", f.minimum),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", len(left)),
		)
	}

	return left, Step{Initial: initial, Dropped: len(removed), Left: len(left)}, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_score": strconv.Itoa(f.minimum)},
	}
}
