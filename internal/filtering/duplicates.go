package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/hr-scout/internal/talent"
)

type duplicatesFilter struct {
	disabled bool
	reason   string
}

// NewDuplicates creates a filter that keeps only the first occurrence of every profile.
// Models sometimes list the same person twice when a profile appears on both result pages.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *duplicatesFilter) IsEnabled() bool { return !f.disabled }

func (f *duplicatesFilter) Validate(*Config) error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, deps Deps, c []talent.Candidate) ([]talent.Candidate, Step, error) {
	initial := len(c)
	seen := make(map[string]struct{}, initial)
	left, removed := keep(c, func(candidate talent.Candidate) bool {
		key := candidate.Key()
		if key == "" {
			return true
		}
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		return true
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Debug("dropping duplicated candidates", zap.Strings("excluded_candidates", removed))
	}

	return left, Step{Initial: initial, Dropped: len(removed), Left: len(left)}, nil
}

func (f *duplicatesFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
