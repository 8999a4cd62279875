package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-scout/internal/talent"
)

type excludeFileFilter struct {
	disabled bool
	reason   string
	path     string
}

// NewExcludeFile creates a filter that removes candidates listed in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *excludeFileFilter) IsEnabled() bool { return !f.disabled }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, c []talent.Candidate) ([]talent.Candidate, Step, error) {
	initial := len(c)
	if f.path == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	excluded, err := talent.GetExcludedProfilesFromFile(f.path)
	if err != nil {
		return c, Step{}, fmt.Errorf("getting excluded profiles from file: %w", err)
	}

	keys := excluded.Keys()
	left, removed := keep(c, func(candidate talent.Candidate) bool {
		_, found := keys[candidate.Key()]
		return !found
	})
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", len(left)),
		)
	}

	return left, Step{Initial: initial, Dropped: len(removed), Left: len(left)}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
