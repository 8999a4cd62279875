package filtering

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/hr-scout/internal/talent"
)

func sampleCandidates() []talent.Candidate {
	return []talent.Candidate{
		{Name: "Jan Kowalski", Score: 95, ProfileURL: "https://linkedin.com/in/jankowalski"},
		{Name: "Anna Nowak", Score: 60, ProfileURL: "https://linkedin.com/in/annanowak"},
		{Name: "Jan K.", Score: 80, ProfileURL: "https://LinkedIn.com/in/jankowalski/"},
		{Name: "Piotr Zieliński", Score: 40},
	}
}

func names(c []talent.Candidate) []string {
	out := make([]string, 0, len(c))
	for _, candidate := range c {
		out = append(out, candidate.Name)
	}
	return out
}

func equalNames(t *testing.T, got []talent.Candidate, want ...string) {
	t.Helper()
	gotNames := names(got)
	if len(gotNames) != len(want) {
		t.Fatalf("unexpected candidates: got %v want %v", gotNames, want)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("unexpected candidates: got %v want %v", gotNames, want)
		}
	}
}

func TestRunDefaultChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")
	excluded := talent.ToExcluded([]talent.Candidate{{Name: "Anna Nowak", ProfileURL: "https://linkedin.com/in/annanowak"}}, "seen")
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	input := sampleCandidates()
	got, err := Run(context.Background(), &Config{MinScore: 50, ExcludeFile: path}, Deps{}, Default(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	equalNames(t, got, "Jan Kowalski")
	if len(input) != 4 {
		t.Fatalf("input must not be modified")
	}
}

func TestRunWithoutConfigKeepsUniqueCandidates(t *testing.T) {
	got, err := Run(context.Background(), nil, Deps{}, Default(), sampleCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalNames(t, got, "Jan Kowalski", "Anna Nowak", "Piotr Zieliński")
}

func TestRunValidationError(t *testing.T) {
	_, err := Run(context.Background(), &Config{MinScore: 101}, Deps{}, Default(), sampleCandidates())
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRunSkipsDisabledFilters(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	steps := Default()
	DisableByName(steps, "duplicates", "requested")
	DisableByName(steps, "min_score", "requested")

	got, err := Run(context.Background(), &Config{MinScore: 101}, Deps{Logger: zap.New(core)}, steps, sampleCandidates())
	if err != nil {
		t.Fatalf("disabled filters must not be validated: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected all candidates, got %v", names(got))
	}

	if n := logs.FilterMessage("filter disabled").Len(); n != 2 {
		t.Fatalf("expected two disabled filter logs, got %d", n)
	}

	entries := logs.FilterMessage("filter step").All()
	if len(entries) != 1 {
		t.Fatalf("expected one step log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["name"] != "exclude_file" || fields["initial"] != int64(4) || fields["left"] != int64(4) {
		t.Fatalf("unexpected step fields: %v", fields)
	}
}

func TestMinScoreBoundary(t *testing.T) {
	f := NewMinScore()
	if err := f.Validate(&Config{MinScore: 80}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, step, err := f.Apply(context.Background(), Deps{}, sampleCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalNames(t, got, "Jan Kowalski", "Jan K.")
	if step != (Step{Initial: 4, Dropped: 2, Left: 2}) {
		t.Fatalf("unexpected step: %+v", step)
	}
}

func TestExcludeFileMissingFileKeepsAll(t *testing.T) {
	f := NewExcludeFile()
	if err := f.Validate(&Config{ExcludeFile: filepath.Join(t.TempDir(), "missing.json")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, step, err := f.Apply(context.Background(), Deps{}, sampleCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 || step.Dropped != 0 {
		t.Fatalf("unexpected result: %v %+v", names(got), step)
	}
}

func TestExcludeFileMatchesByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")
	if err := talent.ToExcluded([]talent.Candidate{{Name: "Piotr Zieliński"}}, "").ToFile(path); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	f := NewExcludeFile()
	if err := f.Validate(&Config{ExcludeFile: path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _, err := f.Apply(context.Background(), Deps{}, sampleCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalNames(t, got, "Jan Kowalski", "Anna Nowak", "Jan K.")
}

func TestDescribe(t *testing.T) {
	steps := Default()
	for _, step := range steps {
		if err := step.Validate(&Config{MinScore: 70, ExcludeFile: "excluded.json"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	DisableByName(steps, "duplicates", "flag")

	statuses := Describe(steps)
	if len(statuses) != 3 {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
	if statuses[0].Enabled || statuses[0].Reason != "flag" {
		t.Fatalf("unexpected duplicates status: %+v", statuses[0])
	}
	if statuses[1].Details["min_score"] != "70" {
		t.Fatalf("unexpected min_score status: %+v", statuses[1])
	}
	if statuses[2].Details["path"] != "excluded.json" {
		t.Fatalf("unexpected exclude_file status: %+v", statuses[2])
	}
}
