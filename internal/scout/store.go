package scout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/hr-scout/internal/logger"
	"github.com/spigell/hr-scout/internal/talent"
)

// ErrNotConfigured is returned by a search when credentials are present but the
// searcher or extractor is missing.
var ErrNotConfigured = errors.New("search pipeline is not configured")

// DefaultCompletionModel is used when Config.CompletionModel is empty.
const DefaultCompletionModel = "gpt-4o-mini"

// Searcher runs a web search and returns up to the given number of result pages.
type Searcher interface {
	Search(ctx context.Context, query string, pages int) ([]talent.SearchResult, error)
}

// Extractor turns search results into candidates matching the brief.
type Extractor interface {
	Extract(ctx context.Context, brief string, results []talent.SearchResult) ([]talent.Candidate, error)
}

// Config holds the credentials and search parameters of a Store.
type Config struct {
	SearchAPIKey     string
	SearchEngineID   string
	CompletionAPIKey string
	CompletionModel  string
	Locale           talent.Locale
	Scope            talent.Scope
}

// Deps are the collaborators used when credentials are present.
type Deps struct {
	Searcher  Searcher
	Extractor Extractor
	Logger    *zap.Logger
}

// State is a snapshot of the store.
type State struct {
	Brief      string
	Candidates []talent.Candidate
	Loading    bool
	// Error is the message of the last failed search, empty when there is none.
	Error string
}

// Store holds the state of candidate searches for a single brief and runs the
// query, search and extraction pipeline.
type Store struct {
	cfg    Config
	deps   Deps
	logger *zap.Logger

	mu    sync.RWMutex
	state State

	subMu       sync.Mutex
	nextSubID   int
	subscribers map[int]func(State)
}

// New creates a store with an empty brief and candidate list. Missing locale, scope
// and completion model fall back to their defaults.
func New(cfg Config, deps Deps) *Store {
	if strings.TrimSpace(cfg.CompletionModel) == "" {
		cfg.CompletionModel = DefaultCompletionModel
	}
	if cfg.Locale == "" {
		cfg.Locale = talent.LocalePolish
	}
	if cfg.Scope == "" {
		cfg.Scope = talent.ScopeLinkedIn
	}

	return &Store{
		cfg:         cfg,
		deps:        deps,
		logger:      logger.WithSearchFields(deps.Logger, string(cfg.Locale), string(cfg.Scope)),
		state:       State{Candidates: []talent.Candidate{}},
		subscribers: make(map[int]func(State)),
	}
}

// Config returns the effective configuration, with defaults applied.
func (s *Store) Config() Config {
	return s.cfg
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) snapshot() State {
	st := s.state
	st.Candidates = talent.Copy(s.state.Candidates)
	return st
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

// update applies fn under the write lock and then notifies subscribers outside of it.
func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.snapshot()
	s.mu.Unlock()

	s.subMu.Lock()
	subs := make([]func(State), 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.subMu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

// SetBrief replaces the brief verbatim.
func (s *Store) SetBrief(text string) {
	s.update(func(st *State) { st.Brief = text })
}

// SetCandidates replaces the candidate list. A nil list clears it.
func (s *Store) SetCandidates(list []talent.Candidate) {
	s.update(func(st *State) { st.Candidates = talent.Copy(list) })
}

// Clear empties the candidate list and the error, leaving brief and loading untouched.
func (s *Store) Clear() {
	s.update(func(st *State) {
		st.Candidates = []talent.Candidate{}
		st.Error = ""
	})
}

// HasCredentials reports whether both API keys are configured.
func (s *Store) HasCredentials() bool {
	return strings.TrimSpace(s.cfg.SearchAPIKey) != "" && strings.TrimSpace(s.cfg.CompletionAPIKey) != ""
}

// SearchCandidates runs the search pipeline for the current brief and stores its result.
// Without credentials the demo list is stored and returned without any network call.
// On failure the error message is recorded, the previous candidates are kept and an
// empty list is returned.
func (s *Store) SearchCandidates(ctx context.Context) []talent.Candidate {
	if !s.HasCredentials() {
		demo := DemoCandidates(s.cfg.Locale, s.cfg.Scope)
		s.logger.Info("api credentials are not configured, using demo candidates",
			zap.Int("count", len(demo)),
		)
		s.update(func(st *State) {
			st.Error = ""
			st.Candidates = talent.Copy(demo)
		})
		return demo
	}

	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})
	defer s.update(func(st *State) { st.Loading = false })

	candidates, err := s.run(ctx, s.State().Brief)
	if err != nil {
		message := describeError(s.cfg.Locale, err)
		s.logger.Error("candidate search failed", zap.Error(err))
		s.update(func(st *State) { st.Error = message })
		return []talent.Candidate{}
	}

	s.update(func(st *State) { st.Candidates = talent.Copy(candidates) })
	return candidates
}

func (s *Store) run(ctx context.Context, brief string) ([]talent.Candidate, error) {
	if s.deps.Searcher == nil || s.deps.Extractor == nil {
		return nil, ErrNotConfigured
	}

	query := GenerateSearchQuery(brief, s.cfg.Scope)
	s.logger.Info("searching the web", zap.String("query", query))

	results, err := s.deps.Searcher.Search(ctx, query, s.cfg.Scope.Pages())
	if err != nil {
		return nil, err
	}

	s.logger.Info("analyzing search results", zap.Int("results", len(results)))

	candidates, err := s.deps.Extractor.Extract(ctx, brief, results)
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = []talent.Candidate{}
	}

	s.logger.Info("candidates found", zap.Int("count", len(candidates)))
	return candidates, nil
}
