// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/EshwaranandB/medkit.ai/internal/dataset"
	"github.com/EshwaranandB/medkit.ai/internal/query"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// ErrStale is returned when a result was superseded by newer input before
// it could be applied.
var ErrStale = errors.New("result superseded by newer input")

// HistoryStore persists recent searches across sessions.
type HistoryStore interface {
	Push(ctx context.Context, q string) error
	Recent(ctx context.Context, n int) ([]string, error)
	Clear(ctx context.Context) error
}

// Config wires a Session to its collaborators. Only Source is required.
type Config struct {
	Source       dataset.Source
	Dataset      dataset.Options
	Stats        StatsProvider
	History      HistoryStore
	RecentSize   int
	IndexOptions []Option
	Logger       logr.Logger
}

// Results is everything one search produces. Seq orders results issued by
// the same session.
type Results struct {
	Seq          uint64                `json:"seq" yaml:"seq"`
	Request      PageRequest           `json:"request" yaml:"request"`
	Parsed       query.Parsed          `json:"parsed" yaml:"parsed"`
	Page         types.Page            `json:"page" yaml:"page"`
	Autocomplete []types.Suggestion    `json:"autocomplete,omitempty" yaml:"autocomplete,omitempty"`
	DidYouMean   []types.DidYouMean    `json:"did_you_mean,omitempty" yaml:"did_you_mean,omitempty"`
	Analysis     *types.SearchAnalysis `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// Session owns one user's snapshot of the library and their query state.
// Sessions share nothing with each other.
type Session struct {
	id     string
	cfg    Config
	log    logr.Logger
	recent *Recent

	index      atomic.Pointer[Index]
	generation atomic.Uint64
	seq        atomic.Uint64

	// swapMu makes the staleness check and the snapshot store one step.
	swapMu sync.Mutex

	mu      sync.Mutex
	current *Results
}

// NewSession returns a session over an empty index. Call Reload to load
// the dataset.
func NewSession(cfg Config) *Session {
	id := uuid.NewString()
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	s := &Session{
		id:     id,
		cfg:    cfg,
		log:    log.WithValues("session", id),
		recent: NewRecent(cfg.RecentSize),
	}
	s.index.Store(NewIndex(nil, cfg.IndexOptions...))
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Source returns the configured dataset source, or nil.
func (s *Session) Source() dataset.Source { return s.cfg.Source }

// Index returns the current snapshot. It is never nil.
func (s *Session) Index() *Index { return s.index.Load() }

// Reload fetches and normalizes the dataset and swaps it in. The swap is
// skipped when ctx is cancelled or a newer Reload started meanwhile, in
// which case the error is ctx.Err() or ErrStale. A failed fetch keeps a
// non-empty snapshot in place and reports the cause in Report.Err.
func (s *Session) Reload(ctx context.Context) (dataset.Report, error) {
	src := s.cfg.Source
	if src == nil {
		return dataset.Report{}, dataset.ErrNoSource
	}
	gen := s.generation.Add(1)
	ctx = logr.NewContext(ctx, s.log)

	topics, report, err := dataset.Load(ctx, src, s.cfg.Dataset)
	if err != nil {
		return report, err
	}
	next := NewIndex(topics, s.cfg.IndexOptions...)

	s.swapMu.Lock()
	defer s.swapMu.Unlock()
	if s.generation.Load() != gen {
		return report, ErrStale
	}
	if report.Err != nil && s.Index().Len() > 0 {
		s.log.Info("keeping previous snapshot", "topics", s.Index().Len())
		return report, nil
	}

	s.index.Store(next)
	s.log.V(1).Info("snapshot swapped", "topics", len(topics), "generation", gen)
	return report, nil
}

// LoadHistory seeds the recent-searches list from the history store.
func (s *Session) LoadHistory(ctx context.Context) error {
	if s.cfg.History == nil {
		return nil
	}
	entries, err := s.cfg.History.Recent(ctx, s.recent.size)
	if err != nil {
		return fmt.Errorf("loading search history: %w", err)
	}
	s.recent.Seed(entries)
	return nil
}

// Search evaluates req against the current snapshot. It does not change
// session state; pass the result to Apply.
func (s *Session) Search(req PageRequest) *Results {
	seq := s.seq.Add(1)
	start := time.Now()
	x := s.Index()
	parsed := query.Parse(req.Query)

	all := x.Matches(req.Category, req.Letter, parsed)
	r := &Results{
		Seq:     seq,
		Request: req,
		Parsed:  parsed,
		Page:    paginate(all, req.Page),
	}
	if text := parsed.Text; text != "" {
		r.Autocomplete = x.Autocomplete(text)
		if r.Analysis = Analyze(text, all); r.Analysis != nil {
			r.Analysis.Filters = parsed.Filters.Active()
			r.Analysis.Elapsed = time.Since(start)
		}
		if WantsDidYouMean(text, len(all)) {
			r.DidYouMean = x.DidYouMean(text)
		}
	}
	return r
}

// Apply makes r the session's current result. It returns ErrStale when a
// newer Search was issued after r.
func (s *Session) Apply(r *Results) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Seq != s.seq.Load() {
		return ErrStale
	}
	s.current = r
	return nil
}

// Current returns the last applied result, or nil.
func (s *Session) Current() *Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Submit is an explicit search: it searches, applies the result, and
// records the cleaned query in the recent-searches list and history store.
func (s *Session) Submit(ctx context.Context, req PageRequest) (*Results, error) {
	r := s.Search(req)
	if err := s.Apply(r); err != nil {
		return nil, err
	}

	cleaned := r.Parsed.Text
	if !s.recent.Push(cleaned) || s.cfg.History == nil {
		return r, nil
	}
	if err := s.cfg.History.Push(ctx, cleaned); err != nil {
		return r, fmt.Errorf("recording search: %w", err)
	}
	return r, nil
}

// Recent returns the recent searches, most recent first.
func (s *Session) Recent() []string { return s.recent.List() }

// ClearHistory empties the recent-searches list and the history store.
func (s *Session) ClearHistory(ctx context.Context) error {
	s.recent.Clear()
	if s.cfg.History == nil {
		return nil
	}
	if err := s.cfg.History.Clear(ctx); err != nil {
		return fmt.Errorf("clearing search history: %w", err)
	}
	return nil
}

// CategoryCounts returns counts from the stats provider, falling back to
// the current snapshot.
func (s *Session) CategoryCounts(ctx context.Context) (map[types.Category]int, bool) {
	return CategoryCounts(logr.NewContext(ctx, s.log), s.Index(), s.cfg.Stats)
}
