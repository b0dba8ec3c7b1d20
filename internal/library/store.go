package library

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/search"
)

// User-facing status messages of the fetch path.
const (
	ErrMsgNotSeeded   = "Database not seeded. Please visit the setup page to seed the database."
	ErrMsgFetchFailed = "Failed to fetch data. Please try again later."
)

// Store owns the in-memory prompt-library state. All fields are guarded by
// mu; only remote calls run outside the lock.
type Store struct {
	mu     sync.Mutex
	log    *logger.Logger
	source DataSource

	categories []Category
	prompts    []Prompt

	selectedCategory string  // category or subcategory id, "" = none
	selectedPrompt   *Prompt // owned copy, never a pointer into prompts

	index       *search.Index
	activeQuery string

	isLoading bool
	errMsg    string
	isSeeded  bool

	// fetchGen invalidates results of fetches that were superseded by a
	// newer FetchData call before they finished.
	fetchGen uint64
}

func NewStore(baseLog *logger.Logger, source DataSource) *Store {
	return &Store{
		log:    baseLog.With("component", "LibraryStore"),
		source: source,
	}
}

// Snapshot is a read-only copy of the store state for HTTP consumers.
type Snapshot struct {
	Categories       []Category `json:"categories"`
	Prompts          []Prompt   `json:"prompts"`
	SelectedCategory string     `json:"selected_category,omitempty"`
	SelectedPrompt   *Prompt    `json:"selected_prompt,omitempty"`
	IsLoading        bool       `json:"is_loading"`
	Error            string     `json:"error,omitempty"`
	IsSeeded         bool       `json:"is_seeded"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Categories:       append([]Category(nil), s.categories...),
		Prompts:          append([]Prompt(nil), s.prompts...),
		SelectedCategory: s.selectedCategory,
		IsLoading:        s.isLoading,
		Error:            s.errMsg,
		IsSeeded:         s.isSeeded,
	}
	if s.selectedPrompt != nil {
		p := *s.selectedPrompt
		snap.SelectedPrompt = &p
	}
	return snap
}

// CheckIfSeeded probes the remote store for at least one category row.
func (s *Store) CheckIfSeeded(ctx context.Context) (bool, error) {
	seeded, err := s.source.HasAnyCategory(ctx)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	s.isSeeded = seeded
	s.mu.Unlock()
	return seeded, nil
}

// FetchData hydrates the store from the remote source: seeded probe first,
// then categories and prompts concurrently, then an index rebuild. A fetch
// that finishes after a newer one started discards its results.
func (s *Store) FetchData(ctx context.Context) error {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.isLoading = true
	s.errMsg = ""
	s.mu.Unlock()

	seeded, err := s.source.HasAnyCategory(ctx)
	if err != nil {
		s.log.Error("Seeded check failed", "error", err)
		s.finishFetch(gen, func() { s.errMsg = ErrMsgFetchFailed })
		return err
	}
	if !seeded {
		s.finishFetch(gen, func() {
			s.isSeeded = false
			s.errMsg = ErrMsgNotSeeded
		})
		return nil
	}

	var (
		categories []Category
		prompts    []Prompt
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var gErr error
		categories, gErr = s.source.ListCategories(gctx)
		return gErr
	})
	g.Go(func() error {
		var gErr error
		prompts, gErr = s.source.ListPrompts(gctx)
		return gErr
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Fetching library data failed", "error", err)
		s.finishFetch(gen, func() { s.errMsg = ErrMsgFetchFailed })
		return err
	}

	s.finishFetch(gen, func() {
		s.isSeeded = true
		s.categories = categories
		s.prompts = prompts
		s.activeQuery = ""
		s.rebuildIndexLocked()
	})
	return nil
}

// finishFetch applies apply under the lock only when gen is still the
// current fetch generation; superseded fetches leave state alone.
func (s *Store) finishFetch(gen uint64, apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		s.log.Debug("Discarding superseded fetch result", "generation", gen)
		return
	}
	apply()
	s.isLoading = false
}

// SearchPrompts attaches a search score to every prompt. An empty or
// whitespace query clears all scores ("no search active"). A missing index
// is built lazily on first query; indexed-query syntax errors degrade
// silently to the substring fallback.
func (s *Store) SearchPrompts(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		for i := range s.prompts {
			s.prompts[i].SearchScore = nil
		}
		s.activeQuery = ""
		return
	}

	if s.index == nil {
		s.index = search.Build(promptDocs(s.prompts))
	}

	var scores map[string]float64
	if s.index == nil {
		scores = search.FallbackScores(query, promptDocs(s.prompts))
	} else {
		indexed, err := s.index.Query(query)
		if err != nil {
			s.log.Debug("Indexed search failed, falling back to substring scoring", "query", query, "error", err)
			scores = search.FallbackScores(query, promptDocs(s.prompts))
		} else {
			scores = indexed
		}
	}

	for i := range s.prompts {
		score := scores[s.prompts[i].ID] // absent from the result set = matched nothing
		s.prompts[i].SearchScore = &score
	}
	s.activeQuery = query
}

// VisiblePrompts is the filtering contract consumed by list views: prompts
// in the active category context (all when none), restricted to search
// matches while a query is active, ordered by score then title.
func (s *Store) VisiblePrompts() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()

	searchActive := s.activeQuery != ""
	visible := make([]Prompt, 0, len(s.prompts))
	for _, p := range s.prompts {
		if s.selectedCategory != "" && p.CategoryID != s.selectedCategory {
			continue
		}
		if searchActive && (p.SearchScore == nil || *p.SearchScore <= 0) {
			continue
		}
		visible = append(visible, p)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if searchActive {
			var si, sj float64
			if visible[i].SearchScore != nil {
				si = *visible[i].SearchScore
			}
			if visible[j].SearchScore != nil {
				sj = *visible[j].SearchScore
			}
			if si != sj {
				return si > sj
			}
		}
		return strings.ToLower(visible[i].Title) < strings.ToLower(visible[j].Title)
	})
	return visible
}

// rebuildIndexLocked swaps in a fresh index over the current prompt set.
// Index freshness must never lag the visible collection, so every
// prompt-set mutation calls this after its local patch.
func (s *Store) rebuildIndexLocked() {
	s.index.Close()
	s.index = search.Build(promptDocs(s.prompts))
}

func promptDocs(prompts []Prompt) []search.Document {
	docs := make([]search.Document, 0, len(prompts))
	for _, p := range prompts {
		docs = append(docs, search.Document{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Content:     p.Content,
			WhenToUse:   p.WhenToUse,
		})
	}
	return docs
}
