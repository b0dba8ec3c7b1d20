package library

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/promptvault/promptvault-backend/internal/logger"
)

type recordedEvent struct {
	PromptID string
	Action   string
}

// fakeSource is an in-memory DataSource. Mutations just echo their input;
// the store owns all local bookkeeping, so the fake only needs to confirm
// or fail calls.
type fakeSource struct {
	mu         sync.Mutex
	categories []Category
	prompts    []Prompt
	events     []recordedEvent
	err        error

	// listGate, when set, blocks ListCategories until the channel closes;
	// entry is reported on listEntered. Used to interleave overlapping
	// fetches.
	listGate    chan struct{}
	listEntered chan struct{}
}

func (f *fakeSource) HasAnyCategory(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return len(f.categories) > 0, nil
}

func (f *fakeSource) ListCategories(ctx context.Context) ([]Category, error) {
	f.mu.Lock()
	gate, entered := f.listGate, f.listEntered
	f.mu.Unlock()
	if gate != nil {
		if entered != nil {
			entered <- struct{}{}
		}
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]Category(nil), f.categories...), nil
}

func (f *fakeSource) ListPrompts(ctx context.Context) ([]Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]Prompt(nil), f.prompts...), nil
}

func (f *fakeSource) InsertCategory(ctx context.Context, c Category) (Category, error) {
	if f.err != nil {
		return Category{}, f.err
	}
	return c, nil
}

func (f *fakeSource) UpdateCategory(ctx context.Context, id, name string) (Category, error) {
	if f.err != nil {
		return Category{}, f.err
	}
	return Category{ID: id, Name: name}, nil
}

func (f *fakeSource) DeleteCategory(ctx context.Context, id string) error { return f.err }

func (f *fakeSource) InsertSubcategory(ctx context.Context, parentID string, sub Subcategory) (Subcategory, error) {
	if f.err != nil {
		return Subcategory{}, f.err
	}
	return sub, nil
}

func (f *fakeSource) UpdateSubcategory(ctx context.Context, parentID string, sub Subcategory) (Subcategory, error) {
	if f.err != nil {
		return Subcategory{}, f.err
	}
	return sub, nil
}

func (f *fakeSource) DeleteSubcategory(ctx context.Context, id string) error { return f.err }

func (f *fakeSource) InsertPrompt(ctx context.Context, p Prompt) (Prompt, error) {
	if f.err != nil {
		return Prompt{}, f.err
	}
	return p, nil
}

func (f *fakeSource) UpdatePrompt(ctx context.Context, p Prompt) (Prompt, error) {
	if f.err != nil {
		return Prompt{}, f.err
	}
	return p, nil
}

func (f *fakeSource) DeletePrompt(ctx context.Context, id string) error { return f.err }

func (f *fakeSource) RecordPromptEvent(ctx context.Context, promptID, action string, userID *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, recordedEvent{PromptID: promptID, Action: action})
	return nil
}

// seededSource returns a fake with a small realistic tree:
//
//	sales
//	  discovery     p1 "Cold Call Opener"
//	  negotiation   (empty)
//	marketing       p2 "Launch Email", p3 "Pricing Page Copy"
func seededSource() *fakeSource {
	return &fakeSource{
		categories: []Category{
			{ID: "sales", Name: "Sales", Subcategories: []Subcategory{
				{ID: "discovery", Name: "Discovery"},
				{ID: "negotiation", Name: "Negotiation"},
			}},
			{ID: "marketing", Name: "Marketing", Subcategories: []Subcategory{}},
		},
		prompts: []Prompt{
			{ID: "p1", Title: "Cold Call Opener", Description: "Open a discovery call", Content: "Hi {{name}}", CategoryID: "discovery"},
			{ID: "p2", Title: "Launch Email", Description: "Announce a product launch", Content: "We just shipped", CategoryID: "marketing"},
			{ID: "p3", Title: "Pricing Page Copy", Description: "Headline for the pricing page", Content: "Simple pricing for every team", CategoryID: "marketing"},
		},
	}
}

func newTestStore(t *testing.T, src *fakeSource) *Store {
	t.Helper()
	s := NewStore(logger.NewNop(), src)
	if err := s.FetchData(context.Background()); err != nil {
		t.Fatalf("FetchData: %v", err)
	}
	return s
}

func TestFetchDataNotSeeded(t *testing.T) {
	s := NewStore(logger.NewNop(), &fakeSource{})
	if err := s.FetchData(context.Background()); err != nil {
		t.Fatalf("FetchData: %v", err)
	}
	snap := s.Snapshot()
	if snap.IsSeeded {
		t.Error("expected IsSeeded=false for an empty source")
	}
	if snap.Error != ErrMsgNotSeeded {
		t.Errorf("Error = %q, want %q", snap.Error, ErrMsgNotSeeded)
	}
	if snap.IsLoading {
		t.Error("IsLoading should be false after fetch completes")
	}
}

func TestFetchDataSourceError(t *testing.T) {
	src := seededSource()
	src.err = errors.New("connection refused")
	s := NewStore(logger.NewNop(), src)
	if err := s.FetchData(context.Background()); err == nil {
		t.Fatal("expected error from failing source")
	}
	snap := s.Snapshot()
	if snap.Error != ErrMsgFetchFailed {
		t.Errorf("Error = %q, want %q", snap.Error, ErrMsgFetchFailed)
	}
	if len(snap.Categories) != 0 || len(snap.Prompts) != 0 {
		t.Error("failed fetch must not populate collections")
	}
}

func TestFetchDataHydrates(t *testing.T) {
	s := newTestStore(t, seededSource())
	snap := s.Snapshot()
	if !snap.IsSeeded {
		t.Error("expected IsSeeded=true")
	}
	if len(snap.Categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(snap.Categories))
	}
	if len(snap.Prompts) != 3 {
		t.Fatalf("got %d prompts, want 3", len(snap.Prompts))
	}
	if snap.Error != "" {
		t.Errorf("unexpected error message %q", snap.Error)
	}
}

func TestFetchDataSupersededResultDiscarded(t *testing.T) {
	src := seededSource()
	gate := make(chan struct{})
	entered := make(chan struct{}, 1)
	src.mu.Lock()
	src.listGate = gate
	src.listEntered = entered
	src.mu.Unlock()

	s := NewStore(logger.NewNop(), src)

	done := make(chan error, 1)
	go func() { done <- s.FetchData(context.Background()) }()

	// Wait for the first fetch to reach the gate, then run a second fetch
	// that sees an extra prompt and completes first.
	<-entered
	src.mu.Lock()
	src.listGate = nil
	src.listEntered = nil
	src.prompts = append(src.prompts, Prompt{ID: "p4", Title: "Renewal Reminder", CategoryID: "discovery"})
	src.mu.Unlock()

	if err := s.FetchData(context.Background()); err != nil {
		t.Fatalf("second FetchData: %v", err)
	}
	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("first FetchData: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Prompts) != 4 {
		t.Errorf("got %d prompts, want 4: the stale fetch must not overwrite the newer one", len(snap.Prompts))
	}
	if snap.IsLoading {
		t.Error("IsLoading should be false")
	}
}

func TestSelectCategoryDrillsIntoFirstSubcategoryWithPrompts(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SetSelectedCategory("sales")

	snap := s.Snapshot()
	if snap.SelectedCategory != "discovery" {
		t.Errorf("SelectedCategory = %q, want %q", snap.SelectedCategory, "discovery")
	}
	if snap.SelectedPrompt == nil || snap.SelectedPrompt.ID != "p1" {
		t.Errorf("SelectedPrompt = %+v, want p1", snap.SelectedPrompt)
	}
}

func TestSelectCategorySkipsEmptySubcategory(t *testing.T) {
	src := seededSource()
	// Move the only discovery prompt into negotiation so the first
	// subcategory is empty.
	src.prompts[0].CategoryID = "negotiation"
	s := newTestStore(t, src)
	s.SetSelectedCategory("sales")

	snap := s.Snapshot()
	if snap.SelectedCategory != "negotiation" {
		t.Errorf("SelectedCategory = %q, want %q", snap.SelectedCategory, "negotiation")
	}
	if snap.SelectedPrompt == nil || snap.SelectedPrompt.ID != "p1" {
		t.Errorf("SelectedPrompt = %+v, want p1", snap.SelectedPrompt)
	}
}

func TestSelectCategoryNoSubcategoryHasPrompts(t *testing.T) {
	src := seededSource()
	src.prompts = src.prompts[1:] // drop p1, leaving sales fully empty
	s := newTestStore(t, src)
	s.SetSelectedCategory("sales")

	snap := s.Snapshot()
	if snap.SelectedCategory != "discovery" {
		t.Errorf("SelectedCategory = %q, want first subcategory %q", snap.SelectedCategory, "discovery")
	}
	if snap.SelectedPrompt != nil {
		t.Errorf("SelectedPrompt = %+v, want nil", snap.SelectedPrompt)
	}
}

func TestSelectLeafKeepsCurrentPrompt(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SetSelectedCategory("marketing")
	s.SetSelectedPrompt(&Prompt{ID: "p3", Title: "Pricing Page Copy", CategoryID: "marketing"})

	// Re-selecting the same leaf must not reset the active prompt.
	s.SetSelectedCategory("marketing")
	snap := s.Snapshot()
	if snap.SelectedPrompt == nil || snap.SelectedPrompt.ID != "p3" {
		t.Errorf("SelectedPrompt = %+v, want p3 kept", snap.SelectedPrompt)
	}
}

func TestSelectLeafReplacesForeignPrompt(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SetSelectedPrompt(&Prompt{ID: "p1", CategoryID: "discovery"})
	s.SetSelectedCategory("marketing")

	snap := s.Snapshot()
	if snap.SelectedPrompt == nil || snap.SelectedPrompt.ID != "p2" {
		t.Errorf("SelectedPrompt = %+v, want first marketing prompt p2", snap.SelectedPrompt)
	}
}

func TestSelectUnknownCategoryClearsPrompt(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SetSelectedCategory("marketing")
	s.SetSelectedCategory("does-not-exist")

	snap := s.Snapshot()
	if snap.SelectedCategory != "does-not-exist" {
		t.Errorf("SelectedCategory = %q, want the requested id", snap.SelectedCategory)
	}
	if snap.SelectedPrompt != nil {
		t.Errorf("SelectedPrompt = %+v, want nil", snap.SelectedPrompt)
	}
}

func TestSearchEmptyQueryClearsScores(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SearchPrompts("pricing")
	s.SearchPrompts("   ")

	for _, p := range s.Snapshot().Prompts {
		if p.SearchScore != nil {
			t.Errorf("prompt %s still has score %v after clearing the query", p.ID, *p.SearchScore)
		}
	}
}

func TestSearchScoresEveryPrompt(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SearchPrompts("pricing")

	var matched, unmatched int
	for _, p := range s.Snapshot().Prompts {
		if p.SearchScore == nil {
			t.Fatalf("prompt %s has no score while a search is active", p.ID)
		}
		if *p.SearchScore > 0 {
			matched++
		} else {
			unmatched++
		}
	}
	if matched == 0 {
		t.Error("expected at least one prompt to match 'pricing'")
	}
	if unmatched == 0 {
		t.Error("expected at least one prompt to score zero")
	}
}

func TestSearchMalformedQueryFallsBack(t *testing.T) {
	s := newTestStore(t, seededSource())
	// Unbalanced quote is rejected by the query-string parser; the store
	// must degrade to substring scoring instead of surfacing an error.
	s.SearchPrompts(`title:"unbalanced`)

	for _, p := range s.Snapshot().Prompts {
		if p.SearchScore == nil {
			t.Fatalf("prompt %s has no score after fallback scoring", p.ID)
		}
	}
}

func TestVisiblePromptsFiltersByContextAndScore(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SetSelectedCategory("marketing")
	s.SearchPrompts("pricing")

	visible := s.VisiblePrompts()
	if len(visible) != 1 {
		t.Fatalf("got %d visible prompts, want 1: %+v", len(visible), visible)
	}
	if visible[0].ID != "p3" {
		t.Errorf("visible[0] = %s, want p3", visible[0].ID)
	}
}

func TestVisiblePromptsOrderWithoutSearch(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SetSelectedCategory("marketing")

	visible := s.VisiblePrompts()
	if len(visible) != 2 {
		t.Fatalf("got %d visible prompts, want 2", len(visible))
	}
	if visible[0].ID != "p2" || visible[1].ID != "p3" {
		t.Errorf("order = [%s %s], want title order [p2 p3]", visible[0].ID, visible[1].ID)
	}
}

func TestAddPromptSelectsIt(t *testing.T) {
	s := newTestStore(t, seededSource())
	p := Prompt{ID: "p4", Title: "Objection Handler", CategoryID: "negotiation"}
	if err := s.AddPrompt(context.Background(), p); err != nil {
		t.Fatalf("AddPrompt: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Prompts) != 4 {
		t.Fatalf("got %d prompts, want 4", len(snap.Prompts))
	}
	if snap.SelectedPrompt == nil || snap.SelectedPrompt.ID != "p4" {
		t.Errorf("SelectedPrompt = %+v, want p4", snap.SelectedPrompt)
	}

	// The new prompt must be searchable without an explicit refetch.
	s.SearchPrompts("objection")
	for _, vp := range s.Snapshot().Prompts {
		if vp.ID == "p4" && (vp.SearchScore == nil || *vp.SearchScore <= 0) {
			t.Error("freshly added prompt is not findable by search")
		}
	}
}

func TestUpdatePromptRefreshesSelection(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SetSelectedCategory("discovery")

	updated := Prompt{ID: "p1", Title: "Warm Call Opener", CategoryID: "discovery"}
	if err := s.UpdatePrompt(context.Background(), updated); err != nil {
		t.Fatalf("UpdatePrompt: %v", err)
	}

	snap := s.Snapshot()
	if snap.SelectedPrompt == nil || snap.SelectedPrompt.Title != "Warm Call Opener" {
		t.Errorf("SelectedPrompt = %+v, want the updated title", snap.SelectedPrompt)
	}
}

func TestFailedMutationLeavesStateUntouched(t *testing.T) {
	src := seededSource()
	s := newTestStore(t, src)
	before := s.Snapshot()

	src.err = errors.New("permission denied")
	if err := s.UpdatePrompt(context.Background(), Prompt{ID: "p1", Title: "Changed"}); err == nil {
		t.Fatal("expected error from failing source")
	}
	if err := s.DeletePrompt(context.Background(), "p1"); err == nil {
		t.Fatal("expected error from failing source")
	}
	if err := s.DeleteCategory(context.Background(), "sales"); err == nil {
		t.Fatal("expected error from failing source")
	}

	after := s.Snapshot()
	if len(after.Prompts) != len(before.Prompts) {
		t.Error("failed mutations must not change the prompt collection")
	}
	if len(after.Categories) != len(before.Categories) {
		t.Error("failed mutations must not change the category collection")
	}
	for i := range after.Prompts {
		if after.Prompts[i].Title != before.Prompts[i].Title {
			t.Errorf("prompt %s changed to %q after a failed update", after.Prompts[i].ID, after.Prompts[i].Title)
		}
	}
}

func TestDeletePromptReselectsWithinContext(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SetSelectedCategory("marketing") // selects p2

	if err := s.DeletePrompt(context.Background(), "p2"); err != nil {
		t.Fatalf("DeletePrompt: %v", err)
	}
	snap := s.Snapshot()
	if snap.SelectedPrompt == nil || snap.SelectedPrompt.ID != "p3" {
		t.Errorf("SelectedPrompt = %+v, want the next prompt p3", snap.SelectedPrompt)
	}

	if err := s.DeletePrompt(context.Background(), "p3"); err != nil {
		t.Fatalf("DeletePrompt: %v", err)
	}
	if snap := s.Snapshot(); snap.SelectedPrompt != nil {
		t.Errorf("SelectedPrompt = %+v, want nil when the context is empty", snap.SelectedPrompt)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SetSelectedCategory("sales") // drills into discovery, selects p1

	if err := s.DeleteCategory(context.Background(), "sales"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Categories) != 1 || snap.Categories[0].ID != "marketing" {
		t.Fatalf("categories = %+v, want only marketing", snap.Categories)
	}
	for _, p := range snap.Prompts {
		if p.CategoryID == "discovery" || p.CategoryID == "negotiation" {
			t.Errorf("prompt %s survived the subtree delete", p.ID)
		}
	}
	if snap.SelectedCategory != "marketing" {
		t.Errorf("SelectedCategory = %q, want first remaining category", snap.SelectedCategory)
	}
	if snap.SelectedPrompt == nil || snap.SelectedPrompt.ID != "p2" {
		t.Errorf("SelectedPrompt = %+v, want p2", snap.SelectedPrompt)
	}
}

func TestDeleteLastCategoryClearsSelection(t *testing.T) {
	s := newTestStore(t, seededSource())
	if err := s.DeleteCategory(context.Background(), "sales"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if err := s.DeleteCategory(context.Background(), "marketing"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	snap := s.Snapshot()
	if snap.SelectedCategory != "" || snap.SelectedPrompt != nil {
		t.Errorf("selection = (%q, %+v), want empty", snap.SelectedCategory, snap.SelectedPrompt)
	}
}

func TestDeleteSubcategoryFallsBackToParent(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.SetSelectedCategory("sales") // discovery + p1

	// negotiation has no prompts, so the selection falls back to the
	// parent category with no active prompt.
	if err := s.DeleteSubcategory(context.Background(), "sales", "discovery"); err != nil {
		t.Fatalf("DeleteSubcategory: %v", err)
	}

	snap := s.Snapshot()
	if snap.SelectedCategory != "sales" {
		t.Errorf("SelectedCategory = %q, want parent %q", snap.SelectedCategory, "sales")
	}
	if snap.SelectedPrompt != nil {
		t.Errorf("SelectedPrompt = %+v, want nil", snap.SelectedPrompt)
	}
	for _, p := range snap.Prompts {
		if p.CategoryID == "discovery" {
			t.Errorf("prompt %s survived the subcategory delete", p.ID)
		}
	}
}

func TestDeleteSubcategoryPrefersSiblingWithPrompts(t *testing.T) {
	src := seededSource()
	src.prompts = append(src.prompts, Prompt{ID: "p5", Title: "Counter Offer", CategoryID: "negotiation"})
	s := newTestStore(t, src)
	s.SetSelectedCategory("discovery")

	if err := s.DeleteSubcategory(context.Background(), "sales", "discovery"); err != nil {
		t.Fatalf("DeleteSubcategory: %v", err)
	}

	snap := s.Snapshot()
	if snap.SelectedCategory != "negotiation" {
		t.Errorf("SelectedCategory = %q, want sibling %q", snap.SelectedCategory, "negotiation")
	}
	if snap.SelectedPrompt == nil || snap.SelectedPrompt.ID != "p5" {
		t.Errorf("SelectedPrompt = %+v, want p5", snap.SelectedPrompt)
	}
}

func TestRestoreSelection(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.RestoreSelection(Selection{CategoryID: "marketing", PromptID: "p3"})

	sel := s.CurrentSelection()
	if sel.CategoryID != "marketing" || sel.PromptID != "p3" {
		t.Errorf("selection = %+v, want marketing/p3", sel)
	}
}

func TestRestoreSelectionStalePromptID(t *testing.T) {
	s := newTestStore(t, seededSource())
	s.RestoreSelection(Selection{CategoryID: "marketing", PromptID: "deleted-long-ago"})

	snap := s.Snapshot()
	if snap.SelectedCategory != "marketing" {
		t.Errorf("SelectedCategory = %q, want %q", snap.SelectedCategory, "marketing")
	}
	if snap.SelectedPrompt != nil {
		t.Errorf("SelectedPrompt = %+v, want nil for a stale id", snap.SelectedPrompt)
	}
}

func TestTrackAction(t *testing.T) {
	src := seededSource()
	s := newTestStore(t, src)
	s.TrackAction(context.Background(), "p1", "copy", nil)

	src.mu.Lock()
	defer src.mu.Unlock()
	if len(src.events) != 1 {
		t.Fatalf("got %d events, want 1", len(src.events))
	}
	if src.events[0] != (recordedEvent{PromptID: "p1", Action: "copy"}) {
		t.Errorf("event = %+v", src.events[0])
	}
}

func TestTrackActionSkippedWhenNotSeeded(t *testing.T) {
	src := &fakeSource{}
	s := NewStore(logger.NewNop(), src)
	_ = s.FetchData(context.Background())
	s.TrackAction(context.Background(), "p1", "copy", nil)

	src.mu.Lock()
	defer src.mu.Unlock()
	if len(src.events) != 0 {
		t.Errorf("got %d events, want none while unseeded", len(src.events))
	}
}
