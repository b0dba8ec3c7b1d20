package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/repos"
	"github.com/promptvault/promptvault-backend/internal/types"
)

type fakePromptRepo struct {
	repos.PromptRepo
	prompts map[string]*types.Prompt
}

func (f *fakePromptRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Prompt, error) {
	p, ok := f.prompts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type fakePromptEventRepo struct {
	events []*types.PromptEvent
	err    error
}

func (f *fakePromptEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.PromptEvent) ([]*types.PromptEvent, error) {
	f.events = append(f.events, events...)
	return events, nil
}

func (f *fakePromptEventRepo) ListByPromptID(ctx context.Context, tx *gorm.DB, promptID string, limit int) ([]*types.PromptEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.PromptEvent
	for _, ev := range f.events {
		if ev.PromptID == promptID {
			out = append(out, ev)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakePromptEventRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.PromptEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.events) {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func analyticsFixture() (*fakePromptRepo, *fakePromptEventRepo) {
	promptRepo := &fakePromptRepo{prompts: map[string]*types.Prompt{
		"objection-pricing": {ID: "objection-pricing", Title: "Price Objection Handling"},
	}}
	now := time.Now()
	eventRepo := &fakePromptEventRepo{events: []*types.PromptEvent{
		{ID: uuid.New(), PromptID: "objection-pricing", Action: "copy", CreatedAt: now},
		{ID: uuid.New(), PromptID: "objection-pricing", Action: "view", CreatedAt: now},
		{ID: uuid.New(), PromptID: "objection-pricing", Action: "copy", CreatedAt: now},
		{ID: uuid.New(), PromptID: "email-follow-up", Action: "view", CreatedAt: now},
	}}
	return promptRepo, eventRepo
}

func TestRecentEvents(t *testing.T) {
	promptRepo, eventRepo := analyticsFixture()
	svc := NewAnalyticsService(logger.NewNop(), promptRepo, eventRepo)

	events, err := svc.RecentEvents(context.Background(), 0)
	if err != nil {
		t.Fatalf("RecentEvents failed: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}

	limited, err := svc.RecentEvents(context.Background(), 2)
	if err != nil {
		t.Fatalf("RecentEvents with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 events under limit, got %d", len(limited))
	}
}

func TestPromptActivityCountsActions(t *testing.T) {
	promptRepo, eventRepo := analyticsFixture()
	svc := NewAnalyticsService(logger.NewNop(), promptRepo, eventRepo)

	activity, err := svc.PromptActivity(context.Background(), "objection-pricing", 0)
	if err != nil {
		t.Fatalf("PromptActivity failed: %v", err)
	}
	if activity.Prompt == nil || activity.Prompt.Title != "Price Objection Handling" {
		t.Fatalf("expected the prompt row in the activity view, got %+v", activity.Prompt)
	}
	if len(activity.Events) != 3 {
		t.Fatalf("expected 3 events for the prompt, got %d", len(activity.Events))
	}
	if activity.Actions["copy"] != 2 || activity.Actions["view"] != 1 {
		t.Fatalf("unexpected action counts: %v", activity.Actions)
	}
}

func TestPromptActivityUnknownPrompt(t *testing.T) {
	promptRepo, eventRepo := analyticsFixture()
	svc := NewAnalyticsService(logger.NewNop(), promptRepo, eventRepo)

	if _, err := svc.PromptActivity(context.Background(), "nope", 0); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found for unknown prompt, got %v", err)
	}
}

func TestPromptActivityRequiresID(t *testing.T) {
	promptRepo, eventRepo := analyticsFixture()
	svc := NewAnalyticsService(logger.NewNop(), promptRepo, eventRepo)

	if _, err := svc.PromptActivity(context.Background(), "", 0); err == nil {
		t.Fatal("expected an error for empty prompt id")
	}
}
