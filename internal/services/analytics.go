package services

import (
	"context"
	"fmt"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/repos"
	"github.com/promptvault/promptvault-backend/internal/types"
)

// PromptActivity is the admin analytics view for a single prompt: the prompt
// itself, its most recent events and per-action counts over that window.
type PromptActivity struct {
	Prompt  *types.Prompt        `json:"prompt"`
	Events  []*types.PromptEvent `json:"events"`
	Actions map[string]int64     `json:"actions"`
}

type AnalyticsService interface {
	RecentEvents(ctx context.Context, limit int) ([]*types.PromptEvent, error)
	PromptActivity(ctx context.Context, promptID string, limit int) (*PromptActivity, error)
}

type analyticsService struct {
	log             *logger.Logger
	promptRepo      repos.PromptRepo
	promptEventRepo repos.PromptEventRepo
}

func NewAnalyticsService(log *logger.Logger, promptRepo repos.PromptRepo, promptEventRepo repos.PromptEventRepo) AnalyticsService {
	serviceLog := log.With("service", "AnalyticsService")
	return &analyticsService{
		log:             serviceLog,
		promptRepo:      promptRepo,
		promptEventRepo: promptEventRepo,
	}
}

func (an *analyticsService) RecentEvents(ctx context.Context, limit int) ([]*types.PromptEvent, error) {
	events, err := an.promptEventRepo.ListRecent(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent events: %w", err)
	}
	return events, nil
}

func (an *analyticsService) PromptActivity(ctx context.Context, promptID string, limit int) (*PromptActivity, error) {
	if promptID == "" {
		return nil, fmt.Errorf("prompt id required")
	}

	prompt, err := an.promptRepo.GetByID(ctx, nil, promptID)
	if err != nil {
		return nil, fmt.Errorf("load prompt %q: %w", promptID, err)
	}

	events, err := an.promptEventRepo.ListByPromptID(ctx, nil, promptID, limit)
	if err != nil {
		return nil, fmt.Errorf("list events for prompt %q: %w", promptID, err)
	}

	actions := make(map[string]int64)
	for _, ev := range events {
		actions[ev.Action]++
	}
	return &PromptActivity{Prompt: prompt, Events: events, Actions: actions}, nil
}
