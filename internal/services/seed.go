package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/repos"
	"github.com/promptvault/promptvault-backend/internal/types"
)

// SeedStatus reports how much of the starter library is present.
type SeedStatus struct {
	IsSeeded        bool              `json:"is_seeded"`
	CategoriesCount int64             `json:"categories_count"`
	PromptsCount    int64             `json:"prompts_count"`
	Categories      []*types.Category `json:"categories"`
}

type SeedService interface {
	Status(ctx context.Context) (SeedStatus, error)
	// Seed populates the starter library. Without force an already seeded
	// database is left alone; with force all library content is replaced.
	Seed(ctx context.Context, force bool) (string, error)
}

type seedService struct {
	db              *gorm.DB
	log             *logger.Logger
	categoryRepo    repos.CategoryRepo
	subcategoryRepo repos.SubcategoryRepo
	promptRepo      repos.PromptRepo
}

func NewSeedService(
	db *gorm.DB,
	log *logger.Logger,
	categoryRepo repos.CategoryRepo,
	subcategoryRepo repos.SubcategoryRepo,
	promptRepo repos.PromptRepo,
) SeedService {
	serviceLog := log.With("service", "SeedService")
	return &seedService{
		db:              db,
		log:             serviceLog,
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		promptRepo:      promptRepo,
	}
}

func (ss *seedService) Status(ctx context.Context) (SeedStatus, error) {
	categories, err := ss.categoryRepo.List(ctx, nil)
	if err != nil {
		return SeedStatus{}, fmt.Errorf("list categories: %w", err)
	}
	promptCount, err := ss.promptRepo.Count(ctx, nil)
	if err != nil {
		return SeedStatus{}, fmt.Errorf("count prompts: %w", err)
	}
	return SeedStatus{
		IsSeeded:        len(categories) > 0 && promptCount > 0,
		CategoriesCount: int64(len(categories)),
		PromptsCount:    promptCount,
		Categories:      categories,
	}, nil
}

func (ss *seedService) Seed(ctx context.Context, force bool) (string, error) {
	exists, err := ss.categoryRepo.Exists(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("check existing data: %w", err)
	}
	if exists && !force {
		ss.log.Info("Database already seeded, skipping")
		return "Database already seeded", nil
	}

	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if exists {
			ss.log.Info("Force seeding, clearing existing library data")
			// Reverse dependency order.
			if dErr := ss.promptRepo.DeleteAll(ctx, tx); dErr != nil {
				return fmt.Errorf("delete prompts: %w", dErr)
			}
			if dErr := ss.subcategoryRepo.DeleteAll(ctx, tx); dErr != nil {
				return fmt.Errorf("delete subcategories: %w", dErr)
			}
			if dErr := ss.categoryRepo.DeleteAll(ctx, tx); dErr != nil {
				return fmt.Errorf("delete categories: %w", dErr)
			}
		}

		categoryRows := make([]*types.Category, 0, len(seedCategories))
		var subcategoryRows []*types.Subcategory
		for _, c := range seedCategories {
			categoryRows = append(categoryRows, &types.Category{ID: c.ID, Name: c.Name})
			for _, sub := range c.Subcategories {
				subcategoryRows = append(subcategoryRows, &types.Subcategory{
					ID:         sub.ID,
					Name:       sub.Name,
					CategoryID: c.ID,
				})
			}
		}
		if _, cErr := ss.categoryRepo.Create(ctx, tx, categoryRows); cErr != nil {
			return fmt.Errorf("insert categories: %w", cErr)
		}
		if _, sErr := ss.subcategoryRepo.Create(ctx, tx, subcategoryRows); sErr != nil {
			return fmt.Errorf("insert subcategories: %w", sErr)
		}

		now := time.Now()
		promptRows := make([]*types.Prompt, 0, len(seedPrompts))
		for _, p := range seedPrompts {
			variables, mErr := json.Marshal(p.Variables)
			if mErr != nil {
				return fmt.Errorf("marshal variables for %s: %w", p.ID, mErr)
			}
			promptRows = append(promptRows, &types.Prompt{
				ID:          p.ID,
				Title:       p.Title,
				Description: p.Description,
				WhenToUse:   p.WhenToUse,
				Content:     p.Content,
				CategoryID:  p.CategoryID,
				Variables:   datatypes.JSON(variables),
				Status:      types.PromptStatusApproved,
				ApprovedAt:  &now,
			})
		}
		if _, pErr := ss.promptRepo.Create(ctx, tx, promptRows); pErr != nil {
			return fmt.Errorf("insert prompts: %w", pErr)
		}
		return nil
	})
	if err != nil {
		ss.log.Error("Seeding failed", "error", err)
		return "", err
	}

	ss.log.Info("Database seeded",
		"categories", len(seedCategories), "prompts", len(seedPrompts), "force", force)
	return "Database seeded successfully", nil
}
