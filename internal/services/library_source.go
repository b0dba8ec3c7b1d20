package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/promptvault/promptvault-backend/internal/library"
	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/repos"
	"github.com/promptvault/promptvault-backend/internal/types"
)

// librarySource is the GORM-backed library.DataSource. All row-to-view
// reshaping lives here; the store never sees raw join rows or jsonb.
type librarySource struct {
	db              *gorm.DB
	log             *logger.Logger
	categoryRepo    repos.CategoryRepo
	subcategoryRepo repos.SubcategoryRepo
	promptRepo      repos.PromptRepo
	promptEventRepo repos.PromptEventRepo
}

func NewLibrarySource(
	db *gorm.DB,
	log *logger.Logger,
	categoryRepo repos.CategoryRepo,
	subcategoryRepo repos.SubcategoryRepo,
	promptRepo repos.PromptRepo,
	promptEventRepo repos.PromptEventRepo,
) library.DataSource {
	serviceLog := log.With("service", "LibrarySource")
	return &librarySource{
		db:              db,
		log:             serviceLog,
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		promptRepo:      promptRepo,
		promptEventRepo: promptEventRepo,
	}
}

func (ls *librarySource) HasAnyCategory(ctx context.Context) (bool, error) {
	return ls.categoryRepo.Exists(ctx, nil)
}

// ListCategories joins categories with their subcategories into the nested
// view shape. Categories without subcategories get an empty slice, never
// nil, so consumers can range without a guard.
func (ls *librarySource) ListCategories(ctx context.Context) ([]library.Category, error) {
	categories, err := ls.categoryRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	subcategories, err := ls.subcategoryRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}

	byParent := make(map[string][]library.Subcategory, len(categories))
	for _, sub := range subcategories {
		byParent[sub.CategoryID] = append(byParent[sub.CategoryID], library.Subcategory{
			ID:   sub.ID,
			Name: sub.Name,
		})
	}

	result := make([]library.Category, 0, len(categories))
	for _, c := range categories {
		subs := byParent[c.ID]
		if subs == nil {
			subs = []library.Subcategory{}
		}
		result = append(result, library.Category{
			ID:            c.ID,
			Name:          c.Name,
			Subcategories: subs,
		})
	}
	return result, nil
}

func (ls *librarySource) ListPrompts(ctx context.Context) ([]library.Prompt, error) {
	prompts, err := ls.promptRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	result := make([]library.Prompt, 0, len(prompts))
	for _, p := range prompts {
		view, err := promptToView(p)
		if err != nil {
			ls.log.Warn("Skipping prompt with malformed variables", "prompt_id", p.ID, "error", err)
			continue
		}
		result = append(result, view)
	}
	return result, nil
}

func (ls *librarySource) InsertCategory(ctx context.Context, c library.Category) (library.Category, error) {
	row := &types.Category{ID: c.ID, Name: c.Name}
	created, err := ls.categoryRepo.Create(ctx, nil, []*types.Category{row})
	if err != nil {
		return library.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return library.Category{ID: created[0].ID, Name: created[0].Name, Subcategories: []library.Subcategory{}}, nil
}

func (ls *librarySource) UpdateCategory(ctx context.Context, id, name string) (library.Category, error) {
	updated, err := ls.categoryRepo.UpdateName(ctx, nil, id, name)
	if err != nil {
		return library.Category{}, fmt.Errorf("update category: %w", err)
	}
	return library.Category{ID: updated.ID, Name: updated.Name}, nil
}

// DeleteCategory removes the category, its subcategories and every prompt
// assigned to any id in the subtree, atomically.
func (ls *librarySource) DeleteCategory(ctx context.Context, id string) error {
	return ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subcategories, err := ls.subcategoryRepo.ListByCategoryIDs(ctx, tx, []string{id})
		if err != nil {
			return fmt.Errorf("list subcategories: %w", err)
		}
		ids := make([]string, 0, len(subcategories)+1)
		ids = append(ids, id)
		for _, sub := range subcategories {
			ids = append(ids, sub.ID)
		}
		if err := ls.promptRepo.DeleteByCategoryIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete prompts: %w", err)
		}
		// Subcategory rows go with the category via the FK cascade.
		if err := ls.categoryRepo.Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}

func (ls *librarySource) InsertSubcategory(ctx context.Context, parentID string, sub library.Subcategory) (library.Subcategory, error) {
	row := &types.Subcategory{ID: sub.ID, Name: sub.Name, CategoryID: parentID}
	created, err := ls.subcategoryRepo.Create(ctx, nil, []*types.Subcategory{row})
	if err != nil {
		return library.Subcategory{}, fmt.Errorf("insert subcategory: %w", err)
	}
	return library.Subcategory{ID: created[0].ID, Name: created[0].Name}, nil
}

func (ls *librarySource) UpdateSubcategory(ctx context.Context, parentID string, sub library.Subcategory) (library.Subcategory, error) {
	updated, err := ls.subcategoryRepo.UpdateName(ctx, nil, sub.ID, sub.Name)
	if err != nil {
		return library.Subcategory{}, fmt.Errorf("update subcategory: %w", err)
	}
	return library.Subcategory{ID: updated.ID, Name: updated.Name}, nil
}

func (ls *librarySource) DeleteSubcategory(ctx context.Context, id string) error {
	return ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ls.promptRepo.DeleteByCategoryIDs(ctx, tx, []string{id}); err != nil {
			return fmt.Errorf("delete prompts: %w", err)
		}
		if err := ls.subcategoryRepo.Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("delete subcategory: %w", err)
		}
		return nil
	})
}

func (ls *librarySource) InsertPrompt(ctx context.Context, p library.Prompt) (library.Prompt, error) {
	row, err := promptToRow(p)
	if err != nil {
		return library.Prompt{}, err
	}
	created, err := ls.promptRepo.Create(ctx, nil, []*types.Prompt{row})
	if err != nil {
		return library.Prompt{}, fmt.Errorf("insert prompt: %w", err)
	}
	return promptToView(created[0])
}

func (ls *librarySource) UpdatePrompt(ctx context.Context, p library.Prompt) (library.Prompt, error) {
	row, err := promptToRow(p)
	if err != nil {
		return library.Prompt{}, err
	}
	updated, err := ls.promptRepo.Update(ctx, nil, row)
	if err != nil {
		return library.Prompt{}, fmt.Errorf("update prompt: %w", err)
	}
	return promptToView(updated)
}

func (ls *librarySource) DeletePrompt(ctx context.Context, id string) error {
	if err := ls.promptRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	return nil
}

// RecordPromptEvent verifies the prompt still exists before writing the
// analytics row, so deleted prompts never accrue events.
func (ls *librarySource) RecordPromptEvent(ctx context.Context, promptID, action string, userID *uuid.UUID) error {
	exists, err := ls.promptRepo.Exists(ctx, nil, promptID)
	if err != nil {
		return fmt.Errorf("check prompt: %w", err)
	}
	if !exists {
		return fmt.Errorf("prompt %s not found", promptID)
	}
	event := &types.PromptEvent{PromptID: promptID, Action: action, UserID: userID}
	if _, err := ls.promptEventRepo.Create(ctx, nil, []*types.PromptEvent{event}); err != nil {
		return fmt.Errorf("record prompt event: %w", err)
	}
	return nil
}

func promptToView(p *types.Prompt) (library.Prompt, error) {
	view := library.Prompt{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		WhenToUse:   p.WhenToUse,
		Content:     p.Content,
		CategoryID:  p.CategoryID,
		Status:      p.Status,
	}
	if len(p.Variables) > 0 {
		if err := json.Unmarshal(p.Variables, &view.Variables); err != nil {
			return library.Prompt{}, fmt.Errorf("unmarshal variables: %w", err)
		}
	}
	return view, nil
}

func promptToRow(p library.Prompt) (*types.Prompt, error) {
	row := &types.Prompt{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		WhenToUse:   p.WhenToUse,
		Content:     p.Content,
		CategoryID:  p.CategoryID,
		Status:      p.Status,
	}
	if row.Status == "" {
		row.Status = types.PromptStatusDraft
	}
	if p.Variables != nil {
		raw, err := json.Marshal(p.Variables)
		if err != nil {
			return nil, fmt.Errorf("marshal variables: %w", err)
		}
		row.Variables = datatypes.JSON(raw)
	}
	return row, nil
}
