// Package library implements the prompt-library store: the single source of
// truth for the in-memory category/prompt collections, the active selection,
// and the full-text search scores attached to prompts. All reads and
// mutations flow through the Store; the remote relational store and the
// identity provider are injected collaborators.
package library

import (
	"context"

	"github.com/google/uuid"
)

// Subcategory is the view shape of a second-level grouping.
type Subcategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category is the view shape of a top-level grouping with its subcategories
// already joined. Raw join rows never cross the DataSource boundary.
type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Variable describes one {{placeholder}} of a prompt body.
type Variable struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
}

// Prompt is the view shape of a reusable template. SearchScore is transient:
// nil means no search is active, 0 means the active search matched nothing.
type Prompt struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	WhenToUse   string              `json:"when_to_use"`
	Content     string              `json:"content"`
	CategoryID  string              `json:"category_id"`
	Status      string              `json:"status"`
	Variables   map[string]Variable `json:"variables,omitempty"`
	SearchScore *float64            `json:"searchScore,omitempty"`
}

// DataSource is the remote store collaborator. Every mutation must succeed
// remotely before the Store patches its in-memory state.
type DataSource interface {
	HasAnyCategory(ctx context.Context) (bool, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListPrompts(ctx context.Context) ([]Prompt, error)

	InsertCategory(ctx context.Context, c Category) (Category, error)
	UpdateCategory(ctx context.Context, id, name string) (Category, error)
	DeleteCategory(ctx context.Context, id string) error

	InsertSubcategory(ctx context.Context, parentID string, sub Subcategory) (Subcategory, error)
	UpdateSubcategory(ctx context.Context, parentID string, sub Subcategory) (Subcategory, error)
	DeleteSubcategory(ctx context.Context, id string) error

	InsertPrompt(ctx context.Context, p Prompt) (Prompt, error)
	UpdatePrompt(ctx context.Context, p Prompt) (Prompt, error)
	DeletePrompt(ctx context.Context, id string) error

	RecordPromptEvent(ctx context.Context, promptID, action string, userID *uuid.UUID) error
}

// Selection is the persisted slice of state: ids only, the full prompt is
// re-resolved from the fetched collection on restore.
type Selection struct {
	CategoryID string `json:"selected_category_id"`
	PromptID   string `json:"selected_prompt_id"`
}

// SelectionCache persists Selection per owner across sessions. A nil cache
// is valid and means selections do not survive restarts.
type SelectionCache interface {
	Save(ctx context.Context, owner string, sel Selection) error
	Load(ctx context.Context, owner string) (*Selection, error)
	Clear(ctx context.Context, owner string) error
}
