package library

import (
	"context"

	"github.com/google/uuid"
)

// Mutations are remote-first: the remote write must be confirmed before the
// in-memory state is patched. On failure the local state is untouched and
// the error is returned to the caller; nothing is applied speculatively.

// AddPrompt inserts a prompt remotely, appends the persisted row locally,
// rebuilds the search index and makes the new prompt the active selection.
func (s *Store) AddPrompt(ctx context.Context, p Prompt) error {
	created, err := s.source.InsertPrompt(ctx, p)
	if err != nil {
		s.log.Error("Adding prompt failed", "prompt_id", p.ID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, created)
	s.rebuildIndexLocked()
	cp := created
	s.selectedPrompt = &cp
	return nil
}

// UpdatePrompt replaces the local copy with the confirmed remote row. When
// the updated prompt is the active one the active reference is refreshed,
// so callers must not rely on reference identity.
func (s *Store) UpdatePrompt(ctx context.Context, p Prompt) error {
	updated, err := s.source.UpdatePrompt(ctx, p)
	if err != nil {
		s.log.Error("Updating prompt failed", "prompt_id", p.ID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.prompts {
		if s.prompts[i].ID == updated.ID {
			s.prompts[i] = updated
			break
		}
	}
	s.rebuildIndexLocked()
	if s.selectedPrompt != nil && s.selectedPrompt.ID == updated.ID {
		cp := updated
		s.selectedPrompt = &cp
	}
	return nil
}

// DeletePrompt removes the prompt locally after the confirmed remote delete
// and re-derives the active prompt when the deleted one was selected.
func (s *Store) DeletePrompt(ctx context.Context, promptID string) error {
	if err := s.source.DeletePrompt(ctx, promptID); err != nil {
		s.log.Error("Deleting prompt failed", "prompt_id", promptID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.prompts[:0:0]
	for _, p := range s.prompts {
		if p.ID != promptID {
			kept = append(kept, p)
		}
	}
	s.prompts = kept
	s.rebuildIndexLocked()

	if s.selectedPrompt != nil && s.selectedPrompt.ID == promptID {
		if remaining := s.promptsInLocked(s.selectedCategory); len(remaining) > 0 {
			p := remaining[0]
			s.selectedPrompt = &p
		} else {
			s.selectedPrompt = nil
		}
	}
	return nil
}

// AddCategory appends the confirmed category with an empty subcategory list.
func (s *Store) AddCategory(ctx context.Context, c Category) error {
	created, err := s.source.InsertCategory(ctx, c)
	if err != nil {
		s.log.Error("Adding category failed", "category_id", c.ID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created.Subcategories = []Subcategory{}
	s.categories = append(s.categories, created)
	return nil
}

func (s *Store) UpdateCategory(ctx context.Context, id, name string) error {
	updated, err := s.source.UpdateCategory(ctx, id, name)
	if err != nil {
		s.log.Error("Updating category failed", "category_id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findCategoryLocked(updated.ID); c != nil {
		c.Name = updated.Name
	}
	return nil
}

// DeleteCategory cascades locally over the deleted subtree (its
// subcategories and every prompt referencing either the category or one of
// them), mirroring the remote cascade, then re-derives a valid selection.
func (s *Store) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.source.DeleteCategory(ctx, categoryID); err != nil {
		s.log.Error("Deleting category failed", "category_id", categoryID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := map[string]bool{categoryID: true}
	if c := s.findCategoryLocked(categoryID); c != nil {
		for _, sub := range c.Subcategories {
			removed[sub.ID] = true
		}
	}

	keptPrompts := s.prompts[:0:0]
	for _, p := range s.prompts {
		if !removed[p.CategoryID] {
			keptPrompts = append(keptPrompts, p)
		}
	}
	s.prompts = keptPrompts

	keptCategories := s.categories[:0:0]
	for _, c := range s.categories {
		if c.ID != categoryID {
			keptCategories = append(keptCategories, c)
		}
	}
	s.categories = keptCategories

	if removed[s.selectedCategory] || (s.selectedPrompt != nil && removed[s.selectedPrompt.CategoryID]) {
		if len(s.categories) > 0 {
			s.selectedCategory = s.categories[0].ID
			if prompts := s.promptsInLocked(s.selectedCategory); len(prompts) > 0 {
				p := prompts[0]
				s.selectedPrompt = &p
			} else {
				s.selectedPrompt = nil
			}
		} else {
			s.selectedCategory = ""
			s.selectedPrompt = nil
		}
	}

	s.rebuildIndexLocked()
	return nil
}

func (s *Store) AddSubcategory(ctx context.Context, parentID string, sub Subcategory) error {
	created, err := s.source.InsertSubcategory(ctx, parentID, sub)
	if err != nil {
		s.log.Error("Adding subcategory failed", "subcategory_id", sub.ID, "parent_id", parentID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findCategoryLocked(parentID); c != nil {
		c.Subcategories = append(c.Subcategories, created)
	}
	return nil
}

func (s *Store) UpdateSubcategory(ctx context.Context, parentID string, sub Subcategory) error {
	updated, err := s.source.UpdateSubcategory(ctx, parentID, sub)
	if err != nil {
		s.log.Error("Updating subcategory failed", "subcategory_id", sub.ID, "parent_id", parentID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findCategoryLocked(parentID); c != nil {
		for i := range c.Subcategories {
			if c.Subcategories[i].ID == updated.ID {
				c.Subcategories[i].Name = updated.Name
				break
			}
		}
	}
	return nil
}

// DeleteSubcategory removes the subcategory and its prompts. When it was
// the active context the selection prefers a sibling subcategory that still
// has prompts, then falls back to the parent category with no active prompt.
func (s *Store) DeleteSubcategory(ctx context.Context, parentID, subcategoryID string) error {
	if err := s.source.DeleteSubcategory(ctx, subcategoryID); err != nil {
		s.log.Error("Deleting subcategory failed", "subcategory_id", subcategoryID, "parent_id", parentID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keptPrompts := s.prompts[:0:0]
	for _, p := range s.prompts {
		if p.CategoryID != subcategoryID {
			keptPrompts = append(keptPrompts, p)
		}
	}
	s.prompts = keptPrompts

	parent := s.findCategoryLocked(parentID)
	if parent != nil {
		keptSubs := parent.Subcategories[:0:0]
		for _, sub := range parent.Subcategories {
			if sub.ID != subcategoryID {
				keptSubs = append(keptSubs, sub)
			}
		}
		parent.Subcategories = keptSubs
	}

	if s.selectedCategory == subcategoryID {
		s.selectedCategory = parentID
		s.selectedPrompt = nil
		if parent != nil {
			for _, sibling := range parent.Subcategories {
				if prompts := s.promptsInLocked(sibling.ID); len(prompts) > 0 {
					s.selectedCategory = sibling.ID
					p := prompts[0]
					s.selectedPrompt = &p
					break
				}
			}
		}
	}

	s.rebuildIndexLocked()
	return nil
}

// TrackAction records an analytics event. Best effort: failures are logged
// and never surfaced, and nothing is recorded while the store is unseeded.
func (s *Store) TrackAction(ctx context.Context, promptID, action string, userID *uuid.UUID) {
	s.mu.Lock()
	seeded := s.isSeeded
	s.mu.Unlock()

	if !seeded {
		s.log.Warn("Skipping analytics tracking: store not seeded", "prompt_id", promptID, "action", action)
		return
	}
	if err := s.source.RecordPromptEvent(ctx, promptID, action, userID); err != nil {
		s.log.Error("Tracking prompt action failed", "prompt_id", promptID, "action", action, "error", err)
	}
}
