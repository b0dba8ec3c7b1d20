package library

// SetSelectedCategory runs the full category transition: auto-drill into the
// first subcategory that has prompts, first-prompt selection, and the
// keep-current-prompt rule on re-selection. Re-invoking with the same id
// re-executes the whole transition so that externally triggered corrections
// still apply.
func (s *Store) SetSelectedCategory(categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectCategoryLocked(categoryID)
}

func (s *Store) selectCategoryLocked(categoryID string) {
	category := s.findCategoryLocked(categoryID)

	// A top-level category that owns subcategories is never itself the
	// active context: drill into the first subcategory with prompts.
	if category != nil && len(category.Subcategories) > 0 {
		for _, sub := range category.Subcategories {
			if prompts := s.promptsInLocked(sub.ID); len(prompts) > 0 {
				s.selectedCategory = sub.ID
				p := prompts[0]
				s.selectedPrompt = &p
				return
			}
		}
		// No subcategory has prompts: select the first one anyway.
		s.selectedCategory = category.Subcategories[0].ID
		s.selectedPrompt = nil
		return
	}

	// Unknown ids and leaf categories (including subcategory ids) are the
	// context themselves.
	s.selectedCategory = categoryID
	prompts := s.promptsInLocked(categoryID)
	if len(prompts) == 0 {
		s.selectedPrompt = nil
		return
	}
	// Keep the current prompt when it already belongs here, so re-clicking
	// a category does not discard in-progress edits.
	if s.selectedPrompt != nil && s.selectedPrompt.CategoryID == categoryID {
		return
	}
	p := prompts[0]
	s.selectedPrompt = &p
}

// SetSelectedPrompt unconditionally sets the active prompt without touching
// the category context. nil clears it.
func (s *Store) SetSelectedPrompt(p *Prompt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.selectedPrompt = nil
		return
	}
	cp := *p
	s.selectedPrompt = &cp
}

// RestoreSelection rehydrates a persisted selection: ids only, with the
// prompt re-resolved against the current collection. A prompt id that no
// longer exists restores just the category context.
func (s *Store) RestoreSelection(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sel.CategoryID != "" {
		s.selectedCategory = sel.CategoryID
	}
	if sel.PromptID == "" {
		return
	}
	for _, p := range s.prompts {
		if p.ID == sel.PromptID {
			cp := p
			s.selectedPrompt = &cp
			return
		}
	}
}

// CurrentSelection returns the persistable slice of the selection state.
func (s *Store) CurrentSelection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := Selection{CategoryID: s.selectedCategory}
	if s.selectedPrompt != nil {
		sel.PromptID = s.selectedPrompt.ID
	}
	return sel
}

func (s *Store) findCategoryLocked(id string) *Category {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i]
		}
	}
	return nil
}

// promptsInLocked returns the prompts assigned to the given category or
// subcategory id, in stored order.
func (s *Store) promptsInLocked(categoryID string) []Prompt {
	var result []Prompt
	for _, p := range s.prompts {
		if p.CategoryID == categoryID {
			result = append(result, p)
		}
	}
	return result
}
