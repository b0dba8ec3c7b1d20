package services

import (
	"strings"
	"testing"
)

func TestSeedPromptsReferenceKnownCategories(t *testing.T) {
	known := map[string]bool{}
	for _, c := range seedCategories {
		known[c.ID] = true
		for _, sub := range c.Subcategories {
			if known[sub.ID] {
				t.Fatalf("duplicate subcategory id %q in seed data", sub.ID)
			}
			known[sub.ID] = true
		}
	}
	for _, p := range seedPrompts {
		if !known[p.CategoryID] {
			t.Errorf("prompt %s references unknown category %q", p.ID, p.CategoryID)
		}
	}
}

func TestSeedPromptIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range seedPrompts {
		if seen[p.ID] {
			t.Errorf("duplicate prompt id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestSeedPromptVariablesAppearInContent(t *testing.T) {
	for _, p := range seedPrompts {
		for key := range p.Variables {
			placeholder := "{{" + key + "}}"
			if !strings.Contains(p.Content, placeholder) {
				t.Errorf("prompt %s declares variable %q but content has no %s", p.ID, key, placeholder)
			}
		}
	}
}

func TestSeedPromptsCoverEverySubcategoryGroup(t *testing.T) {
	// Not every subcategory needs a prompt, but every top-level category
	// should have at least one so a freshly seeded library is browsable.
	subToParent := map[string]string{}
	for _, c := range seedCategories {
		for _, sub := range c.Subcategories {
			subToParent[sub.ID] = c.ID
		}
	}
	covered := map[string]bool{}
	for _, p := range seedPrompts {
		if parent, ok := subToParent[p.CategoryID]; ok {
			covered[parent] = true
		} else {
			covered[p.CategoryID] = true
		}
	}
	for _, c := range seedCategories {
		if !covered[c.ID] {
			t.Errorf("category %s has no seed prompts", c.ID)
		}
	}
}
