package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dimaa-cafe/api/internal/store"
)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9-]+`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// Slugify derives a category id from an English display name: lowercase,
// whitespace runs become hyphens, everything outside [a-z0-9-] is stripped.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespacePattern.ReplaceAllString(s, "-")
	s = slugStripPattern.ReplaceAllString(s, "")
	return strings.Trim(s, "-")
}

// ListCategories returns the ordered category list together with the
// protected predefined-id set.
func (c *Catalog) ListCategories(ctx context.Context) (store.CategoryDocument, error) {
	return c.categories.Load()
}

// AddCategory appends a category to the end of the order. When id is empty
// it is derived from the English name. Colliding ids, or display names that
// match an existing category case-insensitively, are rejected. An empty
// menu section is created immediately so the category can receive items
// without waiting for a reorder cycle.
func (c *Catalog) AddCategory(ctx context.Context, id string, name store.LanguageText) (store.Category, error) {
	if id == "" {
		id = Slugify(name.En)
	}
	if id == "" {
		return store.Category{}, validationError("category needs an id or an English name to derive one")
	}
	if name.En == "" && name.Fa == "" {
		return store.Category{}, validationError("category name is required")
	}

	category := store.Category{ID: id, Name: name}

	var prev store.CategoryDocument
	err := c.categories.Update(func(doc *store.CategoryDocument) error {
		prev = doc.Clone()
		for _, existing := range doc.Categories {
			if existing.ID == id {
				return fmt.Errorf("%w: id %q", ErrDuplicateCategory, id)
			}
			if name.En != "" && strings.EqualFold(existing.Name.En, name.En) {
				return fmt.Errorf("%w: name %q", ErrDuplicateCategory, name.En)
			}
			if name.Fa != "" && strings.EqualFold(existing.Name.Fa, name.Fa) {
				return fmt.Errorf("%w: name %q", ErrDuplicateCategory, name.Fa)
			}
		}
		doc.Categories = append(doc.Categories, category)
		return nil
	})
	if err != nil {
		return store.Category{}, err
	}

	err = c.cascadeMenu(prev, func(doc *store.MenuDocument) error {
		ensureSection(doc, id)
		return nil
	})
	if err != nil {
		return store.Category{}, err
	}
	return category, nil
}

// ReorderCategories replaces the stored order wholesale and re-sorts the
// menu sections to match. Categories present in the new order but missing a
// section get an empty one appended; sections for categories absent from
// the new order are kept and sorted to the end (only an explicit delete
// removes a section).
func (c *Catalog) ReorderCategories(ctx context.Context, newOrder []store.Category) error {
	seen := make(map[string]bool, len(newOrder))
	for _, category := range newOrder {
		if category.ID == "" {
			return validationError("category with empty id in new order")
		}
		if seen[category.ID] {
			return validationError("duplicate category %q in new order", category.ID)
		}
		seen[category.ID] = true
	}

	var prev store.CategoryDocument
	err := c.categories.Update(func(doc *store.CategoryDocument) error {
		prev = doc.Clone()
		doc.Categories = append([]store.Category(nil), newOrder...)
		return nil
	})
	if err != nil {
		return err
	}

	position := make(map[string]int, len(newOrder))
	for i, category := range newOrder {
		position[category.ID] = i
	}

	return c.cascadeMenu(prev, func(doc *store.MenuDocument) error {
		haveSection := make(map[string]bool, len(doc.Sections))
		for _, section := range doc.Sections {
			haveSection[section.Category] = true
		}
		for _, category := range newOrder {
			if !haveSection[category.ID] {
				doc.Sections = append(doc.Sections, store.Section{
					Category: category.ID,
					Items:    []store.MenuItem{},
				})
			}
		}
		sort.SliceStable(doc.Sections, func(i, j int) bool {
			pi, iKnown := position[doc.Sections[i].Category]
			pj, jKnown := position[doc.Sections[j].Category]
			if !iKnown {
				return false
			}
			if !jKnown {
				return true
			}
			return pi < pj
		})
		return nil
	})
}

// DeleteCategory removes a category from the order and destructively drops
// its menu section with every item in it. Predefined categories are
// protected. Deleting an unknown id is a no-op.
func (c *Catalog) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return validationError("category id is required")
	}

	var prev store.CategoryDocument
	err := c.categories.Update(func(doc *store.CategoryDocument) error {
		if doc.IsPredefined(id) {
			return fmt.Errorf("%w: %q", ErrPredefinedCategory, id)
		}
		prev = doc.Clone()
		kept := make([]store.Category, 0, len(doc.Categories))
		for _, category := range doc.Categories {
			if category.ID != id {
				kept = append(kept, category)
			}
		}
		doc.Categories = kept
		return nil
	})
	if err != nil {
		return err
	}

	return c.cascadeMenu(prev, func(doc *store.MenuDocument) error {
		kept := make([]store.Section, 0, len(doc.Sections))
		for _, section := range doc.Sections {
			if section.Category != id {
				kept = append(kept, section)
			}
		}
		doc.Sections = kept
		return nil
	})
}

func ensureSection(doc *store.MenuDocument, category string) {
	for _, section := range doc.Sections {
		if section.Category == category {
			return
		}
	}
	doc.Sections = append(doc.Sections, store.Section{
		Category: category,
		Items:    []store.MenuItem{},
	})
}
