package service

import (
	"context"
	"fmt"

	"github.com/dimaa-cafe/api/internal/enum"
	"github.com/dimaa-cafe/api/internal/store"
)

// ListVisibleSections returns the stored sections filtered for one display
// language. An item is dropped when its OnlyShowIn restriction excludes the
// language, or when it has no authored content for it. Sections keep their
// stored order and are returned even when they filter down to zero items;
// callers decide whether to hide empty sections.
func (c *Catalog) ListVisibleSections(ctx context.Context, lang string) ([]store.Section, error) {
	if !enum.IsLanguage(lang) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}

	doc, err := c.menu.Load()
	if err != nil {
		return nil, err
	}

	out := make([]store.Section, 0, len(doc.Sections))
	for _, section := range doc.Sections {
		items := make([]store.MenuItem, 0, len(section.Items))
		for _, item := range section.Items {
			if !item.VisibleIn(lang) {
				continue
			}
			if !item.HasContent(lang) {
				continue
			}
			items = append(items, item)
		}
		out = append(out, store.Section{Category: section.Category, Items: items})
	}
	return out, nil
}

// Sections returns the raw unfiltered sections, as stored. Used by the
// admin panel.
func (c *Catalog) Sections(ctx context.Context) ([]store.Section, error) {
	doc, err := c.menu.Load()
	if err != nil {
		return nil, err
	}
	if doc.Sections == nil {
		return []store.Section{}, nil
	}
	return doc.Sections, nil
}

// UpsertItem creates or replaces a menu item by id. The section for the
// item's category is created on demand; a replaced item keeps its position.
// When the caller changed the item's category, the stale copy is removed
// from its old section first, so an item never lives under two categories.
func (c *Catalog) UpsertItem(ctx context.Context, item store.MenuItem) error {
	if err := validateItem(item); err != nil {
		return err
	}

	return c.menu.Update(func(doc *store.MenuDocument) error {
		removeItemFromOtherSections(doc, item.ID, item.Category)

		for i := range doc.Sections {
			if doc.Sections[i].Category != item.Category {
				continue
			}
			section := &doc.Sections[i]
			for j := range section.Items {
				if section.Items[j].ID == item.ID {
					section.Items[j] = item
					return nil
				}
			}
			section.Items = append(section.Items, item)
			return nil
		}

		doc.Sections = append(doc.Sections, store.Section{
			Category: item.Category,
			Items:    []store.MenuItem{item},
		})
		return nil
	})
}

// DeleteItemResult reports whether a delete actually removed something.
// Not-found is a soft outcome, not an error: callers double-deleting should
// see a warning, not a failure.
type DeleteItemResult struct {
	Found    bool
	Category string
}

// DeleteItem removes every item with the given id (unique by convention,
// but duplicates are not assumed away) and drops any section the removal
// left empty.
func (c *Catalog) DeleteItem(ctx context.Context, id string) (DeleteItemResult, error) {
	if id == "" {
		return DeleteItemResult{}, validationError("item id is required")
	}

	var result DeleteItemResult
	err := c.menu.Update(func(doc *store.MenuDocument) error {
		sections := make([]store.Section, 0, len(doc.Sections))
		for _, section := range doc.Sections {
			items := make([]store.MenuItem, 0, len(section.Items))
			removed := false
			for _, item := range section.Items {
				if item.ID == id {
					result.Found = true
					result.Category = section.Category
					removed = true
					continue
				}
				items = append(items, item)
			}
			if removed && len(items) == 0 {
				continue
			}
			section.Items = items
			sections = append(sections, section)
		}
		if !result.Found {
			return errNoChange
		}
		doc.Sections = sections
		return nil
	})
	if err == errNoChange {
		return result, nil
	}
	if err != nil {
		return DeleteItemResult{}, err
	}
	return result, nil
}

// removeItemFromOtherSections deletes id from every section except the one
// for keepCategory, pruning sections the removal empties. A category change
// on upsert is a delete+insert, not a copy.
func removeItemFromOtherSections(doc *store.MenuDocument, id, keepCategory string) {
	sections := make([]store.Section, 0, len(doc.Sections))
	for _, section := range doc.Sections {
		if section.Category == keepCategory {
			sections = append(sections, section)
			continue
		}
		items := make([]store.MenuItem, 0, len(section.Items))
		removed := false
		for _, item := range section.Items {
			if item.ID == id {
				removed = true
				continue
			}
			items = append(items, item)
		}
		if removed && len(items) == 0 {
			continue
		}
		section.Items = items
		sections = append(sections, section)
	}
	doc.Sections = sections
}

func validateItem(item store.MenuItem) error {
	if item.ID == "" {
		return validationError("item id is required")
	}
	if item.Category == "" {
		return validationError("item category is required")
	}
	if item.Calories < 0 {
		return validationError("calories must not be negative")
	}
	for _, lang := range item.OnlyShowIn {
		if !enum.IsLanguage(lang) {
			return validationError("unknown language %q in onlyShowIn", lang)
		}
	}

	// The item must be named in at least one language it claims
	// visibility in.
	named := false
	for _, lang := range visibleLanguages(item) {
		if item.Name.Get(lang) != "" {
			named = true
			break
		}
	}
	if !named {
		return validationError("item %q has no name in any visible language", item.ID)
	}
	return nil
}

func visibleLanguages(item store.MenuItem) []string {
	if len(item.OnlyShowIn) == 0 {
		return []string{enum.LanguageEnglish, enum.LanguagePersian}
	}
	return item.OnlyShowIn
}
