package store

import "github.com/dimaa-cafe/api/internal/enum"

// LanguageText is a bilingual string. An empty value for a language means
// the text was never authored for it.
type LanguageText struct {
	En string `json:"en,omitempty"`
	Fa string `json:"fa,omitempty"`
}

// Get returns the text for the given language code.
func (t LanguageText) Get(lang string) string {
	if lang == enum.LanguageEnglish {
		return t.En
	}
	return t.Fa
}

// LanguageList is a bilingual list of strings; each language independent.
type LanguageList struct {
	En []string `json:"en,omitempty"`
	Fa []string `json:"fa,omitempty"`
}

// Get returns the list for the given language code.
func (l LanguageList) Get(lang string) []string {
	if lang == enum.LanguageEnglish {
		return l.En
	}
	return l.Fa
}

// MenuItem is a single dish or drink on the menu.
//
// Price is a language-keyed display string, never a number: a single entry
// may carry multi-option prices like "35000/45000" and Persian-digit text.
// OnlyShowIn restricts visibility to a subset of languages; nil or both
// languages means visible everywhere, subject to content presence.
type MenuItem struct {
	ID          string       `json:"id"`
	Category    string       `json:"category"`
	Name        LanguageText `json:"name"`
	Description LanguageText `json:"description"`
	Ingredients LanguageList `json:"ingredients"`
	Price       LanguageText `json:"price"`
	Calories    int          `json:"calories"`
	Image       string       `json:"image"`
	IsAvailable bool         `json:"isAvailable"`
	OnlyShowIn  []string     `json:"onlyShowIn,omitempty"`
}

// VisibleIn reports whether the item may be shown under the given language
// according to its OnlyShowIn restriction alone.
func (m MenuItem) VisibleIn(lang string) bool {
	if len(m.OnlyShowIn) == 0 {
		return true
	}
	for _, l := range m.OnlyShowIn {
		if l == lang {
			return true
		}
	}
	return false
}

// HasContent reports whether the item has any authored text for the given
// language: a name, a description, or at least one ingredient.
func (m MenuItem) HasContent(lang string) bool {
	return m.Name.Get(lang) != "" ||
		m.Description.Get(lang) != "" ||
		len(m.Ingredients.Get(lang)) > 0
}

// Section is the ordered set of items filed under one category.
type Section struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

// MenuDocument is the persisted shape of the menu file.
type MenuDocument struct {
	Sections []Section `json:"sections"`
}

// Clone returns a deep copy. Mutations on the copy never write through to
// the original's backing arrays.
func (d MenuDocument) Clone() MenuDocument {
	out := MenuDocument{Sections: make([]Section, len(d.Sections))}
	for i, s := range d.Sections {
		items := make([]MenuItem, len(s.Items))
		copy(items, s.Items)
		out.Sections[i] = Section{Category: s.Category, Items: items}
	}
	return out
}

// Category is one entry in the ordered category list.
type Category struct {
	ID   string       `json:"id"`
	Name LanguageText `json:"name"`
}

// CategoryDocument is the persisted shape of the categories file.
// Categories carries the display order; PredefinedCategories lists the ids
// that cannot be deleted.
type CategoryDocument struct {
	Categories           []Category `json:"categories"`
	PredefinedCategories []string   `json:"predefinedCategories"`
}

// Clone returns a deep copy of the document.
func (d CategoryDocument) Clone() CategoryDocument {
	out := CategoryDocument{
		Categories:           make([]Category, len(d.Categories)),
		PredefinedCategories: make([]string, len(d.PredefinedCategories)),
	}
	copy(out.Categories, d.Categories)
	copy(out.PredefinedCategories, d.PredefinedCategories)
	return out
}

// IsPredefined reports whether id belongs to the protected seed set.
func (d CategoryDocument) IsPredefined(id string) bool {
	for _, p := range d.PredefinedCategories {
		if p == id {
			return true
		}
	}
	return false
}
