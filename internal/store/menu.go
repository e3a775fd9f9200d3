package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dimaa-cafe/api/internal/enum"
)

const menuFileName = "menu.json"

// MenuStore persists the menu document as a single JSON file.
//
// Every mutation is a full read-modify-write cycle guarded by a
// process-local mutex; concurrent writers from other processes are not
// serialized (single-instance deployment assumption).
type MenuStore struct {
	path string
	mu   sync.Mutex
}

// NewMenuStore creates a MenuStore backed by <dataDir>/menu.json.
func NewMenuStore(dataDir string) *MenuStore {
	return &MenuStore{path: filepath.Join(dataDir, menuFileName)}
}

// Load returns the current document. A missing file initializes an empty
// document on disk first, so the first read and the first write behave the
// same way.
func (s *MenuStore) Load() (MenuDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update runs fn against the current document under the store lock and
// persists the result. If fn returns an error nothing is written.
func (s *MenuStore) Update(fn func(doc *MenuDocument) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.save(doc)
}

// Replace overwrites the document wholesale. Used by the category cascade
// rollback and by seeding.
func (s *MenuStore) Replace(doc MenuDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

func (s *MenuStore) load() (MenuDocument, error) {
	var doc MenuDocument
	err := readDocument(s.path, &doc)
	if os.IsNotExist(err) {
		doc = MenuDocument{Sections: []Section{}}
		if err := writeDocument(s.path, doc); err != nil {
			return MenuDocument{}, err
		}
		return doc, nil
	}
	if err != nil {
		return MenuDocument{}, err
	}
	if err := validateMenuDocument(doc); err != nil {
		return MenuDocument{}, err
	}
	return doc, nil
}

func (s *MenuStore) save(doc MenuDocument) error {
	if err := validateMenuDocument(doc); err != nil {
		return err
	}
	if doc.Sections == nil {
		doc.Sections = []Section{}
	}
	return writeDocument(s.path, doc)
}

// validateMenuDocument rejects documents that would poison business logic:
// unnamed sections, duplicate sections for one category, items without ids,
// negative calories, unknown visibility languages.
func validateMenuDocument(doc MenuDocument) error {
	seen := make(map[string]bool, len(doc.Sections))
	for _, section := range doc.Sections {
		if section.Category == "" {
			return fmt.Errorf("%w: section with empty category", ErrInvalidDocument)
		}
		if seen[section.Category] {
			return fmt.Errorf("%w: duplicate section for category %q", ErrInvalidDocument, section.Category)
		}
		seen[section.Category] = true

		for _, item := range section.Items {
			if item.ID == "" {
				return fmt.Errorf("%w: item with empty id in category %q", ErrInvalidDocument, section.Category)
			}
			if item.Calories < 0 {
				return fmt.Errorf("%w: item %q has negative calories", ErrInvalidDocument, item.ID)
			}
			for _, lang := range item.OnlyShowIn {
				if !enum.IsLanguage(lang) {
					return fmt.Errorf("%w: item %q restricted to unknown language %q", ErrInvalidDocument, item.ID, lang)
				}
			}
		}
	}
	return nil
}
