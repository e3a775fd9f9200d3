package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dimaa-cafe/api/internal/enum"
)

const categoriesFileName = "categories.json"

// predefinedNames carries the bilingual display names for the seed set.
var predefinedNames = map[string]LanguageText{
	enum.CategoryBreakfast:    {En: "Breakfast", Fa: "صبحانه"},
	enum.CategoryHotCoffee:    {En: "Hot Coffee", Fa: "قهوه گرم"},
	enum.CategoryColdCoffee:   {En: "Cold Coffee", Fa: "قهوه سرد"},
	enum.CategoryMocktails:    {En: "Mocktails", Fa: "موکتل‌ها"},
	enum.CategorySmoothies:    {En: "Smoothies", Fa: "اسموتی‌ها"},
	enum.CategoryMilkshakes:   {En: "Milkshakes", Fa: "میلک‌شیک‌ها"},
	enum.CategoryHotDrinks:    {En: "Hot Drinks", Fa: "نوشیدنی‌های گرم"},
	enum.CategoryColdBrews:    {En: "Cold Brews", Fa: "دمنوش سرد"},
	enum.CategoryHerbalTea:    {En: "Herbal Tea", Fa: "دمنوش"},
	enum.CategoryCakeDesserts: {En: "Cakes & Desserts", Fa: "کیک و دسر"},
}

// SeedCategoryDocument returns the document a fresh installation starts
// with: the predefined categories, in seed order, all protected.
func SeedCategoryDocument() CategoryDocument {
	doc := CategoryDocument{
		Categories:           make([]Category, 0, len(enum.PredefinedCategories)),
		PredefinedCategories: append([]string(nil), enum.PredefinedCategories...),
	}
	for _, id := range enum.PredefinedCategories {
		doc.Categories = append(doc.Categories, Category{ID: id, Name: predefinedNames[id]})
	}
	return doc
}

// CategoryStore persists the ordered category list as a single JSON file.
// Same locking model as MenuStore.
type CategoryStore struct {
	path string
	mu   sync.Mutex
}

// NewCategoryStore creates a CategoryStore backed by <dataDir>/categories.json.
func NewCategoryStore(dataDir string) *CategoryStore {
	return &CategoryStore{path: filepath.Join(dataDir, categoriesFileName)}
}

// Load returns the current document, seeding the predefined set on first
// access if the file does not exist yet.
func (s *CategoryStore) Load() (CategoryDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update runs fn against the current document under the store lock and
// persists the result. If fn returns an error nothing is written.
func (s *CategoryStore) Update(fn func(doc *CategoryDocument) error) error {
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

// Replace overwrites the document wholesale. Used by the cascade rollback.
func (s *CategoryStore) Replace(doc CategoryDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

func (s *CategoryStore) load() (CategoryDocument, error) {
	var doc CategoryDocument
	err := readDocument(s.path, &doc)
	if os.IsNotExist(err) {
		doc = SeedCategoryDocument()
		if err := writeDocument(s.path, doc); err != nil {
			return CategoryDocument{}, err
		}
		return doc, nil
	}
	if err != nil {
		return CategoryDocument{}, err
	}
	if err := validateCategoryDocument(doc); err != nil {
		return CategoryDocument{}, err
	}
	return doc, nil
}

func (s *CategoryStore) save(doc CategoryDocument) error {
	if err := validateCategoryDocument(doc); err != nil {
		return err
	}
	if doc.Categories == nil {
		doc.Categories = []Category{}
	}
	return writeDocument(s.path, doc)
}

func validateCategoryDocument(doc CategoryDocument) error {
	seen := make(map[string]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.ID == "" {
			return fmt.Errorf("%w: category with empty id", ErrInvalidDocument)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: duplicate category id %q", ErrInvalidDocument, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
