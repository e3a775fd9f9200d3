package service

import (
	"errors"
	"fmt"

	"github.com/dimaa-cafe/api/internal/store"
)

// Errors returned by the catalog service.
var (
	ErrValidation         = errors.New("invalid input")
	ErrInvalidLanguage    = errors.New("unsupported language")
	ErrDuplicateCategory  = errors.New("category already exists")
	ErrPredefinedCategory = errors.New("cannot delete a predefined category")

	// ErrPartialWrite means the category document was written but the menu
	// cascade failed and could not be rolled back. The two documents are out
	// of sync; callers should re-fetch the category list before retrying.
	ErrPartialWrite = errors.New("category and menu documents are out of sync")
)

// errNoChange aborts a store Update without persisting anything.
var errNoChange = errors.New("no change")

// MenuDocumentStore is the persistence surface the catalog needs for the
// menu document. Satisfied by *store.MenuStore.
type MenuDocumentStore interface {
	Load() (store.MenuDocument, error)
	Update(fn func(doc *store.MenuDocument) error) error
	Replace(doc store.MenuDocument) error
}

// CategoryDocumentStore is the persistence surface the catalog needs for
// the category document. Satisfied by *store.CategoryStore.
type CategoryDocumentStore interface {
	Load() (doc store.CategoryDocument, err error)
	Update(fn func(doc *store.CategoryDocument) error) error
	Replace(doc store.CategoryDocument) error
}

// Catalog coordinates the two catalog documents. Category mutations cascade
// into the menu document; there is no transaction spanning both files, so
// the cascade is best-effort with a compensating rollback.
type Catalog struct {
	menu       MenuDocumentStore
	categories CategoryDocumentStore
}

// NewCatalog creates a new Catalog service.
func NewCatalog(menu MenuDocumentStore, categories CategoryDocumentStore) *Catalog {
	return &Catalog{menu: menu, categories: categories}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// cascadeMenu applies fn to the menu document after a successful category
// write. On failure the previous category document is restored; if the
// restore fails too, the stores are reported as out of sync.
func (c *Catalog) cascadeMenu(prevCategories store.CategoryDocument, fn func(doc *store.MenuDocument) error) error {
	err := c.menu.Update(fn)
	if err == nil {
		return nil
	}
	if rollbackErr := c.categories.Replace(prevCategories); rollbackErr != nil {
		return fmt.Errorf("%w: menu cascade failed (%v), rollback failed (%v)", ErrPartialWrite, err, rollbackErr)
	}
	return fmt.Errorf("menu cascade failed, category change rolled back: %w", err)
}
