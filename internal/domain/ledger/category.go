package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category labels transactions of a single kind for one user.
// Deleting a category never deletes its transactions; they are
// detached and become uncategorized.
type Category struct {
	shared.OwnedEntity
	Name string
	Kind Kind
}

// NewCategory creates a new category for the given owner
func NewCategory(ownerID uuid.UUID, name string, kind Kind) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Kind must be either income or expense")
	}

	return &Category{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		Kind:        kind,
	}, nil
}

// Rename updates the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

// ChangeKind updates the category kind
func (c *Category) ChangeKind(kind Kind) error {
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_KIND", "Kind must be either income or expense")
	}
	c.Kind = kind
	c.UpdatedAt = time.Now()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 50 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 50 characters")
	}
	return nil
}
