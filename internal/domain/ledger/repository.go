package ledger

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionFilter narrows transaction queries.
// Zero values mean "no constraint" for the corresponding field.
type TransactionFilter struct {
	shared.Filter
	Kind       Kind
	CategoryID *uuid.UUID
	From       time.Time
	To         time.Time
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByIDForOwner finds a category by ID scoped to an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Category, error)

	// FindAllForOwner finds all categories for an owner
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// DeleteForOwner removes a category and detaches its transactions
	// in a single database transaction
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts categories for an owner
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
}

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	// FindByIDForOwner finds a transaction by ID scoped to an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)

	// FindAllForOwner finds all transactions for an owner matching the filter
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter TransactionFilter) ([]Transaction, error)

	// Save creates or updates a transaction
	Save(ctx context.Context, transaction *Transaction) error

	// DeleteForOwner deletes a transaction scoped to an owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts transactions for an owner matching the filter
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter TransactionFilter) (int64, error)
}
