package goal

import (
	"context"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for goal persistence
type Repository interface {
	// FindByIDForOwner finds a goal by ID scoped to an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Goal, error)

	// FindAllForOwner finds all goals for an owner, newest first by default
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Goal, error)

	// Save creates or updates a goal
	Save(ctx context.Context, goal *Goal) error

	// DeleteForOwner deletes a goal scoped to an owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts goals for an owner
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
}
