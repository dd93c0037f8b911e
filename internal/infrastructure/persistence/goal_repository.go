package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/backend/internal/domain/goal"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormGoalRepository implements goal.Repository using GORM
type GormGoalRepository struct {
	db *gorm.DB
}

// NewGormGoalRepository creates a new GormGoalRepository
func NewGormGoalRepository(db *gorm.DB) *GormGoalRepository {
	return &GormGoalRepository{db: db}
}

// FindByIDForOwner finds a goal by ID scoped to an owner
func (r *GormGoalRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*goal.Goal, error) {
	var model models.GoalModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOwner finds all goals for an owner, newest first by default
func (r *GormGoalRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]goal.Goal, error) {
	var goalModels []models.GoalModel
	query := r.db.WithContext(ctx).Model(&models.GoalModel{}).
		Where("owner_id = ?", ownerID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&goalModels).Error; err != nil {
		return nil, err
	}
	goals := make([]goal.Goal, len(goalModels))
	for i, model := range goalModels {
		goals[i] = *model.ToDomain()
	}
	return goals, nil
}

// Save creates or updates a goal
func (r *GormGoalRepository) Save(ctx context.Context, g *goal.Goal) error {
	model := models.GoalModelFromDomain(g)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForOwner deletes a goal scoped to an owner
func (r *GormGoalRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.GoalModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts goals for an owner
func (r *GormGoalRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.GoalModel{}).
		Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormGoalRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	sortField := ValidateSortField(filter.OrderBy, GoalSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	return query
}
