package ledger

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService provides application-level category operations
type CategoryService struct {
	categoryRepo ledger.CategoryRepository
	reportCache  cache.ReportCache
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo ledger.CategoryRepository, reportCache cache.ReportCache, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		reportCache:  reportCache,
		logger:       logger,
	}
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
	Kind string `json:"kind" binding:"required,txkind"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
	Kind string `json:"kind" binding:"required,txkind"`
}

// CategoryListFilter defines filtering options for category list queries
type CategoryListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// CreateCategory creates a new category for the owner
func (s *CategoryService) CreateCategory(ctx context.Context, ownerID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := ledger.NewCategory(ownerID, req.Name, ledger.Kind(req.Kind))
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return toCategoryResponse(category), nil
}

// GetCategory gets a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, ownerID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// UpdateCategory updates a category's name and kind
func (s *CategoryService) UpdateCategory(ctx context.Context, ownerID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := category.ChangeKind(ledger.Kind(req.Kind)); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, ownerID)
	return toCategoryResponse(category), nil
}

// DeleteCategory deletes a category, detaching its transactions
func (s *CategoryService) DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.categoryRepo.DeleteForOwner(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidateReports(ctx, ownerID)
	return nil
}

// ListCategories lists categories for the owner
func (s *CategoryService) ListCategories(ctx context.Context, ownerID uuid.UUID, filter CategoryListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}
	if domainFilter.Page < 1 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize < 1 {
		domainFilter.PageSize = 20
	}

	categories, err := s.categoryRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.categoryRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = *toCategoryResponse(&c)
	}
	return responses, total, nil
}

func (s *CategoryService) invalidateReports(ctx context.Context, ownerID uuid.UUID) {
	if err := s.reportCache.InvalidateOwner(ctx, ownerID); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}

func toCategoryResponse(c *ledger.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      c.Kind.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
