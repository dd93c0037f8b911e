package ledger

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/fintrack/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionService provides application-level transaction operations
type TransactionService struct {
	transactionRepo ledger.TransactionRepository
	categoryRepo    ledger.CategoryRepository
	reportCache     cache.ReportCache
	logger          *zap.Logger
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactionRepo ledger.TransactionRepository,
	categoryRepo ledger.CategoryRepository,
	reportCache cache.ReportCache,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		reportCache:     reportCache,
		logger:          logger,
	}
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Amount      string     `json:"amount"`
	Kind        string     `json:"kind"`
	Description string     `json:"description,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTransactionRequest represents a request to create a transaction
type CreateTransactionRequest struct {
	CategoryID  *uuid.UUID      `json:"category_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Kind        string          `json:"kind" binding:"required,txkind"`
	Description string          `json:"description"`
	OccurredAt  *time.Time      `json:"occurred_at"`
}

// UpdateTransactionRequest represents a request to update a transaction
type UpdateTransactionRequest struct {
	CategoryID  *uuid.UUID      `json:"category_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Kind        string          `json:"kind" binding:"required,txkind"`
	Description string          `json:"description"`
	OccurredAt  *time.Time      `json:"occurred_at"`
}

// TransactionListFilter defines filtering options for transaction list queries
type TransactionListFilter struct {
	Search     string     `form:"search"`
	Kind       string     `form:"kind"`
	CategoryID *uuid.UUID `form:"category_id"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// CreateTransaction records a new transaction for the owner.
// A referenced category must exist, belong to the same owner, and carry
// the same kind.
func (s *TransactionService) CreateTransaction(ctx context.Context, ownerID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	if err := s.checkCategory(ctx, ownerID, req.CategoryID, ledger.Kind(req.Kind)); err != nil {
		return nil, err
	}

	occurredAt := time.Time{}
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	tx, err := ledger.NewTransaction(ownerID, req.CategoryID, valueobject.NewMoney(req.Amount), ledger.Kind(req.Kind), req.Description, occurredAt)
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, ownerID)
	return toTransactionResponse(tx), nil
}

// GetTransaction gets a transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.transactionRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

// UpdateTransaction updates a transaction
func (s *TransactionService) UpdateTransaction(ctx context.Context, ownerID, id uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	tx, err := s.transactionRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, ownerID, req.CategoryID, ledger.Kind(req.Kind)); err != nil {
		return nil, err
	}

	occurredAt := time.Time{}
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	if err := tx.Update(req.CategoryID, valueobject.NewMoney(req.Amount), ledger.Kind(req.Kind), req.Description, occurredAt); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, ownerID)
	return toTransactionResponse(tx), nil
}

// DeleteTransaction deletes a transaction
func (s *TransactionService) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.transactionRepo.DeleteForOwner(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidateReports(ctx, ownerID)
	return nil
}

// ListTransactions lists transactions for the owner with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	domainFilter := ledger.TransactionFilter{
		Kind:       ledger.Kind(filter.Kind),
		CategoryID: filter.CategoryID,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	domainFilter.Search = filter.Search
	if filter.From != nil {
		domainFilter.From = *filter.From
	}
	if filter.To != nil {
		domainFilter.To = *filter.To
	}
	if domainFilter.Page < 1 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize < 1 {
		domainFilter.PageSize = 20
	}

	txs, err := s.transactionRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.transactionRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		responses[i] = *toTransactionResponse(&tx)
	}
	return responses, total, nil
}

// checkCategory verifies the referenced category exists for this owner
// and carries the same kind as the transaction. Cross-owner references
// surface as NOT_FOUND.
func (s *TransactionService) checkCategory(ctx context.Context, ownerID uuid.UUID, categoryID *uuid.UUID, kind ledger.Kind) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categoryRepo.FindByIDForOwner(ctx, ownerID, *categoryID)
	if err != nil {
		return err
	}
	if category.Kind != kind {
		return shared.NewDomainError("INVALID_KIND", "Category kind does not match transaction kind")
	}
	return nil
}

func (s *TransactionService) invalidateReports(ctx context.Context, ownerID uuid.UUID) {
	if err := s.reportCache.InvalidateOwner(ctx, ownerID); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}

func toTransactionResponse(t *ledger.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount.String(),
		Kind:        t.Kind.String(),
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
