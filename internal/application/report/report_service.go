package report

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/report"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const summaryCacheKey = "summary"

// Service assembles report read models from transaction snapshots.
// The heavy lifting lives in the domain aggregation functions; this layer
// loads the snapshot, joins category names, and caches the rendered
// summary payload.
type Service struct {
	transactionRepo ledger.TransactionRepository
	categoryRepo    ledger.CategoryRepository
	reportCache     cache.ReportCache
	summaryTTL      time.Duration
	logger          *zap.Logger
}

// NewService creates a new report Service
func NewService(
	transactionRepo ledger.TransactionRepository,
	categoryRepo ledger.CategoryRepository,
	reportCache cache.ReportCache,
	summaryTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		reportCache:     reportCache,
		summaryTTL:      summaryTTL,
		logger:          logger,
	}
}

// SummaryResponse is the owner-wide totals report
type SummaryResponse struct {
	Income         string          `json:"income"`
	Expense        string          `json:"expense"`
	Balance        string          `json:"balance"`
	IncomePercent  decimal.Decimal `json:"income_percent"`
	ExpensePercent decimal.Decimal `json:"expense_percent"`
	Breakdown      []BreakdownItem `json:"expense_breakdown"`
}

// BreakdownItem is one category's share of the expense breakdown
type BreakdownItem struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	CategoryName string     `json:"category_name"`
	Total        string     `json:"total"`
}

// DailyPointResponse is one day in the chart series
type DailyPointResponse struct {
	Date    string `json:"date"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// DailySeriesResponse is the gapless day-by-day chart series
type DailySeriesResponse struct {
	From   string               `json:"from"`
	To     string               `json:"to"`
	Points []DailyPointResponse `json:"points"`
}

// Summary computes totals, percentages, and the expense category breakdown
// for all of the owner's transactions. Results are served from cache when
// a fresh entry exists.
func (s *Service) Summary(ctx context.Context, ownerID uuid.UUID) (*SummaryResponse, error) {
	if payload, found, err := s.reportCache.Get(ctx, ownerID, summaryCacheKey); err == nil && found {
		var cached SummaryResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		// corrupt entry, fall through and recompute
	} else if err != nil {
		s.logger.Warn("report cache read failed", zap.Error(err))
	}

	txs, err := s.loadSnapshot(ctx, ownerID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	totals := report.ComputeTotals(txs)
	percentages := report.ComputePercentages(totals.Income, totals.Expense)
	buckets := report.ComputeCategoryBreakdown(txs, ledger.KindExpense)

	names, err := s.categoryNames(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	breakdown := make([]BreakdownItem, len(buckets))
	for i, b := range buckets {
		item := BreakdownItem{
			CategoryID:   b.CategoryID,
			CategoryName: "Uncategorized",
			Total:        b.Total.String(),
		}
		if b.CategoryID != nil {
			if name, ok := names[*b.CategoryID]; ok {
				item.CategoryName = name
			}
		}
		breakdown[i] = item
	}

	response := &SummaryResponse{
		Income:         totals.Income.String(),
		Expense:        totals.Expense.String(),
		Balance:        totals.Balance.String(),
		IncomePercent:  percentages.Income,
		ExpensePercent: percentages.Expense,
		Breakdown:      breakdown,
	}

	if payload, err := json.Marshal(response); err == nil {
		if err := s.reportCache.Set(ctx, ownerID, summaryCacheKey, payload, s.summaryTTL); err != nil {
			s.logger.Warn("report cache write failed", zap.Error(err))
		}
	}

	return response, nil
}

// DailySeries computes the day-by-day income/expense series for the given
// window. A missing window defaults to the last 30 days.
func (s *Service) DailySeries(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (*DailySeriesResponse, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -29)
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_RANGE", "'to' date must not be before 'from' date")
	}

	// load one extra day on each side so timezone boundaries never clip
	txs, err := s.loadSnapshot(ctx, ownerID, from.AddDate(0, 0, -1), to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	series := report.ComputeDailySeries(txs, from, to)

	points := make([]DailyPointResponse, len(series))
	for i, p := range series {
		points[i] = DailyPointResponse{
			Date:    p.Date.Format("2006-01-02"),
			Income:  p.Income.String(),
			Expense: p.Expense.String(),
		}
	}

	return &DailySeriesResponse{
		From:   from.Format("2006-01-02"),
		To:     to.Format("2006-01-02"),
		Points: points,
	}, nil
}

// loadSnapshot fetches the owner's transactions without pagination
func (s *Service) loadSnapshot(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]ledger.Transaction, error) {
	filter := ledger.TransactionFilter{
		From: from,
		To:   to,
	}
	filter.OrderBy = "occurred_at"
	filter.OrderDir = "asc"
	return s.transactionRepo.FindAllForOwner(ctx, ownerID, filter)
}

func (s *Service) categoryNames(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]string, error) {
	categories, err := s.categoryRepo.FindAllForOwner(ctx, ownerID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
