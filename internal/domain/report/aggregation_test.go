package report

import (
	"testing"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTx(t *testing.T, ownerID uuid.UUID, categoryID *uuid.UUID, amount float64, kind ledger.Kind, occurredAt time.Time) ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewTransaction(ownerID, categoryID, valueobject.NewMoneyFromFloat(amount), kind, "", occurredAt)
	require.NoError(t, err)
	return *tx
}

func TestComputeTotals(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("empty snapshot yields zeros", func(t *testing.T) {
		totals := ComputeTotals(nil)
		assert.True(t, totals.Income.IsZero())
		assert.True(t, totals.Expense.IsZero())
		assert.True(t, totals.Balance.IsZero())
	})

	t.Run("mixed snapshot", func(t *testing.T) {
		txs := []ledger.Transaction{
			mustTx(t, ownerID, nil, 1000, ledger.KindIncome, now),
			mustTx(t, ownerID, nil, 250.50, ledger.KindExpense, now),
			mustTx(t, ownerID, nil, 49.50, ledger.KindExpense, now),
		}
		totals := ComputeTotals(txs)
		assert.Equal(t, "1000.00", totals.Income.String())
		assert.Equal(t, "300.00", totals.Expense.String())
		assert.Equal(t, "700.00", totals.Balance.String())
	})

	t.Run("expenses can exceed income", func(t *testing.T) {
		txs := []ledger.Transaction{
			mustTx(t, ownerID, nil, 100, ledger.KindIncome, now),
			mustTx(t, ownerID, nil, 150, ledger.KindExpense, now),
		}
		totals := ComputeTotals(txs)
		assert.Equal(t, "-50.00", totals.Balance.String())
	})
}

func TestComputePercentages(t *testing.T) {
	tests := []struct {
		name        string
		income      float64
		expense     float64
		wantIncome  string
		wantExpense string
	}{
		{
			name:        "even split",
			income:      500,
			expense:     500,
			wantIncome:  "50",
			wantExpense: "50",
		},
		{
			name:        "rounded to one decimal",
			income:      100,
			expense:     200,
			wantIncome:  "33.3",
			wantExpense: "66.7",
		},
		{
			name:        "zero volume guards division",
			income:      0,
			expense:     0,
			wantIncome:  "0",
			wantExpense: "0",
		},
		{
			name:        "income only",
			income:      75,
			expense:     0,
			wantIncome:  "100",
			wantExpense: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct := ComputePercentages(valueobject.NewMoneyFromFloat(tt.income), valueobject.NewMoneyFromFloat(tt.expense))
			assert.Equal(t, tt.wantIncome, pct.Income.String())
			assert.Equal(t, tt.wantExpense, pct.Expense.String())
		})
	}
}

func TestComputeDailySeries(t *testing.T) {
	ownerID := uuid.New()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	txs := []ledger.Transaction{
		mustTx(t, ownerID, nil, 100, ledger.KindIncome, start.Add(9*time.Hour)),
		mustTx(t, ownerID, nil, 40, ledger.KindExpense, start.Add(20*time.Hour)),
		mustTx(t, ownerID, nil, 60, ledger.KindExpense, end.Add(1*time.Hour)),
		// outside the window, must be ignored
		mustTx(t, ownerID, nil, 999, ledger.KindIncome, end.AddDate(0, 0, 1)),
		mustTx(t, ownerID, nil, 999, ledger.KindExpense, start.AddDate(0, 0, -1)),
	}

	series := ComputeDailySeries(txs, start, end)
	require.Len(t, series, 3)

	assert.Equal(t, start, series[0].Date)
	assert.Equal(t, "100.00", series[0].Income.String())
	assert.Equal(t, "40.00", series[0].Expense.String())

	// middle day had no activity but still appears
	assert.Equal(t, start.AddDate(0, 0, 1), series[1].Date)
	assert.True(t, series[1].Income.IsZero())
	assert.True(t, series[1].Expense.IsZero())

	assert.Equal(t, end, series[2].Date)
	assert.Equal(t, "60.00", series[2].Expense.String())
}

func TestComputeDailySeriesSingleDay(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	series := ComputeDailySeries(nil, day, day)
	require.Len(t, series, 1)
	assert.Equal(t, day, series[0].Date)
}

func TestComputeDailySeriesMixedLocations(t *testing.T) {
	ownerID := uuid.New()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	zone := time.FixedZone("UTC+2", 2*60*60)

	txs := []ledger.Transaction{
		// same local calendar date as the window, different location
		mustTx(t, ownerID, nil, 100, ledger.KindIncome, time.Date(2025, 6, 1, 12, 0, 0, 0, zone)),
		// instant falls inside June 1 UTC, but its own local date is June 2
		mustTx(t, ownerID, nil, 999, ledger.KindExpense, time.Date(2025, 6, 2, 0, 30, 0, 0, zone)),
	}

	series := ComputeDailySeries(txs, day, day)
	require.Len(t, series, 1)
	assert.Equal(t, "100.00", series[0].Income.String())
	assert.True(t, series[0].Expense.IsZero())
}

func TestComputeDailySeriesInvertedRange(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	series := ComputeDailySeries(nil, day, day.AddDate(0, 0, -1))
	assert.Empty(t, series)
}

func TestComputeCategoryBreakdown(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	food := uuid.New()
	rent := uuid.New()

	txs := []ledger.Transaction{
		mustTx(t, ownerID, &food, 30, ledger.KindExpense, now),
		mustTx(t, ownerID, &rent, 800, ledger.KindExpense, now),
		mustTx(t, ownerID, &food, 45, ledger.KindExpense, now),
		mustTx(t, ownerID, nil, 12, ledger.KindExpense, now),
		// other kind must be excluded
		mustTx(t, ownerID, &food, 5000, ledger.KindIncome, now),
	}

	buckets := ComputeCategoryBreakdown(txs, ledger.KindExpense)
	require.Len(t, buckets, 3)

	assert.Equal(t, &rent, buckets[0].CategoryID)
	assert.Equal(t, "800.00", buckets[0].Total.String())

	assert.Equal(t, &food, buckets[1].CategoryID)
	assert.Equal(t, "75.00", buckets[1].Total.String())

	assert.Nil(t, buckets[2].CategoryID)
	assert.Equal(t, "12.00", buckets[2].Total.String())
}

func TestComputeCategoryBreakdownTieKeepsFirstSeenOrder(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	first := uuid.New()
	second := uuid.New()

	txs := []ledger.Transaction{
		mustTx(t, ownerID, &first, 50, ledger.KindExpense, now),
		mustTx(t, ownerID, &second, 50, ledger.KindExpense, now),
	}

	buckets := ComputeCategoryBreakdown(txs, ledger.KindExpense)
	require.Len(t, buckets, 2)
	assert.Equal(t, &first, buckets[0].CategoryID)
	assert.Equal(t, &second, buckets[1].CategoryID)
}

// End-to-end property: totals over a three-day window equal the sum of the
// daily series over the same window.
func TestSeriesSumsMatchTotals(t *testing.T) {
	ownerID := uuid.New()
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	txs := []ledger.Transaction{
		mustTx(t, ownerID, nil, 120.55, ledger.KindIncome, start.Add(3*time.Hour)),
		mustTx(t, ownerID, nil, 80, ledger.KindExpense, start.Add(26*time.Hour)),
		mustTx(t, ownerID, nil, 19.45, ledger.KindIncome, end.Add(10*time.Hour)),
		mustTx(t, ownerID, nil, 33.10, ledger.KindExpense, end.Add(11*time.Hour)),
	}

	totals := ComputeTotals(txs)
	series := ComputeDailySeries(txs, start, end)

	income := valueobject.Zero()
	expense := valueobject.Zero()
	for _, p := range series {
		income = income.Add(p.Income)
		expense = expense.Add(p.Expense)
	}

	assert.True(t, income.Equals(totals.Income))
	assert.True(t, expense.Equals(totals.Expense))
}
