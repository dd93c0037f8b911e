package report

import (
	"sort"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The aggregation engine computes read models from in-memory transaction
// snapshots. Every function here is pure and deterministic: same input,
// same output, no clock and no storage access.

// Totals holds the income/expense sums and their balance
type Totals struct {
	Income  valueobject.Money
	Expense valueobject.Money
	Balance valueobject.Money
}

// Percentages holds income and expense as shares of the combined volume,
// each rounded to one decimal place
type Percentages struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// DailyPoint is one calendar day in a chart series
type DailyPoint struct {
	Date    time.Time
	Income  valueobject.Money
	Expense valueobject.Money
}

// CategoryBucket is the total of one category within a breakdown.
// A nil CategoryID collects uncategorized transactions.
type CategoryBucket struct {
	CategoryID *uuid.UUID
	Total      valueobject.Money
}

// ComputeTotals sums income and expense across the snapshot.
// An empty snapshot yields all zeros.
func ComputeTotals(txs []ledger.Transaction) Totals {
	income := valueobject.Zero()
	expense := valueobject.Zero()

	for _, tx := range txs {
		switch tx.Kind {
		case ledger.KindIncome:
			income = income.Add(tx.Amount)
		case ledger.KindExpense:
			expense = expense.Add(tx.Amount)
		}
	}

	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Subtract(expense),
	}
}

// ComputePercentages expresses income and expense as shares of their sum.
// When both are zero the shares are zero, not an error.
func ComputePercentages(income, expense valueobject.Money) Percentages {
	total := income.Add(expense)
	return Percentages{
		Income:  income.PercentOf(total),
		Expense: expense.PercentOf(total),
	}
}

// ComputeDailySeries buckets the snapshot by the wall-clock calendar
// date of OccurredAt and returns one point per day in [start, end]
// inclusive, ascending. Days without activity appear as zero points so
// charts get a gapless series. Transactions outside the window are
// ignored. Dates are compared as calendar days, so a timestamp carrying
// a different location than the window still lands on its own local
// date.
func ComputeDailySeries(txs []ledger.Transaction, start, end time.Time) []DailyPoint {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return []DailyPoint{}
	}

	type sums struct {
		income  valueobject.Money
		expense valueobject.Money
	}
	byDay := make(map[time.Time]*sums)

	for _, tx := range txs {
		day := truncateToDay(tx.OccurredAt)
		if day.Before(start) || day.After(end) {
			continue
		}
		s, ok := byDay[day]
		if !ok {
			s = &sums{income: valueobject.Zero(), expense: valueobject.Zero()}
			byDay[day] = s
		}
		switch tx.Kind {
		case ledger.KindIncome:
			s.income = s.income.Add(tx.Amount)
		case ledger.KindExpense:
			s.expense = s.expense.Add(tx.Amount)
		}
	}

	series := make([]DailyPoint, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		point := DailyPoint{Date: day, Income: valueobject.Zero(), Expense: valueobject.Zero()}
		if s, ok := byDay[day]; ok {
			point.Income = s.income
			point.Expense = s.expense
		}
		series = append(series, point)
	}
	return series
}

// ComputeCategoryBreakdown groups transactions of the given kind by
// category and returns buckets ordered by descending total. Buckets with
// equal totals keep the order in which their category first appeared in
// the snapshot. Uncategorized transactions share a single nil bucket.
func ComputeCategoryBreakdown(txs []ledger.Transaction, kind ledger.Kind) []CategoryBucket {
	type key struct {
		id    uuid.UUID
		isNil bool
	}

	totals := make(map[key]valueobject.Money)
	order := make([]key, 0)

	for _, tx := range txs {
		if tx.Kind != kind {
			continue
		}
		k := key{isNil: tx.CategoryID == nil}
		if tx.CategoryID != nil {
			k.id = *tx.CategoryID
		}
		if _, seen := totals[k]; !seen {
			order = append(order, k)
			totals[k] = valueobject.Zero()
		}
		totals[k] = totals[k].Add(tx.Amount)
	}

	buckets := make([]CategoryBucket, 0, len(order))
	for _, k := range order {
		bucket := CategoryBucket{Total: totals[k]}
		if !k.isNil {
			id := k.id
			bucket.CategoryID = &id
		}
		buckets = append(buckets, bucket)
	}

	// stable sort preserves first-seen order between equal totals
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Total.GreaterThan(buckets[j].Total)
	})
	return buckets
}

// truncateToDay maps a timestamp to its wall-clock calendar date. The
// result is pinned to UTC so dates taken from timestamps in different
// locations compare equal and share one bucket.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
