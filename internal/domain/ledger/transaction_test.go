package ledger

import (
	"testing"
	"time"

	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	ownerID := uuid.New()
	categoryID := uuid.New()
	occurred := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tx, err := NewTransaction(ownerID, &categoryID, valueobject.NewMoneyFromFloat(42.50), KindExpense, "lunch", occurred)
	require.NoError(t, err)
	assert.Equal(t, ownerID, tx.OwnerID)
	assert.Equal(t, &categoryID, tx.CategoryID)
	assert.Equal(t, "42.50", tx.Amount.String())
	assert.Equal(t, occurred, tx.OccurredAt)
	assert.True(t, tx.IsExpense())
	assert.False(t, tx.IsIncome())
}

func TestNewTransactionDefaultsOccurredAt(t *testing.T) {
	before := time.Now()
	tx, err := NewTransaction(uuid.New(), nil, valueobject.NewMoneyFromInt(10), KindIncome, "", time.Time{})
	require.NoError(t, err)
	assert.False(t, tx.OccurredAt.Before(before))
	assert.Nil(t, tx.CategoryID)
}

func TestNewTransactionValidation(t *testing.T) {
	tests := []struct {
		name   string
		amount valueobject.Money
		kind   Kind
	}{
		{
			name:   "zero amount",
			amount: valueobject.Zero(),
			kind:   KindExpense,
		},
		{
			name:   "negative amount",
			amount: valueobject.NewMoneyFromInt(-5),
			kind:   KindExpense,
		},
		{
			name:   "unknown kind",
			amount: valueobject.NewMoneyFromInt(5),
			kind:   Kind("refund"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTransaction(uuid.New(), nil, tt.amount, tt.kind, "", time.Time{})
			assert.Error(t, err)
		})
	}
}

func TestTransactionUpdate(t *testing.T) {
	tx, err := NewTransaction(uuid.New(), nil, valueobject.NewMoneyFromInt(10), KindIncome, "old", time.Time{})
	require.NoError(t, err)

	newCategory := uuid.New()
	newOccurred := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tx.Update(&newCategory, valueobject.NewMoneyFromInt(25), KindExpense, "new", newOccurred))
	assert.Equal(t, &newCategory, tx.CategoryID)
	assert.Equal(t, "25.00", tx.Amount.String())
	assert.Equal(t, KindExpense, tx.Kind)
	assert.Equal(t, "new", tx.Description)
	assert.Equal(t, newOccurred, tx.OccurredAt)

	// zero occurredAt preserves the current value
	require.NoError(t, tx.Update(nil, valueobject.NewMoneyFromInt(30), KindExpense, "newer", time.Time{}))
	assert.Equal(t, newOccurred, tx.OccurredAt)
	assert.Nil(t, tx.CategoryID)

	assert.Error(t, tx.Update(nil, valueobject.Zero(), KindExpense, "bad", time.Time{}))
}

func TestTransactionDetach(t *testing.T) {
	categoryID := uuid.New()
	tx, err := NewTransaction(uuid.New(), &categoryID, valueobject.NewMoneyFromInt(10), KindExpense, "", time.Time{})
	require.NoError(t, err)

	tx.Detach()
	assert.Nil(t, tx.CategoryID)
}
