package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Transaction records a single income or expense event for one user.
// CategoryID is optional; a nil value means the transaction is
// uncategorized, which also happens when its category is deleted.
type Transaction struct {
	shared.OwnedEntity
	CategoryID  *uuid.UUID
	Amount      valueobject.Money
	Kind        Kind
	Description string
	OccurredAt  time.Time
}

// NewTransaction creates a new transaction for the given owner.
// A zero occurredAt defaults to the current time.
func NewTransaction(ownerID uuid.UUID, categoryID *uuid.UUID, amount valueobject.Money, kind Kind, description string, occurredAt time.Time) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Kind must be either income or expense")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return &Transaction{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		CategoryID:  categoryID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
		OccurredAt:  occurredAt,
	}, nil
}

// Update changes the mutable transaction fields.
// A zero occurredAt keeps the existing value.
func (t *Transaction) Update(categoryID *uuid.UUID, amount valueobject.Money, kind Kind, description string, occurredAt time.Time) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_KIND", "Kind must be either income or expense")
	}

	t.CategoryID = categoryID
	t.Amount = amount
	t.Kind = kind
	t.Description = description
	if !occurredAt.IsZero() {
		t.OccurredAt = occurredAt
	}
	t.UpdatedAt = time.Now()
	return nil
}

// Detach clears the category reference, leaving the transaction uncategorized
func (t *Transaction) Detach() {
	t.CategoryID = nil
	t.UpdatedAt = time.Now()
}

// IsIncome returns true for income transactions
func (t *Transaction) IsIncome() bool {
	return t.Kind == KindIncome
}

// IsExpense returns true for expense transactions
func (t *Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}
