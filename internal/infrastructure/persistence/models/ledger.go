package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for the Category aggregate
type CategoryModel struct {
	OwnedModel
	Name string      `gorm:"type:varchar(50);not null"`
	Kind ledger.Kind `gorm:"type:varchar(10);not null;index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *ledger.Category {
	return &ledger.Category{
		OwnedEntity: m.ToDomainOwnedEntity(),
		Name:        m.Name,
		Kind:        m.Kind,
	}
}

// FromDomain populates the persistence model from a domain Category
func (m *CategoryModel) FromDomain(c *ledger.Category) {
	m.FromDomainOwnedEntity(c.OwnedEntity)
	m.Name = c.Name
	m.Kind = c.Kind
}

// CategoryModelFromDomain creates a new persistence model from a domain Category
func CategoryModelFromDomain(c *ledger.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// TransactionModel is the persistence model for the Transaction aggregate.
// CategoryID carries ON DELETE SET NULL semantics: the detach is done
// explicitly in the category repository so sqlite-backed tests behave the
// same as postgres.
type TransactionModel struct {
	OwnedModel
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Kind        ledger.Kind     `gorm:"type:varchar(10);not null;index"`
	Description string          `gorm:"type:text"`
	OccurredAt  time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		OwnedEntity: m.ToDomainOwnedEntity(),
		CategoryID:  m.CategoryID,
		Amount:      valueobject.NewMoney(m.Amount),
		Kind:        m.Kind,
		Description: m.Description,
		OccurredAt:  m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain Transaction
func (m *TransactionModel) FromDomain(t *ledger.Transaction) {
	m.FromDomainOwnedEntity(t.OwnedEntity)
	m.CategoryID = t.CategoryID
	m.Amount = t.Amount.Amount()
	m.Kind = t.Kind
	m.Description = t.Description
	m.OccurredAt = t.OccurredAt
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction
func TransactionModelFromDomain(t *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}
