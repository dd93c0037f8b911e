package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/goal"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// GoalModel is the persistence model for the Goal aggregate
type GoalModel struct {
	OwnedModel
	Name          string          `gorm:"type:varchar(100);not null"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Deadline      time.Time       `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (GoalModel) TableName() string {
	return "goals"
}

// ToDomain converts the persistence model to a domain Goal
func (m *GoalModel) ToDomain() *goal.Goal {
	return &goal.Goal{
		OwnedEntity:   m.ToDomainOwnedEntity(),
		Name:          m.Name,
		TargetAmount:  valueobject.NewMoney(m.TargetAmount),
		CurrentAmount: valueobject.NewMoney(m.CurrentAmount),
		Deadline:      m.Deadline,
	}
}

// FromDomain populates the persistence model from a domain Goal
func (m *GoalModel) FromDomain(g *goal.Goal) {
	m.FromDomainOwnedEntity(g.OwnedEntity)
	m.Name = g.Name
	m.TargetAmount = g.TargetAmount.Amount()
	m.CurrentAmount = g.CurrentAmount.Amount()
	m.Deadline = g.Deadline
}

// GoalModelFromDomain creates a new persistence model from a domain Goal
func GoalModelFromDomain(g *goal.Goal) *GoalModel {
	m := &GoalModel{}
	m.FromDomain(g)
	return m
}
