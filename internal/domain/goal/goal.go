package goal

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal is a savings target with a deadline. Progress figures are always
// derived from the stored amounts, never persisted.
type Goal struct {
	shared.OwnedEntity
	Name          string
	TargetAmount  valueobject.Money
	CurrentAmount valueobject.Money
	Deadline      time.Time
}

// NewGoal creates a new goal for the given owner
func NewGoal(ownerID uuid.UUID, name string, target valueobject.Money, deadline time.Time) (*Goal, error) {
	if err := validateGoalName(name); err != nil {
		return nil, err
	}
	if !target.IsPositive() {
		return nil, shared.NewDomainError("INVALID_TARGET", "Target amount must be greater than zero")
	}
	if deadline.IsZero() {
		return nil, shared.NewDomainError("INVALID_DEADLINE", "Deadline is required")
	}

	return &Goal{
		OwnedEntity:   shared.NewOwnedEntity(ownerID),
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: valueobject.Zero(),
		Deadline:      deadline,
	}, nil
}

// Update changes the goal's name, target, and deadline
func (g *Goal) Update(name string, target valueobject.Money, deadline time.Time) error {
	if err := validateGoalName(name); err != nil {
		return err
	}
	if !target.IsPositive() {
		return shared.NewDomainError("INVALID_TARGET", "Target amount must be greater than zero")
	}
	if deadline.IsZero() {
		return shared.NewDomainError("INVALID_DEADLINE", "Deadline is required")
	}

	g.Name = name
	g.TargetAmount = target
	g.Deadline = deadline
	g.UpdatedAt = time.Now()
	return nil
}

// Deposit adds a positive amount to the current balance
func (g *Goal) Deposit(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Deposit amount must be greater than zero")
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.UpdatedAt = time.Now()
	return nil
}

// ProgressPercent returns how far along the goal is, rounded to one
// decimal place. A zero target yields zero rather than a division error.
func (g *Goal) ProgressPercent() decimal.Decimal {
	return g.CurrentAmount.PercentOf(g.TargetAmount)
}

// MonthsLeft returns the number of calendar months between today and the
// deadline. Past or same-day deadlines yield zero. A deadline later in
// the current month still counts as one month, so an achievable monthly
// amount can always be suggested while time remains.
func (g *Goal) MonthsLeft(today time.Time) int {
	deadline := dateOf(g.Deadline)
	today = dateOf(today)

	if !deadline.After(today) {
		return 0
	}

	months := (deadline.Year()-today.Year())*12 + int(deadline.Month()) - int(today.Month())
	if months < 1 {
		months = 1
	}
	return months
}

// MonthlyNeeded returns the amount to save each month to reach the target
// by the deadline, rounded to cents. With no months left the full
// remaining amount is returned.
func (g *Goal) MonthlyNeeded(today time.Time) valueobject.Money {
	remaining := g.TargetAmount.Subtract(g.CurrentAmount)
	if remaining.IsNegative() {
		remaining = valueobject.Zero()
	}

	months := g.MonthsLeft(today)
	if months == 0 {
		return remaining.Round(2)
	}

	perMonth, _ := remaining.DivideByInt(int64(months))
	return perMonth.Round(2)
}

// IsAchieved returns true once the current amount reaches the target
func (g *Goal) IsAchieved() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func validateGoalName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Goal name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Goal name cannot exceed 100 characters")
	}
	return nil
}
