package goal

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/goal"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides application-level goal operations
type Service struct {
	goalRepo goal.Repository
	now      func() time.Time
}

// NewService creates a new goal Service
func NewService(goalRepo goal.Repository) *Service {
	return &Service{
		goalRepo: goalRepo,
		now:      time.Now,
	}
}

// NewServiceWithClock creates a Service with a fixed clock, for tests
func NewServiceWithClock(goalRepo goal.Repository, now func() time.Time) *Service {
	return &Service{
		goalRepo: goalRepo,
		now:      now,
	}
}

// GoalResponse represents a goal in API responses, including the derived
// progress figures
type GoalResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	TargetAmount    string          `json:"target_amount"`
	CurrentAmount   string          `json:"current_amount"`
	Deadline        string          `json:"deadline"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	MonthsLeft      int             `json:"months_left"`
	MonthlyNeeded   string          `json:"monthly_needed"`
	Achieved        bool            `json:"achieved"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateGoalRequest represents a request to create a goal
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	Deadline     string          `json:"deadline" binding:"required"` // YYYY-MM-DD
}

// UpdateGoalRequest represents a request to update a goal
type UpdateGoalRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	Deadline     string          `json:"deadline" binding:"required"` // YYYY-MM-DD
}

// AddToGoalRequest represents a deposit into a goal
type AddToGoalRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// GoalListFilter defines filtering options for goal list queries
type GoalListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateGoal creates a new goal for the owner
func (s *Service) CreateGoal(ctx context.Context, ownerID uuid.UUID, req CreateGoalRequest) (*GoalResponse, error) {
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	g, err := goal.NewGoal(ownerID, req.Name, valueobject.NewMoney(req.TargetAmount), deadline)
	if err != nil {
		return nil, err
	}

	if err := s.goalRepo.Save(ctx, g); err != nil {
		return nil, err
	}

	return s.toGoalResponse(g), nil
}

// GetGoal gets a goal by ID
func (s *Service) GetGoal(ctx context.Context, ownerID, id uuid.UUID) (*GoalResponse, error) {
	g, err := s.goalRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.toGoalResponse(g), nil
}

// UpdateGoal updates a goal's name, target, and deadline
func (s *Service) UpdateGoal(ctx context.Context, ownerID, id uuid.UUID, req UpdateGoalRequest) (*GoalResponse, error) {
	g, err := s.goalRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	if err := g.Update(req.Name, valueobject.NewMoney(req.TargetAmount), deadline); err != nil {
		return nil, err
	}

	if err := s.goalRepo.Save(ctx, g); err != nil {
		return nil, err
	}

	return s.toGoalResponse(g), nil
}

// DeleteGoal deletes a goal
func (s *Service) DeleteGoal(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.goalRepo.DeleteForOwner(ctx, ownerID, id)
}

// AddToGoal deposits an amount into the goal's current balance
func (s *Service) AddToGoal(ctx context.Context, ownerID, id uuid.UUID, req AddToGoalRequest) (*GoalResponse, error) {
	g, err := s.goalRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := g.Deposit(valueobject.NewMoney(req.Amount)); err != nil {
		return nil, err
	}

	if err := s.goalRepo.Save(ctx, g); err != nil {
		return nil, err
	}

	return s.toGoalResponse(g), nil
}

// ListGoals lists goals for the owner, newest first
func (s *Service) ListGoals(ctx context.Context, ownerID uuid.UUID, filter GoalListFilter) ([]GoalResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	goals, err := s.goalRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.goalRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = *s.toGoalResponse(&g)
	}
	return responses, total, nil
}

func (s *Service) toGoalResponse(g *goal.Goal) *GoalResponse {
	today := s.now()
	return &GoalResponse{
		ID:              g.ID,
		Name:            g.Name,
		TargetAmount:    g.TargetAmount.String(),
		CurrentAmount:   g.CurrentAmount.String(),
		Deadline:        g.Deadline.Format("2006-01-02"),
		ProgressPercent: g.ProgressPercent(),
		MonthsLeft:      g.MonthsLeft(today),
		MonthlyNeeded:   g.MonthlyNeeded(today).String(),
		Achieved:        g.IsAchieved(),
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

func parseDeadline(value string) (time.Time, error) {
	deadline, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DEADLINE", "Deadline must be a YYYY-MM-DD date")
	}
	return deadline, nil
}
