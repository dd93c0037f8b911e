package handler

import (
	goalapp "github.com/fintrack/backend/internal/application/goal"
	"github.com/gin-gonic/gin"
)

// GoalHandler handles savings goal API endpoints
type GoalHandler struct {
	BaseHandler
	goalService *goalapp.Service
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *goalapp.Service) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// Create creates a new savings goal
func (h *GoalHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req goalapp.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, goal)
}

// GetByID retrieves a goal with its derived progress figures
func (h *GoalHandler) GetByID(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid goal ID format")
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), ownerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, goal)
}

// List retrieves a paginated list of goals
func (h *GoalHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter goalapp.GoalListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	goals, total, err := h.goalService.ListGoals(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, goals, total, filter.Page, filter.PageSize)
}

// Update updates a goal's name, target, and deadline
func (h *GoalHandler) Update(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid goal ID format")
		return
	}

	var req goalapp.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, goal)
}

// AddFunds deposits an amount into the goal's saved balance
func (h *GoalHandler) AddFunds(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid goal ID format")
		return
	}

	var req goalapp.AddToGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	goal, err := h.goalService.AddToGoal(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, goal)
}

// Delete deletes a goal
func (h *GoalHandler) Delete(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid goal ID format")
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), ownerID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
