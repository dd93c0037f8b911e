package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	goalapp "github.com/fintrack/backend/internal/application/goal"
	"github.com/fintrack/backend/internal/domain/goal"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGoalRepo struct {
	goals map[uuid.UUID]goal.Goal
}

func newStubGoalRepo() *stubGoalRepo {
	return &stubGoalRepo{goals: make(map[uuid.UUID]goal.Goal)}
}

func (r *stubGoalRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*goal.Goal, error) {
	g, ok := r.goals[id]
	if !ok || g.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return &g, nil
}

func (r *stubGoalRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) ([]goal.Goal, error) {
	var out []goal.Goal
	for _, g := range r.goals {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *stubGoalRepo) Save(_ context.Context, g *goal.Goal) error {
	r.goals[g.ID] = *g
	return nil
}

func (r *stubGoalRepo) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	g, ok := r.goals[id]
	if !ok || g.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	delete(r.goals, id)
	return nil
}

func (r *stubGoalRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) (int64, error) {
	goals, _ := r.FindAllForOwner(context.Background(), ownerID, shared.Filter{})
	return int64(len(goals)), nil
}

// newGoalTestRouter wires the goal routes behind a stub auth middleware
func newGoalTestRouter(ownerID uuid.UUID) *gin.Engine {
	handler := NewGoalHandler(goalapp.NewService(newStubGoalRepo()))

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		setAuthContext(c, ownerID)
		c.Next()
	})

	goals := engine.Group("/goals")
	goals.POST("", handler.Create)
	goals.GET("", handler.List)
	goals.GET("/:id", handler.GetByID)
	goals.PUT("/:id", handler.Update)
	goals.POST("/:id/add", handler.AddFunds)
	goals.DELETE("/:id", handler.Delete)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGoalLifecycle(t *testing.T) {
	ownerID := uuid.New()
	engine := newGoalTestRouter(ownerID)

	// create
	w := doJSON(t, engine, http.MethodPost, "/goals", gin.H{
		"name":          "Vacation",
		"target_amount": "1200",
		"deadline":      "2030-06-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.True(t, created.Success)
	data := created.Data.(map[string]any)
	goalID := data["id"].(string)
	assert.Equal(t, "1200.00", data["target_amount"])
	assert.Equal(t, "0.00", data["current_amount"])

	// deposit
	w = doJSON(t, engine, http.MethodPost, "/goals/"+goalID+"/add", gin.H{"amount": "300"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	data = updated.Data.(map[string]any)
	assert.Equal(t, "300.00", data["current_amount"])
	assert.Equal(t, "25", data["progress_percent"])

	// list
	w = doJSON(t, engine, http.MethodGet, "/goals", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.NotNil(t, list.Meta)
	assert.Equal(t, int64(1), list.Meta.Total)

	// delete then fetch
	w = doJSON(t, engine, http.MethodDelete, "/goals/"+goalID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/goals/"+goalID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGoalInvalidDeadline(t *testing.T) {
	engine := newGoalTestRouter(uuid.New())

	w := doJSON(t, engine, http.MethodPost, "/goals", gin.H{
		"name":          "Vacation",
		"target_amount": "100",
		"deadline":      "01/06/2030",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
}

func TestGoalBadIDParam(t *testing.T) {
	engine := newGoalTestRouter(uuid.New())

	w := doJSON(t, engine, http.MethodGet, "/goals/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
