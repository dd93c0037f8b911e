package persistence

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/domain/goal"
	"github.com/fintrack/backend/internal/domain/identity"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// one in-memory database per test, shared across pooled connections
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.CategoryModel{},
		&models.TransactionModel{},
		&models.GoalModel{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedCategory(t *testing.T, repo *GormCategoryRepository, ownerID uuid.UUID, name string, kind ledger.Kind) *ledger.Category {
	t.Helper()
	c, err := ledger.NewCategory(ownerID, name, kind)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func seedTransaction(t *testing.T, repo *GormTransactionRepository, ownerID uuid.UUID, categoryID *uuid.UUID, amount float64, kind ledger.Kind, occurredAt time.Time) *ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewTransaction(ownerID, categoryID, valueobject.NewMoneyFromFloat(amount), kind, "", occurredAt)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), tx))
	return tx
}

func TestCategoryRepositoryOwnerScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	ownerA := uuid.New()
	ownerB := uuid.New()
	category := seedCategory(t, repo, ownerA, "Groceries", ledger.KindExpense)

	found, err := repo.FindByIDForOwner(ctx, ownerA, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", found.Name)

	// another owner's lookup must look like a missing record
	_, err = repo.FindByIDForOwner(ctx, ownerB, category.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.DeleteForOwner(ctx, ownerB, category.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCategoryRepositoryDeleteDetachesTransactions(t *testing.T) {
	db := newTestDB(t)
	categoryRepo := NewGormCategoryRepository(db)
	txRepo := NewGormTransactionRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	category := seedCategory(t, categoryRepo, ownerID, "Dining", ledger.KindExpense)
	tx := seedTransaction(t, txRepo, ownerID, &category.ID, 25, ledger.KindExpense, time.Now())

	require.NoError(t, categoryRepo.DeleteForOwner(ctx, ownerID, category.ID))

	// transaction survives, uncategorized
	reloaded, err := txRepo.FindByIDForOwner(ctx, ownerID, tx.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CategoryID)

	_, err = categoryRepo.FindByIDForOwner(ctx, ownerID, category.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCategoryRepositoryFindAllSorted(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	seedCategory(t, repo, ownerID, "Bravo", ledger.KindExpense)
	seedCategory(t, repo, ownerID, "Alpha", ledger.KindIncome)
	seedCategory(t, repo, uuid.New(), "OtherOwner", ledger.KindExpense)

	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	categories, err := repo.FindAllForOwner(ctx, ownerID, filter)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Alpha", categories[0].Name)
	assert.Equal(t, "Bravo", categories[1].Name)

	count, err := repo.CountForOwner(ctx, ownerID, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTransactionRepositoryFilters(t *testing.T) {
	db := newTestDB(t)
	categoryRepo := NewGormCategoryRepository(db)
	txRepo := NewGormTransactionRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	food := seedCategory(t, categoryRepo, ownerID, "Food", ledger.KindExpense)

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	seedTransaction(t, txRepo, ownerID, &food.ID, 30, ledger.KindExpense, base)
	seedTransaction(t, txRepo, ownerID, nil, 1000, ledger.KindIncome, base.AddDate(0, 0, 1))
	seedTransaction(t, txRepo, ownerID, &food.ID, 45, ledger.KindExpense, base.AddDate(0, 0, 10))
	seedTransaction(t, txRepo, uuid.New(), nil, 999, ledger.KindExpense, base)

	t.Run("by kind", func(t *testing.T) {
		txs, err := txRepo.FindAllForOwner(ctx, ownerID, ledger.TransactionFilter{Kind: ledger.KindExpense})
		require.NoError(t, err)
		assert.Len(t, txs, 2)
	})

	t.Run("by category", func(t *testing.T) {
		txs, err := txRepo.FindAllForOwner(ctx, ownerID, ledger.TransactionFilter{CategoryID: &food.ID})
		require.NoError(t, err)
		assert.Len(t, txs, 2)
	})

	t.Run("by date range", func(t *testing.T) {
		txs, err := txRepo.FindAllForOwner(ctx, ownerID, ledger.TransactionFilter{
			From: base.AddDate(0, 0, 1),
			To:   base.AddDate(0, 0, 5),
		})
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, ledger.KindIncome, txs[0].Kind)
	})

	t.Run("default order is occurred_at desc", func(t *testing.T) {
		txs, err := txRepo.FindAllForOwner(ctx, ownerID, ledger.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, txs, 3)
		assert.Equal(t, "45.00", txs[0].Amount.String())
	})

	t.Run("count honors filters", func(t *testing.T) {
		count, err := txRepo.CountForOwner(ctx, ownerID, ledger.TransactionFilter{Kind: ledger.KindIncome})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestTransactionRepositoryOwnerScoping(t *testing.T) {
	db := newTestDB(t)
	txRepo := NewGormTransactionRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	tx := seedTransaction(t, txRepo, ownerID, nil, 50, ledger.KindExpense, time.Now())

	_, err := txRepo.FindByIDForOwner(ctx, uuid.New(), tx.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = txRepo.DeleteForOwner(ctx, uuid.New(), tx.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, txRepo.DeleteForOwner(ctx, ownerID, tx.ID))
	_, err = txRepo.FindByIDForOwner(ctx, ownerID, tx.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGoalRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormGoalRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	deadline := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	g, err := goal.NewGoal(ownerID, "Emergency fund", valueobject.NewMoneyFromInt(3000), deadline)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, g))

	require.NoError(t, g.Deposit(valueobject.NewMoneyFromFloat(500.50)))
	require.NoError(t, repo.Save(ctx, g))

	reloaded, err := repo.FindByIDForOwner(ctx, ownerID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "500.50", reloaded.CurrentAmount.String())
	assert.Equal(t, "3000.00", reloaded.TargetAmount.String())

	// cross-owner access stays hidden
	_, err = repo.FindByIDForOwner(ctx, uuid.New(), g.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	goals, err := repo.FindAllForOwner(ctx, ownerID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, goals, 1)

	require.NoError(t, repo.DeleteForOwner(ctx, ownerID, g.ID))
	count, err := repo.CountForOwner(ctx, ownerID, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("user@example.com", "hashed-password", "Sam")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	byEmail, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sam", byID.DisplayName)

	exists, err := repo.ExistsByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
