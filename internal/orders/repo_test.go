package orders

import (
	"context"
	"testing"
	"time"

	"github.com/minithai/minithai-backend/pkg/db/models"
	"github.com/minithai/minithai-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}))
	return db
}

func insertOrder(t *testing.T, db *gorm.DB, orderID, email string, createdAt time.Time) {
	t.Helper()

	order := &models.Order{
		OrderID:        orderID,
		Name:           "Anna",
		Email:          email,
		Phone:          "+49 160 1234567",
		DeliveryMethod: DeliveryMethodPickup,
		Items: []models.OrderItem{
			{ID: "7", Name: "Som Tam", Price: decimal.RequireFromString("18.90"), Quantity: 1},
		},
		Subtotal:    decimal.RequireFromString("18.90"),
		DeliveryFee: decimal.Zero,
		Total:       decimal.RequireFromString("18.90"),
		Status:      string(StatusPending),
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(order).Error)
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	insertOrder(t, db, "ORD1757000000001", "anna@example.com", time.Now())

	found, err := repo.FindByID(ctx, "ORD1757000000001")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", found.Email)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Som Tam", found.Items[0].Name)
	assert.True(t, found.Subtotal.Equal(decimal.RequireFromString("18.90")))
}

func TestRepositoryListByEmailHonorsCursor(t *testing.T) {
	t.Parallel()

	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	insertOrder(t, db, "ORD1757000000001", "anna@example.com", base)
	insertOrder(t, db, "ORD1757000000002", "anna@example.com", base.Add(time.Minute))
	insertOrder(t, db, "ORD1757000000003", "anna@example.com", base.Add(2*time.Minute))
	insertOrder(t, db, "ORD1757000000004", "bob@example.com", base.Add(3*time.Minute))

	rows, err := repo.ListByEmail(ctx, "anna@example.com", 10, nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ORD1757000000003", rows[0].OrderID)

	cursor := &pagination.Cursor{CreatedAt: rows[1].CreatedAt, ID: rows[1].OrderID}
	rows, err = repo.ListByEmail(ctx, "anna@example.com", 10, cursor)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ORD1757000000001", rows[0].OrderID)
}

func TestRepositoryDelete(t *testing.T) {
	t.Parallel()

	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	insertOrder(t, db, "ORD1757000000001", "anna@example.com", time.Now())
	require.NoError(t, repo.Delete(ctx, "ORD1757000000001"))

	_, err := repo.FindByID(ctx, "ORD1757000000001")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
