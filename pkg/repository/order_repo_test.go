package repository

import (
	"context"
	"testing"

	"github.com/example/marketplace/pkg/config"
	"github.com/example/marketplace/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenDB(&config.DatabaseConfig{Driver: "sqlite", Database: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, seller uint, name, price string) models.Product {
	t.Helper()
	p := models.Product{SellerID: seller, Name: name, Price: decimal.RequireFromString(price)}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func newOrder(buyer uint, products ...models.Product) *models.Order {
	o := &models.Order{BuyerID: buyer, Status: models.OrderPending, TotalPrice: decimal.Zero}
	for _, p := range products {
		o.Items = append(o.Items, models.OrderItem{
			ProductID: p.ID,
			Price:     p.Price,
			Quantity:  1,
			Status:    models.ItemPending,
		})
		o.TotalPrice = o.TotalPrice.Add(p.Price)
	}
	return o
}

func TestOrderRepositoryCreateAndFind(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	a := seedProduct(t, db, 10, "Shoes", "100.00")
	b := seedProduct(t, db, 20, "Hat", "50.00")

	o := newOrder(3, a, b)
	require.NoError(t, repo.Create(ctx, o))
	require.NotZero(t, o.ID)

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.BuyerID)
	assert.Equal(t, "150.00", got.TotalPrice.StringFixed(2))
	assert.False(t, got.IsPaid)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Shoes", got.Items[0].ProductName())
	assert.Equal(t, uint(20), got.Items[1].SellerID())

	ok, err := repo.Exists(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.FindByID(ctx, o.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
	ok, err = repo.Exists(ctx, o.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrderRepositoryListBySeller(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	a1 := seedProduct(t, db, 10, "Shoes", "100.00")
	a2 := seedProduct(t, db, 10, "Socks", "7.50")
	b := seedProduct(t, db, 20, "Hat", "50.00")

	both := newOrder(1, a1, a2, b)
	onlyB := newOrder(2, b)
	require.NoError(t, repo.Create(ctx, both))
	require.NoError(t, repo.Create(ctx, onlyB))

	forA, err := repo.ListBySeller(ctx, 10)
	require.NoError(t, err)
	require.Len(t, forA, 1)
	assert.Equal(t, both.ID, forA[0].ID)
	// the whole order comes back, not only the seller's items
	assert.Len(t, forA[0].Items, 3)

	forB, err := repo.ListBySeller(ctx, 20)
	require.NoError(t, err)
	require.Len(t, forB, 2)
	assert.Equal(t, onlyB.ID, forB[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateItemStatusForSeller(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	a := seedProduct(t, db, 10, "Shoes", "100.00")
	b := seedProduct(t, db, 20, "Hat", "50.00")

	o := newOrder(1, a, a, b)
	other := newOrder(1, a)
	require.NoError(t, repo.Create(ctx, o))
	require.NoError(t, repo.Create(ctx, other))

	n, err := repo.UpdateItemStatusForSeller(ctx, o.ID, 10, models.ItemShipped, models.ItemStatuses)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// already SHIPPED rows still match, so a repeat reports the same count
	n, err = repo.UpdateItemStatusForSeller(ctx, o.ID, 10, models.ItemShipped, models.ItemStatuses)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.UpdateItemStatusForSeller(ctx, o.ID, 10, models.ItemDelivered, []models.ItemStatus{models.ItemPending})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.UpdateItemStatusForSeller(ctx, o.ID, 10, models.ItemDelivered, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := repo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ItemPending, got.Items[0].Status)
}

func TestOrderRepositoryDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	a := seedProduct(t, db, 10, "Shoes", "100.00")

	o := newOrder(1, a, a)
	require.NoError(t, repo.Create(ctx, o))

	n, err := repo.Delete(ctx, o.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var items int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)

	n, err = repo.Delete(ctx, o.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestItemFacts(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	a := seedProduct(t, db, 10, "Shoes", "100.00")
	b := seedProduct(t, db, 20, "Hat", "50.00")

	first := newOrder(1, a, b)
	second := newOrder(2, a)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	all, err := repo.ItemFacts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, second.ID, all[0].OrderID)
	assert.Greater(t, all[0].ItemID, all[1].ItemID)

	forA, err := repo.ItemFacts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, forA, 2)
	for _, f := range forA {
		assert.Equal(t, "Shoes", f.ProductName)
		assert.False(t, f.OrderCreatedAt.IsZero())
	}

	none, err := repo.ItemFacts(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductRepositoryResolve(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepository(db)
	p := seedProduct(t, db, 10, "Shoes", "19.99")

	got, err := repo.Resolve(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(10), got.SellerID)
	assert.Equal(t, "19.99", got.Price.StringFixed(2))

	_, err = repo.Resolve(context.Background(), p.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}
