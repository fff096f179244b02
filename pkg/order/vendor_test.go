package order

import (
	"testing"

	"github.com/example/marketplace/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sharedOrder() models.Order {
	a1 := &models.Product{ID: 1, SellerID: 10, Name: "Shoes"}
	b1 := &models.Product{ID: 2, SellerID: 20, Name: "Hat"}
	a2 := &models.Product{ID: 3, SellerID: 10, Name: "Socks"}
	return models.Order{
		ID:         1,
		TotalPrice: decimal.NewFromInt(265),
		Items: []models.OrderItem{
			{ID: 1, ProductID: 1, Product: a1, Price: decimal.NewFromInt(100), Quantity: 2, Status: models.ItemShipped},
			{ID: 2, ProductID: 2, Product: b1, Price: decimal.NewFromInt(50), Quantity: 1, Status: models.ItemDelivered},
			{ID: 3, ProductID: 3, Product: a2, Price: decimal.RequireFromString("7.50"), Quantity: 2, Status: models.ItemPending},
		},
	}
}

func TestProjectForVendor(t *testing.T) {
	view := ProjectForVendor(sharedOrder(), 10)

	if assert.Len(t, view.Items, 2) {
		assert.Equal(t, uint(1), view.Items[0].ID)
		assert.Equal(t, uint(3), view.Items[1].ID)
	}
	assert.True(t, decimal.NewFromInt(215).Equal(view.TotalPrice), view.TotalPrice.String())
	assert.Equal(t, models.ItemShipped, view.Status)

	other := ProjectForVendor(sharedOrder(), 20)
	assert.Len(t, other.Items, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(other.TotalPrice))
	assert.Equal(t, models.ItemDelivered, other.Status)
}

func TestProjectForVendorOwningNothing(t *testing.T) {
	for _, vendor := range []uint{0, 99} {
		view := ProjectForVendor(sharedOrder(), vendor)
		assert.Empty(t, view.Items)
		assert.NotNil(t, view.Items)
		assert.True(t, view.TotalPrice.IsZero())
		assert.Equal(t, models.ItemPending, view.Status)
	}
}

func TestProjectForVendorSkipsUnloadedProducts(t *testing.T) {
	o := sharedOrder()
	o.Items[0].Product = nil

	view := ProjectForVendor(o, 10)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, models.ItemPending, view.Status)
}

func TestProjectionIsRecomputed(t *testing.T) {
	o := sharedOrder()
	before := ProjectForVendor(o, 10)

	o.Items[0].Status = models.ItemReturned
	after := ProjectForVendor(o, 10)

	assert.Equal(t, models.ItemShipped, before.Status)
	assert.Equal(t, models.ItemReturned, after.Status)
}
