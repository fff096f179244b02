package order

import (
	"github.com/example/marketplace/pkg/models"
	"github.com/shopspring/decimal"
)

// VendorView is one vendor's slice of a shared order. It is derived on every
// read and never stored.
type VendorView struct {
	Items      []models.OrderItem
	TotalPrice decimal.Decimal
	Status     models.ItemStatus
}

// VendorOrder pairs an order with the requesting vendor's view of it.
// BuyerName is empty when the directory does not know the buyer.
type VendorOrder struct {
	Order     models.Order
	BuyerName string
	View      VendorView
}

// ProjectForVendor keeps the items whose product belongs to vendorID, in order.
// Status is that of the first such item, PENDING when there is none.
func ProjectForVendor(o models.Order, vendorID uint) VendorView {
	view := VendorView{
		Items:      []models.OrderItem{},
		TotalPrice: decimal.Zero,
		Status:     models.ItemPending,
	}
	for _, it := range o.Items {
		if it.SellerID() != vendorID || vendorID == 0 {
			continue
		}
		if len(view.Items) == 0 {
			view.Status = it.Status
		}
		view.Items = append(view.Items, it)
		view.TotalPrice = view.TotalPrice.Add(it.LineTotal())
	}
	return view
}
