package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderReturned  OrderStatus = "RETURNED"
)

// OrderStatuses lists the master statuses in lifecycle order.
var OrderStatuses = []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderReturned}

type ItemStatus string

const (
	ItemPending   ItemStatus = "PENDING"
	ItemShipped   ItemStatus = "SHIPPED"
	ItemDelivered ItemStatus = "DELIVERED"
	ItemReturned  ItemStatus = "RETURNED"
)

var ItemStatuses = []ItemStatus{ItemPending, ItemShipped, ItemDelivered, ItemReturned}

// Order is a buyer's checkout. TotalPrice is the snapshot taken at creation and is
// never recomputed from items or from the catalog.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	BuyerID       uint            `gorm:"not null;index" json:"user"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	IsPaid        bool            `gorm:"not null;default:false" json:"is_paid"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Phone         string          `gorm:"type:varchar(20)" json:"phone"`
	Address       string          `gorm:"type:text" json:"address"`
	WaybillNumber string          `gorm:"type:varchar(32)" json:"waybill_number,omitempty"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one cart line. Price is the unit price resolved at checkout.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Status    ItemStatus      `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal is price × quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SellerID is zero when the product was not loaded.
func (i OrderItem) SellerID() uint {
	if i.Product == nil {
		return 0
	}
	return i.Product.SellerID
}

func (i OrderItem) ProductName() string {
	if i.Product == nil {
		return ""
	}
	return i.Product.Name
}
