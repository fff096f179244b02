package gateway

import (
	"time"

	"github.com/example/marketplace/pkg/models"
	"github.com/example/marketplace/pkg/order"
	"github.com/example/marketplace/pkg/reporting"
)

// Money is rendered as a fixed two-decimal string everywhere on the wire.

type CartLineRequest struct {
	ProductID uint `json:"product_id" example:"12"`
	Quantity  int  `json:"quantity" example:"2"`
}

type CreateOrderRequest struct {
	Items   []CartLineRequest `json:"items"`
	Phone   string            `json:"phone" example:"08031234567"`
	Address string            `json:"address" example:"12 Marina Road, Lagos"`
}

type CreateOrderResponse struct {
	Message string `json:"message"`
	OrderID uint   `json:"order_id"`
}

type ItemStatusRequest struct {
	Status string `json:"status" binding:"required" example:"SHIPPED"`
}

type ItemStatusResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}

type OrderStatusRequest struct {
	Status        string `json:"status" binding:"required" example:"PAID"`
	WaybillNumber string `json:"waybill_number" example:"LAG-0042"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type OrderItemDTO struct {
	ID          uint   `json:"id"`
	Product     uint   `json:"product"`
	ProductName string `json:"product_name"`
	Price       string `json:"price" example:"100.00"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
}

type OrderDTO struct {
	ID            uint           `json:"id"`
	User          uint           `json:"user"`
	TotalPrice    string         `json:"total_price" example:"250.00"`
	IsPaid        bool           `json:"is_paid"`
	Status        string         `json:"status"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	WaybillNumber string         `json:"waybill_number,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	Items         []OrderItemDTO `json:"items"`
}

// VendorOrderDTO names the buyer by username; buyer listings carry the id.
type VendorOrderDTO struct {
	ID         uint           `json:"id"`
	User       string         `json:"user" example:"ada"`
	Items      []OrderItemDTO `json:"items"`
	TotalPrice string         `json:"total_price" example:"200.00"`
	Status     string         `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
}

type ChartPointDTO struct {
	Name  string `json:"name" example:"Jan"`
	Sales string `json:"sales" example:"1200.00"`
}

type TransactionDTO struct {
	ID          uint      `json:"id"`
	ProductName string    `json:"product_name"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type DashboardDTO struct {
	TotalSales         string           `json:"total_sales"`
	TotalOrders        int              `json:"total_orders"`
	PendingOrders      int              `json:"pending_orders"`
	ChartData          []ChartPointDTO  `json:"chart_data"`
	RecentTransactions []TransactionDTO `json:"recent_transactions"`
}

func toItemDTOs(items []models.OrderItem) []OrderItemDTO {
	out := make([]OrderItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItemDTO{
			ID:          it.ID,
			Product:     it.ProductID,
			ProductName: it.ProductName(),
			Price:       it.Price.StringFixed(2),
			Quantity:    it.Quantity,
			Status:      string(it.Status),
		})
	}
	return out
}

func toOrderDTO(o models.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID,
		User:          o.BuyerID,
		TotalPrice:    o.TotalPrice.StringFixed(2),
		IsPaid:        o.IsPaid,
		Status:        string(o.Status),
		Phone:         o.Phone,
		Address:       o.Address,
		WaybillNumber: o.WaybillNumber,
		CreatedAt:     o.CreatedAt.UTC(),
		Items:         toItemDTOs(o.Items),
	}
}

func toOrderDTOs(list []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderDTO(o))
	}
	return out
}

func toVendorOrderDTOs(list []order.VendorOrder) []VendorOrderDTO {
	out := make([]VendorOrderDTO, 0, len(list))
	for _, vo := range list {
		out = append(out, VendorOrderDTO{
			ID:         vo.Order.ID,
			User:       vo.BuyerName,
			Items:      toItemDTOs(vo.View.Items),
			TotalPrice: vo.View.TotalPrice.StringFixed(2),
			Status:     string(vo.View.Status),
			CreatedAt:  vo.Order.CreatedAt.UTC(),
		})
	}
	return out
}

func toDashboardDTO(d reporting.Dashboard) DashboardDTO {
	out := DashboardDTO{
		TotalSales:         d.TotalSales.StringFixed(2),
		TotalOrders:        d.TotalOrders,
		PendingOrders:      d.PendingOrders,
		ChartData:          make([]ChartPointDTO, 0, len(d.ChartData)),
		RecentTransactions: make([]TransactionDTO, 0, len(d.RecentTransactions)),
	}
	for _, m := range d.ChartData {
		out.ChartData = append(out.ChartData, ChartPointDTO{Name: m.Name(), Sales: m.Sales.StringFixed(2)})
	}
	for _, t := range d.RecentTransactions {
		out.RecentTransactions = append(out.RecentTransactions, TransactionDTO{
			ID:          t.ID,
			ProductName: t.ProductName,
			Price:       t.Price.StringFixed(2),
			Quantity:    t.Quantity,
			Status:      string(t.Status),
			CreatedAt:   t.OrderCreatedAt.UTC(),
		})
	}
	return out
}
