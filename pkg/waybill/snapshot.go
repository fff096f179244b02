package waybill

import (
	"fmt"
	"time"

	"github.com/example/marketplace/pkg/models"
	"github.com/shopspring/decimal"
)

const (
	GuestCustomer     = "Guest Customer"
	NotAvailable      = "N/A"
	PickupAtDepot     = "Pickup at Depot"
	NoItemsInOrder    = "No Items in Order"
	UnknownItem       = "Unknown Item"
	moreItemsTemplate = "... and %d more items"
	dateLayout        = "2006-01-02"
	waybillTemplate   = "WB-%d"
)

// Snapshot is everything printed on a waybill, copied out of an order so the
// renderer never touches storage.
type Snapshot struct {
	OrderID       uint
	WaybillNumber string
	CreatedAt     time.Time
	BuyerName     string
	Phone         string
	Address       string
	Lines         []Line
	Total         decimal.Decimal
}

type Line struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Status      string
}

// FromOrder copies an order with preloaded items. buyer may be nil.
func FromOrder(o *models.Order, buyer *models.User) Snapshot {
	s := Snapshot{
		OrderID:       o.ID,
		WaybillNumber: o.WaybillNumber,
		CreatedAt:     o.CreatedAt,
		Phone:         o.Phone,
		Address:       o.Address,
		Total:         o.TotalPrice,
		Lines:         make([]Line, 0, len(o.Items)),
	}
	if buyer != nil {
		s.BuyerName = buyer.Username
	}
	for _, it := range o.Items {
		s.Lines = append(s.Lines, Line{
			Description: it.ProductName(),
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
			Status:      string(it.Status),
		})
	}
	return s
}

// Number is the stored waybill number, or one derived from the order id.
func (s Snapshot) Number() string {
	if s.WaybillNumber != "" {
		return s.WaybillNumber
	}
	return fmt.Sprintf(waybillTemplate, s.OrderID)
}

func (s Snapshot) Date() string {
	if s.CreatedAt.IsZero() {
		return NotAvailable
	}
	return s.CreatedAt.UTC().Format(dateLayout)
}

func (s Snapshot) Consignee() string {
	if s.BuyerName == "" {
		return GuestCustomer
	}
	return s.BuyerName
}

func (s Snapshot) PhoneOrNA() string {
	if s.Phone == "" {
		return NotAvailable
	}
	return s.Phone
}

func (s Snapshot) Destination() string {
	if s.Address == "" {
		return PickupAtDepot
	}
	return s.Address
}

// Filename is the attachment name used when the document is downloaded.
func (s Snapshot) Filename() string {
	return fmt.Sprintf("waybill_%d.pdf", s.OrderID)
}
