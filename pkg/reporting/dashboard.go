// Package reporting rolls item-level facts up into the vendor sales dashboard.
package reporting

import (
	"sort"
	"time"

	"github.com/example/marketplace/pkg/models"
	"github.com/shopspring/decimal"
)

// RecentLimit is how many transactions the dashboard lists.
const RecentLimit = 10

// ItemFact is one order item as the dashboard sees it.
type ItemFact struct {
	ItemID         uint
	OrderID        uint
	ProductName    string
	Price          decimal.Decimal
	Quantity       int
	Status         models.ItemStatus
	OrderCreatedAt time.Time
}

type MonthlySales struct {
	Year  int
	Month time.Month
	Sales decimal.Decimal
}

// Name is the abbreviated month label used by the chart.
func (m MonthlySales) Name() string {
	return m.Month.String()[:3]
}

type Transaction struct {
	ID             uint
	ProductName    string
	Price          decimal.Decimal
	Quantity       int
	Status         models.ItemStatus
	OrderCreatedAt time.Time
}

type Dashboard struct {
	TotalSales         decimal.Decimal
	TotalOrders        int
	PendingOrders      int
	ChartData          []MonthlySales
	RecentTransactions []Transaction
}

// Aggregate computes the dashboard over the visible facts.
//
// Sales figures sum the stored item price without multiplying by quantity.
// Order totals elsewhere do multiply; the two are kept apart on purpose.
func Aggregate(facts []ItemFact) Dashboard {
	d := Dashboard{
		TotalSales:         decimal.Zero,
		ChartData:          []MonthlySales{},
		RecentTransactions: []Transaction{},
	}

	orders := make(map[uint]struct{})
	type monthKey struct {
		year  int
		month time.Month
	}
	months := make(map[monthKey]decimal.Decimal)

	for _, f := range facts {
		orders[f.OrderID] = struct{}{}

		switch f.Status {
		case models.ItemPending:
			d.PendingOrders++
		case models.ItemDelivered:
			d.TotalSales = d.TotalSales.Add(f.Price)
			if !f.OrderCreatedAt.IsZero() {
				at := f.OrderCreatedAt.UTC()
				k := monthKey{at.Year(), at.Month()}
				months[k] = months[k].Add(f.Price)
			}
		}
	}
	d.TotalOrders = len(orders)

	for k, sales := range months {
		d.ChartData = append(d.ChartData, MonthlySales{Year: k.year, Month: k.month, Sales: sales})
	}
	sort.Slice(d.ChartData, func(i, j int) bool {
		a, b := d.ChartData[i], d.ChartData[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	recent := append([]ItemFact(nil), facts...)
	sort.Slice(recent, func(i, j int) bool { return recent[i].ItemID > recent[j].ItemID })
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	for _, f := range recent {
		d.RecentTransactions = append(d.RecentTransactions, Transaction{
			ID:             f.ItemID,
			ProductName:    f.ProductName,
			Price:          f.Price,
			Quantity:       f.Quantity,
			Status:         f.Status,
			OrderCreatedAt: f.OrderCreatedAt,
		})
	}

	return d
}
