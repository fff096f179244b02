package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/marketplace/pkg/apperrors"
	"github.com/example/marketplace/pkg/auth"
	"github.com/example/marketplace/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func fact(item, order uint, price string, qty int, status models.ItemStatus, at time.Time) ItemFact {
	return ItemFact{
		ItemID:         item,
		OrderID:        order,
		ProductName:    "Product",
		Price:          decimal.RequireFromString(price),
		Quantity:       qty,
		Status:         status,
		OrderCreatedAt: at,
	}
}

func TestAggregate(t *testing.T) {
	facts := []ItemFact{
		fact(6, 4, "30.00", 1, models.ItemPending, day(2024, time.March, 2)),
		fact(5, 3, "20.00", 5, models.ItemDelivered, day(2024, time.February, 10)),
		fact(4, 3, "15.00", 1, models.ItemShipped, day(2024, time.February, 10)),
		fact(3, 2, "10.00", 3, models.ItemDelivered, day(2024, time.January, 20)),
		fact(2, 1, "5.50", 2, models.ItemDelivered, day(2023, time.January, 5)),
		fact(1, 1, "1.00", 1, models.ItemPending, day(2023, time.January, 5)),
	}

	d := Aggregate(facts)

	// price is summed once per delivered item, quantity is ignored
	assert.Equal(t, "35.50", d.TotalSales.StringFixed(2))
	assert.Equal(t, 4, d.TotalOrders)
	assert.Equal(t, 2, d.PendingOrders)

	require.Len(t, d.ChartData, 3)
	assert.Equal(t, 2023, d.ChartData[0].Year)
	assert.Equal(t, "Jan", d.ChartData[0].Name())
	assert.Equal(t, "5.50", d.ChartData[0].Sales.StringFixed(2))
	assert.Equal(t, 2024, d.ChartData[1].Year)
	assert.Equal(t, "Jan", d.ChartData[1].Name())
	assert.Equal(t, "10.00", d.ChartData[1].Sales.StringFixed(2))
	assert.Equal(t, "Feb", d.ChartData[2].Name())
	assert.Equal(t, "20.00", d.ChartData[2].Sales.StringFixed(2))

	require.Len(t, d.RecentTransactions, 6)
	assert.Equal(t, uint(6), d.RecentTransactions[0].ID)
	assert.Equal(t, uint(1), d.RecentTransactions[5].ID)
}

func TestAggregateEmpty(t *testing.T) {
	d := Aggregate(nil)

	assert.True(t, d.TotalSales.IsZero())
	assert.Zero(t, d.TotalOrders)
	assert.Zero(t, d.PendingOrders)
	assert.NotNil(t, d.ChartData)
	assert.Empty(t, d.ChartData)
	assert.NotNil(t, d.RecentTransactions)
	assert.Empty(t, d.RecentTransactions)
}

func TestAggregateRecentLimit(t *testing.T) {
	var facts []ItemFact
	for i := uint(1); i <= 15; i++ {
		facts = append(facts, fact(i, i, "1.00", 1, models.ItemShipped, day(2024, time.May, 1)))
	}

	d := Aggregate(facts)
	require.Len(t, d.RecentTransactions, RecentLimit)
	assert.Equal(t, uint(15), d.RecentTransactions[0].ID)
	assert.Equal(t, uint(6), d.RecentTransactions[RecentLimit-1].ID)
	assert.Equal(t, 15, d.TotalOrders)
}

func TestAggregateGroupsMonthsInUTC(t *testing.T) {
	lagos := time.FixedZone("WAT", 60*60)
	// 00:30 on 1 March in Lagos is still February in UTC
	at := time.Date(2024, time.March, 1, 0, 30, 0, 0, lagos)

	d := Aggregate([]ItemFact{fact(1, 1, "9.00", 1, models.ItemDelivered, at)})
	require.Len(t, d.ChartData, 1)
	assert.Equal(t, "Feb", d.ChartData[0].Name())
}

type stubFacts struct {
	facts     []ItemFact
	err       error
	gotSeller uint
	calls     int
}

func (s *stubFacts) ItemFacts(_ context.Context, sellerID uint) ([]ItemFact, error) {
	s.calls++
	s.gotSeller = sellerID
	return s.facts, s.err
}

func TestServiceScopesByRequester(t *testing.T) {
	src := &stubFacts{facts: []ItemFact{fact(1, 1, "10.00", 1, models.ItemDelivered, day(2024, 1, 1))}}
	svc := NewService(src, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Dashboard(ctx, auth.Identity{UserID: 5})
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))
	assert.Zero(t, src.calls)

	d, err := svc.Dashboard(ctx, auth.Identity{UserID: 5, IsStaff: true})
	require.NoError(t, err)
	assert.Equal(t, uint(5), src.gotSeller)
	assert.Equal(t, "10.00", d.TotalSales.StringFixed(2))

	_, err = svc.Dashboard(ctx, auth.Identity{UserID: 1, IsSuperuser: true})
	require.NoError(t, err)
	assert.Zero(t, src.gotSeller)
}

func TestServiceLoadFailureIsInternal(t *testing.T) {
	svc := NewService(&stubFacts{err: errors.New("connection reset")}, zap.NewNop())

	_, err := svc.Dashboard(context.Background(), auth.Identity{UserID: 1, IsSuperuser: true})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	assert.NotContains(t, apperrors.PublicMessage(err), "connection reset")
}

func TestExportXLSX(t *testing.T) {
	d := Aggregate([]ItemFact{
		fact(2, 1, "20.00", 1, models.ItemDelivered, day(2024, time.April, 3)),
		fact(1, 1, "5.00", 2, models.ItemPending, day(2024, time.April, 3)),
	})

	data, err := ExportXLSX(d)
	require.NoError(t, err)

	book, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, book.Sheets, 3)

	summary := book.Sheet["Summary"]
	require.NotNil(t, summary)
	assert.Equal(t, "Total Sales", summary.Rows[1].Cells[0].String())
	assert.Equal(t, "20.00", summary.Rows[1].Cells[1].String())

	monthly := book.Sheet["Monthly"]
	require.NotNil(t, monthly)
	require.Len(t, monthly.Rows, 2)
	assert.Equal(t, "Apr", monthly.Rows[1].Cells[1].String())

	recent := book.Sheet["Recent"]
	require.NotNil(t, recent)
	require.Len(t, recent.Rows, 3)
	assert.Equal(t, "PENDING", recent.Rows[2].Cells[4].String())
}
