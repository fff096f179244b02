package grpc

import (
	"time"

	"github.com/example/marketplace/pkg/models"
	"github.com/example/marketplace/pkg/order"
	"github.com/example/marketplace/pkg/reporting"
)

// Values below must stay within what structpb.NewValue accepts: strings,
// bools, numbers, []interface{} and map[string]interface{}.

func vendorOrderValue(vo order.VendorOrder) map[string]interface{} {
	items := make([]interface{}, 0, len(vo.View.Items))
	for _, it := range vo.View.Items {
		items = append(items, itemValue(it))
	}
	return map[string]interface{}{
		"id":          vo.Order.ID,
		"user":        vo.BuyerName,
		"total_price": vo.View.TotalPrice.StringFixed(2),
		"status":      string(vo.View.Status),
		"created_at":  vo.Order.CreatedAt.UTC().Format(time.RFC3339),
		"items":       items,
	}
}

func itemValue(it models.OrderItem) map[string]interface{} {
	return map[string]interface{}{
		"id":           it.ID,
		"product":      it.ProductID,
		"product_name": it.ProductName(),
		"price":        it.Price.StringFixed(2),
		"quantity":     it.Quantity,
		"status":       string(it.Status),
	}
}

func dashboardValue(d reporting.Dashboard) map[string]interface{} {
	chart := make([]interface{}, 0, len(d.ChartData))
	for _, m := range d.ChartData {
		chart = append(chart, map[string]interface{}{
			"name":  m.Name(),
			"sales": m.Sales.StringFixed(2),
		})
	}

	recent := make([]interface{}, 0, len(d.RecentTransactions))
	for _, t := range d.RecentTransactions {
		recent = append(recent, map[string]interface{}{
			"id":           t.ID,
			"product_name": t.ProductName,
			"price":        t.Price.StringFixed(2),
			"quantity":     t.Quantity,
			"status":       string(t.Status),
			"created_at":   t.OrderCreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return map[string]interface{}{
		"total_sales":         d.TotalSales.StringFixed(2),
		"total_orders":        d.TotalOrders,
		"pending_orders":      d.PendingOrders,
		"chart_data":          chart,
		"recent_transactions": recent,
	}
}
