package reporting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/tealeg/xlsx"
)

// ExportXLSX writes the dashboard as a workbook with Summary, Monthly and Recent sheets.
func ExportXLSX(d Dashboard) ([]byte, error) {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return nil, fmt.Errorf("add summary sheet: %w", err)
	}
	addRow(summary, "Metric", "Value")
	addRow(summary, "Total Sales", d.TotalSales.StringFixed(2))
	addRow(summary, "Total Orders", d.TotalOrders)
	addRow(summary, "Pending Orders", d.PendingOrders)

	monthly, err := file.AddSheet("Monthly")
	if err != nil {
		return nil, fmt.Errorf("add monthly sheet: %w", err)
	}
	addRow(monthly, "Year", "Month", "Sales")
	for _, m := range d.ChartData {
		addRow(monthly, m.Year, m.Name(), m.Sales.StringFixed(2))
	}

	recent, err := file.AddSheet("Recent")
	if err != nil {
		return nil, fmt.Errorf("add recent sheet: %w", err)
	}
	addRow(recent, "ID", "Product", "Price", "Quantity", "Status", "Order Date")
	for _, t := range d.RecentTransactions {
		addRow(recent, t.ID, t.ProductName, t.Price.StringFixed(2), t.Quantity, string(t.Status),
			t.OrderCreatedAt.UTC().Format(time.RFC3339))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addRow(sheet *xlsx.Sheet, values ...interface{}) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetValue(v)
	}
}
