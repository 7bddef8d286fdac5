package spreadsheet

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.spreadsheet",
	fx.Provide(New),
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Provider renders weekly totals as an XLSX workbook.
type Provider interface {
	WeeklyTotals(ctx context.Context, data WeeklyTotals) ([]byte, error)
}

// WeeklyTotals is one client's orders for a canonical week.
type WeeklyTotals struct {
	ClientName string
	ClientID   string
	OrderType  string
	Week       string
	Rows       []Row
	Total      float64
}

type Row struct {
	OrderID       string
	CircuitNumber string
	QuoteNo       string
	Description   string
	Subtotal      float64
	Additional    float64
	Total         float64
}

type excelProvider struct{}

func New() Provider {
	return &excelProvider{}
}

const (
	summarySheet = "summary"
	ordersSheet  = "orders"
)

func (p *excelProvider) WeeklyTotals(ctx context.Context, data WeeklyTotals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(ordersSheet); err != nil {
		return nil, err
	}

	summary := [][2]any{
		{"Weekly Totals", ""},
		{"Client", data.ClientName},
		{"Client ID", data.ClientID},
		{"Order type", data.OrderType},
		{"Week", data.Week},
		{"Orders", len(data.Rows)},
		{"Total", data.Total},
	}
	for i, kv := range summary {
		row := i + 1
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), kv[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), kv[1])
	}

	headers := []string{"Order ID", "Circuit", "Quote No", "Description", "Subtotal", "Additional", "Total"}
	if err := f.SetSheetRow(ordersSheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, r := range data.Rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{r.OrderID, r.CircuitNumber, r.QuoteNo, r.Description, r.Subtotal, r.Additional, r.Total}
		if err := f.SetSheetRow(ordersSheet, cell, &values); err != nil {
			return nil, err
		}
	}
	totalRow := len(data.Rows) + 2
	_ = f.SetCellValue(ordersSheet, fmt.Sprintf("F%d", totalRow), "Total")
	_ = f.SetCellValue(ordersSheet, fmt.Sprintf("G%d", totalRow), data.Total)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
