package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/costing"
	"github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	"github.com/fiberafrica/missioncontrol/internal/observability/logger"
	pricedomain "github.com/fiberafrica/missioncontrol/internal/pricesheet/domain"
	"github.com/fiberafrica/missioncontrol/internal/providers/pdf"
	"github.com/fiberafrica/missioncontrol/internal/providers/spreadsheet"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

func (s *Service) Costs(ctx context.Context, id string) (domain.OrderCosts, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return domain.OrderCosts{}, err
	}

	rates, err := s.rates(ctx, order.ClientID)
	if err != nil {
		return domain.OrderCosts{}, err
	}

	breakdown := costing.ComputeDropCable(order.CostInput(), rates)
	s.metrics.RecordCostComputation(ctx, orderKind)

	return domain.OrderCosts{
		OrderID:        order.ID,
		CircuitNumber:  order.CircuitNumber,
		QuoteNo:        order.QuoteNo,
		Week:           order.Week,
		Breakdown:      breakdown,
		Subtotal:       breakdown.Subtotal,
		AdditionalCost: breakdown.Additional.Amount,
		Total:          breakdown.Total,
	}, nil
}

func (s *Service) WeeklyTotals(ctx context.Context, req domain.WeeklyTotalsRequest) (domain.WeeklyTotals, error) {
	totals, _, err := s.weeklyTotals(ctx, req)
	return totals, err
}

func (s *Service) weeklyTotals(ctx context.Context, req domain.WeeklyTotalsRequest) (domain.WeeklyTotals, []domain.Order, error) {
	clientID, err := parseUUID(req.ClientID, domain.ErrInvalidClientID)
	if err != nil {
		return domain.WeeklyTotals{}, nil, err
	}
	orderType := pricedomain.OrderTypeDropCable
	if strings.TrimSpace(req.OrderType) != "" {
		normalized, _ := pricedomain.NormalizeOrderType(req.OrderType)
		if normalized != pricedomain.OrderTypeDropCable {
			return domain.WeeklyTotals{}, nil, domain.ErrInvalidOrderType
		}
	}
	week, ok := costing.CanonicalizeWeek(req.Week, s.clock.Now())
	if !ok {
		return domain.WeeklyTotals{}, nil, domain.ErrInvalidWeek
	}

	items, err := s.repo.ListForClientAndWeek(ctx, s.db, clientID, week)
	if err != nil {
		return domain.WeeklyTotals{}, nil, err
	}
	orders := derefOrders(items)

	rates, err := s.priceSheets.ResolveRates(ctx, clientID, orderType)
	if err != nil {
		return domain.WeeklyTotals{}, nil, err
	}

	out := domain.WeeklyTotals{
		ClientID:  clientID,
		Week:      week,
		OrderType: orderType,
		Count:     len(orders),
		Items:     make([]domain.WeeklyItem, 0, len(orders)),
	}
	lineTotals := make([]float64, 0, len(orders))
	for _, order := range orders {
		breakdown := costing.ComputeDropCable(order.CostInput(), rates)
		out.Items = append(out.Items, domain.WeeklyItem{
			OrderID:       order.ID,
			CircuitNumber: order.CircuitNumber,
			SiteBName:     order.SiteBName,
			QuoteNo:       order.QuoteNo,
			Breakdown:     breakdown,
			Total:         breakdown.Total,
		})
		lineTotals = append(lineTotals, breakdown.Total)
		s.metrics.RecordCostComputation(ctx, orderKind)
	}
	out.Total = costing.Sum2(lineTotals...)

	logger.WithContext(ctx, s.log).Debug("weekly totals computed",
		zap.String("client_id", clientID),
		zap.String("week", week),
		zap.Int("count", out.Count),
		zap.Float64("total", out.Total),
	)
	return out, orders, nil
}

func (s *Service) ExportWeeklyTotals(ctx context.Context, req domain.WeeklyTotalsRequest) (domain.File, error) {
	totals, _, err := s.weeklyTotals(ctx, req)
	if err != nil {
		return domain.File{}, err
	}
	clientName, err := s.clientName(ctx, totals.ClientID)
	if err != nil {
		return domain.File{}, err
	}

	rows := make([]spreadsheet.Row, 0, len(totals.Items))
	for _, item := range totals.Items {
		rows = append(rows, spreadsheet.Row{
			OrderID:       item.OrderID,
			CircuitNumber: item.CircuitNumber,
			QuoteNo:       nullable.Value(item.QuoteNo),
			Description:   describe(item.Breakdown),
			Subtotal:      item.Breakdown.Subtotal,
			Additional:    item.Breakdown.Additional.Amount,
			Total:         item.Total,
		})
	}

	body, err := s.spreadsheet.WeeklyTotals(ctx, spreadsheet.WeeklyTotals{
		ClientName: clientName,
		ClientID:   totals.ClientID,
		OrderType:  totals.OrderType,
		Week:       totals.Week,
		Rows:       rows,
		Total:      totals.Total,
	})
	if err != nil {
		return domain.File{}, err
	}

	return domain.File{
		Name:        fileName(clientName, "weekly totals", totals.Week, "xlsx"),
		ContentType: spreadsheet.ContentType,
		Body:        body,
	}, nil
}

func (s *Service) WeeklyQuote(ctx context.Context, req domain.WeeklyTotalsRequest) (domain.File, error) {
	totals, orders, err := s.weeklyTotals(ctx, req)
	if err != nil {
		return domain.File{}, err
	}
	clientName, err := s.clientName(ctx, totals.ClientID)
	if err != nil {
		return domain.File{}, err
	}

	quoteNo, _ := costing.QuoteNumber(s.quoteRules(), clientName, totals.Week, s.clock.Now())
	subtotals := make([]float64, 0, len(totals.Items))
	additional := make([]float64, 0, len(totals.Items))
	items := make([]pdf.QuoteItem, 0, len(totals.Items))
	for i, item := range totals.Items {
		if quoteNo == "" && item.QuoteNo != nil {
			quoteNo = *item.QuoteNo
		}
		subtotals = append(subtotals, item.Breakdown.Subtotal)
		additional = append(additional, item.Breakdown.Additional.Amount)
		items = append(items, pdf.QuoteItem{
			CircuitNumber: item.CircuitNumber,
			Site:          orders[i].SiteBName,
			Description:   describe(item.Breakdown),
			Amount:        formatAmount(item.Total),
		})
	}

	reader, err := s.pdf.GenerateWeeklyQuote(ctx, pdf.QuoteData{
		CompanyName:    quoteIssuer,
		ClientName:     clientName,
		QuoteNumber:    quoteNo,
		Week:           totals.Week,
		IssueDate:      s.clock.Now().Format("2006-01-02"),
		Items:          items,
		Subtotal:       formatAmount(costing.Sum2(subtotals...)),
		AdditionalCost: formatAmount(costing.Sum2(additional...)),
		Total:          formatAmount(totals.Total),
	})
	if err != nil {
		return domain.File{}, err
	}
	if reader == nil {
		return domain.File{}, domain.ErrNotFound
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return domain.File{}, err
	}

	return domain.File{
		Name:        fileName(clientName, "quote", totals.Week, "pdf"),
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}

const quoteIssuer = "Mission Control"

// rates prices orders without a client at zero.
func (s *Service) rates(ctx context.Context, clientID *string) (costing.Rates, error) {
	if clientID == nil {
		return costing.ResolveRates(nil, costing.Defaults{}), nil
	}
	return s.priceSheets.ResolveRates(ctx, *clientID, pricedomain.OrderTypeDropCable)
}

func (s *Service) clientName(ctx context.Context, clientID string) (string, error) {
	name, err := s.clients.DisplayName(ctx, clientID)
	if err != nil {
		return "", err
	}
	if name == "" {
		return clientID, nil
	}
	return name, nil
}

func describe(b costing.DropCableBreakdown) string {
	parts := make([]string, 0, len(b.Services)+1)
	for _, item := range b.Services {
		parts = append(parts, strings.ReplaceAll(item.Name, "_", " "))
	}
	if b.Installation.Enabled {
		parts = append(parts, fmt.Sprintf("installation %.0fm", b.Installation.DistanceMeters))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func formatAmount(v float64) string {
	return fmt.Sprintf("R %.2f", v)
}

func fileName(clientName, kind, week, ext string) string {
	return slug.Make(fmt.Sprintf("%s %s %s", clientName, kind, week)) + "." + ext
}
