package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// QuoteData is a weekly quote ready for printing. Amounts are pre-formatted.
type QuoteData struct {
	CompanyName string
	ClientName  string
	QuoteNumber string
	Week        string
	IssueDate   string

	Items []QuoteItem

	Subtotal       string
	AdditionalCost string
	Total          string
}

type QuoteItem struct {
	CircuitNumber string
	Site          string
	Description   string
	Amount        string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateWeeklyQuote(ctx context.Context, quote QuoteData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, quote.CompanyName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, "Quote", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Quote number: "+quote.QuoteNumber, props.Text{Top: 0}),
			text.New("Week: "+quote.Week, props.Text{Top: 4}),
			text.New("Date of issue: "+quote.IssueDate, props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New("Client", props.Text{Style: fontstyle.Bold, Align: align.Right}),
			text.New(quote.ClientName, props.Text{Top: 5, Align: align.Right}),
		),
	)

	m.AddRow(10,
		text.NewCol(3, "Circuit", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Site", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Services", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range quote.Items {
		m.AddRow(12,
			text.NewCol(3, item.CircuitNumber, props.Text{Size: 9}),
			text.NewCol(3, item.Site, props.Text{Size: 9}),
			text.NewCol(4, item.Description, props.Text{Size: 8}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, quote.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Additional", props.Text{Size: 9}),
		text.NewCol(2, quote.AdditionalCost, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, quote.Total, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
