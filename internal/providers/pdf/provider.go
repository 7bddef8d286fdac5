package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"
)

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

type Provider interface {
	GenerateWeeklyQuote(ctx context.Context, data QuoteData) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateWeeklyQuote(ctx context.Context, data QuoteData) (io.Reader, error) {
	return nil, nil
}
