package costing

import "math"

// FlatInstallMaxMeters is the longest drop that is billed at the flat
// installation rate. Anything longer is billed per meter.
const FlatInstallMaxMeters = 100

const (
	ServiceSurveyPlanning  = "survey_planning"
	ServiceCallout         = "callout"
	ServiceSponBudiOpti    = "spon_budi_opti"
	ServiceSplitterInstall = "splitter_install"
	ServiceMousepadInstall = "mousepad_install"

	TierFlat     = "flat"
	TierPerMeter = "per_meter"
)

// DropCableOrder holds the order fields that affect its cost.
type DropCableOrder struct {
	SurveyPlanning  bool
	Callout         bool
	Installation    bool
	SponBudiOpti    bool
	SplitterInstall bool
	MousepadInstall bool

	DistanceMeters           *float64
	InstallCompletionPercent *float64
	SurveyMultiplier         *float64
	CalloutMultiplier        *float64

	AdditionalCost       *float64
	AdditionalCostReason string
}

// LineItem is one priced flag service.
type LineItem struct {
	Name       string  `json:"name"`
	Rate       float64 `json:"rate"`
	Multiplier float64 `json:"multiplier"`
	Cost       float64 `json:"cost"`
}

// InstallationBreakdown shows how the installation line was reached.
type InstallationBreakdown struct {
	Enabled           bool     `json:"enabled"`
	DistanceMeters    float64  `json:"distance_meters"`
	Tier              string   `json:"tier,omitempty"`
	BaseCost          float64  `json:"base_cost"`
	Discount          float64  `json:"discount"`
	DiscountedCost    float64  `json:"discounted_cost"`
	CompletionPercent *float64 `json:"completion_percent"`
	Cost              float64  `json:"cost"`
}

// AdditionalCost is the flat extra charged on top of the services.
type AdditionalCost struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason,omitempty"`
}

// DropCableBreakdown is the priced drop-cable order.
type DropCableBreakdown struct {
	Services     []LineItem            `json:"services"`
	Installation InstallationBreakdown `json:"installation"`
	Additional   AdditionalCost        `json:"additional"`
	Subtotal     float64               `json:"subtotal"`
	Total        float64               `json:"total"`
}

// ComputeDropCable prices a drop-cable order. Each line is rounded to cents
// and the subtotal and total are rounded again.
func ComputeDropCable(order DropCableOrder, rates Rates) DropCableBreakdown {
	services := make([]LineItem, 0, 5)
	addService := func(enabled bool, name string, rate float64, multiplier float64) {
		if !enabled {
			return
		}
		services = append(services, LineItem{
			Name:       name,
			Rate:       Round2(rate),
			Multiplier: Round2(multiplier),
			Cost:       Round2(rate * multiplier),
		})
	}

	addService(order.SurveyPlanning, ServiceSurveyPlanning, rates.SurveyPlanning, FiniteOr(order.SurveyMultiplier, 1))
	addService(order.Callout, ServiceCallout, rates.Callout, FiniteOr(order.CalloutMultiplier, 1))
	addService(order.SponBudiOpti, ServiceSponBudiOpti, rates.SponBudiOpti, 1)
	addService(order.SplitterInstall, ServiceSplitterInstall, rates.SplitterInstall, 1)
	addService(order.MousepadInstall, ServiceMousepadInstall, rates.MousepadInstall, 1)

	installation := computeInstallation(order, rates)

	lines := make([]float64, 0, len(services)+2)
	for _, item := range services {
		lines = append(lines, item.Cost)
	}
	lines = append(lines, installation.Cost)
	subtotal := Sum2(lines...)

	additional := AdditionalCost{
		Amount: Round2(Finite(order.AdditionalCost)),
		Reason: order.AdditionalCostReason,
	}

	return DropCableBreakdown{
		Services:     services,
		Installation: installation,
		Additional:   additional,
		Subtotal:     subtotal,
		Total:        Sum2(append(lines, additional.Amount)...),
	}
}

func computeInstallation(order DropCableOrder, rates Rates) InstallationBreakdown {
	distance := Finite(order.DistanceMeters)
	out := InstallationBreakdown{
		Enabled:        order.Installation,
		DistanceMeters: Round2(distance),
		Discount:       Round2(rates.Discount),
	}
	if !order.Installation {
		return out
	}

	base := rates.Installation
	out.Tier = TierFlat
	if distance >= FlatInstallMaxMeters+1 {
		base = rates.PerMeter * distance
		out.Tier = TierPerMeter
	}
	discounted := base * rates.Discount

	cost := discounted
	if pct, ok := completionPercent(order.InstallCompletionPercent); ok {
		cost = discounted * (pct / 100)
		p := Round2(pct)
		out.CompletionPercent = &p
	}

	out.BaseCost = Round2(base)
	out.DiscountedCost = Round2(discounted)
	out.Cost = Round2(cost)
	return out
}

// completionPercent reports whether a completion percent should prorate the
// installation cost.
func completionPercent(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	pct := *v
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct <= 0 || pct > 100 {
		return 0, false
	}
	return pct, true
}
