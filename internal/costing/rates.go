package costing

// PriceSheet is one client price sheet row. Nil fields are unset columns.
type PriceSheet struct {
	SurveyPlanningCost  *float64
	CalloutCost         *float64
	InstallationCost    *float64
	PerMeterRate        *float64
	Discount            *float64
	SponBudiOptiCost    *float64
	SplitterInstallCost *float64
	MousepadInstallCost *float64

	FullSpliceCost                   *float64
	FullSpliceFloatCost              *float64
	FullSpliceBroadbandCost          *float64
	AccessFloatCost                  *float64
	LinkBuildDiscount15Cost          *float64
	LinkBuildBroadbandDiscount15Cost *float64
	LinkBuildFloatDiscount15Cost     *float64
	SplicePerKmAfter15Cost           *float64
}

// Defaults fills per-meter rate and discount when a price sheet row exists
// but leaves them unset.
type Defaults struct {
	PerMeterRate float64 `mapstructure:"per_meter_rate" json:"per_meter_rate"`
	Discount     float64 `mapstructure:"discount" json:"discount"`
}

// DefaultRates is the built-in fallback table.
func DefaultRates() Defaults {
	return Defaults{
		PerMeterRate: 19.98,
		Discount:     1,
	}
}

// Rates is a price sheet with every value resolved to a finite number.
type Rates struct {
	SurveyPlanning  float64
	Callout         float64
	Installation    float64
	PerMeter        float64
	Discount        float64
	SponBudiOpti    float64
	SplitterInstall float64
	MousepadInstall float64

	Tiers       map[ServiceType]float64
	SplicePerKm float64
}

// ResolveRates turns an optional price sheet into concrete rates. A missing
// sheet yields all zero rates.
func ResolveRates(sheet *PriceSheet, def Defaults) Rates {
	if sheet == nil {
		return Rates{Tiers: map[ServiceType]float64{}}
	}
	return Rates{
		SurveyPlanning:  Finite(sheet.SurveyPlanningCost),
		Callout:         Finite(sheet.CalloutCost),
		Installation:    Finite(sheet.InstallationCost),
		PerMeter:        FiniteOr(sheet.PerMeterRate, def.PerMeterRate),
		Discount:        FiniteOr(sheet.Discount, def.Discount),
		SponBudiOpti:    Finite(sheet.SponBudiOptiCost),
		SplitterInstall: Finite(sheet.SplitterInstallCost),
		MousepadInstall: Finite(sheet.MousepadInstallCost),
		Tiers: map[ServiceType]float64{
			ServiceFullSplice:                   Finite(sheet.FullSpliceCost),
			ServiceFullSpliceFloat:              Finite(sheet.FullSpliceFloatCost),
			ServiceFullSpliceBroadband:          Finite(sheet.FullSpliceBroadbandCost),
			ServiceAccessFloat:                  Finite(sheet.AccessFloatCost),
			ServiceLinkBuildDiscount15:          Finite(sheet.LinkBuildDiscount15Cost),
			ServiceLinkBuildBroadbandDiscount15: Finite(sheet.LinkBuildBroadbandDiscount15Cost),
			ServiceLinkBuildFloatDiscount15:     Finite(sheet.LinkBuildFloatDiscount15Cost),
		},
		SplicePerKm: Finite(sheet.SplicePerKmAfter15Cost),
	}
}
