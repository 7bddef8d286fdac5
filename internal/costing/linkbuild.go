package costing

import "strings"

// ServiceType names a link-build pricing tier.
type ServiceType string

const (
	ServiceFullSplice                   ServiceType = "full_splice"
	ServiceFullSpliceFloat              ServiceType = "full_splice_float"
	ServiceFullSpliceBroadband          ServiceType = "full_splice_broadband"
	ServiceAccessFloat                  ServiceType = "access_float"
	ServiceLinkBuildDiscount15          ServiceType = "link_build_discount_15"
	ServiceLinkBuildBroadbandDiscount15 ServiceType = "link_build_broadband_discount_15"
	ServiceLinkBuildFloatDiscount15     ServiceType = "link_build_float_discount_15"
)

// DoubledFiberPairs is the only pair count that doubles the base cost.
const DoubledFiberPairs = 2

// ServiceTypes lists the known tiers in display order.
func ServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceFullSplice,
		ServiceFullSpliceFloat,
		ServiceFullSpliceBroadband,
		ServiceAccessFloat,
		ServiceLinkBuildDiscount15,
		ServiceLinkBuildBroadbandDiscount15,
		ServiceLinkBuildFloatDiscount15,
	}
}

// ParseServiceType normalizes case, hyphens and spaces and reports whether
// the result is a known tier.
func ParseServiceType(raw string) (ServiceType, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.NewReplacer("-", "_", " ", "_").Replace(value)
	for _, st := range ServiceTypes() {
		if ServiceType(value) == st {
			return st, true
		}
	}
	return ServiceType(value), false
}

// LinkBuildOrder holds the order fields that affect its cost.
type LinkBuildOrder struct {
	ServiceType      string
	FiberPairs       *int
	SplicesAfter15km *int
}

// LinkBuildBreakdown is the priced link-build order; Total is the sum of the
// rounded base and splice lines.
type LinkBuildBreakdown struct {
	ServiceType    string  `json:"service_type"`
	KnownService   bool    `json:"known_service"`
	Rate           float64 `json:"rate"`
	FiberPairs     int     `json:"fiber_pairs"`
	PairMultiplier float64 `json:"pair_multiplier"`
	BaseCost       float64 `json:"base_cost"`
	Splices        int     `json:"splices_after_15km"`
	SpliceRate     float64 `json:"splice_rate"`
	SplicesCost    float64 `json:"splices_cost"`
	Total          float64 `json:"total"`
}

// ComputeLinkBuild prices a link-build order. There is no discount or
// completion proration for link builds.
func ComputeLinkBuild(order LinkBuildOrder, rates Rates) LinkBuildBreakdown {
	st, known := ParseServiceType(order.ServiceType)

	rate := 0.0
	if known {
		rate = rates.Tiers[st]
	}

	pairs := intOrZero(order.FiberPairs)
	multiplier := 1.0
	if pairs == DoubledFiberPairs {
		multiplier = 2
	}
	base := Round2(rate * multiplier)

	splices := intOrZero(order.SplicesAfter15km)
	splicesCost := Round2(float64(splices) * rates.SplicePerKm)

	return LinkBuildBreakdown{
		ServiceType:    string(st),
		KnownService:   known,
		Rate:           Round2(rate),
		FiberPairs:     pairs,
		PairMultiplier: multiplier,
		BaseCost:       base,
		Splices:        splices,
		SpliceRate:     Round2(rates.SplicePerKm),
		SplicesCost:    splicesCost,
		Total:          Sum2(base, splicesCost),
	}
}
