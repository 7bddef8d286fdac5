package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func linkSheet() *PriceSheet {
	return &PriceSheet{
		FullSpliceCost:                   f64(1200),
		FullSpliceFloatCost:              f64(1500),
		FullSpliceBroadbandCost:          f64(1350.5),
		AccessFloatCost:                  f64(800),
		LinkBuildDiscount15Cost:          f64(1020),
		LinkBuildBroadbandDiscount15Cost: f64(1147.93),
		LinkBuildFloatDiscount15Cost:     f64(1275),
		SplicePerKmAfter15Cost:           f64(85.5),
	}
}

func TestComputeLinkBuild_FiberPairMultiplier(t *testing.T) {
	rates := ResolveRates(linkSheet(), DefaultRates())

	cases := []struct {
		pairs int
		want  float64
	}{
		{pairs: 1, want: 1200},
		{pairs: 2, want: 2400},
		{pairs: 3, want: 1200},
		{pairs: 4, want: 1200},
	}
	for _, tc := range cases {
		out := ComputeLinkBuild(LinkBuildOrder{ServiceType: "full_splice", FiberPairs: intp(tc.pairs)}, rates)
		assert.Equal(t, tc.want, out.BaseCost, "pairs=%d", tc.pairs)
		assert.Equal(t, tc.want, out.Total, "pairs=%d", tc.pairs)
	}
}

func TestComputeLinkBuild_Splices(t *testing.T) {
	rates := ResolveRates(linkSheet(), DefaultRates())

	out := ComputeLinkBuild(LinkBuildOrder{
		ServiceType:      "access-float",
		FiberPairs:       intp(2),
		SplicesAfter15km: intp(3),
	}, rates)

	assert.True(t, out.KnownService)
	assert.Equal(t, "access_float", out.ServiceType)
	assert.Equal(t, 1600.0, out.BaseCost)
	assert.Equal(t, 256.5, out.SplicesCost)
	assert.Equal(t, 1856.5, out.Total)
}

func TestComputeLinkBuild_TotalSumsRoundedLines(t *testing.T) {
	rates := ResolveRates(&PriceSheet{
		FullSpliceCost:         f64(100.105),
		SplicePerKmAfter15Cost: f64(7.333),
	}, DefaultRates())

	out := ComputeLinkBuild(LinkBuildOrder{
		ServiceType:      "full_splice",
		FiberPairs:       intp(1),
		SplicesAfter15km: intp(3),
	}, rates)

	assert.Equal(t, 100.11, out.BaseCost)
	assert.Equal(t, 22.0, out.SplicesCost)
	assert.Equal(t, 122.11, out.Total)
	assert.Equal(t, Sum2(out.BaseCost, out.SplicesCost), out.Total)
}

func TestComputeLinkBuild_UnknownServiceType(t *testing.T) {
	rates := ResolveRates(linkSheet(), DefaultRates())

	out := ComputeLinkBuild(LinkBuildOrder{ServiceType: "aerial", SplicesAfter15km: intp(2)}, rates)
	assert.False(t, out.KnownService)
	assert.Equal(t, 0.0, out.BaseCost)
	assert.Equal(t, 171.0, out.Total)

	unset := ComputeLinkBuild(LinkBuildOrder{}, rates)
	assert.Equal(t, 0.0, unset.Total)
}

func TestComputeLinkBuild_MissingPriceSheet(t *testing.T) {
	out := ComputeLinkBuild(LinkBuildOrder{
		ServiceType:      "full_splice_float",
		FiberPairs:       intp(2),
		SplicesAfter15km: intp(10),
	}, ResolveRates(nil, DefaultRates()))

	assert.Equal(t, 0.0, out.Total)
}

func TestParseServiceType(t *testing.T) {
	for _, raw := range []string{"Link Build Broadband Discount 15", "link-build-broadband-discount-15", " link_build_broadband_discount_15 "} {
		st, ok := ParseServiceType(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, ServiceLinkBuildBroadbandDiscount15, st)
	}
}
