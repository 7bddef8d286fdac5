package server

import (
	"net/http"
	"strings"

	pricesheetdomain "github.com/fiberafrica/missioncontrol/internal/pricesheet/domain"
	"github.com/gin-gonic/gin"
)

type serviceCostRates struct {
	SurveyPlanningCost               *float64 `json:"survey_planning_cost"`
	CalloutCost                      *float64 `json:"callout_cost"`
	InstallationCost                 *float64 `json:"installation_cost"`
	PerMeterRate                     *float64 `json:"per_meter_rate"`
	Discount                         *float64 `json:"discount"`
	SponBudiOptiCost                 *float64 `json:"spon_budi_opti_cost"`
	SplitterInstallCost              *float64 `json:"splitter_install_cost"`
	MousepadInstallCost              *float64 `json:"mousepad_install_cost"`
	FullSpliceCost                   *float64 `json:"full_splice_cost"`
	FullSpliceFloatCost              *float64 `json:"full_splice_float_cost"`
	FullSpliceBroadbandCost          *float64 `json:"full_splice_broadband_cost"`
	AccessFloatCost                  *float64 `json:"access_float_cost"`
	LinkBuildDiscount15Cost          *float64 `json:"link_build_discount_15_cost"`
	LinkBuildBroadbandDiscount15Cost *float64 `json:"link_build_broadband_discount_15_cost"`
	LinkBuildFloatDiscount15Cost     *float64 `json:"link_build_float_discount_15_cost"`
	SplicePerKmAfter15Cost           *float64 `json:"splice_per_km_after_15_cost"`
}

type createServiceCostRequest struct {
	ClientID  string `json:"client_id"`
	OrderType string `json:"order_type"`
	serviceCostRates
}

type updateServiceCostRequest struct {
	OrderType *string `json:"order_type"`
	serviceCostRates
}

// LookupServiceCost returns the sheet a calculation would use. A client with
// no sheet gets null data, not an error.
func (s *Server) LookupServiceCost(c *gin.Context) {
	sheet, err := s.priceSheetSvc.Lookup(c.Request.Context(),
		strings.TrimSpace(c.Query("client_id")),
		strings.TrimSpace(c.Query("order_type")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, sheet)
}

func (s *Server) ListServiceCosts(c *gin.Context) {
	items, err := s.priceSheetSvc.ListByClient(c.Request.Context(), strings.TrimSpace(c.Param("clientId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) CreateServiceCost(c *gin.Context) {
	var req createServiceCostRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	row, err := s.priceSheetSvc.Create(c.Request.Context(), pricesheetdomain.CreateServiceCostRequest{
		ClientID:  strings.TrimSpace(req.ClientID),
		OrderType: strings.TrimSpace(req.OrderType),
		Rates:     pricesheetdomain.Rates(req.serviceCostRates),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, row)
}

func (s *Server) UpdateServiceCost(c *gin.Context) {
	var req updateServiceCostRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	row, err := s.priceSheetSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), pricesheetdomain.UpdateServiceCostRequest{
		OrderType: req.OrderType,
		Rates:     pricesheetdomain.Rates(req.serviceCostRates),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, row)
}

func isServiceCostValidationError(err error) bool {
	switch err {
	case pricesheetdomain.ErrInvalidID,
		pricesheetdomain.ErrInvalidClientID,
		pricesheetdomain.ErrInvalidOrderType,
		pricesheetdomain.ErrInvalidRate,
		pricesheetdomain.ErrEmptyUpdate:
		return true
	default:
		return false
	}
}
