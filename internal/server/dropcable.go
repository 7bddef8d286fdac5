package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/auth"
	dropcabledomain "github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	"github.com/fiberafrica/missioncontrol/internal/job"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/gin-gonic/gin"
)

// dropCableRequest carries the writable columns. A quote_no in the body is
// ignored; it is always derived.
type dropCableRequest struct {
	ID string `json:"id"`
	dropcabledomain.Fields
	Week  job.WeekInput   `json:"week"`
	Notes *job.NotesInput `json:"notes"`
}

type weeklyTotalsRequest struct {
	ClientID  string `json:"client_id"`
	OrderType string `json:"order_type"`
	Week      string `json:"week"`
}

type accessRequestRequest struct {
	OrderID       string `json:"order_id"`
	To            string `json:"to"`
	ContactName   string `json:"contact_name"`
	RequestedDate string `json:"requested_date"`
	Message       string `json:"message"`
}

func (s *Server) ListDropCables(c *gin.Context) {
	items, err := s.dropCableSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) GetDropCable(c *gin.Context) {
	order, err := s.dropCableSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, order)
}

func (s *Server) ListDropCablesByClient(c *gin.Context) {
	items, err := s.dropCableSvc.ListByClient(c.Request.Context(), strings.TrimSpace(c.Param("clientId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) ListDropCablesByTechnician(c *gin.Context) {
	items, err := s.dropCableSvc.ListByTechnician(c.Request.Context(), strings.TrimSpace(c.Param("technicianId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) CreateDropCable(c *gin.Context) {
	var req dropCableRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.dropCableSvc.Create(c.Request.Context(), dropcabledomain.CreateOrderRequest{
		Fields: req.Fields,
		Week:   req.Week,
		Notes:  req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Set("week", nullable.Value(order.Week))
	respond(c, http.StatusCreated, order)
}

// UpdateDropCable takes the order id from the body, or from the path when
// mounted with one.
func (s *Server) UpdateDropCable(c *gin.Context) {
	var req dropCableRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = strings.TrimSpace(c.Param("id"))
	}

	order, err := s.dropCableSvc.Update(c.Request.Context(), dropcabledomain.UpdateOrderRequest{
		ID:     id,
		Fields: req.Fields,
		Week:   req.Week,
		Notes:  req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Set("week", nullable.Value(order.Week))
	respond(c, http.StatusOK, order)
}

func (s *Server) DeleteDropCable(c *gin.Context) {
	if err := s.dropCableSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) GetDropCableCosts(c *gin.Context) {
	costs, err := s.dropCableSvc.Costs(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, costs)
}

func (s *Server) DropCableWeeklyTotals(c *gin.Context) {
	req, err := bindWeeklyTotals(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	totals, err := s.dropCableSvc.WeeklyTotals(c.Request.Context(), dropcabledomain.WeeklyTotalsRequest(req))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Set("week", totals.Week)
	respond(c, http.StatusOK, totals)
}

func (s *Server) ExportDropCableWeeklyTotals(c *gin.Context) {
	req, err := bindWeeklyTotals(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	file, err := s.dropCableSvc.ExportWeeklyTotals(c.Request.Context(), dropcabledomain.WeeklyTotalsRequest(req))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	sendFile(c, file)
}

func (s *Server) DropCableWeeklyQuote(c *gin.Context) {
	req, err := bindWeeklyTotals(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	file, err := s.dropCableSvc.WeeklyQuote(c.Request.Context(), dropcabledomain.WeeklyTotalsRequest(req))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	sendFile(c, file)
}

func (s *Server) SendAccessRequest(c *gin.Context) {
	var req accessRequestRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	var sender string
	if principal, ok := auth.PrincipalFromContext(c.Request.Context()); ok {
		sender = principal.Email
	}

	err := s.dropCableSvc.SendAccessRequest(c.Request.Context(), dropcabledomain.AccessRequest{
		OrderID:       strings.TrimSpace(req.OrderID),
		To:            strings.TrimSpace(req.To),
		ContactName:   strings.TrimSpace(req.ContactName),
		RequestedDate: strings.TrimSpace(req.RequestedDate),
		Message:       strings.TrimSpace(req.Message),
		SenderName:    sender,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"sent": true})
}

func bindWeeklyTotals(c *gin.Context) (weeklyTotalsRequest, error) {
	var req weeklyTotalsRequest
	if err := bindJSON(c, &req); err != nil {
		return weeklyTotalsRequest{}, err
	}
	req.ClientID = strings.TrimSpace(req.ClientID)
	req.OrderType = strings.TrimSpace(req.OrderType)
	req.Week = strings.TrimSpace(req.Week)
	return req, nil
}

func sendFile(c *gin.Context, file dropcabledomain.File) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Header("Content-Length", strconv.Itoa(len(file.Body)))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

func isDropCableValidationError(err error) bool {
	switch err {
	case dropcabledomain.ErrInvalidID,
		dropcabledomain.ErrInvalidClientID,
		dropcabledomain.ErrInvalidTechnicianID,
		dropcabledomain.ErrInvalidCircuitNumber,
		dropcabledomain.ErrInvalidSiteBName,
		dropcabledomain.ErrInvalidCounty,
		dropcabledomain.ErrInvalidStatus,
		dropcabledomain.ErrInvalidEmail,
		dropcabledomain.ErrInvalidDistance,
		dropcabledomain.ErrInvalidCompletionPercent,
		dropcabledomain.ErrInvalidAdditionalCost,
		dropcabledomain.ErrInvalidWeek,
		dropcabledomain.ErrInvalidOrderType,
		dropcabledomain.ErrMissingRecipient,
		dropcabledomain.ErrEmptyUpdate:
		return true
	default:
		return false
	}
}
