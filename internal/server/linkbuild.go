package server

import (
	"net/http"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/job"
	linkbuilddomain "github.com/fiberafrica/missioncontrol/internal/linkbuild/domain"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/gin-gonic/gin"
)

type linkBuildRequest struct {
	ID string `json:"id"`
	linkbuilddomain.Fields
	Week  job.WeekInput   `json:"week"`
	Notes *job.NotesInput `json:"notes"`
}

func (s *Server) ListLinkBuilds(c *gin.Context) {
	items, err := s.linkBuildSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) GetLinkBuild(c *gin.Context) {
	order, err := s.linkBuildSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, order)
}

func (s *Server) ListLinkBuildsByClient(c *gin.Context) {
	items, err := s.linkBuildSvc.ListByClientName(c.Request.Context(), strings.TrimSpace(c.Param("clientName")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) ListLinkBuildsByTechnician(c *gin.Context) {
	items, err := s.linkBuildSvc.ListByTechnicianName(c.Request.Context(), strings.TrimSpace(c.Param("technician")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) CreateLinkBuild(c *gin.Context) {
	var req linkBuildRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.linkBuildSvc.Create(c.Request.Context(), linkbuilddomain.CreateOrderRequest{
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

func (s *Server) UpdateLinkBuild(c *gin.Context) {
	var req linkBuildRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.linkBuildSvc.Update(c.Request.Context(), linkbuilddomain.UpdateOrderRequest{
		ID:     strings.TrimSpace(req.ID),
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

func (s *Server) DeleteLinkBuild(c *gin.Context) {
	if err := s.linkBuildSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) GetLinkBuildCosts(c *gin.Context) {
	costs, err := s.linkBuildSvc.Costs(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, costs)
}

func (s *Server) LinkBuildWeeklyTotals(c *gin.Context) {
	req, err := bindWeeklyTotals(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	totals, err := s.linkBuildSvc.WeeklyTotals(c.Request.Context(), linkbuilddomain.WeeklyTotalsRequest(req))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Set("week", totals.Week)
	respond(c, http.StatusOK, totals)
}

func isLinkBuildValidationError(err error) bool {
	switch err {
	case linkbuilddomain.ErrInvalidID,
		linkbuilddomain.ErrInvalidClientID,
		linkbuilddomain.ErrInvalidClientName,
		linkbuilddomain.ErrInvalidTechnician,
		linkbuilddomain.ErrInvalidTechnicianID,
		linkbuilddomain.ErrInvalidCounty,
		linkbuilddomain.ErrInvalidStatus,
		linkbuilddomain.ErrInvalidServiceType,
		linkbuilddomain.ErrInvalidFiberPairs,
		linkbuilddomain.ErrInvalidDistance,
		linkbuilddomain.ErrInvalidSplices,
		linkbuilddomain.ErrInvalidWeek,
		linkbuilddomain.ErrInvalidOrderType:
		return true
	default:
		return false
	}
}
