package server

import (
	"net/http"
	"strings"

	staffdomain "github.com/fiberafrica/missioncontrol/internal/staff/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListStaff(c *gin.Context) {
	items, err := s.staffSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) ListTechnicians(c *gin.Context) {
	items, err := s.staffSvc.ListTechnicians(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) ListStaffLocations(c *gin.Context) {
	items, err := s.staffSvc.Locations(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) GetStaff(c *gin.Context) {
	member, err := s.staffSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, member)
}

func isStaffValidationError(err error) bool {
	switch err {
	case staffdomain.ErrInvalidID,
		staffdomain.ErrInvalidLatitude,
		staffdomain.ErrInvalidLongitude:
		return true
	default:
		return false
	}
}
