package server

import (
	"errors"
	"net/http"
	"strings"

	dropcabledomain "github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	linkbuilddomain "github.com/fiberafrica/missioncontrol/internal/linkbuild/domain"
	staffdomain "github.com/fiberafrica/missioncontrol/internal/staff/domain"
	"github.com/gin-gonic/gin"
)

type technicianOrders struct {
	DropCables []dropcabledomain.Order `json:"drop_cables"`
	LinkBuilds []linkbuilddomain.Order `json:"link_builds"`
	Total      int                     `json:"total"`
}

type mobileLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// MobileMe returns the caller's identity and, when linked, their staff row.
func (s *Server) MobileMe(c *gin.Context) {
	principal, err := principalFrom(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var member *staffdomain.Staff
	found, err := s.staffSvc.GetByAuthUserID(c.Request.Context(), principal.UserID)
	switch {
	case err == nil:
		member = &found
	case errors.Is(err, staffdomain.ErrNotFound):
	default:
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"id":    principal.UserID,
		"email": principal.Email,
		"role":  principal.Role,
		"staff": member,
	})
}

// MobileTechnicianOrders lists the orders assigned to the caller. The path
// must name the caller's own user id. A user with no staff row has no orders.
func (s *Server) MobileTechnicianOrders(c *gin.Context) {
	principal, err := principalFrom(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if strings.TrimSpace(c.Param("technicianId")) != principal.UserID {
		AbortWithError(c, ErrForbidden)
		return
	}

	ctx := c.Request.Context()
	out := technicianOrders{
		DropCables: []dropcabledomain.Order{},
		LinkBuilds: []linkbuilddomain.Order{},
	}

	member, err := s.staffSvc.GetByAuthUserID(ctx, principal.UserID)
	if errors.Is(err, staffdomain.ErrNotFound) {
		respond(c, http.StatusOK, out)
		return
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	drops, err := s.dropCableSvc.ListByTechnician(ctx, member.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	links, err := s.linkBuildSvc.ListByTechnicianID(ctx, member.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if drops != nil {
		out.DropCables = drops
	}
	if links != nil {
		out.LinkBuilds = links
	}
	out.Total = len(out.DropCables) + len(out.LinkBuilds)
	respond(c, http.StatusOK, out)
}

func (s *Server) MobileGetDropCable(c *gin.Context) {
	s.GetDropCable(c)
}

func (s *Server) MobileGetLinkBuild(c *gin.Context) {
	s.GetLinkBuild(c)
}

func (s *Server) MobileUpdateLocation(c *gin.Context) {
	var req mobileLocationRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}
	if req.Latitude == nil {
		AbortWithError(c, staffdomain.ErrInvalidLatitude)
		return
	}
	if req.Longitude == nil {
		AbortWithError(c, staffdomain.ErrInvalidLongitude)
		return
	}

	member, err := s.currentStaff(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	location, err := s.staffSvc.UpdateLocation(c.Request.Context(), member.ID, *req.Latitude, *req.Longitude)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, location)
}

// currentStaff resolves the staff row linked to the signed-in user.
func (s *Server) currentStaff(c *gin.Context) (staffdomain.Staff, error) {
	principal, err := principalFrom(c)
	if err != nil {
		return staffdomain.Staff{}, err
	}
	return s.staffSvc.GetByAuthUserID(c.Request.Context(), principal.UserID)
}
