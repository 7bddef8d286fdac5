package server

import (
	"net/http"
	"strings"

	fleetdomain "github.com/fiberafrica/missioncontrol/internal/fleet/domain"
	"github.com/gin-gonic/gin"
)

type createVehicleRequest struct {
	Registration string  `json:"registration"`
	Make         *string `json:"make"`
	Model        *string `json:"model"`
	VIN          *string `json:"vin"`
	VehicleType  *string `json:"vehicle_type"`
	Technician   *string `json:"technician"`
	TechnicianID *string `json:"technician_id"`
}

type updateVehicleRequest struct {
	Registration *string `json:"registration"`
	Make         *string `json:"make"`
	Model        *string `json:"model"`
	VIN          *string `json:"vin"`
	VehicleType  *string `json:"vehicle_type"`
	Technician   *string `json:"technician"`
	TechnicianID *string `json:"technician_id"`
}

func (s *Server) ListVehicles(c *gin.Context) {
	items, err := s.fleetSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) GetVehicle(c *gin.Context) {
	vehicle, err := s.fleetSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, vehicle)
}

func (s *Server) CreateVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	vehicle, err := s.fleetSvc.Create(c.Request.Context(), fleetdomain.CreateVehicleRequest(req))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, vehicle)
}

func (s *Server) UpdateVehicle(c *gin.Context) {
	var req updateVehicleRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	vehicle, err := s.fleetSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), fleetdomain.UpdateVehicleRequest(req))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, vehicle)
}

func (s *Server) DeleteVehicle(c *gin.Context) {
	if err := s.fleetSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func isFleetValidationError(err error) bool {
	switch err {
	case fleetdomain.ErrInvalidID,
		fleetdomain.ErrInvalidRegistration,
		fleetdomain.ErrInvalidVIN,
		fleetdomain.ErrInvalidTechnicianID,
		fleetdomain.ErrEmptyUpdate:
		return true
	default:
		return false
	}
}
