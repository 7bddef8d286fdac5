package server

import (
	"net/http"
	"strings"

	inventorydomain "github.com/fiberafrica/missioncontrol/internal/inventory/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListInventory(c *gin.Context) {
	items, err := s.inventorySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) GetInventoryItem(c *gin.Context) {
	item, err := s.inventorySvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}

func (s *Server) CreateInventoryItem(c *gin.Context) {
	var req inventorydomain.Fields
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	item, err := s.inventorySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, item)
}

func (s *Server) UpdateInventoryItem(c *gin.Context) {
	var req inventorydomain.Fields
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	item, err := s.inventorySvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}

func (s *Server) DeleteInventoryItem(c *gin.Context) {
	if err := s.inventorySvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ApplyInventoryUsage deducts stock and appends the usage to the job.
func (s *Server) ApplyInventoryUsage(c *gin.Context) {
	var req inventorydomain.ApplyUsageRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.inventorySvc.ApplyUsage(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

func (s *Server) GetJobInventoryUsage(c *gin.Context) {
	entries, err := s.inventorySvc.JobUsage(c.Request.Context(),
		strings.TrimSpace(c.Param("jobType")),
		strings.TrimSpace(c.Param("jobId")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, entries)
}

func isInventoryValidationError(err error) bool {
	switch err {
	case inventorydomain.ErrInvalidID,
		inventorydomain.ErrInvalidItemName,
		inventorydomain.ErrInvalidQuantity,
		inventorydomain.ErrInvalidPrice,
		inventorydomain.ErrInvalidJobID,
		inventorydomain.ErrInvalidInventoryID,
		inventorydomain.ErrEmptyUsage,
		inventorydomain.ErrEmptyUpdate:
		return true
	default:
		return false
	}
}
