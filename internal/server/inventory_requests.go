package server

import (
	"net/http"
	"strings"

	inventorydomain "github.com/fiberafrica/missioncontrol/internal/inventory/domain"
	inventoryrequestdomain "github.com/fiberafrica/missioncontrol/internal/inventoryrequest/domain"
	"github.com/gin-gonic/gin"
)

type rejectInventoryRequestRequest struct {
	Reason *string `json:"reason"`
}

type mobileInventoryRequestRequest struct {
	JobID   string                      `json:"job_id"`
	JobType string                      `json:"job_type"`
	Items   []inventorydomain.UsageItem `json:"items"`
}

func (s *Server) ListInventoryRequests(c *gin.Context) {
	items, err := s.inventoryRequestSvc.List(c.Request.Context(), strings.TrimSpace(c.Query("status")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) CountPendingInventoryRequests(c *gin.Context) {
	count, err := s.inventoryRequestSvc.PendingCount(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"count": count})
}

func (s *Server) GetInventoryRequest(c *gin.Context) {
	detail, err := s.inventoryRequestSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, detail)
}

func (s *Server) ListInventoryRequestsByJob(c *gin.Context) {
	items, err := s.inventoryRequestSvc.ListByJob(c.Request.Context(),
		strings.TrimSpace(c.Param("jobType")),
		strings.TrimSpace(c.Param("jobId")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) ListInventoryRequestsByTechnician(c *gin.Context) {
	items, err := s.inventoryRequestSvc.ListByTechnician(c.Request.Context(), strings.TrimSpace(c.Param("technicianId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) ApproveInventoryRequest(c *gin.Context) {
	reviewerID, err := s.reviewerID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	detail, err := s.inventoryRequestSvc.Approve(c.Request.Context(), strings.TrimSpace(c.Param("id")), reviewerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, detail)
}

func (s *Server) RejectInventoryRequest(c *gin.Context) {
	var req rejectInventoryRequestRequest
	if c.Request.ContentLength > 0 {
		if err := bindJSON(c, &req); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	reviewerID, err := s.reviewerID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	detail, err := s.inventoryRequestSvc.Reject(c.Request.Context(), strings.TrimSpace(c.Param("id")), reviewerID, req.Reason)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, detail)
}

// MobileMyInventoryRequests lists the calling technician's requests.
func (s *Server) MobileMyInventoryRequests(c *gin.Context) {
	member, err := s.currentStaff(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items, err := s.inventoryRequestSvc.ListByTechnician(c.Request.Context(), member.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) MobileCreateInventoryRequest(c *gin.Context) {
	var req mobileInventoryRequestRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	member, err := s.currentStaff(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	detail, err := s.inventoryRequestSvc.Create(c.Request.Context(), inventoryrequestdomain.CreateRequest{
		JobID:        strings.TrimSpace(req.JobID),
		JobType:      strings.TrimSpace(req.JobType),
		TechnicianID: member.ID,
		Items:        req.Items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, detail)
}

// reviewerID resolves the staff row of the signed-in reviewer.
func (s *Server) reviewerID(c *gin.Context) (string, error) {
	member, err := s.currentStaff(c)
	if err != nil {
		return "", err
	}
	return member.ID, nil
}

func isInventoryRequestValidationError(err error) bool {
	switch err {
	case inventoryrequestdomain.ErrInvalidID,
		inventoryrequestdomain.ErrInvalidJobID,
		inventoryrequestdomain.ErrInvalidTechnicianID,
		inventoryrequestdomain.ErrInvalidReviewerID,
		inventoryrequestdomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
