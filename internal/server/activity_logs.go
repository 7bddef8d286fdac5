package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListActivityLogs(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	var n int
	if limit != nil {
		n = *limit
	}
	items, err := s.activitySvc.List(c.Request.Context(), n)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}
