package server

import (
	"net/http"
	"strings"

	clientdomain "github.com/fiberafrica/missioncontrol/internal/client/domain"
	"github.com/gin-gonic/gin"
)

type createClientRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	CompanyName *string `json:"company_name"`
	Notes       *string `json:"notes"`
	IsActive    *bool   `json:"is_active"`
}

type updateClientRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	CompanyName *string `json:"company_name"`
	Notes       *string `json:"notes"`
	IsActive    *bool   `json:"is_active"`
}

func (s *Server) ListClients(c *gin.Context) {
	items, err := s.clientSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) GetClient(c *gin.Context) {
	client, err := s.clientSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, client)
}

func (s *Server) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	client, err := s.clientSvc.Create(c.Request.Context(), clientdomain.CreateClientRequest(req))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, client)
}

func (s *Server) UpdateClient(c *gin.Context) {
	var req updateClientRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	client, err := s.clientSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), clientdomain.UpdateClientRequest(req))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, client)
}

func isClientValidationError(err error) bool {
	switch err {
	case clientdomain.ErrInvalidID,
		clientdomain.ErrInvalidFirstName,
		clientdomain.ErrInvalidLastName,
		clientdomain.ErrInvalidEmail,
		clientdomain.ErrEmptyUpdate:
		return true
	default:
		return false
	}
}
