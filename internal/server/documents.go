package server

import (
	"mime/multipart"
	"net/http"
	"strings"

	documentdomain "github.com/fiberafrica/missioncontrol/internal/document/domain"
	"github.com/gin-gonic/gin"
)

// maxUploadMemory bounds the part of a multipart body kept in memory.
const maxUploadMemory = 32 << 20

func (s *Server) UploadDocument(c *gin.Context) {
	var uploadedBy string
	if principal, err := principalFrom(c); err == nil {
		uploadedBy = principal.Email
	}
	s.upload(c, uploadedBy)
}

func (s *Server) MobileUploadDocument(c *gin.Context) {
	principal, err := principalFrom(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.upload(c, principal.UserID)
}

func (s *Server) upload(c *gin.Context, uploadedBy string) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, documentdomain.ErrMissingFile)
		return
	}
	file, err := header.Open()
	if err != nil {
		AbortWithError(c, documentdomain.ErrMissingFile)
		return
	}
	defer file.Close()

	doc, err := s.documentSvc.Upload(c.Request.Context(), uploadRequest(c, header, file, uploadedBy))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, doc)
}

func uploadRequest(c *gin.Context, header *multipart.FileHeader, file multipart.File, uploadedBy string) documentdomain.UploadRequest {
	form := func(key string) string { return strings.TrimSpace(c.PostForm(key)) }

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	fileName := form("fileName")
	if fileName == "" {
		fileName = header.Filename
	}

	return documentdomain.UploadRequest{
		ClientName:       form("clientName"),
		ClientIdentifier: form("clientIdentifier"),
		ClientID:         form("clientId"),
		JobType:          form("jobType"),
		Category:         form("category"),
		FileName:         fileName,
		CircuitNumber:    form("circuitNumber"),
		DropCableJobID:   form("dropCableJobId"),
		LinkBuildJobID:   form("linkBuildJobId"),
		JobID:            form("jobId"),
		UploadedBy:       uploadedBy,
		Body:             file,
		Size:             header.Size,
		ContentType:      contentType,
	}
}

func (s *Server) ListJobDocuments(c *gin.Context) {
	items, err := s.documentSvc.ListByJob(c.Request.Context(),
		strings.TrimSpace(c.Param("jobType")),
		strings.TrimSpace(c.Param("jobId")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (s *Server) GetDocumentURL(c *gin.Context) {
	expiry, err := parseExpiry(c.Query("expires"))
	if err != nil {
		AbortWithError(c, newValidationError("expires", "invalid_expires", "invalid expiry"))
		return
	}

	signed, err := s.documentSvc.SignedURL(c.Request.Context(), strings.TrimSpace(c.Param("id")), expiry)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, signed)
}

func (s *Server) GetDocumentURLByPath(c *gin.Context) {
	s.signedURLForPath(c, c.Query("path"))
}

func (s *Server) MobileSignedURL(c *gin.Context) {
	s.signedURLForPath(c, c.Query("path"))
}

// MobileHappyLetterTemplate hands technicians a link to the blank letter.
func (s *Server) MobileHappyLetterTemplate(c *gin.Context) {
	s.signedURLForPath(c, documentdomain.HappyLetterTemplate)
}

func (s *Server) signedURLForPath(c *gin.Context, path string) {
	expiry, err := parseExpiry(c.Query("expires"))
	if err != nil {
		AbortWithError(c, newValidationError("expires", "invalid_expires", "invalid expiry"))
		return
	}

	signed, err := s.documentSvc.SignedURLForPath(c.Request.Context(), strings.TrimSpace(path), expiry)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, signed)
}

func (s *Server) DeleteDocument(c *gin.Context) {
	if _, err := s.documentSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func isDocumentValidationError(err error) bool {
	switch err {
	case documentdomain.ErrInvalidID,
		documentdomain.ErrInvalidJobType,
		documentdomain.ErrInvalidJobID,
		documentdomain.ErrInvalidClientID,
		documentdomain.ErrInvalidClientName,
		documentdomain.ErrInvalidCategory,
		documentdomain.ErrMissingFileName,
		documentdomain.ErrMissingCircuitNumber,
		documentdomain.ErrMissingFile,
		documentdomain.ErrInvalidPath:
		return true
	default:
		return false
	}
}
