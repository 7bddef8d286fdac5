package domain

import (
	"context"
	"errors"
	"io"
	"time"
)

const (
	DefaultURLExpiry = time.Hour
	MaxURLExpiry     = 7 * 24 * time.Hour

	// HappyLetterTemplate is the blank letter technicians download on site.
	HappyLetterTemplate = "templates/happy-letter.pdf"
)

type UploadRequest struct {
	ClientName       string
	ClientIdentifier string
	ClientID         string
	JobType          string
	Category         string
	FileName         string
	CircuitNumber    string
	DropCableJobID   string
	LinkBuildJobID   string
	// JobID is the older spelling of the job reference.
	JobID string

	UploadedBy  string
	Body        io.Reader
	Size        int64
	ContentType string
}

type SignedURL struct {
	URL       string    `json:"url"`
	Path      string    `json:"path,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service interface {
	Upload(ctx context.Context, req UploadRequest) (Document, error)
	ListByJob(ctx context.Context, jobType, jobID string) ([]Document, error)
	// SignedURL presigns a download for a document row. A non-positive
	// expiry uses DefaultURLExpiry.
	SignedURL(ctx context.Context, id string, expiry time.Duration) (SignedURL, error)
	// SignedURLForPath presigns a stored document by key, or the happy letter
	// template.
	SignedURLForPath(ctx context.Context, path string, expiry time.Duration) (SignedURL, error)
	Delete(ctx context.Context, id string) (Document, error)
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidJobType       = errors.New("invalid_job_type")
	ErrInvalidJobID         = errors.New("invalid_job_id")
	ErrInvalidClientID      = errors.New("invalid_client_id")
	ErrInvalidClientName    = errors.New("invalid_client_name")
	ErrInvalidCategory      = errors.New("invalid_category")
	ErrMissingFileName      = errors.New("invalid_file_name")
	ErrMissingCircuitNumber = errors.New("invalid_circuit_number")
	ErrMissingFile          = errors.New("invalid_file")
	ErrInvalidPath          = errors.New("invalid_path")
	ErrNotFound             = errors.New("not_found")
)
