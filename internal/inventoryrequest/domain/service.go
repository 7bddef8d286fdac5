package domain

import (
	"context"
	"errors"

	inventorydomain "github.com/fiberafrica/missioncontrol/internal/inventory/domain"
)

type CreateRequest struct {
	JobID        string                      `json:"job_id"`
	JobType      string                      `json:"job_type"`
	TechnicianID string                      `json:"technician_id"`
	Items        []inventorydomain.UsageItem `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Detail, error)
	// List returns requests newest first; an empty status means all.
	List(ctx context.Context, status string) ([]Detail, error)
	PendingCount(ctx context.Context) (int64, error)
	Get(ctx context.Context, id string) (Detail, error)
	ListByJob(ctx context.Context, jobType, jobID string) ([]Detail, error)
	ListByTechnician(ctx context.Context, technicianID string) ([]Detail, error)

	// Approve applies the requested stock to the job and marks the request
	// approved in one transaction.
	Approve(ctx context.Context, id string, reviewerID string) (Detail, error)
	Reject(ctx context.Context, id string, reviewerID string, reason *string) (Detail, error)
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidJobID        = errors.New("invalid_job_id")
	ErrInvalidTechnicianID = errors.New("invalid_technician_id")
	ErrInvalidReviewerID   = errors.New("invalid_reviewer_id")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrNotPending          = errors.New("request_not_found_or_processed")
	ErrNotFound            = errors.New("not_found")
)
