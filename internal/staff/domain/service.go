package domain

import (
	"context"
	"errors"
)

type Service interface {
	List(ctx context.Context) ([]Staff, error)
	ListTechnicians(ctx context.Context) ([]Staff, error)
	Get(ctx context.Context, id string) (Staff, error)
	GetByAuthUserID(ctx context.Context, authUserID string) (Staff, error)
	Locations(ctx context.Context) ([]Location, error)
	UpdateLocation(ctx context.Context, staffID string, latitude, longitude float64) (Location, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidLatitude  = errors.New("invalid_latitude")
	ErrInvalidLongitude = errors.New("invalid_longitude")
	ErrNotFound         = errors.New("not_found")
)
