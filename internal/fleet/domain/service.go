package domain

import (
	"context"
	"errors"
)

const (
	MaxRegistrationLength = 20
	MaxVINLength          = 50
)

type CreateVehicleRequest struct {
	Registration string
	Make         *string
	Model        *string
	VIN          *string
	VehicleType  *string
	Technician   *string
	TechnicianID *string
}

// UpdateVehicleRequest is a partial patch; at least one field is required.
type UpdateVehicleRequest struct {
	Registration *string
	Make         *string
	Model        *string
	VIN          *string
	VehicleType  *string
	Technician   *string
	TechnicianID *string
}

type Service interface {
	List(ctx context.Context) ([]Vehicle, error)
	Get(ctx context.Context, id string) (Vehicle, error)
	Create(ctx context.Context, req CreateVehicleRequest) (Vehicle, error)
	Update(ctx context.Context, id string, req UpdateVehicleRequest) (Vehicle, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidRegistration = errors.New("invalid_registration")
	ErrInvalidVIN          = errors.New("invalid_vin")
	ErrInvalidTechnicianID = errors.New("invalid_technician_id")
	ErrEmptyUpdate         = errors.New("invalid_update")
	ErrNotFound            = errors.New("not_found")
)
