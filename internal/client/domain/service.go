package domain

import (
	"context"
	"errors"
)

type CreateClientRequest struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
	Address     *string
	CompanyName *string
	Notes       *string
	IsActive    *bool
}

// UpdateClientRequest is a partial patch; nil fields are left untouched.
type UpdateClientRequest struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	Address     *string
	CompanyName *string
	Notes       *string
	IsActive    *bool
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (Client, error)
	// DisplayName returns "" when the client does not exist.
	DisplayName(ctx context.Context, id string) (string, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidFirstName = errors.New("invalid_first_name")
	ErrInvalidLastName  = errors.New("invalid_last_name")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrEmptyUpdate      = errors.New("invalid_update")
	ErrNotFound         = errors.New("not_found")
)
