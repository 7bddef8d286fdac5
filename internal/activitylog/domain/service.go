package domain

import (
	"context"
	"errors"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type Entry struct {
	Action     string
	EntityType string
	EntityID   string
	Message    string
	Metadata   map[string]any
}

type Service interface {
	// Record appends an entry attributed to the actor on the context.
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Log, error)
}

var (
	ErrInvalidAction = errors.New("invalid_action")
	ErrInvalidLimit  = errors.New("invalid_limit")
)
