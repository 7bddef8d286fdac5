package domain

import (
	"time"

	"gorm.io/datatypes"
)

type ActorType string

const (
	ActorTypeUser   ActorType = "user"
	ActorTypeMobile ActorType = "mobile"
	ActorTypeSystem ActorType = "system"
)

// Log is one row of the operator-facing activity feed.
type Log struct {
	ID         string            `gorm:"primaryKey;type:uuid" json:"id"`
	ActorType  string            `gorm:"not null" json:"actor_type"`
	ActorID    *string           `json:"actor_id,omitempty"`
	Action     string            `gorm:"not null" json:"action"`
	EntityType string            `gorm:"not null" json:"entity_type"`
	EntityID   *string           `json:"entity_id,omitempty"`
	Message    string            `json:"message"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;index" json:"created_at"`
}

func (Log) TableName() string { return "logs" }
