package domain

import "time"

type Vehicle struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Registration string    `gorm:"size:20;not null" json:"registration"`
	Make         *string   `json:"make"`
	Model        *string   `json:"model"`
	VIN          *string   `gorm:"column:vin;size:50" json:"vin"`
	VehicleType  *string   `json:"vehicle_type"`
	Technician   *string   `json:"technician"`
	TechnicianID *string   `gorm:"type:uuid;index" json:"technician_id"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Vehicle) TableName() string { return "fleet" }
