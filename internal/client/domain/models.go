package domain

import (
	"strings"
	"time"
)

type Client struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	LastName    string    `gorm:"not null" json:"last_name"`
	Email       string    `gorm:"not null" json:"email"`
	PhoneNumber *string   `json:"phone_number"`
	Address     *string   `json:"address"`
	CompanyName *string   `json:"company_name"`
	Notes       *string   `json:"notes"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

// DisplayName is the name printed on quotes: the company when set, otherwise
// the contact person.
func (c Client) DisplayName() string {
	if c.CompanyName != nil {
		if name := strings.TrimSpace(*c.CompanyName); name != "" {
			return name
		}
	}
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}
