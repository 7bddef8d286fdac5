package domain

import "time"

const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleTechnician = "technician"
)

// Staff is a person who can be assigned to jobs. HR fields are managed
// outside this service.
type Staff struct {
	ID                string     `gorm:"primaryKey;type:uuid" json:"id"`
	AuthUserID        *string    `gorm:"type:uuid;uniqueIndex" json:"auth_user_id"`
	FirstName         string     `gorm:"not null" json:"first_name"`
	Surname           string     `gorm:"not null" json:"surname"`
	Email             *string    `json:"email"`
	PhoneNumber       *string    `json:"phone_number"`
	Role              string     `gorm:"not null" json:"role"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
	LocationUpdatedAt *time.Time `json:"location_updated_at"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updated_at"`
}

func (Staff) TableName() string { return "staff" }

func (s Staff) FullName() string {
	return s.FirstName + " " + s.Surname
}

// Location is a staff member's last reported position.
type Location struct {
	ID                string     `json:"id"`
	FirstName         string     `json:"first_name"`
	Surname           string     `json:"surname"`
	Role              string     `json:"role"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
	LocationUpdatedAt *time.Time `json:"location_updated_at"`
}
