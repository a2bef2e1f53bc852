package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Clients are landlords with portal access; agents manage
// properties on behalf of clients.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RoleAgent      = "agent"
	RoleClient     = "client"
)

type User struct {
	ID                 string    `gorm:"primaryKey" json:"id"`
	Username           string    `gorm:"unique;not null" json:"username"`
	Password           string    `gorm:"not null" json:"-"`
	FullName           string    `gorm:"column:full_name" json:"full_name"`
	Phone              string    `json:"phone"`
	IDNumber           string    `gorm:"column:id_number" json:"id_number"`
	Role               string    `gorm:"not null;default:admin" json:"role"`
	MustChangePassword int       `gorm:"not null;default:1" json:"must_change_password"`
	PropertyLimit      int       `gorm:"default:0" json:"property_limit"`
	CreatedAt          time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user may access admin-only routes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
