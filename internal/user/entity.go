package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmlima/quizhub/internal/policy"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username     string      `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email        string      `gorm:"type:varchar(255)" json:"email"`
	FirstName    string      `gorm:"type:varchar(150)" json:"first_name,omitempty"`
	LastName     string      `gorm:"type:varchar(150)" json:"last_name,omitempty"`
	PasswordHash string      `gorm:"type:varchar(255);not null" json:"-"`
	Role         policy.Role `gorm:"type:varchar(10);not null;default:'USER'" json:"role"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}
