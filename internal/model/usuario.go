package model

import (
	"time"
)

// Usuario stores system users with flag-based roles.
// Roles are non-exclusive: a user can be empleado and autorizador at once.
// Policy precedence is resolved in service/acceso.go, never here.
type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Nombre       string `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`

	AreaID uint  `gorm:"index;not null"`
	Area   *Area `gorm:"foreignKey:AreaID"`

	EsEmpleado      bool `gorm:"not null;default:true"`
	EsAutorizador   bool `gorm:"not null;default:false"`
	EsRH            bool `gorm:"not null;default:false"`
	EsAdministrador bool `gorm:"not null;default:false"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
