package model

import "time"

// Area is an organizational unit. Autorizadores only review permisos of
// solicitantes belonging to their own area.
type Area struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"uniqueIndex;not null"`
	Activo    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
