package model

import "time"

// Claves of the built-in permiso types, seeded by cmd/seedadmin.
// "retardo" is special-cased by validation: it is a single-instant event,
// no fecha_fin and no day count.
const (
	ClaveFalta         = "falta"
	ClaveRetardo       = "retardo"
	ClaveCambioHorario = "cambio_horario"
	ClaveCambioTurno   = "cambio_turno"
)

// TipoPermiso is the catalog of leave request kinds.
type TipoPermiso struct {
	ID        uint   `gorm:"primaryKey"`
	Clave     string `gorm:"uniqueIndex;not null;type:varchar(30)"`
	Nombre    string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EsRetardo reports whether this type is the single-instant tardiness kind.
func (t *TipoPermiso) EsRetardo() bool { return t.Clave == ClaveRetardo }
