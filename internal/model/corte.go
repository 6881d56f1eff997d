package model

import "time"

// Corte is a payroll cutoff period. Permisos are always scoped to the corte
// that was active when they were created.
//
// Timeline invariants (enforced by service.CorteService):
//   - At most one corte has Activo=true; it is the highest-id active one.
//   - The corte with the globally highest id is always the "marcador": both
//     dates NULL and Activo=false, a placeholder for the next period.
type Corte struct {
	ID          uint       `gorm:"primaryKey"`
	FechaInicio *time.Time `gorm:"type:timestamptz"`
	FechaFin    *time.Time `gorm:"type:timestamptz"`
	Activo      bool       `gorm:"not null;default:false;index"`

	CreadoPorID     uint `gorm:"not null"`
	ModificadoPorID *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EsMarcador reports whether this corte is the dateless trailing placeholder.
func (c *Corte) EsMarcador() bool {
	return c.FechaInicio == nil && c.FechaFin == nil && !c.Activo
}
