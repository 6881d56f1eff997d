package model

import "time"

// Permiso is an employee leave/absence request reconciled against the corte
// that was active at creation time.
//
// Lifecycle: created pending (Revisado=false, Activo=true) → optionally edited
// while its corte stays active → finalized once by an autorizador (Revisado
// becomes true, terminal). Activo=false marks logical deletion; deleted rows
// are excluded from every listing and policy check.
type Permiso struct {
	ID uint `gorm:"primaryKey"`

	TipoPermisoID uint         `gorm:"not null;index"`
	TipoPermiso   *TipoPermiso `gorm:"foreignKey:TipoPermisoID"`

	SolicitanteID uint     `gorm:"not null;index"`
	Solicitante   *Usuario `gorm:"foreignKey:SolicitanteID"`
	CreadoPorID   uint     `gorm:"not null"`

	CorteID uint   `gorm:"not null;index"`
	Corte   *Corte `gorm:"foreignKey:CorteID"`

	FechaInicio time.Time  `gorm:"type:timestamptz;not null"`
	FechaFin    *time.Time `gorm:"type:timestamptz"`
	// Dias = floor(fecha_fin - fecha_inicio) + 1; NULL for retardos.
	Dias *int

	Motivo string `gorm:"type:text;not null"`
	// Evidencia is an opaque relative path recorded as-is; contents are an
	// upload-layer concern.
	Evidencia *string

	ConGoce       bool `gorm:"not null;default:false"`
	Revisado      bool `gorm:"not null;default:false;index"`
	AutorizadorID *uint
	AutorizadoAt  *time.Time

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
