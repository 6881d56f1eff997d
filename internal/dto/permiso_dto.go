package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPermisoRequest struct {
	TipoPermisoID uint `json:"tipo_permiso_id" validate:"required,min=1"`
	// SolicitanteID is honored only for RH/administrador actors; everyone else
	// always requests for themselves regardless of this value.
	SolicitanteID uint    `json:"solicitante_id"`
	FechaInicio   string  `json:"fecha_inicio" validate:"required"`
	FechaFin      *string `json:"fecha_fin"`
	Motivo        string  `json:"motivo" validate:"required,min=3"`
	Evidencia     *string `json:"evidencia"`
	// Confirmado acknowledges a previously returned confirmation outcome
	// (fecha_fin past the end of the active corte).
	Confirmado bool `json:"confirmado"`
}

type EditarPermisoRequest struct {
	TipoPermisoID uint    `json:"tipo_permiso_id" validate:"required,min=1"`
	FechaInicio   string  `json:"fecha_inicio" validate:"required"`
	FechaFin      *string `json:"fecha_fin"`
	Motivo        string  `json:"motivo" validate:"required,min=3"`
	Evidencia     *string `json:"evidencia"`
}

type RevisarPermisoRequest struct {
	ConGoce *bool `json:"con_goce" validate:"required"`
}

// PermisoFiltro narrows ListarPermisos; role scoping is applied on top by the
// service and cannot be widened from here.
type PermisoFiltro struct {
	CorteID       *uint
	SolicitanteID *uint
	Revisado      *bool
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PermisoResponse struct {
	ID            uint    `json:"id"`
	TipoPermisoID uint    `json:"tipo_permiso_id"`
	TipoPermiso   string  `json:"tipo_permiso,omitempty"`
	SolicitanteID uint    `json:"solicitante_id"`
	Solicitante   string  `json:"solicitante,omitempty"`
	CorteID       uint    `json:"corte_id"`
	FechaInicio   string  `json:"fecha_inicio"`
	FechaFin      *string `json:"fecha_fin"`
	Dias          *int    `json:"dias"`
	Motivo        string  `json:"motivo"`
	Evidencia     *string `json:"evidencia"`
	ConGoce       bool    `json:"con_goce"`
	Revisado      bool    `json:"revisado"`
	AutorizadorID *uint   `json:"autorizador_id"`
	AutorizadoAt  *string `json:"autorizado_at"`
	Editable      bool    `json:"editable"`
}
