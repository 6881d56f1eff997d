package dto

// Dates travel as "2006-01-02" (or "2006-01-02T15:04" for instants); parsing
// and range rules live in the service layer so field errors come back typed.

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCorteRequest struct {
	FechaInicio string `json:"fecha_inicio" validate:"required"`
	FechaFin    string `json:"fecha_fin"    validate:"required"`
}

type ActualizarCorteRequest struct {
	FechaInicio string `json:"fecha_inicio" validate:"required"`
	FechaFin    string `json:"fecha_fin"    validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CorteResponse struct {
	ID          uint    `json:"id"`
	FechaInicio *string `json:"fecha_inicio"`
	FechaFin    *string `json:"fecha_fin"`
	Activo      bool    `json:"activo"`
	EsMarcador  bool    `json:"es_marcador"`
}
