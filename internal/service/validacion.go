package service

import (
	"fmt"
	"time"

	"github.com/rriojas/TecRHPermisos-sub000/internal/model"
)

// FechasValidadas is the accepted outcome of ValidarFechas.
// Dias is nil for retardos (single-instant events).
type FechasValidadas struct {
	FechaInicio time.Time
	FechaFin    *time.Time
	Dias        *int
}

// ValidarFechas checks candidate permiso dates against the active corte.
// Pure function; rules short-circuit in this order:
//
//  1. fecha_inicio presente
//  2. fecha_fin presente salvo retardo
//  3. fecha_inicio <= fecha_fin (a nivel de día)
//  4. fecha_inicio >= inicio del corte — fatal, nunca confirmable
//  5. fecha_fin > fin del corte → Confirmacion salvo confirmado=true
//
// A non-nil *Confirmacion means the dates were neither accepted nor rejected:
// the caller must round-trip and retry with confirmado=true.
func ValidarFechas(tipo *model.TipoPermiso, fechaInicio, fechaFin *time.Time, corte *model.Corte, confirmado bool) (*FechasValidadas, *Confirmacion, error) {
	if fechaInicio == nil {
		return nil, nil, errCampo("fecha_inicio", "la fecha de inicio es obligatoria")
	}
	if fechaFin == nil && !tipo.EsRetardo() {
		return nil, nil, errCampo("fecha_fin", "la fecha de fin es obligatoria para este tipo de permiso")
	}
	if fechaFin != nil && soloFecha(*fechaInicio).After(soloFecha(*fechaFin)) {
		return nil, nil, errCampo("fecha_inicio", "la fecha de inicio no puede ser posterior a la fecha de fin")
	}
	if corte.FechaInicio != nil && soloFecha(*fechaInicio).Before(soloFecha(*corte.FechaInicio)) {
		return nil, nil, errCampoFatal("fecha_inicio",
			fmt.Sprintf("la fecha de inicio es anterior al inicio del corte actual (%s)",
				corte.FechaInicio.Format("02/01/2006")))
	}
	if corte.FechaFin != nil && fechaFin != nil && soloFecha(*fechaFin).After(soloFecha(*corte.FechaFin)) && !confirmado {
		return nil, &Confirmacion{Mensaje: fmt.Sprintf(
			"la fecha de fin excede el fin del corte actual (%s); confirme para continuar",
			corte.FechaFin.Format("02/01/2006"))}, nil
	}

	v := &FechasValidadas{FechaInicio: *fechaInicio}
	if !tipo.EsRetardo() {
		v.FechaFin = fechaFin
		dias := diasEntre(*fechaInicio, *fechaFin) + 1
		v.Dias = &dias
	}
	return v, nil, nil
}

// soloFecha truncates an instant to its calendar day. Range rules compare
// days; a retardo keeps its time-of-day but is still bounded by day.
func soloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func diasEntre(a, b time.Time) int {
	return int(soloFecha(b).Sub(soloFecha(a)).Hours() / 24)
}

// Supported wire formats for permiso/corte dates.
const (
	formatoFecha    = "2006-01-02"
	formatoInstante = "2006-01-02T15:04"
)

// parseFecha accepts a calendar day or a day+time instant (retardos record
// the minute the employee arrived).
func parseFecha(s string) (time.Time, error) {
	if t, err := time.Parse(formatoFecha, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(formatoInstante, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// parseFechaCampo wraps parseFecha into a field-level validation error.
func parseFechaCampo(campo, s string) (time.Time, error) {
	t, err := parseFecha(s)
	if err != nil {
		return time.Time{}, errCampo(campo, "formato de fecha inválido (se espera AAAA-MM-DD)")
	}
	return t, nil
}

// parseFechaOpcional parses a nil-able wire date.
func parseFechaOpcional(campo string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseFechaCampo(campo, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
