package service

import (
	"github.com/rriojas/TecRHPermisos-sub000/internal/model"
)

// Actor is the authenticated caller as supplied by the identity layer. The
// core never authenticates and never re-derives roles from session state:
// every policy decision is a pure function over this value.
type Actor struct {
	UsuarioID uint
	AreaID    uint

	Empleado      bool
	Autorizador   bool
	RH            bool
	Administrador bool
}

// EsGestor groups the two roles with unrestricted visibility. Precedence:
// RH/administrador > autorizador > empleado.
func (a Actor) EsGestor() bool { return a.RH || a.Administrador }

// ActorDeUsuario builds the policy input from a stored user row.
func ActorDeUsuario(u *model.Usuario) Actor {
	return Actor{
		UsuarioID:     u.ID,
		AreaID:        u.AreaID,
		Empleado:      u.EsEmpleado,
		Autorizador:   u.EsAutorizador,
		RH:            u.EsRH,
		Administrador: u.EsAdministrador,
	}
}

// PuedeAcceder reports whether actor may read (or logically delete) the
// permiso. areaSolicitante is resolved through the requester's profile, not
// stored on the permiso.
func PuedeAcceder(actor Actor, p *model.Permiso, areaSolicitante uint) bool {
	if actor.EsGestor() {
		return true
	}
	if actor.UsuarioID == p.SolicitanteID {
		return true
	}
	return actor.Autorizador && actor.AreaID == areaSolicitante
}

// PuedeAutorizar reports whether actor may finalize the permiso: only an
// autorizador of the solicitante's area, only while the permiso is pending
// and its corte is still active. RH/administrador do NOT authorize.
func PuedeAutorizar(actor Actor, p *model.Permiso, areaSolicitante uint, corte *model.Corte) bool {
	if !actor.Autorizador {
		return false
	}
	if actor.AreaID != areaSolicitante {
		return false
	}
	if p.Revisado {
		return false
	}
	return corte != nil && corte.Activo
}

// PuedeEditar is stricter than PuedeAcceder: the reviewed-lock and the
// owning-corte lock bind every role, RH/administrador included, and pure
// autorizadores are excluded from the edit flow entirely (they review
// instead).
func PuedeEditar(actor Actor, p *model.Permiso, areaSolicitante uint, corte *model.Corte) bool {
	if p.Revisado {
		return false
	}
	if corte == nil || !corte.Activo {
		return false
	}
	if actor.Autorizador && !actor.EsGestor() {
		return false
	}
	return PuedeAcceder(actor, p, areaSolicitante)
}
