package service

import (
	"context"
	"time"

	"github.com/rriojas/TecRHPermisos-sub000/internal/dto"
)

// Revisar drives the one-way Pending → Revisado transition.
//
// The reviewer is always the acting autorizador — never inferred or
// reassigned. A permiso that is already revisado reports ErrYaRevisado with
// zero mutation, so the transition is effectively terminal.
func (s *permisoService) Revisar(ctx context.Context, actor Actor, id uint, conGoce bool) (*dto.PermisoResponse, error) {
	permiso, err := s.cargarActivo(ctx, id)
	if err != nil {
		return nil, err
	}
	// Checked before the policy gate so a double review is reported as such
	// rather than as a generic denial.
	if permiso.Revisado {
		return nil, ErrYaRevisado
	}

	corte, err := s.cortes.FindByID(ctx, permiso.CorteID)
	if err != nil {
		return nil, err
	}
	areaSolicitante, err := s.areaSolicitante(ctx, permiso)
	if err != nil {
		return nil, err
	}
	if !PuedeAutorizar(actor, permiso, areaSolicitante, corte) {
		return nil, ErrAccesoDenegado
	}

	ahora := time.Now()
	permiso.Revisado = true
	permiso.AutorizadorID = &actor.UsuarioID
	permiso.AutorizadoAt = &ahora
	permiso.ConGoce = conGoce
	if err := s.permisos.Update(ctx, permiso); err != nil {
		return nil, err
	}
	return s.armarRespuesta(actor, permiso, areaSolicitante), nil
}
