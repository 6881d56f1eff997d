package service

import (
	"context"
	"errors"

	"github.com/rriojas/TecRHPermisos-sub000/internal/dto"
	"github.com/rriojas/TecRHPermisos-sub000/internal/model"
	"github.com/rriojas/TecRHPermisos-sub000/internal/repository"

	"gorm.io/gorm"
)

type PermisoService interface {
	// CrearPermiso validates the candidate dates against the active corte and
	// persists a pending permiso. A non-nil *Confirmacion means nothing was
	// persisted: the caller must repeat the call with Confirmado=true.
	CrearPermiso(ctx context.Context, actor Actor, req dto.CrearPermisoRequest) (*dto.PermisoResponse, *Confirmacion, error)
	// EditarPermiso mutates a pending permiso while its corte is active. The
	// confirmation round-trip is NOT offered here: an out-of-range fecha_fin
	// is a hard field error.
	EditarPermiso(ctx context.Context, actor Actor, id uint, req dto.EditarPermisoRequest) (*dto.PermisoResponse, error)
	// EliminarPermiso is the logical delete. Unlike edits it stays available
	// after review: removing a finalized permiso from payroll consideration
	// is a legitimate correction path.
	EliminarPermiso(ctx context.Context, actor Actor, id uint) error
	// Revisar finalizes a pending permiso; see revision.go.
	Revisar(ctx context.Context, actor Actor, id uint, conGoce bool) (*dto.PermisoResponse, error)
	ObtenerPermiso(ctx context.Context, actor Actor, id uint) (*dto.PermisoResponse, error)
	// ObtenerParaImpresion returns the underlying row (associations loaded)
	// for PDF rendering, gated by the same access policy as ObtenerPermiso.
	ObtenerParaImpresion(ctx context.Context, actor Actor, id uint) (*model.Permiso, error)
	ListarPermisos(ctx context.Context, actor Actor, filtro dto.PermisoFiltro) ([]dto.PermisoResponse, error)
	// ActualizarEvidencia records (or clears, with nil) the opaque evidence
	// path; file contents are an upload-layer concern.
	ActualizarEvidencia(ctx context.Context, actor Actor, id uint, ruta *string) (*dto.PermisoResponse, error)
}

type permisoService struct {
	permisos repository.PermisoRepository
	cortes   repository.CorteRepository
	tipos    repository.TipoPermisoRepository
	usuarios repository.UsuarioRepository
}

func NewPermisoService(
	permisos repository.PermisoRepository,
	cortes repository.CorteRepository,
	tipos repository.TipoPermisoRepository,
	usuarios repository.UsuarioRepository,
) PermisoService {
	return &permisoService{permisos: permisos, cortes: cortes, tipos: tipos, usuarios: usuarios}
}

// ── CrearPermiso ──────────────────────────────────────────────────────────────
// Active-corte lookup, validation and insert run in one transaction under the
// cortes advisory lock, so a corte rollover cannot slip between the read and
// the write.

func (s *permisoService) CrearPermiso(ctx context.Context, actor Actor, req dto.CrearPermisoRequest) (*dto.PermisoResponse, *Confirmacion, error) {
	// Empleados and autorizadores always request for themselves; the payload
	// value is honored only for RH/administrador.
	solicitanteID := actor.UsuarioID
	if actor.EsGestor() && req.SolicitanteID != 0 {
		solicitanteID = req.SolicitanteID
	}
	solicitante, err := s.usuarios.FindByID(ctx, solicitanteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errCampo("solicitante_id", "el solicitante no existe")
		}
		return nil, nil, err
	}

	tipo, err := s.tipos.FindByID(ctx, req.TipoPermisoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errCampo("tipo_permiso_id", "el tipo de permiso no existe")
		}
		return nil, nil, err
	}

	fechaInicio, err := parseFechaCampo("fecha_inicio", req.FechaInicio)
	if err != nil {
		return nil, nil, err
	}
	fechaFin, err := parseFechaOpcional("fecha_fin", req.FechaFin)
	if err != nil {
		return nil, nil, err
	}

	var (
		permiso *model.Permiso
		conf    *Confirmacion
	)
	txErr := runTx(ctx, s.permisos.DB(), func(tx *gorm.DB) error {
		if err := lockCortes(tx); err != nil {
			return err
		}
		corte, err := s.cortes.FindActivoTx(tx)
		if err != nil {
			return err
		}
		if corte == nil {
			return ErrSinCorteActivo
		}

		v, c, err := ValidarFechas(tipo, &fechaInicio, fechaFin, corte, req.Confirmado)
		if err != nil {
			return err
		}
		if c != nil {
			conf = c // deferred decision: nothing persists
			return nil
		}

		permiso = &model.Permiso{
			TipoPermisoID: tipo.ID,
			TipoPermiso:   tipo,
			SolicitanteID: solicitante.ID,
			Solicitante:   solicitante,
			CreadoPorID:   actor.UsuarioID,
			CorteID:       corte.ID,
			Corte:         corte,
			FechaInicio:   v.FechaInicio,
			FechaFin:      v.FechaFin,
			Dias:          v.Dias,
			Motivo:        req.Motivo,
			Evidencia:     req.Evidencia,
			Revisado:      false,
			Activo:        true,
		}
		return s.permisos.CreateTx(tx, permiso)
	})
	if txErr != nil {
		return nil, nil, txErr
	}
	if conf != nil {
		return nil, conf, nil
	}
	resp := s.armarRespuesta(actor, permiso, solicitante.AreaID)
	return resp, nil, nil
}

// ── EditarPermiso ─────────────────────────────────────────────────────────────

func (s *permisoService) EditarPermiso(ctx context.Context, actor Actor, id uint, req dto.EditarPermisoRequest) (*dto.PermisoResponse, error) {
	permiso, err := s.cargarActivo(ctx, id)
	if err != nil {
		return nil, err
	}
	if permiso.Revisado {
		return nil, ErrYaRevisado
	}

	corte, err := s.cortes.FindByID(ctx, permiso.CorteID)
	if err != nil {
		return nil, err
	}
	if !corte.Activo {
		return nil, ErrCorteCerrado
	}

	// Autorizadores never edit — they review. RH/administrador take the
	// higher precedence and pass through.
	if actor.Autorizador && !actor.EsGestor() {
		return nil, ErrAccesoDenegado
	}
	areaSolicitante, err := s.areaSolicitante(ctx, permiso)
	if err != nil {
		return nil, err
	}
	if !PuedeAcceder(actor, permiso, areaSolicitante) {
		return nil, ErrAccesoDenegado
	}

	tipo, err := s.tipos.FindByID(ctx, req.TipoPermisoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCampo("tipo_permiso_id", "el tipo de permiso no existe")
		}
		return nil, err
	}
	fechaInicio, err := parseFechaCampo("fecha_inicio", req.FechaInicio)
	if err != nil {
		return nil, err
	}
	fechaFin, err := parseFechaOpcional("fecha_fin", req.FechaFin)
	if err != nil {
		return nil, err
	}

	v, conf, err := ValidarFechas(tipo, &fechaInicio, fechaFin, corte, false)
	if err != nil {
		return nil, err
	}
	if conf != nil {
		// No second phase on edit: out-of-range fecha_fin is rejected outright.
		return nil, errCampo("fecha_fin", conf.Mensaje)
	}

	permiso.TipoPermisoID = tipo.ID
	permiso.TipoPermiso = tipo
	permiso.FechaInicio = v.FechaInicio
	permiso.FechaFin = v.FechaFin
	permiso.Dias = v.Dias
	permiso.Motivo = req.Motivo
	if req.Evidencia != nil {
		permiso.Evidencia = req.Evidencia
	}
	if err := s.permisos.Update(ctx, permiso); err != nil {
		return nil, err
	}
	return s.armarRespuesta(actor, permiso, areaSolicitante), nil
}

// ── EliminarPermiso ───────────────────────────────────────────────────────────
// Logical delete; intentionally NOT locked by revisado (contrast with edit).

func (s *permisoService) EliminarPermiso(ctx context.Context, actor Actor, id uint) error {
	permiso, err := s.cargarActivo(ctx, id)
	if err != nil {
		return err
	}
	areaSolicitante, err := s.areaSolicitante(ctx, permiso)
	if err != nil {
		return err
	}
	if !PuedeAcceder(actor, permiso, areaSolicitante) {
		return ErrAccesoDenegado
	}
	permiso.Activo = false
	return s.permisos.Update(ctx, permiso)
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *permisoService) ObtenerPermiso(ctx context.Context, actor Actor, id uint) (*dto.PermisoResponse, error) {
	permiso, err := s.cargarActivo(ctx, id)
	if err != nil {
		return nil, err
	}
	areaSolicitante, err := s.areaSolicitante(ctx, permiso)
	if err != nil {
		return nil, err
	}
	if !PuedeAcceder(actor, permiso, areaSolicitante) {
		return nil, ErrAccesoDenegado
	}
	return s.armarRespuesta(actor, permiso, areaSolicitante), nil
}

func (s *permisoService) ObtenerParaImpresion(ctx context.Context, actor Actor, id uint) (*model.Permiso, error) {
	permiso, err := s.cargarActivo(ctx, id)
	if err != nil {
		return nil, err
	}
	areaSolicitante, err := s.areaSolicitante(ctx, permiso)
	if err != nil {
		return nil, err
	}
	if !PuedeAcceder(actor, permiso, areaSolicitante) {
		return nil, ErrAccesoDenegado
	}
	return permiso, nil
}

func (s *permisoService) ListarPermisos(ctx context.Context, actor Actor, filtro dto.PermisoFiltro) ([]dto.PermisoResponse, error) {
	// Role scoping narrows, never widens, whatever the caller filtered.
	var areaID *uint
	switch {
	case actor.EsGestor():
		// unrestricted
	case actor.Autorizador:
		areaID = &actor.AreaID
	default:
		filtro.SolicitanteID = &actor.UsuarioID
	}

	permisos, err := s.permisos.List(ctx, filtro, areaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PermisoResponse, len(permisos))
	for i := range permisos {
		p := &permisos[i]
		area := uint(0)
		if p.Solicitante != nil {
			area = p.Solicitante.AreaID
		}
		resp[i] = *s.armarRespuesta(actor, p, area)
	}
	return resp, nil
}

// ── ActualizarEvidencia ───────────────────────────────────────────────────────
// Same locks as the edit flow: evidence belongs to the editable surface.

func (s *permisoService) ActualizarEvidencia(ctx context.Context, actor Actor, id uint, ruta *string) (*dto.PermisoResponse, error) {
	permiso, err := s.cargarActivo(ctx, id)
	if err != nil {
		return nil, err
	}
	if permiso.Revisado {
		return nil, ErrYaRevisado
	}
	corte, err := s.cortes.FindByID(ctx, permiso.CorteID)
	if err != nil {
		return nil, err
	}
	if !corte.Activo {
		return nil, ErrCorteCerrado
	}
	if actor.Autorizador && !actor.EsGestor() {
		return nil, ErrAccesoDenegado
	}
	areaSolicitante, err := s.areaSolicitante(ctx, permiso)
	if err != nil {
		return nil, err
	}
	if !PuedeAcceder(actor, permiso, areaSolicitante) {
		return nil, ErrAccesoDenegado
	}
	permiso.Evidencia = ruta
	if err := s.permisos.Update(ctx, permiso); err != nil {
		return nil, err
	}
	return s.armarRespuesta(actor, permiso, areaSolicitante), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// cargarActivo loads a permiso treating logical deletion as absence.
func (s *permisoService) cargarActivo(ctx context.Context, id uint) (*model.Permiso, error) {
	permiso, err := s.permisos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if !permiso.Activo {
		return nil, ErrNoEncontrado
	}
	return permiso, nil
}

// areaSolicitante resolves the requester's area via their profile; it is
// deliberately never stored on the permiso row.
func (s *permisoService) areaSolicitante(ctx context.Context, p *model.Permiso) (uint, error) {
	if p.Solicitante != nil {
		return p.Solicitante.AreaID, nil
	}
	return s.usuarios.FindAreaID(ctx, p.SolicitanteID)
}

func (s *permisoService) armarRespuesta(actor Actor, p *model.Permiso, areaSolicitante uint) *dto.PermisoResponse {
	resp := &dto.PermisoResponse{
		ID:            p.ID,
		TipoPermisoID: p.TipoPermisoID,
		SolicitanteID: p.SolicitanteID,
		CorteID:       p.CorteID,
		FechaInicio:   p.FechaInicio.Format(formatoInstante),
		Dias:          p.Dias,
		Motivo:        p.Motivo,
		Evidencia:     p.Evidencia,
		ConGoce:       p.ConGoce,
		Revisado:      p.Revisado,
		AutorizadorID: p.AutorizadorID,
		Editable:      PuedeEditar(actor, p, areaSolicitante, p.Corte),
	}
	if p.TipoPermiso != nil {
		resp.TipoPermiso = p.TipoPermiso.Nombre
	}
	if p.Solicitante != nil {
		resp.Solicitante = p.Solicitante.Nombre
	}
	if p.FechaFin != nil {
		f := p.FechaFin.Format(formatoFecha)
		resp.FechaFin = &f
	}
	if p.AutorizadoAt != nil {
		a := p.AutorizadoAt.Format(formatoInstante)
		resp.AutorizadoAt = &a
	}
	return resp
}
