package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rriojas/TecRHPermisos-sub000/internal/dto"
	"github.com/rriojas/TecRHPermisos-sub000/internal/model"
	"github.com/rriojas/TecRHPermisos-sub000/internal/repository"

	"gorm.io/gorm"
)

type CorteService interface {
	// CorteActivo returns the highest-id active corte; ErrSinCorteActivo when
	// none exists.
	CorteActivo(ctx context.Context) (*model.Corte, error)
	CrearCorte(ctx context.Context, actor Actor, req dto.CrearCorteRequest) (*model.Corte, error)
	ListarCortes(ctx context.Context) ([]model.Corte, error)
	ActualizarCorte(ctx context.Context, actor Actor, id uint, req dto.ActualizarCorteRequest) (*model.Corte, error)
	EliminarCorte(ctx context.Context, actor Actor, id uint) error
}

type corteService struct {
	cortes   repository.CorteRepository
	permisos repository.PermisoRepository
}

func NewCorteService(cortes repository.CorteRepository, permisos repository.PermisoRepository) CorteService {
	return &corteService{cortes: cortes, permisos: permisos}
}

func (s *corteService) CorteActivo(ctx context.Context) (*model.Corte, error) {
	corte, err := s.cortes.FindActivo(ctx)
	if err != nil {
		return nil, err
	}
	if corte == nil {
		return nil, ErrSinCorteActivo
	}
	return corte, nil
}

// ── CrearCorte ────────────────────────────────────────────────────────────────
// Rollover in one transaction under the cortes advisory lock:
//   1. the previous active corte is deactivated
//   2. the trailing marcador (dateless, inactive, highest id) becomes the new
//      concrete active corte
//   3. a fresh marcador is appended, taking over the highest id
// After every successful call there is exactly one active corte and exactly
// one trailing marcador.

func (s *corteService) CrearCorte(ctx context.Context, actor Actor, req dto.CrearCorteRequest) (*model.Corte, error) {
	inicio, err := parseFechaCampo("fecha_inicio", req.FechaInicio)
	if err != nil {
		return nil, err
	}
	fin, err := parseFechaCampo("fecha_fin", req.FechaFin)
	if err != nil {
		return nil, err
	}
	if soloFecha(inicio).After(soloFecha(fin)) {
		return nil, errCampo("fecha_inicio", "la fecha de inicio no puede ser posterior a la fecha de fin")
	}

	var nuevo *model.Corte
	txErr := runTx(ctx, s.cortes.DB(), func(tx *gorm.DB) error {
		if err := lockCortes(tx); err != nil {
			return err
		}

		// "Latest" is by highest id, never by fecha_fin (the marcador has none).
		ultimo, err := s.cortes.FindUltimoConcretoTx(tx)
		if err != nil {
			return err
		}
		if ultimo != nil && !soloFecha(inicio).After(soloFecha(*ultimo.FechaFin)) {
			return errCampo("fecha_inicio", fmt.Sprintf(
				"la fecha de inicio debe ser posterior al fin del corte anterior (%s)",
				ultimo.FechaFin.Format("02/01/2006")))
		}

		anterior, err := s.cortes.FindActivoTx(tx)
		if err != nil {
			return err
		}
		if anterior != nil {
			anterior.Activo = false
			anterior.ModificadoPorID = &actor.UsuarioID
			if err := s.cortes.UpdateTx(tx, anterior); err != nil {
				return err
			}
		}

		marcador, err := s.cortes.FindMarcadorTx(tx)
		if err != nil {
			return err
		}
		if marcador != nil {
			marcador.FechaInicio = &inicio
			marcador.FechaFin = &fin
			marcador.Activo = true
			marcador.ModificadoPorID = &actor.UsuarioID
			if err := s.cortes.UpdateTx(tx, marcador); err != nil {
				return err
			}
			nuevo = marcador
		} else {
			// Bootstrap: first corte ever, no marcador to convert.
			nuevo = &model.Corte{
				FechaInicio: &inicio,
				FechaFin:    &fin,
				Activo:      true,
				CreadoPorID: actor.UsuarioID,
			}
			if err := s.cortes.CreateTx(tx, nuevo); err != nil {
				return err
			}
		}

		return s.cortes.CreateTx(tx, &model.Corte{
			Activo:      false,
			CreadoPorID: actor.UsuarioID,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return nuevo, nil
}

func (s *corteService) ListarCortes(ctx context.Context) ([]model.Corte, error) {
	return s.cortes.List(ctx)
}

// ActualizarCorte is the administrative date correction on an old corte.
// It never reopens the corte: Activo is left untouched.
func (s *corteService) ActualizarCorte(ctx context.Context, actor Actor, id uint, req dto.ActualizarCorteRequest) (*model.Corte, error) {
	corte, err := s.cortes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	inicio, err := parseFechaCampo("fecha_inicio", req.FechaInicio)
	if err != nil {
		return nil, err
	}
	fin, err := parseFechaCampo("fecha_fin", req.FechaFin)
	if err != nil {
		return nil, err
	}
	if soloFecha(inicio).After(soloFecha(fin)) {
		return nil, errCampo("fecha_inicio", "la fecha de inicio no puede ser posterior a la fecha de fin")
	}

	corte.FechaInicio = &inicio
	corte.FechaFin = &fin
	corte.ModificadoPorID = &actor.UsuarioID
	if err := s.cortes.Update(ctx, corte); err != nil {
		return nil, err
	}
	return corte, nil
}

// EliminarCorte hard-deletes a corte. It refuses the active corte and any
// corte with permisos attached, but deliberately does not attempt marcador
// repair — this is an administrative escape hatch, not part of the rollover
// cycle.
func (s *corteService) EliminarCorte(ctx context.Context, actor Actor, id uint) error {
	if !actor.Administrador {
		return ErrAccesoDenegado
	}
	corte, err := s.cortes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}
	if corte.Activo {
		return errCampo("id", "no se puede eliminar el corte activo")
	}
	n, err := s.permisos.CountByCorte(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errCampo("id", "el corte tiene permisos asociados")
	}
	return s.cortes.Delete(ctx, id)
}
