package repository

import (
	"context"

	"github.com/rriojas/TecRHPermisos-sub000/internal/dto"
	"github.com/rriojas/TecRHPermisos-sub000/internal/model"

	"gorm.io/gorm"
)

type PermisoRepository interface {
	DB() *gorm.DB

	CreateTx(tx *gorm.DB, p *model.Permiso) error
	FindByID(ctx context.Context, id uint) (*model.Permiso, error)
	Update(ctx context.Context, p *model.Permiso) error
	List(ctx context.Context, filtro dto.PermisoFiltro, areaID *uint) ([]model.Permiso, error)
	CountByCorte(ctx context.Context, corteID uint) (int64, error)
}

type permisoRepo struct{ db *gorm.DB }

func NewPermisoRepository(db *gorm.DB) PermisoRepository { return &permisoRepo{db: db} }

func (r *permisoRepo) DB() *gorm.DB { return r.db }

func (r *permisoRepo) CreateTx(tx *gorm.DB, p *model.Permiso) error {
	return tx.Create(p).Error
}

func (r *permisoRepo) FindByID(ctx context.Context, id uint) (*model.Permiso, error) {
	var p model.Permiso
	err := r.db.WithContext(ctx).
		Preload("TipoPermiso").Preload("Solicitante").Preload("Corte").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *permisoRepo) Update(ctx context.Context, p *model.Permiso) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// List returns active permisos matching filtro. areaID, when set, restricts
// results to solicitantes of that area (autorizador visibility).
func (r *permisoRepo) List(ctx context.Context, filtro dto.PermisoFiltro, areaID *uint) ([]model.Permiso, error) {
	q := r.db.WithContext(ctx).Model(&model.Permiso{}).
		Preload("TipoPermiso").Preload("Solicitante").Preload("Corte").
		Where("permisos.activo = true")

	if filtro.CorteID != nil {
		q = q.Where("permisos.corte_id = ?", *filtro.CorteID)
	}
	if filtro.SolicitanteID != nil {
		q = q.Where("permisos.solicitante_id = ?", *filtro.SolicitanteID)
	}
	if filtro.Revisado != nil {
		q = q.Where("permisos.revisado = ?", *filtro.Revisado)
	}
	if areaID != nil {
		q = q.Joins("JOIN usuarios ON usuarios.id = permisos.solicitante_id").
			Where("usuarios.area_id = ?", *areaID)
	}

	var permisos []model.Permiso
	err := q.Order("permisos.id DESC").Find(&permisos).Error
	return permisos, err
}

func (r *permisoRepo) CountByCorte(ctx context.Context, corteID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Permiso{}).
		Where("corte_id = ?", corteID).Count(&n).Error
	return n, err
}
