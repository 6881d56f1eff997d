package repository

import (
	"context"

	"github.com/rriojas/TecRHPermisos-sub000/internal/model"

	"gorm.io/gorm"
)

type TipoPermisoRepository interface {
	FindByID(ctx context.Context, id uint) (*model.TipoPermiso, error)
	FindByClave(ctx context.Context, clave string) (*model.TipoPermiso, error)
	List(ctx context.Context) ([]model.TipoPermiso, error)
}

type tipoPermisoRepo struct{ db *gorm.DB }

func NewTipoPermisoRepository(db *gorm.DB) TipoPermisoRepository { return &tipoPermisoRepo{db: db} }

func (r *tipoPermisoRepo) FindByID(ctx context.Context, id uint) (*model.TipoPermiso, error) {
	var t model.TipoPermiso
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tipoPermisoRepo) FindByClave(ctx context.Context, clave string) (*model.TipoPermiso, error) {
	var t model.TipoPermiso
	if err := r.db.WithContext(ctx).Where("clave = ?", clave).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tipoPermisoRepo) List(ctx context.Context) ([]model.TipoPermiso, error) {
	var tipos []model.TipoPermiso
	err := r.db.WithContext(ctx).Order("id ASC").Find(&tipos).Error
	return tipos, err
}
