package repository

import (
	"context"

	"github.com/rriojas/TecRHPermisos-sub000/internal/model"

	"gorm.io/gorm"
)

type AreaRepository interface {
	Create(ctx context.Context, a *model.Area) error
	FindByID(ctx context.Context, id uint) (*model.Area, error)
	List(ctx context.Context) ([]model.Area, error)
	Update(ctx context.Context, a *model.Area) error
	SoftDelete(ctx context.Context, id uint) error
}

type areaRepo struct{ db *gorm.DB }

func NewAreaRepository(db *gorm.DB) AreaRepository { return &areaRepo{db: db} }

func (r *areaRepo) Create(ctx context.Context, a *model.Area) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *areaRepo) FindByID(ctx context.Context, id uint) (*model.Area, error) {
	var a model.Area
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *areaRepo) List(ctx context.Context) ([]model.Area, error) {
	var areas []model.Area
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&areas).Error
	return areas, err
}

func (r *areaRepo) Update(ctx context.Context, a *model.Area) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *areaRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Area{}).Where("id = ?", id).Update("activo", false).Error
}
