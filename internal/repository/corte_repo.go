package repository

import (
	"context"
	"errors"

	"github.com/rriojas/TecRHPermisos-sub000/internal/model"

	"gorm.io/gorm"
)

type CorteRepository interface {
	// DB exposes the underlying handle for service-level transactions
	// (nil in unit tests backed by in-memory fakes).
	DB() *gorm.DB

	FindActivo(ctx context.Context) (*model.Corte, error)
	FindByID(ctx context.Context, id uint) (*model.Corte, error)
	List(ctx context.Context) ([]model.Corte, error)
	Update(ctx context.Context, c *model.Corte) error
	Delete(ctx context.Context, id uint) error

	// Tx variants run inside the CrearCorte / CrearPermiso transactions so the
	// active-corte read and the subsequent writes observe one snapshot.
	FindActivoTx(tx *gorm.DB) (*model.Corte, error)
	FindMarcadorTx(tx *gorm.DB) (*model.Corte, error)
	FindUltimoConcretoTx(tx *gorm.DB) (*model.Corte, error)
	CreateTx(tx *gorm.DB, c *model.Corte) error
	UpdateTx(tx *gorm.DB, c *model.Corte) error
}

type corteRepo struct{ db *gorm.DB }

func NewCorteRepository(db *gorm.DB) CorteRepository { return &corteRepo{db: db} }

func (r *corteRepo) DB() *gorm.DB { return r.db }

// FindActivo returns the highest-id corte with activo=true, or (nil, nil)
// when no corte is active.
func (r *corteRepo) FindActivo(ctx context.Context) (*model.Corte, error) {
	return findActivo(r.db.WithContext(ctx))
}

func (r *corteRepo) FindActivoTx(tx *gorm.DB) (*model.Corte, error) {
	return findActivo(tx)
}

func findActivo(db *gorm.DB) (*model.Corte, error) {
	var c model.Corte
	err := db.Where("activo = true").Order("id DESC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindMarcadorTx returns the highest-id dateless inactive corte, or (nil, nil).
func (r *corteRepo) FindMarcadorTx(tx *gorm.DB) (*model.Corte, error) {
	var c model.Corte
	err := tx.Where("fecha_inicio IS NULL AND fecha_fin IS NULL AND activo = false").
		Order("id DESC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindUltimoConcretoTx returns the highest-id corte with a concrete fecha_fin.
// "Latest" is always by id, never by fecha_fin — the marcador has no dates.
func (r *corteRepo) FindUltimoConcretoTx(tx *gorm.DB) (*model.Corte, error) {
	var c model.Corte
	err := tx.Where("fecha_fin IS NOT NULL").Order("id DESC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *corteRepo) FindByID(ctx context.Context, id uint) (*model.Corte, error) {
	var c model.Corte
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *corteRepo) List(ctx context.Context) ([]model.Corte, error) {
	var cortes []model.Corte
	err := r.db.WithContext(ctx).Order("id DESC").Find(&cortes).Error
	return cortes, err
}

func (r *corteRepo) Update(ctx context.Context, c *model.Corte) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *corteRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Corte{}, id).Error
}

func (r *corteRepo) CreateTx(tx *gorm.DB, c *model.Corte) error {
	return tx.Create(c).Error
}

func (r *corteRepo) UpdateTx(tx *gorm.DB, c *model.Corte) error {
	return tx.Save(c).Error
}
