package repository

import (
	"context"

	"github.com/juanmzaragoza/billing-dad-project/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Proveedor, error)
	FindByCUIT(ctx context.Context, cuit string) (*model.Proveedor, error)
	List(ctx context.Context) ([]model.Proveedor, error)
	Search(ctx context.Context, q string, limit int) ([]model.Proveedor, error)
	Update(ctx context.Context, p *model.Proveedor) error
	UpdateFiscal(ctx context.Context, id uuid.UUID, cuit, condicion, direccion *string) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepo) FindByNombre(ctx context.Context, nombre string) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).
		Where("lower(nombre) = lower(?)", nombre).
		Order("created_at asc").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepo) FindByCUIT(ctx context.Context, cuit string) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).Where("cuit = ?", cuit).Order("created_at asc").First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepo) List(ctx context.Context) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Search(ctx context.Context, q string, limit int) ([]model.Proveedor, error) {
	if limit <= 0 {
		limit = BusquedaLimite
	}
	pattern := patronLike(q)
	var proveedores []model.Proveedor
	err := r.db.WithContext(ctx).
		Where(`lower(nombre) LIKE ? ESCAPE '\' OR cuit LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("nombre asc").
		Limit(limit).
		Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	res := r.db.WithContext(ctx).Model(&model.Proveedor{}).
		Where("id = ?", p.ID).
		Select("*").Omit("id", "created_at").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.db.WithContext(ctx).First(p, "id = ?", p.ID).Error
}

func (r *proveedorRepo) UpdateFiscal(ctx context.Context, id uuid.UUID, cuit, condicion, direccion *string) error {
	res := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).
		Updates(map[string]any{"cuit": cuit, "condicion_iva": condicion, "direccion": direccion})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *proveedorRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Proveedor{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
