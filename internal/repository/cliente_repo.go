package repository

import (
	"context"

	"github.com/juanmzaragoza/billing-dad-project/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Cliente, error)
	FindByCUIT(ctx context.Context, cuit string) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	Search(ctx context.Context, q string, limit int) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	UpdateFiscal(ctx context.Context, id uuid.UUID, cuit, condicion, direccion *string) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByNombre matches the whole name case-insensitively; the oldest record wins.
func (r *clienteRepo) FindByNombre(ctx context.Context, nombre string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("lower(nombre) = lower(?)", nombre).
		Order("created_at asc").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByCUIT(ctx context.Context, cuit string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("cuit = ?", cuit).Order("created_at asc").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var list []model.Cliente
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *clienteRepo) Search(ctx context.Context, q string, limit int) ([]model.Cliente, error) {
	if limit <= 0 {
		limit = BusquedaLimite
	}
	pattern := patronLike(q)
	var list []model.Cliente
	err := r.db.WithContext(ctx).
		Where(`lower(nombre) LIKE ? ESCAPE '\' OR cuit LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("nombre asc").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	res := r.db.WithContext(ctx).Model(&model.Cliente{}).
		Where("id = ?", c.ID).
		Select("*").Omit("id", "created_at").
		Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.db.WithContext(ctx).First(c, "id = ?", c.ID).Error
}

// UpdateFiscal writes only the fiscal columns; nil arguments are stored as NULL.
func (r *clienteRepo) UpdateFiscal(ctx context.Context, id uuid.UUID, cuit, condicion, direccion *string) error {
	res := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).
		Updates(map[string]any{"cuit": cuit, "condicion_iva": condicion, "direccion": direccion})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *clienteRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Cliente{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
