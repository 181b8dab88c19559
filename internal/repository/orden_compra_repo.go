package repository

import (
	"context"

	"github.com/juanmzaragoza/billing-dad-project/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrdenCompraFilter struct {
	Estado string
	Desde  string
	Hasta  string
}

type OrdenCompraRepository interface {
	Create(ctx context.Context, o *model.OrdenCompra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error)
	List(ctx context.Context, filter OrdenCompraFilter) ([]model.OrdenCompra, error)
	Update(ctx context.Context, o *model.OrdenCompra) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountExcluyendoEstados(ctx context.Context, estados ...string) (int64, error)
	SumTotalExcluyendoEstados(ctx context.Context, estados ...string) (decimal.Decimal, error)
}

var columnasSnapshotProveedor = []string{
	"proveedor_id", "proveedor_nombre", "proveedor_cuit", "proveedor_condicion_iva", "proveedor_direccion",
}

type ordenCompraRepo struct{ db *gorm.DB }

func NewOrdenCompraRepository(db *gorm.DB) OrdenCompraRepository {
	return &ordenCompraRepo{db: db}
}

func (r *ordenCompraRepo) Create(ctx context.Context, o *model.OrdenCompra) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *ordenCompraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	var o model.OrdenCompra
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenCompraRepo) List(ctx context.Context, filter OrdenCompraFilter) ([]model.OrdenCompra, error) {
	q := r.db.WithContext(ctx).Model(&model.OrdenCompra{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Desde != "" {
		q = q.Where("fecha >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("fecha <= ?", filter.Hasta)
	}
	if filter.Desde != "" || filter.Hasta != "" {
		q = q.Order("fecha desc").Order("created_at desc")
	} else {
		q = q.Order("created_at desc")
	}

	var list []model.OrdenCompra
	err := q.Find(&list).Error
	return list, err
}

func (r *ordenCompraRepo) Update(ctx context.Context, o *model.OrdenCompra) error {
	omit := append([]string{"id", "created_at"}, columnasSnapshotProveedor...)
	res := r.db.WithContext(ctx).Model(&model.OrdenCompra{}).
		Where("id = ?", o.ID).
		Select("*").Omit(omit...).
		Updates(o)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.db.WithContext(ctx).First(o, "id = ?", o.ID).Error
}

func (r *ordenCompraRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.OrdenCompra{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *ordenCompraRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.OrdenCompra{}).Count(&n).Error
	return n, err
}

func (r *ordenCompraRepo) excluyendo(ctx context.Context, estados []string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.OrdenCompra{})
	if len(estados) > 0 {
		q = q.Where("estado NOT IN ?", estados)
	}
	return q
}

func (r *ordenCompraRepo) CountExcluyendoEstados(ctx context.Context, estados ...string) (int64, error) {
	var n int64
	err := r.excluyendo(ctx, estados).Count(&n).Error
	return n, err
}

func (r *ordenCompraRepo) SumTotalExcluyendoEstados(ctx context.Context, estados ...string) (decimal.Decimal, error) {
	var res sumaResultado
	err := r.excluyendo(ctx, estados).
		Select("COALESCE(SUM(total), 0) AS total").
		Scan(&res).Error
	return res.Total, err
}
