package repository

import (
	"context"

	"github.com/juanmzaragoza/billing-dad-project/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FacturaFilter narrows List. Empty fields are ignored; Desde and Hasta are
// inclusive YYYY-MM-DD bounds.
type FacturaFilter struct {
	Tipo  string
	Desde string
	Hasta string
}

type FacturaRepository interface {
	Create(ctx context.Context, f *model.Factura) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error)
	List(ctx context.Context, filter FacturaFilter) ([]model.Factura, error)
	Update(ctx context.Context, f *model.Factura) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	SumTotal(ctx context.Context) (decimal.Decimal, error)
	SumTotalEntreFechas(ctx context.Context, desde, hasta string) (decimal.Decimal, error)
}

// Snapshot columns are frozen at creation and excluded from every update.
var columnasSnapshotCliente = []string{
	"cliente_id", "cliente_nombre", "cliente_cuit", "cliente_condicion_iva", "cliente_direccion",
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) Create(ctx context.Context, f *model.Factura) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *facturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facturaRepo) List(ctx context.Context, filter FacturaFilter) ([]model.Factura, error) {
	q := r.db.WithContext(ctx).Model(&model.Factura{})
	if filter.Tipo != "" {
		q = q.Where("tipo_factura = ?", filter.Tipo)
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

	var list []model.Factura
	err := q.Find(&list).Error
	return list, err
}

func (r *facturaRepo) Update(ctx context.Context, f *model.Factura) error {
	omit := append([]string{"id", "created_at"}, columnasSnapshotCliente...)
	res := r.db.WithContext(ctx).Model(&model.Factura{}).
		Where("id = ?", f.ID).
		Select("*").Omit(omit...).
		Updates(f)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	// Reload so the caller sees the updated_at stamped by gorm.
	return r.db.WithContext(ctx).First(f, "id = ?", f.ID).Error
}

func (r *facturaRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Factura{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *facturaRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Factura{}).Count(&n).Error
	return n, err
}

type sumaResultado struct {
	Total decimal.Decimal
}

func (r *facturaRepo) SumTotal(ctx context.Context) (decimal.Decimal, error) {
	var res sumaResultado
	err := r.db.WithContext(ctx).Model(&model.Factura{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Scan(&res).Error
	return res.Total, err
}

func (r *facturaRepo) SumTotalEntreFechas(ctx context.Context, desde, hasta string) (decimal.Decimal, error) {
	var res sumaResultado
	err := r.db.WithContext(ctx).Model(&model.Factura{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("fecha >= ? AND fecha <= ?", desde, hasta).
		Scan(&res).Error
	return res.Total, err
}
