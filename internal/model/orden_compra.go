package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrdenCompra is a purchase order issued to a supplier.
// Estado: "pendiente" | "en_proceso" | "completada" | "cancelada"
type OrdenCompra struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	NumeroOrden string    `gorm:"type:varchar(50);not null"`
	Fecha       string    `gorm:"type:varchar(10);not null;index"`

	ProveedorID       *uuid.UUID    `gorm:"type:uuid;index"`
	SnapshotProveedor SnapshotParte `gorm:"embedded;embeddedPrefix:proveedor_"`

	Items         datatypes.JSONSlice[Item] `gorm:"not null"`
	CondicionPago string                    `gorm:"type:varchar(20);not null"`
	FechaEntrega  *string                   `gorm:"type:varchar(10)"`
	Notas         *string
	Estado        string          `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IVA           decimal.Decimal `gorm:"column:iva;type:decimal(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time
}

func (OrdenCompra) TableName() string { return "ordenes_compra" }

func (o *OrdenCompra) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
