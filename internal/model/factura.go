package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Factura is a sales invoice, billed (A, B, C) or informal.
// TipoFactura: "A" | "B" | "C" | "sin_facturar"
// CondicionPago: "Contado" | "Tarjeta" | "Transferencia" | "Cheque"
type Factura struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TipoFactura   string    `gorm:"type:varchar(20);not null;index"`
	PuntoDeVenta  *string   `gorm:"type:varchar(10)"`
	NumeroFactura *string   `gorm:"type:varchar(20)"`
	// Fecha is the document date as YYYY-MM-DD; range filters compare it lexically.
	Fecha string `gorm:"type:varchar(10);not null;index"`

	ClienteID       *uuid.UUID    `gorm:"type:uuid;index"`
	SnapshotCliente SnapshotParte `gorm:"embedded;embeddedPrefix:cliente_"`

	Items         datatypes.JSONSlice[Item] `gorm:"not null"`
	CondicionPago string                    `gorm:"type:varchar(20);not null"`
	Subtotal      decimal.Decimal           `gorm:"type:decimal(12,2);not null"`
	IVA           decimal.Decimal           `gorm:"column:iva;type:decimal(12,2);not null"`
	Total         decimal.Decimal           `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time                 `gorm:"index"`
	UpdatedAt     time.Time
}

func (Factura) TableName() string { return "facturas" }

func (f *Factura) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
