package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Proveedor represents a supplier purchase orders are issued to.
type Proveedor struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre          string    `gorm:"not null;index"`
	CUIT            *string   `gorm:"column:cuit;type:varchar(11);index"`
	CondicionIVA    *string   `gorm:"column:condicion_iva;type:varchar(30)"`
	Direccion       *string
	Email           *string
	Telefono        *string
	PersonaContacto *string
	Notas           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Proveedor) TableName() string { return "proveedores" }

func (p *Proveedor) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
