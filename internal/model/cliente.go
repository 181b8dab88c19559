package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente is a customer invoiced by the business.
// CondicionIVA: "responsable_inscripto" | "consumidor_final" | "exento" | "monotributo"
type Cliente struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre       string    `gorm:"not null;index"`
	CUIT         *string   `gorm:"column:cuit;type:varchar(11);index"`
	CondicionIVA *string   `gorm:"column:condicion_iva;type:varchar(30)"`
	Direccion    *string
	Email        *string
	Telefono     *string
	Notas        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Cliente) TableName() string { return "clientes" }

func (c *Cliente) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
