package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	Nombre          string  `json:"nombre"           validate:"required"`
	CUIT            *string `json:"cuit"             validate:"omitempty,cuit"`
	CondicionIVA    *string `json:"condicion_iva"    validate:"omitempty,condicion_iva"`
	Direccion       *string `json:"direccion"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Telefono        *string `json:"telefono"`
	PersonaContacto *string `json:"persona_contacto"`
	Notas           *string `json:"notas"`
}

type ActualizarProveedorRequest struct {
	Nombre          *string `json:"nombre"           validate:"omitempty,min=1"`
	CUIT            *string `json:"cuit"             validate:"omitempty,cuit"`
	CondicionIVA    *string `json:"condicion_iva"    validate:"omitempty,condicion_iva"`
	Direccion       *string `json:"direccion"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Telefono        *string `json:"telefono"`
	PersonaContacto *string `json:"persona_contacto"`
	Notas           *string `json:"notas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProveedorResponse struct {
	ID              string    `json:"id"`
	Nombre          string    `json:"nombre"`
	CUIT            *string   `json:"cuit"`
	CondicionIVA    *string   `json:"condicion_iva"`
	Direccion       *string   `json:"direccion"`
	Email           *string   `json:"email"`
	Telefono        *string   `json:"telefono"`
	PersonaContacto *string   `json:"persona_contacto"`
	Notas           *string   `json:"notas"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
