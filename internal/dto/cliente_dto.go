package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre       string  `json:"nombre"        validate:"required"`
	CUIT         *string `json:"cuit"          validate:"omitempty,cuit"`
	CondicionIVA *string `json:"condicion_iva" validate:"omitempty,condicion_iva"`
	Direccion    *string `json:"direccion"`
	Email        *string `json:"email"         validate:"omitempty,email"`
	Telefono     *string `json:"telefono"`
	Notas        *string `json:"notas"`
}

// ActualizarClienteRequest is a partial update: nil fields are left untouched.
type ActualizarClienteRequest struct {
	Nombre       *string `json:"nombre"        validate:"omitempty,min=1"`
	CUIT         *string `json:"cuit"          validate:"omitempty,cuit"`
	CondicionIVA *string `json:"condicion_iva" validate:"omitempty,condicion_iva"`
	Direccion    *string `json:"direccion"`
	Email        *string `json:"email"         validate:"omitempty,email"`
	Telefono     *string `json:"telefono"`
	Notas        *string `json:"notas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID           string    `json:"id"`
	Nombre       string    `json:"nombre"`
	CUIT         *string   `json:"cuit"`
	CondicionIVA *string   `json:"condicion_iva"`
	Direccion    *string   `json:"direccion"`
	Email        *string   `json:"email"`
	Telefono     *string   `json:"telefono"`
	Notas        *string   `json:"notas"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
