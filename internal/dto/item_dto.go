package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemInput struct {
	Descripcion    string          `json:"descripcion"     validate:"required"`
	Cantidad       decimal.Decimal `json:"cantidad"        validate:"gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"gte=0"`
	Alicuota       string          `json:"alicuota"        validate:"required,alicuota"`
}

type CalcularTotalesRequest struct {
	Items []ItemInput `json:"items" validate:"dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemResponse struct {
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Alicuota       string          `json:"alicuota"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	IVA            decimal.Decimal `json:"iva"`
	Total          decimal.Decimal `json:"total"`
}

type TotalesResponse struct {
	Items    []ItemResponse  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	IVA      decimal.Decimal `json:"iva"`
	Total    decimal.Decimal `json:"total"`
}

// SnapshotResponse is the party data frozen inside a document.
type SnapshotResponse struct {
	Nombre       string  `json:"nombre"`
	CUIT         *string `json:"cuit"`
	CondicionIVA *string `json:"condicion_iva"`
	Direccion    *string `json:"direccion"`
}
