package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

// FacturaFilter is bound from the query string of GET /v1/facturas.
// With desde/hasta the list is ordered by fecha desc, otherwise by creation desc.
type FacturaFilter struct {
	Tipo  string `form:"tipo"  validate:"omitempty,oneof=A B C sin_facturar"`
	Desde string `form:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"omitempty,datetime=2006-01-02"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearFacturaRequest struct {
	TipoFactura         string      `json:"tipo_factura"          validate:"required,oneof=A B C sin_facturar"`
	PuntoDeVenta        string      `json:"punto_de_venta"        validate:"omitempty,max=10"`
	NumeroFactura       string      `json:"numero_factura"        validate:"omitempty,max=20"`
	Fecha               string      `json:"fecha"                 validate:"required,datetime=2006-01-02"`
	ClienteID           string      `json:"cliente_id"            validate:"omitempty,uuid"`
	ClienteNombre       string      `json:"cliente_nombre"        validate:"required"`
	ClienteCUIT         string      `json:"cliente_cuit"          validate:"omitempty,cuit"`
	ClienteCondicionIVA string      `json:"cliente_condicion_iva" validate:"omitempty,condicion_iva"`
	ClienteDireccion    string      `json:"cliente_direccion"`
	Items               []ItemInput `json:"items"                 validate:"required,min=1,dive"`
	CondicionPago       string      `json:"condicion_pago"        validate:"required,oneof=Contado Tarjeta Transferencia Cheque"`
}

// ActualizarFacturaRequest patches scalar fields and items. The client snapshot
// is frozen at creation and cannot be patched.
type ActualizarFacturaRequest struct {
	TipoFactura   *string     `json:"tipo_factura"   validate:"omitempty,oneof=A B C sin_facturar"`
	PuntoDeVenta  *string     `json:"punto_de_venta" validate:"omitempty,max=10"`
	NumeroFactura *string     `json:"numero_factura" validate:"omitempty,max=20"`
	Fecha         *string     `json:"fecha"          validate:"omitempty,datetime=2006-01-02"`
	CondicionPago *string     `json:"condicion_pago" validate:"omitempty,oneof=Contado Tarjeta Transferencia Cheque"`
	Items         []ItemInput `json:"items"          validate:"omitempty,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FacturaResponse struct {
	ID            string           `json:"id"`
	TipoFactura   string           `json:"tipo_factura"`
	TipoEtiqueta  string           `json:"tipo_etiqueta"`
	PuntoDeVenta  *string          `json:"punto_de_venta"`
	NumeroFactura *string          `json:"numero_factura"`
	Numero        string           `json:"numero"`
	Etiqueta      string           `json:"etiqueta"`
	Fecha         string           `json:"fecha"`
	ClienteID     *string          `json:"cliente_id"`
	Cliente       SnapshotResponse `json:"cliente"`
	Items         []ItemResponse   `json:"items"`
	CondicionPago string           `json:"condicion_pago"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	IVA           decimal.Decimal  `json:"iva"`
	Total         decimal.Decimal  `json:"total"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ValidacionFacturaResponse is the dry-run answer of POST /v1/facturas/validar.
type ValidacionFacturaResponse struct {
	Valido            bool              `json:"valido"`
	Campos            map[string]string `json:"campos,omitempty"`
	RequiereFiscal    bool              `json:"requiere_datos_fiscales"`
	PuedeCrearCliente bool              `json:"puede_crear_cliente"`
}
