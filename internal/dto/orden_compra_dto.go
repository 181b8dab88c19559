package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

type OrdenCompraFilter struct {
	Estado string `form:"estado" validate:"omitempty,oneof=pendiente en_proceso completada cancelada"`
	Desde  string `form:"desde"  validate:"omitempty,datetime=2006-01-02"`
	Hasta  string `form:"hasta"  validate:"omitempty,datetime=2006-01-02"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearOrdenCompraRequest struct {
	NumeroOrden           string      `json:"numero_orden"            validate:"required,max=50"`
	Fecha                 string      `json:"fecha"                   validate:"required,datetime=2006-01-02"`
	ProveedorID           string      `json:"proveedor_id"            validate:"omitempty,uuid"`
	ProveedorNombre       string      `json:"proveedor_nombre"        validate:"required"`
	ProveedorCUIT         string      `json:"proveedor_cuit"          validate:"omitempty,cuit"`
	ProveedorCondicionIVA string      `json:"proveedor_condicion_iva" validate:"omitempty,condicion_iva"`
	ProveedorDireccion    string      `json:"proveedor_direccion"`
	Items                 []ItemInput `json:"items"                   validate:"required,min=1,dive"`
	CondicionPago         string      `json:"condicion_pago"          validate:"required,oneof=Contado Tarjeta Transferencia Cheque"`
	FechaEntrega          string      `json:"fecha_entrega"           validate:"omitempty,datetime=2006-01-02"`
	Notas                 string      `json:"notas"`
	Estado                string      `json:"estado"                  validate:"omitempty,oneof=pendiente en_proceso completada cancelada"`
}

type ActualizarOrdenCompraRequest struct {
	NumeroOrden   *string     `json:"numero_orden"   validate:"omitempty,max=50"`
	Fecha         *string     `json:"fecha"          validate:"omitempty,datetime=2006-01-02"`
	CondicionPago *string     `json:"condicion_pago" validate:"omitempty,oneof=Contado Tarjeta Transferencia Cheque"`
	FechaEntrega  *string     `json:"fecha_entrega"  validate:"omitempty,datetime=2006-01-02"`
	Notas         *string     `json:"notas"`
	Estado        *string     `json:"estado"         validate:"omitempty,oneof=pendiente en_proceso completada cancelada"`
	Items         []ItemInput `json:"items"          validate:"omitempty,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrdenCompraResponse struct {
	ID             string           `json:"id"`
	NumeroOrden    string           `json:"numero_orden"`
	Fecha          string           `json:"fecha"`
	ProveedorID    *string          `json:"proveedor_id"`
	Proveedor      SnapshotResponse `json:"proveedor"`
	Items          []ItemResponse   `json:"items"`
	CondicionPago  string           `json:"condicion_pago"`
	FechaEntrega   *string          `json:"fecha_entrega"`
	Notas          *string          `json:"notas"`
	Estado         string           `json:"estado"`
	EstadoEtiqueta string           `json:"estado_etiqueta"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	IVA            decimal.Decimal  `json:"iva"`
	Total          decimal.Decimal  `json:"total"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
