package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricaMonto is a money aggregate; Error is set instead of failing the
// whole summary when its query could not run.
type MetricaMonto struct {
	Valor decimal.Decimal `json:"valor"`
	Error string          `json:"error,omitempty"`
}

type MetricaConteo struct {
	Valor int64  `json:"valor"`
	Error string `json:"error,omitempty"`
}

type DashboardResponse struct {
	TotalFacturas      MetricaConteo `json:"total_facturas"`
	TotalIngresos      MetricaMonto  `json:"total_ingresos"`
	IngresosMensuales  MetricaMonto  `json:"ingresos_mensuales"`
	TotalGastos        MetricaMonto  `json:"total_gastos"`
	Ganancia           MetricaMonto  `json:"ganancia"`
	TotalOrdenesCompra MetricaConteo `json:"total_ordenes_compra"`
	OrdenesActivas     MetricaConteo `json:"ordenes_activas"`
	// Parcial is true when at least one metric carries an error.
	Parcial    bool      `json:"parcial"`
	GeneradoEn time.Time `json:"generado_en"`
}
