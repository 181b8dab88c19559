package model

import "github.com/shopspring/decimal"

// Item is a document line. It is stored by value inside its document's JSON
// items column and never shared between documents.
// Alicuota: "0" | "10.5" | "21"
type Item struct {
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Alicuota       string          `json:"alicuota"`
}
