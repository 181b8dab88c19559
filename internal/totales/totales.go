// Package totales computes document subtotals, VAT and totals from line items.
//
// Per-item values are kept at full precision; rounding to cents happens once,
// on the aggregated subtotal and VAT, and the total is the sum of those two
// rounded figures.
package totales

import (
	"github.com/juanmzaragoza/billing-dad-project/internal/fiscal"
	"github.com/juanmzaragoza/billing-dad-project/internal/model"

	"github.com/shopspring/decimal"
)

var (
	cien  = decimal.NewFromInt(100)
	tasas = map[string]decimal.Decimal{
		fiscal.Alicuota0:   decimal.Zero,
		fiscal.Alicuota105: decimal.RequireFromString("10.5"),
		fiscal.Alicuota21:  decimal.NewFromInt(21),
	}
)

// Totales is the derived money summary of a document.
type Totales struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	IVA      decimal.Decimal `json:"iva"`
	Total    decimal.Decimal `json:"total"`
}

// Tasa returns the VAT percentage for an alícuota tag. Unknown tags yield zero
// and false.
func Tasa(alicuota string) (decimal.Decimal, bool) {
	t, ok := tasas[alicuota]
	return t, ok
}

func SubtotalItem(it model.Item) decimal.Decimal {
	return it.Cantidad.Mul(it.PrecioUnitario)
}

func IVAItem(it model.Item) decimal.Decimal {
	tasa, _ := Tasa(it.Alicuota)
	return SubtotalItem(it).Mul(tasa).Div(cien)
}

func TotalItem(it model.Item) decimal.Decimal {
	return SubtotalItem(it).Add(IVAItem(it))
}

// Calcular aggregates items into rounded totals. An empty slice returns zeros.
func Calcular(items []model.Item) Totales {
	subtotal := decimal.Zero
	iva := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(SubtotalItem(it))
		iva = iva.Add(IVAItem(it))
	}
	subtotal = subtotal.Round(2)
	iva = iva.Round(2)
	return Totales{
		Subtotal: subtotal,
		IVA:      iva,
		Total:    subtotal.Add(iva),
	}
}
