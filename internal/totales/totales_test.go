package totales

import (
	"math/rand"
	"testing"

	"github.com/juanmzaragoza/billing-dad-project/internal/fiscal"
	"github.com/juanmzaragoza/billing-dad-project/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(cantidad, precio, alicuota string) model.Item {
	return model.Item{
		Descripcion:    "Item",
		Cantidad:       decimal.RequireFromString(cantidad),
		PrecioUnitario: decimal.RequireFromString(precio),
		Alicuota:       alicuota,
	}
}

func assertDecimal(t *testing.T, esperado string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(esperado).Equal(got), "esperado %s, obtenido %s", esperado, got)
}

func TestCalcular_UnItemIVA21(t *testing.T) {
	tot := Calcular([]model.Item{item("2", "100", fiscal.Alicuota21)})

	assertDecimal(t, "200.00", tot.Subtotal)
	assertDecimal(t, "42.00", tot.IVA)
	assertDecimal(t, "242.00", tot.Total)
}

func TestCalcular_AlicuotasMixtas(t *testing.T) {
	tot := Calcular([]model.Item{
		item("3", "10", fiscal.Alicuota105),
		item("1", "50", fiscal.Alicuota0),
	})

	assertDecimal(t, "80.00", tot.Subtotal)
	assertDecimal(t, "3.15", tot.IVA)
	assertDecimal(t, "83.15", tot.Total)
}

func TestCalcular_ListaVacia(t *testing.T) {
	tot := Calcular(nil)
	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.IVA.IsZero())
	assert.True(t, tot.Total.IsZero())
}

func TestCalcular_RedondeaSoloAlFinal(t *testing.T) {
	// Each line is 0.004; rounding per line would yield 0.00.
	items := []model.Item{
		item("1", "0.004", fiscal.Alicuota0),
		item("1", "0.004", fiscal.Alicuota0),
	}
	assertDecimal(t, "0.01", Calcular(items).Subtotal)
}

func TestCalcular_TotalEsSubtotalMasIVA(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alicuotas := []string{fiscal.Alicuota0, fiscal.Alicuota105, fiscal.Alicuota21}

	for i := 0; i < 500; i++ {
		n := rng.Intn(8) + 1
		items := make([]model.Item, n)
		for j := range items {
			items[j] = model.Item{
				Descripcion:    "x",
				Cantidad:       decimal.New(int64(rng.Intn(10000)+1), -2),
				PrecioUnitario: decimal.New(int64(rng.Intn(1000000)), -3),
				Alicuota:       alicuotas[rng.Intn(len(alicuotas))],
			}
		}
		tot := Calcular(items)
		assert.True(t, tot.Total.Equal(tot.Subtotal.Add(tot.IVA)))

		again := Calcular(items)
		assert.True(t, tot.Subtotal.Equal(again.Subtotal))
		assert.True(t, tot.IVA.Equal(again.IVA))
		assert.True(t, tot.Total.Equal(again.Total))
	}
}

func TestTotalItem_AplicaTasa(t *testing.T) {
	cases := []model.Item{
		item("2", "100", fiscal.Alicuota21),
		item("3", "10", fiscal.Alicuota105),
		item("0.5", "19.99", fiscal.Alicuota105),
		item("7", "1.01", fiscal.Alicuota0),
	}
	for _, it := range cases {
		tasa, ok := Tasa(it.Alicuota)
		assert.True(t, ok)
		factor := decimal.NewFromInt(1).Add(tasa.Div(decimal.NewFromInt(100)))
		assert.True(t, TotalItem(it).Equal(SubtotalItem(it).Mul(factor)), it.Alicuota)
	}
}

func TestTasa_Desconocida(t *testing.T) {
	_, ok := Tasa("27")
	assert.False(t, ok)
	assert.True(t, IVAItem(item("1", "100", "27")).IsZero())
}
