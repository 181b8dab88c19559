package fiscal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCUITValido(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"1234567", true},
		{"20111111111", true},
		{"123456", false},
		{"201111111112", false},
		{"20-1111111-1", false},
		{"2011111111a", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CUITValido(tc.in), tc.in)
	}
}

func TestCUITValidoAFIP(t *testing.T) {
	assert.True(t, CUITValidoAFIP("30712345678"))
	assert.False(t, CUITValidoAFIP("12345678"))
	assert.False(t, CUITValidoAFIP("3071234567x"))
}

func TestRequiereDatosFiscales(t *testing.T) {
	assert.True(t, RequiereDatosFiscales(TipoA))
	assert.True(t, RequiereDatosFiscales(TipoB))
	assert.True(t, RequiereDatosFiscales(TipoC))
	assert.False(t, RequiereDatosFiscales(TipoSinFacturar))
}

func TestValidarDatosAFIP_SinFacturarAceptaCamposVacios(t *testing.T) {
	errs := ValidarDatosAFIP(DatosAFIP{TipoFactura: TipoSinFacturar})
	assert.Nil(t, errs)
}

func TestValidarDatosAFIP_FacturaAReportaCuatroErrores(t *testing.T) {
	errs := ValidarDatosAFIP(DatosAFIP{TipoFactura: TipoA})

	assert.Len(t, errs, 4)
	assert.Equal(t, MsgPuntoDeVentaRequerido, errs[CampoPuntoDeVenta])
	assert.Equal(t, MsgNumeroRequerido, errs[CampoNumeroFactura])
	assert.Equal(t, MsgCUITAFIP, errs[CampoClienteCUIT])
	assert.Equal(t, MsgCondicionRequerida, errs[CampoClienteCondicionIVA])
}

func TestValidarDatosAFIP_CUITCorto(t *testing.T) {
	errs := ValidarDatosAFIP(DatosAFIP{
		TipoFactura:   TipoB,
		PuntoDeVenta:  "0001",
		NumeroFactura: "00000012",
		CUIT:          "12345678",
		CondicionIVA:  ConsumidorFinal,
	})
	assert.Equal(t, map[string]string{CampoClienteCUIT: MsgCUITAFIP}, errs)
}

func TestValidarDatosAFIP_Completa(t *testing.T) {
	errs := ValidarDatosAFIP(DatosAFIP{
		TipoFactura:   TipoA,
		PuntoDeVenta:  "0001",
		NumeroFactura: "00000001",
		CUIT:          "30712345678",
		CondicionIVA:  ResponsableInscripto,
	})
	assert.Nil(t, errs)
}

func TestPuedeCrearParte(t *testing.T) {
	cases := []struct {
		name                     string
		nombre, cuit, condicion  string
		requiereFiscal, esperado bool
	}{
		{"sin nombre", "  ", "20111111111", ResponsableInscripto, false, false},
		{"nombre sin fiscal", "ACME", "", "", false, true},
		{"fiscal requerido sin datos", "ACME", "", "", true, false},
		{"fiscal requerido con cuit", "ACME", "20111111111", "", true, true},
		{"fiscal requerido con condicion", "ACME", "", Monotributo, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.esperado, PuedeCrearParte(tc.nombre, tc.cuit, tc.condicion, tc.requiereFiscal))
		})
	}
}

func TestEtiquetas(t *testing.T) {
	assert.Equal(t, "Factura A", EtiquetaTipo(TipoA))
	assert.Equal(t, "Sin facturar", EtiquetaTipo(TipoSinFacturar))
	assert.Equal(t, "Responsable Inscripto", EtiquetaCondicion(ResponsableInscripto))
	assert.Equal(t, "En Proceso", EtiquetaEstado(EstadoEnProceso))
	assert.Equal(t, "Z", EtiquetaTipo("Z"))
}

func TestNumeroComprobante(t *testing.T) {
	assert.Equal(t, "0001-00000001", NumeroComprobante(TipoA, "0001", "00000001"))
	assert.Equal(t, "-", NumeroComprobante(TipoSinFacturar, "0001", "1"))
	assert.Equal(t, "Factura B 0002-00000010", EtiquetaComprobante(TipoB, "0002", "00000010"))
	assert.Equal(t, "Venta sin facturar", EtiquetaComprobante(TipoSinFacturar, "", ""))
}
