package fiscal

import "strings"

// Field keys reported by ValidarDatosAFIP. They match the JSON names of the
// invoice request so the HTTP layer can return them untouched.
const (
	CampoPuntoDeVenta        = "punto_de_venta"
	CampoNumeroFactura       = "numero_factura"
	CampoClienteCUIT         = "cliente_cuit"
	CampoClienteCondicionIVA = "cliente_condicion_iva"
)

const (
	MsgPuntoDeVentaRequerido = "El punto de venta es requerido para facturas AFIP"
	MsgNumeroRequerido       = "El número de factura es requerido para facturas AFIP"
	MsgCUITAFIP              = "El CUIT debe tener 11 dígitos para facturas AFIP"
	MsgCondicionRequerida    = "La condición frente al IVA es requerida para facturas AFIP"
)

// CUITValido accepts CUIT/CUIL/DNI values: digits only, 7 to 11 characters.
func CUITValido(v string) bool {
	if len(v) < 7 || len(v) > 11 {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CUITValidoAFIP is the stricter rule for billed invoices: exactly 11 digits.
func CUITValidoAFIP(v string) bool {
	return len(v) == 11 && CUITValido(v)
}

// RequiereDatosFiscales is true for every invoice type except sin_facturar.
func RequiereDatosFiscales(tipo string) bool {
	return tipo != TipoSinFacturar
}

// DatosAFIP carries the fields whose presence depends on the invoice type.
type DatosAFIP struct {
	TipoFactura   string
	PuntoDeVenta  string
	NumeroFactura string
	CUIT          string
	CondicionIVA  string
}

// ValidarDatosAFIP checks every conditionally required field and reports all
// failures at once. Returns nil when the invoice type needs no fiscal data or
// when everything is present.
func ValidarDatosAFIP(d DatosAFIP) map[string]string {
	if !RequiereDatosFiscales(d.TipoFactura) {
		return nil
	}
	errs := make(map[string]string)
	if vacio(d.PuntoDeVenta) {
		errs[CampoPuntoDeVenta] = MsgPuntoDeVentaRequerido
	}
	if vacio(d.NumeroFactura) {
		errs[CampoNumeroFactura] = MsgNumeroRequerido
	}
	if !CUITValidoAFIP(strings.TrimSpace(d.CUIT)) {
		errs[CampoClienteCUIT] = MsgCUITAFIP
	}
	if vacio(d.CondicionIVA) {
		errs[CampoClienteCondicionIVA] = MsgCondicionRequerida
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// PuedeCrearParte gates implicit client/supplier creation: a name is always
// needed, and when fiscal data is required at least a CUIT or a tax condition
// must be present. It is a precondition only; persistence re-validates.
func PuedeCrearParte(nombre, cuit, condicion string, requiereFiscal bool) bool {
	if vacio(nombre) {
		return false
	}
	if !requiereFiscal {
		return true
	}
	return !vacio(cuit) || !vacio(condicion)
}
