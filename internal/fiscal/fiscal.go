// Package fiscal holds the Argentine fiscal vocabulary (invoice types, tax
// conditions, VAT rates) and the validation rules that depend on it.
// Everything here is pure: no I/O, no globals beyond constant tables.
package fiscal

import "strings"

// ── Tipos de factura ──────────────────────────────────────────────────────────

const (
	TipoA           = "A"
	TipoB           = "B"
	TipoC           = "C"
	TipoSinFacturar = "sin_facturar"
)

var etiquetasTipo = map[string]string{
	TipoA:           "Factura A",
	TipoB:           "Factura B",
	TipoC:           "Factura C",
	TipoSinFacturar: "Sin facturar",
}

// TipoFacturaValido reports whether tipo is one of A, B, C or sin_facturar.
func TipoFacturaValido(tipo string) bool {
	_, ok := etiquetasTipo[tipo]
	return ok
}

// EtiquetaTipo returns the display label for an invoice type, or the raw value
// when it is unknown.
func EtiquetaTipo(tipo string) string {
	if l, ok := etiquetasTipo[tipo]; ok {
		return l
	}
	return tipo
}

// ── Condición frente al IVA ──────────────────────────────────────────────────

const (
	ResponsableInscripto = "responsable_inscripto"
	ConsumidorFinal      = "consumidor_final"
	Exento               = "exento"
	Monotributo          = "monotributo"
)

var etiquetasCondicion = map[string]string{
	ResponsableInscripto: "Responsable Inscripto",
	ConsumidorFinal:      "Consumidor Final",
	Exento:               "Exento",
	Monotributo:          "Monotributo",
}

func CondicionValida(c string) bool {
	_, ok := etiquetasCondicion[c]
	return ok
}

func EtiquetaCondicion(c string) string {
	if l, ok := etiquetasCondicion[c]; ok {
		return l
	}
	return c
}

// ── Alícuotas de IVA ─────────────────────────────────────────────────────────

const (
	Alicuota0   = "0"
	Alicuota105 = "10.5"
	Alicuota21  = "21"
)

func AlicuotaValida(a string) bool {
	return a == Alicuota0 || a == Alicuota105 || a == Alicuota21
}

// ── Condición de pago ────────────────────────────────────────────────────────

const (
	PagoContado       = "Contado"
	PagoTarjeta       = "Tarjeta"
	PagoTransferencia = "Transferencia"
	PagoCheque        = "Cheque"
)

func CondicionPagoValida(p string) bool {
	switch p {
	case PagoContado, PagoTarjeta, PagoTransferencia, PagoCheque:
		return true
	}
	return false
}

// ── Estados de orden de compra ───────────────────────────────────────────────

const (
	EstadoPendiente  = "pendiente"
	EstadoEnProceso  = "en_proceso"
	EstadoCompletada = "completada"
	EstadoCancelada  = "cancelada"
)

var etiquetasEstado = map[string]string{
	EstadoPendiente:  "Pendiente",
	EstadoEnProceso:  "En Proceso",
	EstadoCompletada: "Completada",
	EstadoCancelada:  "Cancelada",
}

func EstadoOrdenValido(e string) bool {
	_, ok := etiquetasEstado[e]
	return ok
}

func EtiquetaEstado(e string) string {
	if l, ok := etiquetasEstado[e]; ok {
		return l
	}
	return e
}

// ── Numeración ───────────────────────────────────────────────────────────────

// NumeroComprobante formats "pv-numero", or "-" for unbilled sales.
func NumeroComprobante(tipo, puntoDeVenta, numero string) string {
	if tipo == TipoSinFacturar {
		return "-"
	}
	return puntoDeVenta + "-" + numero
}

// EtiquetaComprobante is the descriptive label shown on lists and PDFs,
// e.g. "Factura A 0001-00000001".
func EtiquetaComprobante(tipo, puntoDeVenta, numero string) string {
	if tipo == TipoSinFacturar {
		return "Venta sin facturar"
	}
	return EtiquetaTipo(tipo) + " " + NumeroComprobante(tipo, puntoDeVenta, numero)
}

func vacio(s string) bool { return strings.TrimSpace(s) == "" }
