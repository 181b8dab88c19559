package infra

// pdf.go: A4 rendering of invoices and purchase orders with go-pdf/fpdf.
// The document is drawn from the stored snapshot, items and totals only, so a
// re-render always matches what was issued even after the party was edited.

import (
	"fmt"
	"io"

	"github.com/juanmzaragoza/billing-dad-project/internal/fiscal"
	"github.com/juanmzaragoza/billing-dad-project/internal/model"
	"github.com/juanmzaragoza/billing-dad-project/internal/totales"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Empresa identifies the issuer printed on the header.
type Empresa struct {
	Nombre string
	CUIT   string
}

// DocumentoPDF is the printable view of a document.
type DocumentoPDF struct {
	Titulo      string
	Fecha       string
	RotuloParte string // "Cliente" | "Proveedor"
	Parte       model.SnapshotParte
	Detalles    []Detalle
	Items       []model.Item
	Subtotal    decimal.Decimal
	IVA         decimal.Decimal
	Total       decimal.Decimal
	Archivo     string
}

type Detalle struct {
	Rotulo string
	Valor  string
}

func DocumentoDesdeFactura(f *model.Factura) DocumentoPDF {
	pv, num := "", ""
	if f.PuntoDeVenta != nil {
		pv = *f.PuntoDeVenta
	}
	if f.NumeroFactura != nil {
		num = *f.NumeroFactura
	}
	return DocumentoPDF{
		Titulo:      fiscal.EtiquetaComprobante(f.TipoFactura, pv, num),
		Fecha:       f.Fecha,
		RotuloParte: "Cliente",
		Parte:       f.SnapshotCliente,
		Detalles:    []Detalle{{Rotulo: "Condición de pago", Valor: f.CondicionPago}},
		Items:       f.Items,
		Subtotal:    f.Subtotal,
		IVA:         f.IVA,
		Total:       f.Total,
		Archivo:     fmt.Sprintf("factura-%s.pdf", f.ID),
	}
}

func DocumentoDesdeOrden(o *model.OrdenCompra) DocumentoPDF {
	detalles := []Detalle{
		{Rotulo: "Condición de pago", Valor: o.CondicionPago},
		{Rotulo: "Estado", Valor: fiscal.EtiquetaEstado(o.Estado)},
	}
	if o.FechaEntrega != nil {
		detalles = append(detalles, Detalle{Rotulo: "Fecha de entrega", Valor: *o.FechaEntrega})
	}
	if o.Notas != nil {
		detalles = append(detalles, Detalle{Rotulo: "Notas", Valor: *o.Notas})
	}
	return DocumentoPDF{
		Titulo:      "Orden de compra " + o.NumeroOrden,
		Fecha:       o.Fecha,
		RotuloParte: "Proveedor",
		Parte:       o.SnapshotProveedor,
		Detalles:    detalles,
		Items:       o.Items,
		Subtotal:    o.Subtotal,
		IVA:         o.IVA,
		Total:       o.Total,
		Archivo:     fmt.Sprintf("orden-compra-%s.pdf", o.ID),
	}
}

// GenerarPDF writes doc as an A4 PDF to w.
func GenerarPDF(w io.Writer, emp Empresa, doc DocumentoPDF) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, tr(emp.Nombre), "", 1, "L", false, 0, "")
	if emp.CUIT != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, "CUIT "+emp.CUIT, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW*0.7, 7, tr(doc.Titulo), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW*0.3, 7, "Fecha: "+doc.Fecha, "", 1, "R", false, 0, "")
	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Party snapshot ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, tr(doc.RotuloParte+": "+doc.Parte.Nombre), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if doc.Parte.CUIT != nil {
		pdf.CellFormat(contentW, 5, "CUIT: "+*doc.Parte.CUIT, "", 1, "L", false, 0, "")
	}
	if doc.Parte.CondicionIVA != nil {
		pdf.CellFormat(contentW, 5, tr("Condición IVA: "+fiscal.EtiquetaCondicion(*doc.Parte.CondicionIVA)), "", 1, "L", false, 0, "")
	}
	if doc.Parte.Direccion != nil {
		pdf.CellFormat(contentW, 5, tr("Dirección: "+*doc.Parte.Direccion), "", 1, "L", false, 0, "")
	}
	for _, d := range doc.Detalles {
		pdf.CellFormat(contentW, 5, tr(d.Rotulo+": "+d.Valor), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Items ────────────────────────────────────────────────────────────────
	cols := []float64{contentW * 0.40, contentW * 0.12, contentW * 0.16, contentW * 0.12, contentW * 0.20}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range []string{"Descripción", "Cantidad", "P. unitario", "IVA %", "Subtotal"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(cols[i], 7, tr(h), "B", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, it := range doc.Items {
		pdf.CellFormat(cols[0], 6, tr(truncar(it.Descripcion, 48)), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1], 6, it.Cantidad.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[2], 6, "$"+it.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3], 6, it.Alicuota, "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4], 6, "$"+totales.SubtotalItem(it).StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := contentW - cols[4]
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelW, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(cols[4], 6, "$"+doc.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 6, "IVA", "", 0, "R", false, 0, "")
	pdf.CellFormat(cols[4], 6, "$"+doc.IVA.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 7, "TOTAL", "", 0, "R", false, 0, "")
	pdf.CellFormat(cols[4], 7, "$"+doc.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render: %w", err)
	}
	return nil
}

func truncar(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
