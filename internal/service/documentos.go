package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/fiscal"
	"github.com/juanmzaragoza/billing-dad-project/internal/model"
	"github.com/juanmzaragoza/billing-dad-project/internal/totales"

	"github.com/google/uuid"
)

const (
	msgItemsRequeridos    = "Debe incluir al menos un ítem"
	msgDescripcionItem    = "La descripción es requerida"
	msgCantidadItem       = "La cantidad debe ser mayor a 0"
	msgPrecioItem         = "El precio unitario no puede ser negativo"
	msgAlicuotaItem       = "Alícuota inválida (0, 10.5 o 21)"
	msgFechaInvalida      = "Fecha inválida (formato AAAA-MM-DD)"
	msgCondicionPago      = "Condición de pago inválida"
	msgIdentificadorParte = "Identificador inválido"
)

// ResumenInvalidador drops the cached dashboard summary after a document mutation.
type ResumenInvalidador interface {
	InvalidarResumen(ctx context.Context)
}

func validarItems(c *campos, items []dto.ItemInput) {
	if len(items) == 0 {
		c.add("items", msgItemsRequeridos)
		return
	}
	for i, it := range items {
		campo := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(it.Descripcion) == "" {
			c.add(campo+".descripcion", msgDescripcionItem)
		}
		if !it.Cantidad.IsPositive() {
			c.add(campo+".cantidad", msgCantidadItem)
		}
		if it.PrecioUnitario.IsNegative() {
			c.add(campo+".precio_unitario", msgPrecioItem)
		}
		if !fiscal.AlicuotaValida(it.Alicuota) {
			c.add(campo+".alicuota", msgAlicuotaItem)
		}
	}
}

func validarFecha(c *campos, campo, valor string) {
	if _, err := time.Parse(time.DateOnly, valor); err != nil {
		c.add(campo, msgFechaInvalida)
	}
}

func validarCondicionPago(c *campos, valor string) {
	if !fiscal.CondicionPagoValida(valor) {
		c.add("condicion_pago", msgCondicionPago)
	}
}

// validarFormParte checks the party fields typed on a document form. prefijo
// is "cliente" or "proveedor", matching the request JSON names.
func validarFormParte(c *campos, prefijo, nombreMsg string, form DatosFiscales) {
	if strings.TrimSpace(form.Nombre) == "" {
		c.add(prefijo+"_nombre", nombreMsg)
	}
	if cuit := strings.TrimSpace(form.CUIT); cuit != "" && !fiscal.CUITValido(cuit) {
		c.add(prefijo+"_cuit", msgCUITFormato)
	}
	if cond := strings.TrimSpace(form.CondicionIVA); cond != "" && !fiscal.CondicionValida(cond) {
		c.add(prefijo+"_condicion_iva", msgCondicionValida)
	}
}

// parsearParteID accepts an empty string as "no reference".
func parsearParteID(c *campos, campo, raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.add(campo, msgIdentificadorParte)
		return nil
	}
	return &id
}

func itemsDesdeInput(in []dto.ItemInput) []model.Item {
	items := make([]model.Item, 0, len(in))
	for _, it := range in {
		items = append(items, model.Item{
			Descripcion:    strings.TrimSpace(it.Descripcion),
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Alicuota:       it.Alicuota,
		})
	}
	return items
}

// snapshotDesdeForm freezes what the user typed, not what the party record
// holds after reconciliation.
func snapshotDesdeForm(form DatosFiscales) model.SnapshotParte {
	form = form.normalizado()
	return model.SnapshotParte{
		Nombre:       form.Nombre,
		CUIT:         nilIfEmpty(form.CUIT),
		CondicionIVA: nilIfEmpty(form.CondicionIVA),
		Direccion:    nilIfEmpty(form.Direccion),
	}
}

func mapSnapshot(s model.SnapshotParte) dto.SnapshotResponse {
	return dto.SnapshotResponse{
		Nombre:       s.Nombre,
		CUIT:         s.CUIT,
		CondicionIVA: s.CondicionIVA,
		Direccion:    s.Direccion,
	}
}

func mapItems(items []model.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemResponse{
			Descripcion:    it.Descripcion,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Alicuota:       it.Alicuota,
			Subtotal:       totales.SubtotalItem(it).Round(2),
			IVA:            totales.IVAItem(it).Round(2),
			Total:          totales.TotalItem(it).Round(2),
		})
	}
	return out
}

// CalcularTotales prices a draft item list without persisting anything.
func CalcularTotales(in []dto.ItemInput) (*dto.TotalesResponse, error) {
	var errs campos
	for i, it := range in {
		if !fiscal.AlicuotaValida(it.Alicuota) {
			errs.add(fmt.Sprintf("items[%d].alicuota", i), msgAlicuotaItem)
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}
	items := itemsDesdeInput(in)
	t := totales.Calcular(items)
	return &dto.TotalesResponse{
		Items:    mapItems(items),
		Subtotal: t.Subtotal,
		IVA:      t.IVA,
		Total:    t.Total,
	}, nil
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
