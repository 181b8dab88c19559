package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/fiscal"
	"github.com/juanmzaragoza/billing-dad-project/internal/metrics"
	"github.com/juanmzaragoza/billing-dad-project/internal/model"
	"github.com/juanmzaragoza/billing-dad-project/internal/repository"
	"github.com/juanmzaragoza/billing-dad-project/internal/totales"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const msgTipoFactura = "Tipo de factura inválido"

type FacturaService interface {
	Crear(ctx context.Context, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error)
	Listar(ctx context.Context, filter dto.FacturaFilter) ([]dto.FacturaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFacturaRequest) (*dto.FacturaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	// Validar runs every create-time check without touching the store.
	Validar(ctx context.Context, req dto.CrearFacturaRequest) dto.ValidacionFacturaResponse
}

type facturaService struct {
	repo        repository.FacturaRepository
	clientes    *Reconciliador
	invalidador ResumenInvalidador
	metrics     *metrics.Metrics
}

func NewFacturaService(
	repo repository.FacturaRepository,
	clientes *Reconciliador,
	invalidador ResumenInvalidador,
	m *metrics.Metrics,
) FacturaService {
	return &facturaService{repo: repo, clientes: clientes, invalidador: invalidador, metrics: m}
}

func MapFactura(f *model.Factura) dto.FacturaResponse {
	pv, num := deref(f.PuntoDeVenta), deref(f.NumeroFactura)
	return dto.FacturaResponse{
		ID:            f.ID.String(),
		TipoFactura:   f.TipoFactura,
		TipoEtiqueta:  fiscal.EtiquetaTipo(f.TipoFactura),
		PuntoDeVenta:  f.PuntoDeVenta,
		NumeroFactura: f.NumeroFactura,
		Numero:        fiscal.NumeroComprobante(f.TipoFactura, pv, num),
		Etiqueta:      fiscal.EtiquetaComprobante(f.TipoFactura, pv, num),
		Fecha:         f.Fecha,
		ClienteID:     uuidString(f.ClienteID),
		Cliente:       mapSnapshot(f.SnapshotCliente),
		Items:         mapItems(f.Items),
		CondicionPago: f.CondicionPago,
		Subtotal:      f.Subtotal,
		IVA:           f.IVA,
		Total:         f.Total,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func formCliente(req dto.CrearFacturaRequest) DatosFiscales {
	return DatosFiscales{
		Nombre:       req.ClienteNombre,
		CUIT:         req.ClienteCUIT,
		CondicionIVA: req.ClienteCondicionIVA,
		Direccion:    req.ClienteDireccion,
	}
}

// validarCreacion returns the field errors of a create request and the parsed
// client id.
func validarCreacion(req dto.CrearFacturaRequest) (campos, *uuid.UUID) {
	var errs campos
	if !fiscal.TipoFacturaValido(req.TipoFactura) {
		errs.add("tipo_factura", msgTipoFactura)
	}
	validarFecha(&errs, "fecha", req.Fecha)
	clienteID := parsearParteID(&errs, "cliente_id", req.ClienteID)
	form := formCliente(req)
	validarFormParte(&errs, "cliente", msgNombreClienteRequerido, form)
	validarItems(&errs, req.Items)
	validarCondicionPago(&errs, req.CondicionPago)

	form = form.normalizado()
	for campo, msg := range fiscal.ValidarDatosAFIP(fiscal.DatosAFIP{
		TipoFactura:   req.TipoFactura,
		PuntoDeVenta:  req.PuntoDeVenta,
		NumeroFactura: req.NumeroFactura,
		CUIT:          form.CUIT,
		CondicionIVA:  form.CondicionIVA,
	}) {
		errs.add(campo, msg)
	}
	return errs, clienteID
}

func (s *facturaService) Validar(_ context.Context, req dto.CrearFacturaRequest) dto.ValidacionFacturaResponse {
	errs, _ := validarCreacion(req)
	form := formCliente(req).normalizado()
	requiere := fiscal.RequiereDatosFiscales(req.TipoFactura)
	return dto.ValidacionFacturaResponse{
		Valido:            len(errs) == 0,
		Campos:            errs,
		RequiereFiscal:    requiere,
		PuedeCrearCliente: fiscal.PuedeCrearParte(form.Nombre, form.CUIT, form.CondicionIVA, requiere),
	}
}

func (s *facturaService) Crear(ctx context.Context, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error) {
	errs, clienteID := validarCreacion(req)
	if err := errs.err(); err != nil {
		return nil, err
	}

	form := formCliente(req)
	res := s.clientes.Resolver(ctx, clienteID, form, fiscal.RequiereDatosFiscales(req.TipoFactura))

	items := itemsDesdeInput(req.Items)
	t := totales.Calcular(items)
	f := &model.Factura{
		TipoFactura:     req.TipoFactura,
		PuntoDeVenta:    nilIfEmpty(req.PuntoDeVenta),
		NumeroFactura:   nilIfEmpty(req.NumeroFactura),
		Fecha:           req.Fecha,
		ClienteID:       res.ParteID,
		SnapshotCliente: snapshotDesdeForm(form),
		Items:           datatypes.NewJSONSlice(items),
		CondicionPago:   req.CondicionPago,
		Subtotal:        t.Subtotal,
		IVA:             t.IVA,
		Total:           t.Total,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("crear factura: %w", err)
	}
	s.mutado(ctx, "crear")

	resp := MapFactura(f)
	return &resp, nil
}

func (s *facturaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error) {
	f, err := s.obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := MapFactura(f)
	return &resp, nil
}

func (s *facturaService) obtener(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Factura no encontrada")
		}
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	return f, nil
}

func (s *facturaService) Listar(ctx context.Context, filter dto.FacturaFilter) ([]dto.FacturaResponse, error) {
	list, err := s.repo.List(ctx, repository.FacturaFilter{
		Tipo:  filter.Tipo,
		Desde: filter.Desde,
		Hasta: filter.Hasta,
	})
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	out := make([]dto.FacturaResponse, 0, len(list))
	for i := range list {
		out = append(out, MapFactura(&list[i]))
	}
	return out, nil
}

func (s *facturaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFacturaRequest) (*dto.FacturaResponse, error) {
	var errs campos
	if req.TipoFactura != nil && !fiscal.TipoFacturaValido(*req.TipoFactura) {
		errs.add("tipo_factura", msgTipoFactura)
	}
	if req.Fecha != nil {
		validarFecha(&errs, "fecha", *req.Fecha)
	}
	if req.CondicionPago != nil {
		validarCondicionPago(&errs, *req.CondicionPago)
	}
	if req.Items != nil {
		validarItems(&errs, req.Items)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	f, err := s.obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.TipoFactura != nil {
		f.TipoFactura = *req.TipoFactura
	}
	if req.PuntoDeVenta != nil {
		f.PuntoDeVenta = nilIfEmpty(*req.PuntoDeVenta)
	}
	if req.NumeroFactura != nil {
		f.NumeroFactura = nilIfEmpty(*req.NumeroFactura)
	}
	if req.Fecha != nil {
		f.Fecha = *req.Fecha
	}
	if req.CondicionPago != nil {
		f.CondicionPago = *req.CondicionPago
	}
	if req.Items != nil {
		f.Items = datatypes.NewJSONSlice(itemsDesdeInput(req.Items))
	}

	// The merged invoice must still satisfy the AFIP rule; the client data
	// comes from the frozen snapshot.
	for campo, msg := range fiscal.ValidarDatosAFIP(fiscal.DatosAFIP{
		TipoFactura:   f.TipoFactura,
		PuntoDeVenta:  deref(f.PuntoDeVenta),
		NumeroFactura: deref(f.NumeroFactura),
		CUIT:          deref(f.SnapshotCliente.CUIT),
		CondicionIVA:  deref(f.SnapshotCliente.CondicionIVA),
	}) {
		errs.add(campo, msg)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	t := totales.Calcular(f.Items)
	f.Subtotal, f.IVA, f.Total = t.Subtotal, t.IVA, t.Total

	if err := s.repo.Update(ctx, f); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Factura no encontrada")
		}
		return nil, fmt.Errorf("actualizar factura: %w", err)
	}
	s.mutado(ctx, "actualizar")

	resp := MapFactura(f)
	return &resp, nil
}

func (s *facturaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("eliminar factura: %w", err)
	}
	if !ok {
		return noEncontrado("Factura no encontrada")
	}
	s.mutado(ctx, "eliminar")
	return nil
}

func (s *facturaService) mutado(ctx context.Context, operacion string) {
	s.metrics.Documento("factura", operacion)
	if s.invalidador != nil {
		s.invalidador.InvalidarResumen(ctx)
	}
}
