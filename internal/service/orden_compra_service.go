package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const (
	msgNumeroOrdenRequerido = "El número de orden es requerido"
	msgEstadoOrden          = "Estado de orden inválido"
)

type OrdenCompraService interface {
	Crear(ctx context.Context, req dto.CrearOrdenCompraRequest) (*dto.OrdenCompraResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.OrdenCompraResponse, error)
	Listar(ctx context.Context, filter dto.OrdenCompraFilter) ([]dto.OrdenCompraResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOrdenCompraRequest) (*dto.OrdenCompraResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type ordenCompraService struct {
	repo        repository.OrdenCompraRepository
	proveedores *Reconciliador
	invalidador ResumenInvalidador
	metrics     *metrics.Metrics
}

func NewOrdenCompraService(
	repo repository.OrdenCompraRepository,
	proveedores *Reconciliador,
	invalidador ResumenInvalidador,
	m *metrics.Metrics,
) OrdenCompraService {
	return &ordenCompraService{repo: repo, proveedores: proveedores, invalidador: invalidador, metrics: m}
}

func MapOrdenCompra(o *model.OrdenCompra) dto.OrdenCompraResponse {
	return dto.OrdenCompraResponse{
		ID:             o.ID.String(),
		NumeroOrden:    o.NumeroOrden,
		Fecha:          o.Fecha,
		ProveedorID:    uuidString(o.ProveedorID),
		Proveedor:      mapSnapshot(o.SnapshotProveedor),
		Items:          mapItems(o.Items),
		CondicionPago:  o.CondicionPago,
		FechaEntrega:   o.FechaEntrega,
		Notas:          o.Notas,
		Estado:         o.Estado,
		EstadoEtiqueta: fiscal.EtiquetaEstado(o.Estado),
		Subtotal:       o.Subtotal,
		IVA:            o.IVA,
		Total:          o.Total,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (s *ordenCompraService) Crear(ctx context.Context, req dto.CrearOrdenCompraRequest) (*dto.OrdenCompraResponse, error) {
	var errs campos
	numero := strings.TrimSpace(req.NumeroOrden)
	if numero == "" {
		errs.add("numero_orden", msgNumeroOrdenRequerido)
	}
	validarFecha(&errs, "fecha", req.Fecha)
	if strings.TrimSpace(req.FechaEntrega) != "" {
		validarFecha(&errs, "fecha_entrega", req.FechaEntrega)
	}
	proveedorID := parsearParteID(&errs, "proveedor_id", req.ProveedorID)
	form := DatosFiscales{
		Nombre:       req.ProveedorNombre,
		CUIT:         req.ProveedorCUIT,
		CondicionIVA: req.ProveedorCondicionIVA,
		Direccion:    req.ProveedorDireccion,
	}
	validarFormParte(&errs, "proveedor", msgNombreProveedorRequerido, form)
	validarItems(&errs, req.Items)
	validarCondicionPago(&errs, req.CondicionPago)
	estado := req.Estado
	if estado == "" {
		estado = fiscal.EstadoPendiente
	}
	if !fiscal.EstadoOrdenValido(estado) {
		errs.add("estado", msgEstadoOrden)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	// Purchase orders carry no AFIP requirement, so any named supplier may be created.
	res := s.proveedores.Resolver(ctx, proveedorID, form, false)

	items := itemsDesdeInput(req.Items)
	t := totales.Calcular(items)
	o := &model.OrdenCompra{
		NumeroOrden:       numero,
		Fecha:             req.Fecha,
		ProveedorID:       res.ParteID,
		SnapshotProveedor: snapshotDesdeForm(form),
		Items:             datatypes.NewJSONSlice(items),
		CondicionPago:     req.CondicionPago,
		FechaEntrega:      nilIfEmpty(req.FechaEntrega),
		Notas:             nilIfEmpty(req.Notas),
		Estado:            estado,
		Subtotal:          t.Subtotal,
		IVA:               t.IVA,
		Total:             t.Total,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("crear orden de compra: %w", err)
	}
	s.mutado(ctx, "crear")

	resp := MapOrdenCompra(o)
	return &resp, nil
}

func (s *ordenCompraService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.OrdenCompraResponse, error) {
	o, err := s.obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := MapOrdenCompra(o)
	return &resp, nil
}

func (s *ordenCompraService) obtener(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Orden de compra no encontrada")
		}
		return nil, fmt.Errorf("obtener orden de compra: %w", err)
	}
	return o, nil
}

func (s *ordenCompraService) Listar(ctx context.Context, filter dto.OrdenCompraFilter) ([]dto.OrdenCompraResponse, error) {
	list, err := s.repo.List(ctx, repository.OrdenCompraFilter{
		Estado: filter.Estado,
		Desde:  filter.Desde,
		Hasta:  filter.Hasta,
	})
	if err != nil {
		return nil, fmt.Errorf("listar órdenes de compra: %w", err)
	}
	out := make([]dto.OrdenCompraResponse, 0, len(list))
	for i := range list {
		out = append(out, MapOrdenCompra(&list[i]))
	}
	return out, nil
}

func (s *ordenCompraService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOrdenCompraRequest) (*dto.OrdenCompraResponse, error) {
	var errs campos
	if req.NumeroOrden != nil && strings.TrimSpace(*req.NumeroOrden) == "" {
		errs.add("numero_orden", msgNumeroOrdenRequerido)
	}
	if req.Fecha != nil {
		validarFecha(&errs, "fecha", *req.Fecha)
	}
	if req.FechaEntrega != nil && strings.TrimSpace(*req.FechaEntrega) != "" {
		validarFecha(&errs, "fecha_entrega", *req.FechaEntrega)
	}
	if req.CondicionPago != nil {
		validarCondicionPago(&errs, *req.CondicionPago)
	}
	if req.Estado != nil && !fiscal.EstadoOrdenValido(*req.Estado) {
		errs.add("estado", msgEstadoOrden)
	}
	if req.Items != nil {
		validarItems(&errs, req.Items)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	o, err := s.obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.NumeroOrden != nil {
		o.NumeroOrden = strings.TrimSpace(*req.NumeroOrden)
	}
	if req.Fecha != nil {
		o.Fecha = *req.Fecha
	}
	if req.CondicionPago != nil {
		o.CondicionPago = *req.CondicionPago
	}
	if req.FechaEntrega != nil {
		o.FechaEntrega = nilIfEmpty(*req.FechaEntrega)
	}
	if req.Notas != nil {
		o.Notas = nilIfEmpty(*req.Notas)
	}
	if req.Estado != nil {
		o.Estado = *req.Estado
	}
	if req.Items != nil {
		o.Items = datatypes.NewJSONSlice(itemsDesdeInput(req.Items))
	}
	t := totales.Calcular(o.Items)
	o.Subtotal, o.IVA, o.Total = t.Subtotal, t.IVA, t.Total

	if err := s.repo.Update(ctx, o); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Orden de compra no encontrada")
		}
		return nil, fmt.Errorf("actualizar orden de compra: %w", err)
	}
	s.mutado(ctx, "actualizar")

	resp := MapOrdenCompra(o)
	return &resp, nil
}

func (s *ordenCompraService) Eliminar(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("eliminar orden de compra: %w", err)
	}
	if !ok {
		return noEncontrado("Orden de compra no encontrada")
	}
	s.mutado(ctx, "eliminar")
	return nil
}

func (s *ordenCompraService) mutado(ctx context.Context, operacion string) {
	s.metrics.Documento("orden_compra", operacion)
	if s.invalidador != nil {
		s.invalidador.InvalidarResumen(ctx)
	}
}
