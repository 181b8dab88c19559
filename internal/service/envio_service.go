package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/infra"
	"github.com/juanmzaragoza/billing-dad-project/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrEnviosDeshabilitados is returned when no job queue is configured.
var ErrEnviosDeshabilitados = errors.New("envío de documentos deshabilitado")

const msgSinDestinatario = "El documento no tiene un destinatario; indique un email"

// Encolador queues an email delivery for background processing.
type Encolador interface {
	EncolarEnvio(ctx context.Context, p dto.EnvioJobPayload) error
}

// DocumentoRenderizado is a PDF ready to be downloaded or attached.
type DocumentoRenderizado struct {
	PDF     []byte
	Archivo string
	Titulo  string
}

type EnvioService interface {
	PDFFactura(ctx context.Context, id uuid.UUID) (*DocumentoRenderizado, error)
	PDFOrdenCompra(ctx context.Context, id uuid.UUID) (*DocumentoRenderizado, error)
	EnviarFactura(ctx context.Context, id uuid.UUID, req dto.EnviarDocumentoRequest) (*dto.EnvioResponse, error)
	EnviarOrdenCompra(ctx context.Context, id uuid.UUID, req dto.EnviarDocumentoRequest) (*dto.EnvioResponse, error)
	// RenderizarDocumento is used by the delivery worker; documento is one of
	// dto.DocumentoFactura or dto.DocumentoOrdenCompra.
	RenderizarDocumento(ctx context.Context, documento string, id uuid.UUID) ([]byte, string, string, error)
}

type envioService struct {
	facturas    repository.FacturaRepository
	ordenes     repository.OrdenCompraRepository
	clientes    repository.ClienteRepository
	proveedores repository.ProveedorRepository
	encolador   Encolador
	empresa     infra.Empresa
}

// NewEnvioService wires PDF rendering and delivery. encolador may be nil, in
// which case Enviar* return ErrEnviosDeshabilitados.
func NewEnvioService(
	facturas repository.FacturaRepository,
	ordenes repository.OrdenCompraRepository,
	clientes repository.ClienteRepository,
	proveedores repository.ProveedorRepository,
	encolador Encolador,
	empresa infra.Empresa,
) EnvioService {
	return &envioService{
		facturas:    facturas,
		ordenes:     ordenes,
		clientes:    clientes,
		proveedores: proveedores,
		encolador:   encolador,
		empresa:     empresa,
	}
}

func (s *envioService) render(doc infra.DocumentoPDF) (*DocumentoRenderizado, error) {
	var buf bytes.Buffer
	if err := infra.GenerarPDF(&buf, s.empresa, doc); err != nil {
		return nil, err
	}
	return &DocumentoRenderizado{PDF: buf.Bytes(), Archivo: doc.Archivo, Titulo: doc.Titulo}, nil
}

func (s *envioService) PDFFactura(ctx context.Context, id uuid.UUID) (*DocumentoRenderizado, error) {
	f, err := s.facturas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Factura no encontrada")
		}
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	return s.render(infra.DocumentoDesdeFactura(f))
}

func (s *envioService) PDFOrdenCompra(ctx context.Context, id uuid.UUID) (*DocumentoRenderizado, error) {
	o, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Orden de compra no encontrada")
		}
		return nil, fmt.Errorf("obtener orden de compra: %w", err)
	}
	return s.render(infra.DocumentoDesdeOrden(o))
}

func (s *envioService) RenderizarDocumento(ctx context.Context, documento string, id uuid.UUID) ([]byte, string, string, error) {
	var (
		r   *DocumentoRenderizado
		err error
	)
	switch documento {
	case dto.DocumentoFactura:
		r, err = s.PDFFactura(ctx, id)
	case dto.DocumentoOrdenCompra:
		r, err = s.PDFOrdenCompra(ctx, id)
	default:
		return nil, "", "", fmt.Errorf("documento desconocido %q", documento)
	}
	if err != nil {
		return nil, "", "", err
	}
	return r.PDF, r.Archivo, r.Titulo, nil
}

func (s *envioService) EnviarFactura(ctx context.Context, id uuid.UUID, req dto.EnviarDocumentoRequest) (*dto.EnvioResponse, error) {
	if s.encolador == nil {
		return nil, ErrEnviosDeshabilitados
	}
	f, err := s.facturas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Factura no encontrada")
		}
		return nil, fmt.Errorf("obtener factura: %w", err)
	}

	destino := destinatarioExplicito(req)
	if destino == "" && f.ClienteID != nil {
		if c, err := s.clientes.FindByID(ctx, *f.ClienteID); err == nil {
			destino = deref(c.Email)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("obtener cliente: %w", err)
		}
	}
	return s.encolar(ctx, dto.DocumentoFactura, f.ID, destino)
}

func (s *envioService) EnviarOrdenCompra(ctx context.Context, id uuid.UUID, req dto.EnviarDocumentoRequest) (*dto.EnvioResponse, error) {
	if s.encolador == nil {
		return nil, ErrEnviosDeshabilitados
	}
	o, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Orden de compra no encontrada")
		}
		return nil, fmt.Errorf("obtener orden de compra: %w", err)
	}

	destino := destinatarioExplicito(req)
	if destino == "" && o.ProveedorID != nil {
		if p, err := s.proveedores.FindByID(ctx, *o.ProveedorID); err == nil {
			destino = deref(p.Email)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("obtener proveedor: %w", err)
		}
	}
	return s.encolar(ctx, dto.DocumentoOrdenCompra, o.ID, destino)
}

func destinatarioExplicito(req dto.EnviarDocumentoRequest) string {
	if req.Email == nil {
		return ""
	}
	return strings.TrimSpace(*req.Email)
}

func (s *envioService) encolar(ctx context.Context, documento string, id uuid.UUID, destino string) (*dto.EnvioResponse, error) {
	if destino == "" {
		return nil, &ValidationError{Campos: map[string]string{"email": msgSinDestinatario}}
	}
	err := s.encolador.EncolarEnvio(ctx, dto.EnvioJobPayload{
		Documento:    documento,
		ID:           id.String(),
		Destinatario: destino,
	})
	if err != nil {
		return nil, fmt.Errorf("encolar envío: %w", err)
	}
	return &dto.EnvioResponse{Encolado: true, Destinatario: destino}, nil
}
