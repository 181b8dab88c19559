package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/model"
	"github.com/juanmzaragoza/billing-dad-project/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const msgNombreProveedorRequerido = "El nombre del proveedor es requerido"

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Buscar(ctx context.Context, q string) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func mapProveedor(p *model.Proveedor) dto.ProveedorResponse {
	return dto.ProveedorResponse{
		ID:              p.ID.String(),
		Nombre:          p.Nombre,
		CUIT:            p.CUIT,
		CondicionIVA:    p.CondicionIVA,
		Direccion:       p.Direccion,
		Email:           p.Email,
		Telefono:        p.Telefono,
		PersonaContacto: p.PersonaContacto,
		Notas:           p.Notas,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func mapProveedores(list []model.Proveedor) []dto.ProveedorResponse {
	out := make([]dto.ProveedorResponse, 0, len(list))
	for i := range list {
		out = append(out, mapProveedor(&list[i]))
	}
	return out
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	var errs campos
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		errs.add("nombre", msgNombreProveedorRequerido)
	}
	validarFiscalParte(&errs, req.CUIT, req.CondicionIVA)
	if err := errs.err(); err != nil {
		return nil, err
	}

	p := &model.Proveedor{
		Nombre:          nombre,
		CUIT:            opcional(req.CUIT),
		CondicionIVA:    opcional(req.CondicionIVA),
		Direccion:       opcional(req.Direccion),
		Email:           opcional(req.Email),
		Telefono:        opcional(req.Telefono),
		PersonaContacto: opcional(req.PersonaContacto),
		Notas:           opcional(req.Notas),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("crear proveedor: %w", err)
	}
	resp := mapProveedor(p)
	return &resp, nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapProveedor(p)
	return &resp, nil
}

func (s *proveedorService) obtener(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Proveedor no encontrado")
		}
		return nil, fmt.Errorf("obtener proveedor: %w", err)
	}
	return p, nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar proveedores: %w", err)
	}
	return mapProveedores(list), nil
}

func (s *proveedorService) Buscar(ctx context.Context, q string) ([]dto.ProveedorResponse, error) {
	if strings.TrimSpace(q) == "" {
		return s.Listar(ctx)
	}
	list, err := s.repo.Search(ctx, q, repository.BusquedaLimite)
	if err != nil {
		return nil, fmt.Errorf("buscar proveedores: %w", err)
	}
	return mapProveedores(list), nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	var errs campos
	if req.Nombre != nil && strings.TrimSpace(*req.Nombre) == "" {
		errs.add("nombre", msgNombreProveedorRequerido)
	}
	validarFiscalParte(&errs, req.CUIT, req.CondicionIVA)
	if err := errs.err(); err != nil {
		return nil, err
	}

	p, err := s.obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil {
		p.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.CUIT != nil {
		p.CUIT = opcional(req.CUIT)
	}
	if req.CondicionIVA != nil {
		p.CondicionIVA = opcional(req.CondicionIVA)
	}
	if req.Direccion != nil {
		p.Direccion = opcional(req.Direccion)
	}
	if req.Email != nil {
		p.Email = opcional(req.Email)
	}
	if req.Telefono != nil {
		p.Telefono = opcional(req.Telefono)
	}
	if req.PersonaContacto != nil {
		p.PersonaContacto = opcional(req.PersonaContacto)
	}
	if req.Notas != nil {
		p.Notas = opcional(req.Notas)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Proveedor no encontrado")
		}
		return nil, fmt.Errorf("actualizar proveedor: %w", err)
	}
	resp := mapProveedor(p)
	return &resp, nil
}

func (s *proveedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("eliminar proveedor: %w", err)
	}
	if !ok {
		return noEncontrado("Proveedor no encontrado")
	}
	return nil
}
