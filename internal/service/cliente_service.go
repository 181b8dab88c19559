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

const msgNombreClienteRequerido = "El nombre del cliente es requerido"

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	Buscar(ctx context.Context, q string) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func mapCliente(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:           c.ID.String(),
		Nombre:       c.Nombre,
		CUIT:         c.CUIT,
		CondicionIVA: c.CondicionIVA,
		Direccion:    c.Direccion,
		Email:        c.Email,
		Telefono:     c.Telefono,
		Notas:        c.Notas,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func mapClientes(list []model.Cliente) []dto.ClienteResponse {
	out := make([]dto.ClienteResponse, 0, len(list))
	for i := range list {
		out = append(out, mapCliente(&list[i]))
	}
	return out
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	var errs campos
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		errs.add("nombre", msgNombreClienteRequerido)
	}
	validarFiscalParte(&errs, req.CUIT, req.CondicionIVA)
	if err := errs.err(); err != nil {
		return nil, err
	}

	c := &model.Cliente{
		Nombre:       nombre,
		CUIT:         opcional(req.CUIT),
		CondicionIVA: opcional(req.CondicionIVA),
		Direccion:    opcional(req.Direccion),
		Email:        opcional(req.Email),
		Telefono:     opcional(req.Telefono),
		Notas:        opcional(req.Notas),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	resp := mapCliente(c)
	return &resp, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapCliente(c)
	return &resp, nil
}

func (s *clienteService) obtener(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Cliente no encontrado")
		}
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	return c, nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	return mapClientes(list), nil
}

func (s *clienteService) Buscar(ctx context.Context, q string) ([]dto.ClienteResponse, error) {
	if strings.TrimSpace(q) == "" {
		return s.Listar(ctx)
	}
	list, err := s.repo.Search(ctx, q, repository.BusquedaLimite)
	if err != nil {
		return nil, fmt.Errorf("buscar clientes: %w", err)
	}
	return mapClientes(list), nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	var errs campos
	if req.Nombre != nil && strings.TrimSpace(*req.Nombre) == "" {
		errs.add("nombre", msgNombreClienteRequerido)
	}
	validarFiscalParte(&errs, req.CUIT, req.CondicionIVA)
	if err := errs.err(); err != nil {
		return nil, err
	}

	c, err := s.obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil {
		c.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.CUIT != nil {
		c.CUIT = opcional(req.CUIT)
	}
	if req.CondicionIVA != nil {
		c.CondicionIVA = opcional(req.CondicionIVA)
	}
	if req.Direccion != nil {
		c.Direccion = opcional(req.Direccion)
	}
	if req.Email != nil {
		c.Email = opcional(req.Email)
	}
	if req.Telefono != nil {
		c.Telefono = opcional(req.Telefono)
	}
	if req.Notas != nil {
		c.Notas = opcional(req.Notas)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("Cliente no encontrado")
		}
		return nil, fmt.Errorf("actualizar cliente: %w", err)
	}
	resp := mapCliente(c)
	return &resp, nil
}

func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("eliminar cliente: %w", err)
	}
	if !ok {
		return noEncontrado("Cliente no encontrado")
	}
	return nil
}
