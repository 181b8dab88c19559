package service

import (
	"context"

	"github.com/juanmzaragoza/billing-dad-project/internal/model"
	"github.com/juanmzaragoza/billing-dad-project/internal/repository"

	"github.com/google/uuid"
)

const (
	ParteCliente   = "cliente"
	ParteProveedor = "proveedor"
)

// clientePartes adapts ClienteRepository to PartyStore.
type clientePartes struct{ repo repository.ClienteRepository }

func NewClientePartyStore(repo repository.ClienteRepository) PartyStore {
	return clientePartes{repo: repo}
}

func parteDeCliente(c *model.Cliente) *Parte {
	return &Parte{ID: c.ID, CUIT: c.CUIT, CondicionIVA: c.CondicionIVA, Direccion: c.Direccion}
}

func (s clientePartes) ObtenerParte(ctx context.Context, id uuid.UUID) (*Parte, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return parteDeCliente(c), nil
}

func (s clientePartes) BuscarPorNombre(ctx context.Context, nombre string) (*Parte, error) {
	c, err := s.repo.FindByNombre(ctx, nombre)
	if err != nil {
		return nil, err
	}
	return parteDeCliente(c), nil
}

func (s clientePartes) BuscarPorCUIT(ctx context.Context, cuit string) (*Parte, error) {
	c, err := s.repo.FindByCUIT(ctx, cuit)
	if err != nil {
		return nil, err
	}
	return parteDeCliente(c), nil
}

func (s clientePartes) CrearParte(ctx context.Context, d DatosFiscales) (uuid.UUID, error) {
	c := &model.Cliente{
		Nombre:       d.Nombre,
		CUIT:         nilIfEmpty(d.CUIT),
		CondicionIVA: nilIfEmpty(d.CondicionIVA),
		Direccion:    nilIfEmpty(d.Direccion),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return uuid.Nil, err
	}
	return c.ID, nil
}

func (s clientePartes) EnriquecerParte(ctx context.Context, id uuid.UUID, cuit, condicion, direccion *string) error {
	return s.repo.UpdateFiscal(ctx, id, cuit, condicion, direccion)
}

// proveedorPartes adapts ProveedorRepository to PartyStore.
type proveedorPartes struct{ repo repository.ProveedorRepository }

func NewProveedorPartyStore(repo repository.ProveedorRepository) PartyStore {
	return proveedorPartes{repo: repo}
}

func parteDeProveedor(p *model.Proveedor) *Parte {
	return &Parte{ID: p.ID, CUIT: p.CUIT, CondicionIVA: p.CondicionIVA, Direccion: p.Direccion}
}

func (s proveedorPartes) ObtenerParte(ctx context.Context, id uuid.UUID) (*Parte, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return parteDeProveedor(p), nil
}

func (s proveedorPartes) BuscarPorNombre(ctx context.Context, nombre string) (*Parte, error) {
	p, err := s.repo.FindByNombre(ctx, nombre)
	if err != nil {
		return nil, err
	}
	return parteDeProveedor(p), nil
}

func (s proveedorPartes) BuscarPorCUIT(ctx context.Context, cuit string) (*Parte, error) {
	p, err := s.repo.FindByCUIT(ctx, cuit)
	if err != nil {
		return nil, err
	}
	return parteDeProveedor(p), nil
}

func (s proveedorPartes) CrearParte(ctx context.Context, d DatosFiscales) (uuid.UUID, error) {
	p := &model.Proveedor{
		Nombre:       d.Nombre,
		CUIT:         nilIfEmpty(d.CUIT),
		CondicionIVA: nilIfEmpty(d.CondicionIVA),
		Direccion:    nilIfEmpty(d.Direccion),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

func (s proveedorPartes) EnriquecerParte(ctx context.Context, id uuid.UUID, cuit, condicion, direccion *string) error {
	return s.repo.UpdateFiscal(ctx, id, cuit, condicion, direccion)
}
