package service

import (
	"context"
	"errors"
	"strings"

	"github.com/juanmzaragoza/billing-dad-project/internal/fiscal"
	"github.com/juanmzaragoza/billing-dad-project/internal/logger"
	"github.com/juanmzaragoza/billing-dad-project/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// DatosFiscales is the party data typed on a document form.
type DatosFiscales struct {
	Nombre       string
	CUIT         string
	CondicionIVA string
	Direccion    string
}

func (d DatosFiscales) normalizado() DatosFiscales {
	return DatosFiscales{
		Nombre:       strings.TrimSpace(d.Nombre),
		CUIT:         strings.TrimSpace(d.CUIT),
		CondicionIVA: strings.TrimSpace(d.CondicionIVA),
		Direccion:    strings.TrimSpace(d.Direccion),
	}
}

// Parte is the fiscal view of a stored client or supplier.
type Parte struct {
	ID           uuid.UUID
	CUIT         *string
	CondicionIVA *string
	Direccion    *string
}

// PartyStore is the slice of a party repository reconciliation needs.
// Lookups return gorm.ErrRecordNotFound when nothing matches.
type PartyStore interface {
	ObtenerParte(ctx context.Context, id uuid.UUID) (*Parte, error)
	BuscarPorNombre(ctx context.Context, nombre string) (*Parte, error)
	BuscarPorCUIT(ctx context.Context, cuit string) (*Parte, error)
	CrearParte(ctx context.Context, d DatosFiscales) (uuid.UUID, error)
	EnriquecerParte(ctx context.Context, id uuid.UUID, cuit, condicion, direccion *string) error
}

// PartyLocker serializes search-then-create for one normalized name.
type PartyLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Reconciliation outcomes, also used as the accion metric label.
const (
	AccionOmitida     = "omitida"
	AccionSinParte    = "sin_parte"
	AccionReutilizada = "reutilizada"
	AccionEnriquecida = "enriquecida"
	AccionCreada      = "creada"
	AccionFallida     = "fallida"
)

type ResultadoReconciliacion struct {
	ParteID *uuid.UUID
	Accion  string
}

type ReconciliadorConfig struct {
	// Habilitado=false passes the form id through untouched.
	Habilitado bool
	Locker     PartyLocker
	Metrics    *metrics.Metrics
}

// Reconciliador resolves the party a document should reference from a
// possibly stale id and the fiscal data typed on the form. Store failures
// never fail the document: they are logged and the id resolved so far is kept.
type Reconciliador struct {
	parte string
	store PartyStore
	cfg   ReconciliadorConfig
	log   zerolog.Logger
}

func NewReconciliador(parte string, store PartyStore, cfg ReconciliadorConfig) *Reconciliador {
	return &Reconciliador{
		parte: parte,
		store: store,
		cfg:   cfg,
		log:   logger.WithComponent("reconciliacion").With().Str("parte", parte).Logger(),
	}
}

func (r *Reconciliador) Resolver(ctx context.Context, parteID *uuid.UUID, form DatosFiscales, requiereFiscal bool) ResultadoReconciliacion {
	res := r.resolver(ctx, parteID, form.normalizado(), requiereFiscal)
	r.cfg.Metrics.Reconciliacion(r.parte, res.Accion)
	return res
}

func (r *Reconciliador) resolver(ctx context.Context, parteID *uuid.UUID, form DatosFiscales, requiereFiscal bool) ResultadoReconciliacion {
	if !r.cfg.Habilitado {
		return ResultadoReconciliacion{ParteID: parteID, Accion: AccionOmitida}
	}

	if parteID != nil {
		p, err := r.store.ObtenerParte(ctx, *parteID)
		switch {
		case err == nil:
			return r.enriquecer(ctx, p, form, AccionReutilizada)
		case errors.Is(err, gorm.ErrRecordNotFound):
			r.log.Debug().Str("parte_id", parteID.String()).Msg("referencia inexistente, se resuelve por nombre")
		default:
			r.log.Error().Err(err).Str("parte_id", parteID.String()).Msg("no se pudo obtener la parte")
			return ResultadoReconciliacion{ParteID: parteID, Accion: AccionFallida}
		}
	}

	if form.Nombre == "" {
		return ResultadoReconciliacion{Accion: AccionSinParte}
	}

	if r.cfg.Locker != nil {
		unlock, err := r.cfg.Locker.Lock(ctx, r.parte+":"+strings.ToLower(form.Nombre))
		if err != nil {
			r.log.Warn().Err(err).Str("nombre", form.Nombre).Msg("lock de reconciliación no disponible, se continúa sin lock")
		} else {
			defer unlock()
		}
	}

	p, err := r.buscar(ctx, form)
	if err != nil {
		r.log.Error().Err(err).Str("nombre", form.Nombre).Msg("búsqueda de parte fallida")
		return ResultadoReconciliacion{Accion: AccionFallida}
	}
	if p != nil {
		return r.enriquecer(ctx, p, form, AccionReutilizada)
	}

	if !fiscal.PuedeCrearParte(form.Nombre, form.CUIT, form.CondicionIVA, requiereFiscal) {
		return ResultadoReconciliacion{Accion: AccionSinParte}
	}
	id, err := r.store.CrearParte(ctx, form)
	if err != nil {
		r.log.Error().Err(err).Str("nombre", form.Nombre).Msg("alta implícita de parte fallida")
		return ResultadoReconciliacion{Accion: AccionFallida}
	}
	r.log.Info().Str("parte_id", id.String()).Str("nombre", form.Nombre).Msg("parte creada desde documento")
	return ResultadoReconciliacion{ParteID: &id, Accion: AccionCreada}
}

// buscar prefers an exact case-insensitive name match, then an exact CUIT
// match. (nil, nil) means no match.
func (r *Reconciliador) buscar(ctx context.Context, form DatosFiscales) (*Parte, error) {
	p, err := r.store.BuscarPorNombre(ctx, form.Nombre)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if form.CUIT == "" {
		return nil, nil
	}
	p, err = r.store.BuscarPorCUIT(ctx, form.CUIT)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

func (r *Reconciliador) enriquecer(ctx context.Context, p *Parte, form DatosFiscales, accion string) ResultadoReconciliacion {
	id := p.ID
	if !necesitaEnriquecer(p, form) {
		return ResultadoReconciliacion{ParteID: &id, Accion: accion}
	}
	err := r.store.EnriquecerParte(ctx, id,
		preferNonEmpty(form.CUIT, p.CUIT),
		preferNonEmpty(form.CondicionIVA, p.CondicionIVA),
		preferNonEmpty(form.Direccion, p.Direccion),
	)
	if err != nil {
		r.log.Error().Err(err).Str("parte_id", id.String()).Msg("no se pudieron completar los datos fiscales")
		return ResultadoReconciliacion{ParteID: &id, Accion: AccionFallida}
	}
	return ResultadoReconciliacion{ParteID: &id, Accion: AccionEnriquecida}
}

// necesitaEnriquecer reports whether the form carries a fiscal value the
// stored party lacks or holds differently.
func necesitaEnriquecer(p *Parte, form DatosFiscales) bool {
	return difiere(form.CUIT, p.CUIT) ||
		difiere(form.CondicionIVA, p.CondicionIVA) ||
		difiere(form.Direccion, p.Direccion)
}

func difiere(form string, existente *string) bool {
	if form == "" {
		return false
	}
	return existente == nil || *existente != form
}

// preferNonEmpty keeps the stored value unless the form typed a new one, so a
// blank form field never erases data.
func preferNonEmpty(form string, existente *string) *string {
	if form != "" {
		return &form
	}
	return existente
}

func nilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
