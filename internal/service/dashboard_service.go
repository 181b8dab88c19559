package service

import (
	"context"
	"fmt"
	"time"

	"github.com/juanmzaragoza/billing-dad-project/internal/clock"
	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/fiscal"
	"github.com/juanmzaragoza/billing-dad-project/internal/logger"
	"github.com/juanmzaragoza/billing-dad-project/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Summaries are cached under a key that embeds a version counter. Every
// invalidation bumps the counter, so a summary computed before a mutation is
// written under a version no reader asks for anymore.
const claveVersionResumen = "dashboard:resumen:version"

func claveResumen(version int64) string {
	return fmt.Sprintf("dashboard:resumen:v%d", version)
}

const msgMetricaNoDisponible = "métrica no disponible"

// Cache stores JSON-serializable values and integer counters. Get reports
// false on a miss; Counter reports 0 for a missing counter.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Counter(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

type DashboardService interface {
	Resumen(ctx context.Context) dto.DashboardResponse
	InvalidarResumen(ctx context.Context)
}

type dashboardService struct {
	facturas repository.FacturaRepository
	ordenes  repository.OrdenCompraRepository
	cache    Cache
	ttl      time.Duration
	clock    clock.Clock
	log      zerolog.Logger
}

// NewDashboardService builds the aggregator. cache may be nil; a zero ttl
// disables caching as well.
func NewDashboardService(
	facturas repository.FacturaRepository,
	ordenes repository.OrdenCompraRepository,
	cache Cache,
	ttl time.Duration,
	clk clock.Clock,
) DashboardService {
	return &dashboardService{
		facturas: facturas,
		ordenes:  ordenes,
		cache:    cache,
		ttl:      ttl,
		clock:    clk,
		log:      logger.WithComponent("dashboard"),
	}
}

// RangoMes returns the first and last day of t's calendar month as YYYY-MM-DD.
func RangoMes(t time.Time) (desde, hasta string) {
	primero := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	ultimo := primero.AddDate(0, 1, -1)
	return primero.Format(time.DateOnly), ultimo.Format(time.DateOnly)
}

func (s *dashboardService) cacheActiva() bool {
	return s.cache != nil && s.ttl > 0
}

func (s *dashboardService) Resumen(ctx context.Context) dto.DashboardResponse {
	if !s.cacheActiva() {
		return s.calcular(ctx)
	}

	version, err := s.cache.Counter(ctx, claveVersionResumen)
	if err != nil {
		s.log.Warn().Err(err).Msg("versión del resumen no disponible, se calcula sin caché")
		return s.calcular(ctx)
	}
	clave := claveResumen(version)

	var cached dto.DashboardResponse
	hit, err := s.cache.Get(ctx, clave, &cached)
	if err != nil {
		s.log.Warn().Err(err).Msg("lectura de caché del resumen fallida")
	} else if hit {
		return cached
	}

	r := s.calcular(ctx)

	if !r.Parcial {
		if err := s.cache.Set(ctx, clave, r, s.ttl); err != nil {
			s.log.Warn().Err(err).Msg("no se pudo guardar el resumen en caché")
		}
	}
	return r
}

func (s *dashboardService) InvalidarResumen(ctx context.Context) {
	if s.cache == nil {
		return
	}
	version, err := s.cache.Incr(ctx, claveVersionResumen)
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo invalidar el resumen en caché")
		return
	}
	// The previous summary is unreachable now; drop it instead of waiting for the TTL.
	if err := s.cache.Delete(ctx, claveResumen(version-1)); err != nil {
		s.log.Debug().Err(err).Msg("no se pudo borrar el resumen anterior")
	}
}

func (s *dashboardService) calcular(ctx context.Context) dto.DashboardResponse {
	now := s.clock.Now()
	desde, hasta := RangoMes(now)

	var r dto.DashboardResponse
	r.GeneradoEn = now

	r.TotalFacturas = s.conteo(s.facturas.Count(ctx))
	r.TotalIngresos = s.monto(s.facturas.SumTotal(ctx))
	r.IngresosMensuales = s.monto(s.facturas.SumTotalEntreFechas(ctx, desde, hasta))
	r.TotalGastos = s.monto(s.ordenes.SumTotalExcluyendoEstados(ctx, fiscal.EstadoCancelada))
	r.TotalOrdenesCompra = s.conteo(s.ordenes.Count(ctx))
	r.OrdenesActivas = s.conteo(s.ordenes.CountExcluyendoEstados(ctx, fiscal.EstadoCompletada, fiscal.EstadoCancelada))

	if r.TotalIngresos.Error != "" || r.TotalGastos.Error != "" {
		r.Ganancia = dto.MetricaMonto{Valor: decimal.Zero, Error: msgMetricaNoDisponible}
	} else {
		r.Ganancia = dto.MetricaMonto{Valor: r.TotalIngresos.Valor.Sub(r.TotalGastos.Valor).Round(2)}
	}

	for _, e := range []string{
		r.TotalFacturas.Error, r.TotalIngresos.Error, r.IngresosMensuales.Error,
		r.TotalGastos.Error, r.Ganancia.Error, r.TotalOrdenesCompra.Error, r.OrdenesActivas.Error,
	} {
		if e != "" {
			r.Parcial = true
			break
		}
	}
	return r
}

func (s *dashboardService) monto(v decimal.Decimal, err error) dto.MetricaMonto {
	if err != nil {
		s.log.Error().Err(err).Msg("agregado del resumen fallido")
		return dto.MetricaMonto{Valor: decimal.Zero, Error: msgMetricaNoDisponible}
	}
	return dto.MetricaMonto{Valor: v.Round(2)}
}

func (s *dashboardService) conteo(n int64, err error) dto.MetricaConteo {
	if err != nil {
		s.log.Error().Err(err).Msg("conteo del resumen fallido")
		return dto.MetricaConteo{Error: msgMetricaNoDisponible}
	}
	return dto.MetricaConteo{Valor: n}
}
