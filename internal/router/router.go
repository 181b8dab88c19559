package router

import (
	"time"

	_ "github.com/juanmzaragoza/billing-dad-project/docs"
	"github.com/juanmzaragoza/billing-dad-project/internal/clock"
	"github.com/juanmzaragoza/billing-dad-project/internal/config"
	"github.com/juanmzaragoza/billing-dad-project/internal/handler"
	"github.com/juanmzaragoza/billing-dad-project/internal/infra"
	"github.com/juanmzaragoza/billing-dad-project/internal/metrics"
	"github.com/juanmzaragoza/billing-dad-project/internal/middleware"
	"github.com/juanmzaragoza/billing-dad-project/internal/repository"
	"github.com/juanmzaragoza/billing-dad-project/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps are the process-wide resources built once in cmd/server.
type Deps struct {
	DB *gorm.DB
	// Redis is optional; without it the dashboard cache, the creation lock and
	// document delivery are disabled.
	Redis   *redis.Client
	Metrics *metrics.Metrics
	// Gatherer backs /metrics; nil leaves the route out.
	Gatherer prometheus.Gatherer
	// Encolador queues deliveries; nil answers 503 on the enviar routes.
	Encolador   service.Encolador
	MailBreaker *infra.CircuitBreaker
	Clock       clock.Clock
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Metrics))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(deps.DB)
	clienteRepo := repository.NewClienteRepository(deps.DB)
	proveedorRepo := repository.NewProveedorRepository(deps.DB)
	facturaRepo := repository.NewFacturaRepository(deps.DB)
	ordenRepo := repository.NewOrdenCompraRepository(deps.DB)

	// ── Redis-backed collaborators (optional) ────────────────────────────────
	var (
		cache  service.Cache
		locker service.PartyLocker
	)
	if deps.Redis != nil {
		cache = infra.NewRedisCache(deps.Redis)
		if cfg.ReconciliacionLock {
			locker = infra.NewRedisLocker(deps.Redis)
		}
	}

	// ── Services ─────────────────────────────────────────────────────────────
	recCfg := service.ReconciliadorConfig{Habilitado: cfg.AutocrearPartes, Locker: locker, Metrics: deps.Metrics}
	clientesRec := service.NewReconciliador(service.ParteCliente, service.NewClientePartyStore(clienteRepo), recCfg)
	proveedoresRec := service.NewReconciliador(service.ParteProveedor, service.NewProveedorPartyStore(proveedorRepo), recCfg)

	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	dashboardSvc := service.NewDashboardService(facturaRepo, ordenRepo, cache,
		time.Duration(cfg.DashboardCacheTTL)*time.Second, deps.Clock)
	facturaSvc := service.NewFacturaService(facturaRepo, clientesRec, dashboardSvc, deps.Metrics)
	ordenSvc := service.NewOrdenCompraService(ordenRepo, proveedoresRec, dashboardSvc, deps.Metrics)
	envioSvc := service.NewEnvioService(facturaRepo, ordenRepo, clienteRepo, proveedorRepo,
		deps.Encolador, EmpresaDesdeConfig(cfg))

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc, envioSvc)
	ordenesH := handler.NewOrdenesCompraHandler(ordenSvc, envioSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(deps.DB, deps.Redis, deps.MailBreaker))
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	auth := r.Group("/v1/auth", middleware.LoginRateLimiter())
	{
		auth.POST("/login", authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes: any authenticated operator reads and writes, deletes
	// are reserved to administrators.
	soloAdmin := middleware.RequireRole(middleware.RolAdministrador)
	v1 := r.Group("/v1",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute),
	)
	{
		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", soloAdmin, clientesH.Eliminar)
		}

		proveedores := v1.Group("/proveedores")
		{
			proveedores.POST("", proveedoresH.Crear)
			proveedores.GET("", proveedoresH.Listar)
			proveedores.GET("/:id", proveedoresH.ObtenerPorID)
			proveedores.PUT("/:id", proveedoresH.Actualizar)
			proveedores.DELETE("/:id", soloAdmin, proveedoresH.Eliminar)
		}

		facturas := v1.Group("/facturas")
		{
			facturas.POST("", facturasH.Crear)
			facturas.POST("/validar", facturasH.Validar)
			facturas.GET("", facturasH.Listar)
			facturas.GET("/:id", facturasH.ObtenerPorID)
			facturas.PUT("/:id", facturasH.Actualizar)
			facturas.DELETE("/:id", soloAdmin, facturasH.Eliminar)
			facturas.GET("/:id/pdf", facturasH.PDF)
			facturas.POST("/:id/enviar", facturasH.Enviar)
		}

		ordenes := v1.Group("/ordenes-compra")
		{
			ordenes.POST("", ordenesH.Crear)
			ordenes.GET("", ordenesH.Listar)
			ordenes.GET("/:id", ordenesH.ObtenerPorID)
			ordenes.PUT("/:id", ordenesH.Actualizar)
			ordenes.DELETE("/:id", soloAdmin, ordenesH.Eliminar)
			ordenes.GET("/:id/pdf", ordenesH.PDF)
			ordenes.POST("/:id/enviar", ordenesH.Enviar)
		}

		v1.GET("/dashboard", dashboardH.Resumen)
		v1.POST("/totales", handler.CalcularTotales)
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

// EmpresaDesdeConfig is the issuer printed on every PDF.
func EmpresaDesdeConfig(cfg *config.Config) infra.Empresa {
	return infra.Empresa{Nombre: cfg.EmpresaNombre, CUIT: cfg.EmpresaCUIT}
}
