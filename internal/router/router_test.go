package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/juanmzaragoza/billing-dad-project/internal/config"
	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/metrics"
	"github.com/juanmzaragoza/billing-dad-project/internal/model"
	"github.com/juanmzaragoza/billing-dad-project/internal/repository"
	"github.com/juanmzaragoza/billing-dad-project/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type testEnv struct {
	engine   *gin.Engine
	admin    string
	operador string
}

func testConfig() *config.Config {
	return &config.Config{
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		CORSOrigins:        "*",
		EmpresaNombre:      "Mi Empresa",
		EmpresaCUIT:        "30-71234567-8",
		AutocrearPartes:    true,
		DashboardCacheTTL:  60,
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Cliente{}, &model.Proveedor{}, &model.Factura{}, &model.OrdenCompra{}, &model.Usuario{},
	))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	db := newTestDB(t)

	auth := service.NewAuthService(repository.NewUsuarioRepository(db), cfg)
	for _, u := range []dto.GuardarUsuarioRequest{
		{Username: "admin", Nombre: "Administración", Password: "admin1234", Rol: "administrador"},
		{Username: "mostrador", Nombre: "Mostrador", Password: "mostrador1", Rol: "operador"},
	} {
		_, err := auth.GuardarUsuario(context.Background(), u)
		require.NoError(t, err)
	}

	reg := prometheus.NewRegistry()
	r := New(cfg, Deps{DB: db, Metrics: metrics.New(reg), Gatherer: reg})

	env := &testEnv{engine: r}
	env.admin = login(t, r, "admin", "admin1234")
	env.operador = login(t, r, "mostrador", "mostrador1")
	return env
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/v1/auth/login", map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body dto.LoginResponse
	decodeJSON(t, w, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func do(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func facturaBody() map[string]any {
	return map[string]any{
		"tipo_factura":          "A",
		"punto_de_venta":        "0001",
		"numero_factura":        "00000001",
		"fecha":                 "2024-05-10",
		"cliente_nombre":        "Panadería Sol",
		"cliente_cuit":          "30712345678",
		"cliente_condicion_iva": "responsable_inscripto",
		"condicion_pago":        "Contado",
		"items": []map[string]any{
			{"descripcion": "Harina", "cantidad": "2", "precio_unitario": "100", "alicuota": "21"},
		},
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestHealth_SinRedis(t *testing.T) {
	env := setupTestEnv(t)

	w := do(t, env.engine, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decodeJSON(t, w, &body)
	assert.Equal(t, "connected", body["db"])
	assert.Equal(t, "disabled", body["redis"])
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuth_RutasProtegidas(t *testing.T) {
	env := setupTestEnv(t)

	w := do(t, env.engine, http.MethodGet, "/v1/facturas", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, env.engine, http.MethodPost, "/v1/auth/login",
		map[string]string{"username": "admin", "password": "incorrecta"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Refresh(t *testing.T) {
	env := setupTestEnv(t)

	w := do(t, env.engine, http.MethodPost, "/v1/auth/login",
		map[string]string{"username": "admin", "password": "admin1234"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var tokens dto.LoginResponse
	decodeJSON(t, w, &tokens)

	w = do(t, env.engine, http.MethodPost, "/v1/auth/refresh",
		map[string]string{"refresh_token": tokens.RefreshToken}, "")
	require.Equal(t, http.StatusOK, w.Code)

	// An access token cannot be used as refresh token.
	w = do(t, env.engine, http.MethodPost, "/v1/auth/refresh",
		map[string]string{"refresh_token": tokens.AccessToken}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFacturas_CicloCompleto(t *testing.T) {
	env := setupTestEnv(t)

	w := do(t, env.engine, http.MethodPost, "/v1/facturas", facturaBody(), env.operador)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var f dto.FacturaResponse
	decodeJSON(t, w, &f)
	assertDec(t, "242", f.Total)
	assert.Equal(t, "Factura A 0001-00000001", f.Etiqueta)
	require.NotNil(t, f.ClienteID)

	// The client was reconciled into the directory.
	w = do(t, env.engine, http.MethodGet, "/v1/clientes?q=panader", nil, env.operador)
	require.Equal(t, http.StatusOK, w.Code)
	var clientes []dto.ClienteResponse
	decodeJSON(t, w, &clientes)
	require.Len(t, clientes, 1)
	assert.Equal(t, *f.ClienteID, clientes[0].ID)

	w = do(t, env.engine, http.MethodGet, "/v1/facturas/"+f.ID, nil, env.operador)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, env.engine, http.MethodPut, "/v1/facturas/"+f.ID,
		map[string]any{"condicion_pago": "Transferencia"}, env.operador)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeJSON(t, w, &f)
	assert.Equal(t, "Transferencia", f.CondicionPago)

	w = do(t, env.engine, http.MethodGet, "/v1/facturas?tipo=A", nil, env.operador)
	require.Equal(t, http.StatusOK, w.Code)
	var lista []dto.FacturaResponse
	decodeJSON(t, w, &lista)
	assert.Len(t, lista, 1)

	w = do(t, env.engine, http.MethodGet, "/v1/facturas/"+f.ID+"/pdf", nil, env.operador)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	// Deleting is reserved to administrators.
	w = do(t, env.engine, http.MethodDelete, "/v1/facturas/"+f.ID, nil, env.operador)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, env.engine, http.MethodDelete, "/v1/facturas/"+f.ID, nil, env.admin)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, env.engine, http.MethodGet, "/v1/facturas/"+f.ID, nil, env.admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFacturas_ValidacionAFIP(t *testing.T) {
	env := setupTestEnv(t)

	body := facturaBody()
	delete(body, "punto_de_venta")
	delete(body, "cliente_cuit")

	w := do(t, env.engine, http.MethodPost, "/v1/facturas", body, env.operador)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var verr struct {
		Detail string            `json:"detail"`
		Fields map[string]string `json:"fields"`
	}
	decodeJSON(t, w, &verr)
	assert.Equal(t, "Error de validación", verr.Detail)
	assert.Contains(t, verr.Fields, "punto_de_venta")
	assert.Contains(t, verr.Fields, "cliente_cuit")

	// The dry run reports the same problems without a 4xx.
	w = do(t, env.engine, http.MethodPost, "/v1/facturas/validar", body, env.operador)
	require.Equal(t, http.StatusOK, w.Code)
	var val dto.ValidacionFacturaResponse
	decodeJSON(t, w, &val)
	assert.False(t, val.Valido)
}

func TestFacturas_ErroresDeEntrada(t *testing.T) {
	env := setupTestEnv(t)

	w := do(t, env.engine, http.MethodGet, "/v1/facturas/no-es-uuid", nil, env.operador)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, env.engine, http.MethodGet, "/v1/facturas/"+uuid.NewString(), nil, env.operador)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/facturas", strings.NewReader("{no es json"))
	req.Header.Set("Authorization", "Bearer "+env.operador)
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnviar_SinColaResponde503(t *testing.T) {
	env := setupTestEnv(t)

	w := do(t, env.engine, http.MethodPost, "/v1/facturas", facturaBody(), env.operador)
	require.Equal(t, http.StatusCreated, w.Code)
	var f dto.FacturaResponse
	decodeJSON(t, w, &f)

	w = do(t, env.engine, http.MethodPost, "/v1/facturas/"+f.ID+"/enviar",
		map[string]string{"email": "compras@sol.com.ar"}, env.operador)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestOrdenesCompra_YDashboard(t *testing.T) {
	env := setupTestEnv(t)

	w := do(t, env.engine, http.MethodPost, "/v1/ordenes-compra", map[string]any{
		"numero_orden":     "OC-0001",
		"fecha":            "2024-05-12",
		"proveedor_nombre": "Distribuidora Norte",
		"estado":           "pendiente",
		"condicion_pago":   "Contado",
		"items": []map[string]any{
			{"descripcion": "Yerba", "cantidad": "10", "precio_unitario": "15.50", "alicuota": "21"},
		},
	}, env.operador)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var o dto.OrdenCompraResponse
	decodeJSON(t, w, &o)
	assertDec(t, "187.55", o.Total)

	w = do(t, env.engine, http.MethodPost, "/v1/facturas", facturaBody(), env.operador)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, env.engine, http.MethodGet, "/v1/dashboard", nil, env.operador)
	require.Equal(t, http.StatusOK, w.Code)
	var d dto.DashboardResponse
	decodeJSON(t, w, &d)
	assert.Equal(t, int64(1), d.TotalFacturas.Valor)
	assertDec(t, "242", d.TotalIngresos.Valor)
	assertDec(t, "187.55", d.TotalGastos.Valor)
	assert.Equal(t, int64(1), d.OrdenesActivas.Valor)
	assert.False(t, d.Parcial)
}

func TestTotales(t *testing.T) {
	env := setupTestEnv(t)

	w := do(t, env.engine, http.MethodPost, "/v1/totales", map[string]any{
		"items": []map[string]any{
			{"descripcion": "A", "cantidad": "1", "precio_unitario": "100", "alicuota": "10.5"},
			{"descripcion": "B", "cantidad": "3", "precio_unitario": "10", "alicuota": "0"},
		},
	}, env.operador)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tot dto.TotalesResponse
	decodeJSON(t, w, &tot)
	assertDec(t, "130", tot.Subtotal)
	assertDec(t, "10.5", tot.IVA)
	assertDec(t, "140.5", tot.Total)
}

func TestMetrics_ExponeContadores(t *testing.T) {
	env := setupTestEnv(t)
	do(t, env.engine, http.MethodGet, "/health", nil, "")

	w := do(t, env.engine, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "facturacion_http_requests_total")
}

func TestSwagger_SoloFueraDeProduccion(t *testing.T) {
	env := setupTestEnv(t)

	w := do(t, env.engine, http.MethodGet, "/swagger/doc.json", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	decodeJSON(t, w, &doc)
	assert.Equal(t, "/v1", doc.BasePath)
	assert.Contains(t, doc.Paths, "/facturas/{id}/enviar")
	assert.Contains(t, doc.Paths["/ordenes-compra/{id}"], "delete")

	cfg := testConfig()
	cfg.Env = "production"
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })
	prod := New(cfg, Deps{DB: newTestDB(t)})
	w = do(t, prod, http.MethodGet, "/swagger/doc.json", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
