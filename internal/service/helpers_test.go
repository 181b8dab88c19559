package service

import (
	"context"
	"testing"
	"time"

	"github.com/juanmzaragoza/billing-dad-project/internal/dto"
	"github.com/juanmzaragoza/billing-dad-project/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(desc, cant, precio, alicuota string) dto.ItemInput {
	return dto.ItemInput{Descripcion: desc, Cantidad: dec(cant), PrecioUnitario: dec(precio), Alicuota: alicuota}
}

type stubInvalidador struct{ n int }

func (s *stubInvalidador) InvalidarResumen(context.Context) { s.n++ }

// memCache is an in-process Cache for dashboard summaries.
type memCache struct {
	data     map[string]dto.DashboardResponse
	counters map[string]int64
	sets     int
	deletes  int
}

var _ Cache = (*memCache)(nil)

func newMemCache() *memCache {
	return &memCache{data: map[string]dto.DashboardResponse{}, counters: map[string]int64{}}
}

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*dest.(*dto.DashboardResponse) = v
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	c.data[key] = value.(dto.DashboardResponse)
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.deletes++
	delete(c.data, key)
	return nil
}

func (c *memCache) Counter(_ context.Context, key string) (int64, error) {
	return c.counters[key], nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.counters[key]++
	return c.counters[key], nil
}
