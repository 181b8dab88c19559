package repository

import (
	"context"
	"testing"

	"github.com/juanmzaragoza/billing-dad-project/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
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

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nuevaFactura(tipo, fecha, total string) *model.Factura {
	return &model.Factura{
		TipoFactura:     tipo,
		Fecha:           fecha,
		SnapshotCliente: model.SnapshotParte{Nombre: "Cliente"},
		Items: datatypes.NewJSONSlice([]model.Item{
			{Descripcion: "x", Cantidad: dec("1"), PrecioUnitario: dec(total), Alicuota: "0"},
		}),
		CondicionPago: "Contado",
		Subtotal:      dec(total),
		IVA:           decimal.Zero,
		Total:         dec(total),
	}
}

func nuevaOrden(estado, total string) *model.OrdenCompra {
	return &model.OrdenCompra{
		NumeroOrden:       "OC-1",
		Fecha:             "2024-05-10",
		SnapshotProveedor: model.SnapshotParte{Nombre: "Proveedor"},
		Items: datatypes.NewJSONSlice([]model.Item{
			{Descripcion: "x", Cantidad: dec("1"), PrecioUnitario: dec(total), Alicuota: "0"},
		}),
		CondicionPago: "Transferencia",
		Estado:        estado,
		Subtotal:      dec(total),
		Total:         dec(total),
	}
}

// ── Clientes ───────────────────────────────────────────────────────────────

func TestClienteRepo_CreateFind(t *testing.T) {
	repo := NewClienteRepository(newTestDB(t))
	ctx := context.Background()

	c := &model.Cliente{Nombre: "Acme SA", CUIT: strPtr("20123456789")}
	require.NoError(t, repo.Create(ctx, c))
	assert.NotEqual(t, uuid.Nil, c.ID)

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme SA", got.Nombre)

	byName, err := repo.FindByNombre(ctx, "ACME sa")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byName.ID)

	byCUIT, err := repo.FindByCUIT(ctx, "20123456789")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byCUIT.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.FindByNombre(ctx, "Acme")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClienteRepo_ListOrdenadoPorNombre(t *testing.T) {
	repo := NewClienteRepository(newTestDB(t))
	ctx := context.Background()
	for _, n := range []string{"Zeta", "alfa", "Beta"} {
		require.NoError(t, repo.Create(ctx, &model.Cliente{Nombre: n}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Beta", list[0].Nombre)
	assert.Equal(t, "Zeta", list[1].Nombre)
	assert.Equal(t, "alfa", list[2].Nombre)
}

func TestClienteRepo_Search(t *testing.T) {
	repo := NewClienteRepository(newTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Cliente{Nombre: "Panadería Sol", CUIT: strPtr("30711111111")}))
	require.NoError(t, repo.Create(ctx, &model.Cliente{Nombre: "Ferretería Luna"}))
	require.NoError(t, repo.Create(ctx, &model.Cliente{Nombre: "100% Algodón"}))

	t.Run("por nombre sin distinguir mayúsculas", func(t *testing.T) {
		list, err := repo.Search(ctx, "SOL", 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Panadería Sol", list[0].Nombre)
	})

	t.Run("por cuit", func(t *testing.T) {
		list, err := repo.Search(ctx, "30711", 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("comodines escapados", func(t *testing.T) {
		list, err := repo.Search(ctx, "%", 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "100% Algodón", list[0].Nombre)
	})

	t.Run("limite", func(t *testing.T) {
		for i := 0; i < 25; i++ {
			require.NoError(t, repo.Create(ctx, &model.Cliente{Nombre: "Masivo"}))
		}
		list, err := repo.Search(ctx, "masivo", 0)
		require.NoError(t, err)
		assert.Len(t, list, BusquedaLimite)
	})
}

func TestClienteRepo_UpdateFiscalYDelete(t *testing.T) {
	repo := NewClienteRepository(newTestDB(t))
	ctx := context.Background()
	c := &model.Cliente{Nombre: "Acme", Email: strPtr("a@acme.com")}
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.UpdateFiscal(ctx, c.ID, strPtr("20123456789"), strPtr("monotributo"), nil))
	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CUIT)
	assert.Equal(t, "20123456789", *got.CUIT)
	assert.Equal(t, "monotributo", *got.CondicionIVA)
	assert.Nil(t, got.Direccion)
	assert.Equal(t, "a@acme.com", *got.Email)

	assert.ErrorIs(t, repo.UpdateFiscal(ctx, uuid.New(), nil, nil, nil), gorm.ErrRecordNotFound)

	ok, err := repo.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClienteRepo_UpdateInexistente(t *testing.T) {
	repo := NewClienteRepository(newTestDB(t))
	err := repo.Update(context.Background(), &model.Cliente{ID: uuid.New(), Nombre: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// ── Proveedores ────────────────────────────────────────────────────────────

func TestProveedorRepo_UpdateCompleto(t *testing.T) {
	repo := NewProveedorRepository(newTestDB(t))
	ctx := context.Background()
	p := &model.Proveedor{Nombre: "Distribuidora", Telefono: strPtr("1234")}
	require.NoError(t, repo.Create(ctx, p))

	p.Nombre = "Distribuidora Norte"
	p.Telefono = nil
	p.PersonaContacto = strPtr("Ana")
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Distribuidora Norte", got.Nombre)
	assert.Nil(t, got.Telefono)
	assert.Equal(t, "Ana", *got.PersonaContacto)

	byName, err := repo.FindByNombre(ctx, "distribuidora norte")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byName.ID)
}

// ── Facturas ───────────────────────────────────────────────────────────────

func TestFacturaRepo_ListFiltros(t *testing.T) {
	repo := NewFacturaRepository(newTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, nuevaFactura("A", "2024-04-30", "10")))
	require.NoError(t, repo.Create(ctx, nuevaFactura("B", "2024-05-01", "20")))
	require.NoError(t, repo.Create(ctx, nuevaFactura("A", "2024-05-31", "30")))
	require.NoError(t, repo.Create(ctx, nuevaFactura("sin_facturar", "2024-06-01", "40")))

	all, err := repo.List(ctx, FacturaFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	soloA, err := repo.List(ctx, FacturaFilter{Tipo: "A"})
	require.NoError(t, err)
	assert.Len(t, soloA, 2)

	mayo, err := repo.List(ctx, FacturaFilter{Desde: "2024-05-01", Hasta: "2024-05-31"})
	require.NoError(t, err)
	require.Len(t, mayo, 2)
	assert.Equal(t, "2024-05-31", mayo[0].Fecha)
	assert.Equal(t, "2024-05-01", mayo[1].Fecha)
}

func TestFacturaRepo_Agregados(t *testing.T) {
	repo := NewFacturaRepository(newTestDB(t))
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	sum, err := repo.SumTotal(ctx)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())

	require.NoError(t, repo.Create(ctx, nuevaFactura("A", "2024-04-30", "100.25")))
	require.NoError(t, repo.Create(ctx, nuevaFactura("B", "2024-05-15", "50.50")))

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	sum, err = repo.SumTotal(ctx)
	require.NoError(t, err)
	assert.True(t, sum.Round(2).Equal(dec("150.75")), sum.String())

	mes, err := repo.SumTotalEntreFechas(ctx, "2024-05-01", "2024-05-31")
	require.NoError(t, err)
	assert.True(t, mes.Round(2).Equal(dec("50.5")), mes.String())
}

func TestFacturaRepo_UpdateNoTocaSnapshot(t *testing.T) {
	repo := NewFacturaRepository(newTestDB(t))
	ctx := context.Background()
	f := nuevaFactura("B", "2024-05-01", "10")
	f.SnapshotCliente = model.SnapshotParte{Nombre: "Original", CUIT: strPtr("20123456789")}
	require.NoError(t, repo.Create(ctx, f))

	f.SnapshotCliente = model.SnapshotParte{Nombre: "Otro"}
	f.Fecha = "2024-05-02"
	require.NoError(t, repo.Update(ctx, f))

	got, err := repo.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", got.Fecha)
	assert.Equal(t, "Original", got.SnapshotCliente.Nombre)
	require.NotNil(t, got.SnapshotCliente.CUIT)
	assert.Equal(t, "20123456789", *got.SnapshotCliente.CUIT)
	require.Len(t, got.Items, 1)

	// The caller's copy is reloaded from the stored row.
	assert.Equal(t, "Original", f.SnapshotCliente.Nombre)
	assert.True(t, got.UpdatedAt.Equal(f.UpdatedAt))

	assert.ErrorIs(t, repo.Update(ctx, nuevaFactura("A", "2024-01-01", "1")), gorm.ErrRecordNotFound)
}

// ── Órdenes de compra ──────────────────────────────────────────────────────

func TestOrdenCompraRepo_Agregados(t *testing.T) {
	repo := NewOrdenCompraRepository(newTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, nuevaOrden("pendiente", "100")))
	require.NoError(t, repo.Create(ctx, nuevaOrden("en_proceso", "50")))
	require.NoError(t, repo.Create(ctx, nuevaOrden("completada", "25")))
	require.NoError(t, repo.Create(ctx, nuevaOrden("cancelada", "1000")))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	activas, err := repo.CountExcluyendoEstados(ctx, "completada", "cancelada")
	require.NoError(t, err)
	assert.Equal(t, int64(2), activas)

	gastos, err := repo.SumTotalExcluyendoEstados(ctx, "cancelada")
	require.NoError(t, err)
	assert.True(t, gastos.Equal(dec("175")), gastos.String())

	pendientes, err := repo.List(ctx, OrdenCompraFilter{Estado: "pendiente"})
	require.NoError(t, err)
	assert.Len(t, pendientes, 1)
}

// ── Usuarios ───────────────────────────────────────────────────────────────

func TestUsuarioRepo_UpsertYLogin(t *testing.T) {
	repo := NewUsuarioRepository(newTestDB(t))
	ctx := context.Background()

	u := &model.Usuario{Username: "admin", Nombre: "Admin", Email: strPtr("Admin@Example.com"), PasswordHash: "h1", Rol: "administrador"}
	require.NoError(t, repo.Upsert(ctx, u))

	again := &model.Usuario{Username: "admin", Nombre: "Admin 2", PasswordHash: "h2", Rol: "operador"}
	require.NoError(t, repo.Upsert(ctx, again))

	got, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "Admin 2", got.Nombre)
	assert.Equal(t, "h2", got.PasswordHash)
	assert.Equal(t, "operador", got.Rol)

	_, err = repo.FindByUsername(ctx, "nadie")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
