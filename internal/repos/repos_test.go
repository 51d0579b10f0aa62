package repos

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mkProduct(t *testing.T, db *sqlx.DB, name string, price string, stock int) domain.Product {
	t.Helper()
	p := domain.Product{Name: name, Price: decimal.RequireFromString(price), StockQuantity: stock, Active: true}
	require.NoError(t, NewProductRepo(db).Create(context.Background(), &p))
	return p
}

func TestOpenDBSeedsUsersOnce(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, seedUsers(db))

	users, err := NewUserRepo(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice@storefront.test", users[0].Email)
	assert.Equal(t, domain.RoleAdmin, users[2].Role)
}

func TestOpenDBReportsUnreachableFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "dir", "store.db")
	db, err := OpenDB(dsn)
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestSeedDemoOnlyWhenEmpty(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedDemo(db))
	require.NoError(t, SeedDemo(db))

	prods, err := NewProductRepo(db).ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, prods, 3)
}

func TestProductRepoSearchEscapesWildcards(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	mkProduct(t, db, "100% Cotton Tee", "12.00", 3)
	mkProduct(t, db, "Mug", "5.50", 3)

	got, err := NewProductRepo(db).Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% Cotton Tee", got[0].Name)

	got, err = NewProductRepo(db).Search(ctx, "MUG")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Price.Equal(decimal.RequireFromString("5.50")))
}

func TestProductRepoSetActiveHidesFromListing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepo(db)
	p := mkProduct(t, db, "Lamp", "20", 1)

	ok, err := repo.SetActive(ctx, p.ID, false)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	ok, err = repo.SetActive(ctx, 999, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartRepoAddOrMergeSumsAndReprices(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	carts := NewCartRepo(db)
	p := mkProduct(t, db, "Widget", "10", 5)

	require.NoError(t, carts.AddOrMerge(ctx, 1, p.ID, 1, 1000))
	require.NoError(t, carts.AddOrMerge(ctx, 1, p.ID, 2, 1200))

	lines, err := carts.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "Alice", lines[0].UserName)
	assert.Equal(t, "Widget", lines[0].ProductName)
	assert.True(t, lines[0].Price.Equal(decimal.RequireFromString("36")), "got %s", lines[0].Price)
}

func TestCartRepoRemoveReportsMissing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	carts := NewCartRepo(db)
	p := mkProduct(t, db, "Widget", "10", 5)
	require.NoError(t, carts.AddOrMerge(ctx, 2, p.ID, 1, 1000))

	ok, err := carts.Remove(ctx, 2, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = carts.Remove(ctx, 2, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInventoryDecrementGuard(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	inv := NewInventoryRepo(db)
	p := mkProduct(t, db, "Widget", "10", 2)

	err := WithTx(ctx, db, func(tx *sqlx.Tx) error { return inv.DecrementTx(ctx, tx, p.ID, 3) })
	assert.ErrorIs(t, err, ErrInsufficientStock)

	require.NoError(t, WithTx(ctx, db, func(tx *sqlx.Tx) error { return inv.DecrementTx(ctx, tx, p.ID, 2) }))
	qty, err := inv.Qty(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, qty)

	_, err = inv.Qty(ctx, 999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	carts := NewCartRepo(db)
	p := mkProduct(t, db, "Widget", "10", 5)
	require.NoError(t, carts.AddOrMerge(ctx, 1, p.ID, 1, 1000))

	err := WithTx(ctx, db, func(tx *sqlx.Tx) error {
		if _, err := carts.ClearTx(ctx, tx, 1); err != nil {
			return err
		}
		return ErrInsufficientStock
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	lines, err := carts.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestOrderRepoCreateAndLoad(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	orders := NewOrderRepo(db)
	p := mkProduct(t, db, "Widget", "10", 5)

	lines := []domain.CartLine{{
		ProductID: p.ID, ProductName: p.Name, Quantity: 2,
		UnitPrice: decimal.NewFromInt(10), Price: decimal.NewFromInt(20),
	}}
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	first := domain.NewOrder(1, lines, base)
	second := domain.NewOrder(1, lines, base.Add(time.Minute))
	for _, o := range []*domain.Order{&first, &second} {
		o := o
		require.NoError(t, WithTx(ctx, db, func(tx *sqlx.Tx) error { return orders.CreateTx(ctx, tx, o) }))
	}
	assert.NotZero(t, first.Items[0].ID)

	got, err := orders.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, got.Status)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(20)))
	assert.True(t, got.CreatedAt.Equal(base))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Widget", got.Items[0].ProductName)

	mine, err := orders.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)

	latest, err := orders.ListLatest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, second.ID, latest[0].ID)

	_, err = orders.Get(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepoLookups(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)

	u, err := users.ByEmail(ctx, "ALICE@storefront.test")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	nu := domain.User{Email: "carol@storefront.test", Name: "Carol", Hash: "x", Role: domain.RoleUser}
	require.NoError(t, users.Create(ctx, &nu))
	assert.Equal(t, int64(4), nu.ID)

	nu.Name = "Caroline"
	ok, err := users.Update(ctx, nu)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := users.ByID(ctx, nu.ID)
	require.NoError(t, err)
	assert.Equal(t, "Caroline", got.Name)

	err = WithTx(ctx, db, func(tx *sqlx.Tx) error {
		ok, err := users.ExistsTx(ctx, tx, 99)
		assert.False(t, ok)
		return err
	})
	require.NoError(t, err)
}
