package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	applog "storefront/internal/log"
)

// tsLayout is fixed-width so timestamps sort lexicographically.
const tsLayout = "2006-01-02T15:04:05.000000Z07:00"

var nowFunc = time.Now

func now() string { return nowFunc().UTC().Format(tsLayout) }

func parseTS(s string) time.Time {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// OpenDB opens the sqlite database, applies the schema and makes sure the
// baseline accounts exist. A single connection is used: sqlite serializes
// writers anyway, and ":memory:" databases exist per connection.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// WithTx runs fn inside a transaction, committing only if fn succeeds.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Products (soft-deleted via active=0, never removed)
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  price_cents INTEGER NOT NULL CHECK (price_cents >= 0),
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL DEFAULT '',
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_products_active ON products(active);
CREATE INDEX IF NOT EXISTS idx_products_name   ON products(LOWER(name));

-- Cart lines: one per (user, product)
CREATE TABLE IF NOT EXISTS cart_lines(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  unit_price_cents INTEGER NOT NULL,
  price_cents INTEGER NOT NULL,
  created_at TEXT NOT NULL DEFAULT '',
  updated_at TEXT NOT NULL DEFAULT '',
  UNIQUE (user_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_cart_lines_user ON cart_lines(user_id);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL REFERENCES users(id),
  total_cents INTEGER NOT NULL,
  status TEXT NOT NULL CHECK (status IN ('PENDING','CONFIRMED')),
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_user       ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  price_cents INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`
	_, err := db.Exec(schema)
	return err
}

// SeedDemo inserts a few catalog products when the catalog is empty.
func SeedDemo(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Logger().Info().Msg("seed: inserting demo products")

	ts := now()
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()
	tx.MustExec(`INSERT INTO products(name,description,category,image_url,price_cents,stock_quantity,active,created_at,updated_at) VALUES
	  ('Game Boy Color','Handheld console','consoles','products/gbc/main.jpg',12999,8,1,?,?),
	  ('NES Console','Classic 8-bit console','consoles','products/nes/main.jpg',19900,5,1,?,?),
	  ('Philco 1939','Vintage vacuum tube radio','radios','products/philco/main.jpg',34950,2,1,?,?)`,
		ts, ts, ts, ts, ts, ts)
	return tx.Commit()
}

// seedUsers ensures two USERs and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		Email, Name, Role, Hash string
	}
	mk := func(email, name, role, raw string) (u, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{Email: email, Name: name, Role: role, Hash: string(h)}, err
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	users := make([]u, 0, 3)
	for _, x := range [][4]string{
		{"alice@storefront.test", "Alice", "USER", "Passw0rd!"},
		{"bob@storefront.test", "Bob", "USER", "Passw0rd!"},
		{"admin@storefront.test", "Admin", "ADMIN", "Passw0rd!"},
	} {
		usr, err := mk(x[0], x[1], x[2], x[3])
		if err != nil {
			return err
		}
		users = append(users, usr)
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(email,name,password_hash,role,created_at)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.Email, x.Name, x.Hash, x.Role, ts); err != nil {
			return err
		}
	}

	return tx.Commit()
}
