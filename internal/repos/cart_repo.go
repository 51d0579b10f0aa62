package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type cartLineRow struct {
	ID             int64  `db:"id"`
	UserID         int64  `db:"user_id"`
	ProductID      int64  `db:"product_id"`
	UserName       string `db:"user_name"`
	ProductName    string `db:"product_name"`
	Quantity       int    `db:"quantity"`
	UnitPriceCents int64  `db:"unit_price_cents"`
	PriceCents     int64  `db:"price_cents"`
}

func (r cartLineRow) toDomain() domain.CartLine {
	return domain.CartLine{
		ID:          r.ID,
		UserID:      r.UserID,
		ProductID:   r.ProductID,
		UserName:    r.UserName,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		UnitPrice:   domain.FromCents(r.UnitPriceCents),
		Price:       domain.FromCents(r.PriceCents),
	}
}

// AddOrMerge inserts a cart line or, if the (user, product) line exists, adds
// qty to it and reprices the whole line at unitCents. It is one statement so
// concurrent adds for the same pair cannot lose an update.
func (r *CartRepo) AddOrMerge(ctx context.Context, userID, productID int64, qty int, unitCents int64) error {
	ts := now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_lines(user_id, product_id, quantity, unit_price_cents, price_cents, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, product_id) DO UPDATE SET
		  quantity         = cart_lines.quantity + excluded.quantity,
		  unit_price_cents = excluded.unit_price_cents,
		  price_cents      = excluded.unit_price_cents * (cart_lines.quantity + excluded.quantity),
		  updated_at       = excluded.updated_at
	`, userID, productID, qty, unitCents, unitCents*int64(qty), ts, ts)
	return err
}

// Remove deletes the (user, product) line. Reports whether it existed.
func (r *CartRepo) Remove(ctx context.Context, userID, productID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE user_id = ? AND product_id = ?`, userID, productID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *CartRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	return listCart(ctx, r.db, userID)
}

func (r *CartRepo) ListByUserTx(ctx context.Context, tx *sqlx.Tx, userID int64) ([]domain.CartLine, error) {
	return listCart(ctx, tx, userID)
}

func listCart(ctx context.Context, q sqlx.QueryerContext, userID int64) ([]domain.CartLine, error) {
	var rows []cartLineRow
	if err := sqlx.SelectContext(ctx, q, &rows, `
	  SELECT cl.id, cl.user_id, cl.product_id, u.name AS user_name, p.name AS product_name,
	         cl.quantity, cl.unit_price_cents, cl.price_cents
	  FROM cart_lines cl
	  JOIN users u    ON u.id = cl.user_id
	  JOIN products p ON p.id = cl.product_id
	  WHERE cl.user_id = ?
	  ORDER BY cl.id
	`, userID); err != nil {
		return nil, err
	}
	out := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ClearTx removes every line of the user's cart inside tx.
func (r *CartRepo) ClearTx(ctx context.Context, tx *sqlx.Tx, userID int64) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
