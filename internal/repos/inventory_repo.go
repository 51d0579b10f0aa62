package repos

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrInsufficientStock is returned by DecrementTx when the guarded update
// matches no row.
var ErrInsufficientStock = errors.New("insufficient stock")

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Row used by the admin stock report
type InventoryRow struct {
	ProductID int64  `db:"product_id" json:"productId"`
	Name      string `db:"name" json:"name"`
	Qty       int    `db:"qty" json:"qty"`
	Active    bool   `db:"active" json:"active"`
}

// ListAll returns stock levels for every product, inactive ones included.
func (r *InventoryRepo) ListAll(ctx context.Context) ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id AS product_id, name, stock_quantity AS qty, active
		FROM products
		ORDER BY name, id
	`)
	return rows, err
}

// Qty returns current stock for a product.
// If no row exists, it returns sql.ErrNoRows from sqlx.Get.
func (r *InventoryRepo) Qty(ctx context.Context, productID int64) (int, error) {
	var qty int
	err := r.db.GetContext(ctx, &qty, `SELECT stock_quantity FROM products WHERE id = ?`, productID)
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// DecrementTx subtracts "by" units inside tx if enough stock exists.
func (r *InventoryRepo) DecrementTx(ctx context.Context, tx *sqlx.Tx, productID int64, by int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - ?, updated_at = ?
		WHERE id = ? AND stock_quantity >= ?
	`, by, now(), productID, by)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// SetQty overwrites the stock level. Reports whether the product existed.
func (r *InventoryRepo) SetQty(ctx context.Context, productID int64, qty int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET stock_quantity = ?, updated_at = ? WHERE id = ?`, qty, now(), productID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
