package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID         string `db:"id"`
	UserID     int64  `db:"user_id"`
	TotalCents int64  `db:"total_cents"`
	Status     string `db:"status"`
	CreatedAt  string `db:"created_at"`
}

func (r orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:          r.ID,
		UserID:      r.UserID,
		TotalAmount: domain.FromCents(r.TotalCents),
		Status:      domain.OrderStatus(r.Status),
		Items:       []domain.OrderItem{},
		CreatedAt:   parseTS(r.CreatedAt),
	}
}

type orderItemRow struct {
	ID             int64  `db:"id"`
	OrderID        string `db:"order_id"`
	ProductID      int64  `db:"product_id"`
	ProductName    string `db:"product_name"`
	Quantity       int    `db:"quantity"`
	UnitPriceCents int64  `db:"unit_price_cents"`
	PriceCents     int64  `db:"price_cents"`
}

func (r orderItemRow) toDomain() domain.OrderItem {
	return domain.OrderItem{
		ID:          r.ID,
		OrderID:     r.OrderID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		UnitPrice:   domain.FromCents(r.UnitPriceCents),
		Price:       domain.FromCents(r.PriceCents),
	}
}

// CreateTx inserts the order header and all of its items inside tx and fills
// in the item IDs.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, o *domain.Order) error {
	if _, err := tx.ExecContext(ctx, `
	  INSERT INTO orders(id, user_id, total_cents, status, created_at)
	  VALUES (?, ?, ?, ?, ?)
	`, o.ID, o.UserID, domain.Cents(o.TotalAmount), string(o.Status), o.CreatedAt.UTC().Format(tsLayout)); err != nil {
		return err
	}
	for i := range o.Items {
		it := &o.Items[i]
		res, err := tx.ExecContext(ctx, `
		  INSERT INTO order_items(order_id, product_id, quantity, unit_price_cents, price_cents)
		  VALUES (?, ?, ?, ?, ?)
		`, o.ID, it.ProductID, it.Quantity, domain.Cents(it.UnitPrice), domain.Cents(it.Price))
		if err != nil {
			return err
		}
		if it.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		it.OrderID = o.ID
	}
	return nil
}

// Get loads one order with its items.
func (r *OrderRepo) Get(ctx context.Context, orderID string) (domain.Order, error) {
	var row orderRow
	if err := r.db.GetContext(ctx, &row, `
		SELECT id, user_id, total_cents, status, created_at
		FROM orders
		WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, err
	}
	orders, err := r.withItems(ctx, []orderRow{row})
	if err != nil {
		return domain.Order{}, err
	}
	return orders[0], nil
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, total_cents, status, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`, userID); err != nil {
		return nil, err
	}
	return r.withItems(ctx, rows)
}

func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, total_cents, status, created_at
		FROM orders
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit); err != nil {
		return nil, err
	}
	return r.withItems(ctx, rows)
}

func (r *OrderRepo) withItems(ctx context.Context, rows []orderRow) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	query, args, err := sqlx.In(`
		SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, '') AS product_name,
		       oi.quantity, oi.unit_price_cents, oi.price_cents
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (?)
		ORDER BY oi.id
	`, ids)
	if err != nil {
		return nil, err
	}
	var items []orderItemRow
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	byOrder := make(map[string][]domain.OrderItem, len(rows))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it.toDomain())
	}
	for _, row := range rows {
		o := row.toDomain()
		if its, ok := byOrder[o.ID]; ok {
			o.Items = its
		}
		out = append(out, o)
	}
	return out, nil
}
