package repos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	Description   string `db:"description"`
	Category      string `db:"category"`
	ImageURL      string `db:"image_url"`
	PriceCents    int64  `db:"price_cents"`
	StockQuantity int    `db:"stock_quantity"`
	Active        bool   `db:"active"`
	CreatedAt     string `db:"created_at"`
	UpdatedAt     string `db:"updated_at"`
}

func (r productRow) toDomain() domain.Product {
	return domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		ImageURL:      r.ImageURL,
		Price:         domain.FromCents(r.PriceCents),
		StockQuantity: r.StockQuantity,
		Active:        r.Active,
		CreatedAt:     parseTS(r.CreatedAt),
		UpdatedAt:     parseTS(r.UpdatedAt),
	}
}

func toProducts(rows []productRow) []domain.Product {
	out := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

const productCols = `id, name, description, category, image_url, price_cents, stock_quantity, active, created_at, updated_at`

// Create inserts p and fills in its ID and timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
	  INSERT INTO products(name, description, category, image_url, price_cents, stock_quantity, active, created_at, updated_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.Description, p.Category, p.ImageURL, domain.Cents(p.Price), p.StockQuantity, p.Active, ts, ts)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	p.CreatedAt = parseTS(ts)
	p.UpdatedAt = p.CreatedAt
	return nil
}

// Update overwrites the editable fields. The active flag is left alone;
// SetActive owns it. Reports whether the row existed.
func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE products
	  SET name = ?, description = ?, category = ?, image_url = ?, price_cents = ?, stock_quantity = ?, updated_at = ?
	  WHERE id = ?
	`, p.Name, p.Description, p.Category, p.ImageURL, domain.Cents(p.Price), p.StockQuantity, now(), p.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Get returns the product regardless of its active flag.
func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var row productRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+productCols+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	return row.toDomain(), nil
}

func (r *ProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE active = 1
	  ORDER BY id
	`); err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// Search matches keyword case-insensitively against name, description and
// category of active products.
func (r *ProductRepo) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	like := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE active = 1
	    AND (LOWER(name) LIKE ? ESCAPE '\'
	      OR LOWER(description) LIKE ? ESCAPE '\'
	      OR LOWER(category) LIKE ? ESCAPE '\')
	  ORDER BY id
	`, like, like, like); err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// SetActive flips the soft-delete flag. Reports whether the row existed.
func (r *ProductRepo) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET active = ?, updated_at = ? WHERE id = ?`, active, now(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
