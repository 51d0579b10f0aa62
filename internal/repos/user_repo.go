package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, email, name, password_hash, role, created_at`

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE LOWER(email) = LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := r.DB.SelectContext(ctx, &users, `SELECT `+userCols+` FROM users ORDER BY id`)
	return users, err
}

// Create inserts u and fills in its ID and creation time.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	ts := now()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users(email, name, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, u.Email, u.Name, u.Hash, u.Role, ts)
	if err != nil {
		return err
	}
	if u.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	u.CreatedAt = ts
	return nil
}

// Update changes the profile fields. Reports whether the user existed.
func (r *UserRepo) Update(ctx context.Context, u domain.User) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET email = ?, name = ? WHERE id = ?`, u.Email, u.Name, u.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ExistsTx checks for the user inside tx.
func (r *UserRepo) ExistsTx(ctx context.Context, tx *sqlx.Tx, id int64) (bool, error) {
	var n int
	if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}
