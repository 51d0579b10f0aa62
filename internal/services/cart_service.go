package services

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

const DefaultMaxCartQty = 50

type CartService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Users  *repos.UserRepo
	MaxQty int
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo, users *repos.UserRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods, Users: users, MaxQty: DefaultMaxCartQty}
}

// AddItem puts qty units of a product in the user's cart. A repeat add merges
// into the existing line and reprices it at the current unit price.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, qty int) error {
	if qty < 1 || (s.MaxQty > 0 && qty > s.MaxQty) {
		return invalid("quantity must be between 1 and %d", s.MaxQty)
	}
	p, err := s.Prods.Get(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !p.Active) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	if _, err := s.Users.ByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if qty > p.StockQuantity {
		return ErrOutOfStock
	}
	return s.Carts.AddOrMerge(ctx, userID, productID, qty, domain.Cents(p.Price))
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) error {
	ok, err := s.Carts.Remove(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCartLineNotFound
	}
	return nil
}

// ListItems returns the user's cart lines in insertion order. An unknown user
// simply has an empty cart.
func (s *CartService) ListItems(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	return s.Carts.ListByUser(ctx, userID)
}
