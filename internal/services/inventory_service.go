package services

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type InventoryService struct {
	Inv *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inv: inv}
}

// CheckAvailability converts qty to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(ctx context.Context, productID int64) (domain.Availability, error) {
	qty, err := s.Inv.Qty(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Availability{}, ErrProductNotFound
	}
	if err != nil {
		return domain.Availability{}, err
	}
	return domain.AvailabilityFor(productID, qty), nil
}

func (s *InventoryService) Report(ctx context.Context) ([]repos.InventoryRow, error) {
	return s.Inv.ListAll(ctx)
}

// Restock sets the absolute stock level of a product.
func (s *InventoryService) Restock(ctx context.Context, productID int64, qty int) error {
	if qty < 0 {
		return invalid("qty must be >= 0")
	}
	ok, err := s.Inv.SetQty(ctx, productID, qty)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}
