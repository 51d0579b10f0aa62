package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

// MaxPrice bounds a unit price so line totals stay well inside int64 cents.
var MaxPrice = decimal.NewFromInt(1_000_000_000)

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name          string
	Description   string
	Category      string
	ImageURL      string
	Price         decimal.Decimal
	StockQuantity int
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	if in.Price.IsNegative() {
		return invalid("price must be >= 0")
	}
	if in.Price.GreaterThan(MaxPrice) {
		return invalid("price must be <= %s", MaxPrice)
	}
	if in.StockQuantity < 0 {
		return invalid("stockQuantity must be >= 0")
	}
	return nil
}

func (in ProductInput) apply(p *domain.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Category = strings.TrimSpace(in.Category)
	p.ImageURL = in.ImageURL
	p.Price = in.Price.Round(2)
	p.StockQuantity = in.StockQuantity
}

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// CreateProduct stores a new, active product.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}
	p := domain.Product{Active: true}
	in.apply(&p)
	if err := s.Prods.Create(ctx, &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, in ProductInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	in.apply(&p)
	ok, err := s.Prods.Update(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return s.GetProduct(ctx, id)
}

// GetProduct returns the product even when it has been soft-deleted.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrProductNotFound
	}
	return p, err
}

func (s *CatalogService) GetActiveProducts(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.ListActive(ctx)
}

// SearchByKeyword lists active products whose name, description or category
// contains keyword. A blank keyword lists every active product.
func (s *CatalogService) SearchByKeyword(ctx context.Context, keyword string) ([]domain.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.Prods.ListActive(ctx)
	}
	return s.Prods.Search(ctx, keyword)
}

// SoftDelete marks the product inactive. Deleting an already inactive
// product succeeds.
func (s *CatalogService) SoftDelete(ctx context.Context, id int64) error {
	ok, err := s.Prods.SetActive(ctx, id, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}
