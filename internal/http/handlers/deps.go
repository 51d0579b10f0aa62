package handlers

import (
	"github.com/jmoiron/sqlx"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type Deps struct {
	Auth           *services.AuthService
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	UserHandler    *UserHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, pub events.Publisher) *Deps {
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	invSvc := services.NewInventoryService(invRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo, userRepo)
	if cfg.MaxCartQty > 0 {
		cartSvc.MaxQty = cfg.MaxCartQty
	}
	orderSvc := services.NewOrderService(db, cartRepo, invRepo, orderRepo, userRepo, pub)
	userSvc := services.NewUserService(userRepo)

	return &Deps{
		Auth:           &services.AuthService{Users: userRepo},
		ProductHandler: &ProductHandler{Catalog: catalogSvc, Inv: invSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc},
		UserHandler:    &UserHandler{Users: userSvc},
		AdminHandler:   &AdminHandler{Order: orderSvc, Inv: invSvc},
	}
}
