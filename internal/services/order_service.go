package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/events"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

type OrderService struct {
	DB     *sqlx.DB
	Carts  *repos.CartRepo
	Inv    *repos.InventoryRepo
	Orders *repos.OrderRepo
	Users  *repos.UserRepo
	Events events.Publisher
	Now    func() time.Time
}

func NewOrderService(db *sqlx.DB, carts *repos.CartRepo, inv *repos.InventoryRepo, orders *repos.OrderRepo, users *repos.UserRepo, pub events.Publisher) *OrderService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &OrderService{DB: db, Carts: carts, Inv: inv, Orders: orders, Users: users, Events: pub, Now: time.Now}
}

// CreateOrder converts the user's cart into a confirmed order. Reading the
// cart, inserting the order, taking stock and clearing the cart share one
// transaction: either all of it happens or none of it does.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64) (domain.Order, error) {
	var order domain.Order
	err := repos.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		lines, err := s.Carts.ListByUserTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}
		ok, err := s.Users.ExistsTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUserNotFound
		}

		order = domain.NewOrder(userID, lines, s.Now())
		if err := s.Orders.CreateTx(ctx, tx, &order); err != nil {
			return err
		}
		for _, it := range order.Items {
			if err := s.Inv.DecrementTx(ctx, tx, it.ProductID, it.Quantity); err != nil {
				if errors.Is(err, repos.ErrInsufficientStock) {
					return ErrOutOfStock
				}
				return err
			}
		}
		_, err = s.Carts.ClearTx(ctx, tx, userID)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	// The order is committed; a lost notification must not undo it.
	if perr := s.Events.PublishOrderPlaced(ctx, order); perr != nil {
		applog.Logger().Error().Err(perr).Str("action", "order.event.fail").Str("order_id", order.ID).Send()
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	o, err := s.Orders.Get(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, ErrOrderNotFound
	}
	return o, err
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

func (s *OrderService) LatestOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.Orders.ListLatest(ctx, limit)
}
