// Package order is the order ledger: checkout, listings, the vendor projection
// over shared orders and the per-item status lifecycle.
package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/example/marketplace/pkg/apperrors"
	"github.com/example/marketplace/pkg/auth"
	"github.com/example/marketplace/pkg/events"
	"github.com/example/marketplace/pkg/models"
	"github.com/example/marketplace/pkg/repository"
	"github.com/example/marketplace/pkg/waybill"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrProductNotFound = errors.New("product not found")

const (
	maxPhoneLen   = 20
	maxWaybillLen = 32
)

// Store is the persistence the ledger needs.
type Store interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	Exists(ctx context.Context, id uint) (bool, error)
	ListByBuyer(ctx context.Context, buyerID uint) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]models.Order, error)
	UpdateItemStatusForSeller(ctx context.Context, orderID, sellerID uint, to models.ItemStatus, from []models.ItemStatus) (int64, error)
	UpdateStatus(ctx context.Context, orderID uint, status models.OrderStatus, waybillNumber string) (int64, error)
	Delete(ctx context.Context, orderID uint) (int64, error)
}

// Catalog resolves a product's price and seller at the moment of the call.
type Catalog interface {
	Resolve(ctx context.Context, id uint) (*models.Product, error)
}

// Directory looks up user accounts held by the identity provider.
type Directory interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type CartLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderInput struct {
	Items   []CartLine
	Phone   string
	Address string
}

type Service struct {
	store   Store
	catalog Catalog
	users   Directory
	events  events.Publisher
	logger  *zap.Logger
}

func NewService(store Store, catalog Catalog, users Directory, publisher events.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		store:   store,
		catalog: catalog,
		users:   users,
		events:  publisher,
		logger:  logger,
	}
}

// CreateOrder prices every line from the catalog and persists the order with all
// its items, or nothing at all.
func (s *Service) CreateOrder(ctx context.Context, buyer auth.Identity, in CreateOrderInput) (*models.Order, error) {
	if len(in.Phone) > maxPhoneLen {
		return nil, apperrors.Validation(fmt.Sprintf("phone must be at most %d characters", maxPhoneLen), nil)
	}
	for i, line := range in.Items {
		if line.ProductID == 0 {
			return nil, apperrors.Validation(fmt.Sprintf("items[%d]: product_id is required", i), nil)
		}
		if line.Quantity < 1 {
			return nil, apperrors.Validation(fmt.Sprintf("items[%d]: quantity must be positive", i), nil)
		}
	}

	products := make([]*models.Product, len(in.Items))
	total := decimal.Zero
	for i, line := range in.Items {
		p, err := s.catalog.Resolve(ctx, line.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Validation(fmt.Sprintf("Product %d not found", line.ProductID), ErrProductNotFound)
		}
		if err != nil {
			return nil, apperrors.Internal("failed to resolve product", err)
		}
		products[i] = p
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	o := &models.Order{
		BuyerID:    buyer.UserID,
		TotalPrice: total.Round(2),
		Status:     models.OrderPending,
		Phone:      in.Phone,
		Address:    in.Address,
		Items:      make([]models.OrderItem, 0, len(in.Items)),
	}
	for i, line := range in.Items {
		o.Items = append(o.Items, models.OrderItem{
			ProductID: products[i].ID,
			Price:     products[i].Price,
			Quantity:  line.Quantity,
			Status:    models.ItemPending,
		})
	}

	if err := s.store.Create(ctx, o); err != nil {
		s.logger.Error("Failed to create order", zap.Uint("buyer_id", buyer.UserID), zap.Error(err))
		return nil, apperrors.Internal("failed to create order", err)
	}
	for i := range o.Items {
		o.Items[i].Product = products[i]
	}

	s.logger.Info("Order created",
		zap.Uint("order_id", o.ID),
		zap.Uint("buyer_id", o.BuyerID),
		zap.Int("items", len(o.Items)),
		zap.String("total_price", o.TotalPrice.StringFixed(2)))

	s.events.Publish(events.Event{
		Action:   events.OrderCreated,
		EntityID: orderEntity(o.ID),
		ActorID:  buyer.UserID,
		Data: map[string]any{
			"total_price": o.TotalPrice.StringFixed(2),
			"items":       len(o.Items),
		},
	})

	return o, nil
}

// ListOrdersForBuyer returns the buyer's orders, newest first.
func (s *Service) ListOrdersForBuyer(ctx context.Context, buyerID uint) ([]models.Order, error) {
	list, err := s.store.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, apperrors.Internal("failed to list orders", err)
	}
	return list, nil
}

// ListAllOrders is the admin listing: every order for superusers, otherwise the
// orders that contain at least one of the requester's products.
func (s *Service) ListAllOrders(ctx context.Context, requester auth.Identity) ([]models.Order, error) {
	if !requester.IsAdmin() {
		return nil, apperrors.PermissionDenied("admin access required")
	}

	var (
		list []models.Order
		err  error
	)
	if requester.IsSuperuser {
		list, err = s.store.ListAll(ctx)
	} else {
		list, err = s.store.ListBySeller(ctx, requester.UserID)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to list orders", err)
	}
	return list, nil
}

// ListOrdersForVendor returns every order holding the vendor's items, each paired
// with the vendor's projection of it.
func (s *Service) ListOrdersForVendor(ctx context.Context, vendorID uint) ([]VendorOrder, error) {
	list, err := s.store.ListBySeller(ctx, vendorID)
	if err != nil {
		return nil, apperrors.Internal("failed to list vendor orders", err)
	}

	names := make(map[uint]string)
	out := make([]VendorOrder, 0, len(list))
	for _, o := range list {
		name, ok := names[o.BuyerID]
		if !ok {
			if u := s.buyer(ctx, o.BuyerID); u != nil {
				name = u.Username
			}
			names[o.BuyerID] = name
		}
		out = append(out, VendorOrder{Order: o, BuyerName: name, View: ProjectForVendor(o, vendorID)})
	}
	return out, nil
}

// UpdateItemStatus moves all of the actor's items in the order to status and
// returns how many were updated. Owning nothing in the order is not an error.
func (s *Service) UpdateItemStatus(ctx context.Context, orderID uint, actor auth.Identity, status string) (int64, error) {
	to, err := ParseItemStatus(status)
	if err != nil {
		return 0, err
	}
	if err := s.mustExist(ctx, orderID); err != nil {
		return 0, err
	}

	n, err := s.store.UpdateItemStatusForSeller(ctx, orderID, actor.UserID, to, AllowedSources(to))
	if err != nil {
		s.logger.Error("Failed to update item status",
			zap.Uint("order_id", orderID), zap.Uint("actor_id", actor.UserID), zap.Error(err))
		return 0, apperrors.Internal("failed to update item status", err)
	}

	s.logger.Info("Item status updated",
		zap.Uint("order_id", orderID),
		zap.Uint("actor_id", actor.UserID),
		zap.String("status", string(to)),
		zap.Int64("updated", n))

	s.events.Publish(events.Event{
		Action:   events.ItemStatusUpdated,
		EntityID: orderEntity(orderID),
		ActorID:  actor.UserID,
		Data:     map[string]any{"status": string(to), "updated": n},
	})

	return n, nil
}

// UpdateOrderStatus sets the master status of an order. Admins only.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID uint, requester auth.Identity, status, waybillNumber string) error {
	if !requester.IsAdmin() {
		return apperrors.PermissionDenied("admin access required")
	}
	to, err := ParseOrderStatus(status)
	if err != nil {
		return err
	}
	if len(waybillNumber) > maxWaybillLen {
		return apperrors.Validation(fmt.Sprintf("waybill_number must be at most %d characters", maxWaybillLen), nil)
	}
	if err := s.mustExist(ctx, orderID); err != nil {
		return err
	}

	if _, err := s.store.UpdateStatus(ctx, orderID, to, waybillNumber); err != nil {
		return apperrors.Internal("failed to update order status", err)
	}

	s.events.Publish(events.Event{
		Action:   events.OrderStatusUpdated,
		EntityID: orderEntity(orderID),
		ActorID:  requester.UserID,
		Data:     map[string]any{"status": string(to), "waybill_number": waybillNumber},
	})
	return nil
}

// DeleteOrder removes an order and its items. Superusers only.
func (s *Service) DeleteOrder(ctx context.Context, orderID uint, requester auth.Identity) error {
	if !requester.IsSuperuser {
		return apperrors.PermissionDenied("superuser access required")
	}
	n, err := s.store.Delete(ctx, orderID)
	if err != nil {
		return apperrors.Internal("failed to delete order", err)
	}
	if n == 0 {
		return apperrors.NotFound("Order not found")
	}

	s.logger.Info("Order deleted", zap.Uint("order_id", orderID), zap.Uint("actor_id", requester.UserID))
	s.events.Publish(events.Event{
		Action:   events.OrderDeleted,
		EntityID: orderEntity(orderID),
		ActorID:  requester.UserID,
	})
	return nil
}

// Waybill snapshots an order and its buyer for the document renderer. A buyer the
// directory cannot produce is rendered as a guest.
func (s *Service) Waybill(ctx context.Context, orderID uint) (waybill.Snapshot, error) {
	o, err := s.store.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return waybill.Snapshot{}, apperrors.NotFound("Order not found")
	}
	if err != nil {
		return waybill.Snapshot{}, apperrors.Internal("failed to load order", err)
	}

	return waybill.FromOrder(o, s.buyer(ctx, o.BuyerID)), nil
}

// buyer returns nil when the directory has no such user or cannot be reached.
func (s *Service) buyer(ctx context.Context, id uint) *models.User {
	if s.users == nil {
		return nil
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Buyer lookup failed", zap.Uint("buyer_id", id), zap.Error(err))
		}
		return nil
	}
	return u
}

func (s *Service) mustExist(ctx context.Context, orderID uint) error {
	ok, err := s.store.Exists(ctx, orderID)
	if err != nil {
		return apperrors.Internal("failed to load order", err)
	}
	if !ok {
		return apperrors.NotFound("Order not found")
	}
	return nil
}

func orderEntity(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
