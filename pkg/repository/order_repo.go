package repository

import (
	"context"
	"fmt"

	"github.com/example/marketplace/pkg/models"
	"github.com/example/marketplace/pkg/reporting"
	"gorm.io/gorm"
)

// OrderRepository owns orders and order_items. Vendor scoping is always expressed
// as a subquery over products.seller_id so the filter runs on indexed columns.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and all of its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := withItems(r.db.WithContext(ctx)).First(&o, id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *OrderRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID uint) ([]models.Order, error) {
	var list []models.Order
	err := newestFirst(withItems(r.db.WithContext(ctx))).
		Where("buyer_id = ?", buyerID).
		Find(&list).Error
	return list, err
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var list []models.Order
	err := newestFirst(withItems(r.db.WithContext(ctx))).Find(&list).Error
	return list, err
}

// ListBySeller returns each order holding at least one of the seller's items once.
func (r *OrderRepository) ListBySeller(ctx context.Context, sellerID uint) ([]models.Order, error) {
	orderIDs := r.db.Model(&models.OrderItem{}).
		Select("order_id").
		Where("product_id IN (?)", r.sellerProducts(sellerID))

	var list []models.Order
	err := newestFirst(withItems(r.db.WithContext(ctx))).
		Where("id IN (?)", orderIDs).
		Find(&list).Error
	return list, err
}

// UpdateItemStatusForSeller moves every item of the order owned by sellerID whose
// current status is one of from. It returns the number of rows matched.
func (r *OrderRepository) UpdateItemStatusForSeller(ctx context.Context, orderID, sellerID uint, to models.ItemStatus, from []models.ItemStatus) (int64, error) {
	if len(from) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Where("product_id IN (?)", r.sellerProducts(sellerID)).
		Where("status IN ?", from).
		Update("status", to)
	if res.Error != nil {
		return 0, fmt.Errorf("update item status: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uint, status models.OrderStatus, waybillNumber string) (int64, error) {
	updates := map[string]interface{}{"status": status}
	if waybillNumber != "" {
		updates["waybill_number"] = waybillNumber
	}
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(updates)
	if res.Error != nil {
		return 0, fmt.Errorf("update order status: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the items first so the cascade holds on dialects without enforced keys.
func (r *OrderRepository) Delete(ctx context.Context, orderID uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", orderID).Delete(&models.Order{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

// ItemFacts loads the reporting view of items, newest item first. sellerID 0
// means every item.
func (r *OrderRepository) ItemFacts(ctx context.Context, sellerID uint) ([]reporting.ItemFact, error) {
	q := r.db.WithContext(ctx).Model(&models.OrderItem{}).Preload("Product")
	if sellerID != 0 {
		q = q.Where("product_id IN (?)", r.sellerProducts(sellerID))
	}

	var items []models.OrderItem
	if err := q.Order("id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	seen := make(map[uint]struct{}, len(items))
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.OrderID]; !ok {
			seen[it.OrderID] = struct{}{}
			ids = append(ids, it.OrderID)
		}
	}

	var orders []models.Order
	if err := r.db.WithContext(ctx).Select("id", "created_at").Where("id IN ?", ids).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	created := make(map[uint]models.Order, len(orders))
	for _, o := range orders {
		created[o.ID] = o
	}

	facts := make([]reporting.ItemFact, 0, len(items))
	for _, it := range items {
		facts = append(facts, reporting.ItemFact{
			ItemID:         it.ID,
			OrderID:        it.OrderID,
			ProductName:    it.ProductName(),
			Price:          it.Price,
			Quantity:       it.Quantity,
			Status:         it.Status,
			OrderCreatedAt: created[it.OrderID].CreatedAt,
		})
	}
	return facts, nil
}

func (r *OrderRepository) sellerProducts(sellerID uint) *gorm.DB {
	return r.db.Model(&models.Product{}).Select("id").Where("seller_id = ?", sellerID)
}

// withItems preloads items in creation order together with their products.
func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_items.id ASC")
		}).
		Preload("Items.Product")
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
