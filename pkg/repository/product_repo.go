package repository

import (
	"context"

	"github.com/example/marketplace/pkg/models"
	"gorm.io/gorm"
)

// ProductRepository is the catalog provider as seen from the order ledger.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Resolve reads the product's current price and owner.
func (r *ProductRepository) Resolve(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
