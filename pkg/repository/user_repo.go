package repository

import (
	"context"

	"github.com/example/marketplace/pkg/models"
	"gorm.io/gorm"
)

// UserRepository reads the identity directory, going through Redis first when a
// cache is configured.
type UserRepository struct {
	db    *gorm.DB
	cache *RedisRepository
}

func NewUserRepository(db *gorm.DB, cache *RedisRepository) *UserRepository {
	return &UserRepository{db: db, cache: cache}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if r.cache != nil {
		if cached, err := r.cache.GetUserCache(ctx, id); err == nil {
			return &models.User{
				ID:          cached.ID,
				Username:    cached.Username,
				IsStaff:     cached.IsStaff,
				IsSuperuser: cached.IsSuperuser,
			}, nil
		}
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}

	if r.cache != nil {
		// cache failures only cost a later database read
		_ = r.cache.CacheUser(ctx, &UserCache{
			ID:          user.ID,
			Username:    user.Username,
			IsStaff:     user.IsStaff,
			IsSuperuser: user.IsSuperuser,
		})
	}

	return &user, nil
}
