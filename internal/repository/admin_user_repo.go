package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bneller/littlesteps2/internal/model"
)

// AdminUserRepository 管理员数据访问接口
type AdminUserRepository interface {
	Create(ctx context.Context, user *model.AdminUser) error
	GetByID(ctx context.Context, id uint) (*model.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	Count(ctx context.Context) (int64, error)
}

type adminUserRepo struct {
	db *gorm.DB
}

// NewAdminUserRepo 创建 AdminUserRepository 实例
func NewAdminUserRepo(db *gorm.DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) Create(ctx context.Context, user *model.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *adminUserRepo) GetByID(ctx context.Context, id uint) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepo) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.AdminUser{}).Count(&n).Error
	return n, err
}
