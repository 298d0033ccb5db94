package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bneller/littlesteps2/internal/model"
)

// ChildRepository 幼儿数据访问接口
type ChildRepository interface {
	Create(ctx context.Context, child *model.Child) error
	GetByID(ctx context.Context, id uint) (*model.Child, error)
	List(ctx context.Context) ([]model.Child, error)
	Update(ctx context.Context, child *model.Child) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type childRepo struct {
	db *gorm.DB
}

// NewChildRepo 创建 ChildRepository 实例
func NewChildRepo(db *gorm.DB) ChildRepository {
	return &childRepo{db: db}
}

func (r *childRepo) Create(ctx context.Context, child *model.Child) error {
	return r.db.WithContext(ctx).Create(child).Error
}

func (r *childRepo) GetByID(ctx context.Context, id uint) (*model.Child, error) {
	var child model.Child
	err := r.db.WithContext(ctx).First(&child, id).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *childRepo) List(ctx context.Context) ([]model.Child, error) {
	var children []model.Child
	err := r.db.WithContext(ctx).
		Order("birth_date ASC, id ASC").
		Find(&children).Error
	return children, err
}

func (r *childRepo) Update(ctx context.Context, child *model.Child) error {
	return r.db.WithContext(ctx).Save(child).Error
}

// Delete 返回记录是否存在且被删除
func (r *childRepo) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Child{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
