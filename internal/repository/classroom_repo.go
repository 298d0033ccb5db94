package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bneller/littlesteps2/internal/model"
)

// ClassroomRepository 班级数据访问接口
type ClassroomRepository interface {
	Create(ctx context.Context, classroom *model.Classroom) error
	GetByID(ctx context.Context, id uint) (*model.Classroom, error)
	List(ctx context.Context) ([]model.Classroom, error)
	Update(ctx context.Context, classroom *model.Classroom) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type classroomRepo struct {
	db *gorm.DB
}

// NewClassroomRepo 创建 ClassroomRepository 实例
func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

func (r *classroomRepo) Create(ctx context.Context, classroom *model.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}

func (r *classroomRepo) GetByID(ctx context.Context, id uint) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.db.WithContext(ctx).First(&classroom, id).Error
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

// List 按年龄段下界升序返回全部班级
// 引擎依赖此顺序确定相邻班级（"下一班级"）关系
func (r *classroomRepo) List(ctx context.Context) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.db.WithContext(ctx).
		Order("min_age_months ASC, id ASC").
		Find(&classrooms).Error
	return classrooms, err
}

func (r *classroomRepo) Update(ctx context.Context, classroom *model.Classroom) error {
	return r.db.WithContext(ctx).Save(classroom).Error
}

// Delete 返回记录是否存在且被删除
func (r *classroomRepo) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Classroom{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
