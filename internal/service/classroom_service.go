package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bneller/littlesteps2/internal/dto"
	"github.com/bneller/littlesteps2/internal/model"
	"github.com/bneller/littlesteps2/internal/repository"
)

// ── 班级模块业务错误 ──

var (
	ErrClassroomNotFound    = errors.New("班级不存在")
	ErrClassroomInvalidBand = errors.New("年龄段无效：minAgeMonths 必须小于 maxAgeMonths")
)

// ClassroomService 班级业务接口
type ClassroomService interface {
	Create(ctx context.Context, req *dto.CreateClassroomRequest) (*dto.ClassroomResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ClassroomResponse, error)
	List(ctx context.Context) ([]dto.ClassroomResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateClassroomRequest) (*dto.ClassroomResponse, error)
	Delete(ctx context.Context, id uint) error
}

type classroomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassroomService 创建 ClassroomService 实例
func NewClassroomService(repo *repository.Repository, logger *zap.Logger) ClassroomService {
	return &classroomService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *classroomService) Create(ctx context.Context, req *dto.CreateClassroomRequest) (*dto.ClassroomResponse, error) {
	if *req.MinAgeMonths >= *req.MaxAgeMonths {
		return nil, ErrClassroomInvalidBand
	}

	classroom := &model.Classroom{
		Name:         req.Name,
		Color:        req.Color,
		MinAgeMonths: *req.MinAgeMonths,
		MaxAgeMonths: *req.MaxAgeMonths,
		Capacity:     req.Capacity,
		Ratio:        req.Ratio,
	}

	if err := s.repo.Classroom.Create(ctx, classroom); err != nil {
		s.logger.Error("创建班级失败", zap.Error(err))
		return nil, err
	}

	return s.toClassroomResponse(classroom), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *classroomService) GetByID(ctx context.Context, id uint) (*dto.ClassroomResponse, error) {
	classroom, err := s.repo.Classroom.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("查询班级失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.toClassroomResponse(classroom), nil
}

// ────────────────────── List ──────────────────────

func (s *classroomService) List(ctx context.Context) ([]dto.ClassroomResponse, error) {
	classrooms, err := s.repo.Classroom.List(ctx)
	if err != nil {
		s.logger.Error("查询班级列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClassroomResponse, 0, len(classrooms))
	for i := range classrooms {
		result = append(result, *s.toClassroomResponse(&classrooms[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update 部分字段补丁：未传字段保持原值，
// 补丁后的年龄段整体校验 min < max
func (s *classroomService) Update(ctx context.Context, id uint, req *dto.UpdateClassroomRequest) (*dto.ClassroomResponse, error) {
	classroom, err := s.repo.Classroom.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("查询班级失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		classroom.Name = *req.Name
	}
	if req.Color != nil {
		classroom.Color = *req.Color
	}
	if req.MinAgeMonths != nil {
		classroom.MinAgeMonths = *req.MinAgeMonths
	}
	if req.MaxAgeMonths != nil {
		classroom.MaxAgeMonths = *req.MaxAgeMonths
	}
	if req.Capacity != nil {
		classroom.Capacity = *req.Capacity
	}
	if req.Ratio != nil {
		classroom.Ratio = *req.Ratio
	}

	if classroom.MinAgeMonths >= classroom.MaxAgeMonths {
		return nil, ErrClassroomInvalidBand
	}

	if err := s.repo.Classroom.Update(ctx, classroom); err != nil {
		s.logger.Error("更新班级失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.toClassroomResponse(classroom), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除班级；幼儿记录不受级联影响（归属是计算出来的，从不存储）
func (s *classroomService) Delete(ctx context.Context, id uint) error {
	existed, err := s.repo.Classroom.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除班级失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if !existed {
		return ErrClassroomNotFound
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *classroomService) toClassroomResponse(classroom *model.Classroom) *dto.ClassroomResponse {
	return &dto.ClassroomResponse{
		ID:           classroom.ID,
		Name:         classroom.Name,
		Color:        classroom.Color,
		MinAgeMonths: classroom.MinAgeMonths,
		MaxAgeMonths: classroom.MaxAgeMonths,
		Capacity:     classroom.Capacity,
		Ratio:        classroom.Ratio,
		CreatedAt:    classroom.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    classroom.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
