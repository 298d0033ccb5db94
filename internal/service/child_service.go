package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bneller/littlesteps2/internal/dto"
	"github.com/bneller/littlesteps2/internal/model"
	"github.com/bneller/littlesteps2/internal/repository"
)

// ── 幼儿模块业务错误 ──

var (
	ErrChildNotFound    = errors.New("幼儿记录不存在")
	ErrChildInvalidDate = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// 记录中的日期统一为 ISO 日期（无时间部分）
const dateLayout = "2006-01-02"

// ChildService 幼儿业务接口
type ChildService interface {
	Create(ctx context.Context, req *dto.CreateChildRequest) (*dto.ChildResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ChildResponse, error)
	List(ctx context.Context) ([]dto.ChildResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateChildRequest) (*dto.ChildResponse, error)
	Delete(ctx context.Context, id uint) error
}

type childService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewChildService 创建 ChildService 实例
func NewChildService(repo *repository.Repository, logger *zap.Logger) ChildService {
	return &childService{repo: repo, logger: logger}
}

// parseDate 解析 ISO 日期字符串，格式错误返回 ErrChildInvalidDate
// 在入库前拒绝坏日期，保证引擎永远只见到合法 time.Time
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrChildInvalidDate
	}
	return t, nil
}

// ────────────────────── Create ──────────────────────

func (s *childService) Create(ctx context.Context, req *dto.CreateChildRequest) (*dto.ChildResponse, error) {
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}
	enrollmentDate, err := parseDate(req.EnrollmentDate)
	if err != nil {
		return nil, err
	}

	child := &model.Child{
		Name:           req.Name,
		BirthDate:      birthDate,
		EnrollmentDate: enrollmentDate,
	}

	if err := s.repo.Child.Create(ctx, child); err != nil {
		s.logger.Error("创建幼儿记录失败", zap.Error(err))
		return nil, err
	}

	return s.toChildResponse(child), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *childService) GetByID(ctx context.Context, id uint) (*dto.ChildResponse, error) {
	child, err := s.repo.Child.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		s.logger.Error("查询幼儿记录失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.toChildResponse(child), nil
}

// ────────────────────── List ──────────────────────

func (s *childService) List(ctx context.Context) ([]dto.ChildResponse, error) {
	children, err := s.repo.Child.List(ctx)
	if err != nil {
		s.logger.Error("查询幼儿列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ChildResponse, 0, len(children))
	for i := range children {
		result = append(result, *s.toChildResponse(&children[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *childService) Update(ctx context.Context, id uint, req *dto.UpdateChildRequest) (*dto.ChildResponse, error) {
	child, err := s.repo.Child.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		s.logger.Error("查询幼儿记录失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		child.Name = *req.Name
	}
	if req.BirthDate != nil {
		birthDate, err := parseDate(*req.BirthDate)
		if err != nil {
			return nil, err
		}
		child.BirthDate = birthDate
	}
	if req.EnrollmentDate != nil {
		enrollmentDate, err := parseDate(*req.EnrollmentDate)
		if err != nil {
			return nil, err
		}
		child.EnrollmentDate = enrollmentDate
	}

	if err := s.repo.Child.Update(ctx, child); err != nil {
		s.logger.Error("更新幼儿记录失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.toChildResponse(child), nil
}

// ────────────────────── Delete ──────────────────────

func (s *childService) Delete(ctx context.Context, id uint) error {
	existed, err := s.repo.Child.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除幼儿记录失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if !existed {
		return ErrChildNotFound
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *childService) toChildResponse(child *model.Child) *dto.ChildResponse {
	return &dto.ChildResponse{
		ID:             child.ID,
		Name:           child.Name,
		BirthDate:      child.BirthDate.Format(dateLayout),
		EnrollmentDate: child.EnrollmentDate.Format(dateLayout),
		CreatedAt:      child.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:      child.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
