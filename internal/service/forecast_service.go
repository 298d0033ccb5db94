package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bneller/littlesteps2/internal/dto"
	"github.com/bneller/littlesteps2/internal/repository"
)

// ForecastService 仪表盘预测业务接口
//
// 快照在每次请求时从原始记录现算，不落库、不缓存；
// 目标日期可为过去或未来的任意日期。
type ForecastService interface {
	// Dashboard 计算目标日期的全园快照
	Dashboard(ctx context.Context, target time.Time) (*dto.DashboardResponse, error)
}

type forecastService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewForecastService 创建 ForecastService 实例
func NewForecastService(repo *repository.Repository, logger *zap.Logger) ForecastService {
	return &forecastService{repo: repo, logger: logger}
}

func (s *forecastService) Dashboard(ctx context.Context, target time.Time) (*dto.DashboardResponse, error) {
	classrooms, err := s.repo.Classroom.List(ctx)
	if err != nil {
		s.logger.Error("查询班级列表失败", zap.Error(err))
		return nil, err
	}

	children, err := s.repo.Child.List(ctx)
	if err != nil {
		s.logger.Error("查询幼儿列表失败", zap.Error(err))
		return nil, err
	}

	return BuildDashboard(classrooms, children, target), nil
}
