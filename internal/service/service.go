package service

import (
	"go.uber.org/zap"

	"github.com/bneller/littlesteps2/internal/repository"
	"github.com/bneller/littlesteps2/pkg/jwt"
	"github.com/bneller/littlesteps2/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Classroom ClassroomService
	Child     ChildService
	Forecast  ForecastService
	Auth      AuthService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	forecast := NewForecastService(repo, logger)
	return &Service{
		Classroom: NewClassroomService(repo, logger),
		Child:     NewChildService(repo, logger),
		Forecast:  forecast,
		Auth:      NewAuthService(repo, jwtMgr, rdb, logger),
		Export:    NewExportService(repo, forecast, logger),
	}
}
