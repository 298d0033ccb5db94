package handler

import "github.com/bneller/littlesteps2/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Classroom *ClassroomHandler
	Child     *ChildHandler
	Dashboard *DashboardHandler
	Auth      *AuthHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Classroom: NewClassroomHandler(svc.Classroom),
		Child:     NewChildHandler(svc.Child),
		Dashboard: NewDashboardHandler(svc.Forecast),
		Auth:      NewAuthHandler(svc.Auth),
		Export:    NewExportHandler(svc.Export),
	}
}
