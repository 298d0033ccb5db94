package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bneller/littlesteps2/internal/service"
	"github.com/bneller/littlesteps2/pkg/response"
)

// DashboardHandler 仪表盘模块 HTTP 处理器
type DashboardHandler struct {
	forecastSvc service.ForecastService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(forecastSvc service.ForecastService) *DashboardHandler {
	return &DashboardHandler{forecastSvc: forecastSvc}
}

// GetDashboard 获取目标日期的全园快照
// GET /api/dashboard?date=YYYY-MM-DD（缺省为当天）
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	target, ok := ParseTargetDate(c)
	if !ok {
		return
	}

	dashboard, err := h.forecastSvc.Dashboard(c.Request.Context(), target)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dashboard)
}
