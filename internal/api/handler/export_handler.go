package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bneller/littlesteps2/internal/service"
	"github.com/bneller/littlesteps2/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportOccupancy 导出入园概况 Excel
// GET /api/export/occupancy?date=YYYY-MM-DD
func (h *ExportHandler) ExportOccupancy(c *gin.Context) {
	target, ok := ParseTargetDate(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportOccupancy(c.Request.Context(), target)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportTransitions 导出升班日历 ICS
// GET /api/export/transitions?date=YYYY-MM-DD
func (h *ExportHandler) ExportTransitions(c *gin.Context) {
	target, ok := ParseTargetDate(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportTransitions(c.Request.Context(), target)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoClassrooms):
		response.NotFound(c, 17001, "暂无班级，无法导出")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
