package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bneller/littlesteps2/internal/dto"
	"github.com/bneller/littlesteps2/internal/service"
	"github.com/bneller/littlesteps2/pkg/response"
)

// ChildHandler 幼儿模块 HTTP 处理器
type ChildHandler struct {
	childSvc service.ChildService
}

// NewChildHandler 创建 ChildHandler
func NewChildHandler(childSvc service.ChildService) *ChildHandler {
	return &ChildHandler{childSvc: childSvc}
}

// ListChildren 获取幼儿列表
// GET /api/children
func (h *ChildHandler) ListChildren(c *gin.Context) {
	children, err := h.childSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, children)
}

// GetChild 获取幼儿详情
// GET /api/children/:id
func (h *ChildHandler) GetChild(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	child, err := h.childSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleChildError(c, err)
		return
	}

	response.OK(c, child)
}

// CreateChild 创建幼儿记录
// POST /api/children
func (h *ChildHandler) CreateChild(c *gin.Context) {
	var req dto.CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	child, err := h.childSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleChildError(c, err)
		return
	}

	response.Created(c, child)
}

// UpdateChild 更新幼儿记录（部分字段补丁）
// PATCH /api/children/:id
func (h *ChildHandler) UpdateChild(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	child, err := h.childSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleChildError(c, err)
		return
	}

	response.OK(c, child)
}

// DeleteChild 删除幼儿记录
// DELETE /api/children/:id
func (h *ChildHandler) DeleteChild(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	if err := h.childSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleChildError(c, err)
		return
	}

	response.NoContent(c)
}

// handleChildError 统一处理幼儿模块业务错误
func (h *ChildHandler) handleChildError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChildNotFound):
		response.NotFound(c, 15001, "幼儿记录不存在")
	case errors.Is(err, service.ErrChildInvalidDate):
		response.BadRequest(c, 15002, err.Error())
	default:
		response.InternalError(c)
	}
}
