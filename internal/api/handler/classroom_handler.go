package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bneller/littlesteps2/internal/dto"
	"github.com/bneller/littlesteps2/internal/service"
	"github.com/bneller/littlesteps2/pkg/response"
)

// ClassroomHandler 班级模块 HTTP 处理器
type ClassroomHandler struct {
	classroomSvc service.ClassroomService
}

// NewClassroomHandler 创建 ClassroomHandler
func NewClassroomHandler(classroomSvc service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomSvc: classroomSvc}
}

// ListClassrooms 获取班级列表
// GET /api/classrooms
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	classrooms, err := h.classroomSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, classrooms)
}

// GetClassroom 获取班级详情
// GET /api/classrooms/:id
func (h *ClassroomHandler) GetClassroom(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	classroom, err := h.classroomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, classroom)
}

// CreateClassroom 创建班级
// POST /api/classrooms
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var req dto.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	classroom, err := h.classroomSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.Created(c, classroom)
}

// UpdateClassroom 更新班级（部分字段补丁）
// PATCH /api/classrooms/:id
func (h *ClassroomHandler) UpdateClassroom(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	classroom, err := h.classroomSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, classroom)
}

// DeleteClassroom 删除班级
// DELETE /api/classrooms/:id
func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	id, ok := MustParseID(c)
	if !ok {
		return
	}

	if err := h.classroomSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.NoContent(c)
}

// handleClassroomError 统一处理班级模块业务错误
func (h *ClassroomHandler) handleClassroomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, 14001, "班级不存在")
	case errors.Is(err, service.ErrClassroomInvalidBand):
		response.BadRequest(c, 14002, err.Error())
	default:
		response.InternalError(c)
	}
}
