package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bneller/littlesteps2/pkg/response"
)

// MustParseID 解析路径参数 :id 为数字 ID。
// 非数字时写入 400 响应并返回 false，调用方应直接 return。
// 数字但无对应记录（包括 0）由存储层查询落空后映射为 404。
func MustParseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "无效的记录 ID")
		return 0, false
	}
	return uint(id), true
}

// ParseTargetDate 解析查询参数 date（YYYY-MM-DD），缺省为当天。
// 格式错误时写入 400 响应并返回 false。
func ParseTargetDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(c, 10001, "日期格式无效，应为 YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果认证中间件未正确注入 user_id，返回 false 并写入 401 响应。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}
