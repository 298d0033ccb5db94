package dto

// ── 幼儿模块 DTO ──
//
// 日期字段为 ISO 日期字符串（YYYY-MM-DD），在 Service 层解析校验，
// 格式错误在入库前拒绝，不会流入预测引擎。

// CreateChildRequest 创建幼儿请求
type CreateChildRequest struct {
	Name           string `json:"name"           binding:"required,min=1,max=100"`
	BirthDate      string `json:"birthDate"      binding:"required"`
	EnrollmentDate string `json:"enrollmentDate" binding:"required"`
}

// UpdateChildRequest 更新幼儿请求（部分字段补丁）
type UpdateChildRequest struct {
	Name           *string `json:"name"           binding:"omitempty,min=1,max=100"`
	BirthDate      *string `json:"birthDate"      binding:"omitempty"`
	EnrollmentDate *string `json:"enrollmentDate" binding:"omitempty"`
}

// ChildResponse 幼儿信息响应
type ChildResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	BirthDate      string `json:"birthDate"`
	EnrollmentDate string `json:"enrollmentDate"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}
