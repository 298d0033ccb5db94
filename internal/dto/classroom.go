package dto

// ── 班级模块 DTO ──

// CreateClassroomRequest 创建班级请求
// MinAgeMonths 合法值含 0，因此用指针区分"未传"与"传 0"
type CreateClassroomRequest struct {
	Name         string `json:"name"         binding:"required,min=1,max=100"`
	Color        string `json:"color"        binding:"required,min=1,max=30"`
	MinAgeMonths *int   `json:"minAgeMonths" binding:"required,gte=0"`
	MaxAgeMonths *int   `json:"maxAgeMonths" binding:"required,gt=0"`
	Capacity     int    `json:"capacity"     binding:"required,gt=0"`
	Ratio        string `json:"ratio"        binding:"required,min=1,max=20"`
}

// UpdateClassroomRequest 更新班级请求（部分字段补丁）
type UpdateClassroomRequest struct {
	Name         *string `json:"name"         binding:"omitempty,min=1,max=100"`
	Color        *string `json:"color"        binding:"omitempty,min=1,max=30"`
	MinAgeMonths *int    `json:"minAgeMonths" binding:"omitempty,gte=0"`
	MaxAgeMonths *int    `json:"maxAgeMonths" binding:"omitempty,gt=0"`
	Capacity     *int    `json:"capacity"     binding:"omitempty,gt=0"`
	Ratio        *string `json:"ratio"        binding:"omitempty,min=1,max=20"`
}

// ClassroomResponse 班级信息响应
type ClassroomResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	MinAgeMonths int    `json:"minAgeMonths"`
	MaxAgeMonths int    `json:"maxAgeMonths"`
	Capacity     int    `json:"capacity"`
	Ratio        string `json:"ratio"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}
