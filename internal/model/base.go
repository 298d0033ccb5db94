package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
// 记录 ID 由数据库自增分配，客户端不可指定
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"                         json:"id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
