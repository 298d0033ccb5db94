package model

// AdminUser 管理员表 — 对应 admin_users
type AdminUser struct {
	BaseModel
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(100);not null"            json:"-"`
	DisplayName  string `gorm:"type:varchar(100);not null;default:''" json:"display_name"`
}

// TableName 指定表名
func (AdminUser) TableName() string { return "admin_users" }
