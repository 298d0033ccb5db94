package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Classroom ClassroomRepository
	Child     ChildRepository
	AdminUser AdminUserRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Classroom: NewClassroomRepo(db),
		Child:     NewChildRepo(db),
		AdminUser: NewAdminUserRepo(db),
	}
}
