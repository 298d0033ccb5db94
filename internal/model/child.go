package model

import "time"

// Child 幼儿表 — 对应 children
//
// EnrollmentDate 仅作展示，不参与班级归属计算。
type Child struct {
	BaseModel
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	BirthDate      time.Time `gorm:"type:date;not null"         json:"birthDate"`
	EnrollmentDate time.Time `gorm:"type:date;not null"         json:"enrollmentDate"`
}

// TableName 指定表名
func (Child) TableName() string { return "children" }
