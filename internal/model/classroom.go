package model

// Classroom 班级表 — 对应 classrooms
//
// [MinAgeMonths, MaxAgeMonths) 为左闭右开月龄区间，
// 不变式 MinAgeMonths < MaxAgeMonths 在 Service 层与数据库 CHECK 双重保证。
// 班级与幼儿之间没有外键：归属始终由出生日期 + 目标日期计算得出。
type Classroom struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Color        string `gorm:"type:varchar(30);not null"  json:"color"`
	MinAgeMonths int    `gorm:"not null"                   json:"minAgeMonths"`
	MaxAgeMonths int    `gorm:"not null"                   json:"maxAgeMonths"`
	Capacity     int    `gorm:"not null"                   json:"capacity"`
	Ratio        string `gorm:"type:varchar(20);not null"  json:"ratio"` // 师生比展示字符串，如 "1:4"
}

// TableName 指定表名
func (Classroom) TableName() string { return "classrooms" }

// ContainsAge 判断月龄是否落在本班年龄段内
func (c *Classroom) ContainsAge(ageMonths int) bool {
	return ageMonths >= c.MinAgeMonths && ageMonths < c.MaxAgeMonths
}
