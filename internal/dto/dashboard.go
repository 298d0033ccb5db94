package dto

// ── 仪表盘（预测）模块 DTO ──

// DashboardResponse 指定目标日期的全园快照
type DashboardResponse struct {
	Date       string              `json:"date"`
	Classrooms []ClassroomForecast `json:"classrooms"`
	Unplaced   []UnplacedChild     `json:"unplaced"`
	Totals     DashboardTotals     `json:"totals"`
}

// ClassroomForecast 单个班级在目标日期的完整预测视图
type ClassroomForecast struct {
	ID                  uint             `json:"id"`
	Name                string           `json:"name"`
	Color               string           `json:"color"`
	MinAgeMonths        int              `json:"minAgeMonths"`
	MaxAgeMonths        int              `json:"maxAgeMonths"`
	Capacity            int              `json:"capacity"`
	Ratio               string           `json:"ratio"`
	Enrolled            int              `json:"enrolled"`
	OccupancyRatio      float64          `json:"occupancyRatio"`
	GraduatingNextMonth int              `json:"graduatingNextMonth"` // 角标：1 个月内升班人数
	Alert               *CapacityAlert   `json:"alert,omitempty"`
	Roster              []EnrolledChild  `json:"roster"`
	Transitions         []TransitionItem `json:"transitions"`
	Trend               []TrendPoint     `json:"trend"`
}

// EnrolledChild 班级名册中的幼儿（按月龄降序）
type EnrolledChild struct {
	ID                  uint   `json:"id"`
	Name                string `json:"name"`
	AgeMonths           int    `json:"ageMonths"`
	MonthsToGraduation  int    `json:"monthsToGraduation"`
	GraduatingSoon      bool   `json:"graduatingSoon"`      // ≤3 个月
	GraduatingNextMonth bool   `json:"graduatingNextMonth"` // ≤1 个月
}

// TransitionItem 即将升班提醒
type TransitionItem struct {
	ChildID            uint   `json:"childId"`
	ChildName          string `json:"childName"`
	MonthsToGraduation int    `json:"monthsToGraduation"`
	NextClassroomID    *uint  `json:"nextClassroomId,omitempty"`
	NextClassroomName  string `json:"nextClassroomName,omitempty"`
}

// CapacityAlert 容量预警（每班至多一条，按优先级取首条命中）
type CapacityAlert struct {
	Level   string `json:"level"` // critical | warning | opportunity
	Message string `json:"message"`
}

// TrendPoint 趋势序列中的一个月份点
// Month 为 YYYY-MM，保证按字典序单调递增；Label 为展示用标签
type TrendPoint struct {
	Month    string `json:"month"`
	Label    string `json:"label"`
	Enrolled int    `json:"enrolled"`
	Capacity int    `json:"capacity"`
	Forecast bool   `json:"forecast"` // 偏移量 > 0 的未来投影点
}

// UnplacedChild 未落入任何班级年龄段的幼儿
type UnplacedChild struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AgeMonths int    `json:"ageMonths"`
}

// DashboardTotals 全园汇总
type DashboardTotals struct {
	Capacity         int `json:"capacity"`
	Enrolled         int `json:"enrolled"`
	Vacancies        int `json:"vacancies"` // 可能为负，原样展示
	OccupancyPercent int `json:"occupancyPercent"`
}
