package service

import (
	"testing"
	"time"

	"github.com/bneller/littlesteps2/internal/model"
)

// ── 测试辅助 ──

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testClassrooms() []model.Classroom {
	return []model.Classroom{
		{BaseModel: model.BaseModel{ID: 1}, Name: "乳儿班", Color: "pink", MinAgeMonths: 0, MaxAgeMonths: 12, Capacity: 8, Ratio: "1:3"},
		{BaseModel: model.BaseModel{ID: 2}, Name: "托小班", Color: "blue", MinAgeMonths: 12, MaxAgeMonths: 24, Capacity: 10, Ratio: "1:4"},
		{BaseModel: model.BaseModel{ID: 3}, Name: "托大班", Color: "green", MinAgeMonths: 24, MaxAgeMonths: 36, Capacity: 12, Ratio: "1:5"},
	}
}

func childBornMonthsAgo(id uint, name string, months int, target time.Time) model.Child {
	return model.Child{
		BaseModel: model.BaseModel{ID: id},
		Name:      name,
		BirthDate: target.AddDate(0, -months, 0),
	}
}

// ── AgeInMonths 测试 ──

func TestAgeInMonths(t *testing.T) {
	cases := []struct {
		name   string
		birth  time.Time
		target time.Time
		want   int
	}{
		{"整11个月", date(2025, time.July, 15), date(2026, time.June, 15), 11},
		{"差一天不足一月", date(2025, time.July, 15), date(2026, time.June, 14), 10},
		{"同一天为0", date(2026, time.June, 15), date(2026, time.June, 15), 0},
		{"跨年整月", date(2024, time.December, 1), date(2026, time.January, 1), 13},
		{"目标日在出生日之后", date(2025, time.March, 10), date(2025, time.October, 20), 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AgeInMonths(tc.birth, tc.target)
			if got != tc.want {
				t.Errorf("期望 %d 个月，实际 %d", tc.want, got)
			}
		})
	}
}

// ── 分桶测试 ──

func TestAssignClassroom_BandBoundaries(t *testing.T) {
	classrooms := testClassrooms()

	cases := []struct {
		age  int
		want int // 期望班级下标；-1 表示无归属
	}{
		{0, 0},   // 下界含
		{11, 0},  // 上界前最后一个月
		{12, 1},  // 上界不含，落入下一班
		{23, 1},
		{35, 2},
		{36, -1}, // 超出所有年龄段
		{-1, -1}, // 尚未出生（目标日期早于出生日期）
	}

	for _, tc := range cases {
		if got := assignClassroom(classrooms, tc.age); got != tc.want {
			t.Errorf("月龄 %d: 期望班级下标 %d，实际 %d", tc.age, tc.want, got)
		}
	}
}

func TestAssignClassroom_GapInCoverage(t *testing.T) {
	// [0,12) 与 [18,36) 之间存在空档
	classrooms := []model.Classroom{
		{BaseModel: model.BaseModel{ID: 1}, Name: "乳儿班", MinAgeMonths: 0, MaxAgeMonths: 12, Capacity: 8},
		{BaseModel: model.BaseModel{ID: 2}, Name: "托大班", MinAgeMonths: 18, MaxAgeMonths: 36, Capacity: 10},
	}

	if got := assignClassroom(classrooms, 15); got != -1 {
		t.Errorf("空档月龄应无归属，实际下标 %d", got)
	}
}

// ── 容量预警测试 ──

func TestBuildAlert_Priority(t *testing.T) {
	cases := []struct {
		name      string
		enrolled  int
		capacity  int
		wantLevel string // "" 表示无预警
	}{
		{"超员1人为critical", 21, 20, AlertLevelCritical},
		{"满员但未超员为warning", 10, 10, AlertLevelWarning},
		{"达到90%为warning", 9, 10, AlertLevelWarning},
		{"恰好60%为opportunity", 6, 10, AlertLevelOpportunity},
		{"低于60%为opportunity", 3, 10, AlertLevelOpportunity},
		{"区间中部无预警", 8, 10, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alert := buildAlert("测试班", tc.enrolled, tc.capacity)
			if tc.wantLevel == "" {
				if alert != nil {
					t.Fatalf("期望无预警，实际 %+v", alert)
				}
				return
			}
			if alert == nil {
				t.Fatalf("期望 %s 预警，实际无", tc.wantLevel)
			}
			if alert.Level != tc.wantLevel {
				t.Errorf("期望级别 %s，实际 %s", tc.wantLevel, alert.Level)
			}
		})
	}
}

func TestBuildAlert_CriticalMessage(t *testing.T) {
	alert := buildAlert("托小班", 21, 20)
	if alert == nil || alert.Level != AlertLevelCritical {
		t.Fatalf("期望 critical 预警，实际 %+v", alert)
	}
	if alert.Message != "托小班 超员 1 人" {
		t.Errorf("超员数量应为 1，实际消息: %s", alert.Message)
	}
}

// ── 快照测试 ──

func TestBuildDashboard_GraduatingNextMonth(t *testing.T) {
	// 乳儿班 [0,12) 容量 8；距目标日整 11 个月出生 → 月龄 11 → 距升班 1 个月
	target := date(2026, time.June, 15)
	classrooms := testClassrooms()
	children := []model.Child{childBornMonthsAgo(1, "小明", 11, target)}

	result := BuildDashboard(classrooms, children, target)

	infants := result.Classrooms[0]
	if infants.Name != "乳儿班" {
		t.Fatalf("首个班级应为乳儿班，实际 %s", infants.Name)
	}
	if infants.Enrolled != 1 {
		t.Fatalf("期望在读 1 人，实际 %d", infants.Enrolled)
	}
	child := infants.Roster[0]
	if child.AgeMonths != 11 {
		t.Errorf("期望月龄 11，实际 %d", child.AgeMonths)
	}
	if child.MonthsToGraduation != 1 {
		t.Errorf("期望距升班 1 个月，实际 %d", child.MonthsToGraduation)
	}
	if !child.GraduatingNextMonth {
		t.Error("应标记为近一月升班")
	}
	if infants.GraduatingNextMonth != 1 {
		t.Errorf("近一月升班角标应为 1，实际 %d", infants.GraduatingNextMonth)
	}
}

func TestBuildDashboard_TransitionNextClassroom(t *testing.T) {
	target := date(2026, time.June, 15)
	classrooms := testClassrooms()
	children := []model.Child{childBornMonthsAgo(1, "小红", 10, target)}

	result := BuildDashboard(classrooms, children, target)

	infants := result.Classrooms[0]
	if len(infants.Transitions) != 1 {
		t.Fatalf("期望 1 条升班提醒，实际 %d", len(infants.Transitions))
	}
	tr := infants.Transitions[0]
	if tr.NextClassroomName != "托小班" {
		t.Errorf("下一班级应为托小班，实际 %q", tr.NextClassroomName)
	}
	if tr.NextClassroomID == nil || *tr.NextClassroomID != 2 {
		t.Errorf("下一班级 ID 应为 2，实际 %v", tr.NextClassroomID)
	}
}

func TestBuildDashboard_AdjacencyIgnoresInputOrder(t *testing.T) {
	// 班级列表逆序传入：相邻关系仍按年龄段推导
	target := date(2026, time.June, 15)
	classrooms := testClassrooms()
	reversed := []model.Classroom{classrooms[2], classrooms[0], classrooms[1]}
	children := []model.Child{childBornMonthsAgo(1, "小刚", 11, target)}

	result := BuildDashboard(reversed, children, target)

	// 输出按年龄段升序
	if result.Classrooms[0].Name != "乳儿班" || result.Classrooms[2].Name != "托大班" {
		t.Fatalf("班级应按年龄段升序输出: %s, %s, %s",
			result.Classrooms[0].Name, result.Classrooms[1].Name, result.Classrooms[2].Name)
	}
	tr := result.Classrooms[0].Transitions
	if len(tr) != 1 || tr[0].NextClassroomName != "托小班" {
		t.Fatalf("逆序输入下相邻关系应不变，实际 %+v", tr)
	}
}

func TestBuildDashboard_RosterOrderDeterministic(t *testing.T) {
	target := date(2026, time.June, 15)
	classrooms := testClassrooms()
	children := []model.Child{
		childBornMonthsAgo(1, "阿大", 3, target),
		childBornMonthsAgo(2, "阿二", 8, target),
		childBornMonthsAgo(3, "阿三", 5, target),
	}

	// 两种输入顺序得到同一名册
	forward := BuildDashboard(classrooms, children, target)
	shuffled := []model.Child{children[2], children[0], children[1]}
	backward := BuildDashboard(classrooms, shuffled, target)

	roster1 := forward.Classrooms[0].Roster
	roster2 := backward.Classrooms[0].Roster
	if len(roster1) != 3 || len(roster2) != 3 {
		t.Fatalf("期望名册各 3 人，实际 %d / %d", len(roster1), len(roster2))
	}
	for i := range roster1 {
		if roster1[i].ID != roster2[i].ID {
			t.Errorf("第 %d 位不一致: %d vs %d", i, roster1[i].ID, roster2[i].ID)
		}
	}

	// 月龄降序
	for i := 1; i < len(roster1); i++ {
		if roster1[i-1].AgeMonths < roster1[i].AgeMonths {
			t.Errorf("名册应按月龄降序: %d 在 %d 之前", roster1[i-1].AgeMonths, roster1[i].AgeMonths)
		}
	}
}

func TestBuildDashboard_UnplacedSurfaced(t *testing.T) {
	target := date(2026, time.June, 15)
	classrooms := testClassrooms()
	children := []model.Child{
		childBornMonthsAgo(1, "在班", 6, target),
		childBornMonthsAgo(2, "超龄", 40, target), // 超出最大年龄段
	}

	result := BuildDashboard(classrooms, children, target)

	if len(result.Unplaced) != 1 {
		t.Fatalf("期望 1 名未安置幼儿，实际 %d", len(result.Unplaced))
	}
	if result.Unplaced[0].Name != "超龄" {
		t.Errorf("未安置幼儿应为超龄，实际 %s", result.Unplaced[0].Name)
	}
	if result.Totals.Enrolled != 1 {
		t.Errorf("未安置幼儿不应计入在读合计，实际 %d", result.Totals.Enrolled)
	}
}

func TestBuildDashboard_TrendSeries(t *testing.T) {
	target := date(2026, time.June, 15)
	classrooms := testClassrooms()
	children := []model.Child{
		// 目标日月龄 11：6 个月前月龄 5（乳儿班），13 个月后月龄 24（托大班）
		childBornMonthsAgo(1, "小明", 11, target),
	}

	result := BuildDashboard(classrooms, children, target)
	trend := result.Classrooms[0].Trend

	if len(trend) != 25 {
		t.Fatalf("趋势序列应为 25 个点，实际 %d", len(trend))
	}

	// 月份键严格单调递增
	for i := 1; i < len(trend); i++ {
		if trend[i-1].Month >= trend[i].Month {
			t.Errorf("月份键应单调递增: %s ≥ %s", trend[i-1].Month, trend[i].Month)
		}
	}

	// 偏移 0 为当前点（下标 12），不是预测
	if trend[12].Forecast {
		t.Error("偏移 0 不应标记为预测")
	}
	if trend[12].Enrolled != 1 {
		t.Errorf("偏移 0 在读应为 1，实际 %d", trend[12].Enrolled)
	}
	if !trend[13].Forecast {
		t.Error("偏移 +1 应标记为预测")
	}
	if trend[11].Forecast {
		t.Error("偏移 -1 不应标记为预测")
	}

	// 偏移 +2 时月龄 13，已升入托小班 → 乳儿班在读 0
	if trend[14].Enrolled != 0 {
		t.Errorf("偏移 +2 乳儿班在读应为 0，实际 %d", trend[14].Enrolled)
	}

	// 容量恒定
	for _, p := range trend {
		if p.Capacity != 8 {
			t.Errorf("乳儿班容量应恒为 8，实际 %d", p.Capacity)
		}
	}
}

func TestShiftMonths(t *testing.T) {
	cases := []struct {
		name   string
		from   time.Time
		offset int
		want   time.Time
	}{
		{"普通日期平移", date(2026, time.June, 15), 2, date(2026, time.August, 15)},
		{"1月31日加一个月收敛到2月末", date(2026, time.January, 31), 1, date(2026, time.February, 28)},
		{"闰年2月末", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"3月31日加一个月收敛到4月30日", date(2026, time.March, 31), 1, date(2026, time.April, 30)},
		{"月末回退", date(2026, time.March, 31), -1, date(2026, time.February, 28)},
		{"跨年正向", date(2026, time.October, 31), 4, date(2027, time.February, 28)},
		{"跨年负向", date(2026, time.January, 31), -2, date(2025, time.November, 30)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := shiftMonths(tc.from, tc.offset)
			if !got.Equal(tc.want) {
				t.Errorf("期望 %s，实际 %s", tc.want.Format("2006-01-02"), got.Format("2006-01-02"))
			}
		})
	}
}

func TestBuildDashboard_TrendSeriesMonthEndTarget(t *testing.T) {
	// 目标日为 1 月 31 日：每个偏移量必须恰好落在一个月份，
	// 不重复、不跳过 2 月这样的短月
	target := date(2026, time.January, 31)
	classrooms := testClassrooms()
	children := []model.Child{childBornMonthsAgo(1, "小明", 6, target)}

	result := BuildDashboard(classrooms, children, target)
	trend := result.Classrooms[0].Trend

	if len(trend) != 25 {
		t.Fatalf("趋势序列应为 25 个点，实际 %d", len(trend))
	}
	for i := 1; i < len(trend); i++ {
		if trend[i-1].Month >= trend[i].Month {
			t.Errorf("月份键应严格单调递增: 第 %d 点 %s 后接 %s", i-1, trend[i-1].Month, trend[i].Month)
		}
	}
	if trend[13].Month != "2026-02" {
		t.Errorf("偏移 +1 应落在 2026-02，实际 %s", trend[13].Month)
	}

	// 偏移 +1 在 2 月 28 日计算：出生于 2025-07-31，2 月 28 日不足整 7 个月
	if trend[13].Enrolled != 1 {
		t.Errorf("偏移 +1 乳儿班在读应为 1，实际 %d", trend[13].Enrolled)
	}
}

func TestBuildDashboard_Totals(t *testing.T) {
	target := date(2026, time.June, 15)
	classrooms := []model.Classroom{
		{BaseModel: model.BaseModel{ID: 1}, Name: "乳儿班", MinAgeMonths: 0, MaxAgeMonths: 12, Capacity: 4},
		{BaseModel: model.BaseModel{ID: 2}, Name: "托小班", MinAgeMonths: 12, MaxAgeMonths: 24, Capacity: 2},
	}
	children := []model.Child{
		childBornMonthsAgo(1, "a", 3, target),
		childBornMonthsAgo(2, "b", 14, target),
		childBornMonthsAgo(3, "c", 15, target),
		childBornMonthsAgo(4, "d", 16, target), // 托小班超员
	}

	result := BuildDashboard(classrooms, children, target)

	if result.Totals.Capacity != 6 {
		t.Errorf("总容量应为 6，实际 %d", result.Totals.Capacity)
	}
	if result.Totals.Enrolled != 4 {
		t.Errorf("总在读应为 4，实际 %d", result.Totals.Enrolled)
	}
	if result.Totals.Vacancies != 2 {
		t.Errorf("总空位应为 2，实际 %d", result.Totals.Vacancies)
	}
	// round(100 × 4/6) = 67
	if result.Totals.OccupancyPercent != 67 {
		t.Errorf("总占用率应为 67，实际 %d", result.Totals.OccupancyPercent)
	}

	// 托小班超员：3 人 / 容量 2 → critical
	junior := result.Classrooms[1]
	if junior.Alert == nil || junior.Alert.Level != AlertLevelCritical {
		t.Errorf("托小班应为 critical 预警，实际 %+v", junior.Alert)
	}
}

func TestBuildDashboard_NegativeVacanciesShownAsIs(t *testing.T) {
	target := date(2026, time.June, 15)
	classrooms := []model.Classroom{
		{BaseModel: model.BaseModel{ID: 1}, Name: "乳儿班", MinAgeMonths: 0, MaxAgeMonths: 12, Capacity: 1},
	}
	children := []model.Child{
		childBornMonthsAgo(1, "a", 3, target),
		childBornMonthsAgo(2, "b", 5, target),
	}

	result := BuildDashboard(classrooms, children, target)

	if result.Totals.Vacancies != -1 {
		t.Errorf("总空位应为 -1（原样展示），实际 %d", result.Totals.Vacancies)
	}
}

func TestBuildDashboard_EmptyInputs(t *testing.T) {
	target := date(2026, time.June, 15)
	result := BuildDashboard(nil, nil, target)

	if len(result.Classrooms) != 0 {
		t.Errorf("无班级时不应有班级视图，实际 %d", len(result.Classrooms))
	}
	if result.Totals.OccupancyPercent != 0 {
		t.Errorf("总容量为 0 时占用率应为 0，实际 %d", result.Totals.OccupancyPercent)
	}
	if result.Unplaced == nil {
		t.Error("unplaced 应为空切片而非 nil")
	}
}
