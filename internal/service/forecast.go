package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bneller/littlesteps2/internal/dto"
	"github.com/bneller/littlesteps2/internal/model"
)

// ── 预测引擎 ────────────────────────────────────────────────
//
// 职责：给定班级列表、幼儿列表与目标日期，计算全园快照：
//   - 每个幼儿在目标日期的整月龄与归属班级
//   - 各班级名册（月龄降序）、升班提醒、容量预警
//   - 每班 25 个月份点的趋势序列（偏移 -12..+12）
//   - 全园汇总
//
// 设计决策：
//   - 纯函数，无副作用、无缓存：归属永远从出生日期 + 目标日期现算，
//     班级年龄段调整后无需任何失效处理。
//   - 相邻班级关系按 MinAgeMonths 显式排序推导，不信任插入顺序；
//     "下一班级"为 MinAgeMonths 等于当前班 MaxAgeMonths 的班级。
//   - 未落入任何年龄段的幼儿显式列入 unplaced，不静默丢弃。
//   - 趋势序列对每个月份点完整重跑分桶，O(班级 × 幼儿 × 25)，
//     在数十班级、数百幼儿的规模下无需增量更新。
// ─────────────────────────────────────────────────────────────

const (
	// 趋势序列月份偏移范围（含 0），共 trendPoints 个点
	trendOffsetMin = -12
	trendOffsetMax = 12
	trendPoints    = trendOffsetMax - trendOffsetMin + 1

	// 升班提醒阈值（月）
	graduatingSoonMonths      = 3
	graduatingNextMonthMonths = 1

	// 容量预警阈值
	warningRatio     = 0.9
	opportunityRatio = 0.6
)

// 预警级别
const (
	AlertLevelCritical    = "critical"
	AlertLevelWarning     = "warning"
	AlertLevelOpportunity = "opportunity"
)

// AgeInMonths 计算从出生日期到目标日期的整月数
// 目标日的"日"小于出生日的"日"时不足一个整月，需减一
func AgeInMonths(birth, target time.Time) int {
	months := (target.Year()-birth.Year())*12 + int(target.Month()) - int(birth.Month())
	if target.Day() < birth.Day() {
		months--
	}
	return months
}

// sortClassrooms 返回按年龄段下界升序的班级副本
// 相邻班级推导与分桶都基于此顺序，输入顺序不参与任何语义
func sortClassrooms(classrooms []model.Classroom) []model.Classroom {
	sorted := make([]model.Classroom, len(classrooms))
	copy(sorted, classrooms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinAgeMonths < sorted[j].MinAgeMonths
	})
	return sorted
}

// assignClassroom 返回月龄归属的班级下标，无匹配返回 -1
// classrooms 须已按 MinAgeMonths 升序；年龄段不应重叠（引擎不检测重叠）
func assignClassroom(classrooms []model.Classroom, ageMonths int) int {
	for i := range classrooms {
		if classrooms[i].ContainsAge(ageMonths) {
			return i
		}
	}
	return -1
}

// nextClassroom 返回当前班级的下一班级（年龄段紧邻衔接），无则返回 nil
func nextClassroom(classrooms []model.Classroom, current *model.Classroom) *model.Classroom {
	for i := range classrooms {
		if classrooms[i].MinAgeMonths == current.MaxAgeMonths {
			return &classrooms[i]
		}
	}
	return nil
}

// countEnrolled 统计指定日期各班级（按下标）在读人数
// 趋势序列的每个月份点都通过此函数完整重跑分桶
func countEnrolled(classrooms []model.Classroom, children []model.Child, target time.Time) []int {
	counts := make([]int, len(classrooms))
	for i := range children {
		idx := assignClassroom(classrooms, AgeInMonths(children[i].BirthDate, target))
		if idx >= 0 {
			counts[idx]++
		}
	}
	return counts
}

// buildAlert 按优先级生成容量预警，首条命中即返回（互斥）
//   1. 在读 > 容量            → critical
//   2. 在读/容量 ≥ 0.9        → warning
//   3. 在读/容量 ≤ 0.6        → opportunity
//   4. 其余                   → nil
// capacity ≤ 0 在校验层已拒绝，引擎不做除零防护之外的处理
func buildAlert(name string, enrolled, capacity int) *dto.CapacityAlert {
	if capacity <= 0 {
		return nil
	}
	if enrolled > capacity {
		return &dto.CapacityAlert{
			Level:   AlertLevelCritical,
			Message: fmt.Sprintf("%s 超员 %d 人", name, enrolled-capacity),
		}
	}
	ratio := float64(enrolled) / float64(capacity)
	if ratio >= warningRatio {
		return &dto.CapacityAlert{
			Level:   AlertLevelWarning,
			Message: fmt.Sprintf("%s 接近满员，剩余 %d 个名额", name, capacity-enrolled),
		}
	}
	if ratio <= opportunityRatio {
		return &dto.CapacityAlert{
			Level:   AlertLevelOpportunity,
			Message: fmt.Sprintf("%s 空位充足，建议开展招生", name),
		}
	}
	return nil
}

// shiftMonths 将日期平移 offset 个月，"日"超出目标月天数时收敛到月末
// AddDate 会让月末日期溢出进位（1月31日 + 1 个月 → 3月3日），
// 导致月份点重复或跳月，这里按月锚定保证每个偏移量恰好落在一个月份
func shiftMonths(t time.Time, offset int) time.Time {
	anchor := time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if lastDay := anchor.AddDate(0, 1, -1).Day(); day > lastDay {
		day = lastDay
	}
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, t.Location())
}

// buildTrend 生成指定班级的 25 点趋势序列（月份偏移 -12..+12）
func buildTrend(classrooms []model.Classroom, children []model.Child, classroomIdx int, target time.Time) []dto.TrendPoint {
	trend := make([]dto.TrendPoint, 0, trendPoints)
	capacity := classrooms[classroomIdx].Capacity

	for offset := trendOffsetMin; offset <= trendOffsetMax; offset++ {
		shifted := shiftMonths(target, offset)
		counts := countEnrolled(classrooms, children, shifted)
		trend = append(trend, dto.TrendPoint{
			Month:    shifted.Format("2006-01"),
			Label:    fmt.Sprintf("%d年%d月", shifted.Year(), int(shifted.Month())),
			Enrolled: counts[classroomIdx],
			Capacity: capacity,
			Forecast: offset > 0,
		})
	}
	return trend
}

// BuildDashboard 计算目标日期的全园快照
// 纯函数：输入仅为内存中的两份列表与目标日期，无任何持久化派生状态
func BuildDashboard(classrooms []model.Classroom, children []model.Child, target time.Time) *dto.DashboardResponse {
	sorted := sortClassrooms(classrooms)

	// 1. 分桶：每个幼儿归属的班级下标
	type placedChild struct {
		child     *model.Child
		ageMonths int
	}
	rosters := make([][]placedChild, len(sorted))
	var unplaced []dto.UnplacedChild

	for i := range children {
		age := AgeInMonths(children[i].BirthDate, target)
		idx := assignClassroom(sorted, age)
		if idx < 0 {
			unplaced = append(unplaced, dto.UnplacedChild{
				ID:        children[i].ID,
				Name:      children[i].Name,
				AgeMonths: age,
			})
			continue
		}
		rosters[idx] = append(rosters[idx], placedChild{child: &children[i], ageMonths: age})
	}

	// 2. 逐班级汇总
	result := make([]dto.ClassroomForecast, 0, len(sorted))
	totalCapacity, totalEnrolled := 0, 0

	for idx := range sorted {
		room := &sorted[idx]
		roster := rosters[idx]

		// 名册展示顺序：月龄降序，月龄相同按姓名升序保证确定性
		sort.SliceStable(roster, func(i, j int) bool {
			if roster[i].ageMonths != roster[j].ageMonths {
				return roster[i].ageMonths > roster[j].ageMonths
			}
			return roster[i].child.Name < roster[j].child.Name
		})

		next := nextClassroom(sorted, room)

		enrolledList := make([]dto.EnrolledChild, 0, len(roster))
		var transitions []dto.TransitionItem
		graduatingNextMonth := 0

		for _, pc := range roster {
			monthsLeft := room.MaxAgeMonths - pc.ageMonths
			soon := monthsLeft <= graduatingSoonMonths
			nextMonth := monthsLeft <= graduatingNextMonthMonths
			if nextMonth {
				graduatingNextMonth++
			}

			enrolledList = append(enrolledList, dto.EnrolledChild{
				ID:                  pc.child.ID,
				Name:                pc.child.Name,
				AgeMonths:           pc.ageMonths,
				MonthsToGraduation:  monthsLeft,
				GraduatingSoon:      soon,
				GraduatingNextMonth: nextMonth,
			})

			if soon {
				item := dto.TransitionItem{
					ChildID:            pc.child.ID,
					ChildName:          pc.child.Name,
					MonthsToGraduation: monthsLeft,
				}
				if next != nil {
					nextID := next.ID
					item.NextClassroomID = &nextID
					item.NextClassroomName = next.Name
				}
				transitions = append(transitions, item)
			}
		}

		enrolled := len(roster)
		totalCapacity += room.Capacity
		totalEnrolled += enrolled

		occupancy := 0.0
		if room.Capacity > 0 {
			occupancy = float64(enrolled) / float64(room.Capacity)
		}

		result = append(result, dto.ClassroomForecast{
			ID:                  room.ID,
			Name:                room.Name,
			Color:               room.Color,
			MinAgeMonths:        room.MinAgeMonths,
			MaxAgeMonths:        room.MaxAgeMonths,
			Capacity:            room.Capacity,
			Ratio:               room.Ratio,
			Enrolled:            enrolled,
			OccupancyRatio:      occupancy,
			GraduatingNextMonth: graduatingNextMonth,
			Alert:               buildAlert(room.Name, enrolled, room.Capacity),
			Roster:              enrolledList,
			Transitions:         transitions,
			Trend:               buildTrend(sorted, children, idx, target),
		})
	}

	// 3. 全园汇总
	occupancyPercent := 0
	if totalCapacity > 0 {
		occupancyPercent = int(math.Round(100 * float64(totalEnrolled) / float64(totalCapacity)))
	}

	if unplaced == nil {
		unplaced = []dto.UnplacedChild{}
	}

	return &dto.DashboardResponse{
		Date:       target.Format("2006-01-02"),
		Classrooms: result,
		Unplaced:   unplaced,
		Totals: dto.DashboardTotals{
			Capacity:         totalCapacity,
			Enrolled:         totalEnrolled,
			Vacancies:        totalCapacity - totalEnrolled,
			OccupancyPercent: occupancyPercent,
		},
	}
}
