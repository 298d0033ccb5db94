package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/bneller/littlesteps2/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoClassrooms = errors.New("暂无班级，无法导出")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 入园概况导出为 Excel (.xlsx)：逐班级容量/在读/空位/占用率 + 全园合计
//   - 升班日历导出为 iCalendar (.ics)：为 3 个月内升班的幼儿生成全天事件，
//     事件日期为其月龄到达班级上界的当天（出生日期 + maxAgeMonths 个月）
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportOccupancy 导出目标日期的入园概况 Excel
	ExportOccupancy(ctx context.Context, target time.Time) (*bytes.Buffer, string, error)
	// ExportTransitions 导出目标日期起的升班日历 ICS
	ExportTransitions(ctx context.Context, target time.Time) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo     *repository.Repository
	forecast ForecastService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, forecast ForecastService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, forecast: forecast, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ExportOccupancy — 入园概况 Excel
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportOccupancy(ctx context.Context, target time.Time) (*bytes.Buffer, string, error) {
	dashboard, err := s.forecast.Dashboard(ctx, target)
	if err != nil {
		return nil, "", err
	}
	if len(dashboard.Classrooms) == 0 {
		return nil, "", ErrExportNoClassrooms
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "入园概况"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"班级", "年龄段（月）", "容量", "在读", "空位", "占用率", "近一月升班", "预警"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, room := range dashboard.Classrooms {
		alertText := ""
		if room.Alert != nil {
			alertText = room.Alert.Message
		}
		values := []interface{}{
			room.Name,
			fmt.Sprintf("[%d, %d)", room.MinAgeMonths, room.MaxAgeMonths),
			room.Capacity,
			room.Enrolled,
			room.Capacity - room.Enrolled,
			fmt.Sprintf("%.0f%%", room.OccupancyRatio*100),
			room.GraduatingNextMonth,
			alertText,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	// 合计行
	totals := dashboard.Totals
	totalValues := []interface{}{
		"合计", "",
		totals.Capacity,
		totals.Enrolled,
		totals.Vacancies,
		fmt.Sprintf("%d%%", totals.OccupancyPercent),
		"", "",
	}
	for i, v := range totalValues {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("occupancy_%s.xlsx", dashboard.Date)
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// ExportTransitions — 升班日历 ICS
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportTransitions(ctx context.Context, target time.Time) (*bytes.Buffer, string, error) {
	classrooms, err := s.repo.Classroom.List(ctx)
	if err != nil {
		s.logger.Error("查询班级列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(classrooms) == 0 {
		return nil, "", ErrExportNoClassrooms
	}

	children, err := s.repo.Child.List(ctx)
	if err != nil {
		s.logger.Error("查询幼儿列表失败", zap.Error(err))
		return nil, "", err
	}

	dashboard := BuildDashboard(classrooms, children, target)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//littlesteps//dashboard//CN")

	birthDates := make(map[uint]time.Time, len(children))
	for i := range children {
		birthDates[children[i].ID] = children[i].BirthDate
	}

	now := time.Now()
	for _, room := range dashboard.Classrooms {
		for _, tr := range room.Transitions {
			birth, ok := birthDates[tr.ChildID]
			if !ok {
				continue
			}
			// 升班日：月龄到达班级上界的那一天（月末出生收敛到目标月月末）
			moveDate := shiftMonths(birth, room.MaxAgeMonths)

			uid := fmt.Sprintf("transition-%d-%d@littlesteps", tr.ChildID, room.ID)
			event := cal.AddEvent(uid)
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetAllDayStartAt(moveDate)
			event.SetAllDayEndAt(moveDate.AddDate(0, 0, 1))

			if tr.NextClassroomName != "" {
				event.SetSummary(fmt.Sprintf("%s 升班：%s → %s", tr.ChildName, room.Name, tr.NextClassroomName))
			} else {
				event.SetSummary(fmt.Sprintf("%s 从 %s 毕业", tr.ChildName, room.Name))
			}
			event.SetDescription(fmt.Sprintf("距离升班约 %d 个月", tr.MonthsToGraduation))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("transitions_%s.ics", dashboard.Date)
	return buf, filename, nil
}
