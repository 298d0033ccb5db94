package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bneller/littlesteps2/internal/model"
	"github.com/bneller/littlesteps2/internal/repository"
)

func setupExportService(t *testing.T) (ExportService, *mockClassroomRepo, *mockChildRepo) {
	t.Helper()
	classroomMock := newMockClassroomRepo()
	childMock := newMockChildRepo()
	repo := &repository.Repository{
		Classroom: classroomMock,
		Child:     childMock,
		AdminUser: newMockAdminUserRepo(),
	}
	forecast := NewForecastService(repo, zap.NewNop())
	return NewExportService(repo, forecast, zap.NewNop()), classroomMock, childMock
}

func seedExportData(t *testing.T, classroomMock *mockClassroomRepo, childMock *mockChildRepo, target time.Time) {
	t.Helper()
	ctx := context.Background()
	for _, room := range testClassrooms() {
		r := room
		if err := classroomMock.Create(ctx, &r); err != nil {
			t.Fatalf("写入班级失败: %v", err)
		}
	}
	// 月龄 11：3 个月内升班，进入升班日历
	child := childBornMonthsAgo(0, "小明", 11, target)
	if err := childMock.Create(ctx, &child); err != nil {
		t.Fatalf("写入幼儿失败: %v", err)
	}
}

func TestExportService_ExportOccupancy(t *testing.T) {
	svc, classroomMock, childMock := setupExportService(t)
	target := date(2026, time.June, 15)
	seedExportData(t, classroomMock, childMock, target)

	buf, filename, err := svc.ExportOccupancy(context.Background(), target)
	if err != nil {
		t.Fatalf("导出入园概况失败: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出文件不应为空")
	}
	if filename != "occupancy_2026-06-15.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}
	// xlsx 是 zip 容器，以 PK 开头
	if data := buf.Bytes(); len(data) < 2 || data[0] != 'P' || data[1] != 'K' {
		t.Error("导出内容应为 xlsx 格式")
	}
}

func TestExportService_ExportOccupancy_NoClassrooms(t *testing.T) {
	svc, _, _ := setupExportService(t)

	_, _, err := svc.ExportOccupancy(context.Background(), date(2026, time.June, 15))
	if !errors.Is(err, ErrExportNoClassrooms) {
		t.Errorf("无班级应返回 ErrExportNoClassrooms，实际 %v", err)
	}
}

func TestExportService_ExportTransitions(t *testing.T) {
	svc, classroomMock, childMock := setupExportService(t)
	target := date(2026, time.June, 15)
	seedExportData(t, classroomMock, childMock, target)

	buf, filename, err := svc.ExportTransitions(context.Background(), target)
	if err != nil {
		t.Fatalf("导出升班日历失败: %v", err)
	}
	if filename != "transitions_2026-06-15.ics" {
		t.Errorf("文件名不符: %s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("导出内容应为 iCalendar 格式")
	}
	if !strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("应包含升班事件")
	}
	if !strings.Contains(content, "transition-1-1@littlesteps") {
		t.Error("事件 UID 应按幼儿与班级生成")
	}
}

func TestExportService_ExportTransitions_MonthEndBirthDate(t *testing.T) {
	svc, classroomMock, childMock := setupExportService(t)
	ctx := context.Background()

	room := model.Classroom{Name: "乳儿班", Color: "pink", MinAgeMonths: 0, MaxAgeMonths: 6, Capacity: 8, Ratio: "1:3"}
	if err := classroomMock.Create(ctx, &room); err != nil {
		t.Fatalf("写入班级失败: %v", err)
	}
	// 月末出生：12月31日 + 6 个月应收敛到 6 月 30 日，而非进位到 7 月
	child := model.Child{Name: "小满", BirthDate: date(2025, time.December, 31)}
	if err := childMock.Create(ctx, &child); err != nil {
		t.Fatalf("写入幼儿失败: %v", err)
	}

	buf, _, err := svc.ExportTransitions(ctx, date(2026, time.May, 15))
	if err != nil {
		t.Fatalf("导出升班日历失败: %v", err)
	}

	content := buf.String()
	if !strings.Contains(content, "DTSTART;VALUE=DATE:20260630") {
		t.Errorf("升班日应为 2026-06-30，导出内容: %s", content)
	}
	if strings.Contains(content, "DTSTART;VALUE=DATE:20260701") {
		t.Error("升班日不应进位到 7 月")
	}
}

func TestExportService_ExportTransitions_NoClassrooms(t *testing.T) {
	svc, _, _ := setupExportService(t)

	_, _, err := svc.ExportTransitions(context.Background(), date(2026, time.June, 15))
	if !errors.Is(err, ErrExportNoClassrooms) {
		t.Errorf("无班级应返回 ErrExportNoClassrooms，实际 %v", err)
	}
}
