package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bneller/littlesteps2/internal/repository"
)

func setupForecastService() (ForecastService, *mockClassroomRepo, *mockChildRepo) {
	classroomMock := newMockClassroomRepo()
	childMock := newMockChildRepo()
	repo := &repository.Repository{
		Classroom: classroomMock,
		Child:     childMock,
		AdminUser: newMockAdminUserRepo(),
	}
	return NewForecastService(repo, zap.NewNop()), classroomMock, childMock
}

func TestForecastService_Dashboard(t *testing.T) {
	svc, classroomMock, childMock := setupForecastService()
	ctx := context.Background()
	target := date(2026, time.June, 15)

	for _, room := range testClassrooms() {
		r := room
		if err := classroomMock.Create(ctx, &r); err != nil {
			t.Fatalf("写入班级失败: %v", err)
		}
	}
	// 乳儿班 [0,12)：月龄 11 的幼儿即将升班
	child := childBornMonthsAgo(0, "小明", 11, target)
	if err := childMock.Create(ctx, &child); err != nil {
		t.Fatalf("写入幼儿失败: %v", err)
	}

	result, err := svc.Dashboard(ctx, target)
	if err != nil {
		t.Fatalf("生成看板失败: %v", err)
	}

	if result.Date != "2026-06-15" {
		t.Errorf("看板日期应为 2026-06-15，实际 %s", result.Date)
	}
	if len(result.Classrooms) != 3 {
		t.Fatalf("期望 3 个班级视图，实际 %d", len(result.Classrooms))
	}

	infants := result.Classrooms[0]
	if infants.Enrolled != 1 {
		t.Errorf("乳儿班在读应为 1，实际 %d", infants.Enrolled)
	}
	if infants.GraduatingNextMonth != 1 {
		t.Errorf("乳儿班近一月升班应为 1，实际 %d", infants.GraduatingNextMonth)
	}
	if len(infants.Trend) != 25 {
		t.Errorf("趋势序列应为 25 个点，实际 %d", len(infants.Trend))
	}

	// 1/8 = 12.5% ≤ 60% → opportunity
	if infants.Alert == nil || infants.Alert.Level != AlertLevelOpportunity {
		t.Errorf("乳儿班应为 opportunity 预警，实际 %+v", infants.Alert)
	}

	if result.Totals.Capacity != 30 || result.Totals.Enrolled != 1 || result.Totals.Vacancies != 29 {
		t.Errorf("合计不符: %+v", result.Totals)
	}
	// round(100 × 1/30) = 3
	if result.Totals.OccupancyPercent != 3 {
		t.Errorf("总占用率应为 3，实际 %d", result.Totals.OccupancyPercent)
	}
}

func TestForecastService_Dashboard_Empty(t *testing.T) {
	svc, _, _ := setupForecastService()

	result, err := svc.Dashboard(context.Background(), date(2026, time.June, 15))
	if err != nil {
		t.Fatalf("空数据生成看板失败: %v", err)
	}
	if len(result.Classrooms) != 0 || len(result.Unplaced) != 0 {
		t.Errorf("空数据应得到空看板: %+v", result)
	}
}
