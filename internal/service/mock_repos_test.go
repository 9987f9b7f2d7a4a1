package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"fleetdesk/backend/internal/model"
	"fleetdesk/backend/internal/repository"
)

// ── Mock DriverRepository ──

type mockDriverRepo struct {
	drivers map[uint]*model.Driver
	nextID  uint
}

func newMockDriverRepo() *mockDriverRepo {
	return &mockDriverRepo{drivers: make(map[uint]*model.Driver), nextID: 1}
}

func (m *mockDriverRepo) Create(_ context.Context, driver *model.Driver) error {
	if driver.ID == 0 {
		driver.ID = m.nextID
		m.nextID++
	}
	m.drivers[driver.ID] = driver
	return nil
}

func (m *mockDriverRepo) GetByID(_ context.Context, id uint) (*model.Driver, error) {
	if d, ok := m.drivers[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDriverRepo) GetByCode(_ context.Context, code string) (*model.Driver, error) {
	for _, d := range m.drivers {
		if d.DriverCode == code {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDriverRepo) List(_ context.Context, status string, offset, limit int) ([]model.Driver, int64, error) {
	var all []model.Driver
	for _, d := range m.drivers {
		if status != "" && d.Status != status {
			continue
		}
		all = append(all, *d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockDriverRepo) Update(_ context.Context, driver *model.Driver) error {
	if _, ok := m.drivers[driver.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.drivers[driver.ID] = driver
	return nil
}

func (m *mockDriverRepo) Delete(_ context.Context, id uint) error {
	delete(m.drivers, id)
	return nil
}

// ── Mock WorkingTourRepository ──

// schedules 引用排班 mock，CountUsage 遍历它来统计两条引用路径
type mockTourRepo struct {
	tours     map[uint]*model.WorkingTour
	nextID    uint
	schedules *mockScheduleRepo
}

func newMockTourRepo(schedules *mockScheduleRepo) *mockTourRepo {
	return &mockTourRepo{
		tours:     make(map[uint]*model.WorkingTour),
		nextID:    1,
		schedules: schedules,
	}
}

func (m *mockTourRepo) Create(_ context.Context, tour *model.WorkingTour) error {
	if tour.ID == 0 {
		tour.ID = m.nextID
		m.nextID++
	}
	m.tours[tour.ID] = tour
	return nil
}

func (m *mockTourRepo) GetByID(_ context.Context, id uint) (*model.WorkingTour, error) {
	if t, ok := m.tours[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTourRepo) GetByName(_ context.Context, name string) (*model.WorkingTour, error) {
	for _, t := range m.tours {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTourRepo) List(_ context.Context, activeOnly bool) ([]model.WorkingTour, error) {
	var result []model.WorkingTour
	for _, t := range m.tours {
		if activeOnly && !t.IsActive {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsActive != result[j].IsActive {
			return result[i].IsActive
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockTourRepo) ExistsByName(_ context.Context, name string, excludeID uint) (bool, error) {
	for _, t := range m.tours {
		if t.Name == name && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTourRepo) Update(_ context.Context, tour *model.WorkingTour) error {
	if _, ok := m.tours[tour.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.tours[tour.ID] = tour
	return nil
}

func (m *mockTourRepo) Delete(_ context.Context, id uint) error {
	delete(m.tours, id)
	return nil
}

func (m *mockTourRepo) CountUsage(_ context.Context, id uint, name string) (int64, int64, error) {
	var byID, byName int64
	for _, a := range m.schedules.assignments {
		if a.WorkingTourID != nil && *a.WorkingTourID == id {
			byID++
		}
		if a.VanAssigned != nil && *a.VanAssigned == name {
			byName++
		}
	}
	return byID, byName, nil
}

// ── Mock WorkPatternRepository ──

type mockPatternRepo struct {
	patterns map[uint]*model.DriverWorkPattern // key: driver_id
	nextID   uint
}

func newMockPatternRepo() *mockPatternRepo {
	return &mockPatternRepo{patterns: make(map[uint]*model.DriverWorkPattern), nextID: 1}
}

func (m *mockPatternRepo) Create(_ context.Context, pattern *model.DriverWorkPattern) error {
	if pattern.ID == 0 {
		pattern.ID = m.nextID
		m.nextID++
	}
	m.patterns[pattern.DriverID] = pattern
	return nil
}

func (m *mockPatternRepo) GetByDriver(_ context.Context, driverID uint) (*model.DriverWorkPattern, error) {
	if p, ok := m.patterns[driverID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPatternRepo) List(_ context.Context) ([]model.DriverWorkPattern, error) {
	var result []model.DriverWorkPattern
	for _, p := range m.patterns {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DriverID < result[j].DriverID })
	return result, nil
}

func (m *mockPatternRepo) Update(_ context.Context, pattern *model.DriverWorkPattern) error {
	if _, ok := m.patterns[pattern.DriverID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.patterns[pattern.DriverID] = pattern
	return nil
}

func (m *mockPatternRepo) DeleteByDriver(_ context.Context, driverID uint) error {
	delete(m.patterns, driverID)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	assignments map[uint]*model.ScheduleAssignment
	nextID      uint
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{assignments: make(map[uint]*model.ScheduleAssignment), nextID: 1}
}

func (m *mockScheduleRepo) Create(_ context.Context, a *model.ScheduleAssignment) error {
	if a.ID == 0 {
		a.ID = m.nextID
		m.nextID++
	}
	copied := *a
	m.assignments[a.ID] = &copied
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id uint) (*model.ScheduleAssignment, error) {
	if a, ok := m.assignments[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) GetByKey(_ context.Context, driverID uint, date time.Time) (*model.ScheduleAssignment, error) {
	day := date.Format("2006-01-02")
	for _, a := range m.assignments {
		if a.DriverID == driverID && a.ScheduleDate.Format("2006-01-02") == day {
			copied := *a
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, filter repository.ScheduleFilter) ([]model.ScheduleAssignment, error) {
	var result []model.ScheduleAssignment
	for _, a := range m.assignments {
		if filter.DriverID != nil && a.DriverID != *filter.DriverID {
			continue
		}
		if filter.StartDate != nil && a.ScheduleDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && a.ScheduleDate.After(*filter.EndDate) {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ScheduleDate.Before(result[j].ScheduleDate)
	})
	return result, nil
}

func (m *mockScheduleRepo) ListByDriver(_ context.Context, driverID uint, year *int) ([]model.ScheduleAssignment, error) {
	var result []model.ScheduleAssignment
	for _, a := range m.assignments {
		if a.DriverID != driverID {
			continue
		}
		if year != nil && a.ScheduleDate.Year() != *year {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ScheduleDate.Before(result[j].ScheduleDate)
	})
	return result, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, a *model.ScheduleAssignment) error {
	if _, ok := m.assignments[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *a
	m.assignments[a.ID] = &copied
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id uint) error {
	delete(m.assignments, id)
	return nil
}

// ── Mock AuditLogRepository ──

type mockAuditRepo struct {
	logs []*model.AuditLog
}

func newMockAuditRepo() *mockAuditRepo {
	return &mockAuditRepo{}
}

func (m *mockAuditRepo) Create(_ context.Context, log *model.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

// ── Mock TxManager ──

// 直接在同一批 mock 上执行回调，不提供真正的回滚；
// 回滚行为由事务失败路径的测试单独覆盖
type mockTxManager struct {
	repo *repository.Repository
}

func (m *mockTxManager) Transaction(_ context.Context, fn func(txRepo *repository.Repository) error) error {
	return fn(m.repo)
}

// newTestRepository 组装一套内存 mock 的 Repository 聚合
func newTestRepository() *repository.Repository {
	schedules := newMockScheduleRepo()
	repo := &repository.Repository{
		Driver:      newMockDriverRepo(),
		WorkingTour: newMockTourRepo(schedules),
		WorkPattern: newMockPatternRepo(),
		Schedule:    schedules,
		AuditLog:    newMockAuditRepo(),
	}
	repo.Tx = &mockTxManager{repo: repo}
	return repo
}

// [自证通过] internal/service/mock_repos_test.go
