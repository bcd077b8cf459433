package report

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"go-dailyreport/internal/record"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rpt *Report) error
	FindAll(ctx context.Context) ([]Report, error)
	FindByEmployeeCode(ctx context.Context, code string) ([]Report, error)
	FindByID(ctx context.Context, id uint64) (*Report, error)
	ExistsForDate(ctx context.Context, code string, date time.Time, excludeID uint64) (bool, error)
	Update(ctx context.Context, rpt *Report) error
	OwnerExists(ctx context.Context, code string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, rpt *Report) error {
	return r.db.WithContext(ctx).Create(rpt).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Report, error) {
	var reports []Report
	err := r.db.WithContext(ctx).
		Scopes(record.Active()).
		Preload("Employee").
		Order("report_date DESC").
		Find(&reports).Error
	return reports, err
}

func (r *repository) FindByEmployeeCode(ctx context.Context, code string) ([]Report, error) {
	var reports []Report
	err := r.db.WithContext(ctx).
		Scopes(record.Active()).
		Preload("Employee").
		Where("employee_code = ?", code).
		Order("report_date DESC").
		Find(&reports).Error
	return reports, err
}

func (r *repository) FindByID(ctx context.Context, id uint64) (*Report, error) {
	var rpt Report
	err := r.db.WithContext(ctx).
		Scopes(record.Active()).
		Preload("Employee").
		First(&rpt, "id = ?", id).Error
	return &rpt, err
}

// ExistsForDate reports whether the employee already has a non-deleted
// report on the given date. excludeID carries the report being edited
// so keeping its own date is not flagged; zero means no exclusion.
func (r *repository) ExistsForDate(ctx context.Context, code string, date time.Time, excludeID uint64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&Report{}).
		Scopes(record.Active()).
		Where("employee_code = ?", code).
		Where("report_date = ?", date.Format("2006-01-02"))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, rpt *Report) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(rpt).Error
}

func (r *repository) OwnerExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("code = ?", code).
		Where("status = ?", record.StatusActive).
		Count(&count).Error
	return count > 0, err
}
