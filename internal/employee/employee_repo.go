package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"go-dailyreport/internal/record"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByCode(ctx context.Context, code string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(record.Active()).
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(record.Active()).
		First(&e, "code = ?", code).Error
	return &e, err
}

// Update persists all mutable fields, including the status flip used
// for logical deletion. There is no hard delete path.
func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(record.Active()).
		Count(&count).Error
	return count, err
}
