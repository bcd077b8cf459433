package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"

	employeeerrors "go-dailyreport/internal/employee/errors"
	"go-dailyreport/internal/events"
	"go-dailyreport/internal/messaging/kafka"
	"go-dailyreport/internal/record"
	"go-dailyreport/internal/role"
	"go-dailyreport/internal/shared/contextutil"
)

const EmployeeNameKeyPrefix = "employees:name:"

func GetEmployeeNameKey(code string) string {
	return EmployeeNameKeyPrefix + code
}

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	FindAll(ctx context.Context) ([]EmployeeResponse, error)
	FindByCode(ctx context.Context, code string) (EmployeeResponse, error)
	Update(ctx context.Context, code string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, code string, actor role.Role) error
	DisplayName(ctx context.Context, code string) (string, error)
	EnsureSeedAdmin(ctx context.Context, code, name, password string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l}
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)
	log.Debug("create employee requested", zap.String("code", req.Code))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("create employee hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByCode(ctx, req.Code); err == nil {
		log.Warn("create employee code already taken", zap.String("code", req.Code))
		return EmployeeResponse{}, employeeerrors.ErrEmployeeCodeAlreadyExists
	}

	empl := &Employee{
		Code:     req.Code,
		Name:     req.Name,
		Password: string(hashed),
		Role:     req.Role,
		Status:   record.StatusActive,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	event := events.EmployeeCreatedEvent{
		EventType:    "employee_created",
		RequestID:    rid,
		EmployeeCode: empl.Code,
		EmployeeName: empl.Name,
		Role:         string(empl.Role),
		OccurredAt:   time.Now().UTC(),
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			log.Error("marshal event failed", zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.Code,
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			log.Error("create employee outbox persist failed",
				zap.String("code", empl.Code),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateNameCache(ctx, empl.Code)

	if s.outbox != nil {
		log.Info("create employee outbox queued",
			zap.String("code", empl.Code),
		)
	}
	log.Info("create employee success", zap.String("code", empl.Code))

	return mapToResponse(*empl), nil
}

func (s *service) FindAll(ctx context.Context) ([]EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("find all employees requested")
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error("find all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(employees), nil
}

func (s *service) FindByCode(ctx context.Context, code string) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("find employee by code requested", zap.String("code", code))
	empl, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		log.Error("find employee by code failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

// DisplayName resolves an employee's name for screen headers. Names
// change rarely, so results are cached in Redis with singleflight
// collapsing concurrent misses.
func (s *service) DisplayName(ctx context.Context, code string) (string, error) {
	cacheKey := GetEmployeeNameKey(code)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empl, err := s.repo.FindByCode(ctx, code)
		if err != nil {
			return "", mapRepositoryError(err)
		}

		if s.rdb != nil {
			s.rdb.Set(ctx, cacheKey, empl.Name, 1*time.Hour)
		}

		return empl.Name, nil
	})

	if err != nil {
		return "", err
	}

	return v.(string), nil
}

// Update keeps whatever password value the caller hands over: a blank
// password means the stored hash is overwritten with an empty string,
// matching the established screen behavior. The handler is responsible
// for validating non-blank passwords before calling this.
func (s *service) Update(
	ctx context.Context,
	code string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update employee requested", zap.String("code", code))

	password := req.Password
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("update employee hash password failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		password = string(hashed)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByCode(ctx, code)
	if err != nil {
		log.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Name = req.Name
	empl.Password = password
	empl.Role = req.Role

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateNameCache(ctx, code)

	log.Info("update employee success", zap.String("code", code))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, code string, actor role.Role) error {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("delete employee requested",
		zap.String("code", code),
		zap.String("actor_role", string(actor)),
	)

	if !actor.CanManageEmployees() {
		log.Warn("delete employee denied", zap.String("actor_role", string(actor)))
		return employeeerrors.ErrPermissionDenied
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByCode(ctx, code)
	if err != nil {
		log.Error("delete employee fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	empl.Status = record.StatusDeleted
	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("delete employee persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateNameCache(ctx, code)

	log.Info("delete employee success", zap.String("code", code))
	return nil
}

// EnsureSeedAdmin inserts the bootstrap administrator when the
// employee table holds no active records, so a fresh install has a
// login to start from.
func (s *service) EnsureSeedAdmin(ctx context.Context, code, name, password string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("seed admin count failed", zap.Error(err))
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	empl := &Employee{
		Code:     code,
		Name:     name,
		Password: string(hashed),
		Role:     role.Admin,
		Status:   record.StatusActive,
	}
	if err := s.repo.Create(ctx, empl); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("seed admin created", zap.String("code", code))
	return nil
}

func (s *service) invalidateNameCache(ctx context.Context, code string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeNameKey(code)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate employee name cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		Code:      empl.Code,
		Name:      empl.Name,
		Role:      string(empl.Role),
		RoleLabel: empl.Role.Label(),
		CreatedAt: empl.CreatedAt.Format("2006-01-02 15:04"),
		UpdatedAt: empl.UpdatedAt.Format("2006-01-02 15:04"),
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
