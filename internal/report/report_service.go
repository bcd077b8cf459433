package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-dailyreport/internal/events"
	"go-dailyreport/internal/messaging/kafka"
	"go-dailyreport/internal/record"
	reporterrors "go-dailyreport/internal/report/errors"
	"go-dailyreport/internal/role"
	"go-dailyreport/internal/shared/contextutil"
)

type Service interface {
	FindReportsByRole(ctx context.Context, code string, r role.Role) ([]ReportResponse, error)
	FindByID(ctx context.Context, id uint64) (ReportResponse, error)
	ExistsForDate(ctx context.Context, code string, date time.Time, excludeID uint64) (bool, error)
	Create(ctx context.Context, req CreateReportRequest) (ReportResponse, error)
	Update(ctx context.Context, id uint64, req UpdateReportRequest) (ReportResponse, error)
	Delete(ctx context.Context, id uint64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		logger: l}
}

// FindReportsByRole dispatches on the role's visibility rule: admins
// see every employee's reports, everyone else only their own.
func (s *service) FindReportsByRole(ctx context.Context, code string, r role.Role) ([]ReportResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("find reports by role requested",
		zap.String("code", code),
		zap.String("role", string(r)),
	)

	var (
		reports []Report
		err     error
	)
	if r.CanViewAllReports() {
		reports, err = s.repo.FindAll(ctx)
	} else {
		reports, err = s.repo.FindByEmployeeCode(ctx, code)
	}
	if err != nil {
		log.Error("find reports by role failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(reports), nil
}

func (s *service) FindByID(ctx context.Context, id uint64) (ReportResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("find report by id requested", zap.Uint64("report_id", id))
	rpt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error("find report by id failed", zap.Error(err))
		return ReportResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*rpt), nil
}

func (s *service) ExistsForDate(ctx context.Context, code string, date time.Time, excludeID uint64) (bool, error) {
	return s.repo.ExistsForDate(ctx, code, date, excludeID)
}

func (s *service) Create(
	ctx context.Context,
	req CreateReportRequest,
) (ReportResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)
	log.Debug("create report requested",
		zap.String("employee_code", req.EmployeeCode),
		zap.String("report_date", req.ReportDate.Format("2006-01-02")),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create report begin tx failed", zap.Error(err))
		return ReportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ownerOK, err := qtx.OwnerExists(ctx, req.EmployeeCode)
	if err != nil {
		log.Error("create report owner lookup failed", zap.Error(err))
		return ReportResponse{}, err
	}
	if !ownerOK {
		log.Warn("create report owner not found",
			zap.String("employee_code", req.EmployeeCode),
		)
		return ReportResponse{}, reporterrors.ErrReportOwnerNotFound
	}

	taken, err := qtx.ExistsForDate(ctx, req.EmployeeCode, req.ReportDate, 0)
	if err != nil {
		log.Error("create report duplicate check failed", zap.Error(err))
		return ReportResponse{}, err
	}
	if taken {
		log.Warn("create report date already taken",
			zap.String("employee_code", req.EmployeeCode),
			zap.String("report_date", req.ReportDate.Format("2006-01-02")),
		)
		return ReportResponse{}, reporterrors.ErrDuplicateReportDate
	}

	rpt := &Report{
		ReportDate:   req.ReportDate,
		Title:        req.Title,
		Content:      req.Content,
		EmployeeCode: req.EmployeeCode,
		Status:       record.StatusActive,
	}

	if err := qtx.Create(ctx, rpt); err != nil {
		log.Error("create report persist failed", zap.Error(err))
		return ReportResponse{}, mapRepositoryError(err)
	}

	event := events.ReportSubmittedEvent{
		EventType:    "report_submitted",
		RequestID:    rid,
		ReportID:     rpt.ID,
		EmployeeCode: rpt.EmployeeCode,
		ReportDate:   rpt.ReportDate.Format("2006-01-02"),
		Title:        rpt.Title,
		OccurredAt:   time.Now().UTC(),
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			log.Error("marshal event failed", zap.Error(err))
			return ReportResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "report",
			AggregateID:   rpt.EmployeeCode,
			EventType:     event.EventType,
			Topic:         events.ReportSubmittedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			log.Error("create report outbox persist failed",
				zap.Uint64("report_id", rpt.ID),
				zap.Error(err),
			)
			return ReportResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return ReportResponse{}, err
	}

	if s.outbox != nil {
		log.Info("create report outbox queued", zap.Uint64("report_id", rpt.ID))
	}
	log.Info("create report success", zap.Uint64("report_id", rpt.ID))

	return mapToResponse(*rpt), nil
}

// Update rewrites date, title and content only. The duplicate-date
// check runs against the report's stored owner, never a code from the
// request, so a tampered form cannot shift the check onto another
// employee. The report keeping its own date is not a duplicate.
func (s *service) Update(
	ctx context.Context,
	id uint64,
	req UpdateReportRequest,
) (ReportResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update report requested", zap.Uint64("report_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update report begin tx failed", zap.Error(err))
		return ReportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rpt, err := qtx.FindByID(ctx, id)
	if err != nil {
		log.Error("update report fetch existing failed", zap.Error(err))
		return ReportResponse{}, mapRepositoryError(err)
	}

	taken, err := qtx.ExistsForDate(ctx, rpt.EmployeeCode, req.ReportDate, rpt.ID)
	if err != nil {
		log.Error("update report duplicate check failed", zap.Error(err))
		return ReportResponse{}, err
	}
	if taken {
		log.Warn("update report date already taken",
			zap.String("employee_code", rpt.EmployeeCode),
			zap.String("report_date", req.ReportDate.Format("2006-01-02")),
		)
		return ReportResponse{}, reporterrors.ErrDuplicateReportDate
	}

	rpt.ReportDate = req.ReportDate
	rpt.Title = req.Title
	rpt.Content = req.Content

	if err := qtx.Update(ctx, rpt); err != nil {
		log.Error("update report persist failed", zap.Error(err))
		return ReportResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update report commit failed", zap.Error(err))
		return ReportResponse{}, err
	}

	log.Info("update report success", zap.Uint64("report_id", id))

	return mapToResponse(*rpt), nil
}

// Delete flips the status; a missing or already deleted report is a
// silent no-op so the list screen's delete button is idempotent.
func (s *service) Delete(ctx context.Context, id uint64) error {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("delete report requested", zap.Uint64("report_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete report begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rpt, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(mapRepositoryError(err), reporterrors.ErrReportNotFound) {
			log.Debug("delete report already gone", zap.Uint64("report_id", id))
			return nil
		}
		log.Error("delete report fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	rpt.Status = record.StatusDeleted
	if err := qtx.Update(ctx, rpt); err != nil {
		log.Error("delete report persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete report commit failed", zap.Error(err))
		return err
	}

	log.Info("delete report success", zap.Uint64("report_id", id))
	return nil
}

func mapToResponse(rpt Report) ReportResponse {
	resp := ReportResponse{
		ID:           rpt.ID,
		ReportDate:   rpt.ReportDate.Format("2006-01-02"),
		Title:        rpt.Title,
		Content:      rpt.Content,
		EmployeeCode: rpt.EmployeeCode,
		CreatedAt:    rpt.CreatedAt.Format("2006-01-02 15:04"),
		UpdatedAt:    rpt.UpdatedAt.Format("2006-01-02 15:04"),
	}
	if rpt.Employee != nil {
		resp.EmployeeName = rpt.Employee.Name
	}
	return resp
}

func mapToListResponse(reports []Report) []ReportResponse {
	res := make([]ReportResponse, len(reports))
	for i, r := range reports {
		res[i] = mapToResponse(r)
	}
	return res
}
