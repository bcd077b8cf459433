package report

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-dailyreport/internal/middleware"
	reporterrors "go-dailyreport/internal/report/errors"
	"go-dailyreport/internal/role"
	"go-dailyreport/internal/shared/apperror"
	"go-dailyreport/internal/shared/fielderr"
	"go-dailyreport/internal/shared/view"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service Service
	names   func(c *gin.Context) string
	logger  *zap.Logger
}

// NewHandler takes the display-name lookup as a function so the report
// package does not import the employee package.
func NewHandler(service Service, names func(c *gin.Context) string, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	if names == nil {
		names = func(c *gin.Context) string {
			return c.GetString(middleware.ContextEmployeeCode)
		}
	}
	return &Handler{service: service, names: names, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	view.ErrorPage(c, httpErr.Status, httpErr.Message)
}

func reportID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *Handler) ShowList(c *gin.Context) {
	code := c.GetString(middleware.ContextEmployeeCode)
	r, err := role.Parse(c.GetString(middleware.ContextRole))
	if err != nil {
		view.ErrorPage(c, http.StatusForbidden, apperror.ErrPermissionDenied.Message)
		return
	}
	h.logger.Debug("http list reports", zap.String("code", code), zap.String("role", string(r)))

	resp, err := h.service.FindReportsByRole(c.Request.Context(), code, r)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	view.Render(c, http.StatusOK, "reports/list", gin.H{
		"UserName": h.names(c),
		"Reports":  resp,
	})
}

func (h *Handler) ShowDetail(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		view.Redirect(c, "/reports")
		return
	}
	h.logger.Debug("http report detail", zap.Uint64("report_id", id))

	resp, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, reporterrors.ErrReportNotFound) {
			view.Redirect(c, "/reports")
			return
		}
		h.writeServiceError(c, err)
		return
	}

	view.Render(c, http.StatusOK, "reports/detail", gin.H{
		"UserName": h.names(c),
		"Report":   resp,
	})
}

func (h *Handler) ShowAdd(c *gin.Context) {
	view.Render(c, http.StatusOK, "reports/new", gin.H{
		"UserName": h.names(c),
		"Form":     CreateReportForm{ReportDate: time.Now().Format(dateLayout)},
		"Errors":   fielderr.Errors{},
	})
}

// Add validates in a fixed order: title and content from the binding,
// then the date, where an already-registered date takes precedence over
// a blank-date message. Any error re-renders the form with the entered
// values and nothing is persisted.
func (h *Handler) Add(c *gin.Context) {
	code := c.GetString(middleware.ContextEmployeeCode)
	h.logger.Debug("http create report", zap.String("code", code))

	var form CreateReportForm
	errs := fielderr.Errors{}
	if err := c.ShouldBind(&form); err != nil {
		errs = fielderr.FromValidator(err)
	}

	date, dateErr := time.Parse(dateLayout, form.ReportDate)
	if dateErr != nil {
		errs.Set("report_date", fielderr.Blank)
	} else {
		taken, err := h.service.ExistsForDate(c.Request.Context(), code, date, 0)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		if taken {
			errs.Set("report_date", fielderr.DuplicateDate)
		}
	}

	renderForm := func() {
		view.Render(c, http.StatusOK, "reports/new", gin.H{
			"UserName": h.names(c),
			"Form":     form,
			"Errors":   errs,
		})
	}

	if errs.Any() {
		renderForm()
		return
	}

	_, err := h.service.Create(c.Request.Context(), CreateReportRequest{
		EmployeeCode: code,
		ReportDate:   date,
		Title:        form.Title,
		Content:      form.Content,
	})
	if err != nil {
		if errors.Is(err, reporterrors.ErrDuplicateReportDate) {
			errs.Set("report_date", fielderr.DuplicateDate)
			renderForm()
			return
		}
		h.writeServiceError(c, err)
		return
	}

	view.Redirect(c, "/reports")
}

func (h *Handler) ShowUpdate(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		view.Redirect(c, "/reports")
		return
	}
	h.logger.Debug("http report update form", zap.Uint64("report_id", id))

	resp, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, reporterrors.ErrReportNotFound) {
			view.Redirect(c, "/reports")
			return
		}
		h.writeServiceError(c, err)
		return
	}

	view.Render(c, http.StatusOK, "reports/update", gin.H{
		"UserName": h.names(c),
		"ID":       resp.ID,
		"Form": UpdateReportForm{
			ReportDate: resp.ReportDate,
			Title:      resp.Title,
			Content:    resp.Content,
		},
		"Errors": fielderr.Errors{},
	})
}

// Update runs the duplicate check against the stored report's owner,
// looked up before validation, so the form payload cannot choose whose
// dates are checked.
func (h *Handler) Update(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		view.Redirect(c, "/reports")
		return
	}
	h.logger.Debug("http update report", zap.Uint64("report_id", id))

	stored, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, reporterrors.ErrReportNotFound) {
			view.Redirect(c, "/reports")
			return
		}
		h.writeServiceError(c, err)
		return
	}

	var form UpdateReportForm
	errs := fielderr.Errors{}
	if err := c.ShouldBind(&form); err != nil {
		errs = fielderr.FromValidator(err)
	}

	date, dateErr := time.Parse(dateLayout, form.ReportDate)
	if dateErr != nil {
		errs.Set("report_date", fielderr.Blank)
	} else {
		taken, err := h.service.ExistsForDate(c.Request.Context(), stored.EmployeeCode, date, id)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		if taken {
			errs.Set("report_date", fielderr.DuplicateDate)
		}
	}

	renderForm := func() {
		view.Render(c, http.StatusOK, "reports/update", gin.H{
			"UserName": h.names(c),
			"ID":       id,
			"Form":     form,
			"Errors":   errs,
		})
	}

	if errs.Any() {
		renderForm()
		return
	}

	_, err = h.service.Update(c.Request.Context(), id, UpdateReportRequest{
		ReportDate: date,
		Title:      form.Title,
		Content:    form.Content,
	})
	if err != nil {
		if errors.Is(err, reporterrors.ErrDuplicateReportDate) {
			errs.Set("report_date", fielderr.DuplicateDate)
			renderForm()
			return
		}
		if errors.Is(err, reporterrors.ErrReportNotFound) {
			view.Redirect(c, "/reports")
			return
		}
		h.writeServiceError(c, err)
		return
	}

	view.Redirect(c, "/reports")
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		view.Redirect(c, "/reports")
		return
	}
	h.logger.Debug("http delete report", zap.Uint64("report_id", id))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	view.Redirect(c, "/reports")
}
