package employee

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	employeeerrors "go-dailyreport/internal/employee/errors"
	"go-dailyreport/internal/middleware"
	"go-dailyreport/internal/role"
	"go-dailyreport/internal/shared/apperror"
	"go-dailyreport/internal/shared/fielderr"
	"go-dailyreport/internal/shared/view"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	view.ErrorPage(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) userName(c *gin.Context) string {
	code := c.GetString(middleware.ContextEmployeeCode)
	name, err := h.service.DisplayName(c.Request.Context(), code)
	if err != nil {
		h.logger.Warn("resolve display name failed", zap.String("code", code), zap.Error(err))
		return code
	}
	return name
}

func (h *Handler) ShowList(c *gin.Context) {
	h.logger.Debug("http list employees")

	resp, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	view.Render(c, http.StatusOK, "employees/list", gin.H{
		"UserName":  h.userName(c),
		"Employees": resp,
	})
}

func (h *Handler) ShowDetail(c *gin.Context) {
	code := c.Param("code")
	h.logger.Debug("http employee detail", zap.String("code", code))

	resp, err := h.service.FindByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			view.Redirect(c, "/employees")
			return
		}
		h.writeServiceError(c, err)
		return
	}

	view.Render(c, http.StatusOK, "employees/detail", gin.H{
		"UserName": h.userName(c),
		"Employee": resp,
	})
}

func (h *Handler) ShowAdd(c *gin.Context) {
	view.Render(c, http.StatusOK, "employees/new", gin.H{
		"UserName": h.userName(c),
		"Form":     CreateEmployeeForm{},
		"Errors":   fielderr.Errors{},
	})
}

func (h *Handler) Add(c *gin.Context) {
	h.logger.Debug("http create employee")

	var form CreateEmployeeForm
	errs := fielderr.Errors{}
	if err := c.ShouldBind(&form); err != nil {
		errs = fielderr.FromValidator(err)
	}

	if form.Password == "" {
		errs.Set("password", fielderr.Blank)
	} else if msg := ValidatePassword(form.Password); msg != "" {
		errs.SetMessage("password", msg)
	}

	formRole, roleErr := role.Parse(form.Role)
	if form.Role != "" && roleErr != nil {
		errs.Set("role", fielderr.Blank)
	}

	renderForm := func(status int) {
		view.Render(c, status, "employees/new", gin.H{
			"UserName": h.userName(c),
			"Form":     form,
			"Errors":   errs,
		})
	}

	if errs.Any() {
		renderForm(http.StatusOK)
		return
	}

	_, err := h.service.Create(c.Request.Context(), CreateEmployeeRequest{
		Code:     form.Code,
		Name:     form.Name,
		Password: form.Password,
		Role:     formRole,
	})
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeCodeAlreadyExists) {
			errs.Set("code", fielderr.DuplicateCode)
			renderForm(http.StatusOK)
			return
		}
		h.writeServiceError(c, err)
		return
	}

	view.Redirect(c, "/employees")
}

func (h *Handler) ShowUpdate(c *gin.Context) {
	code := c.Param("code")
	h.logger.Debug("http employee update form", zap.String("code", code))

	resp, err := h.service.FindByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			view.Redirect(c, "/employees")
			return
		}
		h.writeServiceError(c, err)
		return
	}

	view.Render(c, http.StatusOK, "employees/update", gin.H{
		"UserName": h.userName(c),
		"Code":     resp.Code,
		"Form": UpdateEmployeeForm{
			Name: resp.Name,
			Role: resp.Role,
		},
		"Errors": fielderr.Errors{},
	})
}

func (h *Handler) Update(c *gin.Context) {
	code := c.Param("code")
	h.logger.Debug("http update employee", zap.String("code", code))

	var form UpdateEmployeeForm
	errs := fielderr.Errors{}

	renderForm := func() {
		view.Render(c, http.StatusOK, "employees/update", gin.H{
			"UserName": h.userName(c),
			"Code":     code,
			"Form":     form,
			"Errors":   errs,
		})
	}

	// Binding errors come back on their own; the password rules are
	// only evaluated once the bound fields are well-formed.
	if err := c.ShouldBind(&form); err != nil {
		errs = fielderr.FromValidator(err)
	}
	if errs.Any() {
		renderForm()
		return
	}

	// A blank password keeps whatever the record ends up holding; only
	// a non-blank value is checked against the password rules.
	if msg := ValidatePassword(form.Password); msg != "" {
		errs.SetMessage("password", msg)
	}

	formRole, roleErr := role.Parse(form.Role)
	if form.Role != "" && roleErr != nil {
		errs.Set("role", fielderr.Blank)
	}

	if errs.Any() {
		renderForm()
		return
	}

	_, err := h.service.Update(c.Request.Context(), code, UpdateEmployeeRequest{
		Name:     form.Name,
		Password: form.Password,
		Role:     formRole,
	})
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			view.Redirect(c, "/employees")
			return
		}
		h.writeServiceError(c, err)
		return
	}

	view.Redirect(c, "/employees")
}

func (h *Handler) Delete(c *gin.Context) {
	code := c.Param("code")
	h.logger.Debug("http delete employee", zap.String("code", code))

	actor, err := role.Parse(c.GetString(middleware.ContextRole))
	if err != nil {
		view.ErrorPage(c, http.StatusForbidden, apperror.ErrPermissionDenied.Message)
		return
	}

	if err := h.service.Delete(c.Request.Context(), code, actor); err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			view.Redirect(c, "/employees")
			return
		}
		h.writeServiceError(c, err)
		return
	}

	view.Redirect(c, "/employees")
}
