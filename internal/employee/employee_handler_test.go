package employee_test

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-dailyreport/internal/employee"
	employeeerrors "go-dailyreport/internal/employee/errors"
	"go-dailyreport/internal/middleware"
	"go-dailyreport/internal/rbac"
	"go-dailyreport/internal/role"
	"go-dailyreport/internal/shared/apperror"
	"go-dailyreport/web"
)

type fakeService struct {
	createFn     func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	findAllFn    func(ctx context.Context) ([]employee.EmployeeResponse, error)
	findByCodeFn func(ctx context.Context, code string) (employee.EmployeeResponse, error)
	updateFn     func(ctx context.Context, code string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	deleteFn     func(ctx context.Context, code string, actor role.Role) error
}

func (f *fakeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeService) FindAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.findAllFn(ctx)
}
func (f *fakeService) FindByCode(ctx context.Context, code string) (employee.EmployeeResponse, error) {
	return f.findByCodeFn(ctx, code)
}
func (f *fakeService) Update(ctx context.Context, code string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.updateFn(ctx, code, req)
}
func (f *fakeService) Delete(ctx context.Context, code string, actor role.Role) error {
	return f.deleteFn(ctx, code, actor)
}
func (f *fakeService) DisplayName(ctx context.Context, code string) (string, error) {
	return "テストユーザー", nil
}
func (f *fakeService) EnsureSeedAdmin(ctx context.Context, code, name, password string) error {
	return nil
}

func sessionAs(code string, r role.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextEmployeeCode, code)
		c.Set(middleware.ContextRole, string(r))
		c.Next()
	}
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()
	router := gin.New()
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	require.NoError(t, err)
	router.SetHTMLTemplate(tmpl)
	return router
}

func TestHandler_Update_NonAdminGets403(t *testing.T) {
	router := newRouter(t)

	rbacService, err := rbac.NewService()
	require.NoError(t, err)

	mutated := false
	svc := &fakeService{
		updateFn: func(ctx context.Context, code string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			mutated = true
			return employee.EmployeeResponse{}, nil
		},
	}
	h := employee.NewHandler(svc)

	router.POST("/employees/:code/update",
		sessionAs("2001", role.General),
		middleware.RBACAuthorize(rbacService, "employee", "update"),
		h.Update,
	)

	form := url.Values{}
	form.Set("name", "山田太郎")
	form.Set("role", "GENERAL")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees/1001/update", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "権限がありません")
	assert.False(t, mutated)
}

func TestHandler_Add_RerendersOnValidationError(t *testing.T) {
	router := newRouter(t)

	created := false
	svc := &fakeService{
		createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
			created = true
			return employee.EmployeeResponse{}, nil
		},
	}
	h := employee.NewHandler(svc)

	router.POST("/employees/add", sessionAs("0001", role.Admin), h.Add)

	form := url.Values{}
	form.Set("code", "1002")
	form.Set("name", "佐藤花子")
	form.Set("password", "short")
	form.Set("role", "GENERAL")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "8文字以上16文字以下で入力してください")
	// The entered values survive the re-render.
	assert.Contains(t, w.Body.String(), "佐藤花子")
	assert.False(t, created)
}

func TestHandler_Add_BlankPasswordIsRequired(t *testing.T) {
	router := newRouter(t)

	created := false
	svc := &fakeService{
		createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
			created = true
			return employee.EmployeeResponse{}, nil
		},
	}
	h := employee.NewHandler(svc)

	router.POST("/employees/add", sessionAs("0001", role.Admin), h.Add)

	form := url.Values{}
	form.Set("code", "1002")
	form.Set("name", "佐藤花子")
	form.Set("role", "GENERAL")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "値を入力してください")
	assert.False(t, created)
}

func TestHandler_Add_NonAlnumCodeGetsCodeWording(t *testing.T) {
	router := newRouter(t)

	created := false
	svc := &fakeService{
		createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
			created = true
			return employee.EmployeeResponse{}, nil
		},
	}
	h := employee.NewHandler(svc)

	router.POST("/employees/add", sessionAs("0001", role.Admin), h.Add)

	form := url.Values{}
	form.Set("code", "100-1")
	form.Set("name", "佐藤花子")
	form.Set("password", "password123")
	form.Set("role", "GENERAL")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "半角英数字のみで入力してください")
	// The code field must not borrow the password wording.
	assert.NotContains(t, w.Body.String(), "パスワードは半角英数字のみで入力してください")
	assert.False(t, created)
}

func TestHandler_Update_BindingErrorsRenderBeforePasswordCheck(t *testing.T) {
	router := newRouter(t)

	mutated := false
	svc := &fakeService{
		updateFn: func(ctx context.Context, code string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			mutated = true
			return employee.EmployeeResponse{}, nil
		},
	}
	h := employee.NewHandler(svc)

	router.POST("/employees/:code/update", sessionAs("0001", role.Admin), h.Update)

	// Blank name is a binding error; the malformed password must not be
	// evaluated on the same pass.
	form := url.Values{}
	form.Set("name", "")
	form.Set("password", "ab!")
	form.Set("role", "GENERAL")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/employees/1001/update", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "値を入力してください")
	assert.NotContains(t, body, "8文字以上16文字以下で入力してください")
	assert.NotContains(t, body, "パスワードは半角英数字のみで入力してください")
	assert.False(t, mutated)
}

func TestHandler_ShowDetail_NotFoundRedirectsToList(t *testing.T) {
	router := newRouter(t)

	svc := &fakeService{
		findByCodeFn: func(ctx context.Context, code string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	h := employee.NewHandler(svc)

	router.GET("/employees/:code", sessionAs("0001", role.Admin), h.ShowDetail)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employees/9999", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/employees", w.Header().Get("Location"))
}
