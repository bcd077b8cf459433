package report_test

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-dailyreport/internal/middleware"
	"go-dailyreport/internal/report"
	reporterrors "go-dailyreport/internal/report/errors"
	"go-dailyreport/internal/role"
	"go-dailyreport/internal/shared/apperror"
	"go-dailyreport/web"
)

type fakeService struct {
	findByRoleFn    func(ctx context.Context, code string, r role.Role) ([]report.ReportResponse, error)
	findByIDFn      func(ctx context.Context, id uint64) (report.ReportResponse, error)
	existsForDateFn func(ctx context.Context, code string, date time.Time, excludeID uint64) (bool, error)
	createFn        func(ctx context.Context, req report.CreateReportRequest) (report.ReportResponse, error)
	updateFn        func(ctx context.Context, id uint64, req report.UpdateReportRequest) (report.ReportResponse, error)
	deleteFn        func(ctx context.Context, id uint64) error
}

func (f *fakeService) FindReportsByRole(ctx context.Context, code string, r role.Role) ([]report.ReportResponse, error) {
	return f.findByRoleFn(ctx, code, r)
}
func (f *fakeService) FindByID(ctx context.Context, id uint64) (report.ReportResponse, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeService) ExistsForDate(ctx context.Context, code string, date time.Time, excludeID uint64) (bool, error) {
	return f.existsForDateFn(ctx, code, date, excludeID)
}
func (f *fakeService) Create(ctx context.Context, req report.CreateReportRequest) (report.ReportResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeService) Update(ctx context.Context, id uint64, req report.UpdateReportRequest) (report.ReportResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeService) Delete(ctx context.Context, id uint64) error {
	return f.deleteFn(ctx, id)
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

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Add_BlankTitleRerendersWithoutCreating(t *testing.T) {
	router := newRouter(t)

	created := false
	svc := &fakeService{
		existsForDateFn: func(ctx context.Context, code string, date time.Time, excludeID uint64) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, req report.CreateReportRequest) (report.ReportResponse, error) {
			created = true
			return report.ReportResponse{}, nil
		},
	}
	h := report.NewHandler(svc, nil)
	router.POST("/reports/add", sessionAs("1001", role.General), h.Add)

	form := url.Values{}
	form.Set("report_date", "2026-09-01")
	form.Set("title", "")
	form.Set("content", "x")

	w := postForm(router, "/reports/add", form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "値を入力してください")
	assert.False(t, created)
}

func TestHandler_Add_DuplicateDateOverridesBlankDate(t *testing.T) {
	router := newRouter(t)

	svc := &fakeService{
		existsForDateFn: func(ctx context.Context, code string, date time.Time, excludeID uint64) (bool, error) {
			return true, nil
		},
		createFn: func(ctx context.Context, req report.CreateReportRequest) (report.ReportResponse, error) {
			t.Fatal("create must not run on a duplicate date")
			return report.ReportResponse{}, nil
		},
	}
	h := report.NewHandler(svc, nil)
	router.POST("/reports/add", sessionAs("1001", role.General), h.Add)

	form := url.Values{}
	form.Set("report_date", "2026-09-01")
	form.Set("title", "日次作業報告")
	form.Set("content", "実装とレビュー")

	w := postForm(router, "/reports/add", form)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "既に登録されている日付です")
	assert.NotContains(t, body, "値を入力してください")
	// Entered values survive the re-render.
	assert.Contains(t, body, "日次作業報告")
}

func TestHandler_Add_Success(t *testing.T) {
	router := newRouter(t)

	var gotReq report.CreateReportRequest
	svc := &fakeService{
		existsForDateFn: func(ctx context.Context, code string, date time.Time, excludeID uint64) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, req report.CreateReportRequest) (report.ReportResponse, error) {
			gotReq = req
			return report.ReportResponse{ID: 1}, nil
		},
	}
	h := report.NewHandler(svc, nil)
	router.POST("/reports/add", sessionAs("1001", role.General), h.Add)

	form := url.Values{}
	form.Set("report_date", "2026-09-01")
	form.Set("title", "日次作業報告")
	form.Set("content", "実装とレビュー")

	w := postForm(router, "/reports/add", form)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/reports", w.Header().Get("Location"))
	// The owner comes from the session, never the form.
	assert.Equal(t, "1001", gotReq.EmployeeCode)
}

func TestHandler_Update_ChecksStoredOwner(t *testing.T) {
	router := newRouter(t)

	var checkedCode string
	var checkedExclude uint64
	svc := &fakeService{
		findByIDFn: func(ctx context.Context, id uint64) (report.ReportResponse, error) {
			return report.ReportResponse{ID: id, EmployeeCode: "2001", ReportDate: "2026-08-31"}, nil
		},
		existsForDateFn: func(ctx context.Context, code string, date time.Time, excludeID uint64) (bool, error) {
			checkedCode = code
			checkedExclude = excludeID
			return false, nil
		},
		updateFn: func(ctx context.Context, id uint64, req report.UpdateReportRequest) (report.ReportResponse, error) {
			return report.ReportResponse{ID: id}, nil
		},
	}
	h := report.NewHandler(svc, nil)
	// Session belongs to an admin editing someone else's report; the
	// duplicate check still runs against the stored owner 2001.
	router.POST("/reports/:id/update", sessionAs("0001", role.Admin), h.Update)

	form := url.Values{}
	form.Set("report_date", "2026-09-01")
	form.Set("title", "t")
	form.Set("content", "c")

	w := postForm(router, "/reports/7/update", form)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "2001", checkedCode)
	assert.Equal(t, uint64(7), checkedExclude)
}

func TestHandler_Update_NotFoundRedirectsToList(t *testing.T) {
	router := newRouter(t)

	svc := &fakeService{
		findByIDFn: func(ctx context.Context, id uint64) (report.ReportResponse, error) {
			return report.ReportResponse{}, reporterrors.ErrReportNotFound
		},
	}
	h := report.NewHandler(svc, nil)
	router.POST("/reports/:id/update", sessionAs("0001", role.Admin), h.Update)

	form := url.Values{}
	form.Set("report_date", "2026-09-01")
	form.Set("title", "t")
	form.Set("content", "c")

	w := postForm(router, "/reports/404/update", form)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/reports", w.Header().Get("Location"))
}

func TestHandler_ShowList(t *testing.T) {
	router := newRouter(t)

	svc := &fakeService{
		findByRoleFn: func(ctx context.Context, code string, r role.Role) ([]report.ReportResponse, error) {
			assert.Equal(t, "2001", code)
			assert.Equal(t, role.General, r)
			return []report.ReportResponse{
				{ID: 1, ReportDate: "2026-09-01", Title: "日次作業報告", EmployeeName: "山田太郎"},
			}, nil
		},
	}
	h := report.NewHandler(svc, nil)
	router.GET("/reports", sessionAs("2001", role.General), h.ShowList)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "日次作業報告")
	assert.Contains(t, w.Body.String(), "山田太郎")
}
