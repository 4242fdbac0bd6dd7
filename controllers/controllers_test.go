package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nailspa-backend/models"
	"nailspa-backend/services"
	"nailspa-backend/store"
)

var ict = time.FixedZone("ICT", 7*3600)

type testServer struct {
	engine   *gin.Engine
	catalog  *store.CatalogStore
	bills    *store.BillStore
	settings *store.SettingsStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	log := zap.NewNop()

	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, store.KeyServices, `[]`))
	s := &testServer{
		catalog:  store.NewCatalogStore(kv, log),
		bills:    store.NewBillStore(kv, log),
		settings: store.NewSettingsStore(kv, log),
	}
	s.catalog.Load(ctx)
	s.bills.Load(ctx)
	s.settings.Load(ctx)

	pinned := clock{now: func() time.Time { return time.Date(2024, 3, 13, 15, 0, 0, 0, ict) }}
	analytics := services.NewAnalytics(ict)
	billing := services.NewBillingService(s.catalog, s.bills, ict, log)
	bc := NewBillController(billing, analytics, log)
	bc.clock = pinned
	rc := NewReportController(billing, analytics, ict, log)
	rc.clock = pinned
	cc := NewCatalogController(services.NewCatalogService(s.catalog), log)
	sc := NewSettingsController(s.settings)
	backup := NewBackupController(services.NewBackupService(kv, s.bills, s.catalog, s.settings, ict, log), log)

	r := gin.New()
	r.GET("/bills", bc.GetBills)
	r.POST("/bills", bc.CreateBill)
	r.GET("/bills/:id", bc.GetBill)
	r.GET("/bills/:id/draft", bc.OpenDraft)
	r.PUT("/bills/:id", bc.UpdateBill)
	r.DELETE("/bills/:id", bc.DeleteBill)
	r.POST("/drafts", bc.NewDraft)
	r.POST("/drafts/apply", bc.ApplyDraft)
	r.POST("/drafts/preview", bc.PreviewDraft)
	r.GET("/services", cc.GetServices)
	r.POST("/services", cc.CreateService)
	r.GET("/services/:id", cc.GetService)
	r.PUT("/services/:id", cc.UpdateService)
	r.DELETE("/services/:id", cc.DeleteService)
	r.GET("/categories", cc.GetCategories)
	r.POST("/categories", cc.CreateCategory)
	r.PUT("/categories/:id", cc.RenameCategory)
	r.DELETE("/categories/:id", cc.DeleteCategory)
	r.GET("/settings", sc.GetSettings)
	r.PUT("/settings", sc.UpdateSettings)
	r.GET("/dashboard", rc.GetDashboard)
	r.GET("/calendar", rc.GetCalendar)
	r.GET("/top-services", rc.GetTopServices)
	r.GET("/customers", rc.GetCustomers)
	r.GET("/customers/suggest", rc.SuggestCustomers)
	r.GET("/backup", backup.ExportBackup)
	r.POST("/backup", backup.ImportBackup)
	r.POST("/backup/reset", backup.ResetData)
	s.engine = r
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *testServer) createService(t *testing.T, in ServiceInput) models.PredefinedService {
	t.Helper()
	w := s.do(t, http.MethodPost, "/services", in)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.PredefinedService](t, w)
}

func (s *testServer) apply(t *testing.T, d services.Draft, op services.DraftOp) services.Preview {
	t.Helper()
	w := s.do(t, http.MethodPost, "/drafts/apply", ApplyDraftInput{Draft: d, Op: op})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[services.Preview](t, w)
}

func TestDraftEditorFlow(t *testing.T) {
	s := newTestServer(t)
	ext := s.createService(t, ServiceInput{
		Name:          "Nối móng",
		PriceType:     models.PriceVariable,
		Variants:      []models.PriceVariant{{Name: "Ngắn", Price: 200000}, {Name: "Dài", Price: 250000}},
		AllowQuantity: true,
	})

	w := s.do(t, http.MethodPost, "/drafts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[services.Preview](t, w)
	require.Equal(t, time.Now().In(ict).Format("2006-01-02"), p.Draft.Date)
	require.Len(t, p.Draft.Items, 1)

	p = s.apply(t, p.Draft, services.DraftOp{Type: services.OpSelectService, Index: 0, ServiceID: ext.ID})
	p = s.apply(t, p.Draft, services.DraftOp{Type: services.OpChangeQuantity, Index: 0, Quantity: 2})
	p = s.apply(t, p.Draft, services.DraftOp{Type: services.OpChangeVariant, Index: 0, VariantName: "Dài"})
	require.Equal(t, int64(500000), p.Draft.Items[0].Price)
	require.True(t, p.Lines[0].QuantityEditable)
	require.Equal(t, []string{"Ngắn", "Dài"}, p.Lines[0].Variants)

	p = s.apply(t, p.Draft, services.DraftOp{Type: services.OpSetDiscount, DiscountValue: 10, DiscountType: "percent"})
	require.Equal(t, services.Totals{Subtotal: 500000, Discount: 50000, Total: 450000}, p.Totals)

	w = s.do(t, http.MethodPost, "/drafts/apply", ApplyDraftInput{Draft: p.Draft, Op: services.DraftOp{Type: "explode"}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	d := p.Draft
	d.CustomerName = "  "
	w = s.do(t, http.MethodPost, "/bills", d)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "customer name is required")

	d.CustomerName = "Lan"
	w = s.do(t, http.MethodPost, "/bills", d)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bill := decode[models.Bill](t, w)
	require.Equal(t, int64(450000), bill.Total)

	w = s.do(t, http.MethodGet, "/bills/"+bill.ID+"/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	opened := decode[services.Preview](t, w)
	require.Equal(t, bill.ID, opened.Draft.BillID)
	require.Equal(t, int64(450000), opened.Totals.Total)

	opened.Draft.CustomerName = "Lan Anh"
	w = s.do(t, http.MethodPut, "/bills/"+bill.ID, opened.Draft)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPut, "/bills/missing", opened.Draft)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/bills?customer=anh", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[services.BillPage](t, w)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Lan Anh", page.Bills[0].CustomerName)

	w = s.do(t, http.MethodGet, "/bills?limit=-1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/bills?offset=1&limit=9223372036854775807", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Empty(t, decode[services.BillPage](t, w).Bills)

	w = s.do(t, http.MethodDelete, "/bills/"+bill.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/bills/"+bill.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"Bill not found"}`, w.Body.String())
}

func TestPreviewReportsUnresolvedLines(t *testing.T) {
	s := newTestServer(t)
	draft := services.Draft{
		CustomerName: "Lan",
		Date:         "2024-03-13",
		Time:         "10:00",
		Items:        []models.ServiceItem{{ID: "1", ServiceID: "deleted", Name: "Old", Price: 70000}},
	}
	w := s.do(t, http.MethodPost, "/drafts/preview", draft)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[services.Preview](t, w)
	require.False(t, p.Lines[0].Resolved)
	require.Equal(t, 1, p.Draft.Items[0].Quantity)
	require.Equal(t, models.DiscountAmount, p.Draft.DiscountType)
	require.Equal(t, int64(70000), p.Totals.Total)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/categories", CategoryInput{Name: "Sơn"})
	require.Equal(t, http.StatusCreated, w.Code)
	cat := decode[models.ServiceCategory](t, w)

	gel := s.createService(t, ServiceInput{Name: "Sơn Gel", Price: 80000, CategoryID: cat.ID})
	s.createService(t, ServiceInput{Name: "Cắt da", Price: 30000})

	w = s.do(t, http.MethodPost, "/services", ServiceInput{Name: "Bad", PriceType: models.PriceVariable})
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPost, "/services", `{"price": 1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/services?categoryId="+cat.ID, nil)
	require.Len(t, decode[[]models.PredefinedService](t, w), 1)

	w = s.do(t, http.MethodPut, "/services/"+gel.ID, ServiceInput{Name: "Sơn Gel", Price: 90000, CategoryID: cat.ID})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(90000), decode[models.PredefinedService](t, w).Price)

	w = s.do(t, http.MethodDelete, "/categories/"+cat.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/services?categoryId=", nil)
	require.Len(t, decode[[]models.PredefinedService](t, w), 2, "deleted category leaves services uncategorized")

	w = s.do(t, http.MethodPut, "/categories/"+cat.ID, CategoryInput{Name: "x"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/services/"+gel.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/services/"+gel.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPut, "/settings", map[string]string{"billTheme": "purple"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPut, "/settings", map[string]string{"shopName": " "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/settings", map[string]string{"billTheme": "gold"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.ShopSettings{ShopName: "Nail Spa", BillTheme: "gold"}, decode[models.ShopSettings](t, w))

	w = s.do(t, http.MethodGet, "/settings", nil)
	require.Contains(t, w.Body.String(), `"themes":["default","pink","blue","gold","green"]`)
}

func saveBill(t *testing.T, s *testServer, name string, serviceID string, date string) models.Bill {
	t.Helper()
	d := services.Draft{
		CustomerName: name,
		Date:         date,
		Time:         "10:00",
		Items:        []models.ServiceItem{{ID: "x"}},
	}
	p := s.apply(t, d, services.DraftOp{Type: services.OpSelectService, Index: 0, ServiceID: serviceID})
	w := s.do(t, http.MethodPost, "/bills", p.Draft)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Bill](t, w)
}

func TestReportEndpoints(t *testing.T) {
	s := newTestServer(t)
	gel := s.createService(t, ServiceInput{Name: "Sơn Gel", Price: 80000})
	up := s.createService(t, ServiceInput{Name: "Úp Gel", Price: 180000})

	saveBill(t, s, "Lan", gel.ID, "2024-03-13")
	saveBill(t, s, "Lan", up.ID, "2024-03-12")
	saveBill(t, s, "Mai", up.ID, "2024-03-01")
	saveBill(t, s, "Hoa", gel.ID, "2024-02-20")

	w := s.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[DashboardOverview](t, w)
	require.Equal(t, int64(80000), dash.Revenue.Today)
	require.Equal(t, int64(260000), dash.Revenue.Week)
	require.Equal(t, int64(440000), dash.Revenue.Month)
	require.Len(t, dash.LastSevenDays, 7)
	require.Equal(t, 4, dash.TotalBills)
	require.Equal(t, 3, dash.Customers)
	require.Len(t, dash.RecentBills, 4)
	require.Equal(t, []services.ServiceStat{
		{Name: "Úp Gel", Quantity: 2, Revenue: 360000},
		{Name: "Sơn Gel", Quantity: 1, Revenue: 80000},
	}, dash.TopServices, "top services count this month only")

	w = s.do(t, http.MethodGet, "/calendar?year=2024&month=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cal := decode[services.CalendarMonth](t, w)
	require.Len(t, cal.Days, 29)
	require.Equal(t, int64(80000), cal.Total)

	w = s.do(t, http.MethodGet, "/calendar?month=13", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/top-services?from=2024-03-01&to=2024-03-13", nil)
	require.Equal(t, http.StatusOK, w.Code)
	top := decode[[]services.ServiceStat](t, w)
	require.Equal(t, []services.ServiceStat{
		{Name: "Úp Gel", Quantity: 2, Revenue: 360000},
		{Name: "Sơn Gel", Quantity: 1, Revenue: 80000},
	}, top)

	w = s.do(t, http.MethodGet, "/top-services?from=yesterday", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/customers", nil)
	ranking := decode[[]services.CustomerStat](t, w)
	require.Equal(t, "Lan", ranking[0].Name)
	require.Equal(t, int64(260000), ranking[0].TotalSpent)
	require.Equal(t, 2, ranking[0].VisitCount)

	w = s.do(t, http.MethodGet, "/customers?search=ma", nil)
	require.Len(t, decode[[]services.CustomerStat](t, w), 1)

	w = s.do(t, http.MethodGet, "/customers/suggest?q=a", nil)
	require.Equal(t, []string{"Hoa", "Mai", "Lan"}, decode[[]string](t, w), "first appearance in newest-first order")
}

func TestBackupEndpoints(t *testing.T) {
	s := newTestServer(t)
	gel := s.createService(t, ServiceInput{Name: "Sơn Gel", Price: 80000})
	saveBill(t, s, "Lan", gel.ID, "2024-03-13")

	w := s.do(t, http.MethodGet, "/backup", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `attachment; filename="nail-spa-backup-`+time.Now().In(ict).Format("2006-01-02")+`.json"`,
		w.Header().Get("Content-Disposition"))
	exported := w.Body.String()

	w = s.do(t, http.MethodPost, "/backup", `{"bills": []}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, s.bills.List(), 1, "rejected import leaves data alone")

	w = s.do(t, http.MethodPost, "/backup/reset", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPost, "/backup/reset?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, s.bills.List())

	// upload the earlier export as a file
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "backup.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(exported))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/backup", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, s.bills.List(), 1)
	svc, ok := s.catalog.FindService(gel.ID)
	require.True(t, ok)
	require.Equal(t, "Sơn Gel", svc.Name)
}
