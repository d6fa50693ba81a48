package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/kerjaku-backend/internal/cms"
	"github.com/ignatzorin/kerjaku-backend/internal/config"
	"github.com/ignatzorin/kerjaku-backend/internal/http/handlers"
	"github.com/ignatzorin/kerjaku-backend/internal/http/middleware"
	"github.com/ignatzorin/kerjaku-backend/internal/service"
	"github.com/ignatzorin/kerjaku-backend/internal/session"
	"github.com/ignatzorin/kerjaku-backend/internal/storage"
)

const testAdminPassword = "rahasia123"

// pngHeader минимальные байты, по которым filetype распознаёт PNG.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type testApp struct {
	engine *gin.Engine
	kv     *storage.MemoryStore
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:              "test",
		StorageDriver:    config.StorageMemory,
		MediaStoragePath: t.TempDir(),
		MaxUploadSizeMB:  1,
		AllowedOrigins:   []string{"http://localhost:3000"},
		RateLimitLimit:   100,
		RateLimitPeriod:  time.Minute,
	}
	for _, m := range mutate {
		m(cfg)
	}

	kv := storage.NewMemoryStore()
	registry := cms.NewRegistry(kv)
	sessions := session.NewManager(kv)
	tokens := service.NewTokenManager("context-secret-for-router-tests-0001", "admin-secret-for-router-tests-00001", time.Hour)

	hash, err := service.HashAdminPassword(testAdminPassword)
	require.NoError(t, err)

	media, err := storage.NewMediaStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	require.NoError(t, err)

	auth := service.NewAuthService(registry)
	market := service.NewMarketplaceService(registry)
	admin := service.NewAdminService(registry, tokens, hash)

	h := Handlers{
		Auth:      handlers.NewAuthHandler(auth),
		Workers:   handlers.NewWorkerHandler(market),
		Jobs:      handlers.NewJobHandler(market),
		Content:   handlers.NewContentHandler(market),
		Dashboard: handlers.NewDashboardHandler(market),
		Portfolio: handlers.NewPortfolioHandler(market, media),
		Admin:     handlers.NewAdminHandler(admin, sessions),
		Health:    handlers.NewHealthHandler(cfg.StorageDriver, nil),
	}

	return &testApp{
		engine: SetupRouter(cfg, h, tokens, sessions, admin),
		kv:     kv,
	}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// login входит по телефону и возвращает заголовки с токеном контекста.
func (a *testApp) login(t *testing.T, phone, role string) map[string]string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"phone": phone, "password": "apa-saja1", "role": role,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token := w.Header().Get(middleware.ContextTokenHeader)
	require.NotEmpty(t, token)
	return bearer(token)
}

func (a *testApp) adminToken(t *testing.T) map[string]string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/admin/login", map[string]string{"password": testAdminPassword}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp service.AdminToken
	decode(t, w, &resp)
	return map[string]string{middleware.AdminTokenHeader: resp.Token}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type listBody struct {
	Items []map[string]interface{} `json:"items"`
	Total int                      `json:"total"`
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestListWorkers_Filters(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name  string
		query string
		total int
	}{
		{"без фильтров", "", 8},
		{"по навыку", "?skills=welder", 2},
		{"по навыку и локации", "?skills=welder&location=bekasi", 1},
		{"по рейтингу", "?min_rating=5", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := app.do(t, http.MethodGet, "/api/workers"+tc.query, nil, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var body listBody
			decode(t, w, &body)
			assert.Equal(t, tc.total, body.Total)
			assert.Len(t, body.Items, tc.total)
		})
	}
}

func TestListWorkers_BadQuery(t *testing.T) {
	app := newTestApp(t)

	for _, q := range []string{"?min_rating=abc", "?min_rating=7", "?skills=astronaut"} {
		w := app.do(t, http.MethodGet, "/api/workers"+q, nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestListJobs_StatusDefaultsToOpen(t *testing.T) {
	app := newTestApp(t)

	cases := map[string]int{
		"":                            5,
		"?status=all":                 7,
		"?status=filled":              1,
		"?category=welder&status=all": 1,
	}
	for query, total := range cases {
		w := app.do(t, http.MethodGet, "/api/jobs"+query, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, query)

		var body listBody
		decode(t, w, &body)
		assert.Equal(t, total, body.Total, query)
	}

	w := app.do(t, http.MethodGet, "/api/jobs?status=draft", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetJob_BudgetLabel(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/jobs/job-las-kanopi-bekasi", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rp 200.000 – Rp 300.000 / hari")
}

func TestGetWorker_NotFoundAndBadID(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/workers/worker-budi-santoso", nil, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/api/workers/worker-nobody", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/api/workers/bad.id", nil, nil).Code)
}

func TestContent(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/articles/keselamatan-kerja-tukang-las", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"article-k3-las"`)

	w = app.do(t, http.MethodGet, "/api/pages/home", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page listBody
	decode(t, w, &page)
	assert.Equal(t, 2, page.Total)

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/api/pages/unknown", nil, nil).Code)

	w = app.do(t, http.MethodGet, "/api/settings", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "site_name")

	for _, path := range []string{"/api/articles", "/api/trainings", "/api/faq", "/api/skills"} {
		assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, path, nil, nil).Code, path)
	}
}

func TestSession_LoginMeLogout(t *testing.T) {
	app := newTestApp(t)

	// Анонимный запрос получает новый контекст
	w := app.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.ContextTokenHeader))
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	headers := app.login(t, "0812-3456-7801", "worker")

	w = app.do(t, http.MethodGet, "/api/auth/me", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(middleware.ContextTokenHeader))

	var me struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, w, &me)
	assert.True(t, me.Authenticated)
	assert.Equal(t, "worker-budi-santoso", me.User.ID)
	assert.Equal(t, "worker", me.User.Role)

	w = app.do(t, http.MethodPost, "/api/auth/logout", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/auth/me", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestSession_EndsWhenStorageClearedExternally(t *testing.T) {
	app := newTestApp(t)
	headers := app.login(t, "081234567801", "worker")

	w := app.do(t, http.MethodGet, "/api/auth/me", nil, headers)
	require.Contains(t, w.Body.String(), `"authenticated":true`)

	ctx := context.Background()
	keys, err := app.kv.Keys(ctx, session.KeyPrefix+":")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.NoError(t, app.kv.Delete(ctx, keys[0]))

	w = app.do(t, http.MethodGet, "/api/auth/me", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	w = app.do(t, http.MethodPost, "/api/jobs/job-las-kanopi-bekasi/apply", nil, headers)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_InvalidToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/auth/me", nil, bearer("not-a-token"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_EmployerPostsJob(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":             "Rina Wijaya",
		"phone":            "081377788899",
		"password":         "kerja123",
		"password_confirm": "kerja123",
		"role":             "employer",
		"company_name":     "CV Rina Bangun",
		"location":         "Bogor",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	headers := bearer(w.Header().Get(middleware.ContextTokenHeader))

	w = app.do(t, http.MethodPost, "/api/jobs", map[string]interface{}{
		"title":          "Tukang batu pagar rumah",
		"description":    "Membangun pagar bata sepanjang 20 meter di Bogor.",
		"skill_category": "mason",
		"location":       "Bogor",
		"budget_min":     150000,
		"budget_max":     200000,
		"duration_type":  "daily",
	}, headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"employer_name":"CV Rina Bangun"`)

	w = app.do(t, http.MethodGet, "/api/jobs?q=pagar", nil, nil)
	var body listBody
	decode(t, w, &body)
	assert.Equal(t, 1, body.Total)
}

func TestRegister_ValidationError(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name": "R", "phone": "123", "password": "x", "password_confirm": "y", "role": "worker",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"VALIDATION_ERROR"`)
}

func TestApply_RoleGate(t *testing.T) {
	app := newTestApp(t)
	path := "/api/jobs/job-las-kanopi-bekasi/apply"

	// Анонимный контекст
	w := app.do(t, http.MethodPost, path, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	employer := app.login(t, "081298765401", "employer")
	w = app.do(t, http.MethodPost, path, nil, employer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	worker := app.login(t, "081234567801", "worker")
	w = app.do(t, http.MethodPost, path, map[string]string{"message": "Siap kerja minggu ini"}, worker)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, path, nil, worker)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/jobs/job-cat-rumah-tangerang/apply", nil, worker)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestContactAndReview(t *testing.T) {
	app := newTestApp(t)
	employer := app.login(t, "081298765401", "employer")

	w := app.do(t, http.MethodPost, "/api/workers/worker-budi-santoso/contact", nil, employer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"whatsapp_url":"https://wa.me/6281234567801"`)

	w = app.do(t, http.MethodPost, "/api/workers/worker-ahmad-fauzi/reviews", map[string]interface{}{
		"rating": 1, "comment": "Terlambat datang",
	}, employer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/workers/worker-ahmad-fauzi", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"average_rating":3.7`)

	w = app.do(t, http.MethodPost, "/api/workers/worker-ahmad-fauzi/reviews", map[string]interface{}{"rating": 9}, employer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateJobStatus_OwnerOnly(t *testing.T) {
	app := newTestApp(t)
	path := "/api/jobs/job-las-kanopi-bekasi/status"

	other := app.login(t, "081298765403", "employer")
	w := app.do(t, http.MethodPut, path, map[string]string{"status": "closed"}, other)
	assert.Equal(t, http.StatusForbidden, w.Code)

	owner := app.login(t, "081298765401", "employer")
	w = app.do(t, http.MethodPut, path, map[string]string{"status": "filled"}, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"filled"`)
}

func TestDashboards(t *testing.T) {
	app := newTestApp(t)

	worker := app.login(t, "081234567801", "worker")
	w := app.do(t, http.MethodGet, "/api/dashboard/worker", nil, worker)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "job-las-kanopi-bekasi")

	w = app.do(t, http.MethodGet, "/api/dashboard/employer", nil, worker)
	assert.Equal(t, http.StatusForbidden, w.Code)

	employer := app.login(t, "081298765401", "employer")
	w = app.do(t, http.MethodGet, "/api/dashboard/employer", nil, employer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"open_jobs":2`)
}

func multipartUpload(t *testing.T, filename string, content []byte, caption string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("caption", caption))
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (a *testApp) upload(t *testing.T, workerID, filename string, content []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, filename, content, "Kanopi baja ringan")
	req := httptest.NewRequest(http.MethodPost, "/api/workers/"+workerID+"/portfolio", body)
	req.Header.Set("Content-Type", contentType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func TestPortfolioUpload(t *testing.T) {
	app := newTestApp(t)
	worker := app.login(t, "081234567801", "worker")

	png := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	w := app.upload(t, "worker-budi-santoso", "kanopi.png", png, worker)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item struct {
		MediaURL  string `json:"media_url"`
		MediaType string `json:"media_type"`
		Order     int    `json:"order"`
	}
	decode(t, w, &item)
	assert.True(t, strings.HasPrefix(item.MediaURL, "/media/worker-budi-santoso/"), item.MediaURL)
	assert.Equal(t, "image", item.MediaType)
	assert.Equal(t, 3, item.Order)

	// Файл раздаётся статикой
	media := app.do(t, http.MethodGet, item.MediaURL, nil, nil)
	assert.Equal(t, http.StatusOK, media.Code)
}

func TestPortfolioUpload_Rejected(t *testing.T) {
	app := newTestApp(t)
	worker := app.login(t, "081234567801", "worker")

	w := app.upload(t, "worker-budi-santoso", "notes.txt", []byte("bukan gambar sama sekali"), worker)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.upload(t, "worker-ahmad-fauzi", "kanopi.png", pngHeader, worker)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.upload(t, "worker-budi-santoso", "kanopi.png", pngHeader, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_LoginAndStats(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/admin/login", map[string]string{"password": "salah-sekali1"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/admin/stats", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	app.login(t, "081234567801", "worker")
	app.login(t, "081298765401", "employer")

	admin := app.adminToken(t)
	w = app.do(t, http.MethodGet, "/api/admin/stats", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	var stats service.AdminStats
	decode(t, w, &stats)
	assert.Equal(t, 8, stats.Workers)
	assert.Equal(t, 7, stats.Jobs)
	assert.Equal(t, 2, stats.Sessions)
	assert.Equal(t, 2, stats.Accounts)
}

func TestAdmin_CollectionsCRUD(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)

	w := app.do(t, http.MethodGet, "/api/admin/cms", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var names struct {
		Total int `json:"total"`
	}
	decode(t, w, &names)
	assert.Equal(t, 12, names.Total)

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/api/admin/cms/invoices", nil, admin).Code)

	// Добавление и правка записи FAQ
	w = app.do(t, http.MethodPost, "/api/admin/cms/faq", map[string]string{
		"question": "Apakah gratis?", "answer": "Ya, tanpa biaya.",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]interface{}
	decode(t, w, &created)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	w = app.do(t, http.MethodPatch, "/api/admin/cms/faq/"+id, map[string]string{"answer": "Gratis selamanya."}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Gratis selamanya.")

	w = app.do(t, http.MethodDelete, "/api/admin/cms/faq/"+id, nil, admin)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = app.do(t, http.MethodDelete, "/api/admin/cms/faq/"+id, nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Массовая замена с ошибкой схемы не меняет коллекцию
	w = app.do(t, http.MethodPut, "/api/admin/cms/workers", `[{"full_name":"tanpa id"}]`, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/api/workers", nil, nil)
	var workers listBody
	decode(t, w, &workers)
	assert.Equal(t, 8, workers.Total)

	// Сброс возвращает демо-данные
	w = app.do(t, http.MethodPut, "/api/admin/cms/faq", `[]`, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = app.do(t, http.MethodPost, "/api/admin/cms/faq/reset", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestRateLimit_Login(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.RateLimitLimit = 2
	})

	body := map[string]string{"phone": "081234567801", "password": "x1", "role": "worker"}
	for i := 0; i < 2; i++ {
		w := app.do(t, http.MethodPost, "/api/auth/login", body, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := app.do(t, http.MethodPost, "/api/auth/login", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Лимит считается по группе: админка не затронута
	w = app.do(t, http.MethodPost, "/api/admin/login", map[string]string{"password": testAdminPassword}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodOptions, "/api/jobs", nil, map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), middleware.ContextTokenHeader)
}
