package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"careerai-backend/config"
	"careerai-backend/docs"
	v1 "careerai-backend/internal/delivery/http/v1"
	"careerai-backend/internal/domain"
	"careerai-backend/internal/repository/memory"
	"careerai-backend/internal/usecase"
	"careerai-backend/pkg/auth"
	"careerai-backend/pkg/storage"
	"careerai-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const password = "correct-horse-battery"

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
}

type testServer struct {
	router *gin.Engine
	authUC domain.AuthUsecase
	store  *memory.Store
}

func newTestServer(t *testing.T, mutate func(*config.Config), probes ...usecase.HealthProbe) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		GinMode:                  gin.TestMode,
		AllowedOrigins:           []string{"http://localhost:3000"},
		RateLimitWindowSeconds:   60,
		RateLimitGlobalThreshold: 1000,
		RateLimitLoginThreshold:  100,
		MaxUploadBytes:           1 << 20,
	}
	if mutate != nil {
		mutate(cfg)
	}

	hasher, err := auth.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:     "router-test-secret",
		Algorithm:  "HS256",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	v := validation.New()
	s := memory.NewStore()
	users := memory.NewUserRepository(s)
	jobs := memory.NewJobRepository(s)
	apps := memory.NewApplicationRepository(s)
	resumes := memory.NewResumeRepository(s)
	interviews := memory.NewInterviewRepository(s)

	authUC := usecase.NewAuthUsecase(users, hasher, tokens, nil, nil, v)
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUsecase(users, resumes, files, v, nil),
		JobUC:         usecase.NewJobUsecase(jobs, v),
		ApplicationUC: usecase.NewApplicationUsecase(apps, jobs, resumes, usecase.NewSkillScorer(), v),
		ResumeUC:      usecase.NewResumeUsecase(resumes, files, cfg.MaxUploadBytes),
		InterviewUC:   usecase.NewInterviewUsecase(interviews, apps, jobs, v),
		AnalysisUC:    usecase.NewAnalysisUsecase(memory.NewResumeAnalysisRepository(s), resumes, jobs, nil),
		AdminUC:       usecase.NewAdminUsecase(memory.NewAdminRepository(s), users, jobs, apps, resumes, files, nil),
		HealthUC:      usecase.NewHealthUsecase(probes...),
		Config:        cfg,
	})
	return &testServer{router: router, authUC: authUC, store: s}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return ts.serve(t, req)
}

func (ts *testServer) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var env envelope
	if bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func (ts *testServer) signup(t *testing.T, email, role string) domain.TokenPair {
	t.Helper()
	w, env := ts.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email":      email,
		"password":   password,
		"first_name": "Test",
		"last_name":  "User",
		"role":       role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.TokenPair](t, env)
}

func (ts *testServer) uploadResume(t *testing.T, token string, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/resumes/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w, _ := ts.serve(t, req)
	return w
}

func TestApplicationFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t, nil)

	student := ts.signup(t, "student@example.com", "student")
	employer := ts.signup(t, "employer@example.com", "EMPLOYER")
	assert.NotEmpty(t, student.RefreshToken)

	w, env := ts.do(t, http.MethodPost, "/v1/jobs", employer.AccessToken, map[string]interface{}{
		"title":        "Backend Engineer",
		"company_name": "Acme",
		"description":  "Build and run APIs",
		"location":     "Remote",
		"job_type":     "full-time",
		"requirements": []string{"Go", "SQL"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := decode[domain.Job](t, env)
	assert.Equal(t, domain.JobTypeFullTime, job.JobType)

	w = ts.uploadResume(t, student.AccessToken, "cv.pdf", []byte("%PDF-1.4 resume body"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = ts.do(t, http.MethodPost, "/v1/applications", student.AccessToken, map[string]string{"job_id": job.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	app := decode[domain.Application](t, env)
	require.NotNil(t, app.ResumeID, "primary resume attached")

	w, _ = ts.do(t, http.MethodPost, "/v1/applications", student.AccessToken, map[string]string{"job_id": job.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = ts.do(t, http.MethodPut, "/v1/applications/"+app.ID+"/status", student.AccessToken, map[string]string{"status": "Interview"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = ts.do(t, http.MethodPut, "/v1/applications/"+app.ID+"/status", employer.AccessToken, map[string]string{"status": "Interview"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = ts.do(t, http.MethodGet, "/v1/applications", student.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]domain.Application](t, env)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.ApplicationStatusInterview, mine[0].Status)
	assert.Equal(t, *app.ResumeID, *mine[0].ResumeID)
	require.NotNil(t, mine[0].JobTitle)
	assert.Equal(t, "Backend Engineer", *mine[0].JobTitle)

	w, env = ts.do(t, http.MethodGet, "/v1/jobs/"+job.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[domain.Job](t, env).ApplicantCount)

	w, _ = ts.do(t, http.MethodDelete, "/v1/applications/"+app.ID, student.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodDelete, "/v1/applications/"+app.ID, student.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = ts.do(t, http.MethodGet, "/v1/jobs/"+job.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[domain.Job](t, env).ApplicantCount)
}

func TestAuthenticationBoundary(t *testing.T) {
	ts := newTestServer(t, nil)
	pair := ts.signup(t, "someone@example.com", "STUDENT")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + pair.AccessToken, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"refresh token as access token", "Bearer " + pair.RefreshToken, http.StatusUnauthorized},
		{"access token", "Bearer " + pair.AccessToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/users/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w, env := ts.serve(t, req)
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			assert.Equal(t, w.Header().Get("X-Request-ID"), env.RequestID)
		})
	}
}

func TestRefreshAndVerifyToken(t *testing.T) {
	ts := newTestServer(t, nil)
	pair := ts.signup(t, "refresh@example.com", "STUDENT")

	w, env := ts.do(t, http.MethodPost, "/v1/auth/refresh", "", map[string]string{"refresh_token": pair.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	refreshed := decode[domain.TokenPair](t, env)
	assert.Equal(t, pair.RefreshToken, refreshed.RefreshToken)

	w, _ = ts.do(t, http.MethodPost, "/v1/auth/refresh", "", map[string]string{"refresh_token": pair.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = ts.do(t, http.MethodPost, "/v1/auth/verify-token", "", map[string]string{"token": refreshed.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[domain.TokenInfo](t, env)
	assert.True(t, info.Valid)
	assert.NotEmpty(t, info.UserID)

	w, _ = ts.do(t, http.MethodPost, "/v1/auth/verify-token?token=bogus", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestValidation(t *testing.T) {
	ts := newTestServer(t, nil)

	w, env := ts.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email":      "admin-wannabe@example.com",
		"password":   password,
		"first_name": "Eve",
		"last_name":  "Adams",
		"role":       "ADMIN",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	w, _ = ts.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email":      "short@example.com",
		"password":   "short",
		"first_name": "Sam",
		"last_name":  "Short",
		"role":       "STUDENT",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ts.signup(t, "taken@example.com", "STUDENT")
	w, _ = ts.do(t, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email":      "TAKEN@example.com",
		"password":   password,
		"first_name": "Tom",
		"last_name":  "Taken",
		"role":       "STUDENT",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestJobListing(t *testing.T) {
	ts := newTestServer(t, nil)

	w, env := ts.do(t, http.MethodGet, "/v1/jobs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[domain.PaginatedResult[domain.Job]](t, env)
	assert.Empty(t, page.Data)
	assert.Equal(t, 20, page.Limit)

	for _, query := range []string{"?limit=0", "?limit=101", "?skip=-1", "?job_type=freelance", "?is_active=maybe"} {
		w, _ = ts.do(t, http.MethodGet, "/v1/jobs"+query, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}

	ts.store.Unavailable = errors.New("connection refused")
	w, env = ts.do(t, http.MethodGet, "/v1/jobs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[domain.PaginatedResult[domain.Job]](t, env).Data)
}

func TestResumeUploadLimits(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config) { c.MaxUploadBytes = 1 << 10 })
	student := ts.signup(t, "uploader@example.com", "STUDENT")
	employer := ts.signup(t, "hr@example.com", "EMPLOYER")

	big := append([]byte("%PDF-1.4 "), bytes.Repeat([]byte("x"), 2<<10)...)
	assert.Equal(t, http.StatusRequestEntityTooLarge, ts.uploadResume(t, student.AccessToken, "cv.pdf", big).Code)
	assert.Equal(t, http.StatusBadRequest, ts.uploadResume(t, student.AccessToken, "cv.exe", []byte("MZ")).Code)
	assert.Equal(t, http.StatusBadRequest, ts.uploadResume(t, student.AccessToken, "cv.pdf", []byte("not a pdf")).Code)
	assert.Equal(t, http.StatusForbidden, ts.uploadResume(t, employer.AccessToken, "cv.pdf", []byte("%PDF-1.4")).Code)

	w := ts.uploadResume(t, student.AccessToken, "cv.pdf", []byte("%PDF-1.4 ok"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	resume := decode[domain.Resume](t, env)
	assert.True(t, resume.IsPrimary)

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes/"+resume.ID+"/download", nil)
	req.Header.Set("Authorization", "Bearer "+student.AccessToken)
	dl := httptest.NewRecorder()
	ts.router.ServeHTTP(dl, req)
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "application/pdf", dl.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4 ok", dl.Body.String())
}

func TestAuthRateLimit(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config) { c.RateLimitLoginThreshold = 2 })
	ts.signup(t, "limited@example.com", "STUDENT")

	creds := map[string]string{"email": "limited@example.com", "password": password}
	w, _ := ts.do(t, http.MethodPost, "/v1/auth/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = ts.do(t, http.MethodPost, "/v1/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "signup and login share the auth budget")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestAdminRoutes(t *testing.T) {
	ts := newTestServer(t, nil)
	require.NoError(t, ts.authUC.EnsureAdmin(context.Background(), "root@example.com", password))

	w, env := ts.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "root@example.com", "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	admin := decode[domain.TokenPair](t, env)
	student := ts.signup(t, "learner@example.com", "STUDENT")

	w, _ = ts.do(t, http.MethodGet, "/v1/admin/stats", student.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = ts.do(t, http.MethodGet, "/v1/admin/stats", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[domain.AdminStats](t, env)
	assert.EqualValues(t, 2, stats.TotalUsers)

	w, _ = ts.do(t, http.MethodGet, "/v1/admin/users?role=wizard", admin.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/applications/export", nil)
	req.Header.Set("Authorization", "Bearer "+admin.AccessToken)
	export := httptest.NewRecorder()
	ts.router.ServeHTTP(export, req)
	require.Equal(t, http.StatusOK, export.Code)
	assert.Contains(t, export.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, export.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(export.Body.Bytes(), []byte("PK")), "xlsx is a zip container")
}

func TestHealthEndpoint(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("down") }

	ts := newTestServer(t, nil,
		usecase.HealthProbe{Name: "database", Critical: true, Ping: ok},
		usecase.HealthProbe{Name: "redis", Ping: down},
	)
	w, env := ts.do(t, http.MethodGet, "/v1/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", decode[domain.HealthStatus](t, env).Status)

	ts = newTestServer(t, nil, usecase.HealthProbe{Name: "database", Critical: true, Ping: down})
	w, env = ts.do(t, http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode[domain.HealthStatus](t, env).Status)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/v1/jobs", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/jobs", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUserAccountRoutes(t *testing.T) {
	ts := newTestServer(t, nil)
	student := ts.signup(t, "student@example.com", "STUDENT")
	other := ts.signup(t, "other@example.com", "STUDENT")

	w, env := ts.do(t, http.MethodGet, "/v1/users/profile", student.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[domain.User](t, env)

	w, env = ts.do(t, http.MethodGet, "/v1/users/"+me.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, string(env.Data), "student@example.com")
	assert.Equal(t, me.ID, decode[domain.PublicProfile](t, env).ID)

	w, _ = ts.do(t, http.MethodGet, "/v1/users/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = ts.do(t, http.MethodDelete, "/v1/users/"+me.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = ts.do(t, http.MethodDelete, "/v1/users/"+me.ID, other.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = ts.do(t, http.MethodDelete, "/v1/users/"+me.ID, student.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, _ = ts.do(t, http.MethodGet, "/v1/users/"+me.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalysisRoutes(t *testing.T) {
	ts := newTestServer(t, nil)
	student := ts.signup(t, "student@example.com", "STUDENT")
	employer := ts.signup(t, "hr@example.com", "EMPLOYER")

	w, _ := ts.do(t, http.MethodPut, "/v1/users/profile", student.AccessToken, map[string]interface{}{"skills": []string{"Go"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env := ts.do(t, http.MethodPost, "/v1/jobs", employer.AccessToken, map[string]interface{}{
		"title":        "Backend Engineer",
		"company_name": "Acme",
		"description":  "Build and run APIs",
		"location":     "Remote",
		"job_type":     "full-time",
		"requirements": []string{"Go", "SQL"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := decode[domain.Job](t, env)

	w = ts.uploadResume(t, student.AccessToken, "cv.pdf", []byte("%PDF-1.4 resume body"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	resume := decode[domain.Resume](t, env)
	base := "/v1/analysis/resume/" + resume.ID

	w, _ = ts.do(t, http.MethodPost, base+"/analyze", employer.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = ts.do(t, http.MethodPost, base+"/analyze", student.AccessToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = ts.do(t, http.MethodPost, base+"/match-job/"+job.ID, student.AccessToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	match := decode[domain.ResumeAnalysis](t, env)
	require.NotNil(t, match.MatchScore)
	assert.InDelta(t, 50, *match.MatchScore, 0.001)
	assert.Equal(t, []string{"SQL"}, match.MissingSkills)

	w, env = ts.do(t, http.MethodGet, base+"/history", student.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[domain.AnalysisHistory](t, env)
	assert.Equal(t, 2, history.TotalAnalyses)

	w, env = ts.do(t, http.MethodPost, "/v1/applications", student.AccessToken, map[string]string{"job_id": job.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	app := decode[domain.Application](t, env)
	require.NotNil(t, app.MatchScore)
	assert.InDelta(t, 50, *app.MatchScore, 0.001)
}

func TestSwaggerDocCoversRoutes(t *testing.T) {
	ts := newTestServer(t, nil)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	documented := 0
	for _, route := range ts.router.Routes() {
		if route.Method == http.MethodOptions || strings.HasPrefix(route.Path, "/v1/swagger") {
			continue
		}
		path := strings.TrimPrefix(route.Path, "/v1")
		segments := strings.Split(path, "/")
		for i, seg := range segments {
			if strings.HasPrefix(seg, ":") {
				segments[i] = "{" + seg[1:] + "}"
			}
		}
		path = strings.Join(segments, "/")
		methods, ok := doc.Paths[path]
		if assert.True(t, ok, "undocumented path %s", path) {
			assert.Contains(t, methods, strings.ToLower(route.Method), "undocumented %s %s", route.Method, path)
		}
		documented++
	}
	assert.Equal(t, documented, countOperations(doc.Paths), "doc lists routes the router does not serve")
}

func countOperations(paths map[string]map[string]json.RawMessage) int {
	n := 0
	for _, methods := range paths {
		n += len(methods)
	}
	return n
}
