package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirenest/hirenest-be/internal/api/auth"
	"github.com/hirenest/hirenest-be/internal/api/dto"
	"github.com/hirenest/hirenest-be/internal/api/handler"
	"github.com/hirenest/hirenest-be/internal/api/model"
	"github.com/hirenest/hirenest-be/internal/api/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubJobStore serves a fixed set of jobs, keyed by owner for the
// guarded listing route.
type stubJobStore struct {
	jobs []model.Job
}

func (s *stubJobStore) CreateJob(context.Context, *model.Job) error { return nil }
func (s *stubJobStore) UpsertJob(context.Context, *model.Job) error { return nil }
func (s *stubJobStore) GetJobByID(context.Context, string) (*model.Job, error) {
	return nil, nil
}
func (s *stubJobStore) ListJobs(context.Context) ([]model.Job, error) { return s.jobs, nil }
func (s *stubJobStore) ListJobsByOwner(_ context.Context, email string) ([]model.Job, error) {
	var out []model.Job
	for _, job := range s.jobs {
		if job.BuyerEmail == email {
			out = append(out, job)
		}
	}
	return out, nil
}
func (s *stubJobStore) DeleteJob(context.Context, string) error { return nil }
func (s *stubJobStore) SearchJobs(context.Context, storage.JobSearchFilter) ([]model.Job, error) {
	return s.jobs, nil
}
func (s *stubJobStore) CountJobs(context.Context, string, string) (int, error) {
	return len(s.jobs), nil
}

func guardedRouter(tokens *auth.TokenService, store handler.JobStore) *gin.Engine {
	jobHandler := handler.NewJobHandler(testLogger(), store)
	guard := RequireAuth(tokens, "token", testLogger())

	r := gin.New()
	r.GET("/jobs/:email", guard, jobHandler.ListJobsByOwner)
	return r
}

func getWithCookie(r http.Handler, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	store := &stubJobStore{jobs: []model.Job{
		{JobID: uuid.New().String(), Title: "Mine", BuyerEmail: "owner@x.com"},
		{JobID: uuid.New().String(), Title: "Theirs", BuyerEmail: "other@x.com"},
	}}
	r := guardedRouter(tokens, store)

	t.Run("no cookie", func(t *testing.T) {
		rec := getWithCookie(r, "/jobs/owner@x.com", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"unauthorized access"}`, rec.Body.String())
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := getWithCookie(r, "/jobs/owner@x.com", "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		forged, err := auth.NewTokenService("other-secret", time.Hour).Issue("owner@x.com")
		require.NoError(t, err)
		rec := getWithCookie(r, "/jobs/owner@x.com", forged)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("identity does not match path", func(t *testing.T) {
		token, err := tokens.Issue("other@x.com")
		require.NoError(t, err)
		rec := getWithCookie(r, "/jobs/owner@x.com", token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"message":"forbidden access"}`, rec.Body.String())
	})

	t.Run("matching identity sees only own jobs", func(t *testing.T) {
		token, err := tokens.Issue("owner@x.com")
		require.NoError(t, err)
		rec := getWithCookie(r, "/jobs/owner@x.com", token)
		require.Equal(t, http.StatusOK, rec.Code)

		var jobs []dto.JobDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
		require.Len(t, jobs, 1)
		assert.Equal(t, "Mine", jobs[0].Title)
	})
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	t.Run("echoes origin with credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://hirenest.example")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://hirenest.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://hirenest.example")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestTimeoutMiddleware(t *testing.T) {
	t.Run("attaches deadline", func(t *testing.T) {
		r := gin.New()
		r.Use(TimeoutMiddleware(30 * time.Second))

		var hasDeadline bool
		r.GET("/ping", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, hasDeadline)
	})

	t.Run("zero timeout leaves context unbounded", func(t *testing.T) {
		r := gin.New()
		r.Use(TimeoutMiddleware(0))

		var hasDeadline bool
		r.GET("/ping", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.False(t, hasDeadline)
	})
}
