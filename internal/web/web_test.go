package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joseda-hg/taskify/internal/db"
	"github.com/Joseda-hg/taskify/internal/local"
	"github.com/Joseda-hg/taskify/internal/model"
	"github.com/Joseda-hg/taskify/internal/search"
	"github.com/Joseda-hg/taskify/internal/workspace"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	conn, err := db.Open(db.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	now := func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return NewServer(db.NewStore(conn), WithClock(now)).Handler()
}

func do(t *testing.T, handler http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestMissingUserIsUnauthorized(t *testing.T) {
	handler := newTestServer(t)

	rec := do(t, handler, http.MethodGet, "/api/tasks", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestTaskLifecycle(t *testing.T) {
	handler := newTestServer(t)

	rec := do(t, handler, http.MethodPost, "/api/tasks", "alice", `{"title":"Write report","priority":"high","category":"work"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[model.Task](t, rec)
	assert.Equal(t, "alice", created.UserID)
	assert.Equal(t, model.StatusPending, created.Status)

	rec = do(t, handler, http.MethodPut, "/api/tasks/"+created.ID, "alice", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[model.Task](t, rec)
	assert.Equal(t, model.StatusCompleted, updated.Status)
	assert.Equal(t, "Write report", updated.Title)

	rec = do(t, handler, http.MethodGet, "/api/tasks/stats", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":1,"pending":0,"inProgress":0,"completed":1}`, rec.Body.String())

	rec = do(t, handler, http.MethodGet, "/api/tasks?status=completed", "alice", "")
	assert.Len(t, decodeBody[[]model.Task](t, rec), 1)

	rec = do(t, handler, http.MethodDelete, "/api/tasks/"+created.ID, "alice", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/tasks/"+created.ID, "alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForeignRecordsAreNotFound(t *testing.T) {
	handler := newTestServer(t)

	rec := do(t, handler, http.MethodPost, "/api/notes", "alice", `{"title":"Diary","content":"private"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	note := decodeBody[model.Note](t, rec)

	rec = do(t, handler, http.MethodGet, "/api/notes/"+note.ID, "bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, handler, http.MethodDelete, "/api/notes/"+note.ID, "bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/notes", "bob", "")
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestValidationErrors(t *testing.T) {
	handler := newTestServer(t)

	rec := do(t, handler, http.MethodPost, "/api/tasks", "alice", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title")

	rec = do(t, handler, http.MethodPost, "/api/tasks", "alice", `{"title":"x","priority":"urgent"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/notes", "alice", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotePinAndFilters(t *testing.T) {
	handler := newTestServer(t)

	rec := do(t, handler, http.MethodPost, "/api/notes", "alice", `{"title":"Recipes","content":"soup","tags":["food","home"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	recipes := decodeBody[model.Note](t, rec)
	rec = do(t, handler, http.MethodPost, "/api/notes", "alice", `{"title":"Standup","content":"blockers","tags":["work"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/notes/"+recipes.ID+"/pin", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[model.Note](t, rec).IsPinned)

	rec = do(t, handler, http.MethodGet, "/api/notes", "alice", "")
	notes := decodeBody[[]model.Note](t, rec)
	require.Len(t, notes, 2)
	assert.Equal(t, recipes.ID, notes[0].ID)

	rec = do(t, handler, http.MethodGet, "/api/notes?tag=work", "alice", "")
	notes = decodeBody[[]model.Note](t, rec)
	require.Len(t, notes, 1)
	assert.Equal(t, "Standup", notes[0].Title)

	rec = do(t, handler, http.MethodGet, "/api/notes?search=SOUP", "alice", "")
	notes = decodeBody[[]model.Note](t, rec)
	require.Len(t, notes, 1)
	assert.Equal(t, recipes.ID, notes[0].ID)
}

func TestSearchEndpoint(t *testing.T) {
	handler := newTestServer(t)

	do(t, handler, http.MethodPost, "/api/tasks", "alice", `{"title":"plan"}`)
	do(t, handler, http.MethodPost, "/api/notes", "alice", `{"title":"Planning notes","content":"agenda"}`)

	rec := do(t, handler, http.MethodGet, "/api/search?q=plan", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[searchResponse](t, rec)
	assert.Equal(t, search.StatusOK, resp.Status)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, search.KindTask, resp.Results[0].Kind)
	assert.Equal(t, 120, resp.Results[0].Score)
	assert.Equal(t, search.KindNote, resp.Results[1].Kind)

	rec = do(t, handler, http.MethodGet, "/api/search?q=zebra", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody[searchResponse](t, rec)
	assert.Equal(t, search.StatusEmpty, resp.Status)
	assert.Empty(t, resp.Results)

	rec = do(t, handler, http.MethodGet, "/api/search?q=", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, search.StatusIdle, decodeBody[searchResponse](t, rec).Status)
}

type brokenStorage struct{}

func (brokenStorage) GetItem(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (brokenStorage) SetItem(string, string) error         { return errors.New("disk gone") }
func (brokenStorage) RemoveItem(string) error              { return errors.New("disk gone") }

func TestSearchFailureIsDistinctFromEmpty(t *testing.T) {
	handler := NewGuestServer(workspace.Local(brokenStorage{})).Handler()

	rec := do(t, handler, http.MethodGet, "/api/search?q=plan", "", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeBody[searchResponse](t, rec)
	assert.Equal(t, search.StatusFailed, resp.Status)
	assert.Empty(t, resp.Results)
	assert.NotEmpty(t, resp.Error)

	rec = do(t, handler, http.MethodGet, "/api/tasks", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk gone")
}

func TestGuestServerIgnoresUserHeader(t *testing.T) {
	handler := NewGuestServer(workspace.Local(local.NewMemoryStorage())).Handler()

	rec := do(t, handler, http.MethodPost, "/api/tasks", "", `{"title":"Local task"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.GuestOwner, decodeBody[model.Task](t, rec).UserID)
}

func TestAnalytics(t *testing.T) {
	handler := newTestServer(t)
	do(t, handler, http.MethodPost, "/api/tasks", "alice", `{"title":"a","status":"completed"}`)
	do(t, handler, http.MethodPost, "/api/tasks", "alice", `{"title":"b"}`)

	rec := do(t, handler, http.MethodGet, "/api/analytics", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Summary struct {
			Total          int `json:"total"`
			CompletionRate int `json:"completionRate"`
		} `json:"summary"`
		Productivity []json.RawMessage `json:"productivity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 2, payload.Summary.Total)
	assert.Equal(t, 50, payload.Summary.CompletionRate)
	assert.Len(t, payload.Productivity, 7)

	rec = do(t, handler, http.MethodGet, "/api/analytics?days=0", "alice", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestServer(t)
	do(t, handler, http.MethodGet, "/api/tasks", "alice", "")

	rec := do(t, handler, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `taskify_http_requests_total{code="200",method="GET",route="/api/tasks"} 1`)
}
