package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Joseda-hg/taskify/internal/db"
	"github.com/Joseda-hg/taskify/internal/logger"
	"github.com/Joseda-hg/taskify/internal/metrics"
	"github.com/Joseda-hg/taskify/internal/model"
	"github.com/Joseda-hg/taskify/internal/search"
	"github.com/Joseda-hg/taskify/internal/stats"
	"github.com/Joseda-hg/taskify/internal/workspace"
)

// UserHeader carries the signed-in user's ID on every API request.
const UserHeader = "X-User-ID"

const maxBodyBytes = 1 << 20

var errUnauthorized = errors.New("Unauthorized")

type Server struct {
	resolve func(r *http.Request) (*workspace.Workspace, error)
	log     *logger.Logger
	metrics *metrics.Metrics
	limit   int
	now     func() time.Time
}

type Option func(*Server)

func WithLogger(log *logger.Logger) Option {
	return func(s *Server) { s.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

func WithSearchLimit(limit int) Option {
	return func(s *Server) { s.limit = limit }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer serves the database store, scoping every request to the user
// named in the X-User-ID header.
func NewServer(store *db.Store, opts ...Option) *Server {
	s := newServer(opts)
	s.resolve = func(r *http.Request) (*workspace.Workspace, error) {
		userID := strings.TrimSpace(r.Header.Get(UserHeader))
		if userID == "" {
			return nil, errUnauthorized
		}
		return workspace.Remote(store, userID)
	}
	return s
}

// NewGuestServer serves a single guest workspace; the user header is ignored.
func NewGuestServer(ws *workspace.Workspace, opts ...Option) *Server {
	s := newServer(opts)
	s.resolve = func(*http.Request) (*workspace.Workspace, error) {
		return ws, nil
	}
	return s
}

func newServer(opts []Option) *Server {
	s := &Server{limit: search.DefaultLimit, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	return s
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace)

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "GET /api/tasks", s.listTasks)
	s.handle(mux, "POST /api/tasks", s.createTask)
	s.handle(mux, "GET /api/tasks/stats", s.taskStats)
	s.handle(mux, "GET /api/tasks/{id}", s.getTask)
	s.handle(mux, "PUT /api/tasks/{id}", s.updateTask)
	s.handle(mux, "DELETE /api/tasks/{id}", s.deleteTask)

	s.handle(mux, "GET /api/notes", s.listNotes)
	s.handle(mux, "POST /api/notes", s.createNote)
	s.handle(mux, "GET /api/notes/{id}", s.getNote)
	s.handle(mux, "PUT /api/notes/{id}", s.updateNote)
	s.handle(mux, "DELETE /api/notes/{id}", s.deleteNote)
	s.handle(mux, "POST /api/notes/{id}/pin", s.togglePin)

	s.handle(mux, "GET /api/analytics", s.analytics)
	s.handle(mux, "GET /api/search", s.search)

	mux.Handle("GET /metrics", s.metrics.Handler())
	return mux
}

func (s *Server) handle(mux *http.ServeMux, pattern string, h handlerFunc) {
	route := pattern[strings.Index(pattern, " ")+1:]
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		ws, err := s.resolve(r)
		if err != nil {
			s.fail(rec, r, err)
		} else {
			h(rec, r, ws)
		}

		entry := s.log.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  rec.status,
			"elapsed": time.Since(start),
		})
		if ws != nil {
			entry = entry.WithField("user_id", ws.Owner)
		}
		entry.Debug("request")
	})
	mux.Handle(pattern, s.metrics.Middleware(route, handler))
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	var (
		tasks []model.Task
		err   error
	)
	query := r.URL.Query()
	switch {
	case query.Get("status") != "":
		tasks, err = ws.Tasks.ListByStatus(r.Context(), model.Status(query.Get("status")))
	case query.Get("category") != "":
		tasks, err = ws.Tasks.ListByCategory(r.Context(), query.Get("category"))
	case strings.TrimSpace(query.Get("search")) != "":
		tasks, err = ws.Tasks.Search(r.Context(), strings.TrimSpace(query.Get("search")))
	default:
		tasks, err = ws.Tasks.List(r.Context())
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(tasks))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	var input model.TaskInput
	if !s.decode(w, r, &input) {
		return
	}
	task, err := ws.Tasks.Create(r.Context(), input)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) taskStats(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	counts, err := ws.Tasks.Stats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	task, err := ws.Tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	var patch model.TaskPatch
	if !s.decode(w, r, &patch) {
		return
	}
	task, err := ws.Tasks.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	if err := ws.Tasks.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	var (
		notes []model.Note
		err   error
	)
	query := r.URL.Query()
	switch {
	case strings.TrimSpace(query.Get("search")) != "":
		notes, err = ws.Notes.Search(r.Context(), strings.TrimSpace(query.Get("search")))
	case query.Get("tag") != "":
		notes, err = ws.Notes.ListByTag(r.Context(), query.Get("tag"))
	default:
		notes, err = ws.Notes.List(r.Context())
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(notes))
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	var input model.NoteInput
	if !s.decode(w, r, &input) {
		return
	}
	note, err := ws.Notes.Create(r.Context(), input)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) getNote(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	note, err := ws.Notes.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	var patch model.NotePatch
	if !s.decode(w, r, &patch) {
		return
	}
	note, err := ws.Notes.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	if err := ws.Notes.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) togglePin(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	note, err := ws.Notes.TogglePin(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) analytics(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	days := stats.DefaultDays
	if value := r.URL.Query().Get("days"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 || parsed > 366 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("days must be between 1 and 366"))
			return
		}
		days = parsed
	}

	tasks, err := ws.Tasks.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	payload := struct {
		Summary      stats.Summary `json:"summary"`
		Productivity []stats.Day   `json:"productivity"`
	}{
		Summary:      stats.Summarize(tasks),
		Productivity: stats.Productivity(tasks, s.now(), days),
	}
	writeJSON(w, http.StatusOK, payload)
}

type searchResponse struct {
	Query   string          `json:"query"`
	Status  search.Status   `json:"status"`
	Results []search.Result `json:"results"`
	Error   string          `json:"error,omitempty"`
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace) {
	engine := search.NewEngine(ws,
		search.WithLimit(s.limit),
		search.WithLogger(s.log.WithField("user_id", ws.Owner)),
		search.WithObserver(s.metrics),
	)
	outcome := engine.Search(r.Context(), r.URL.Query().Get("q"))

	resp := searchResponse{
		Query:   outcome.Query,
		Status:  outcome.Status,
		Results: nonNil(outcome.Results),
	}
	status := http.StatusOK
	if outcome.Status == search.StatusFailed {
		status = http.StatusBadGateway
		resp.Error = "search failed"
	}
	writeJSON(w, status, resp)
}

// decode reads a JSON body into dst, answering 400 itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errUnauthorized):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, model.ErrInvalid):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, workspace.ErrNotFound):
		writeError(w, http.StatusNotFound, workspace.ErrNotFound)
	default:
		s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
