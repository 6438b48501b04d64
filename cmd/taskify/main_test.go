package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Joseda-hg/taskify/internal/config"
	"github.com/Joseda-hg/taskify/internal/logger"
	"github.com/Joseda-hg/taskify/internal/model"
	"github.com/Joseda-hg/taskify/internal/workspace"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	require.NoError(t, cfg.Resolve(filepath.Join(dir, "config.json")))
	return cfg
}

func TestOpenSessionRemembersGuestMode(t *testing.T) {
	cfg := testConfig(t)

	_, err := openSession(cfg, logger.Discard())
	require.ErrorIs(t, err, errNoUser)

	cfg.Guest = true
	s, err := openSession(cfg, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, workspace.ModeGuest, s.ws.Mode)
	_, err = s.ws.Tasks.Create(context.Background(), model.TaskInput{Title: "kept locally"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	cfg.Guest = false
	s, err = openSession(cfg, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, workspace.ModeGuest, s.ws.Mode)
	tasks, err := s.ws.Tasks.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestOpenSessionUserModeForgetsGuest(t *testing.T) {
	cfg := testConfig(t)
	cfg.Guest = true
	_, err := openSession(cfg, logger.Discard())
	require.NoError(t, err)

	cfg.Guest = false
	cfg.UserID = "alice"
	s, err := openSession(cfg, logger.Discard())
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, workspace.ModeUser, s.ws.Mode)
	assert.Equal(t, "alice", s.ws.Owner)
	assert.NotNil(t, s.store)

	outcome := s.engine(0).Search(context.Background(), "anything")
	assert.Equal(t, "empty", string(outcome.Status))

	cfg.UserID = ""
	_, err = openSession(cfg, logger.Discard())
	require.ErrorIs(t, err, errNoUser)
}

func TestEncodeExport(t *testing.T) {
	due := model.NewDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	doc := exportDocument{
		Owner:      "alice",
		ExportedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		Tasks:      []model.Task{{ID: "t1", Title: "Plan", Status: model.StatusPending, DueDate: &due}},
	}

	data, err := encodeExport("yaml", doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "alice", decoded["owner"])
	assert.Empty(t, decoded["notes"])
	tasks, ok := decoded["tasks"].([]any)
	require.True(t, ok)
	require.Len(t, tasks, 1)
	assert.Contains(t, string(data), "2026-03-01")

	data, err = encodeExport("json", doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"notes": []`)

	_, err = encodeExport("xml", doc)
	assert.Error(t, err)
}

func TestSessionEngineLogsEachSearchOnce(t *testing.T) {
	cfg := testConfig(t)
	cfg.Guest = true
	log := logger.New("cli", logger.Options{Level: "debug", Output: io.Discard})
	hook := test.NewLocal(log.Logger)

	s, err := openSession(cfg, log)
	require.NoError(t, err)
	_, err = s.ws.Tasks.Create(context.Background(), model.TaskInput{Title: "plan week"})
	require.NoError(t, err)
	hook.Reset()

	outcome := s.engine(0).Search(context.Background(), "plan")
	require.Equal(t, "ok", string(outcome.Status))

	entries := hook.AllEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "ok", fmt.Sprint(entries[0].Data["status"]))
	assert.Equal(t, 1, entries[0].Data["results"])
}
