package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joseda-hg/taskify/internal/model"
)

func testClock() func() time.Time {
	base := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	tick := 0
	return func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestTaskStoreCreatePrependsAndOwnsAsGuest(t *testing.T) {
	store := NewTaskStore(NewMemoryStorage(), WithClock(testClock()), WithIDGenerator(sequentialIDs("task")))

	first, err := store.Create(model.TaskInput{Title: "First"})
	require.NoError(t, err)
	second, err := store.Create(model.TaskInput{Title: "Second", Status: model.StatusInProgress})
	require.NoError(t, err)

	assert.Equal(t, model.GuestOwner, first.UserID)
	assert.Equal(t, model.StatusPending, first.Status)
	assert.Equal(t, model.StatusInProgress, second.Status)

	tasks, err := store.List()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)
}

func TestTaskStoreUpdateIsPartialAndAdvancesUpdatedAt(t *testing.T) {
	store := NewTaskStore(NewMemoryStorage(), WithClock(testClock()))

	description := "weekly"
	created, err := store.Create(model.TaskInput{Title: "Groceries", Description: &description})
	require.NoError(t, err)

	status := model.StatusCompleted
	updated, err := store.Update(created.ID, model.TaskPatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "Groceries", updated.Title)
	assert.Equal(t, "weekly", updated.Body())
	assert.Equal(t, model.StatusCompleted, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	_, err = store.Update("missing", model.TaskPatch{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskStoreDeleteAndStats(t *testing.T) {
	store := NewTaskStore(NewMemoryStorage())

	a, err := store.Create(model.TaskInput{Title: "a"})
	require.NoError(t, err)
	_, err = store.Create(model.TaskInput{Title: "b", Status: model.StatusCompleted})
	require.NoError(t, err)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, model.TaskStats{Total: 2, Pending: 1, Completed: 1}, stats)

	require.NoError(t, store.Delete(a.ID))
	assert.ErrorIs(t, store.Delete(a.ID), ErrNotFound)

	_, err = store.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskStoreSearchMatchesTitleAndDescription(t *testing.T) {
	store := NewTaskStore(NewMemoryStorage())

	description := "Plan the OFFSITE agenda"
	_, err := store.Create(model.TaskInput{Title: "Agenda", Description: &description})
	require.NoError(t, err)
	_, err = store.Create(model.TaskInput{Title: "Offsite booking"})
	require.NoError(t, err)
	_, err = store.Create(model.TaskInput{Title: "Unrelated"})
	require.NoError(t, err)

	results, err := store.Search("offsite")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	none, err := store.Search("%")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNoteStoreOrderingPinAndTags(t *testing.T) {
	store := NewNoteStore(NewMemoryStorage(), WithClock(testClock()))

	older, err := store.Create(model.NoteInput{Title: "Older", Content: "x", Tags: []string{"Home"}})
	require.NoError(t, err)
	newer, err := store.Create(model.NoteInput{Title: "Newer", Content: "y"})
	require.NoError(t, err)

	notes, err := store.List()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, newer.ID, notes[0].ID)

	pinned, err := store.TogglePin(older.ID)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)

	notes, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, older.ID, notes[0].ID)

	byTag, err := store.ListByTag("Home")
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, older.ID, byTag[0].ID)

	byTagText, err := store.Search("hom")
	require.NoError(t, err)
	require.Len(t, byTagText, 1)
	assert.Equal(t, older.ID, byTagText[0].ID)
}

func TestStoresRejectBlankTitles(t *testing.T) {
	storage := NewMemoryStorage()
	tasks := NewTaskStore(storage)
	notes := NewNoteStore(storage)

	_, err := tasks.Create(model.TaskInput{Title: "   "})
	assert.ErrorIs(t, err, model.ErrInvalid)
	_, err = notes.Create(model.NoteInput{Title: " \t ", Content: "body"})
	assert.ErrorIs(t, err, model.ErrInvalid)

	storedTasks, err := tasks.List()
	require.NoError(t, err)
	assert.Empty(t, storedTasks)
	storedNotes, err := notes.List()
	require.NoError(t, err)
	assert.Empty(t, storedNotes)
}

func TestNoteStoreRejectsMissingContent(t *testing.T) {
	store := NewNoteStore(NewMemoryStorage())
	_, err := store.Create(model.NoteInput{Title: "Only a title"})
	assert.ErrorIs(t, err, model.ErrInvalid)
}

func TestFileStoragePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	storage, err := NewFileStorage(dir)
	require.NoError(t, err)
	created, err := NewTaskStore(storage).Create(model.TaskInput{Title: "Persisted"})
	require.NoError(t, err)
	require.NoError(t, SetGuestMode(storage, true))

	reopened, err := NewFileStorage(dir)
	require.NoError(t, err)
	task, err := NewTaskStore(reopened).Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persisted", task.Title)

	guest, err := IsGuestMode(reopened)
	require.NoError(t, err)
	assert.True(t, guest)
}

func TestFileStorageSurfacesCorruption(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, StorageFile), []byte("{not json"), 0o644))

	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	_, err = NewTaskStore(storage).List()
	assert.Error(t, err)
}

func TestFileStorageWatchReportsExternalWrites(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := storage.Watch(ctx)
	require.NoError(t, err)

	other, err := NewFileStorage(dir)
	require.NoError(t, err)
	require.NoError(t, other.SetItem(NotesKey, "[]"))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}
