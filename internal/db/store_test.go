package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Joseda-hg/taskify/internal/model"
)

func TestCreateTaskAssignsIDAndTimestamps(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	description := "Add coverage"
	created, err := store.CreateTask(context.Background(), "alice", model.TaskInput{
		Title:       "Write tests",
		Description: &description,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected task ID to be set")
	}
	if created.Status != model.StatusPending {
		t.Fatalf("expected status %q, got %q", model.StatusPending, created.Status)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected created_at == updated_at on insert")
	}

	reloaded, err := store.GetTask(context.Background(), "alice", created.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if reloaded.Body() != "Add coverage" {
		t.Fatalf("expected description to round-trip, got %q", reloaded.Body())
	}
	if !reloaded.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected created_at %v, got %v", created.CreatedAt, reloaded.CreatedAt)
	}
}

func TestCreateRejectsMissingOrBlankTitle(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := store.CreateTask(ctx, "alice", model.TaskInput{Title: title}); !errors.Is(err, model.ErrInvalid) {
			t.Fatalf("task title %q: expected ErrInvalid, got %v", title, err)
		}
		if _, err := store.CreateNote(ctx, "alice", model.NoteInput{Title: title, Content: "body"}); !errors.Is(err, model.ErrInvalid) {
			t.Fatalf("note title %q: expected ErrInvalid, got %v", title, err)
		}
	}

	tasks, err := store.ListTasks(ctx, "alice")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	notes, err := store.ListNotes(ctx, "alice")
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(tasks) != 0 || len(notes) != 0 {
		t.Fatalf("expected nothing stored, got %d tasks and %d notes", len(tasks), len(notes))
	}
}

func TestUpdateTaskChangesOnlySuppliedFields(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	category := "work"
	high := model.PriorityHigh
	created, err := store.CreateTask(context.Background(), "alice", model.TaskInput{
		Title:    "Quarterly plan",
		Category: &category,
		Priority: &high,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	status := model.StatusCompleted
	updated, err := store.UpdateTask(context.Background(), "alice", created.ID, model.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Status != model.StatusCompleted {
		t.Fatalf("expected completed, got %q", updated.Status)
	}
	if updated.Title != "Quarterly plan" || updated.Category == nil || *updated.Category != "work" {
		t.Fatalf("expected untouched fields to be kept, got %+v", updated)
	}
	if updated.Priority == nil || *updated.Priority != model.PriorityHigh {
		t.Fatalf("expected priority to be kept")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updated_at to advance: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected created_at to stay fixed")
	}

	empty := ""
	cleared, err := store.UpdateTask(context.Background(), "alice", created.ID, model.TaskPatch{Category: &empty})
	if err != nil {
		t.Fatalf("clear category: %v", err)
	}
	if cleared.Category != nil {
		t.Fatalf("expected category to be cleared, got %q", *cleared.Category)
	}
}

func TestTasksAreOwnerScoped(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	created, err := store.CreateTask(context.Background(), "alice", model.TaskInput{Title: "Private"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := store.GetTask(context.Background(), "bob", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if err := store.DeleteTask(context.Background(), "bob", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting foreign task, got %v", err)
	}
	title := "Hijacked"
	if _, err := store.UpdateTask(context.Background(), "bob", created.ID, model.TaskPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating foreign task, got %v", err)
	}

	results, err := store.SearchTasks(context.Background(), "bob", "private")
	if err != nil {
		t.Fatalf("search tasks: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results for foreign owner, got %d", len(results))
	}

	if err := store.DeleteTask(context.Background(), "alice", created.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := store.GetTask(context.Background(), "alice", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSearchTasksIsCaseInsensitiveAndLiteral(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	description := "Ship 100% of the plan"
	for _, input := range []model.TaskInput{
		{Title: "Plan the sprint"},
		{Title: "Review", Description: &description},
		{Title: "Groceries"},
		{Title: "snake_case rename"},
	} {
		if _, err := store.CreateTask(context.Background(), "alice", input); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	results, err := store.SearchTasks(context.Background(), "alice", "PLAN")
	if err != nil {
		t.Fatalf("search tasks: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches for PLAN, got %d", len(results))
	}

	percent, err := store.SearchTasks(context.Background(), "alice", "%")
	if err != nil {
		t.Fatalf("search tasks: %v", err)
	}
	if len(percent) != 1 || percent[0].Title != "Review" {
		t.Fatalf("expected %% to match literally, got %+v", percent)
	}

	underscore, err := store.SearchTasks(context.Background(), "alice", "e_c")
	if err != nil {
		t.Fatalf("search tasks: %v", err)
	}
	if len(underscore) != 1 || underscore[0].Title != "snake_case rename" {
		t.Fatalf("expected _ to match literally, got %+v", underscore)
	}
}

func TestListTasksNewestFirstAndStats(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	statuses := []model.Status{model.StatusPending, model.StatusInProgress, model.StatusCompleted, model.StatusCompleted}
	for i, status := range statuses {
		if _, err := store.CreateTask(context.Background(), "alice", model.TaskInput{
			Title:  fmt.Sprintf("task %d", i),
			Status: status,
		}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	tasks, err := store.ListTasks(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 4 || tasks[0].Title != "task 3" || tasks[3].Title != "task 0" {
		t.Fatalf("expected newest first, got %+v", tasks)
	}

	completed, err := store.ListTasksByStatus(context.Background(), "alice", model.StatusCompleted)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(completed) != 2 {
		t.Fatalf("expected 2 completed tasks, got %d", len(completed))
	}

	stats, err := store.TaskStats(context.Background(), "alice")
	if err != nil {
		t.Fatalf("task stats: %v", err)
	}
	want := model.TaskStats{Total: 4, Pending: 1, InProgress: 1, Completed: 2}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}

func TestNotesPinTagsAndSearch(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	first, err := store.CreateNote(context.Background(), "alice", model.NoteInput{
		Title:   "Recipes",
		Content: "Pasta and soup",
		Tags:    []string{"Cooking", "home", "home"},
	})
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if len(first.Tags) != 2 {
		t.Fatalf("expected duplicate tags to collapse, got %v", first.Tags)
	}
	second, err := store.CreateNote(context.Background(), "alice", model.NoteInput{
		Title:   "Meeting",
		Content: "Discuss the roadmap",
		Tags:    []string{"work"},
	})
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	notes, err := store.ListNotes(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if notes[0].ID != second.ID {
		t.Fatalf("expected most recently updated note first")
	}

	pinned, err := store.TogglePin(context.Background(), "alice", first.ID)
	if err != nil {
		t.Fatalf("toggle pin: %v", err)
	}
	if !pinned.IsPinned {
		t.Fatalf("expected note to be pinned")
	}

	notes, err = store.ListNotes(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if notes[0].ID != first.ID {
		t.Fatalf("expected pinned note first")
	}

	byTag, err := store.ListNotesByTag(context.Background(), "alice", "home")
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(byTag) != 1 || byTag[0].ID != first.ID {
		t.Fatalf("expected tag filter to return recipes, got %+v", byTag)
	}

	byTagSearch, err := store.SearchNotes(context.Background(), "alice", "cook")
	if err != nil {
		t.Fatalf("search notes: %v", err)
	}
	if len(byTagSearch) != 1 || byTagSearch[0].ID != first.ID {
		t.Fatalf("expected tag text to be searchable, got %+v", byTagSearch)
	}

	content, err := store.SearchNotes(context.Background(), "alice", "ROADMAP")
	if err != nil {
		t.Fatalf("search notes: %v", err)
	}
	if len(content) != 1 || content[0].ID != second.ID {
		t.Fatalf("expected content match, got %+v", content)
	}
}

func newTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	db, err := Open(DialectSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	return NewStore(db, WithClock(clock)), func() {
		_ = db.Close()
	}
}
