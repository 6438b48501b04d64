// Package workspace binds task and note stores to the active mode: the
// signed-in user's rows in the database, or the guest records in local
// storage. Callers never pass an owner after construction.
package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/Joseda-hg/taskify/internal/db"
	"github.com/Joseda-hg/taskify/internal/local"
	"github.com/Joseda-hg/taskify/internal/model"
)

type Mode string

const (
	ModeGuest Mode = "guest"
	ModeUser  Mode = "user"
)

// ErrNotFound is returned for missing records and for records owned by
// someone else, whichever backend is active.
var ErrNotFound = errors.New("not found")

type Tasks interface {
	List(ctx context.Context) ([]model.Task, error)
	Get(ctx context.Context, id string) (model.Task, error)
	Create(ctx context.Context, input model.TaskInput) (model.Task, error)
	Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error)
	Delete(ctx context.Context, id string) error
	ListByStatus(ctx context.Context, status model.Status) ([]model.Task, error)
	ListByCategory(ctx context.Context, category string) ([]model.Task, error)
	Search(ctx context.Context, term string) ([]model.Task, error)
	Stats(ctx context.Context) (model.TaskStats, error)
}

type Notes interface {
	List(ctx context.Context) ([]model.Note, error)
	Get(ctx context.Context, id string) (model.Note, error)
	Create(ctx context.Context, input model.NoteInput) (model.Note, error)
	Update(ctx context.Context, id string, patch model.NotePatch) (model.Note, error)
	TogglePin(ctx context.Context, id string) (model.Note, error)
	Delete(ctx context.Context, id string) error
	ListByTag(ctx context.Context, tag string) ([]model.Note, error)
	Search(ctx context.Context, term string) ([]model.Note, error)
}

type Workspace struct {
	Mode  Mode
	Owner string
	Tasks Tasks
	Notes Notes
}

// Remote scopes the database store to userID.
func Remote(store *db.Store, userID string) (*Workspace, error) {
	if userID == "" {
		return nil, fmt.Errorf("remote workspace: %w: user id is required", model.ErrInvalid)
	}
	return &Workspace{
		Mode:  ModeUser,
		Owner: userID,
		Tasks: &remoteTasks{store: store, owner: userID},
		Notes: &remoteNotes{store: store, owner: userID},
	}, nil
}

// Local serves guest records from storage.
func Local(storage local.Storage, opts ...local.Option) *Workspace {
	return &Workspace{
		Mode:  ModeGuest,
		Owner: model.GuestOwner,
		Tasks: &localTasks{store: local.NewTaskStore(storage, opts...)},
		Notes: &localNotes{store: local.NewNoteStore(storage, opts...)},
	}
}

func (w *Workspace) SearchTasks(ctx context.Context, term string) ([]model.Task, error) {
	return w.Tasks.Search(ctx, term)
}

func (w *Workspace) SearchNotes(ctx context.Context, term string) ([]model.Note, error) {
	return w.Notes.Search(ctx, term)
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, db.ErrNotFound) || errors.Is(err, local.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
