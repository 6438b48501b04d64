package workspace

import (
	"context"

	"github.com/Joseda-hg/taskify/internal/local"
	"github.com/Joseda-hg/taskify/internal/model"
)

// ctx is only checked before each local storage call.

type localTasks struct {
	store *local.TaskStore
}

func (l *localTasks) List(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.store.List()
}

func (l *localTasks) Get(ctx context.Context, id string) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}
	task, err := l.store.Get(id)
	return task, translate(err)
}

func (l *localTasks) Create(ctx context.Context, input model.TaskInput) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}
	return l.store.Create(input)
}

func (l *localTasks) Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}
	task, err := l.store.Update(id, patch)
	return task, translate(err)
}

func (l *localTasks) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translate(l.store.Delete(id))
}

func (l *localTasks) ListByStatus(ctx context.Context, status model.Status) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.store.ListByStatus(status)
}

func (l *localTasks) ListByCategory(ctx context.Context, category string) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.store.ListByCategory(category)
}

func (l *localTasks) Search(ctx context.Context, term string) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.store.Search(term)
}

func (l *localTasks) Stats(ctx context.Context) (model.TaskStats, error) {
	if err := ctx.Err(); err != nil {
		return model.TaskStats{}, err
	}
	return l.store.Stats()
}

type localNotes struct {
	store *local.NoteStore
}

func (l *localNotes) List(ctx context.Context) ([]model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.store.List()
}

func (l *localNotes) Get(ctx context.Context, id string) (model.Note, error) {
	if err := ctx.Err(); err != nil {
		return model.Note{}, err
	}
	note, err := l.store.Get(id)
	return note, translate(err)
}

func (l *localNotes) Create(ctx context.Context, input model.NoteInput) (model.Note, error) {
	if err := ctx.Err(); err != nil {
		return model.Note{}, err
	}
	return l.store.Create(input)
}

func (l *localNotes) Update(ctx context.Context, id string, patch model.NotePatch) (model.Note, error) {
	if err := ctx.Err(); err != nil {
		return model.Note{}, err
	}
	note, err := l.store.Update(id, patch)
	return note, translate(err)
}

func (l *localNotes) TogglePin(ctx context.Context, id string) (model.Note, error) {
	if err := ctx.Err(); err != nil {
		return model.Note{}, err
	}
	note, err := l.store.TogglePin(id)
	return note, translate(err)
}

func (l *localNotes) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translate(l.store.Delete(id))
}

func (l *localNotes) ListByTag(ctx context.Context, tag string) ([]model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.store.ListByTag(tag)
}

func (l *localNotes) Search(ctx context.Context, term string) ([]model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.store.Search(term)
}
