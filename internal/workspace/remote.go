package workspace

import (
	"context"

	"github.com/Joseda-hg/taskify/internal/db"
	"github.com/Joseda-hg/taskify/internal/model"
)

type remoteTasks struct {
	store *db.Store
	owner string
}

func (r *remoteTasks) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := r.store.ListTasks(ctx, r.owner)
	return tasks, translate(err)
}

func (r *remoteTasks) Get(ctx context.Context, id string) (model.Task, error) {
	task, err := r.store.GetTask(ctx, r.owner, id)
	return task, translate(err)
}

func (r *remoteTasks) Create(ctx context.Context, input model.TaskInput) (model.Task, error) {
	task, err := r.store.CreateTask(ctx, r.owner, input)
	return task, translate(err)
}

func (r *remoteTasks) Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	task, err := r.store.UpdateTask(ctx, r.owner, id, patch)
	return task, translate(err)
}

func (r *remoteTasks) Delete(ctx context.Context, id string) error {
	return translate(r.store.DeleteTask(ctx, r.owner, id))
}

func (r *remoteTasks) ListByStatus(ctx context.Context, status model.Status) ([]model.Task, error) {
	tasks, err := r.store.ListTasksByStatus(ctx, r.owner, status)
	return tasks, translate(err)
}

func (r *remoteTasks) ListByCategory(ctx context.Context, category string) ([]model.Task, error) {
	tasks, err := r.store.ListTasksByCategory(ctx, r.owner, category)
	return tasks, translate(err)
}

func (r *remoteTasks) Search(ctx context.Context, term string) ([]model.Task, error) {
	tasks, err := r.store.SearchTasks(ctx, r.owner, term)
	return tasks, translate(err)
}

func (r *remoteTasks) Stats(ctx context.Context) (model.TaskStats, error) {
	stats, err := r.store.TaskStats(ctx, r.owner)
	return stats, translate(err)
}

type remoteNotes struct {
	store *db.Store
	owner string
}

func (r *remoteNotes) List(ctx context.Context) ([]model.Note, error) {
	notes, err := r.store.ListNotes(ctx, r.owner)
	return notes, translate(err)
}

func (r *remoteNotes) Get(ctx context.Context, id string) (model.Note, error) {
	note, err := r.store.GetNote(ctx, r.owner, id)
	return note, translate(err)
}

func (r *remoteNotes) Create(ctx context.Context, input model.NoteInput) (model.Note, error) {
	note, err := r.store.CreateNote(ctx, r.owner, input)
	return note, translate(err)
}

func (r *remoteNotes) Update(ctx context.Context, id string, patch model.NotePatch) (model.Note, error) {
	note, err := r.store.UpdateNote(ctx, r.owner, id, patch)
	return note, translate(err)
}

func (r *remoteNotes) TogglePin(ctx context.Context, id string) (model.Note, error) {
	note, err := r.store.TogglePin(ctx, r.owner, id)
	return note, translate(err)
}

func (r *remoteNotes) Delete(ctx context.Context, id string) error {
	return translate(r.store.DeleteNote(ctx, r.owner, id))
}

func (r *remoteNotes) ListByTag(ctx context.Context, tag string) ([]model.Note, error) {
	notes, err := r.store.ListNotesByTag(ctx, r.owner, tag)
	return notes, translate(err)
}

func (r *remoteNotes) Search(ctx context.Context, term string) ([]model.Note, error) {
	notes, err := r.store.SearchNotes(ctx, r.owner, term)
	return notes, translate(err)
}
