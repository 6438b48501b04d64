package local

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Joseda-hg/taskify/internal/model"
)

// TaskStore keeps guest tasks newest first under TasksKey.
type TaskStore struct {
	storage Storage
	mu      sync.Mutex
	now     func() time.Time
	newID   func() string
}

type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func NewTaskStore(storage Storage, opts ...Option) *TaskStore {
	o := buildOptions(opts)
	return &TaskStore{storage: storage, now: o.now, newID: o.newID}
}

func (s *TaskStore) List() ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadArray[model.Task](s.storage, TasksKey)
}

func (s *TaskStore) Get(id string) (model.Task, error) {
	tasks, err := s.List()
	if err != nil {
		return model.Task{}, err
	}
	for _, task := range tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return model.Task{}, ErrNotFound
}

func (s *TaskStore) Create(input model.TaskInput) (model.Task, error) {
	if err := model.Validate(input); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := loadArray[model.Task](s.storage, TasksKey)
	if err != nil {
		return model.Task{}, err
	}

	task := model.NewTask(s.newID(), model.GuestOwner, input, s.now().UTC())
	tasks = append([]model.Task{task}, tasks...)
	if err := saveArray(s.storage, TasksKey, tasks); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (s *TaskStore) Update(id string, patch model.TaskPatch) (model.Task, error) {
	if err := model.ValidateTaskPatch(patch); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := loadArray[model.Task](s.storage, TasksKey)
	if err != nil {
		return model.Task{}, err
	}

	for i, task := range tasks {
		if task.ID != id {
			continue
		}
		updated := patch.Apply(task)
		updated.UpdatedAt = model.Touch(task.UpdatedAt, s.now().UTC())
		tasks[i] = updated
		if err := saveArray(s.storage, TasksKey, tasks); err != nil {
			return model.Task{}, err
		}
		return updated, nil
	}
	return model.Task{}, ErrNotFound
}

func (s *TaskStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := loadArray[model.Task](s.storage, TasksKey)
	if err != nil {
		return err
	}

	kept := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	if len(kept) == len(tasks) {
		return ErrNotFound
	}
	return saveArray(s.storage, TasksKey, kept)
}

func (s *TaskStore) ListByStatus(status model.Status) ([]model.Task, error) {
	want := model.NormalizeStatus(status)
	return s.filter(func(task model.Task) bool { return task.Status == want })
}

func (s *TaskStore) ListByCategory(category string) ([]model.Task, error) {
	return s.filter(func(task model.Task) bool {
		return task.Category != nil && *task.Category == category
	})
}

// Search matches term case-insensitively against title and description.
func (s *TaskStore) Search(term string) ([]model.Task, error) {
	needle := strings.ToLower(term)
	return s.filter(func(task model.Task) bool {
		return strings.Contains(strings.ToLower(task.Title), needle) ||
			strings.Contains(strings.ToLower(task.Body()), needle)
	})
}

func (s *TaskStore) Stats() (model.TaskStats, error) {
	tasks, err := s.List()
	if err != nil {
		return model.TaskStats{}, err
	}
	return model.CountStatuses(tasks), nil
}

func (s *TaskStore) filter(keep func(model.Task) bool) ([]model.Task, error) {
	tasks, err := s.List()
	if err != nil {
		return nil, err
	}
	matched := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if keep(task) {
			matched = append(matched, task)
		}
	}
	return matched, nil
}
