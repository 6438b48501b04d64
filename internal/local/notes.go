package local

import (
	"sort"
	"sync"
	"time"

	"github.com/Joseda-hg/taskify/internal/model"
)

// NoteStore keeps guest notes under NotesKey.
type NoteStore struct {
	storage Storage
	mu      sync.Mutex
	now     func() time.Time
	newID   func() string
}

func NewNoteStore(storage Storage, opts ...Option) *NoteStore {
	o := buildOptions(opts)
	return &NoteStore{storage: storage, now: o.now, newID: o.newID}
}

// List returns pinned notes first, then the most recently updated.
func (s *NoteStore) List() ([]model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := loadArray[model.Note](s.storage, NotesKey)
	if err != nil {
		return nil, err
	}
	sortNotes(notes)
	return notes, nil
}

func (s *NoteStore) Get(id string) (model.Note, error) {
	notes, err := s.List()
	if err != nil {
		return model.Note{}, err
	}
	for _, note := range notes {
		if note.ID == id {
			return note, nil
		}
	}
	return model.Note{}, ErrNotFound
}

func (s *NoteStore) Create(input model.NoteInput) (model.Note, error) {
	if err := model.Validate(input); err != nil {
		return model.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := loadArray[model.Note](s.storage, NotesKey)
	if err != nil {
		return model.Note{}, err
	}

	note := model.NewNote(s.newID(), model.GuestOwner, input, s.now().UTC())
	notes = append([]model.Note{note}, notes...)
	if err := saveArray(s.storage, NotesKey, notes); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

func (s *NoteStore) Update(id string, patch model.NotePatch) (model.Note, error) {
	if err := model.ValidateNotePatch(patch); err != nil {
		return model.Note{}, err
	}
	return s.mutate(id, patch.Apply)
}

func (s *NoteStore) TogglePin(id string) (model.Note, error) {
	return s.mutate(id, func(note model.Note) model.Note {
		note.IsPinned = !note.IsPinned
		return note
	})
}

func (s *NoteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := loadArray[model.Note](s.storage, NotesKey)
	if err != nil {
		return err
	}

	kept := make([]model.Note, 0, len(notes))
	for _, note := range notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	if len(kept) == len(notes) {
		return ErrNotFound
	}
	return saveArray(s.storage, NotesKey, kept)
}

func (s *NoteStore) ListByTag(tag string) ([]model.Note, error) {
	return s.filter(func(note model.Note) bool { return note.HasTag(tag) })
}

// Search matches term case-insensitively against title, content and tags.
func (s *NoteStore) Search(term string) ([]model.Note, error) {
	return s.filter(func(note model.Note) bool {
		return note.Matches(term)
	})
}

func (s *NoteStore) mutate(id string, change func(model.Note) model.Note) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := loadArray[model.Note](s.storage, NotesKey)
	if err != nil {
		return model.Note{}, err
	}

	for i, note := range notes {
		if note.ID != id {
			continue
		}
		updated := change(note)
		updated.UpdatedAt = model.Touch(note.UpdatedAt, s.now().UTC())
		notes[i] = updated
		if err := saveArray(s.storage, NotesKey, notes); err != nil {
			return model.Note{}, err
		}
		return updated, nil
	}
	return model.Note{}, ErrNotFound
}

func (s *NoteStore) filter(keep func(model.Note) bool) ([]model.Note, error) {
	notes, err := s.List()
	if err != nil {
		return nil, err
	}
	matched := make([]model.Note, 0, len(notes))
	for _, note := range notes {
		if keep(note) {
			matched = append(matched, note)
		}
	}
	return matched, nil
}

func sortNotes(notes []model.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].IsPinned != notes[j].IsPinned {
			return notes[i].IsPinned
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}
