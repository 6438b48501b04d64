package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Joseda-hg/taskify/internal/model"
)

const noteColumns = "id, user_id, title, content, tags, is_pinned, created_at, updated_at"

func (s *Store) CreateNote(ctx context.Context, owner string, input model.NoteInput) (model.Note, error) {
	if err := model.Validate(input); err != nil {
		return model.Note{}, err
	}

	note := model.NewNote(s.newID(), owner, input, s.timestamp())
	tags, err := encodeTags(note.Tags)
	if err != nil {
		return model.Note{}, err
	}

	_, err = s.DB.ExecContext(ctx,
		"INSERT INTO notes ("+noteColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		note.ID, note.UserID, note.Title, note.Content, tags, note.IsPinned, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("insert note: %w", err)
	}
	return note, nil
}

func (s *Store) GetNote(ctx context.Context, owner, id string) (model.Note, error) {
	row := s.DB.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id = ? AND user_id = ?", id, owner)
	note, err := scanNote(row)
	if err != nil {
		return model.Note{}, notFound(err)
	}
	return note, nil
}

func (s *Store) UpdateNote(ctx context.Context, owner, id string, patch model.NotePatch) (model.Note, error) {
	if err := model.ValidateNotePatch(patch); err != nil {
		return model.Note{}, err
	}

	before, err := s.GetNote(ctx, owner, id)
	if err != nil {
		return model.Note{}, err
	}

	after := patch.Apply(before)
	after.UpdatedAt = model.Touch(before.UpdatedAt, s.timestamp())
	if err := s.writeNote(ctx, owner, after); err != nil {
		return model.Note{}, err
	}
	return after, nil
}

func (s *Store) TogglePin(ctx context.Context, owner, id string) (model.Note, error) {
	note, err := s.GetNote(ctx, owner, id)
	if err != nil {
		return model.Note{}, err
	}
	pinned := !note.IsPinned
	return s.UpdateNote(ctx, owner, id, model.NotePatch{IsPinned: &pinned})
}

func (s *Store) DeleteNote(ctx context.Context, owner, id string) error {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM notes WHERE id = ? AND user_id = ?", id, owner)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return checkAffected(result)
}

// ListNotes orders pinned notes first, then the most recently updated.
func (s *Store) ListNotes(ctx context.Context, owner string) ([]model.Note, error) {
	return s.queryNotes(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE user_id = ? ORDER BY is_pinned DESC, updated_at DESC", owner)
}

func (s *Store) ListNotesByTag(ctx context.Context, owner, tag string) ([]model.Note, error) {
	encoded, err := encodeTags([]string{tag})
	if err != nil {
		return nil, err
	}
	// Narrow with LIKE on the encoded element, then keep exact matches only.
	candidates, err := s.queryNotes(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE user_id = ? AND tags LIKE ? ESCAPE '"+likeEscape+"' ORDER BY updated_at DESC",
		owner, "%"+escapeLike(encoded[1:len(encoded)-1])+"%")
	if err != nil {
		return nil, err
	}

	notes := make([]model.Note, 0, len(candidates))
	for _, note := range candidates {
		if note.HasTag(tag) {
			notes = append(notes, note)
		}
	}
	return notes, nil
}

// SearchNotes matches term against title, content and tags as a literal,
// case-insensitive substring. Tags are stored JSON-encoded, so the LIKE only
// narrows the rows and each tag is checked on its own afterwards.
func (s *Store) SearchNotes(ctx context.Context, owner, term string) ([]model.Note, error) {
	pattern := likePattern(term)
	candidates, err := s.queryNotes(ctx,
		`SELECT `+noteColumns+` FROM notes
		WHERE user_id = ?
		AND (LOWER(title) LIKE ? ESCAPE '`+likeEscape+`'
			OR LOWER(content) LIKE ? ESCAPE '`+likeEscape+`'
			OR LOWER(tags) LIKE ? ESCAPE '`+likeEscape+`')
		ORDER BY updated_at DESC`,
		owner, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}

	notes := make([]model.Note, 0, len(candidates))
	for _, note := range candidates {
		if note.Matches(term) {
			notes = append(notes, note)
		}
	}
	return notes, nil
}

func (s *Store) writeNote(ctx context.Context, owner string, note model.Note) error {
	tags, err := encodeTags(note.Tags)
	if err != nil {
		return err
	}
	result, err := s.DB.ExecContext(ctx,
		"UPDATE notes SET title = ?, content = ?, tags = ?, is_pinned = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		note.Title, note.Content, tags, note.IsPinned, note.UpdatedAt, note.ID, owner,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return checkAffected(result)
}

func (s *Store) queryNotes(ctx context.Context, query string, args ...any) ([]model.Note, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func scanNote(scanner rowScanner) (model.Note, error) {
	var (
		note      model.Note
		tags      string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := scanner.Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content, &tags, &note.IsPinned, &createdAt, &updatedAt,
	); err != nil {
		return model.Note{}, err
	}

	decoded, err := decodeTags(tags)
	if err != nil {
		return model.Note{}, err
	}
	note.Tags = decoded
	note.CreatedAt = createdAt
	note.UpdatedAt = updatedAt
	return note, nil
}
