// Package store handles SQLite persistence of the track library.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/lyritype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

var (
	// ErrTrackNotFound is returned when no track matches a reference.
	ErrTrackNotFound = errors.New("track not found")
	// ErrAmbiguousTrack is returned when a reference matches several tracks.
	ErrAmbiguousTrack = errors.New("track reference is ambiguous")
)

// minPrefixLen is the shortest ID prefix accepted as a track reference.
const minPrefixLen = 4

// Store wraps SQLite access for imported tracks.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS tracks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			source TEXT NOT NULL,
			imported_at TEXT NOT NULL,
			line_count INTEGER NOT NULL,
			duration REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS track_lines (
			track_id TEXT NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			text TEXT NOT NULL,
			start_s REAL NOT NULL,
			end_s REAL NOT NULL,
			PRIMARY KEY (track_id, idx)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tracks_imported_at ON tracks(imported_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertTrack stores a track and its lines, assigning a new ID and import time.
func (s *Store) InsertTrack(ctx context.Context, track model.Track) (string, error) {
	id := uuid.NewString()
	importedAt := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tracks (id, title, source, imported_at, line_count, duration)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		track.Title,
		track.Source,
		importedAt.Format(time.RFC3339Nano),
		len(track.Lines),
		track.Duration(),
	)
	if err != nil {
		return "", err
	}

	if len(track.Lines) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO track_lines (track_id, idx, text, start_s, end_s) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return "", err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, line := range track.Lines {
			if _, err = stmt.ExecContext(ctx, id, i, line.Text, line.Start, line.End); err != nil {
				return "", err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListTracks returns all tracks, oldest import first.
func (s *Store) ListTracks(ctx context.Context) ([]model.TrackInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, source, imported_at, line_count, duration
		 FROM tracks
		 ORDER BY imported_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var tracks []model.TrackInfo
	for rows.Next() {
		var info model.TrackInfo
		var importedAt string
		if err := rows.Scan(&info.ID, &info.Title, &info.Source, &importedAt, &info.LineCount, &info.Duration); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, importedAt)
		if err != nil {
			return nil, err
		}
		info.ImportedAt = parsed
		tracks = append(tracks, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

// ResolveID maps a reference to a track ID. A reference is a full ID, a
// unique ID prefix of at least four characters, or an exact title.
func (s *Store) ResolveID(ctx context.Context, ref string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM tracks WHERE id = ?`, ref).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	ids, err := s.queryIDs(ctx, `SELECT id FROM tracks WHERE title = ? COLLATE NOCASE`, ref)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 && len(ref) >= minPrefixLen {
		ids, err = s.queryIDs(ctx, `SELECT id FROM tracks WHERE substr(id, 1, ?) = ?`, len(ref), ref)
		if err != nil {
			return "", err
		}
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrTrackNotFound, ref)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d tracks", ErrAmbiguousTrack, ref, len(ids))
	}
}

func (s *Store) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetTrack loads a track and its lines by reference.
func (s *Store) GetTrack(ctx context.Context, ref string) (model.Track, error) {
	id, err := s.ResolveID(ctx, ref)
	if err != nil {
		return model.Track{}, err
	}
	var (
		track      model.Track
		importedAt string
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT id, title, source, imported_at FROM tracks WHERE id = ?`, id).
		Scan(&track.ID, &track.Title, &track.Source, &importedAt)
	if err != nil {
		return model.Track{}, err
	}
	if track.ImportedAt, err = time.Parse(time.RFC3339Nano, importedAt); err != nil {
		return model.Track{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT text, start_s, end_s FROM track_lines WHERE track_id = ? ORDER BY idx ASC`, id)
	if err != nil {
		return model.Track{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var line model.TimedLine
		if err := rows.Scan(&line.Text, &line.Start, &line.End); err != nil {
			return model.Track{}, err
		}
		track.Lines = append(track.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return model.Track{}, err
	}
	return track, nil
}

// DeleteTrack removes a track and its lines by reference and returns its ID.
func (s *Store) DeleteTrack(ctx context.Context, ref string) (string, error) {
	id, err := s.ResolveID(ctx, ref)
	if err != nil {
		return "", err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM track_lines WHERE track_id = ?`, id); err != nil {
		_ = tx.Rollback()
		return "", err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tracks WHERE id = ?`, id); err != nil {
		_ = tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}
