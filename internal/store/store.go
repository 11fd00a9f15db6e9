package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/equinoxlabs/content-engine/internal/models"
)

// Store is the ordered, newest-first collection of published reports,
// backed by a single JSON snapshot file. Every append rewrites the
// full snapshot atomically, so the file and the in-memory collection
// never drift apart.
type Store struct {
	mu      sync.RWMutex
	path    string
	reports []models.Report
	log     *slog.Logger
}

// Open loads the snapshot at path, or starts empty when the file is
// missing. A snapshot that fails to parse is logged and treated as
// empty rather than failing startup.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path must not be empty")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Store{path: path, log: logger}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		s.log.Warn("read snapshot, starting empty", slog.Any("err", err))
		return s, nil
	}

	var reports []models.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		s.log.Warn("parse snapshot, starting empty",
			slog.String("path", path),
			slog.Any("err", err),
		)
		return s, nil
	}

	s.reports = reports
	return s, nil
}

// Append inserts a report at the front and persists the full
// snapshot. Reports are never edited or removed once appended.
func (s *Store) Append(report models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append([]models.Report{report}, s.reports...)
	if err := s.persistLocked(); err != nil {
		// Roll back so memory and disk stay reconciled.
		s.reports = s.reports[1:]
		return err
	}
	return nil
}

// persistLocked serializes the collection and atomically replaces the
// snapshot file. Callers must hold the write lock.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.reports, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Len returns the number of stored reports.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// All returns a copy of the collection, newest first.
func (s *Store) All() []models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// ByCategory returns the reports classified under cat, newest first.
func (s *Store) ByCategory(cat string) []models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Report
	for _, r := range s.reports {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out
}

// Slice returns the reports in positions [from, to), clamped to the
// collection bounds. Used for the featured/trending groupings.
func (s *Store) Slice(from, to int) []models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if from < 0 {
		from = 0
	}
	if to > len(s.reports) {
		to = len(s.reports)
	}
	if from >= to {
		return nil
	}

	out := make([]models.Report, to-from)
	copy(out, s.reports[from:to])
	return out
}

// BySlug looks a report up by its slug.
func (s *Store) BySlug(slug string) (models.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reports {
		if r.Slug == slug {
			return r, true
		}
	}
	return models.Report{}, false
}
