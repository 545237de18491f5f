package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// ErrUnknownInstrument indicates no history exists for the requested symbol.
var ErrUnknownInstrument = errors.New("storage: unknown instrument")

// Store owns the memory document on disk. Every access runs under a single
// mutex so concurrent callers serialise instead of losing updates through
// read-modify-write races.
type Store struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
}

// NewStore wires a file path into a Store. The file need not exist yet.
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With().Str("component", "storage").Logger(),
	}
}

// View runs fn with a read-only snapshot of the document.
func (s *Store) View(fn func(m *Memory)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.load())
}

// Update runs fn over the document and persists the result. A failed write
// is logged rather than returned: losing one write must not abort a cycle.
func (s *Store) Update(fn func(m *Memory)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.load()
	fn(m)
	if err := s.save(m); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to persist memory")
	}
}

// load reads the document, falling back to an empty default on any read or
// decode failure so a corrupt file degrades instead of crashing a cycle.
func (s *Store) load() *Memory {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("memory unreadable; starting empty")
		}
		return NewMemory()
	}

	m := &Memory{}
	if err := json.Unmarshal(data, m); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("memory corrupt; starting empty")
		return NewMemory()
	}
	m.normalize()
	return m
}

// save writes the document atomically: temp file in the same directory,
// then rename over the target.
func (s *Store) save(m *Memory) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode memory: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create memory dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".memory-*.json")
	if err != nil {
		return fmt.Errorf("create temp memory: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp memory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp memory: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace memory: %w", err)
	}
	return nil
}
