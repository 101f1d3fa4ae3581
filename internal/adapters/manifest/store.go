// Package manifest records the stamps of generated output files.
package manifest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/labgen/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.StampStore. Each output directory keeps its own
// stamp file (domain.StatePathFor), keyed by the output's base name.
type Store struct {
	mu      sync.Mutex
	ledgers map[string]*ledger
}

// ledger is the content of one stamp file.
type ledger struct {
	path   string
	stamps map[string]domain.Stamp
}

// NewStore creates a new StampStore. Stamp files are read on first use.
func NewStore() *Store {
	return &Store{ledgers: make(map[string]*ledger)}
}

// Get retrieves the stamp of the given output path.
func (s *Store) Get(output string) (*domain.Stamp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, name, err := s.ledgerFor(output)
	if err != nil {
		return nil, err
	}
	stamp, ok := l.stamps[name]
	if !ok {
		return nil, nil
	}
	return &stamp, nil
}

// Put stores the stamp beside stamp.Output.
func (s *Store) Put(stamp domain.Stamp) error {
	if stamp.Output == "" {
		return zerr.New("stamp has no output path")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, name, err := s.ledgerFor(stamp.Output)
	if err != nil {
		return err
	}
	l.stamps[name] = stamp
	return l.save()
}

// ledgerFor returns the ledger holding output and the key of output in it.
func (s *Store) ledgerFor(output string) (*ledger, string, error) {
	abs, err := filepath.Abs(output)
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to resolve output path")
	}
	path := domain.StatePathFor(abs)

	l, ok := s.ledgers[path]
	if !ok {
		l, err = loadLedger(path)
		if err != nil {
			return nil, "", zerr.With(err, "path", path)
		}
		s.ledgers[path] = l
	}
	return l, filepath.Base(abs), nil
}

func loadLedger(path string) (*ledger, error) {
	l := &ledger{path: path, stamps: make(map[string]domain.Stamp)}

	//nolint:gosec // Path is derived from the output path given by the user
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return l, nil
		}
		return nil, zerr.Wrap(err, "failed to read stamp store")
	}

	if len(data) == 0 {
		return l, nil
	}
	if err := json.Unmarshal(data, &l.stamps); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal stamp store")
	}
	return l, nil
}

func (l *ledger) save() error {
	data, err := json.MarshalIndent(l.stamps, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal stamp store")
	}

	if err := os.MkdirAll(filepath.Dir(l.path), domain.PrivateDirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory for stamp store")
	}

	//nolint:gosec // Path is derived from the output path given by the user
	if err := os.WriteFile(l.path, data, domain.DocumentFilePerm); err != nil {
		return zerr.Wrap(err, "failed to write stamp store")
	}
	return nil
}
