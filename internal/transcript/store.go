package transcript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Load when no transcript has been recorded
// for the requested test case.
var ErrNotFound = errors.New("transcript not found")

// Store persists transcripts as markdown files, one per test case,
// named "<dir>/<name>.md". It does no locking: concurrent Save/Load on
// the same name is unsupported and callers must serialize runs per test case.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the file a transcript with the given name is stored at.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+".md")
}

// Save writes the transcript, replacing any previous recording of the same
// name. The write goes through a uniquely-named temp file and a rename so a
// crash mid-save never leaves a half-written fixture behind.
func (s *Store) Save(t *Transcript) error {
	if t.Name == "" {
		return fmt.Errorf("transcript: cannot save without a name")
	}
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}

	path := s.Path(t.Name)
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Load reads the transcript recorded for name, or ErrNotFound if there is none.
func (s *Store) Load(name string) (*Transcript, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q in %s", ErrNotFound, name, s.Dir)
		}
		return nil, err
	}

	t, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.Path(name), err)
	}
	t.Name = name
	return t, nil
}
