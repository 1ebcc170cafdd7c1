package deck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"hzcli/internal/fileutil"
	"hzcli/internal/logging"
	"hzcli/internal/services"
)

// FileExt is the extension of deck files and interchange files.
const FileExt = ".json"

// Repository reads and writes deck files inside one directory.
type Repository struct {
	dir    string
	logger *slog.Logger
}

// NewRepository returns a repository rooted at dir. The directory is created
// on first Save.
func NewRepository(dir string, logger *slog.Logger) *Repository {
	return &Repository{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "deck"),
	}
}

// Dir returns the directory holding deck files.
func (r *Repository) Dir() string {
	return r.dir
}

// Path returns the file backing the named deck.
func (r *Repository) Path(name string) string {
	return filepath.Join(r.dir, name+FileExt)
}

// Exists reports whether the named deck has a file.
func (r *Repository) Exists(name string) (bool, error) {
	return fileutil.Exists(r.Path(name))
}

// Load reads the named deck.
func (r *Repository) Load(name string) (*Deck, error) {
	path := r.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "deck", "load", fmt.Sprintf("deck file %s", path), err)
		}
		return nil, services.Wrap(services.ErrInvalidState, "deck", "load", fmt.Sprintf("read %s", path), err)
	}
	d, err := Decode(data)
	if err != nil {
		return nil, services.Wrap(services.ErrCorrupted, "deck", "load", fmt.Sprintf("deck %q", name), err)
	}
	return d, nil
}

// Save replaces the named deck's file with d.
func (r *Repository) Save(name string, d *Deck) error {
	data, err := Encode(d)
	if err != nil {
		return services.Wrap(services.ErrInvalidState, "deck", "save", fmt.Sprintf("deck %q", name), err)
	}
	if err := fileutil.WriteFileAtomic(r.Path(name), data, 0o644); err != nil {
		return services.Wrap(services.ErrInvalidState, "deck", "save", fmt.Sprintf("write deck %q", name), err)
	}
	r.logger.Debug("persisted deck",
		logging.String(logging.FieldDeck, name),
		logging.Int("words", len(d.Words)),
		logging.Int("phrases", len(d.Phrases)))
	return nil
}

// Delete removes the named deck's file.
func (r *Repository) Delete(name string) error {
	path := r.Path(name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "deck", "delete", fmt.Sprintf("deck file %s", path), err)
		}
		return services.Wrap(services.ErrInvalidState, "deck", "delete", fmt.Sprintf("remove %s", path), err)
	}
	r.logger.Debug("deleted deck file", logging.String(logging.FieldDeck, name))
	return nil
}

var errEmptyContent = errors.New("empty deck content")

// Decode parses deck JSON. Empty input is rejected.
func Decode(data []byte) (*Deck, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errEmptyContent
	}
	var d Deck
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, fmt.Errorf("parse deck json: %w", err)
	}
	d.ensureMaps()
	return &d, nil
}

// Encode serializes d as indented JSON. A nil deck is rejected.
func Encode(d *Deck) ([]byte, error) {
	if d == nil {
		return nil, errEmptyContent
	}
	out := d.Clone()
	out.ensureMaps()
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode deck json: %w", err)
	}
	return append(data, '\n'), nil
}
