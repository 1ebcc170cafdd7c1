package deck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"hzcli/internal/fileutil"
	"hzcli/internal/services"
)

// NameFromPath derives a deck name from an interchange file path: the base
// name without its .json extension.
func NameFromPath(path string) (string, error) {
	base := filepath.Base(strings.TrimSpace(path))
	if !strings.EqualFold(filepath.Ext(base), FileExt) {
		return "", services.Wrap(services.ErrArgument, "deck", "import", fmt.Sprintf("%q is not a %s file", path, FileExt), nil)
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return "", services.Wrap(services.ErrArgument, "deck", "import", fmt.Sprintf("%q has no deck name", path), nil)
	}
	return name, nil
}

// ReadInterchange loads a deck from an interchange file and returns it with
// the deck name derived from the path.
func ReadInterchange(path string) (string, *Deck, error) {
	name, err := NameFromPath(path)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, services.Wrap(services.ErrNotFound, "deck", "import", path, err)
		}
		return "", nil, services.Wrap(services.ErrInvalidState, "deck", "import", path, err)
	}
	d, err := Decode(data)
	if err != nil {
		return "", nil, services.Wrap(services.ErrCorrupted, "deck", "import", path, err)
	}
	return name, d, nil
}

// WriteInterchange writes d as <dir>/<name>.json and returns the path. An
// existing file is only replaced when force is set.
func WriteInterchange(dir, name string, d *Deck, force bool) (string, error) {
	path := filepath.Join(dir, name+FileExt)
	if !force {
		exists, err := fileutil.Exists(path)
		if err != nil {
			return "", services.Wrap(services.ErrInvalidState, "deck", "export", path, err)
		}
		if exists {
			return "", services.Wrap(services.ErrAlreadyExists, "deck", "export", fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
		}
	}
	data, err := Encode(d)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidState, "deck", "export", name, err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", services.Wrap(services.ErrInvalidState, "deck", "export", path, err)
	}
	return path, nil
}
