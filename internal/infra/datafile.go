package infra

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/reporthub/backend/internal/app/appconfig"
)

// DataFile is the durable mirror of the report store: a single JSON document
// holding every report, rewritten wholesale on each append and read wholesale
// at startup.
type DataFile struct {
	path string
}

func NewDataFile(conf *appconfig.Config) (*DataFile, error) {
	if conf.DataFile == "" {
		return nil, errors.New("infra: datafile: path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(conf.DataFile), 0o755); err != nil {
		log.Error().
			Err(err).
			Str("path", conf.DataFile).
			Msg("infra: datafile: failed to create parent directory")
		return nil, err
	}

	return &DataFile{path: conf.DataFile}, nil
}

func (f *DataFile) Path() string {
	return f.path
}

// Read returns the whole mirror. A missing file surfaces as os.ErrNotExist
// so the store can start empty on first boot.
func (f *DataFile) Read() ([]byte, error) {
	return os.ReadFile(f.path)
}

// WriteAtomic replaces the mirror through a temp file in the same directory
// followed by a rename, so a concurrent reader of the path never observes a
// torn document.
func (f *DataFile) WriteAtomic(content []byte) error {
	dir := filepath.Dir(f.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "datafile: failed to create temp file")
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "datafile: failed to write temp file")
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "datafile: failed to sync temp file")
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "datafile: failed to close temp file")
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "datafile: failed to replace data file")
	}

	return nil
}
