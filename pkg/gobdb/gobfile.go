package gobdb

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

var ErrNotFound = errors.New("gob file does not exist")

/* GobFile is a simple atomic-write single-file-database
 * which stores a Go object encoded with encoding/gob.
 *
 * Usage:
 *  gf := gobdb.NewGobFile[YourTypeHere]("yourDB.gob")
 *  err := gf.Save(YourObj)
 *  obj, err := gf.Load()
 */
type GobFile[T any] struct {
	filename string
	mu       sync.Mutex
}

func NewGobFile[T any](filename string) *GobFile[T] {
	return &GobFile[T]{filename: filename}
}

func (gf *GobFile[T]) Save(obj T) error {
	gf.mu.Lock()
	defer gf.mu.Unlock()

	// temp file lives next to the target so the rename stays on one filesystem
	tempFile, err := os.CreateTemp(filepath.Dir(gf.filename), ".tmp_gob_*")
	if err != nil {
		return fmt.Errorf("cannot create temporary file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	encoder := gob.NewEncoder(tempFile)
	if err := encoder.Encode(obj); err != nil {
		tempFile.Close()
		return fmt.Errorf("cannot encode object: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("cannot close temporary file: %w", err)
	}

	if err := os.Rename(tempFile.Name(), gf.filename); err != nil {
		return fmt.Errorf("cannot rename temporary file to %q: %w", gf.filename, err)
	}

	return nil
}

func (gf *GobFile[T]) Load() (T, error) {
	gf.mu.Lock()
	defer gf.mu.Unlock()

	file, err := os.Open(gf.filename)
	if errors.Is(err, os.ErrNotExist) {
		return *new(T), fmt.Errorf("%w: %q", ErrNotFound, gf.filename)
	}
	if err != nil {
		return *new(T), fmt.Errorf("cannot open file %q: %w", gf.filename, err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	var obj T
	if err := decoder.Decode(&obj); err != nil {
		if err == io.EOF {
			return *new(T), fmt.Errorf("file %q is empty", gf.filename)
		}
		return *new(T), fmt.Errorf("cannot decode object from file %q: %w", gf.filename, err)
	}

	return obj, nil
}
