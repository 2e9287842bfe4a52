package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore is the object-storage contract the upload path needs. The
// hosted deployment points this at a bucket; DiskStore is the local
// implementation.
type FileStore interface {
	// Save writes the content and returns the storage path recorded on
	// the message row.
	Save(fileName string, content io.Reader) (string, error)
	Open(path string) (io.ReadCloser, error)
}

type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir}, nil
}

func (d *DiskStore) Save(fileName string, content io.Reader) (string, error) {
	// Random prefix keeps colliding client file names apart.
	name := uuid.New().String() + "_" + filepath.Base(fileName)
	path := filepath.Join(d.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (d *DiskStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
