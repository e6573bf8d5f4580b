package infrastructure

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Upload subdirectories per entity type.
const (
	FileKindResume = "resumes"
	FileKindJob    = "jobs"
)

// FileStore keeps uploaded documents on disk under root/{resumes,jobs} with a
// generated unique filename per upload, so concurrent uploads never collide.
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	for _, kind := range []string{FileKindResume, FileKindJob} {
		if err := os.MkdirAll(filepath.Join(root, kind), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
	}
	return &FileStore{root: root}, nil
}

// Save writes the uploaded file under the given kind and returns its path
// relative to the store root. That relative path is what gets persisted on
// the entity.
func (f *FileStore) Save(kind string, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(header.Filename)
	relPath := filepath.Join(kind, name)

	dst, err := os.Create(filepath.Join(f.root, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return relPath, nil
}

func (f *FileStore) Read(relPath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(f.root, relPath))
}

// Remove deletes a stored file. A missing file is not an error: delete
// endpoints call this best-effort before removing the record.
func (f *FileStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(f.root, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether a stored file is still on disk.
func (f *FileStore) Exists(relPath string) bool {
	if relPath == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(f.root, relPath))
	return err == nil
}
