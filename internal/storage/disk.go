package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// DiskStore writes images into a local directory served by the API under
// publicBase. Handles are "<uuid>.<ext>" file names.
type DiskStore struct {
	dir        string
	publicBase string
}

func NewDiskStore(dir, publicBase string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("disk store: %w", err)
	}
	return &DiskStore{dir: dir, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

func (s *DiskStore) Upload(ctx context.Context, r io.Reader, filename, contentType string) (*Asset, error) {
	ext := filetype.GetType(strings.TrimPrefix(filepath.Ext(filename), ".")).Extension
	if ext == "" || ext == "unknown" {
		ext = "bin"
	}
	handle := uuid.NewString() + "." + ext

	f, err := os.OpenFile(filepath.Join(s.dir, handle), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &Asset{URL: s.publicBase + "/" + handle, Handle: handle}, nil
}

// Retire removes the file. A missing file counts as retired.
func (s *DiskStore) Retire(ctx context.Context, handle string) error {
	if handle != filepath.Base(handle) {
		return fmt.Errorf("disk store: invalid handle %q", handle)
	}
	err := os.Remove(filepath.Join(s.dir, handle))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
