package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"maitri-medico/internal/testutil"
)

func TestSniffImage(t *testing.T) {
	mime, ext, err := SniffImage(testutil.PNG)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if mime != "image/png" || ext != "png" {
		t.Fatalf("got %s %s", mime, ext)
	}

	if _, _, err := SniffImage([]byte("just some text, not a picture")); !errors.Is(err, ErrNotImage) {
		t.Fatalf("text err = %v, want ErrNotImage", err)
	}
	if _, _, err := SniffImage(nil); !errors.Is(err, ErrNotImage) {
		t.Fatalf("empty err = %v, want ErrNotImage", err)
	}
}

func TestDiskStore_UploadAndRetire(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "http://localhost:3000/uploads/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	asset, err := s.Upload(ctx, bytes.NewReader(testutil.PNG), "leaf.png", "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasSuffix(asset.Handle, ".png") {
		t.Fatalf("handle = %s", asset.Handle)
	}
	if asset.URL != "http://localhost:3000/uploads/"+asset.Handle {
		t.Fatalf("url = %s", asset.URL)
	}
	if _, err := os.Stat(filepath.Join(dir, asset.Handle)); err != nil {
		t.Fatalf("file missing: %v", err)
	}

	if err := s.Retire(ctx, asset.Handle); err != nil {
		t.Fatalf("retire: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, asset.Handle)); !os.IsNotExist(err) {
		t.Fatalf("file still present")
	}
	// already gone
	if err := s.Retire(ctx, asset.Handle); err != nil {
		t.Fatalf("second retire: %v", err)
	}
	if err := s.Retire(ctx, "../etc/passwd"); err == nil {
		t.Fatalf("path handle should be rejected")
	}
}

func TestRetireBestEffort(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	RetireBestEffort(ctx, s, "", "test", "")
	if len(s.RetireCalls) != 0 {
		t.Fatalf("empty handle should be skipped")
	}

	asset, _ := s.Upload(ctx, bytes.NewReader(testutil.PNG), "a.png", "image/png")
	s.RetireErr = errors.New("store offline")
	RetireBestEffort(ctx, s, asset.Handle, "test", "req-1")
	if s.Retired(asset.Handle) != 1 || !s.Has(asset.Handle) {
		t.Fatalf("failed retire should be attempted once and leave the object")
	}
}
