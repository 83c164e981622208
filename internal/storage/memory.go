package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore keeps objects in memory and records every Retire call.
// Used in tests and local runs without an object store.
type MemoryStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	seq         int
	RetireCalls []string

	// UploadErr and RetireErr, when set, are returned by the matching call.
	UploadErr error
	RetireErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Upload(ctx context.Context, r io.Reader, filename, contentType string) (*Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UploadErr != nil {
		return nil, s.UploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.seq++
	handle := fmt.Sprintf("mem-%d-%s", s.seq, filename)
	s.objects[handle] = data
	return &Asset{URL: "memory://" + handle, Handle: handle}, nil
}

func (s *MemoryStore) Retire(ctx context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RetireCalls = append(s.RetireCalls, handle)
	if s.RetireErr != nil {
		return s.RetireErr
	}
	delete(s.objects, handle)
	return nil
}

// Has reports whether handle is currently stored.
func (s *MemoryStore) Has(handle string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[handle]
	return ok
}

// Retired returns how many times handle was passed to Retire.
func (s *MemoryStore) Retired(handle string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.RetireCalls {
		if h == handle {
			n++
		}
	}
	return n
}
