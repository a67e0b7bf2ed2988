package test

import (
	"context"
	"strings"

	"github.com/polkiloo/marketplace/internal/media"
)

// MediaStorageStub keeps uploaded files in-memory.
type MediaStorageStub struct {
	Files     map[string]*media.Image
	Deleted   []string
	PutErr    error
	DeleteErr error
}

// NewMediaStorageStub constructs empty storage stub.
func NewMediaStorageStub() *MediaStorageStub {
	return &MediaStorageStub{Files: make(map[string]*media.Image)}
}

// Put stores image and returns its public URL.
func (s *MediaStorageStub) Put(ctx context.Context, name string, img *media.Image) (string, error) {
	if s.PutErr != nil {
		return "", s.PutErr
	}
	if s.Files == nil {
		s.Files = make(map[string]*media.Image)
	}
	s.Files[name] = img
	return "/storage/" + name, nil
}

// Delete records deletion of the file behind URL.
func (s *MediaStorageStub) Delete(ctx context.Context, url string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.Deleted = append(s.Deleted, url)
	delete(s.Files, strings.TrimPrefix(url, "/storage/"))
	return nil
}

var _ media.Storage = (*MediaStorageStub)(nil)
