package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// LocalStorage keeps files under root of an afero filesystem.
type LocalStorage struct {
	fs        afero.Fs
	root      string
	publicURL string
}

// NewLocalStorage creates disk rooted at root whose files are served under publicURL.
func NewLocalStorage(fs afero.Fs, root, publicURL string) *LocalStorage {
	return &LocalStorage{fs: fs, root: root, publicURL: strings.TrimRight(publicURL, "/")}
}

func (s *LocalStorage) Put(ctx context.Context, name string, img *Image) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create media root: %w", err)
	}
	if err := afero.WriteFile(s.fs, path.Join(s.root, name), img.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return s.publicURL + "/" + name, nil
}

// Delete removes file behind url. Missing files are not an error.
func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	name, ok := strings.CutPrefix(url, s.publicURL+"/")
	if !ok {
		return fmt.Errorf("url %s is not on the public disk", url)
	}
	if err := validName(name); err != nil {
		return err
	}
	if err := s.fs.Remove(path.Join(s.root, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func (s *LocalStorage) Mount() (string, http.FileSystem) {
	return s.publicURL, afero.NewHttpFs(s.fs).Dir(s.root)
}

func validName(name string) error {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}
