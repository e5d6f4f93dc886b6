// Package media stores uploaded post images.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/yatube/yatube/pkg/config"
	"github.com/yatube/yatube/pkg/logging"
)

// Upload directory, relative to the media root
const postsDir = "posts"

var (
	// ErrNotImage is returned when an upload is not a supported image
	ErrNotImage = errors.New("upload a valid image")
	// ErrTooLarge is returned when an upload exceeds the size limit
	ErrTooLarge = errors.New("file is too large")
)

var allowedTypes = map[string]bool{
	"image/gif":  true,
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// Storage saves images under a root directory and names them by
// their path relative to it, e.g. "posts/<uuid>.gif"
type Storage struct {
	fs        afero.Fs
	urlPrefix string
	maxBytes  int64
	logger    *zap.Logger
}

// NewStorage creates a storage on top of fs
func NewStorage(fs afero.Fs, urlPrefix string, maxBytes int64) *Storage {
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &Storage{
		fs:        fs,
		urlPrefix: urlPrefix,
		maxBytes:  maxBytes,
		logger:    logging.WithComponent("media"),
	}
}

// NewDiskStorage creates a storage rooted at cfg.Root on the local disk
func NewDiskStorage(cfg *config.MediaConfig) (*Storage, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return NewStorage(afero.NewBasePathFs(osFs, cfg.Root), cfg.URLPrefix, cfg.MaxUploadBytes), nil
}

// fsPath maps a relative media name to its path inside fs
func fsPath(name string) string {
	return "/" + path.Clean(name)
}

// Save validates r as an image and stores it, returning its relative name
func (s *Storage) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	if !allowedTypes[mtype.String()] {
		return "", ErrNotImage
	}

	name := path.Join(postsDir, uuid.NewString()+mtype.Extension())

	if err := s.fs.MkdirAll(fsPath(postsDir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := afero.WriteReader(s.fs, fsPath(name), bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	s.logger.Debug("Image stored", zap.String("name", name), zap.String("type", mtype.String()))
	return name, nil
}

// Delete removes a stored file; missing files are ignored
func (s *Storage) Delete(name string) error {
	if name == "" {
		return nil
	}
	if err := s.fs.Remove(fsPath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Exists reports whether name is stored
func (s *Storage) Exists(name string) (bool, error) {
	return afero.Exists(s.fs, fsPath(name))
}

// URL returns the public URL of a stored file
func (s *Storage) URL(name string) string {
	if name == "" {
		return ""
	}
	return s.urlPrefix + name
}

// URLPrefix is the path files are served under
func (s *Storage) URLPrefix() string {
	return s.urlPrefix
}

// FileSystem exposes the stored files for serving over HTTP. Directories
// are reported as missing so uploads cannot be listed.
func (s *Storage) FileSystem() http.FileSystem {
	return filesOnlyFS{afero.NewHttpFs(s.fs).Dir("/")}
}

type filesOnlyFS struct {
	fs http.FileSystem
}

func (f filesOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
