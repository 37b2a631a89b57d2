// Package site writes the generated page and the files a GitHub Pages site needs
// around it. Bootstrap files are only ever created, never overwritten.
package site

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/kurihiro0119/github-org-pages/internal/domain"
	apperrors "github.com/kurihiro0119/github-org-pages/internal/errors"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// WriteIndex writes the rendered document, replacing any previous version
func WriteIndex(path, content string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return apperrors.NewIOError("failed to write "+path, err)
	}
	return nil
}

// EnsureTemplate writes text to path unless a file already exists there.
// It reports whether the file was created.
func EnsureTemplate(path, text string) (bool, error) {
	return createIfAbsent(path, []byte(text))
}

// EnsureSiteConfig writes cfg as YAML to path unless a file already exists there.
// It reports whether the file was created.
func EnsureSiteConfig(path string, cfg *domain.SiteConfig) (bool, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return false, apperrors.NewInternalError("failed to encode site config", err)
	}
	return createIfAbsent(path, data)
}

// ReadSiteConfig parses a site configuration file
func ReadSiteConfig(path string) (*domain.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewIOError("failed to read "+path, err)
	}
	var cfg domain.SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, apperrors.NewIOError("failed to parse "+path, err)
	}
	return &cfg, nil
}

func createIfAbsent(path string, data []byte) (bool, error) {
	if err := ensureDir(path); err != nil {
		return false, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewIOError("failed to create "+path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return false, apperrors.NewIOError("failed to write "+path, err)
	}
	if err := f.Close(); err != nil {
		return false, apperrors.NewIOError("failed to write "+path, err)
	}
	return true, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return apperrors.NewIOError("failed to create directory "+dir, err)
	}
	return nil
}
