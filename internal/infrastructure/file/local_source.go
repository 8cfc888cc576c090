package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalSource reads import spreadsheets from the local filesystem.
type LocalSource struct {
	BaseDir string
	// MaxBytes caps the file size; zero disables the check.
	MaxBytes int64
}

func NewLocalSource(baseDir string, maxBytes int64) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir, MaxBytes: maxBytes}
}

// Load returns the base name and the contents of sourcePath.
func (s *LocalSource) Load(ctx context.Context, sourcePath string) (string, []byte, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	path := sourcePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.BaseDir, sourcePath)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("stat file %s: %w", path, err)
	}
	if s.MaxBytes > 0 && info.Size() > s.MaxBytes {
		return "", nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, info.Size())
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return filepath.Base(path), payload, nil
}
