package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/domain/interfaces"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
)

type fileSystem struct {
	dir string
}

// NewFileSystem creates an Exporter writing files into dir. The directory is created if missing.
func NewFileSystem(dir string) (interfaces.Exporter, error) {
	if dir == "" {
		return nil, goerr.New("output directory is empty", goerr.T(model.ErrTagInvalidInput))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory",
			goerr.V("dir", dir),
			goerr.T(model.ErrTagExport))
	}

	return &fileSystem{dir: filepath.Clean(dir)}, nil
}

// Export writes data to dir/name
func (fs *fileSystem) Export(ctx context.Context, name string, data []byte) error {
	// Security check: prevent path traversal
	destPath := filepath.Join(fs.dir, name)
	if !strings.HasPrefix(destPath, fs.dir+string(os.PathSeparator)) {
		return goerr.New("invalid file name",
			goerr.V("name", name),
			goerr.V("dir", fs.dir),
			goerr.T(model.ErrTagInvalidInput))
	}

	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write file",
			goerr.V("path", destPath),
			goerr.T(model.ErrTagExport))
	}

	ctxlog.From(ctx).Debug("Exported file", "path", destPath, "size", len(data))
	return nil
}
