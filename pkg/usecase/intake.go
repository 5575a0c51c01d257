package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
)

// LoadFiles reads the given paths into InputFiles, keeping argument order.
// A directory contributes its image files (not recursive, sorted by name) and
// silently skips anything else; a file argument that is not an image is an error.
func LoadFiles(ctx context.Context, paths []string) ([]*model.InputFile, error) {
	logger := ctxlog.From(ctx)
	var files []*model.InputFile

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to stat input",
				goerr.V("path", p),
				goerr.T(model.ErrTagInvalidInput))
		}

		if !info.IsDir() {
			file, err := loadFile(p)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read directory",
				goerr.V("path", p),
				goerr.T(model.ErrTagInvalidInput))
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}

			file, err := loadFile(filepath.Join(p, entry.Name()))
			if err != nil {
				if goerr.HasTag(err, model.ErrTagInvalidInput) {
					logger.Debug("Skipping non-image file", "path", filepath.Join(p, entry.Name()))
					continue
				}
				return nil, err
			}
			files = append(files, file)
		}
	}

	return files, nil
}

func loadFile(path string) (*model.InputFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
	}
	return model.NewInputFile(path, data)
}
