package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"github.com/m-mizutani/imgpress/pkg/infra/storage"
)

func TestFileSystem_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("writes file into directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		exporter, err := storage.NewFileSystem(dir)
		gt.NoError(t, err)

		gt.NoError(t, exporter.Export(ctx, "compressed-a.jpg.webp", []byte("webp data")))

		content, err := os.ReadFile(filepath.Join(dir, "compressed-a.jpg.webp"))
		gt.NoError(t, err)
		gt.V(t, string(content)).Equal("webp data")
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		dir := t.TempDir()
		exporter, err := storage.NewFileSystem(dir)
		gt.NoError(t, err)

		gt.NoError(t, exporter.Export(ctx, model.ArchiveName, []byte("old")))
		gt.NoError(t, exporter.Export(ctx, model.ArchiveName, []byte("new")))

		content, err := os.ReadFile(filepath.Join(dir, model.ArchiveName))
		gt.NoError(t, err)
		gt.V(t, string(content)).Equal("new")
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		dir := t.TempDir()
		exporter, err := storage.NewFileSystem(dir)
		gt.NoError(t, err)

		err = exporter.Export(ctx, "../evil.webp", []byte("x"))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidInput))

		_, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "evil.webp"))
		gt.True(t, os.IsNotExist(statErr))
	})

	t.Run("rejects empty directory", func(t *testing.T) {
		_, err := storage.NewFileSystem("")
		gt.Error(t, err)
	})
}
