package usecase_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"github.com/m-mizutani/imgpress/pkg/usecase"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	gt.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestLoadFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	img := pngBytes(t)

	gt.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), img, 0644))
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), img, 0644))
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not an image"), 0644))
	gt.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	single := filepath.Join(t.TempDir(), "z.png")
	gt.NoError(t, os.WriteFile(single, img, 0644))

	t.Run("files and directories keep argument order", func(t *testing.T) {
		files, err := usecase.LoadFiles(ctx, []string{single, dir})
		gt.NoError(t, err)
		gt.A(t, files).Length(3)
		gt.V(t, files[0].Name).Equal("z.png")
		gt.V(t, files[1].Name).Equal("a.png")
		gt.V(t, files[2].Name).Equal("b.png")
		gt.V(t, files[1].Size()).Equal(int64(len(img)))
	})

	t.Run("explicit non-image file is rejected", func(t *testing.T) {
		_, err := usecase.LoadFiles(ctx, []string{filepath.Join(dir, "readme.txt")})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidInput))
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := usecase.LoadFiles(ctx, []string{filepath.Join(dir, "missing.png")})
		gt.Error(t, err)
	})
}
