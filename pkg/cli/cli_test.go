package cli_test

import (
	"archive/zip"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/imgpress/pkg/cli"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	f, err := os.Create(path)
	gt.NoError(t, err)
	defer f.Close()
	gt.NoError(t, png.Encode(f, img))
}

func TestRun_Compress(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writePNG(t, filepath.Join(src, "a.png"), 64, 48)
	writePNG(t, filepath.Join(src, "b.png"), 32, 32)

	err := cli.Run(context.Background(), []string{
		"imgpress", "--log-level", "warn",
		"compress", "--output", out, "--archive", src,
	})
	gt.NoError(t, err)

	for _, name := range []string{"compressed-a.png.webp", "compressed-b.png.webp", model.ArchiveName} {
		info, err := os.Stat(filepath.Join(out, name))
		gt.NoError(t, err)
		gt.Number(t, info.Size()).Greater(0)
	}

	zr, err := zip.OpenReader(filepath.Join(out, model.ArchiveName))
	gt.NoError(t, err)
	defer zr.Close()
	gt.A(t, zr.File).Length(2)
	gt.V(t, zr.File[0].Name).Equal("compressed-a.png.webp")
	gt.V(t, zr.File[1].Name).Equal("compressed-b.png.webp")
}

func TestRun_CompressArchiveOnly(t *testing.T) {
	src := filepath.Join(t.TempDir(), "photo.png")
	out := t.TempDir()
	writePNG(t, src, 16, 16)

	err := cli.Run(context.Background(), []string{
		"imgpress", "--log-level", "warn",
		"compress", "--output", out, "--archive-only", src,
	})
	gt.NoError(t, err)

	entries, err := os.ReadDir(out)
	gt.NoError(t, err)
	gt.A(t, entries).Length(1)
	gt.V(t, entries[0].Name()).Equal(model.ArchiveName)
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no input", func(t *testing.T) {
		gt.Error(t, cli.Run(ctx, []string{"imgpress", "--log-level", "error", "compress"}))
	})

	t.Run("invalid log level", func(t *testing.T) {
		gt.Error(t, cli.Run(ctx, []string{"imgpress", "--log-level", "verbose", "compress", "a.png"}))
	})

	t.Run("invalid compression setting", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "a.png")
		writePNG(t, src, 8, 8)
		gt.Error(t, cli.Run(ctx, []string{"imgpress", "--log-level", "error", "compress", "--quality", "0", src}))
	})
}
