package webp_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"github.com/m-mizutani/imgpress/pkg/infra/webp"
	xwebp "golang.org/x/image/webp"
)

func createTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: uint8((x * y) % 256),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	gt.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func isWebP(data []byte) bool {
	return len(data) > 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

func TestEncoder_Compress(t *testing.T) {
	ctx := context.Background()
	enc := webp.NewEncoder()

	t.Run("downscales to max dimension preserving aspect ratio", func(t *testing.T) {
		cfg := model.DefaultCompressionConfig()
		cfg.MaxDimension = 100

		input := &model.InputFile{Name: "wide.png", Data: createTestPNG(t, 400, 200)}
		out, err := enc.Compress(ctx, input, cfg)
		gt.NoError(t, err)

		gt.V(t, out.Name).Equal("wide.png")
		gt.V(t, out.Width).Equal(100)
		gt.V(t, out.Height).Equal(50)
		gt.True(t, isWebP(out.Data))

		decoded, err := xwebp.DecodeConfig(bytes.NewReader(out.Data))
		gt.NoError(t, err)
		gt.V(t, decoded.Width).Equal(100)
		gt.V(t, decoded.Height).Equal(50)
	})

	t.Run("keeps small images at original size", func(t *testing.T) {
		cfg := model.DefaultCompressionConfig()
		cfg.Offload = false

		input := &model.InputFile{Name: "small.png", Data: createTestPNG(t, 64, 48)}
		out, err := enc.Compress(ctx, input, cfg)
		gt.NoError(t, err)

		gt.V(t, out.Width).Equal(64)
		gt.V(t, out.Height).Equal(48)
		gt.V(t, out.Quality).Equal(cfg.Quality)
		gt.True(t, isWebP(out.Data))
	})

	t.Run("lowers quality when size target is not met", func(t *testing.T) {
		cfg := model.DefaultCompressionConfig()
		cfg.MaxSizeMB = 0.0001 // about 100 bytes, unreachable

		input := &model.InputFile{Name: "noisy.png", Data: createTestPNG(t, 200, 200)}
		out, err := enc.Compress(ctx, input, cfg)
		gt.NoError(t, err)

		gt.True(t, isWebP(out.Data))
		gt.Number(t, out.Quality).Less(cfg.Quality)
	})

	t.Run("fails with compression tag on corrupt data", func(t *testing.T) {
		cfg := model.DefaultCompressionConfig()

		input := &model.InputFile{Name: "broken.jpg", Data: []byte("definitely not an image")}
		out, err := enc.Compress(ctx, input, cfg)
		gt.Error(t, err)
		gt.Value(t, out).Nil()
		gt.True(t, goerr.HasTag(err, model.ErrTagCompression))
	})

	t.Run("returns on cancelled context", func(t *testing.T) {
		cfg := model.DefaultCompressionConfig()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		input := &model.InputFile{Name: "any.png", Data: createTestPNG(t, 32, 32)}
		_, err := enc.Compress(cctx, input, cfg)
		gt.Error(t, err)
	})
}
