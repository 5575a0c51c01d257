package webp

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"runtime/debug"

	libwebp "github.com/chai2010/webp"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/domain/interfaces"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	qualityStep = 10
	shrinkRatio = 0.9
)

type encoder struct{}

// NewEncoder creates a Compressor producing lossy WebP
func NewEncoder() interfaces.Compressor {
	return &encoder{}
}

// Compress decodes file, scales it to fit cfg.MaxDimension and encodes it as
// WebP, lowering quality and then dimensions until the output fits cfg.MaxSizeMB.
// The smallest attempt is returned when the size target cannot be met.
func (e *encoder) Compress(ctx context.Context, file *model.InputFile, cfg model.CompressionConfig) (*model.CompressedFile, error) {
	if !cfg.Offload {
		return e.compress(ctx, file, cfg)
	}

	type outcome struct {
		file *model.CompressedFile
		err  error
	}
	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: goerr.New("panic while encoding image",
					goerr.V("file", file.Name),
					goerr.V("recover", fmt.Sprint(r)),
					goerr.V("stack", string(debug.Stack())),
					goerr.T(model.ErrTagCompression))}
			}
		}()

		f, err := e.compress(ctx, file, cfg)
		ch <- outcome{file: f, err: err}
	}()

	// A running libwebp.Encode cannot be interrupted. After cancellation the
	// goroutine finishes its current attempt, stops at the next ctx check and
	// its result is dropped into the buffered channel.
	select {
	case <-ctx.Done():
		return nil, goerr.Wrap(ctx.Err(), "compression cancelled", goerr.V("file", file.Name))
	case o := <-ch:
		return o.file, o.err
	}
}

func (e *encoder) compress(ctx context.Context, file *model.InputFile, cfg model.CompressionConfig) (*model.CompressedFile, error) {
	logger := ctxlog.From(ctx)

	src, format, err := image.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode image",
			goerr.V("file", file.Name),
			goerr.V("size", file.Size()),
			goerr.T(model.ErrTagCompression))
	}

	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, goerr.New("image has no pixels",
			goerr.V("file", file.Name),
			goerr.T(model.ErrTagCompression))
	}

	width, height := fitWithin(bounds.Dx(), bounds.Dy(), cfg.MaxDimension)
	quality := cfg.Quality
	target := cfg.MaxSizeBytes()

	var best *model.CompressedFile
	var scaled image.Image
	scaledW, scaledH := 0, 0

	for i := 0; i < cfg.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "compression cancelled", goerr.V("file", file.Name))
		}

		if width != scaledW || height != scaledH {
			scaled = resize(src, width, height)
			scaledW, scaledH = width, height
		}

		var buf bytes.Buffer
		if err := libwebp.Encode(&buf, scaled, &libwebp.Options{Quality: float32(quality)}); err != nil {
			return nil, goerr.Wrap(err, "failed to encode webp",
				goerr.V("file", file.Name),
				goerr.V("quality", quality),
				goerr.T(model.ErrTagCompression))
		}

		if best == nil || int64(buf.Len()) < best.Size() {
			best = &model.CompressedFile{
				Name:    file.Name,
				Data:    buf.Bytes(),
				Width:   width,
				Height:  height,
				Quality: quality,
			}
		}

		logger.Debug("Encoded webp attempt",
			"file", file.Name,
			"format", format,
			"iteration", i+1,
			"quality", quality,
			"width", width,
			"height", height,
			"size", buf.Len(),
			"target", target,
		)

		if int64(buf.Len()) <= target {
			break
		}

		if quality-qualityStep >= cfg.MinQuality {
			quality -= qualityStep
		} else {
			quality = cfg.MinQuality
			width, height = shrink(width, height)
		}
	}

	return best, nil
}

// fitWithin scales width and height down so the longer side is at most limit,
// preserving aspect ratio. Images already within limit are left as is.
func fitWithin(width, height, limit int) (int, int) {
	if width <= limit && height <= limit {
		return width, height
	}

	if width >= height {
		h := int(float64(height)*float64(limit)/float64(width) + 0.5)
		return limit, max(h, 1)
	}
	w := int(float64(width)*float64(limit)/float64(height) + 0.5)
	return max(w, 1), limit
}

func shrink(width, height int) (int, int) {
	return max(int(float64(width)*shrinkRatio), 1), max(int(float64(height)*shrinkRatio), 1)
}

func resize(src image.Image, width, height int) image.Image {
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
