package archive

import (
	"bytes"
	"context"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/domain/interfaces"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
)

// modTime is stamped on every entry so identical input yields identical archives
var modTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

type zipArchiver struct {
	method uint16
}

// Option configures the zip archiver
type Option func(*zipArchiver)

// WithStore disables deflate. WebP payloads rarely shrink further.
func WithStore() Option {
	return func(a *zipArchiver) {
		a.method = zip.Store
	}
}

// NewZip creates an Archiver writing zip archives
func NewZip(opts ...Option) interfaces.Archiver {
	a := &zipArchiver{
		method: zip.Deflate,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build writes one entry per element of entries, in order
func (a *zipArchiver) Build(ctx context.Context, entries []model.ArchiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "archive build cancelled", goerr.T(model.ErrTagArchive))
		}

		if entry.Data == nil {
			return nil, goerr.New("archive entry has no content",
				goerr.V("entry", entry.Name),
				goerr.V("index", i),
				goerr.T(model.ErrTagArchive))
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     entry.Name,
			Method:   a.method,
			Modified: modTime,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create archive entry",
				goerr.V("entry", entry.Name),
				goerr.T(model.ErrTagArchive))
		}

		if _, err := w.Write(entry.Data); err != nil {
			return nil, goerr.Wrap(err, "failed to write archive entry",
				goerr.V("entry", entry.Name),
				goerr.T(model.ErrTagArchive))
		}
	}

	if err := zw.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize archive", goerr.T(model.ErrTagArchive))
	}

	return buf.Bytes(), nil
}
