package model_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	gt.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestNewInputFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    func(t *testing.T) []byte
		wantErr bool
	}{
		{
			name:    "PNG image",
			file:    "a.png",
			data:    pngBytes,
			wantErr: false,
		},
		{
			name:    "Plain text",
			file:    "notes.txt",
			data:    func(t *testing.T) []byte { return []byte("hello world") },
			wantErr: true,
		},
		{
			name:    "Empty data",
			file:    "empty.png",
			data:    func(t *testing.T) []byte { return nil },
			wantErr: true,
		},
		{
			name:    "Empty name",
			file:    "",
			data:    pngBytes,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := model.NewInputFile(tt.file, tt.data(t))
			if tt.wantErr {
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, model.ErrTagInvalidInput))
				return
			}
			gt.NoError(t, err)
			gt.V(t, file.Name).Equal(tt.file)
		})
	}

	t.Run("strips directories from name", func(t *testing.T) {
		file, err := model.NewInputFile("some/dir/photo.png", pngBytes(t))
		gt.NoError(t, err)
		gt.V(t, file.Name).Equal("photo.png")
	})
}

func TestIsImageMIME(t *testing.T) {
	gt.True(t, model.IsImageMIME("image/png"))
	gt.True(t, model.IsImageMIME("image/webp"))
	gt.False(t, model.IsImageMIME("text/plain; charset=utf-8"))
	gt.False(t, model.IsImageMIME("application/zip"))
}
