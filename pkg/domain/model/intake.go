package model

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/m-mizutani/goerr/v2"
)

// NewInputFile builds an InputFile after checking that data is an image
func NewInputFile(name string, data []byte) (*InputFile, error) {
	if name == "" {
		return nil, goerr.New("file name is empty", goerr.T(ErrTagInvalidInput))
	}
	if len(data) == 0 {
		return nil, goerr.New("file is empty",
			goerr.V("file", name),
			goerr.T(ErrTagInvalidInput))
	}

	if mt := DetectMIME(data); !IsImageMIME(mt) {
		return nil, goerr.New("file is not an image",
			goerr.V("file", name),
			goerr.V("mime", mt),
			goerr.T(ErrTagInvalidInput))
	}

	return &InputFile{
		Name: filepath.Base(name),
		Data: data,
	}, nil
}

// DetectMIME returns the MIME type sniffed from data
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// IsImageMIME reports whether mt is an image/* type
func IsImageMIME(mt string) bool {
	return strings.HasPrefix(mt, "image/")
}
