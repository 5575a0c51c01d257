package model

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

const (
	// DownloadPrefix is prepended to every exported file name
	DownloadPrefix = "compressed-"
	// DownloadExt is appended to every exported file name
	DownloadExt = ".webp"
	// ArchiveName is the file name of the bulk export archive
	ArchiveName = "compressed-images.zip"
)

// InputFile is an image supplied by the user
type InputFile struct {
	Name string
	Data []byte
}

// Size returns the original size in bytes
func (f *InputFile) Size() int64 {
	return int64(len(f.Data))
}

// CompressedFile is the output of a single compression
type CompressedFile struct {
	Name    string // Name of the input file it was derived from
	Data    []byte
	Width   int
	Height  int
	Quality int
}

// Size returns the compressed size in bytes
func (f *CompressedFile) Size() int64 {
	return int64(len(f.Data))
}

// DownloadName returns the file name used when the file is exported
func (f *CompressedFile) DownloadName() string {
	return DownloadName(f.Name)
}

// CompressionResult pairs a compressed file with the size of its input
type CompressionResult struct {
	Index        int
	OriginalSize int64
	File         *CompressedFile
}

// CompressedSize returns the size of the compressed output
func (r *CompressionResult) CompressedSize() int64 {
	if r.File == nil {
		return 0
	}
	return r.File.Size()
}

// Reduction returns the size reduction of this result in percent
func (r *CompressionResult) Reduction() float64 {
	return Reduction(r.OriginalSize, r.CompressedSize())
}

// DownloadName builds the exported name of a compressed file.
// "photo.jpg" becomes "compressed-photo.jpg.webp".
func DownloadName(name string) string {
	return DownloadPrefix + name + DownloadExt
}

// UniqueDownloadNames returns the download name of every result, in order.
// Later results whose name is already taken get a counter before the input
// extension: the second "x.png" becomes "compressed-x-1.png.webp".
func UniqueDownloadNames(results []*CompressionResult) []string {
	names := make([]string, len(results))
	used := make(map[string]bool, len(results))

	for i, r := range results {
		var src string
		if r.File != nil {
			src = r.File.Name
		}

		name := DownloadName(src)
		if used[name] {
			ext := filepath.Ext(src)
			stem := strings.TrimSuffix(src, ext)
			for n := 1; used[name]; n++ {
				name = DownloadName(fmt.Sprintf("%s-%d%s", stem, n, ext))
			}
		}

		used[name] = true
		names[i] = name
	}
	return names
}

// Reduction computes (original - compressed) / original * 100 rounded to
// two decimal places. A non-positive original size yields 0.
func Reduction(original, compressed int64) float64 {
	if original <= 0 {
		return 0
	}
	pct := float64(original-compressed) / float64(original) * 100
	return math.Round(pct*100) / 100
}

// FormatKB renders a byte count as kilobytes with two decimals
func FormatKB(size int64) string {
	return fmt.Sprintf("%.2f", float64(size)/1024)
}

// FormatPercent renders a percentage with two decimals
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f", pct)
}
