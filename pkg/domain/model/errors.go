package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagCompression marks a file the codec could not process
	ErrTagCompression = goerr.NewTag("compression")
	// ErrTagArchive marks a failure while building the bulk archive
	ErrTagArchive = goerr.NewTag("archive")
	// ErrTagBusy marks an operation refused because a batch is running
	ErrTagBusy = goerr.NewTag("busy")
	// ErrTagNoResults marks an export requested with nothing to export
	ErrTagNoResults = goerr.NewTag("no_results")
	// ErrTagInvalidInput marks rejected user input
	ErrTagInvalidInput = goerr.NewTag("invalid_input")
	// ErrTagExport marks a failure while handing files to an exporter
	ErrTagExport = goerr.NewTag("export")
	// ErrTagNotFound marks a lookup of a result that does not exist
	ErrTagNotFound = goerr.NewTag("not_found")
)

// Messages shown to users. Structured details stay in logs.
const (
	MsgCompressionFailed = "Failed to compress images. Please try again."
	MsgArchiveFailed     = "Failed to create archive. Please try again."
)
