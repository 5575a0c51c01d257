package model

// WorkflowState is the observable state of the compression workflow
type WorkflowState struct {
	BatchID string
	Results []*CompressionResult
	Loading bool
	Error   string
}

// Copy returns a snapshot that shares no slice with the receiver
func (s *WorkflowState) Copy() *WorkflowState {
	results := make([]*CompressionResult, len(s.Results))
	copy(results, s.Results)

	return &WorkflowState{
		BatchID: s.BatchID,
		Results: results,
		Loading: s.Loading,
		Error:   s.Error,
	}
}

// Summary aggregates the results of the current batch
func (s *WorkflowState) Summary() BatchSummary {
	return Summarize(s.Results)
}

// BatchSummary holds aggregate statistics of a batch
type BatchSummary struct {
	Files               int     `json:"files"`
	TotalOriginalSize   int64   `json:"total_original_size"`
	TotalCompressedSize int64   `json:"total_compressed_size"`
	Reduction           float64 `json:"reduction"`
}

// Summarize computes aggregate statistics over results
func Summarize(results []*CompressionResult) BatchSummary {
	var summary BatchSummary
	for _, r := range results {
		summary.Files++
		summary.TotalOriginalSize += r.OriginalSize
		summary.TotalCompressedSize += r.CompressedSize()
	}
	summary.Reduction = Reduction(summary.TotalOriginalSize, summary.TotalCompressedSize)
	return summary
}

// ResultView is the presentation form of a single result
type ResultView struct {
	Index          int    `json:"index"`
	Name           string `json:"name"`
	OriginalSize   int64  `json:"original_size"`
	CompressedSize int64  `json:"compressed_size"`
	OriginalKB     string `json:"original_kb"`
	CompressedKB   string `json:"compressed_kb"`
	Reduction      string `json:"reduction"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	DownloadName   string `json:"download_name"`
}

// NewResultView derives the presentation form of r
func NewResultView(r *CompressionResult) ResultView {
	view := ResultView{
		Index:          r.Index,
		OriginalSize:   r.OriginalSize,
		CompressedSize: r.CompressedSize(),
		OriginalKB:     FormatKB(r.OriginalSize),
		CompressedKB:   FormatKB(r.CompressedSize()),
		Reduction:      FormatPercent(r.Reduction()),
	}
	if r.File != nil {
		view.Name = r.File.Name
		view.Width = r.File.Width
		view.Height = r.File.Height
		view.DownloadName = r.File.DownloadName()
	}
	return view
}

// StatusView is the presentation form of WorkflowState
type StatusView struct {
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
	BatchID string       `json:"batch_id,omitempty"`
	Count   int          `json:"count"`
	Summary BatchSummary `json:"summary"`
}

// NewStatusView projects s into its presentation form
func NewStatusView(s *WorkflowState) StatusView {
	return StatusView{
		Loading: s.Loading,
		Error:   s.Error,
		BatchID: s.BatchID,
		Count:   len(s.Results),
		Summary: s.Summary(),
	}
}
