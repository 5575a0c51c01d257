package model

// ArchiveEntry is a single file inside the bulk archive
type ArchiveEntry struct {
	Name string
	Data []byte
}

// Archive is the built bulk export
type Archive struct {
	Name    string
	Data    []byte
	Entries int
}

// ArchiveEntries lists the archive entries for results, in order
func ArchiveEntries(results []*CompressionResult) []ArchiveEntry {
	entries := make([]ArchiveEntry, 0, len(results))
	for _, r := range results {
		if r.File == nil {
			continue
		}
		entries = append(entries, ArchiveEntry{
			Name: r.File.DownloadName(),
			Data: r.File.Data,
		})
	}
	return entries
}

// ExportOptions selects what is written to an exporter
type ExportOptions struct {
	Files   bool // Write every compressed file under its download name
	Archive bool // Write the bulk archive
}
