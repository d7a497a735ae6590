// Package mapping persists the lineage table linking each processed artifact
// back to its source: which original filename it came from, where the source
// object lives, and whether the source was RAW. Rows are never pruned.
package mapping

import "errors"

var ErrNotFound = errors.New("mapping entry not found")

type Entry struct {
	ProcessedName string `json:"processedName"`
	OriginalName  string `json:"originalName"`
	SourceURL     string `json:"sourceUrl"`
	Kind          string `json:"kind"`
	RecordedAt    int64  `json:"recordedAt"`
}
