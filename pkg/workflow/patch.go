package workflow

import (
	"errors"
	"sort"
)

// Edit replaces the text at Span, which must still read Old, with New.
type Edit struct {
	Span Span
	Old  string
	New  string
}

// ErrStaleSpan means the text at a recorded span no longer matches the
// expected value; the document changed between scan and patch.
var ErrStaleSpan = errors.New("text at recorded span doesn't match the expected reference")

// Apply rewrites the document at the recorded spans. Edits are applied in
// descending offset order so earlier replacements never invalidate later
// offsets. A stale or invalid span skips that single edit; the rest of the
// patch proceeds. Everything outside the replaced spans is byte-identical
// to the input.
func Apply(content []byte, edits []Edit) ([]byte, int, []Edit) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start > sorted[j].Span.Start
	})
	applied := 0
	var stale []Edit
	for _, e := range sorted {
		if !e.Span.Valid() || e.Span.End > len(content) || string(content[e.Span.Start:e.Span.End]) != e.Old {
			stale = append(stale, e)
			continue
		}
		buf := make([]byte, 0, len(content)-len(e.Old)+len(e.New))
		buf = append(buf, content[:e.Span.Start]...)
		buf = append(buf, e.New...)
		buf = append(buf, content[e.Span.End:]...)
		content = buf
		applied++
	}
	return content, applied, stale
}
