package buffer

import (
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Summary counts lines added and removed relative to the loaded content.
type Summary struct {
	Inserted int
	Deleted  int
}

// Empty reports whether nothing changed.
func (s Summary) Empty() bool { return s.Inserted == 0 && s.Deleted == 0 }

// Changes diffs the content as loaded against the current content.
func (b *Buffer) Changes() Summary {
	before, after := string(b.original), string(b.data)
	if before == after {
		return Summary{}
	}
	name := b.path
	if name == "" {
		name = "buffer"
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	unified := gotextdiff.ToUnified(name, name, before, edits)

	var s Summary
	for _, h := range unified.Hunks {
		for _, l := range h.Lines {
			switch l.Kind {
			case gotextdiff.Insert:
				s.Inserted++
			case gotextdiff.Delete:
				s.Deleted++
			}
		}
	}
	return s
}
