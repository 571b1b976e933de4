/*
 * NWScript Lexer - Debug Range Index
 *
 * A per-line table of source offsets, built once per pass before
 * scanning. Token positions and error snippets are derived from it by
 * ordered lookup instead of tracking line/column state in the hot loop.
 */

package lexer

import (
	"fmt"
	"sort"
)

// DebugRange attributes a span of source offsets to one line. IndexEnd is
// the offset of the line's terminating newline, or the end of the buffer
// for the last line. Lines are zero-based; the ranges are contiguous and
// cover every offset of the buffer.
type DebugRange struct {
	Line       int
	IndexStart int
	IndexEnd   int
}

// buildDebugRanges appends one range per source line to dst and returns
// the extended slice. Every buffer produces at least one range, including
// the empty one.
func buildDebugRanges(src string, dst []DebugRange) []DebugRange {
	line, start := 0, 0
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			dst = append(dst, DebugRange{Line: line, IndexStart: start, IndexEnd: i})
			line++
			start = i + 1
		}
	}
	return append(dst, DebugRange{Line: line, IndexStart: start, IndexEnd: len(src)})
}

// findDebugRange returns the range owning the given source offset: the
// first one whose IndexEnd does not precede it. Offsets handed in here
// always come from a position the scan has actually visited, so a miss is
// a table-construction defect.
func findDebugRange(ranges []DebugRange, offset int) DebugRange {
	i := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].IndexEnd >= offset
	})
	if i == len(ranges) {
		panic(fmt.Sprintf("lexer: offset %d beyond the debug range table", offset))
	}
	return ranges[i]
}
