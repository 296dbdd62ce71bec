// Package expand turns a matched segment into the candidate identifiers it
// implies. Expansion is pure and side-effect free: the returned sequence can
// be consumed more than once and carries no state between calls.
package expand

import (
	"iter"
	"strconv"

	"phonegen/core/model"
)

// localBlockSpace is the number of values in a fully enumerated local block.
const localBlockSpace = 10000

// Expand returns the identifier sequence implied by one segment and the
// filter's exact-suffix fields. With exact4 set it yields one identifier;
// with exact3 set it yields ten (one per leading digit); otherwise it yields
// the full 0000-9999 local block in ascending order.
//
// Preconditions (3-digit prefix, 4-digit suffix, suffix field widths) are
// validated upstream; Expand does not re-check them.
func Expand(segment model.SegmentRecord, exact4, exact3 string) iter.Seq[string] {
	base := segment.Prefix + segment.Suffix

	switch {
	case exact4 != "":
		return func(yield func(string) bool) {
			yield(base + exact4)
		}
	case exact3 != "":
		return func(yield func(string) bool) {
			for d := 0; d <= 9; d++ {
				if !yield(base + strconv.Itoa(d) + exact3) {
					return
				}
			}
		}
	}

	return func(yield func(string) bool) {
		buf := make([]byte, 0, len(base)+4)
		for n := 0; n < localBlockSpace; n++ {
			buf = buf[:0]
			buf = append(buf, base...)
			buf = appendLocalBlock(buf, n)
			if !yield(string(buf)) {
				return
			}
		}
	}
}

// Count returns the cardinality Expand will produce for one segment.
func Count(exact4, exact3 string) int {
	switch {
	case exact4 != "":
		return 1
	case exact3 != "":
		return 10
	}
	return localBlockSpace
}

// appendLocalBlock appends n as a zero-padded 4-digit block.
func appendLocalBlock(buf []byte, n int) []byte {
	return append(buf,
		byte('0'+n/1000),
		byte('0'+n/100%10),
		byte('0'+n/10%10),
		byte('0'+n%10),
	)
}
