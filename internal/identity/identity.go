// Package identity derives the canonical grouping key for a
// flattened document path.
//
// The key collapses a path to at most its last two non-index
// segments, so a field wrapped in an extra envelope object on one
// side still groups with its bare counterpart on the other. The
// collapse is deliberately coarse: two unrelated fields whose last
// two segments happen to match will be merged into one comparison
// group. That false-positive source is the accepted price of
// tolerating envelope differences.
package identity

import (
	"strconv"
	"strings"

	"jsoncompare/internal/models"
)

// FromPath derives the leaf identity from a structured path.
//
// A path ending in an array index is identified by the owning array:
// "tags[0]" -> "tags_item", a bare root index -> "array_item".
// Otherwise indexes anywhere in the path are dropped and the identity
// is the last two remaining field segments joined by a dot (or the
// single segment when there is only one).
func FromPath(p models.Path) string {
	if n := len(p); n > 0 && p[n-1].IsIndex {
		fields := fieldNames(p[:n-1])
		if len(fields) == 0 {
			return "array_item"
		}
		return fields[len(fields)-1] + "_item"
	}

	fields := fieldNames(p)
	switch n := len(fields); {
	case n >= 2:
		return fields[n-2] + "." + fields[n-1]
	case n == 1:
		return fields[0]
	default:
		// A path with no field segments and no trailing index is only
		// the empty root path of a bare scalar document.
		return p.String()
	}
}

// FromString derives the leaf identity from a rendered path string.
// It is a pure function of the string: the path is parsed back into
// segments and handed to FromPath, so both entry points agree on
// every rendered path the flattener can produce.
func FromString(path string) string {
	return FromPath(parsePath(path))
}

// fieldNames returns the names of the non-index segments in order.
func fieldNames(p models.Path) []string {
	fields := make([]string, 0, len(p))
	for _, seg := range p {
		if !seg.IsIndex {
			fields = append(fields, seg.Field)
		}
	}
	return fields
}

// parsePath splits a dotted path like "items[0].name" into segments.
// Only "[<digits>]" is an index; any other bracketed text stays part
// of the surrounding field name.
func parsePath(s string) models.Path {
	var p models.Path
	appendField := func(text string) {
		if n := len(p); n > 0 && !p[n-1].IsIndex {
			p[n-1].Field += text
			return
		}
		p = append(p, models.FieldSegment(text))
	}

	i := 0
	for i < len(s) {
		switch {
		case s[i] == '.':
			i++
		case s[i] == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				appendField(s[i:])
				i = len(s)
				continue
			}
			if idx, err := strconv.Atoi(s[i+1 : i+end]); err == nil && end > 1 {
				p = append(p, models.IndexSegment(idx))
			} else {
				appendField(s[i : i+end+1])
			}
			i += end + 1
		default:
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			p = append(p, models.FieldSegment(s[i:j]))
			i = j
		}
	}
	return p
}
