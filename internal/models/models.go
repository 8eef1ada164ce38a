package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Value is a generic type for any parsed JSON value.
// Scalars are nil, bool, string, or json.Number; containers are
// Object and Array.
type Value interface{}

// Member is a single key/value entry of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Object represents a JSON object as an ordered list of members.
// A plain map would lose the declaration order of keys, which the
// flattener depends on.
type Object []Member

// Array represents a JSON array.
type Array []Value

// IsScalar reports whether v is a leaf value (null, boolean, number,
// or string) rather than a container.
func IsScalar(v Value) bool {
	switch v.(type) {
	case Object, Array:
		return false
	default:
		return true
	}
}

// ScalarString renders a scalar value in its natural text form:
// null, true/false, the number literal, or the raw string content.
func ScalarString(v Value) string {
	switch s := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(s)
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

// Segment is one element of a document path: either an object field
// name or an array index.
type Segment struct {
	Field string
	Index int
	// IsIndex distinguishes the two variants; a field named "0" must
	// not be confused with index 0.
	IsIndex bool
}

// FieldSegment returns a field-name path segment.
func FieldSegment(name string) Segment {
	return Segment{Field: name}
}

// IndexSegment returns an array-index path segment.
func IndexSegment(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// Path is the fully-qualified location of a value inside a document,
// ordered from the root down to the leaf.
type Path []Segment

// Child returns a new path extended by one segment. The backing array
// is never shared with the receiver, so sibling paths built from the
// same parent cannot clobber each other.
func (p Path) Child(seg Segment) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = seg
	return child
}

// String renders the path in dotted notation. Field segments are
// joined with "."; an index renders as "[i]" attached directly to the
// preceding segment without a separator, e.g. "items[0].name".
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Field)
	}
	return b.String()
}

// FlatEntry is one scalar leaf of a flattened document.
type FlatEntry struct {
	Path  Path
	Value Value
}

// Outcome classifies a comparison group.
type Outcome int

const (
	// Match means both sides hold equal values for the field.
	Match Outcome = iota
	// DifferentValues means the field exists on both sides with
	// unequal values.
	DifferentValues
	// MissingInA means the field exists only in the second document.
	MissingInA
	// MissingInB means the field exists only in the first document.
	MissingInB
)

// String returns the outcome's canonical name.
func (o Outcome) String() string {
	switch o {
	case Match:
		return "Match"
	case DifferentValues:
		return "DifferentValues"
	case MissingInA:
		return "MissingInA"
	case MissingInB:
		return "MissingInB"
	default:
		return "Unknown"
	}
}

// MissingMarker is the sentinel display string used on the side where
// a field is absent. Renderers may substitute their own decoration
// keyed on the row's Outcome.
const MissingMarker = "(missing)"

// ComparisonRow is one classified line of the comparison report.
type ComparisonRow struct {
	// Identity is the canonical grouping key shared by all
	// contributing paths.
	Identity string
	// DisplayA and DisplayB are the rendered values for each side,
	// truncated and suffixed with the multi-path disclosure where
	// applicable. The absent side carries MissingMarker.
	DisplayA string
	DisplayB string
	// PathsA and PathsB list every contributing path per side, in
	// flatten order.
	PathsA  []string
	PathsB  []string
	Outcome Outcome
}

// Summary aggregates the report counts. MatchingFields and
// DifferentFields list the identities of the corresponding rows in
// row-iteration order; an identity appears once per row, so a field
// missing at several paths is listed several times.
type Summary struct {
	TotalFields     int
	Matches         int
	Differences     int
	MatchingFields  []string
	DifferentFields []string
}

// Report is the structured comparison result handed to renderers.
type Report struct {
	Rows    []ComparisonRow
	Summary Summary
}
