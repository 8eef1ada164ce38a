// Package compare groups the flattened leaves of two JSON documents
// by leaf identity and classifies every group into a comparison
// outcome.
package compare

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"jsoncompare/internal/errors"
	"jsoncompare/internal/flatten"
	"jsoncompare/internal/identity"
	"jsoncompare/internal/models"
	"jsoncompare/internal/parser"
)

// DefaultMaxValueLength is the display truncation limit for rendered
// values.
const DefaultMaxValueLength = 50

// Default side labels, matching the request/response framing of the
// tool.
const (
	DefaultLabelA = "REQUEST"
	DefaultLabelB = "RESPONSE"
)

// Options control a comparison run.
type Options struct {
	LabelA         string
	LabelB         string
	MaxValueLength int
}

// Option mutates Options.
type Option func(*Options)

// WithLabels overrides the side labels used in parse diagnostics.
func WithLabels(a, b string) Option {
	return func(o *Options) {
		o.LabelA = a
		o.LabelB = b
	}
}

// WithMaxValueLength overrides the display truncation limit.
func WithMaxValueLength(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxValueLength = n
		}
	}
}

// Documents runs the full comparison pipeline on two JSON texts:
// parse, flatten, group, classify, summarize. A parse failure on
// either side aborts the run with that side's *errors.ParseError and
// no partial report. Each call builds fresh state, so concurrent
// independent comparisons never interfere.
func Documents(aText, bText string, opts ...Option) (report *models.Report, err error) {
	o := Options{
		LabelA:         DefaultLabelA,
		LabelB:         DefaultLabelB,
		MaxValueLength: DefaultMaxValueLength,
	}
	for _, opt := range opts {
		opt(&o)
	}

	valueA, err := parser.ParseString(aText, o.LabelA)
	if err != nil {
		return nil, err
	}
	valueB, err := parser.ParseString(bText, o.LabelB)
	if err != nil {
		return nil, err
	}

	// Classification is total over well-typed values; a panic here
	// is a bug, surfaced as a CompareError rather than crashing the
	// caller.
	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = errors.NewCompareError(fmt.Sprintf("unexpected failure during comparison: %v", r), nil)
		}
	}()

	rows := ClassifyLimit(flatten.Flatten(valueA), flatten.Flatten(valueB), o.MaxValueLength)
	return &models.Report{Rows: rows, Summary: Summarize(rows)}, nil
}

// Classify groups both flattened documents by leaf identity and
// returns the classified rows with the default display truncation.
func Classify(flatA, flatB []models.FlatEntry) []models.ComparisonRow {
	return ClassifyLimit(flatA, flatB, DefaultMaxValueLength)
}

// ClassifyLimit is Classify with an explicit display truncation
// limit.
//
// Identities are visited in lexicographic order so two runs over the
// same inputs produce byte-identical row ordering. For a field
// missing on one side, one row is emitted per entry on the present
// side. For a field present on both sides the first entry of each
// side (in flatten order) is the representative; when a side has
// multiple contributing paths, its display string discloses all of
// them, since the verdict may be hiding several source locations.
func ClassifyLimit(flatA, flatB []models.FlatEntry, maxLen int) []models.ComparisonRow {
	groupsA := groupByIdentity(flatA)
	groupsB := groupByIdentity(flatB)

	seen := make(map[string]struct{}, len(groupsA)+len(groupsB))
	ids := make([]string, 0, len(groupsA)+len(groupsB))
	for _, e := range flatA {
		addIdentity(&ids, seen, identity.FromPath(e.Path))
	}
	for _, e := range flatB {
		addIdentity(&ids, seen, identity.FromPath(e.Path))
	}
	sort.Strings(ids)

	rows := make([]models.ComparisonRow, 0, len(ids))
	for _, id := range ids {
		entriesA := groupsA[id]
		entriesB := groupsB[id]

		switch {
		case len(entriesA) == 0:
			for _, e := range entriesB {
				rows = append(rows, models.ComparisonRow{
					Identity: id,
					DisplayA: models.MissingMarker,
					DisplayB: displayValue(e.Value, maxLen),
					PathsB:   []string{e.Path.String()},
					Outcome:  models.MissingInA,
				})
			}
		case len(entriesB) == 0:
			for _, e := range entriesA {
				rows = append(rows, models.ComparisonRow{
					Identity: id,
					DisplayA: displayValue(e.Value, maxLen),
					DisplayB: models.MissingMarker,
					PathsA:   []string{e.Path.String()},
					Outcome:  models.MissingInB,
				})
			}
		default:
			outcome := models.DifferentValues
			if valuesEqual(entriesA[0].Value, entriesB[0].Value) {
				outcome = models.Match
			}
			pathsA := pathStrings(entriesA)
			pathsB := pathStrings(entriesB)
			rows = append(rows, models.ComparisonRow{
				Identity: id,
				DisplayA: displayWithPaths(entriesA[0].Value, pathsA, maxLen),
				DisplayB: displayWithPaths(entriesB[0].Value, pathsB, maxLen),
				PathsA:   pathsA,
				PathsB:   pathsB,
				Outcome:  outcome,
			})
		}
	}

	return rows
}

// Summarize derives the report counts from classified rows, keeping
// the identity lists in row-iteration order.
func Summarize(rows []models.ComparisonRow) models.Summary {
	s := models.Summary{TotalFields: len(rows)}
	for _, row := range rows {
		if row.Outcome == models.Match {
			s.Matches++
			s.MatchingFields = append(s.MatchingFields, row.Identity)
		} else {
			s.Differences++
			s.DifferentFields = append(s.DifferentFields, row.Identity)
		}
	}
	return s
}

// groupByIdentity buckets entries by leaf identity, preserving the
// flatten order within each bucket.
func groupByIdentity(entries []models.FlatEntry) map[string][]models.FlatEntry {
	groups := make(map[string][]models.FlatEntry)
	for _, e := range entries {
		id := identity.FromPath(e.Path)
		groups[id] = append(groups[id], e)
	}
	return groups
}

func addIdentity(ids *[]string, seen map[string]struct{}, id string) {
	if _, ok := seen[id]; ok {
		return
	}
	seen[id] = struct{}{}
	*ids = append(*ids, id)
}

// valuesEqual implements type-sensitive JSON scalar equality. A
// number and a numerically equal string are not equal; two numbers
// compare by numeric value, so 1 equals 1.0.
func valuesEqual(a, b models.Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case json.Number:
		bv, ok := b.(json.Number)
		if !ok {
			return false
		}
		if av == bv {
			return true
		}
		af, errA := av.Float64()
		bf, errB := bv.Float64()
		return errA == nil && errB == nil && af == bf
	default:
		return false
	}
}

// displayValue renders a scalar for the report, truncating long
// values to maxLen characters plus an ellipsis.
func displayValue(v models.Value, maxLen int) string {
	s := models.ScalarString(v)
	if runes := []rune(s); len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}

func displayWithPaths(v models.Value, paths []string, maxLen int) string {
	display := displayValue(v, maxLen)
	if len(paths) > 1 {
		display += " (found in: " + strings.Join(paths, ", ") + ")"
	}
	return display
}

func pathStrings(entries []models.FlatEntry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path.String()
	}
	return paths
}
