// Package flatten converts a parsed JSON tree into addressable
// scalar leaves.
package flatten

import (
	"jsoncompare/internal/models"
)

// Flatten walks a parsed JSON value in pre-order, depth-first order
// and returns one FlatEntry per scalar leaf: object keys in their
// declaration order, array elements in index order. Containers are
// traversed, never emitted, so empty objects and arrays contribute
// nothing. The traversal uses an explicit stack rather than
// recursion, so deeply nested documents are bounded by heap, not
// goroutine stack.
func Flatten(v models.Value) []models.FlatEntry {
	type frame struct {
		path  models.Path
		value models.Value
	}

	var entries []models.FlatEntry
	stack := []frame{{path: models.Path{}, value: v}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch val := f.value.(type) {
		case models.Object:
			// Push in reverse so the first key is popped first.
			for i := len(val) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					path:  f.path.Child(models.FieldSegment(val[i].Key)),
					value: val[i].Value,
				})
			}
		case models.Array:
			for i := len(val) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					path:  f.path.Child(models.IndexSegment(i)),
					value: val[i],
				})
			}
		default:
			entries = append(entries, models.FlatEntry{Path: f.path, Value: val})
		}
	}

	return entries
}
