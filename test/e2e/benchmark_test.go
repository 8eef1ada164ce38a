package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"jsoncompare/internal/compare"
)

// generateNestedJSON creates a deeply nested document for
// benchmarking.
func generateNestedJSON(depth, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"count":      rand.Intn(100),
			"enabled":    rand.Intn(2) == 1,
		}
	}

	result := make(map[string]interface{})
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}
	return result
}

// generateWideJSON creates a document with many fields at one level.
func generateWideJSON(fieldCount int) map[string]interface{} {
	result := make(map[string]interface{}, fieldCount)
	for i := 0; i < fieldCount; i++ {
		result[fmt.Sprintf("field_%04d", i)] = i
	}
	return result
}

func mustMarshal(b *testing.B, v interface{}) string {
	b.Helper()
	data, err := json.Marshal(v)
	require.NoError(b, err)
	return string(data)
}

func BenchmarkCompare_Nested(b *testing.B) {
	left := mustMarshal(b, generateNestedJSON(4, 4))
	right := mustMarshal(b, generateNestedJSON(4, 4))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := compare.Documents(left, right); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompare_Wide(b *testing.B) {
	left := mustMarshal(b, generateWideJSON(2000))
	right := mustMarshal(b, generateWideJSON(2000))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := compare.Documents(left, right); err != nil {
			b.Fatal(err)
		}
	}
}
