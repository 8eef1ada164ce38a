package parser

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	stderrors "errors"

	"jsoncompare/internal/errors"
	"jsoncompare/internal/models"
)

func TestParseString_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	value, err := ParseString(jsonStr, "REQUEST")

	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	expected := models.Object{
		{Key: "name", Value: "John Doe"},
		{Key: "age", Value: json.Number("30")},
		{Key: "isStudent", Value: false},
		{Key: "city", Value: nil},
	}

	actual, ok := value.(models.Object)
	if !ok {
		t.Fatalf("ParseString() root is not a models.Object, got %T", value)
	}

	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("ParseString() root = %v, want %v", actual, expected)
	}
}

func TestParseString_KeyOrderPreserved(t *testing.T) {
	// Keys deliberately out of alphabetical order; the parser must
	// keep the declaration order, which map-based decoding would not.
	jsonStr := `{"zebra": 1, "apple": 2, "mango": 3}`
	value, err := ParseString(jsonStr, "REQUEST")
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	obj, ok := value.(models.Object)
	if !ok {
		t.Fatalf("ParseString() root is not a models.Object, got %T", value)
	}

	gotKeys := make([]string, len(obj))
	for i, m := range obj {
		gotKeys[i] = m.Key
	}
	wantKeys := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(gotKeys, wantKeys) {
		t.Errorf("ParseString() keys = %v, want %v", gotKeys, wantKeys)
	}
}

func TestParseString_SimpleArray(t *testing.T) {
	jsonStr := `[1, "test", true, null, 3.14]`
	value, err := ParseString(jsonStr, "REQUEST")
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	expected := models.Array{
		json.Number("1"),
		"test",
		true,
		nil,
		json.Number("3.14"),
	}

	actual, ok := value.(models.Array)
	if !ok {
		t.Fatalf("ParseString() root is not a models.Array, got %T", value)
	}

	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("ParseString() root = %v, want %v", actual, expected)
	}
}

func TestParseString_NestedStructure(t *testing.T) {
	jsonStr := `{"user": {"name": "Jane Doe", "id": 123}, "active": true, "tags": ["go", "json"]}`
	value, err := ParseString(jsonStr, "REQUEST")
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	expected := models.Object{
		{Key: "user", Value: models.Object{
			{Key: "name", Value: "Jane Doe"},
			{Key: "id", Value: json.Number("123")},
		}},
		{Key: "active", Value: true},
		{Key: "tags", Value: models.Array{"go", "json"}},
	}

	if !reflect.DeepEqual(value, models.Value(expected)) {
		t.Errorf("ParseString() root = %#v, want %#v", value, expected)
	}
}

func TestParseString_RootPrimitives(t *testing.T) {
	testCases := []struct {
		name        string
		jsonStr     string
		expectedVal interface{}
	}{
		{"RootString", `"hello world"`, "hello world"},
		{"RootNumber", `123.45`, json.Number("123.45")},
		{"RootBooleanTrue", `true`, true},
		{"RootBooleanFalse", `false`, false},
		{"RootNull", `null`, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := ParseString(tc.jsonStr, "REQUEST")
			if err != nil {
				t.Fatalf("ParseString() error = %v, wantErr nil for %s", err, tc.name)
			}
			if !reflect.DeepEqual(value, models.Value(tc.expectedVal)) {
				t.Errorf("ParseString() root = %#v (type %T), want %#v", value, value, tc.expectedVal)
			}
		})
	}
}

func TestParseString_UnterminatedObject(t *testing.T) {
	_, err := ParseString(`{"a": 1`, "REQUEST")
	if err == nil {
		t.Fatalf("ParseString() with unterminated object, err = nil, want ParseError")
	}

	var parseErr *errors.ParseError
	if !stderrors.As(err, &parseErr) {
		t.Fatalf("ParseString() err = %T, want *errors.ParseError", err)
	}
	if parseErr.Label != "REQUEST" {
		t.Errorf("ParseError.Label = %q, want %q", parseErr.Label, "REQUEST")
	}
	if parseErr.Line < 1 {
		t.Errorf("ParseError.Line = %d, want >= 1", parseErr.Line)
	}
	if parseErr.Column < 1 {
		t.Errorf("ParseError.Column = %d, want >= 1", parseErr.Column)
	}
	if parseErr.Message == "" {
		t.Errorf("ParseError.Message is empty, want a non-empty decoder message")
	}
}

func TestParseString_ErrorPosition(t *testing.T) {
	// The stray bracket sits on line 3, column 11.
	jsonStr := "{\n  \"a\": 1,\n  \"b\": 2 ]\n}"
	_, err := ParseString(jsonStr, "RESPONSE")
	if err == nil {
		t.Fatalf("ParseString() with stray bracket, err = nil, want ParseError")
	}

	var parseErr *errors.ParseError
	if !stderrors.As(err, &parseErr) {
		t.Fatalf("ParseString() err = %T, want *errors.ParseError", err)
	}
	if parseErr.Line != 3 {
		t.Errorf("ParseError.Line = %d, want 3", parseErr.Line)
	}
	if parseErr.LineText != "  \"b\": 2 ]" {
		t.Errorf("ParseError.LineText = %q, want %q", parseErr.LineText, "  \"b\": 2 ]")
	}
	if want := strings.Repeat(" ", parseErr.Column-1) + "^"; parseErr.Pointer != want {
		t.Errorf("ParseError.Pointer = %q, want %q", parseErr.Pointer, want)
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		_, err := ParseString(input, "REQUEST")
		if err == nil {
			t.Fatalf("ParseString(%q) err = nil, want ParseError", input)
		}
		var parseErr *errors.ParseError
		if !stderrors.As(err, &parseErr) {
			t.Fatalf("ParseString(%q) err = %T, want *errors.ParseError", input, err)
		}
	}
}

func TestParseString_WrapsInvalidJSONSentinel(t *testing.T) {
	for _, input := range []string{`{"a": oops}`, `{"a": 1`, "", `{"a": 1} {"b": 2}`} {
		_, err := ParseString(input, "REQUEST")
		if err == nil {
			t.Fatalf("ParseString(%q) err = nil, want error", input)
		}
		if !stderrors.Is(err, errors.ErrInvalidJSON) {
			t.Errorf("ParseString(%q) err = %v, want errors.Is ErrInvalidJSON", input, err)
		}
	}
}

func TestParseString_TrailingData(t *testing.T) {
	_, err := ParseString(`{"a": 1} {"b": 2}`, "REQUEST")
	if err == nil {
		t.Fatalf("ParseString() with trailing document, err = nil, want error")
	}
	var parseErr *errors.ParseError
	if !stderrors.As(err, &parseErr) {
		t.Fatalf("ParseString() err = %T, want *errors.ParseError", err)
	}
}

func TestParse_Reader(t *testing.T) {
	value, err := Parse(strings.NewReader(`{"product": "Laptop", "price": 1200.50}`), "REQUEST")
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	expected := models.Object{
		{Key: "product", Value: "Laptop"},
		{Key: "price", Value: json.Number("1200.50")},
	}
	if !reflect.DeepEqual(value, models.Value(expected)) {
		t.Errorf("Parse() root = %v, want %v", value, expected)
	}
}

func TestParseFile_NonExistentFile(t *testing.T) {
	_, err := ParseFile("nonexistentfile.json", "REQUEST")
	if err == nil {
		t.Errorf("ParseFile() with non-existent file, err = nil, want error")
	} else if !stderrors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("ParseFile() with non-existent file, err = %v, want ErrFileNotFound", err)
	}
}

func TestParseFile_EmptyPath(t *testing.T) {
	_, err := ParseFile("", "REQUEST")
	if err == nil {
		t.Errorf("ParseFile() with empty path, err = nil, want error")
	} else if !strings.Contains(err.Error(), "file path is empty") {
		t.Errorf("ParseFile() with empty path, err = %v, want error containing 'file path is empty'", err)
	}
}
