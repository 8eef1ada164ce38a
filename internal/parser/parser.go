package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"jsoncompare/internal/errors"
	"jsoncompare/internal/models"
)

// ParseString parses a single JSON document from a string. The label
// (e.g. "REQUEST" or "RESPONSE") identifies the document in any
// diagnostic, so the two parses of a comparison run stay
// distinguishable.
//
// Object keys retain their declaration order in the returned value,
// which the flattener relies on. On malformed input the returned
// error is a *errors.ParseError carrying the 1-based line and column,
// the offending line's text, and a caret pointer.
func ParseString(text, label string) (models.Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber() // keep numbers as json.Number, not float64

	value, err := decodeValue(dec)
	if err != nil {
		return nil, toParseError(label, text, dec, err)
	}

	// Anything after the first document is an error; a document is a
	// single JSON value.
	if tok, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		if err != nil {
			return nil, toParseError(label, text, dec, err)
		}
		return nil, toParseError(label, text, dec,
			fmt.Errorf("unexpected %v after top-level value: %w", tok, errors.ErrTrailingData))
	}

	return value, nil
}

// Parse parses a single JSON document from a reader.
func Parse(reader io.Reader, label string) (models.Value, error) {
	text, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(text), label)
}

// ParseFile parses a single JSON document from a file path.
func ParseFile(filePath, label string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	text, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(text) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseString(string(text), label)
}

// decodeValue reads the next complete JSON value from the decoder.
// Containers are rebuilt from the token stream so that object members
// keep their declaration order; encoding/json's map decoding would
// shuffle them.
func decodeValue(dec *json.Decoder) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (models.Value, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		// Scalar: string, bool, json.Number, or nil.
		return tok, nil
	}

	switch delim {
	case '{':
		obj := models.Object{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is not a string: %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, models.Member{Key: key, Value: val})
		}
		// Consume the closing '}'.
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil

	case '[':
		arr := models.Array{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil

	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// toParseError converts a decoder failure into a *errors.ParseError
// with line/column context. json.SyntaxError carries its own offset;
// for truncated input the decoder's input offset marks where the
// document stopped making sense.
func toParseError(label, text string, dec *json.Decoder, err error) error {
	// Every decode failure is invalid JSON; keep the sentinel in the
	// chain so callers can test with errors.Is.
	cause := fmt.Errorf("%w: %w", errors.ErrInvalidJSON, err)

	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.NewParseError(label, text, syntaxErr.Offset, syntaxErr.Error(), cause)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) || stderrors.Is(err, io.EOF) {
		return errors.NewParseError(label, text, dec.InputOffset(), "unexpected end of JSON input", cause)
	}
	return errors.NewParseError(label, text, dec.InputOffset(), err.Error(), cause)
}
