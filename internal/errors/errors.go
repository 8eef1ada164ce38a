package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrTrailingData    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: specify both documents with -a and -b or run interactively")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParse   ErrorType = "parse"
	ErrorTypeCompare ErrorType = "compare"
	ErrorTypeRender  ErrorType = "render"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewCompareError creates a new error related to grouping and
// classification. Given well-typed values this path should never be
// taken; it exists as a safety net around the comparison pipeline.
func NewCompareError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeCompare,
		Message: message,
		Err:     err,
	}
}

// NewRenderError creates a new error related to report rendering
func NewRenderError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeRender,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// ParseError describes a malformed JSON document with enough context
// to point a human at the failure. The fields, not the rendered
// string, are the contract: Line and Column are 1-based, LineText is
// the offending source line, and Pointer is Column-1 spaces followed
// by a caret.
type ParseError struct {
	// Label distinguishes the two documents of a run,
	// e.g. "REQUEST" or "RESPONSE".
	Label    string
	Line     int
	Column   int
	LineText string
	Pointer  string
	// Message is the underlying decoder's message text.
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parse error at line %d, column %d: %s", e.Label, e.Line, e.Column, e.Message)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError builds a ParseError for the document text and the
// 0-based byte offset where decoding failed. Line, column, line text
// and the caret pointer are all derived from the offset.
func NewParseError(label, text string, offset int64, message string, err error) *ParseError {
	line, col, lineText := locate(text, offset)
	return &ParseError{
		Label:    label,
		Line:     line,
		Column:   col,
		LineText: lineText,
		Pointer:  strings.Repeat(" ", col-1) + "^",
		Message:  message,
		Err:      err,
	}
}

// locate converts a byte offset into a 1-based line/column pair and
// extracts the offending line's text.
func locate(text string, offset int64) (line, col int, lineText string) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	before := text[:offset]
	line = 1 + strings.Count(before, "\n")
	lineStart := strings.LastIndexByte(before, '\n') + 1
	col = int(offset) - lineStart + 1
	lineEnd := strings.IndexByte(text[lineStart:], '\n')
	if lineEnd < 0 {
		lineText = text[lineStart:]
	} else {
		lineText = text[lineStart : lineStart+lineEnd]
	}
	return line, col, lineText
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return fmt.Sprintf("%s parsing error: line %d, column %d: %s", parseErr.Label, parseErr.Line, parseErr.Column, parseErr.Message)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeCompare:
			return fmt.Sprintf("Comparison error: %s", appErr.Message)
		case ErrorTypeRender:
			return fmt.Sprintf("Rendering error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrTrailingData) {
		return "Error: Multiple JSON values found. Please provide a single JSON document."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Specify both documents with -a and -b or run interactively."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
