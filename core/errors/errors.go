// Package errors provides the error taxonomy shared by the tool document
// model, the assembler and the importer.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common cases
var (
	// ErrTypeMismatch indicates a child element is not acceptable to its parent
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidDefault indicates a select default missing from its options
	ErrInvalidDefault = errors.New("invalid default")
	// ErrMissingSection indicates a document section was never populated
	ErrMissingSection = errors.New("missing section")
	// ErrUnrecognizedTag indicates an XML tag the importer has no handler for
	ErrUnrecognizedTag = errors.New("unrecognized tag")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
)

// TypeMismatchError is returned when a parent refuses a child.
type TypeMismatchError struct {
	Parent string // Type of the parent element (e.g., "*params.Inputs")
	Child  string // Type of the rejected child
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("child was unacceptable to parent (%s is not appropriate for %s)", e.Child, e.Parent)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// InvalidDefaultError is returned when a select default is not one of its options.
type InvalidDefaultError struct {
	Param   string   // Parameter name
	Default string   // The offending default
	Options []string // Declared option values
}

func (e *InvalidDefaultError) Error() string {
	return fmt.Sprintf("select %s: default %q is not one of the options [%s]",
		e.Param, e.Default, strings.Join(e.Options, ", "))
}

func (e *InvalidDefaultError) Unwrap() error {
	return ErrInvalidDefault
}

// MissingSectionError reports a document section that was never populated.
type MissingSectionError struct {
	Section string // Section tag (e.g., "inputs")
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("section %s is not defined", e.Section)
}

func (e *MissingSectionError) Unwrap() error {
	return ErrMissingSection
}

// UnrecognizedTagError reports an XML tag skipped during import.
type UnrecognizedTagError struct {
	Tag    string // Tag that was skipped
	Parent string // Enclosing tag
}

func (e *UnrecognizedTagError) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("%s tag is not processed for <%s>", e.Tag, e.Parent)
	}
	return fmt.Sprintf("%s tag is not processed", e.Tag)
}

func (e *UnrecognizedTagError) Unwrap() error {
	return ErrUnrecognizedTag
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "XML", "TOML")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// NewTypeMismatch creates a TypeMismatchError
func NewTypeMismatch(parent, child string) *TypeMismatchError {
	return &TypeMismatchError{Parent: parent, Child: child}
}

// NewInvalidDefault creates an InvalidDefaultError
func NewInvalidDefault(param, def string, options []string) *InvalidDefaultError {
	return &InvalidDefaultError{Param: param, Default: def, Options: options}
}

// NewMissingSection creates a MissingSectionError
func NewMissingSection(section string) *MissingSectionError {
	return &MissingSectionError{Section: section}
}

// NewUnrecognizedTag creates an UnrecognizedTagError
func NewUnrecognizedTag(tag, parent string) *UnrecognizedTagError {
	return &UnrecognizedTagError{Tag: tag, Parent: parent}
}

// NewValidation creates a ValidationError
func NewValidation(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
