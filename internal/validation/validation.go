// Package validation checks the paths and documents handed to the
// galaxyxml command before they reach the importer or the manifest loader.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Limits applied to user-supplied paths and documents.
const (
	// MaxDocumentSize is the largest tool XML or manifest accepted (16 MB).
	MaxDocumentSize = 16 << 20
	// MaxFilenameLength is the maximum allowed filename length.
	MaxFilenameLength = 255
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrPathTraversal    = errors.New("path traversal detected")
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrPathTooLong      = errors.New("path too long")
	ErrFilenameTooLong  = errors.New("filename too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrTooLarge         = errors.New("document too large")
	ErrWrongKind        = errors.New("unexpected document kind")
)

// SanitizePath cleans a path given relative to baseDir, such as a macro file
// named in a manifest, and rejects it when it would escape baseDir.
func SanitizePath(baseDir, userPath string) (string, error) {
	if userPath == "" {
		return "", ErrEmptyPath
	}
	if len(userPath) > MaxPathLength {
		return "", ErrPathTooLong
	}

	clean := filepath.Clean(userPath)
	if filepath.IsAbs(clean) {
		return "", fmt.Errorf("%w: absolute path not allowed", ErrPathTraversal)
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}
	rel, err := filepath.Rel(absBase, filepath.Join(absBase, clean))
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", ErrPathTraversal
	}
	return clean, nil
}

// ValidateFilename rejects names with separators, control characters or a
// leading hyphen.
func ValidateFilename(filename string) error {
	if filename == "" {
		return ErrInvalidFilename
	}
	if len(filename) > MaxFilenameLength {
		return ErrFilenameTooLong
	}
	if filename == "." || filename == ".." {
		return fmt.Errorf("%w: reserved name", ErrInvalidFilename)
	}
	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidFilename)
	}
	for _, r := range filename {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidFilename)
		}
	}
	if strings.HasPrefix(filename, "-") {
		return fmt.Errorf("%w: filename cannot start with hyphen", ErrInvalidFilename)
	}
	return nil
}

// ValidatePath checks length and characters of a path without resolving it.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// ValidateOutputPath checks a file the command will write. The directory
// must exist and the base name must be a valid filename.
func ValidateOutputPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if err := ValidateFilename(filepath.Base(path)); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", dir)
	}
	return nil
}

// Kind is the format of an input document.
type Kind string

const (
	KindXML     Kind = "xml"
	KindTOML    Kind = "toml"
	KindUnknown Kind = "unknown"
)

// DetectKind classifies a document by extension, falling back to its first
// non-blank byte: '<' for XML, anything printable for TOML.
func DetectKind(filename string, head []byte) Kind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xml":
		return KindXML
	case ".toml":
		return KindTOML
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n\uFEFF")
	if len(trimmed) == 0 || !isLikelyText(trimmed) {
		return KindUnknown
	}
	if trimmed[0] == '<' {
		return KindXML
	}
	return KindTOML
}

// ReadDocument reads path after validating it, refusing files larger than
// MaxDocumentSize or of a kind other than want. KindUnknown accepts any
// text document.
func ReadDocument(path string, want Kind) ([]byte, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, path, MaxDocumentSize)
	}
	head := data[:min(len(data), 512)]
	got := DetectKind(path, head)
	if want != KindUnknown && got != want {
		return nil, fmt.Errorf("%w: %s is %s, want %s", ErrWrongKind, path, got, want)
	}
	return data, nil
}

// isLikelyText reports whether buf is free of NUL bytes and mostly printable.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 || bytes.IndexByte(buf, 0) != -1 {
		return false
	}
	printable, control := 0, 0
	for _, b := range buf {
		switch {
		case b >= 0x20 && b <= 0x7e, b == '\t', b == '\n', b == '\r':
			printable++
		case b < 0x20:
			control++
		}
	}
	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
