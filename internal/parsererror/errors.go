// Package parsererror defines the error taxonomy of the ingestion pipeline.
package parsererror

import "fmt"

// ParseError represents an unreadable or unrecognized source file.
// The pipeline skips the file and continues the batch.
type ParseError struct {
	FilePath string
	Format   string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("failed to parse %s as %s: %v", e.FilePath, e.Format, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.FilePath, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError represents a file whose required columns could not be located
// after best-effort header detection.
type SchemaError struct {
	FilePath string
	Column   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("no %s column found in %s", e.Column, e.FilePath)
}

// StoreCorruptionError represents an unreadable mapping store file.
// Callers reinitialize the store with defaults instead of propagating it.
type StoreCorruptionError struct {
	Path string
	Err  error
}

func (e *StoreCorruptionError) Error() string {
	return fmt.Sprintf("mapping store %s is corrupt: %v", e.Path, e.Err)
}

func (e *StoreCorruptionError) Unwrap() error {
	return e.Err
}

// EmptyInputError signals that the source directory holds no candidate
// files. The pipeline turns this into an empty result with a warning.
type EmptyInputError struct {
	Dir string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("no transaction files found in %s", e.Dir)
}
