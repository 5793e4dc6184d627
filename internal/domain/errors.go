package domain

import "fmt"

// ValidationError marks a client-correctable input problem (missing
// required field, wrong shape). Maps to HTTP 400.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid field: %s", e.Field)
}

// NotFoundError marks an identifier with no backing row. Maps to HTTP 404.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StorageError wraps a persistence-layer failure. The wrapped cause is
// logged server-side only; callers surface a generic message. Maps to 500.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// MediaTypeError marks an upload rejected for its declared content type.
// Maps to HTTP 400.
type MediaTypeError struct {
	ContentType string
}

func (e *MediaTypeError) Error() string {
	return fmt.Sprintf("unsupported media type: %s", e.ContentType)
}

// FileTooLargeError marks an upload exceeding the per-file size ceiling.
// Maps to HTTP 400.
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file size %d exceeds limit %d", e.Size, e.Limit)
}
