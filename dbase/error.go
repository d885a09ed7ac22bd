package dbase

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the scanner and memo reader for conditions
// that are not specific to one field or descriptor.
var (
	ErrEOF                   = errors.New("dbase: end of file")
	ErrBOF                   = errors.New("dbase: beginning of file")
	ErrIncomplete            = errors.New("dbase: short read")
	ErrNoFPT                 = errors.New("dbase: memo side file not found")
	ErrNoDBF                 = errors.New("dbase: table file not found")
	ErrMissingMemoFile       = errors.New("dbase: memo field encountered but no memo file is attached")
	ErrUnexpectedEndOfRecord = errors.New("dbase: typed binding requested more fields than the descriptor has")
)

// UnsupportedVersionError is returned when the header's signature byte does
// not match any known dialect.
type UnsupportedVersionError struct {
	Byte byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("dbase: unsupported file version 0x%02X", e.Byte)
}

// UnsupportedFieldTypeError is returned when a field descriptor's type
// character does not match any known field type.
type UnsupportedFieldTypeError struct {
	Type byte
}

func (e *UnsupportedFieldTypeError) Error() string {
	return fmt.Sprintf("dbase: unsupported field type %q", string(e.Type))
}

// FieldParseError is returned when a field's raw bytes cannot be coerced to
// its declared type.
type FieldParseError struct {
	Field string
	Type  FieldType
	Cause error
}

func (e *FieldParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dbase: field %q (%s): %v", e.Field, e.Type, e.Cause)
	}
	return fmt.Sprintf("dbase: field %q (%s): parse failed", e.Field, e.Type)
}

func (e *FieldParseError) Unwrap() error {
	return e.Cause
}

// NoSuchFieldError is returned when typed-mode binding asks for a field name
// that is not present in the descriptor table.
type NoSuchFieldError struct {
	Field string
}

func (e *NoSuchFieldError) Error() string {
	return fmt.Sprintf("dbase: no such field %q", e.Field)
}

// TupleLengthMismatchError is returned when a tuple-shape binding asks for a
// different number of fields than the record actually has.
type TupleLengthMismatchError struct {
	Requested int
	Actual    int
}

func (e *TupleLengthMismatchError) Error() string {
	return fmt.Sprintf("dbase: tuple of length %d requested, record has %d fields", e.Requested, e.Actual)
}

// wrapf wraps err with a dotted call-site tag in the style of
// "dbase-<file>-<operation>-<n>", so a caller can still errors.Is/errors.As
// through to the sentinel while a human reading a log sees which call site
// failed.
func wrapf(tag string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", tag, err)
}
