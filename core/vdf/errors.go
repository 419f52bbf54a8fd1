package vdf

import "errors"

var (
	// ErrTruncated is returned when the input ends inside a field.
	ErrTruncated = errors.New("vdf: truncated input")
	// ErrUnknownKind is returned for a kind tag outside the binary format.
	ErrUnknownKind = errors.New("vdf: unknown kind")
	// ErrTrailingData is returned when bytes follow the document end marker.
	ErrTrailingData = errors.New("vdf: trailing data after document end")
	// ErrTooDeep is returned when maps nest deeper than MaxDepth.
	ErrTooDeep = errors.New("vdf: maps nested too deeply")
	// ErrInvalidString is returned by Encode for keys or strings containing NUL.
	ErrInvalidString = errors.New("vdf: string contains NUL byte")
)
