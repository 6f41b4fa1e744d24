// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// errors.go — sentinel error variables returned by the public zipstore API,
// split into archive-level failures (which abort an operation) and entry-level
// failures (which skip one entry and are collected in a Report).

// Package zipstore writes in-memory values (bytes, text, structured data,
// images, engine resources and scene graphs) into zip archives and reads
// them back, for save games and level-editor persistence.
package zipstore

import "errors"

// Archive errors
var (
	ErrOpenFailed  = errors.New("zipstore: cannot open archive")
	ErrCloseFailed = errors.New("zipstore: cannot finalize archive")
)

// Entry errors
var (
	ErrUnknownExtension = errors.New("zipstore: unknown extension")
	ErrUnimplemented    = errors.New("zipstore: format not implemented")
	ErrTypeMismatch     = errors.New("zipstore: unsupported value type")
	ErrEncodeFailed     = errors.New("zipstore: failed to encode entry")
	ErrDecodeFailed     = errors.New("zipstore: failed to decode entry")
	ErrEntryFailed      = errors.New("zipstore: failed to write entry")
	ErrEntryNotFound    = errors.New("zipstore: entry not found")
)

// Report errors
var (
	ErrPartialWrite = errors.New("zipstore: some entries were not written")
)

// Config errors
var (
	ErrInvalidConfig = errors.New("zipstore: invalid configuration")
)
