// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// archive.go — zip reader/writer services over an afero filesystem. Writers
// build into a temp file beside the target and swap it into place on Close,
// so a failed write never clobbers an existing archive.

// Package archive drives the zip container: open, begin entry, write, end
// entry, close on the write side; open, list, read entry, close on the read
// side.
package archive

import (
	"errors"
	"time"

	"github.com/AndrewDonelson/zipstore/internal/clock"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Method selects how new entries are compressed.
type Method int

const (
	Deflate Method = iota // DEFLATE, readable by every zip tool
	Store                 // no compression
	Zstd                  // zstd (method 93), smaller and faster, needs a modern reader
)

func (m Method) zipMethod() uint16 {
	switch m {
	case Store:
		return zip.Store
	case Zstd:
		return zstd.ZipMethodWinZip
	default:
		return zip.Deflate
	}
}

// Options configures readers and writers.
type Options struct {
	Method Method
	Clock  clock.Clock
	// Comment, when set, is written to every archive, replacing the comment
	// of an archive being appended to or rewritten.
	Comment string
	// NewComment is used only for archives that have no source to inherit a
	// comment from.
	NewComment string
}

func (o *Options) defaults() {
	if o.Clock == nil {
		o.Clock = clock.Real{}
	}
}

// inherit keeps the source archive's comment, including an empty one,
// unless Comment overrides it.
func (o *Options) inherit(source string) {
	if o.Comment == "" {
		o.Comment = source
	}
	o.NewComment = ""
}

// Info describes one entry of an open archive.
type Info struct {
	Name     string
	Size     int64
	Modified time.Time
}

var (
	ErrOpen          = errors.New("archive: cannot open")
	ErrFinalize      = errors.New("archive: cannot finalize")
	ErrEntryNotFound = errors.New("archive: entry not found")
	ErrEntryOpen     = errors.New("archive: an entry is already open")
	ErrNoEntry       = errors.New("archive: no entry is open")
	ErrClosed        = errors.New("archive: writer is closed")
	ErrEmptyName     = errors.New("archive: empty entry name")
	ErrInvalidName   = errors.New("archive: entry name contains a backslash")
)
