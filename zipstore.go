// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// zipstore.go — Store, its Config, and the archive operations: Write, Append,
// Read, Remove, List and Entries.

package zipstore

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/AndrewDonelson/zipstore/internal/archive"
	"github.com/AndrewDonelson/zipstore/internal/clock"
	"github.com/AndrewDonelson/zipstore/internal/metrics"
	"github.com/AndrewDonelson/zipstore/internal/resource"
	"github.com/AndrewDonelson/zipstore/internal/variant"
	"github.com/spf13/afero"
)

// Re-export types so callers only import this package.
type (
	MetricsRecorder = metrics.MetricsRecorder
	Clock           = clock.Clock

	Vector2 = variant.Vector2
	Vector3 = variant.Vector3
	Color   = variant.Color
	Rect2   = variant.Rect2

	Resource    = resource.Resource
	Node        = resource.Node
	NodeRecord  = resource.NodeRecord
	PackedScene = resource.PackedScene
)

// Pack flattens the scene graph rooted at root.
func Pack(root *Node) (*PackedScene, error) {
	return resource.Pack(root)
}

// ────────────────────────────────────────────────────────────────────────────
// Config
// ────────────────────────────────────────────────────────────────────────────

// Compression selects how new entries are compressed.
type Compression = archive.Method

const (
	CompressDeflate = archive.Deflate
	CompressStore   = archive.Store
	CompressZstd    = archive.Zstd
)

// Config contains all Store configuration.
type Config struct {
	// FS is the filesystem archives live on. Defaults to the OS filesystem.
	FS afero.Fs

	// Compression for newly written entries. Entries carried over by Append
	// and Remove keep their original compression.
	Compression Compression

	// Comment, when set, is stored as the comment of every archive written,
	// including appended and rewritten ones. When empty, new archives get
	// "zipstore <version>" and existing archives keep their own comment.
	Comment string

	// EncryptionKey enables AES-256-GCM sealing of every payload written
	// (must be 32 bytes; nil = disabled).
	EncryptionKey []byte

	// Optional overrideable components
	Clock   clock.Clock
	Metrics metrics.MetricsRecorder
	Logger  Logger
}

func (c *Config) defaults() {
	if c.FS == nil {
		c.FS = afero.NewOsFs()
	}
	if c.Clock == nil {
		c.Clock = clock.Real{}
	}
	if c.Metrics == nil {
		c.Metrics = metrics.Noop{}
	}
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
}

func (c *Config) validate() error {
	switch c.Compression {
	case CompressDeflate, CompressStore, CompressZstd:
	default:
		return fmt.Errorf("%w: unknown compression %d", ErrInvalidConfig, c.Compression)
	}
	return nil
}

// ────────────────────────────────────────────────────────────────────────────
// Stats
// ────────────────────────────────────────────────────────────────────────────

type storeStats struct {
	Writes         atomic.Int64
	Reads          atomic.Int64
	Removes        atomic.Int64
	Lists          atomic.Int64
	EntriesWritten atomic.Int64
	EntriesFailed  atomic.Int64
	Errors         atomic.Int64
}

// Stats is the snapshot returned by Store.Stats().
type Stats struct {
	Writes         int64
	Reads          int64
	Removes        int64
	Lists          int64
	EntriesWritten int64
	EntriesFailed  int64
	Errors         int64
}

// ────────────────────────────────────────────────────────────────────────────
// Store
// ────────────────────────────────────────────────────────────────────────────

// Entry is one value to be stored under Name. Names use '/' as separator;
// an empty name or one containing a backslash fails with ErrEntryFailed.
type Entry struct {
	Name  string
	Value any
}

// EntryInfo describes an entry already in an archive.
type EntryInfo = archive.Info

// Store reads and writes archives. It holds no archive state between calls;
// overlapping writes to the same path are last-writer-wins.
type Store struct {
	cfg       Config
	fs        afero.Fs
	stats     storeStats
	metrics   metrics.MetricsRecorder
	logger    Logger
	encryptor Encryptor
}

// New creates a Store from the provided Config.
func New(cfg Config) (*Store, error) {
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Store{
		cfg:     cfg,
		fs:      cfg.FS,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
	if len(cfg.EncryptionKey) > 0 {
		enc, err := NewAES256GCM(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("zipstore: encryption init: %w", err)
		}
		s.encryptor = enc
	}
	return s, nil
}

func (s *Store) archiveOptions() archive.Options {
	return archive.Options{
		Method:     s.cfg.Compression,
		Clock:      s.cfg.Clock,
		Comment:    s.cfg.Comment,
		NewComment: defaultComment(),
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Write path
// ────────────────────────────────────────────────────────────────────────────

// Write creates a fresh archive at path holding only entries, replacing any
// existing file. Entries that fail to encode or write are skipped and listed
// in the Report. The returned error is non-nil only when the archive could
// not be opened or finalized.
func (s *Store) Write(path string, entries []Entry, opts *Options) (*Report, error) {
	return s.write("write", path, entries, opts, archive.Create)
}

// Append adds entries to the archive at path, keeping every entry it already
// holds. A missing archive is created.
func (s *Store) Append(path string, entries []Entry, opts *Options) (*Report, error) {
	return s.write("append", path, entries, opts, archive.OpenAppend)
}

type openFunc func(fs afero.Fs, path string, opts archive.Options) (*archive.Writer, error)

func (s *Store) write(op, path string, entries []Entry, opts *Options, open openFunc) (*Report, error) {
	s.stats.Writes.Add(1)
	start := s.cfg.Clock.Now()
	defer func() { s.metrics.RecordLatency(op, s.cfg.Clock.Now().Sub(start)) }()

	w, err := open(s.fs, path, s.archiveOptions())
	if err != nil {
		s.stats.Errors.Add(1)
		s.metrics.RecordError(op, "")
		s.logger.Error("zipstore: open archive failed", "op", op, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailed, path, err)
	}
	s.logger.Debug("zipstore: archive opened", "op", op, "path", path, "entries", len(entries))

	rep := &Report{Path: path}
	for _, e := range entries {
		ext := extOf(e.Name)
		n, err := s.writeEntry(w, e, opts)
		if err != nil {
			rep.fail(e.Name, err)
			s.stats.EntriesFailed.Add(1)
			s.metrics.RecordError(op, ext)
			s.logger.Error("zipstore: entry skipped", "op", op, "path", path, "entry", e.Name, "error", err)
			continue
		}
		rep.Written = append(rep.Written, e.Name)
		s.stats.EntriesWritten.Add(1)
		s.metrics.RecordEntry(op, ext)
		s.metrics.RecordBytes(op, int64(n))
	}

	if err := w.Close(); err != nil {
		s.stats.Errors.Add(1)
		s.metrics.RecordError(op, "")
		s.logger.Error("zipstore: finalize archive failed", "op", op, "path", path, "error", err)
		return rep, fmt.Errorf("%w: %s: %w", ErrCloseFailed, path, err)
	}
	s.logger.Debug("zipstore: archive written", "op", op, "path", path,
		"written", len(rep.Written), "failed", len(rep.Failed))
	return rep, nil
}

func (s *Store) writeEntry(w *archive.Writer, e Entry, opts *Options) (int, error) {
	payload, err := Encode(e.Name, e.Value, opts)
	if err != nil {
		return 0, err
	}
	return s.writePayload(w, e.Name, payload)
}

func (s *Store) writePayload(w *archive.Writer, name string, payload []byte) (int, error) {
	if s.encryptor != nil {
		sealed, err := s.encryptor.Encrypt(payload)
		if err != nil {
			return 0, fmt.Errorf("%w: encrypt: %w", ErrEncodeFailed, err)
		}
		payload = sealed
	}
	if err := w.BeginEntry(name); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEntryFailed, err)
	}
	if err := w.Write(payload); err != nil {
		// the partial entry stays in the archive; the Report marks it failed
		_ = w.EndEntry()
		return 0, fmt.Errorf("%w: %w", ErrEntryFailed, err)
	}
	if err := w.EndEntry(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEntryFailed, err)
	}
	return len(payload), nil
}

// ────────────────────────────────────────────────────────────────────────────
// Read path
// ────────────────────────────────────────────────────────────────────────────

// Read decodes the entry name from the archive at path. Any failure (the
// archive cannot be opened, the entry is missing, or decoding fails) is
// logged and def is returned instead.
func (s *Store) Read(path, name string, def any) any {
	v, err := s.ReadValue(path, name)
	if err != nil {
		s.logger.Warn("zipstore: read fell back to default", "path", path, "entry", name, "error", err)
		return def
	}
	return v
}

// ReadValue is Read without the fallback.
func (s *Store) ReadValue(path, name string) (any, error) {
	data, err := s.ReadBytes(path, name)
	if err != nil {
		return nil, err
	}
	v, err := Decode(name, data)
	if err != nil {
		s.stats.Errors.Add(1)
		s.metrics.RecordError("read", extOf(name))
		return nil, err
	}
	return v, nil
}

// ReadBytes returns the raw payload of entry name, without decoding.
func (s *Store) ReadBytes(path, name string) ([]byte, error) {
	s.stats.Reads.Add(1)
	start := s.cfg.Clock.Now()
	defer func() { s.metrics.RecordLatency("read", s.cfg.Clock.Now().Sub(start)) }()

	r, err := archive.Open(s.fs, path)
	if err != nil {
		s.stats.Errors.Add(1)
		s.metrics.RecordError("read", "")
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailed, path, err)
	}
	data, err := r.ReadEntry(name)
	_ = r.Close()
	if err != nil {
		s.stats.Errors.Add(1)
		s.metrics.RecordError("read", extOf(name))
		if errors.Is(err, archive.ErrEntryNotFound) {
			return nil, fmt.Errorf("%w: %q in %s", ErrEntryNotFound, name, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	if s.encryptor != nil {
		data, err = s.encryptor.Decrypt(data)
		if err != nil {
			s.stats.Errors.Add(1)
			return nil, fmt.Errorf("%w: decrypt %q: %w", ErrDecodeFailed, name, err)
		}
	}
	s.metrics.RecordEntry("read", extOf(name))
	s.metrics.RecordBytes("read", int64(len(data)))
	return data, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Remove
// ────────────────────────────────────────────────────────────────────────────

// Remove deletes the named entries by rewriting the archive into a temp
// file without them and swapping it into place. Names not present are
// ignored. If either archive cannot be opened the original is untouched.
func (s *Store) Remove(path string, names ...string) error {
	s.stats.Removes.Add(1)
	start := s.cfg.Clock.Now()
	defer func() { s.metrics.RecordLatency("remove", s.cfg.Clock.Now().Sub(start)) }()

	del := make(map[string]struct{}, len(names))
	for _, n := range names {
		del[n] = struct{}{}
	}
	dropped, err := archive.Rewrite(s.fs, path, func(name string) bool {
		_, gone := del[name]
		return !gone
	}, s.archiveOptions())
	if err != nil {
		s.stats.Errors.Add(1)
		s.metrics.RecordError("remove", "")
		s.logger.Error("zipstore: remove failed", "path", path, "error", err)
		if errors.Is(err, archive.ErrFinalize) {
			return fmt.Errorf("%w: %s: %w", ErrCloseFailed, path, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrOpenFailed, path, err)
	}
	for _, n := range dropped {
		s.metrics.RecordEntry("remove", extOf(n))
	}
	s.logger.Debug("zipstore: entries removed", "path", path, "removed", len(dropped))
	return nil
}

// ────────────────────────────────────────────────────────────────────────────
// List / Entries
// ────────────────────────────────────────────────────────────────────────────

// List returns the names of entries in the archive at path, in archive
// order, that start with prefix and end with suffix. Empty filters match
// everything. If the archive cannot be opened List returns an empty slice
// and the error.
func (s *Store) List(path, prefix, suffix string) ([]string, error) {
	s.stats.Lists.Add(1)
	r, err := archive.Open(s.fs, path)
	if err != nil {
		s.stats.Errors.Add(1)
		s.metrics.RecordError("list", "")
		s.logger.Error("zipstore: list failed", "path", path, "error", err)
		return []string{}, fmt.Errorf("%w: %s: %w", ErrOpenFailed, path, err)
	}
	defer r.Close()

	out := []string{}
	for _, name := range r.Names() {
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) {
			out = append(out, name)
		}
	}
	return out, nil
}

// Entries returns name, size and modification time of every entry.
func (s *Store) Entries(path string) ([]EntryInfo, error) {
	s.stats.Lists.Add(1)
	r, err := archive.Open(s.fs, path)
	if err != nil {
		s.stats.Errors.Add(1)
		s.metrics.RecordError("list", "")
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailed, path, err)
	}
	defer r.Close()
	return r.Entries(), nil
}

// ────────────────────────────────────────────────────────────────────────────
// Stats
// ────────────────────────────────────────────────────────────────────────────

// Stats returns a snapshot of operation counters.
func (s *Store) Stats() Stats {
	return Stats{
		Writes:         s.stats.Writes.Load(),
		Reads:          s.stats.Reads.Load(),
		Removes:        s.stats.Removes.Load(),
		Lists:          s.stats.Lists.Load(),
		EntriesWritten: s.stats.EntriesWritten.Load(),
		EntriesFailed:  s.stats.EntriesFailed.Load(),
		Errors:         s.stats.Errors.Load(),
	}
}
