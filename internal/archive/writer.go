package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AndrewDonelson/zipstore/internal/clock"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

// Writer writes a new archive into a temp file and replaces path on Close.
type Writer struct {
	fs      afero.Fs
	path    string
	tmp     afero.File
	zw      *zip.Writer
	opts    Options
	cur     io.Writer
	curName string
	closed  bool
}

// Create opens a writer that truncates path on Close.
func Create(fs afero.Fs, path string, opts Options) (*Writer, error) {
	opts.defaults()
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create directory: %w", ErrOpen, err)
	}
	tmp, err := afero.TempFile(fs, dir, "zipstore_*.tmp")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file: %w", ErrOpen, err)
	}
	zw := zip.NewWriter(tmp)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	comment := opts.Comment
	if comment == "" {
		comment = opts.NewComment
	}
	if comment != "" {
		if err := zw.SetComment(comment); err != nil {
			_ = tmp.Close()
			_ = fs.Remove(tmp.Name())
			return nil, fmt.Errorf("%w: set comment: %w", ErrOpen, err)
		}
	}
	return &Writer{fs: fs, path: path, tmp: tmp, zw: zw, opts: opts}, nil
}

// OpenAppend opens a writer whose archive starts with every entry of the
// archive at path, copied raw. A missing archive is treated as empty.
func OpenAppend(fs afero.Fs, path string, opts Options) (*Writer, error) {
	r, err := Open(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return Create(fs, path, opts)
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	opts.inherit(r.Comment())
	w, err := Create(fs, path, opts)
	if err != nil {
		return nil, err
	}
	for _, f := range r.zr.File {
		if err := w.zw.Copy(f); err != nil {
			w.Abort()
			return nil, fmt.Errorf("%w: copy entry %q: %w", ErrOpen, f.Name, err)
		}
	}
	return w, nil
}

// BeginEntry starts a new entry named name. Names use '/' as separator;
// names containing a backslash are rejected.
func (w *Writer) BeginEntry(name string) error {
	if w.closed {
		return ErrClosed
	}
	if w.cur != nil {
		return fmt.Errorf("%w: %q", ErrEntryOpen, w.curName)
	}
	if name == "" {
		return ErrEmptyName
	}
	if strings.Contains(name, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	fw, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   w.opts.Method.zipMethod(),
		Modified: clock.DOSTime(w.opts.Clock.Now()),
	})
	if err != nil {
		return fmt.Errorf("begin entry %q: %w", name, err)
	}
	w.cur, w.curName = fw, name
	return nil
}

// Write appends p to the open entry.
func (w *Writer) Write(p []byte) error {
	if w.cur == nil {
		return ErrNoEntry
	}
	if _, err := w.cur.Write(p); err != nil {
		return fmt.Errorf("write entry %q: %w", w.curName, err)
	}
	return nil
}

// EndEntry finishes the open entry.
func (w *Writer) EndEntry() error {
	if w.cur == nil {
		return ErrNoEntry
	}
	w.cur, w.curName = nil, ""
	return nil
}

// Copy adds f to the archive without recompressing it.
func (w *Writer) Copy(f *zip.File) error {
	if w.closed {
		return ErrClosed
	}
	if w.cur != nil {
		return fmt.Errorf("%w: %q", ErrEntryOpen, w.curName)
	}
	return w.zw.Copy(f)
}

// Close finalizes the archive and moves it over the target path. On any
// failure the temp file is removed and the target is left untouched.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true
	w.cur = nil
	tmpName := w.tmp.Name()
	if err := w.zw.Close(); err != nil {
		_ = w.tmp.Close()
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("%w: finalize archive: %w", ErrFinalize, err)
	}
	if err := w.tmp.Close(); err != nil {
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %w", ErrFinalize, err)
	}
	if err := w.fs.Remove(w.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("%w: remove original: %w", ErrFinalize, err)
	}
	if err := w.fs.Rename(tmpName, w.path); err != nil {
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("%w: rename temp file: %w", ErrFinalize, err)
	}
	return nil
}

// Abort discards the archive being written.
func (w *Writer) Abort() {
	if w.closed {
		return
	}
	w.closed = true
	_ = w.tmp.Close()
	_ = w.fs.Remove(w.tmp.Name())
}
