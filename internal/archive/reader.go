package archive

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

// Reader reads an existing archive.
type Reader struct {
	f  afero.File
	zr *zip.Reader
}

// Open opens the archive at path for reading.
func Open(fs afero.Fs, path string) (*Reader, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat: %w", ErrOpen, err)
	}
	zr, err := zip.NewReader(f, st.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: read central directory: %w", ErrOpen, err)
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	return &Reader{f: f, zr: zr}, nil
}

// Names returns entry names in central directory order.
func (r *Reader) Names() []string {
	names := make([]string, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		names = append(names, f.Name)
	}
	return names
}

// Entries returns metadata for every entry in central directory order.
func (r *Reader) Entries() []Info {
	out := make([]Info, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		out = append(out, Info{
			Name:     f.Name,
			Size:     int64(f.UncompressedSize64),
			Modified: f.Modified,
		})
	}
	return out
}

// Files exposes the raw entries for copying into a Writer.
func (r *Reader) Files() []*zip.File {
	return r.zr.File
}

// Comment returns the archive comment.
func (r *Reader) Comment() string {
	return r.zr.Comment
}

// ReadEntry returns the payload of the entry named name. When the name
// occurs more than once the last occurrence wins.
func (r *Reader) ReadEntry(name string) ([]byte, error) {
	var found *zip.File
	for _, f := range r.zr.File {
		if f.Name == name {
			found = f
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, name)
	}
	rc, err := found.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %q: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read entry %q: %w", name, err)
	}
	return data, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}
