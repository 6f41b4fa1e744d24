package archive

import (
	"fmt"

	"github.com/spf13/afero"
)

// Rewrite replaces the archive at path with a copy that holds only the
// entries keep accepts, copied byte for byte. It returns the names that were
// dropped. The original is untouched unless the new archive was fully written.
func Rewrite(fs afero.Fs, path string, keep func(name string) bool, opts Options) ([]string, error) {
	r, err := Open(fs, path)
	if err != nil {
		return nil, err
	}
	opts.inherit(r.Comment())
	w, err := Create(fs, path, opts)
	if err != nil {
		r.Close()
		return nil, err
	}
	var dropped []string
	for _, f := range r.Files() {
		if !keep(f.Name) {
			dropped = append(dropped, f.Name)
			continue
		}
		if err := w.Copy(f); err != nil {
			w.Abort()
			r.Close()
			return nil, fmt.Errorf("%w: copy entry %q: %w", ErrOpen, f.Name, err)
		}
	}
	if err := r.Close(); err != nil {
		w.Abort()
		return nil, fmt.Errorf("%w: close source archive: %w", ErrFinalize, err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return dropped, nil
}
