package zipstore

import (
	"errors"
	"fmt"
)

// EntryError records why one entry was skipped.
type EntryError struct {
	Name string
	Err  error
}

func (e EntryError) Error() string { return fmt.Sprintf("%s: %v", e.Name, e.Err) }

func (e EntryError) Unwrap() error { return e.Err }

// Report is the per-entry outcome of a write. Written lists the entries that
// made it into the archive in request order; Failed lists the ones that were
// skipped. An entry that failed while its payload was being written may
// still leave a truncated entry of that name in the archive, since a started
// zip entry cannot be withdrawn. If the call also returned an error the
// archive was not replaced and Written describes nothing on disk.
type Report struct {
	Path    string
	Written []string
	Failed  []EntryError
}

// OK reports whether every requested entry was written.
func (r *Report) OK() bool {
	return r != nil && len(r.Failed) == 0
}

// Err returns nil when every entry was written, otherwise ErrPartialWrite
// joined with each entry's error.
func (r *Report) Err() error {
	if r == nil || len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failed)+1)
	errs = append(errs, ErrPartialWrite)
	for _, f := range r.Failed {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

func (r *Report) fail(name string, err error) {
	r.Failed = append(r.Failed, EntryError{Name: name, Err: err})
}
