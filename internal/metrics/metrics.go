// Package metrics provides the MetricsRecorder interface and a noop implementation.
package metrics

import "time"

// MetricsRecorder is the interface for recording archive operation metrics.
// op is one of "write", "append", "read", "remove" or "list"; ext is the
// lower-cased entry extension.
type MetricsRecorder interface {
	RecordEntry(op, ext string)
	RecordError(op, ext string)
	RecordLatency(op string, d time.Duration)
	RecordBytes(op string, n int64)
}

// Noop is a MetricsRecorder that discards all data.
type Noop struct{}

func (Noop) RecordEntry(op, ext string)               {}
func (Noop) RecordError(op, ext string)               {}
func (Noop) RecordLatency(op string, d time.Duration) {}
func (Noop) RecordBytes(op string, n int64)           {}
