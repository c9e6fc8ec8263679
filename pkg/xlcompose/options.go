// Package xlcompose extracts embedded images and drawn shapes from xlsx
// workbooks, resolves their cell-anchor geometry to absolute pixels, detects
// overlapping objects and renders flattened composites.
package xlcompose

import "log/slog"

// Options configures extraction behavior.
type Options struct {
	// Logger receives warnings for recoverable per-object failures.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
	// Composites specifies whether flattened overlay renders are produced.
	// If nil, defaults to true.
	Composites *bool
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldRenderComposites returns whether composites are rendered.
func (o Options) ShouldRenderComposites() bool {
	if o.Composites != nil {
		return *o.Composites
	}
	return true
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
