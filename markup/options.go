package markup

import (
	"log/slog"

	"github.com/iw2rmb/inkwell/model"
)

// Options controls Parse and Serialize.
type Options struct {
	// Schema validates parsed documents. Nil means model.DefaultSchema.
	Schema *model.Schema
	// Sanitize runs input through the note HTML policy before parsing.
	Sanitize bool
	// Minify minifies serialized output.
	Minify bool
	// Logger receives debug records for elements Parse drops or unwraps.
	// Nil means slog.Default.
	Logger *slog.Logger
}

func (o Options) schema() *model.Schema {
	if o.Schema == nil {
		return model.DefaultSchema()
	}
	return o.Schema
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
