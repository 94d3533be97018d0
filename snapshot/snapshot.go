// Package snapshot saves and restores editor sessions as msgpack.
package snapshot

import (
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/model"
)

var ErrFormatVersion = errors.New("unsupported snapshot format")

// Snapshot is the persisted state of one editing session.
type Snapshot struct {
	Doc       *model.Node
	Selection model.Selection
	Version   uint64
}

// Capture records the current state of e.
func Capture(e *engine.Engine) Snapshot {
	return Snapshot{Doc: e.Doc(), Selection: e.Selection(), Version: e.Version()}
}

// Restore starts an engine from s. Doc, Selection and Version in cfg are
// overwritten.
func Restore(s Snapshot, cfg engine.Config) (*engine.Engine, error) {
	cfg.Doc = s.Doc
	cfg.Selection = s.Selection
	cfg.Version = s.Version
	return engine.New(cfg)
}

type payload struct {
	Format  uint16    `msgpack:"format"`
	Doc     *wireNode `msgpack:"doc"`
	Anchor  uint32    `msgpack:"anchor"`
	Head    uint32    `msgpack:"head"`
	Version uint64    `msgpack:"version"`
	// App is the tag of the writing build, kept for diagnostics.
	App string `msgpack:"app,omitempty"`
}

// Encode writes s to w.
func Encode(w io.Writer, s Snapshot) error {
	doc, err := toWire(s.Doc)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	anchor, err := safecast.Conv[uint32](s.Selection.Anchor)
	if err != nil {
		return fmt.Errorf("snapshot: selection anchor: %w", err)
	}
	head, err := safecast.Conv[uint32](s.Selection.Head)
	if err != nil {
		return fmt.Errorf("snapshot: selection head: %w", err)
	}
	p := payload{
		Format:  inkwell.FormatVersion,
		Doc:     doc,
		Anchor:  anchor,
		Head:    head,
		Version: s.Version,
		App:     inkwell.VersionTag(),
	}
	if err := msgpack.NewEncoder(w).Encode(&p); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// Decode reads a snapshot from r and checks its document against schema.
// A nil schema means model.DefaultSchema.
func Decode(r io.Reader, schema *model.Schema) (Snapshot, error) {
	if schema == nil {
		schema = model.DefaultSchema()
	}
	var p payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	if p.Format != inkwell.FormatVersion {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrFormatVersion, p.Format)
	}
	if p.Doc == nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w: missing document", model.ErrInvalidContent)
	}
	doc, err := fromWire(p.Doc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	if err := schema.Check(doc); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	anchor, err := safecast.Conv[int](p.Anchor)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: selection anchor: %w", err)
	}
	head, err := safecast.Conv[int](p.Head)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: selection head: %w", err)
	}
	sel := model.Selection{Anchor: anchor, Head: head}.Clamp(doc.ContentSize())
	return Snapshot{Doc: doc, Selection: sel, Version: p.Version}, nil
}
