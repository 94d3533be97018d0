package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/transform"
)

// CompositionState tracks whether an input method is mid-composition.
type CompositionState uint8

const (
	CompositionIdle CompositionState = iota
	CompositionComposing
)

func (s CompositionState) String() string {
	if s == CompositionComposing {
		return "composing"
	}
	return "idle"
}

var ErrDuplicatePlugin = errors.New("duplicate plugin key")

type Config struct {
	// Doc is the initial document. Nil starts with one empty paragraph.
	Doc    *model.Node
	Schema *model.Schema
	// Selection and Version restore a saved session. The selection is
	// clamped to Doc.
	Selection model.Selection
	Version   uint64
	// Plugins run in slice order.
	Plugins []Plugin
	// HistoryLimit bounds the undo stack. 0 means 1000; negative disables
	// history.
	HistoryLimit int
	Logger       *slog.Logger
	OnChange     func(ChangeEvent)
}

type Engine struct {
	schema  *model.Schema
	doc     *model.Node
	sel     model.Selection
	comp    CompositionState
	plugins []Plugin
	byKey   map[string]Plugin

	version uint64
	limit   int
	hist    historyState

	log      *slog.Logger
	onChange func(ChangeEvent)
}

// New validates the initial document and registers plugins.
func New(cfg Config) (*Engine, error) {
	if cfg.Schema == nil {
		cfg.Schema = model.DefaultSchema()
	}
	if cfg.Doc == nil {
		cfg.Doc = model.Doc(model.Paragraph())
	}
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = 1000
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if err := cfg.Schema.Check(cfg.Doc); err != nil {
		return nil, fmt.Errorf("initial document: %w", err)
	}
	e := &Engine{
		schema:   cfg.Schema,
		doc:      cfg.Doc,
		sel:      cfg.Selection.Clamp(cfg.Doc.ContentSize()),
		version:  cfg.Version,
		byKey:    make(map[string]Plugin, len(cfg.Plugins)),
		limit:    cfg.HistoryLimit,
		log:      cfg.Logger,
		onChange: cfg.OnChange,
	}
	for _, p := range cfg.Plugins {
		if _, dup := e.byKey[p.Key()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlugin, p.Key())
		}
		e.byKey[p.Key()] = p
		e.plugins = append(e.plugins, p)
	}
	return e, nil
}

func (e *Engine) Doc() *model.Node { return e.doc }

func (e *Engine) Schema() *model.Schema { return e.schema }

func (e *Engine) Selection() model.Selection { return e.sel }

func (e *Engine) Version() uint64 { return e.version }

// Plugin returns the plugin registered under key.
func (e *Engine) Plugin(key string) (Plugin, bool) {
	p, ok := e.byKey[key]
	return p, ok
}

// SetSelection moves the selection, clamped to the document.
func (e *Engine) SetSelection(sel model.Selection) {
	next := sel.Clamp(e.doc.ContentSize())
	if next == e.sel {
		return
	}
	before := e.version
	e.sel = next
	e.version++
	e.emit(before, nil)
}

func (e *Engine) StartComposition() { e.comp = CompositionComposing }

func (e *Engine) EndComposition() { e.comp = CompositionIdle }

func (e *Engine) Composition() CompositionState { return e.comp }

func (e *Engine) Composing() bool { return e.comp == CompositionComposing }

// Dispatch applies tr and runs the plugin pipeline. A transaction that
// violates the schema is returned as an error and changes nothing.
func (e *Engine) Dispatch(tr *transform.Transaction) error {
	res, err := transform.ApplySchema(e.schema, e.doc, tr)
	if err != nil {
		e.log.Debug("transaction rejected", "err", err)
		return err
	}
	c := &Commit{
		Before:       e.doc,
		Doc:          res.Doc,
		Mapping:      res.Mapping,
		Transactions: []*transform.Transaction{tr},
		Composing:    e.Composing(),
	}
	rootMaps := len(res.Mapping.Maps())

	for _, p := range e.plugins {
		a, ok := p.(Appender)
		if !ok {
			continue
		}
		follow := a.AppendTransaction(c)
		if follow == nil || follow.Empty() {
			continue
		}
		fr, err := transform.ApplySchema(e.schema, c.Doc, follow)
		if err != nil {
			e.log.Warn("plugin follow-up discarded", "plugin", p.Key(), "err", err)
			continue
		}
		follow.SetMeta(transform.MetaAppendedBy, p.Key())
		c.Doc = fr.Doc
		c.Mapping.AppendMapping(fr.Mapping)
		c.Transactions = append(c.Transactions, follow)
		e.log.Debug("plugin follow-up applied", "plugin", p.Key(), "steps", len(follow.Steps()))
	}

	if sel, ok := tr.Selection(); ok {
		after := transform.NewMapping(c.Mapping.Maps()[rootMaps:]...)
		c.Selection = transform.MapSelection(after, sel)
	} else {
		c.Selection = transform.MapSelection(c.Mapping, e.sel)
	}
	c.Selection = c.Selection.Clamp(c.Doc.ContentSize())

	for _, p := range e.plugins {
		if sa, ok := p.(StateApplier); ok {
			sa.ApplyCommit(c)
		}
	}

	if c.DocChanged() && tr.AddToHistory() {
		e.recordUndo(e.snapshot())
	}
	if !c.DocChanged() && c.Selection == e.sel && len(tr.MetaMap()) == 0 {
		return nil
	}
	before := e.version
	e.doc = c.Doc
	e.sel = c.Selection
	e.version++
	e.emit(before, c)
	return nil
}

func (e *Engine) emit(before uint64, c *Commit) {
	if e.onChange == nil {
		return
	}
	e.onChange(buildChangeEvent(e, before, c))
}
