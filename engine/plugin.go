package engine

import (
	"github.com/iw2rmb/inkwell/model"
	"github.com/iw2rmb/inkwell/transform"
)

// Plugin is registered with an Engine under a unique key. Plugins implement
// Appender, StateApplier, or both.
type Plugin interface {
	Key() string
}

// Appender may return a follow-up transaction for a commit. Nil or empty
// transactions are ignored. Positions in the follow-up refer to c.Doc.
type Appender interface {
	Plugin
	AppendTransaction(c *Commit) *transform.Transaction
}

// StateApplier updates plugin state from a finished commit.
type StateApplier interface {
	Plugin
	ApplyCommit(c *Commit)
}

// Commit is everything one Dispatch did: the dispatched transaction followed
// by any plugin follow-ups.
type Commit struct {
	Before       *model.Node
	Doc          *model.Node
	Mapping      *transform.Mapping
	Transactions []*transform.Transaction
	Selection    model.Selection
	Composing    bool
}

// Root returns the dispatched transaction.
func (c *Commit) Root() *transform.Transaction { return c.Transactions[0] }

// ChangesContent reports whether any transaction in the commit altered text
// or structure.
func (c *Commit) ChangesContent() bool {
	for _, tr := range c.Transactions {
		if tr.ChangesContent() {
			return true
		}
	}
	return false
}

// DocChanged reports whether the commit produced a different document.
func (c *Commit) DocChanged() bool { return c.Doc != c.Before }

// Meta looks key up in every transaction of the commit. Later transactions
// win.
func (c *Commit) Meta(key string) (any, bool) {
	for i := len(c.Transactions) - 1; i >= 0; i-- {
		if v, ok := c.Transactions[i].Meta(key); ok {
			return v, true
		}
	}
	return nil, false
}
