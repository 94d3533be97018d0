// Package transform applies edits to documents as atomic transactions.
//
// A Transaction is an ordered list of steps plus a metadata side-channel.
// Applying it yields a new document and a Mapping that translates positions
// in the old document to positions in the new one. Positions in each step are
// interpreted against the document produced by the steps before it.
package transform
