// Package markup converts documents to and from HTML.
//
// The HTML dialect is the one stored in note files: images sit in a sized
// container div, task lists carry data attributes, headings carry their
// anchor ids and cells carry an inline text-align style. Parse accepts any
// HTML and keeps what the schema can represent; Serialize always emits the
// canonical form.
package markup
