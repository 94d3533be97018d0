// Package engine owns an editable document and runs transactions through a
// plugin pipeline.
//
// A dispatched transaction is applied first. Each Appender plugin may then
// contribute one follow-up transaction, applied into the same commit. After
// the appenders, every StateApplier sees the final commit. The whole commit
// is one undo step.
//
// An Engine is not safe for concurrent use.
package engine
