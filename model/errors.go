package model

import "errors"

var (
	// ErrOutOfRange reports a position outside the document or a range whose
	// bounds cannot be resolved in one parent.
	ErrOutOfRange = errors.New("position out of range")
	// ErrInvalidContent reports a child list that breaks a content rule.
	ErrInvalidContent = errors.New("invalid content")
	// ErrInvalidAttrs reports an attribute record of the wrong kind or with
	// out-of-range values.
	ErrInvalidAttrs = errors.New("invalid attributes")
	// ErrInvalidMark reports a mark that is malformed or not allowed where it
	// was applied.
	ErrInvalidMark = errors.New("invalid mark")
)
