package manifest

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every lookup failure in this package.
var ErrNotFound = errors.New("not found")

// ParseError reports a manifest that could not be decoded at all. No partial
// manifest is returned alongside it.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing manifest: %v", e.Err)
	}
	return fmt.Sprintf("parsing manifest %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ElementError describes a manifest element that was skipped during parsing.
type ElementError struct {
	Element string `json:"element"` // e.g. character[2] "hero"
	Reason  string `json:"reason"`
}

func (e ElementError) Error() string {
	return fmt.Sprintf("%s: %s", e.Element, e.Reason)
}

// NotFoundError is returned when a lookup by key finds nothing.
type NotFoundError struct {
	Kind      string // "character", "collection" or "mesh object"
	Key       string
	Character string // owning character, empty for character lookups
}

func (e *NotFoundError) Error() string {
	if e.Character == "" {
		return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
	}
	return fmt.Sprintf("character %q: %s version %q not found", e.Character, e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NameError is returned when a selection is re-seated to a version the
// character does not have. The previous selection is kept.
type NameError struct {
	Character string
	Version   string
	Err       error
}

func (e *NameError) Error() string {
	return fmt.Sprintf("cannot select version %q on %s: %v", e.Version, e.Character, e.Err)
}

func (e *NameError) Unwrap() error { return e.Err }
