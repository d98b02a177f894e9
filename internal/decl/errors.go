package decl

import (
	"fmt"

	"go.eggybyte.com/classgen/core/errors"
)

// Kind names the list a declaration item came from.
type Kind string

const (
	KindVariable Kind = "variable"
	KindMethod   Kind = "method"
)

// MalformedDeclarationError describes one item that could not be decomposed.
// It is carried inside a MALFORMED_DECLARATION *errors.E; use errors.As to
// reach it.
type MalformedDeclarationError struct {
	Kind     Kind
	Item     string // raw item text, trimmed
	Position int    // 1-based position among its siblings
	Reason   string
}

func (e *MalformedDeclarationError) Error() string {
	return fmt.Sprintf("malformed %s declaration %q at position %d: %s", e.Kind, e.Item, e.Position, e.Reason)
}

func malformed(op string, kind Kind, it item, reason string) error {
	detail := &MalformedDeclarationError{
		Kind:     kind,
		Item:     it.trimmed(),
		Position: it.pos,
		Reason:   reason,
	}
	return errors.Build(errors.CodeMalformedDeclaration).
		WithOp(op).
		WithErr(detail).
		WithDetails("kind", string(kind), "item", detail.Item, "position", it.pos).
		Err()
}
