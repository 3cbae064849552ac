package scene

import (
	"context"
	"fmt"
)

// ReferenceLister lists the reference identifiers loaded in the open scene.
type ReferenceLister interface {
	References(ctx context.Context) ([]string, error)
}

// ReferenceResolver resolves a reference identifier to its source file. A
// broken or unloaded reference returns an error.
type ReferenceResolver interface {
	ReferenceFile(ctx context.Context, id string) (string, error)
}

// Querier is the read-only host surface used by Resolve.
type Querier interface {
	ReferenceLister
	ReferenceResolver
}

// ReferenceQueryError records a reference that could not be resolved. It is
// never fatal to a resolution.
type ReferenceQueryError struct {
	Reference string `json:"reference" yaml:"reference"`
	Err       error  `json:"-" yaml:"-"`
}

func (e *ReferenceQueryError) Error() string {
	return fmt.Sprintf("querying reference %s: %v", e.Reference, e.Err)
}

func (e *ReferenceQueryError) Unwrap() error { return e.Err }
