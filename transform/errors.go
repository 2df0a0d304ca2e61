package transform

import "github.com/ZanzyTHEbar/errbuilder-go"

// The four recoverable/fatal error kinds of §7, each carrying an
// errbuilder code. They are recorded in log lines only: Import and
// Export report failure through their bool/empty-string results, not
// by returning these errors.
var (
	// ErrMissingRequiredField: domain/type/name/versions absent at top
	// level, or from/to absent on an edge. Import returns false for the
	// top-level case; an edge missing from/to is logged and the edge is
	// skipped.
	ErrMissingRequiredField = func(field string) error {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("missing required field: " + field)
	}

	// ErrUnknownTemplate: a sub-component references a model not yet
	// present in the hypergraph. Logged, the sub-component is skipped.
	ErrUnknownTemplate = func(templateUID string) error {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("unknown template: " + templateUID)
	}

	// ErrUnknownRelationKind: an edge names a relation type that was
	// never registered. Logged, the edge is skipped.
	ErrUnknownRelationKind = func(kind string) error {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("unknown relation kind: " + kind)
	}

	// ErrAmbiguousExport: export found 0 or >1 candidate for
	// domain/type/name. Logged, Export returns the empty string.
	ErrAmbiguousExport = func(reason string) error {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("ambiguous export: " + reason)
	}
)
