// Package rillerr implements Rill's closed error taxonomy (spec.md §7):
// typed error values carrying a kind, a stable errorId, a source location,
// and structured context, plus the help-URL and call-stack-extraction
// helpers spec.md §6 exposes at the package boundary.
//
// Modeled on go-dws's internal/interp/errors package (category +
// message-catalog + %w-wrapped-cause shape), generalized from its five
// compiler-oriented categories to spec.md's eight runtime error kinds.
package rillerr

// Kind is one of the eight closed error kinds spec.md §7 defines. All are
// runtime (category "R") errors — the lexer/parser categories ("L"/"P")
// and the check category ("C") exist only in the errorId pattern for
// external collaborators this package doesn't raise.
type Kind string

const (
	UndefinedVariable Kind = "UNDEFINED_VARIABLE"
	UndefinedFunction Kind = "UNDEFINED_FUNCTION"
	UndefinedMethod   Kind = "UNDEFINED_METHOD"
	TypeError         Kind = "TYPE_ERROR"
	LimitExceeded     Kind = "LIMIT_EXCEEDED"
	Timeout           Kind = "TIMEOUT"
	Abort             Kind = "ABORT"
	AutoException     Kind = "AUTO_EXCEPTION"
)

// errorIDs assigns each Kind a stable RILL-R0NN identifier. Never reorder
// or reuse a number: errorId is part of the public error surface (spec.md
// §6) and the help-URL helper derives a documentation anchor from it.
var errorIDs = map[Kind]string{
	UndefinedVariable: "RILL-R001",
	UndefinedFunction: "RILL-R002",
	UndefinedMethod:   "RILL-R003",
	TypeError:         "RILL-R004",
	LimitExceeded:     "RILL-R005",
	Timeout:           "RILL-R006",
	Abort:             "RILL-R007",
	AutoException:     "RILL-R008",
}

// ErrorID returns the stable errorId for k.
func ErrorID(k Kind) string {
	return errorIDs[k]
}
