package sql

import "gopkg.in/src-d/go-errors.v1"

// Error kinds for the query-processing core. Each Kind is constructed once
// and reused via .New(args...); callers classify an error with .Is(err).
var (
	ErrCatalogMiss         = errors.NewKind("catalog miss: %s")
	ErrTypeMismatch        = errors.NewKind("type mismatch: %s")
	ErrOverflow            = errors.NewKind("integer overflow evaluating %s")
	ErrInvalidSyntax       = errors.NewKind("invalid syntax: %s")
	ErrUnsupportedStmt     = errors.NewKind("unsupported statement: %s")
	ErrStorage             = errors.NewKind("storage error: %s")
	ErrInvariantViolation  = errors.NewKind("invariant violation: %s")
	ErrUnsupportedBinaryOp = errors.NewKind("unsupported binary operator %s for type %s")
	ErrUnsupportedUnaryOp  = errors.NewKind("unsupported unary operator %s for type %s")
)
