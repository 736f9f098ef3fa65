package producttree

import "errors"

// Sentinel kinds a caller can test for with errors.Is. The concrete errors
// returned by this package wrap one of these with fmt.Errorf("...: %w", ...).
var (
	// ErrStorage covers anything the level store can't read or write:
	// missing directories, missing or truncated level files.
	ErrStorage = errors.New("storage error")

	// ErrInvariant covers tree-shape violations: a root level that isn't
	// exactly one element, a manifest/count mismatch, a zero modulus.
	ErrInvariant = errors.New("invariant violation")

	// ErrInputFormat covers malformed CSV rows handed in by the moduli
	// package before the tree ever sees them.
	ErrInputFormat = errors.New("input format error")

	// ErrArithmetic covers failures surfaced by the bigint primitive
	// itself, e.g. division by zero, which indicates upstream corruption.
	ErrArithmetic = errors.New("arithmetic error")
)
