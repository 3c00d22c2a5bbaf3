package catalog

import "errors"

var (
	// ErrMissingID indicates a catalog entry without an identifier.
	ErrMissingID = errors.New("catalog: item has no id")

	// ErrDuplicateID indicates two entries sharing one identifier.
	ErrDuplicateID = errors.New("catalog: duplicate item id")

	// ErrUnknownModule indicates a page without learning modules.
	ErrUnknownModule = errors.New("catalog: unknown module")
)
