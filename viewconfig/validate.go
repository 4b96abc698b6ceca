package viewconfig

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is shared across calls; go-playground/validator's own docs
// recommend caching one instance rather than constructing it per call.
var validate = validator.New()

type viewPortBounds struct {
	StartRow uint64 `validate:"gte=0"`
	EndRow   uint64 `validate:"gte=0"`
	StartCol uint64 `validate:"gte=0"`
	EndCol   uint64 `validate:"gte=0"`
}

// ValidateViewPort checks the viewport's structural invariants:
// non-negative offsets, and start <= end wherever an end bound is
// present. spec.md's upstream contract already guarantees this of
// callers; this is the defensive check a caller may run anyway before
// handing the viewport to the compiler.
func ValidateViewPort(vp ViewPort) error {
	startRow := vp.StartRowOr(0)
	startCol := vp.StartColOr(0)
	endRow := startRow
	if vp.EndRow != nil {
		endRow = *vp.EndRow
	}
	endCol := startCol
	if vp.EndCol != nil {
		endCol = *vp.EndCol
	}

	if err := validate.Struct(viewPortBounds{
		StartRow: startRow, EndRow: endRow, StartCol: startCol, EndCol: endCol,
	}); err != nil {
		return fmt.Errorf("invalid viewport: %w", err)
	}
	if vp.EndRow != nil && *vp.EndRow < startRow {
		return fmt.Errorf("invalid viewport: end_row %d precedes start_row %d", *vp.EndRow, startRow)
	}
	if vp.EndCol != nil && *vp.EndCol < startCol {
		return fmt.Errorf("invalid viewport: end_col %d precedes start_col %d", *vp.EndCol, startCol)
	}
	return nil
}

type sortEntryBounds struct {
	Direction SortDir `validate:"gte=0,lte=8"`
}

// ValidateViewConfig checks structural invariants on cfg that a
// well-formed upstream parser should already guarantee: every sort
// direction is one of the known variants, every filter clause carries
// a non-empty operator, and every non-gap column entry is non-empty.
func ValidateViewConfig(cfg ViewConfig) error {
	for i, s := range cfg.Sort {
		if err := validate.Struct(sortEntryBounds{Direction: s.Direction}); err != nil {
			return fmt.Errorf("invalid sort entry %d (column %q): %w", i, s.Column, err)
		}
	}
	for i, f := range cfg.Filter {
		if f.Op == "" {
			return fmt.Errorf("invalid filter clause %d (column %q): operator is empty", i, f.Column)
		}
	}
	for i, c := range cfg.Columns {
		if c != nil && *c == "" {
			return fmt.Errorf("invalid column entry %d: empty column name", i)
		}
	}
	return nil
}
