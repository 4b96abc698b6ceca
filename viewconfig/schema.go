package viewconfig

import "github.com/pivotdb/viewsql/internal/ordered"

// internalPrefix marks synthetic columns (__ROW_PATH_0__, __GROUPING_ID__,
// __SORT_0__, ...) that view_get_data hides from the viewport projection.
const internalPrefix = "__"

// ColumnType is the engine-reported type of a schema column. The
// compiler never branches on it; it exists so Schema can carry the
// same information a real DESCRIBE result would.
type ColumnType int

const (
	ColumnTypeUnknown ColumnType = iota
	ColumnTypeString
	ColumnTypeInteger
	ColumnTypeFloat
	ColumnTypeBoolean
	ColumnTypeDate
	ColumnTypeDatetime
)

// Schema is an insertion-ordered column-name to ColumnType mapping, as
// produced by a DESCRIBE against a view. Order matters: view_get_data's
// default column ordering follows Schema's insertion order.
type Schema struct {
	m *ordered.Map[string, ColumnType]
}

// NewSchema returns an empty Schema.
func NewSchema() *Schema {
	return &Schema{m: ordered.NewMap[string, ColumnType]()}
}

// Set inserts or updates a column's type, preserving first-insertion
// order.
func (s *Schema) Set(column string, typ ColumnType) *Schema {
	s.m.Store(column, typ)
	return s
}

// Get returns the type stored for column, if any.
func (s *Schema) Get(column string) (ColumnType, bool) {
	return s.m.Load(column)
}

// Columns returns every column name in insertion order.
func (s *Schema) Columns() []string {
	return s.m.Keys()
}

// DataColumns returns the columns that are not internal (__-prefixed),
// in insertion order.
func (s *Schema) DataColumns() []string {
	var out []string
	for _, c := range s.m.Keys() {
		if !IsInternalColumn(c) {
			out = append(out, c)
		}
	}
	return out
}

// IsInternalColumn reports whether name is a synthetic column the
// compiler generates (row-path aliases, grouping id, sort projections).
func IsInternalColumn(name string) bool {
	return len(name) >= len(internalPrefix) && name[:len(internalPrefix)] == internalPrefix
}

// ParseColumnType maps a DESCRIBE-style type name (as it would appear
// in a wire-format schema entry) to a ColumnType, defaulting to
// ColumnTypeUnknown for anything unrecognized.
func ParseColumnType(s string) ColumnType {
	switch s {
	case "string":
		return ColumnTypeString
	case "integer":
		return ColumnTypeInteger
	case "float":
		return ColumnTypeFloat
	case "boolean":
		return ColumnTypeBoolean
	case "date":
		return ColumnTypeDate
	case "datetime":
		return ColumnTypeDatetime
	default:
		return ColumnTypeUnknown
	}
}
