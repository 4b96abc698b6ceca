package viewsql

import (
	"strconv"
	"strings"

	"github.com/pivotdb/viewsql/viewconfig"
)

// scalarToSQL renders s as a SQL literal. Null never appears as an
// emitted literal, so it reports ok=false (spec.md §4.2).
func scalarToSQL(s viewconfig.Scalar) (literal string, ok bool) {
	switch s.Kind {
	case viewconfig.ScalarNull:
		return "", false
	case viewconfig.ScalarBool:
		if s.Bool {
			return "TRUE", true
		}
		return "FALSE", true
	case viewconfig.ScalarFloat:
		return strconv.FormatFloat(s.Float, 'f', -1, 64), true
	case viewconfig.ScalarString:
		return "'" + strings.ReplaceAll(s.Str, "'", "''") + "'", true
	default:
		return "", false
	}
}

// filterTermToSQL renders term, or reports ok=false if it has nothing
// to contribute: a Null scalar, or an array whose every element is
// Null (or which is itself empty).
func filterTermToSQL(term viewconfig.FilterTerm) (literal string, ok bool) {
	switch term.Kind {
	case viewconfig.FilterScalar:
		return scalarToSQL(term.Scalar)
	case viewconfig.FilterArray:
		parts := make([]string, 0, len(term.Array))
		for _, s := range term.Array {
			if lit, ok := scalarToSQL(s); ok {
				parts = append(parts, lit)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return "(" + strings.Join(parts, ", ") + ")", true
	default:
		return "", false
	}
}
