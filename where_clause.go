package viewsql

import (
	"fmt"
	"strings"
)

// whereSQL renders the WHERE clause for cfg.Filter: each clause whose
// term renders to a non-absent literal is ANDed together. A term that
// renders to nothing (a Null scalar, or an empty/all-null array) drops
// that filter entirely (spec.md §4.2).
func (qc *queryContext) whereSQL() string {
	var clauses []string
	for _, f := range qc.cfg.Filter {
		lit, ok := filterTermToSQL(f.Term)
		if !ok {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s %s %s", qc.colName(f.Column), f.Op, lit))
	}
	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}
