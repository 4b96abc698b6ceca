package viewsql

import (
	"fmt"
	"strings"
)

// selectClauses builds the core SELECT list shared by every
// orientation: aggregated when group_by is non-empty, plain otherwise.
// Gap entries (nil columns) are skipped (spec.md §4.4).
func (qc *queryContext) selectClauses() []string {
	grouped := len(qc.cfg.GroupBy) > 0

	var clauses []string
	for _, colPtr := range qc.cfg.Columns {
		if colPtr == nil {
			continue
		}
		col := *colPtr
		alias := escapeAlias(col)
		if grouped {
			agg := qc.getAggregate(col)
			clauses = append(clauses, fmt.Sprintf(`%s(%s) as "%s"`, agg, qc.colName(col), alias))
		} else {
			clauses = append(clauses, fmt.Sprintf(`%s as "%s"`, qc.colName(col), alias))
		}
	}
	return clauses
}

// rowPathSelectClauses projects each group_by column under its
// __ROW_PATH_i__ alias (Grouped and Grouped+Pivoted orientations).
func (qc *queryContext) rowPathSelectClauses() []string {
	clauses := make([]string, len(qc.cfg.GroupBy))
	for i, col := range qc.cfg.GroupBy {
		clauses[i] = fmt.Sprintf("%s as %s", qc.colName(col), rowPathAlias(i))
	}
	return clauses
}

// groupingIDClause renders the grouping-bit function call over every
// group_by column.
func (qc *queryContext) groupingIDClause() string {
	return fmt.Sprintf("%s(%s) AS __GROUPING_ID__", qc.groupingFn, strings.Join(qc.groupColNames, ", "))
}

// pivotOnExpr renders the PIVOT ... ON expression: each split_by
// column, quoted, comma-joined.
func (qc *queryContext) pivotOnExpr() string {
	cols := make([]string, len(qc.cfg.SplitBy))
	for i, c := range qc.cfg.SplitBy {
		cols[i] = quoteIdent(c)
	}
	return strings.Join(cols, ", ")
}

// pivotUsingFlat renders PIVOT ... USING for the Pivoted-only
// orientation: first(<col>) as <col>, over the escaped raw column
// names (the inner subquery hasn't aggregated anything yet).
func (qc *queryContext) pivotUsingFlat() []string {
	var clauses []string
	for _, colPtr := range qc.cfg.Columns {
		if colPtr == nil {
			continue
		}
		escaped := escapeAlias(*colPtr)
		clauses = append(clauses, fmt.Sprintf(`first("%s") as "%s"`, escaped, escaped))
	}
	return clauses
}
