package viewsql

import (
	"fmt"
	"strings"
)

// windowClauses renders named WINDOW definitions. They are only needed
// to rank a row sort across the intermediate rollup levels, so they
// are emitted only when there is a sort to rank and more than one
// group_by level to rank across (spec.md §4.6).
func (qc *queryContext) windowClauses() []string {
	n := len(qc.cfg.GroupBy)
	if len(qc.cfg.Sort) == 0 || n <= 1 {
		return nil
	}

	split := len(qc.cfg.SplitBy) > 0

	var clauses []string
	for gidx := 0; gidx < n-1; gidx++ {
		partition := strings.Join(qc.rowPathAliases[:gidx+1], ", ")
		if split {
			shift := n - 1 - gidx
			groupingExpr := "__GROUPING_ID__"
			if shift > 0 {
				groupingExpr = fmt.Sprintf("(__GROUPING_ID__ >> %d)", shift)
			}
			order := strings.Join(qc.rowPathAliases, ", ")
			clauses = append(clauses, fmt.Sprintf(
				"__WINDOW_%d__ AS (PARTITION BY %s, %s ORDER BY %s)", gidx, groupingExpr, partition, order,
			))
			continue
		}

		subGroups := make([]string, gidx+1)
		for i := 0; i <= gidx; i++ {
			subGroups[i] = qc.colName(qc.cfg.GroupBy[i])
		}
		clauses = append(clauses, fmt.Sprintf(
			"__WINDOW_%d__ AS (PARTITION BY %s(%s), %s ORDER BY %s)",
			gidx, qc.groupingFn, strings.Join(subGroups, ", "), partition, strings.Join(qc.groupColNames, ", "),
		))
	}
	return clauses
}
