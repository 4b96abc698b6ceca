package viewsql

import (
	"fmt"
	"strings"
)

// orderByClauses renders the ORDER BY list for either the flat or the
// grouped shape (spec.md §4.5). Col* sort directions never produce an
// entry here: they feed view_get_data's column ordering only.
func (qc *queryContext) orderByClauses() []string {
	if len(qc.cfg.GroupBy) == 0 {
		return qc.orderByFlat()
	}
	return qc.orderByGrouped()
}

func (qc *queryContext) orderByFlat() []string {
	var clauses []string
	for _, s := range qc.cfg.Sort {
		if !qc.isRowSort(s.Direction) {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s %s", qc.colName(s.Column), s.Direction.SQL()))
	}
	return clauses
}

func (qc *queryContext) orderByGrouped() []string {
	split := len(qc.cfg.SplitBy) > 0
	n := len(qc.cfg.GroupBy)

	var clauses []string
	for gidx := 0; gidx < n; gidx++ {
		clauses = append(clauses, qc.rollupDiscriminator(gidx, split, n))

		isLeaf := gidx == n-1
		for sidx, s := range qc.cfg.Sort {
			if !qc.isRowSort(s.Direction) {
				continue
			}
			dir := s.Direction.SQL()
			switch {
			case split && isLeaf:
				clauses = append(clauses, fmt.Sprintf("__SORT_%d__ %s", sidx, dir))
			case split && !isLeaf:
				clauses = append(clauses, fmt.Sprintf("first(__SORT_%d__) OVER __WINDOW_%d__ %s", sidx, gidx, dir))
			case !split && isLeaf:
				agg := qc.getAggregate(s.Column)
				clauses = append(clauses, fmt.Sprintf("%s(%s) %s", agg, qc.colName(s.Column), dir))
			default:
				agg := qc.getAggregate(s.Column)
				clauses = append(clauses, fmt.Sprintf("first(%s(%s)) OVER __WINDOW_%d__ %s", agg, qc.colName(s.Column), gidx, dir))
			}
		}

		clauses = append(clauses, fmt.Sprintf("%s ASC", qc.rowPathAliases[gidx]))
	}
	return clauses
}

// rollupDiscriminator emits the per-level tiebreaker that separates
// ancestor rollup rows from their descendants: a shifted grouping-id
// comparison when split_by is non-empty (the grouping function has
// already collapsed the group_by levels into one bitmask column), or a
// direct grouping-function call over the accumulated group_by prefix
// otherwise.
func (qc *queryContext) rollupDiscriminator(gidx int, split bool, n int) string {
	if split {
		shift := n - 1 - gidx
		if shift > 0 {
			return fmt.Sprintf("(__GROUPING_ID__ >> %d) DESC", shift)
		}
		return "__GROUPING_ID__ DESC"
	}

	groupsUpTo := make([]string, gidx+1)
	for i := 0; i <= gidx; i++ {
		groupsUpTo[i] = qc.colName(qc.cfg.GroupBy[i])
	}
	return fmt.Sprintf("%s(%s) DESC", qc.groupingFn, strings.Join(groupsUpTo, ", "))
}
