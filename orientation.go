package viewsql

import (
	"fmt"
	"strings"

	"github.com/pivotdb/viewsql/viewconfig"
)

// orientation is the tagged sum of the four query shapes a
// (group_by-empty?, split_by-empty?) pair selects between. Each shape
// owns its own clause assembly so "row-path and grouping-id appear
// exactly iff group_by is non-empty" is enforced locally rather than
// threaded through boolean chains (spec.md §9).
type orientation int

const (
	orientationFlat orientation = iota
	orientationGrouped
	orientationPivoted
	orientationGroupedPivoted
)

func (qc *queryContext) orientation() orientation {
	grouped := len(qc.cfg.GroupBy) > 0
	split := len(qc.cfg.SplitBy) > 0
	switch {
	case !grouped && !split:
		return orientationFlat
	case grouped && !split:
		return orientationGrouped
	case !grouped && split:
		return orientationPivoted
	default:
		return orientationGroupedPivoted
	}
}

// buildQuery assembles the inner query that TableMakeView wraps in
// `CREATE ... AS (...)`: the orientation's SELECT/GROUP BY/PIVOT shape,
// followed by WINDOW and ORDER BY (spec.md §4.4).
func (qc *queryContext) buildQuery() string {
	where := qc.whereSQL()

	var query string
	switch qc.orientation() {
	case orientationFlat:
		query = qc.buildFlat(where)
	case orientationGrouped:
		query = qc.buildGrouped(where)
	case orientationPivoted:
		query = qc.buildPivoted(where)
	default:
		query = qc.buildGroupedPivoted(where)
	}

	if windows := qc.windowClauses(); len(windows) > 0 {
		query = fmt.Sprintf("%s WINDOW %s", query, strings.Join(windows, ", "))
	}
	if order := qc.orderByClauses(); len(order) > 0 {
		query = fmt.Sprintf("%s ORDER BY %s", query, strings.Join(order, ", "))
	}
	return query
}

func (qc *queryContext) buildFlat(where string) string {
	return fmt.Sprintf("SELECT %s FROM %s%s", strings.Join(qc.selectClauses(), ", "), qc.table, where)
}

func (qc *queryContext) buildGrouped(where string) string {
	clauses := qc.selectClauses()
	clauses = append(clauses, qc.rowPathSelectClauses()...)
	clauses = append(clauses, qc.groupingIDClause())
	return fmt.Sprintf(
		"SELECT %s FROM %s%s GROUP BY ROLLUP(%s)",
		strings.Join(clauses, ", "), qc.table, where, strings.Join(qc.groupColNames, ", "),
	)
}

func (qc *queryContext) buildPivoted(where string) string {
	selectClauses := qc.selectClauses()
	pivotUsing := qc.pivotUsingFlat()

	splitCols := make([]string, len(qc.cfg.SplitBy))
	for i, c := range qc.cfg.SplitBy {
		splitCols[i] = quoteIdent(c)
	}

	return fmt.Sprintf(
		"SELECT * EXCLUDE (__ROW_NUM__) FROM (PIVOT (SELECT %s, %s, ROW_NUMBER() OVER () as __ROW_NUM__ FROM %s%s) ON %s USING %s GROUP BY __ROW_NUM__)",
		strings.Join(selectClauses, ", "),
		strings.Join(splitCols, ", "),
		qc.table,
		where,
		qc.pivotOnExpr(),
		strings.Join(pivotUsing, ", "),
	)
}

func (qc *queryContext) buildGroupedPivoted(where string) string {
	groupsJoined := strings.Join(qc.groupColNames, ", ")

	innerClauses := qc.selectClauses()
	innerClauses = append(innerClauses, qc.rowPathSelectClauses()...)
	innerClauses = append(innerClauses, qc.groupingIDClause())
	for _, sb := range qc.cfg.SplitBy {
		innerClauses = append(innerClauses, qc.colName(sb))
	}
	for sidx, s := range qc.cfg.Sort {
		if !qc.isRowSort(s.Direction) {
			continue
		}
		agg := qc.getAggregate(s.Column)
		innerClauses = append(innerClauses, fmt.Sprintf(
			"sum(%s(%s)) OVER (PARTITION BY %s(%s), %s) AS __SORT_%d__",
			agg, qc.colName(s.Column), qc.groupingFn, groupsJoined, groupsJoined, sidx,
		))
	}

	innerQuery := fmt.Sprintf(
		"SELECT %s FROM %s%s GROUP BY ROLLUP(%s), %s",
		strings.Join(innerClauses, ", "), qc.table, where, groupsJoined, qc.pivotOnExpr(),
	)

	pivotUsing := strings.Join(qc.selectClauses(), ", ")

	rowIDCols := append([]string{}, qc.rowPathAliases...)
	rowIDCols = append(rowIDCols, "__GROUPING_ID__")
	for sidx, s := range qc.cfg.Sort {
		if !qc.isRowSort(s.Direction) {
			continue
		}
		rowIDCols = append(rowIDCols, fmt.Sprintf("__SORT_%d__", sidx))
	}

	return fmt.Sprintf(
		"SELECT * FROM (PIVOT (%s) ON %s USING %s GROUP BY %s)",
		innerQuery, qc.pivotOnExpr(), pivotUsing, strings.Join(rowIDCols, ", "),
	)
}

// isRowSort reports whether dir contributes a __SORT_i__ projection
// and ORDER BY entry: any direction except None and the four Col*
// variants.
func (qc *queryContext) isRowSort(dir viewconfig.SortDir) bool {
	return dir != viewconfig.SortNone && !dir.IsColSort()
}
