package viewsql

import (
	"fmt"

	"github.com/pivotdb/viewsql/viewconfig"
)

// queryContext is the per-call resolved state table_make_view builds
// once and threads through every clause builder: resolved group-column
// expressions, the grouping function name, and the synthesized
// row-path aliases (spec.md §3's QueryContext entity, §4.3's
// construction rules). It is built fresh for every TableMakeView call
// and never mutated afterward.
type queryContext struct {
	table          string
	cfg            *viewconfig.ViewConfig
	groupingFn     string
	groupColNames  []string
	rowPathAliases []string
}

func newQueryContext(c *Compiler, table string, cfg *viewconfig.ViewConfig) *queryContext {
	qc := &queryContext{
		table:      table,
		cfg:        cfg,
		groupingFn: c.groupingFn(),
	}

	qc.groupColNames = make([]string, len(cfg.GroupBy))
	for i, col := range cfg.GroupBy {
		qc.groupColNames[i] = qc.colName(col)
	}

	qc.rowPathAliases = make([]string, len(cfg.GroupBy))
	for i := range cfg.GroupBy {
		qc.rowPathAliases[i] = rowPathAlias(i)
	}

	return qc
}

// rowPathAlias names the i'th row-path column, __ROW_PATH_0__,
// __ROW_PATH_1__, ...
func rowPathAlias(i int) string {
	return fmt.Sprintf("__ROW_PATH_%d__", i)
}

// colName resolves col: an expressions override (substituted
// verbatim, already quoted by the caller) takes priority over the
// default quoted identifier, even when col also names a schema column
// (spec.md §9: expressions is an authoritative override).
func (qc *queryContext) colName(col string) string {
	if expr, ok := qc.cfg.Expressions[col]; ok {
		return expr
	}
	return quoteIdent(col)
}

// getAggregate returns the configured aggregate's name for col, or
// any_value if none was configured (spec.md §4.3).
func (qc *queryContext) getAggregate(col string) string {
	if agg, ok := qc.cfg.Aggregates[col]; ok {
		return agg.Name
	}
	return "any_value"
}
