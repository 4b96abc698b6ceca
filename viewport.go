package viewsql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pivotdb/viewsql/viewconfig"
)

// ViewGetData implements view_get_data: builds the SELECT projecting a
// view's data columns (optionally column-sorted and sliced) plus, when
// group_by is non-empty, the grouping-id and row-path columns, with an
// optional LIMIT/OFFSET for the requested row window (spec.md §4.7).
func (c *Compiler) ViewGetData(
	viewID string,
	cfg viewconfig.ViewConfig,
	viewport viewconfig.ViewPort,
	schema *viewconfig.Schema,
) (string, error) {
	startRow := viewport.StartRowOr(0)
	startCol := viewport.StartColOr(0)

	limitClause := ""
	if viewport.EndRow != nil {
		limitClause = fmt.Sprintf("LIMIT %d OFFSET %d", *viewport.EndRow-startRow, startRow)
	}

	dataColumns := append([]string{}, schema.DataColumns()...)

	if dir, ok := colSortDirection(cfg.Sort); ok {
		sort.SliceStable(dataColumns, func(i, j int) bool {
			if dir {
				return dataColumns[i] < dataColumns[j]
			}
			return dataColumns[i] > dataColumns[j]
		})
	}

	dataColumns = sliceColumns(dataColumns, startCol, viewport.EndCol)

	var allColumns []string
	if len(cfg.GroupBy) > 0 {
		allColumns = append(allColumns, `"__GROUPING_ID__"`)
		for i := range cfg.GroupBy {
			allColumns = append(allColumns, fmt.Sprintf(`"%s"`, rowPathAlias(i)))
		}
	}
	for _, col := range dataColumns {
		allColumns = append(allColumns, fmt.Sprintf(`"%s"`, col))
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s", strings.Join(allColumns, ", "), viewID, limitClause)
	return strings.TrimSpace(query), nil
}

// colSortDirection finds the first Col* sort direction in entries, and
// reports whether remaining data columns should be reordered ascending
// (true) or descending (false).
func colSortDirection(entries []viewconfig.Sort) (ascending bool, found bool) {
	for _, s := range entries {
		switch s.Direction {
		case viewconfig.SortColAsc, viewconfig.SortColAscAbs:
			return true, true
		case viewconfig.SortColDesc, viewconfig.SortColDescAbs:
			return false, true
		}
	}
	return false, false
}

func sliceColumns(cols []string, start uint64, end *uint64) []string {
	if start >= uint64(len(cols)) {
		return nil
	}
	cols = cols[start:]
	if end == nil {
		return cols
	}
	take := *end - start
	if take > uint64(len(cols)) {
		take = uint64(len(cols))
	}
	return cols[:take]
}
