package viewconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivotdb/viewsql/viewconfig"
)

func TestSortDirIsColSort(t *testing.T) {
	colSorts := []viewconfig.SortDir{
		viewconfig.SortColAsc, viewconfig.SortColDesc,
		viewconfig.SortColAscAbs, viewconfig.SortColDescAbs,
	}
	for _, dir := range colSorts {
		assert.True(t, dir.IsColSort(), "expected %v to be a column sort", dir)
	}

	rowSorts := []viewconfig.SortDir{
		viewconfig.SortNone, viewconfig.SortAsc, viewconfig.SortDesc,
		viewconfig.SortAscAbs, viewconfig.SortDescAbs,
	}
	for _, dir := range rowSorts {
		assert.False(t, dir.IsColSort(), "expected %v not to be a column sort", dir)
	}
}

func TestSortDirSQL(t *testing.T) {
	assert.Equal(t, "", viewconfig.SortNone.SQL())
	assert.Equal(t, "ASC", viewconfig.SortAsc.SQL())
	assert.Equal(t, "ASC", viewconfig.SortAscAbs.SQL())
	assert.Equal(t, "ASC", viewconfig.SortColAsc.SQL())
	assert.Equal(t, "ASC", viewconfig.SortColAscAbs.SQL())
	assert.Equal(t, "DESC", viewconfig.SortDesc.SQL())
	assert.Equal(t, "DESC", viewconfig.SortDescAbs.SQL())
	assert.Equal(t, "DESC", viewconfig.SortColDesc.SQL())
	assert.Equal(t, "DESC", viewconfig.SortColDescAbs.SQL())
}

func TestViewPortDefaults(t *testing.T) {
	vp := viewconfig.ViewPort{}
	assert.Equal(t, uint64(0), vp.StartRowOr(0))
	assert.Equal(t, uint64(0), vp.StartColOr(0))

	one := uint64(1)
	vp.StartRow = &one
	assert.Equal(t, uint64(1), vp.StartRowOr(0))
}

func TestAggregateConstructors(t *testing.T) {
	single := viewconfig.SingleAggregate("sum")
	assert.Equal(t, viewconfig.AggregateSingle, single.Kind)
	assert.Equal(t, "sum", single.Name)

	multi := viewconfig.MultiAggregate("percentile", "0.5")
	assert.Equal(t, viewconfig.AggregateMulti, multi.Kind)
	assert.Equal(t, "percentile", multi.Name)
	assert.Equal(t, []string{"0.5"}, multi.Args)
}

func TestSchemaInternalColumns(t *testing.T) {
	s := viewconfig.NewSchema().
		Set("__GROUPING_ID__", viewconfig.ColumnTypeInteger).
		Set("value", viewconfig.ColumnTypeFloat).
		Set("category", viewconfig.ColumnTypeString)

	assert.Equal(t, []string{"__GROUPING_ID__", "value", "category"}, s.Columns())
	assert.Equal(t, []string{"value", "category"}, s.DataColumns())
	assert.True(t, viewconfig.IsInternalColumn("__ROW_PATH_0__"))
	assert.False(t, viewconfig.IsInternalColumn("value"))
}
