package viewsql_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivotdb/viewsql"
	"github.com/pivotdb/viewsql/viewconfig"
)

func strPtr(s string) *string { return &s }

func TestGetHostedTables(t *testing.T) {
	c := viewsql.New()
	sql, err := c.GetHostedTables()
	require.NoError(t, err)
	assert.Equal(t, "SHOW ALL TABLES", sql)
}

func TestTableSchema(t *testing.T) {
	c := viewsql.New()
	sql, err := c.TableSchema("my_table")
	require.NoError(t, err)
	assert.Equal(t, "DESCRIBE my_table", sql)
}

func TestTableSize(t *testing.T) {
	c := viewsql.New()
	sql, err := c.TableSize("my_table")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM my_table", sql)
}

func TestViewDelete(t *testing.T) {
	c := viewsql.New()
	sql, err := c.ViewDelete("my_view")
	require.NoError(t, err)
	assert.Equal(t, "DROP TABLE IF EXISTS my_view", sql)
}

func TestTableMakeViewSimple(t *testing.T) {
	c := viewsql.New()
	cfg := viewconfig.ViewConfig{Columns: []*string{strPtr("col1"), strPtr("col2")}}

	sql, err := c.TableMakeView("source_table", "dest_view", cfg)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sql, "CREATE TABLE dest_view AS"))
	assert.Contains(t, sql, `"col1"`)
	assert.Contains(t, sql, `"col2"`)
}

func TestTableMakeViewWithGroupBy(t *testing.T) {
	c := viewsql.New()
	cfg := viewconfig.ViewConfig{
		Columns: []*string{strPtr("value")},
		GroupBy: []string{"category"},
	}

	sql, err := c.TableMakeView("source_table", "dest_view", cfg)
	require.NoError(t, err)

	assert.Contains(t, sql, "GROUP BY ROLLUP")
	assert.Contains(t, sql, "__ROW_PATH_0__")
	assert.Contains(t, sql, "__GROUPING_ID__")
}

func TestTableMakeViewWithGroupByAndSplitBy(t *testing.T) {
	c := viewsql.New()
	cfg := viewconfig.ViewConfig{
		Columns: []*string{strPtr("value")},
		GroupBy: []string{"category"},
		SplitBy: []string{"quarter"},
	}

	sql, err := c.TableMakeView("source_table", "dest_view", cfg)
	require.NoError(t, err)

	assert.Contains(t, sql, "GROUP BY ROLLUP")
	assert.Contains(t, sql, "PIVOT")
	assert.Contains(t, sql, "__ROW_PATH_0__")
	assert.Contains(t, sql, "__GROUPING_ID__")
}

func TestTableMakeViewWithSortGroupByAndSplitBy(t *testing.T) {
	c := viewsql.New()
	cfg := viewconfig.ViewConfig{
		Columns: []*string{strPtr("value")},
		GroupBy: []string{"category"},
		SplitBy: []string{"quarter"},
		Sort:    []viewconfig.Sort{{Column: "value", Direction: viewconfig.SortAsc}},
		Aggregates: map[string]viewconfig.Aggregate{
			"value": viewconfig.SingleAggregate("sum"),
		},
	}

	sql, err := c.TableMakeView("source_table", "dest_view", cfg)
	require.NoError(t, err)

	assert.Contains(t, sql, "__SORT_0__")
	assert.Contains(t, sql, "__GROUPING_ID__, __SORT_0__")
	assert.Contains(t, sql, "__SORT_0__ ASC")
	assert.NotContains(t, sql, `sum("value") ASC`)
}

func TestTableMakeViewWithSortMultiGroupByAndSplitBy(t *testing.T) {
	c := viewsql.New()
	cfg := viewconfig.ViewConfig{
		Columns: []*string{strPtr("value")},
		GroupBy: []string{"region", "category"},
		SplitBy: []string{"quarter"},
		Sort:    []viewconfig.Sort{{Column: "value", Direction: viewconfig.SortAsc}},
		Aggregates: map[string]viewconfig.Aggregate{
			"value": viewconfig.SingleAggregate("sum"),
		},
	}

	sql, err := c.TableMakeView("source_table", "dest_view", cfg)
	require.NoError(t, err)

	assert.Contains(t, sql, "PARTITION BY (__GROUPING_ID__ >> 1)")
	assert.Contains(t, sql, "first(__SORT_0__) OVER __WINDOW_0__")
	assert.NotContains(t, sql, `GROUPING_ID("region")`)
}

func TestTableMakeViewWithSortAndGroupByNoSplitBy(t *testing.T) {
	c := viewsql.New()
	cfg := viewconfig.ViewConfig{
		Columns: []*string{strPtr("value")},
		GroupBy: []string{"category"},
		Sort:    []viewconfig.Sort{{Column: "value", Direction: viewconfig.SortAsc}},
		Aggregates: map[string]viewconfig.Aggregate{
			"value": viewconfig.SingleAggregate("sum"),
		},
	}

	sql, err := c.TableMakeView("source_table", "dest_view", cfg)
	require.NoError(t, err)

	assert.Contains(t, sql, `sum("value") ASC`)
	assert.NotContains(t, sql, "__SORT_0__")
}

func TestTableMakeViewColSortExcludesRowOrderBy(t *testing.T) {
	c := viewsql.New()
	cfg := viewconfig.ViewConfig{
		Columns: []*string{strPtr("value")},
		GroupBy: []string{"category"},
		SplitBy: []string{"quarter"},
		Sort:    []viewconfig.Sort{{Column: "value", Direction: viewconfig.SortColAsc}},
		Aggregates: map[string]viewconfig.Aggregate{
			"value": viewconfig.SingleAggregate("sum"),
		},
	}

	sql, err := c.TableMakeView("source_table", "dest_view", cfg)
	require.NoError(t, err)

	assert.NotContains(t, sql, "__SORT_0__")
	assert.NotContains(t, sql, `sum("value") ASC`)
	assert.Contains(t, sql, "PIVOT")
}

func TestTableMakeViewMixedRowAndColSort(t *testing.T) {
	c := viewsql.New()
	cfg := viewconfig.ViewConfig{
		Columns: []*string{strPtr("value"), strPtr("qty")},
		GroupBy: []string{"category"},
		SplitBy: []string{"quarter"},
		Sort: []viewconfig.Sort{
			{Column: "value", Direction: viewconfig.SortColDesc},
			{Column: "qty", Direction: viewconfig.SortAsc},
		},
		Aggregates: map[string]viewconfig.Aggregate{
			"value": viewconfig.SingleAggregate("sum"),
			"qty":   viewconfig.SingleAggregate("sum"),
		},
	}

	sql, err := c.TableMakeView("source_table", "dest_view", cfg)
	require.NoError(t, err)

	assert.NotContains(t, sql, "__SORT_0__")
	assert.Contains(t, sql, "__SORT_1__")
}

func TestViewGetDataColSortAscending(t *testing.T) {
	c := viewsql.New()
	cfg := viewconfig.ViewConfig{
		Sort: []viewconfig.Sort{{Column: "value", Direction: viewconfig.SortColAsc}},
	}
	endRow := uint64(100)
	viewport := viewconfig.ViewPort{StartRow: new(uint64), EndRow: &endRow, StartCol: new(uint64)}

	schema := viewconfig.NewSchema().
		Set("C_value", viewconfig.ColumnTypeFloat).
		Set("A_value", viewconfig.ColumnTypeFloat).
		Set("B_value", viewconfig.ColumnTypeFloat)

	sql, err := c.ViewGetData("my_view", cfg, viewport, schema)
	require.NoError(t, err)

	aPos := indexOf(t, sql, `"A_value"`)
	bPos := indexOf(t, sql, `"B_value"`)
	cPos := indexOf(t, sql, `"C_value"`)
	assert.True(t, aPos < bPos && bPos < cPos, "col asc should order columns A < B < C: %s", sql)
}

func TestViewGetDataColSortDescending(t *testing.T) {
	c := viewsql.New()
	cfg := viewconfig.ViewConfig{
		Sort: []viewconfig.Sort{{Column: "value", Direction: viewconfig.SortColDesc}},
	}
	endRow := uint64(100)
	viewport := viewconfig.ViewPort{StartRow: new(uint64), EndRow: &endRow, StartCol: new(uint64)}

	schema := viewconfig.NewSchema().
		Set("A_value", viewconfig.ColumnTypeFloat).
		Set("C_value", viewconfig.ColumnTypeFloat).
		Set("B_value", viewconfig.ColumnTypeFloat)

	sql, err := c.ViewGetData("my_view", cfg, viewport, schema)
	require.NoError(t, err)

	aPos := indexOf(t, sql, `"A_value"`)
	bPos := indexOf(t, sql, `"B_value"`)
	cPos := indexOf(t, sql, `"C_value"`)
	assert.True(t, cPos < bPos && bPos < aPos, "col desc should order columns C > B > A: %s", sql)
}

func TestViewGetData(t *testing.T) {
	c := viewsql.New()
	cfg := viewconfig.ViewConfig{}
	endRow := uint64(100)
	endCol := uint64(5)
	viewport := viewconfig.ViewPort{StartRow: new(uint64), EndRow: &endRow, StartCol: new(uint64), EndCol: &endCol}

	schema := viewconfig.NewSchema().
		Set("col1", viewconfig.ColumnTypeString).
		Set("col2", viewconfig.ColumnTypeInteger)

	sql, err := c.ViewGetData("my_view", cfg, viewport, schema)
	require.NoError(t, err)

	assert.Contains(t, sql, "SELECT")
	assert.Contains(t, sql, "FROM my_view")
	assert.Contains(t, sql, "LIMIT 100 OFFSET 0")
}

func indexOf(t *testing.T, s, substr string) int {
	t.Helper()
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	t.Fatalf("substring %q not found in %q", substr, s)
	return -1
}
