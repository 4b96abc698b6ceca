package viewconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivotdb/viewsql/viewconfig"
)

func TestValidateViewPortOK(t *testing.T) {
	start := uint64(0)
	end := uint64(100)
	err := viewconfig.ValidateViewPort(viewconfig.ViewPort{StartRow: &start, EndRow: &end})
	require.NoError(t, err)
}

func TestValidateViewPortRejectsInvertedRange(t *testing.T) {
	start := uint64(100)
	end := uint64(10)
	err := viewconfig.ValidateViewPort(viewconfig.ViewPort{StartRow: &start, EndRow: &end})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end_row")
}

func TestValidateViewConfigRejectsEmptyFilterOp(t *testing.T) {
	cfg := viewconfig.ViewConfig{
		Filter: []viewconfig.FilterClause{{Column: "value", Op: ""}},
	}
	err := viewconfig.ValidateViewConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operator is empty")
}

func TestValidateViewConfigRejectsEmptyColumn(t *testing.T) {
	empty := ""
	cfg := viewconfig.ViewConfig{Columns: []*string{&empty}}
	err := viewconfig.ValidateViewConfig(cfg)
	require.Error(t, err)
}

func TestValidateViewConfigOK(t *testing.T) {
	col := "value"
	cfg := viewconfig.ViewConfig{
		Columns: []*string{&col},
		Sort:    []viewconfig.Sort{{Column: "value", Direction: viewconfig.SortAsc}},
		Filter:  []viewconfig.FilterClause{{Column: "value", Op: ">"}},
	}
	require.NoError(t, viewconfig.ValidateViewConfig(cfg))
}
