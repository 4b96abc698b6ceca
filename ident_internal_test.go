package viewsql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivotdb/viewsql/viewconfig"
)

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"category"`, quoteIdent("category"))
}

func TestEscapeAliasSubstitutesUnderscoreAfterDoublingQuotes(t *testing.T) {
	// quote-doubling happens before underscore substitution: an
	// embedded quote must not itself be mistaken for an underscore run.
	assert.Equal(t, `say ""hi""-there`, escapeAlias(`say "hi"_there`))
	assert.Equal(t, "col-name", escapeAlias("col_name"))
}

func TestScalarToSQL(t *testing.T) {
	lit, ok := scalarToSQL(viewconfig.Null)
	assert.False(t, ok)
	assert.Empty(t, lit)

	lit, ok = scalarToSQL(viewconfig.BoolScalar(true))
	assert.True(t, ok)
	assert.Equal(t, "TRUE", lit)

	lit, ok = scalarToSQL(viewconfig.FloatScalar(3.5))
	assert.True(t, ok)
	assert.Equal(t, "3.5", lit)

	lit, ok = scalarToSQL(viewconfig.StringScalar("o'brien"))
	assert.True(t, ok)
	assert.Equal(t, "'o''brien'", lit)
}

func TestFilterTermToSQLArrayDropsNulls(t *testing.T) {
	term := viewconfig.ArrayFilterTerm(viewconfig.FloatScalar(1), viewconfig.Null, viewconfig.FloatScalar(2))
	lit, ok := filterTermToSQL(term)
	assert.True(t, ok)
	assert.Equal(t, "(1, 2)", lit)
}

func TestFilterTermToSQLAllNullArrayIsAbsent(t *testing.T) {
	term := viewconfig.ArrayFilterTerm(viewconfig.Null, viewconfig.Null)
	_, ok := filterTermToSQL(term)
	assert.False(t, ok)
}
