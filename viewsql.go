// Package viewsql compiles a declarative pivot-table view specification
// into the SQL text a DuckDB-dialect engine can execute.
//
// The compiler is pure and stateless: every exported method is a
// function from its arguments to a SQL string (or an error, for
// signature uniformity: the current implementation never returns
// one). It holds no connection, runs no query, and caches nothing
// between calls.
package viewsql

import (
	"fmt"

	"github.com/pivotdb/viewsql/viewconfig"
)

// Compiler is a stateless SQL query builder for virtual-server view
// operations. The zero value is unusable; construct one with New.
type Compiler struct {
	createEntityKeyword string
	groupingFnName      string
}

// Option configures a Compiler at construction time.
type Option func(*Compiler)

// WithCreateEntity overrides the keyword following CREATE in
// TableMakeView's output. Default "TABLE".
func WithCreateEntity(keyword string) Option {
	return func(c *Compiler) { c.createEntityKeyword = keyword }
}

// WithGroupingFn overrides the grouping-bit function name emitted
// wherever a GROUPING_ID-style value is needed. Default "GROUPING_ID".
func WithGroupingFn(name string) Option {
	return func(c *Compiler) { c.groupingFnName = name }
}

// New returns a Compiler configured by opts.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compiler) createEntity() string {
	if c.createEntityKeyword == "" {
		return "TABLE"
	}
	return c.createEntityKeyword
}

func (c *Compiler) groupingFn() string {
	if c.groupingFnName == "" {
		return "GROUPING_ID"
	}
	return c.groupingFnName
}

// GetHostedTables returns the query listing every hosted table.
func (c *Compiler) GetHostedTables() (string, error) {
	return "SHOW ALL TABLES", nil
}

// TableSchema returns the query describing tableID's schema.
func (c *Compiler) TableSchema(tableID string) (string, error) {
	return "DESCRIBE " + tableID, nil
}

// TableSize returns the query counting tableID's rows.
func (c *Compiler) TableSize(tableID string) (string, error) {
	return "SELECT COUNT(*) FROM " + tableID, nil
}

// ViewColumnSize returns the query counting viewID's columns.
func (c *Compiler) ViewColumnSize(viewID string) (string, error) {
	return "SELECT COUNT(*) FROM (DESCRIBE " + viewID + ")", nil
}

// TableValidateExpression returns the query validating expression
// against tableID's columns.
func (c *Compiler) TableValidateExpression(tableID, expression string) (string, error) {
	return fmt.Sprintf("DESCRIBE (SELECT %s FROM %s)", expression, tableID), nil
}

// ViewDelete returns the query dropping viewID.
func (c *Compiler) ViewDelete(viewID string) (string, error) {
	return "DROP TABLE IF EXISTS " + viewID, nil
}

// ViewSchema returns the query describing viewID's schema.
func (c *Compiler) ViewSchema(viewID string) (string, error) {
	return "DESCRIBE " + viewID, nil
}

// ViewSize returns the query counting viewID's rows.
func (c *Compiler) ViewSize(viewID string) (string, error) {
	return "SELECT COUNT(*) FROM " + viewID, nil
}

// TableMakeView returns the query creating viewID over tableID
// according to cfg: `CREATE <entity> <viewID> AS (...)`, where the
// inner query's shape is one of Flat, Grouped, Pivoted, or
// Grouped+Pivoted depending on whether cfg.GroupBy / cfg.SplitBy are
// populated (spec.md §4.4).
func (c *Compiler) TableMakeView(tableID, viewID string, cfg viewconfig.ViewConfig) (string, error) {
	qc := newQueryContext(c, tableID, &cfg)
	inner := qc.buildQuery()
	return fmt.Sprintf("CREATE %s %s AS (%s)", c.createEntity(), viewID, inner), nil
}
