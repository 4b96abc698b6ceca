// Package viewconfig holds the declarative types a view-configuration
// parser hands to the compiler: column groupings, splits, aggregates,
// filters, and sorts. Producing these from a wire format (the RPC/proto
// layer spec.md references) is out of scope here; this package only
// defines the shapes the compiler consumes.
package viewconfig

// ViewConfig is the declarative specification of a pivot-table view
// over a single source table.
type ViewConfig struct {
	// Columns lists, in display order, the optional columns to select.
	// A nil entry is a gap in the column list (skipped on render).
	Columns []*string `json:"columns"`
	// GroupBy lists the row-grouping dimensions, outermost first.
	GroupBy []string `json:"group_by"`
	// SplitBy lists the column-pivoting dimensions.
	SplitBy []string `json:"split_by"`
	// Sort lists sort entries applied in order.
	Sort []Sort `json:"sort"`
	// Aggregates maps a column name to the aggregate applied to it
	// when GroupBy is non-empty. Columns absent from this map default
	// to any_value.
	Aggregates map[string]Aggregate `json:"aggregates"`
	// Filter lists the WHERE predicates, ANDed together.
	Filter []FilterClause `json:"filter"`
	// Expressions maps an alias to a pre-quoted SQL expression that
	// overrides the default `"column"` resolution for that name.
	Expressions map[string]string `json:"expressions"`
}

// Sort is a single (column, direction) ORDER BY entry.
type Sort struct {
	Column    string  `json:"column"`
	Direction SortDir `json:"direction"`
}

// AggregateKind distinguishes the two Aggregate shapes.
type AggregateKind int

const (
	// AggregateSingle is a plain named aggregate, e.g. sum, count.
	AggregateSingle AggregateKind = iota
	// AggregateMulti is a named aggregate with extra arguments. The
	// arguments are never rendered into SQL by this compiler; they
	// are carried for callers/future revisions only.
	AggregateMulti
)

// Aggregate names the SQL aggregate function applied to a grouped
// column. Only Name is ever emitted into SQL; Args is preserved on the
// value but ignored by every clause builder, matching the upstream
// Rust MultiAggregate(name, _args) behavior.
type Aggregate struct {
	Kind AggregateKind `json:"kind"`
	Name string        `json:"name"`
	Args []string      `json:"args,omitempty"`
}

// SingleAggregate constructs a Single-kind aggregate by name.
func SingleAggregate(name string) Aggregate {
	return Aggregate{Kind: AggregateSingle, Name: name}
}

// MultiAggregate constructs a Multi-kind aggregate by name and args.
func MultiAggregate(name string, args ...string) Aggregate {
	return Aggregate{Kind: AggregateMulti, Name: name, Args: args}
}

// SortDir is the direction and semantics of a sort entry.
//
// Two orthogonal properties drive every clause builder that consumes
// a SortDir: whether it is a column-sort (affects only view_get_data's
// column permutation, never ORDER BY), and its base ASC/DESC text
// (the *Abs variants render identically to their plain counterparts;
// absolute-value sort ordering is left to engine configuration, per
// spec.md's open questions).
type SortDir int

const (
	SortNone SortDir = iota
	SortAsc
	SortDesc
	SortAscAbs
	SortDescAbs
	SortColAsc
	SortColDesc
	SortColAscAbs
	SortColDescAbs
)

// IsColSort reports whether dir is one of the four Col* variants.
func (dir SortDir) IsColSort() bool {
	switch dir {
	case SortColAsc, SortColDesc, SortColAscAbs, SortColDescAbs:
		return true
	default:
		return false
	}
}

// SQL returns the ORDER BY direction text for dir: "ASC", "DESC", or
// "" for SortNone. Col* variants also return a direction, but ORDER BY
// rendering skips them and view_get_data reads their direction
// without calling SQL.
func (dir SortDir) SQL() string {
	switch dir {
	case SortAsc, SortColAsc, SortAscAbs, SortColAscAbs:
		return "ASC"
	case SortDesc, SortColDesc, SortDescAbs, SortColDescAbs:
		return "DESC"
	default:
		return ""
	}
}

// FilterClause is a single WHERE predicate: `<column> <op> <term>`.
type FilterClause struct {
	Column string     `json:"column"`
	Op     string     `json:"op"`
	Term   FilterTerm `json:"term"`
}

// FilterTermKind distinguishes the two FilterTerm shapes.
type FilterTermKind int

const (
	FilterScalar FilterTermKind = iota
	FilterArray
)

// FilterTerm is either a single scalar or an array of scalars
// rendered as a parenthesised comma list.
type FilterTerm struct {
	Kind   FilterTermKind `json:"kind"`
	Scalar Scalar         `json:"scalar,omitempty"`
	Array  []Scalar       `json:"array,omitempty"`
}

// ScalarFilterTerm wraps a single scalar as a filter term.
func ScalarFilterTerm(s Scalar) FilterTerm {
	return FilterTerm{Kind: FilterScalar, Scalar: s}
}

// ArrayFilterTerm wraps a slice of scalars as a filter term.
func ArrayFilterTerm(scalars ...Scalar) FilterTerm {
	return FilterTerm{Kind: FilterArray, Array: scalars}
}

// ScalarKind distinguishes the four Scalar shapes.
type ScalarKind int

const (
	ScalarNull ScalarKind = iota
	ScalarBool
	ScalarFloat
	ScalarString
)

// Scalar is a literal value: null, boolean, float, or string.
type Scalar struct {
	Kind  ScalarKind `json:"kind"`
	Bool  bool       `json:"bool,omitempty"`
	Float float64    `json:"float,omitempty"`
	Str   string     `json:"str,omitempty"`
}

// Null is the absent scalar value; it never renders as a SQL literal.
var Null = Scalar{Kind: ScalarNull}

// BoolScalar constructs a boolean scalar.
func BoolScalar(b bool) Scalar { return Scalar{Kind: ScalarBool, Bool: b} }

// FloatScalar constructs a numeric scalar.
func FloatScalar(f float64) Scalar { return Scalar{Kind: ScalarFloat, Float: f} }

// StringScalar constructs a string scalar.
func StringScalar(s string) Scalar { return Scalar{Kind: ScalarString, Str: s} }

// ViewPort describes the row/column window requested from a view.
// Nil fields mean "unbounded"; StartRow/StartCol default to 0 when nil.
type ViewPort struct {
	StartRow *uint64 `json:"start_row,omitempty"`
	EndRow   *uint64 `json:"end_row,omitempty"`
	StartCol *uint64 `json:"start_col,omitempty"`
	EndCol   *uint64 `json:"end_col,omitempty"`
}

func derefOr(p *uint64, def uint64) uint64 {
	if p == nil {
		return def
	}
	return *p
}

// StartRowOr returns StartRow or def if unset.
func (v ViewPort) StartRowOr(def uint64) uint64 { return derefOr(v.StartRow, def) }

// StartColOr returns StartCol or def if unset.
func (v ViewPort) StartColOr(def uint64) uint64 { return derefOr(v.StartCol, def) }
