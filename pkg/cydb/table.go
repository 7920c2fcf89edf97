package cydb

import "github.com/google/uuid"

// WhereOp is the boolean combinator used by a Where group.
type WhereOp string

const (
	WhereAnd WhereOp = "and"
	WhereOr  WhereOp = "or"
)

// Where is an ordered group of conditions combined by Operator. An
// empty Where (no conditions) formats to "1"; nested Wheres that are
// themselves empty are skipped rather than emitting "()".
type Where struct {
	Operator   WhereOp
	Conditions []Expression
}

func (*Where) Returns() bool { return true }

// And builds a Where that ANDs its conditions together. Nil conditions
// are dropped.
func And(conditions ...Expression) *Where {
	return &Where{Operator: WhereAnd, Conditions: compactConditions(conditions)}
}

// Or builds a Where that ORs its conditions together. Nil conditions are
// dropped.
func Or(conditions ...Expression) *Where {
	return &Where{Operator: WhereOr, Conditions: compactConditions(conditions)}
}

func compactConditions(conditions []Expression) []Expression {
	out := make([]Expression, 0, len(conditions))
	for _, c := range conditions {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// EmptyWhere is the canonical empty Where, which formats to "1".
func EmptyWhere() *Where { return &Where{Operator: WhereAnd} }

// ConstantTable is a "values (…), (…)" literal, usable as a scalar/table
// expression or, when aliased in a FROM position with column names, as
// a named derived table.
type ConstantTable struct {
	Rows    [][]Expression
	Columns []string // optional explicit column names
}

func (*ConstantTable) Returns() bool { return true }

// Values builds a ConstantTable from the given rows.
func Values(rows ...[]Expression) *ConstantTable {
	return &ConstantTable{Rows: rows}
}

// WithColumns attaches explicit column names and returns the same
// ConstantTable for chaining.
func (c *ConstantTable) WithColumns(columns ...string) *ConstantTable {
	c.Columns = columns
	return c
}

// TableSource is anything that can appear in a FROM/USING/JOIN position:
// a plain table, a subquery, or a constant table.
type TableSource interface {
	Expression
	SourceAlias() string
}

// Table is a possibly schema-qualified, possibly aliased table
// reference.
type Table struct {
	Schema string
	Name   string
	Alias  string
}

func (*Table) Returns() bool { return false }
func (t *Table) SourceAlias() string { return t.Alias }

// AsTable parses "schema.table" or "table" into a Table source.
func AsTable(path string, alias ...string) *Table {
	tn := Tbl(path)
	t := &Table{Schema: tn.Schema, Name: tn.Name}
	if len(alias) > 0 {
		t.Alias = alias[0]
	}
	return t
}

// SubQuery embeds a Select (or any Expression that renders a statement)
// as a table source, e.g. "(select …) as alias".
type SubQuery struct {
	Query Expression
	Alias string
}

func (*SubQuery) Returns() bool { return true }
func (s *SubQuery) SourceAlias() string { return s.Alias }

// Sub wraps query as a subquery table source with the given alias.
func Sub(query Expression, alias string) *SubQuery {
	return &SubQuery{Query: query, Alias: alias}
}

// SubAuto wraps query as a subquery table source with a generated,
// collision-free alias, for callers that only need the derived table to
// be referenceable and don't care about its name.
func SubAuto(query Expression) *SubQuery {
	return &SubQuery{Query: query, Alias: "t_" + uuid.NewString()[:8]}
}

// ConstTableSource adapts a ConstantTable for use directly in a FROM
// position: "(values …) as alias (c1, c2)".
type ConstTableSource struct {
	Table *ConstantTable
	Alias string
}

func (*ConstTableSource) Returns() bool { return true }
func (c *ConstTableSource) SourceAlias() string { return c.Alias }

// JoinMode enumerates the supported JOIN kinds. An empty condition on
// any mode other than Natural degrades the join to a CROSS JOIN.
type JoinMode string

const (
	JoinInner      JoinMode = "inner"
	JoinLeft       JoinMode = "left"
	JoinLeftOuter  JoinMode = "left_outer"
	JoinRight      JoinMode = "right"
	JoinRightOuter JoinMode = "right_outer"
	JoinNatural    JoinMode = "natural"
)

// JoinStatement is one JOIN clause: a mode, a table source, and an
// optional ON condition.
type JoinStatement struct {
	Mode      JoinMode
	Table     TableSource
	Condition *Where
}

func (*JoinStatement) Returns() bool { return false }

// Join builds a JoinStatement of the given mode.
func Join(mode JoinMode, table TableSource, condition *Where) *JoinStatement {
	return &JoinStatement{Mode: mode, Table: table, Condition: condition}
}

// WithStatement is one member of a WITH (CTE) clause.
type WithStatement struct {
	Alias      string
	Query      Expression
	ColumnList []string
}

func (*WithStatement) Returns() bool { return false }

// CTE builds a WithStatement binding alias to query.
func CTE(alias string, query Expression) *WithStatement {
	return &WithStatement{Alias: alias, Query: query}
}

// NullsOrder controls NULLS FIRST/LAST placement in an ORDER BY item.
type NullsOrder int

const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// OrderByStatement is one ORDER BY item.
type OrderByStatement struct {
	Column Expression
	Desc   bool
	Nulls  NullsOrder
}

func (*OrderByStatement) Returns() bool { return false }

// Asc builds an ascending ORDER BY item.
func Asc(column Expression) *OrderByStatement { return &OrderByStatement{Column: column} }

// Desc builds a descending ORDER BY item.
func Desc(column Expression) *OrderByStatement {
	return &OrderByStatement{Column: column, Desc: true}
}

// NullsLastly returns the same item with NULLS LAST placement.
func (o *OrderByStatement) NullsLastly() *OrderByStatement { o.Nulls = NullsLast; return o }

// NullsFirstly returns the same item with NULLS FIRST placement.
func (o *OrderByStatement) NullsFirstly() *OrderByStatement { o.Nulls = NullsFirst; return o }

// SelectColumn is one projection item in a SELECT list.
type SelectColumn struct {
	Expr  Expression
	Alias string
}

func (*SelectColumn) Returns() bool { return true }

// Proj builds a projection item, optionally aliased.
func Proj(expr Expression, alias ...string) *SelectColumn {
	sc := &SelectColumn{Expr: expr}
	if len(alias) > 0 {
		sc.Alias = alias[0]
	}
	return sc
}
