// Package cydb implements a dialect-aware SQL expression tree and the
// writer that renders it into a SQL string paired with a positional
// argument vector. See SPEC_FULL.md for the full component design.
package cydb

import "strconv"

// Expression is the single capability every AST node implements: it can
// be formatted by a Writer, and it reports whether evaluating it
// produces a value ("returns"). The concrete variants form a closed set;
// Writer.format is an exhaustive type switch over them, with Custom as
// the escape hatch for caller-supplied rendering logic.
type Expression interface {
	// Returns reports whether this node, once formatted, yields a SQL
	// value in the position it occupies (as opposed to a clause
	// fragment like Where or OrderByStatement).
	Returns() bool
}

// NullValue renders the SQL NULL literal.
type NullValue struct{}

func (NullValue) Returns() bool { return true }

// Null is the canonical NullValue instance.
var Null = NullValue{}

// Value holds a native Go value destined for the argument bag. Type, if
// non-empty, is a hint consumed later by the Converter; it has no effect
// on formatting, which always emits a placeholder.
type Value struct {
	Payload any
	Type    string
}

func (*Value) Returns() bool { return true }

// Val wraps a native value with no type hint.
func Val(v any) *Value { return &Value{Payload: v} }

// TypedVal wraps a native value with an explicit type hint, consumed by
// the Converter when the argument bag is later drained.
func TypedVal(v any, typ string) *Value { return &Value{Payload: v, Type: typ} }

// Row is a parenthesized, comma-separated tuple of expressions, e.g. for
// use as the left side of a multi-column IN predicate. If Cast is
// non-empty the tuple is wrapped in cast(... as Cast).
type Row struct {
	Values []Expression
	Cast   string
}

func (*Row) Returns() bool { return true }

// NewRow builds a Row from the given values.
func NewRow(values ...Expression) *Row { return &Row{Values: values} }

// ArrayValue renders as array[…], optionally cast to ElemType[].
type ArrayValue struct {
	Values    []Expression
	ElemType  string
	CastArray bool
}

func (*ArrayValue) Returns() bool { return true }

// NewArray builds an ArrayValue of the given element type. When elemType
// is non-empty the rendered array is cast to elemType[].
func NewArray(elemType string, values ...Expression) *ArrayValue {
	return &ArrayValue{Values: values, ElemType: elemType, CastArray: elemType != ""}
}

// Identifier is a bare, dialect-quoted name with no table/column
// semantics of its own (used for things like window names and CTE
// aliases).
type Identifier struct {
	Name string
}

func (*Identifier) Returns() bool { return false }

// Ident constructs an Identifier.
func Ident(name string) *Identifier { return &Identifier{Name: name} }

// ColumnName is a possibly table/schema-qualified column reference. The
// literal name "*" is special-cased: it is never quoted.
type ColumnName struct {
	Schema string
	Table  string
	Name   string
}

func (*ColumnName) Returns() bool { return true }

// Col parses "schema.table.column", "table.column" or "column" into a
// ColumnName. "*" and "table.*" are recognized as the wildcard column.
func Col(path string) *ColumnName {
	return splitQualified(path)
}

func splitQualified(path string) *ColumnName {
	parts := splitDot(path)
	switch len(parts) {
	case 1:
		return &ColumnName{Name: parts[0]}
	case 2:
		return &ColumnName{Table: parts[0], Name: parts[1]}
	case 3:
		return &ColumnName{Schema: parts[0], Table: parts[1], Name: parts[2]}
	default:
		return &ColumnName{Name: path}
	}
}

func splitDot(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// TableName is a possibly schema-qualified table reference.
type TableName struct {
	Schema string
	Name   string
}

func (*TableName) Returns() bool { return false }

// Tbl parses "schema.table" or "table" into a TableName.
func Tbl(path string) *TableName {
	parts := splitDot(path)
	if len(parts) == 2 {
		return &TableName{Schema: parts[0], Name: parts[1]}
	}
	return &TableName{Name: path}
}

// Raw is an escape hatch: a user-supplied SQL template with positional
// arguments, subject to the placeholder grammar described in the raw
// parser. It never forces parenthesization in a sub-position.
type Raw struct {
	Template string
	Args     []any
}

func (*Raw) Returns() bool { return true }

// NewRaw builds a Raw fragment from a template and its positional
// arguments.
func NewRaw(template string, args ...any) *Raw {
	return &Raw{Template: template, Args: args}
}

// RawQuery is identical to Raw except it is understood to hold a full
// statement, which forces parenthesization whenever it appears in a
// sub-expression position (e.g. a subquery).
type RawQuery struct {
	Template string
	Args     []any
}

func (*RawQuery) Returns() bool { return true }

// NewRawQuery builds a RawQuery fragment.
func NewRawQuery(template string, args ...any) *RawQuery {
	return &RawQuery{Template: template, Args: args}
}

// Aliased wraps any expression with an "as alias" suffix. Numeric
// aliases and aliases that render identically to the inner expression
// are silently dropped at format time (see Writer.formatAliased).
// Parenthesization of the inner expression considers the inner's own
// class, never Aliased itself.
type Aliased struct {
	Inner Expression
	Alias string
}

func (a *Aliased) Returns() bool { return a.Inner.Returns() }

// As wraps expr in an Aliased node. It returns expr unchanged if alias
// is empty; if expr is already Aliased, its alias is replaced in place
// and that same node is returned.
func As(expr Expression, alias string) Expression {
	if alias == "" {
		return expr
	}
	if inner, ok := expr.(*Aliased); ok {
		inner.Alias = alias
		return inner
	}
	return &Aliased{Inner: expr, Alias: alias}
}

// isNumericAlias reports whether alias parses as a plain integer, in
// which case it must be dropped (SQL would otherwise read it as an
// ordinal column reference).
func isNumericAlias(alias string) bool {
	_, err := strconv.ParseInt(alias, 10, 64)
	return err == nil
}

// Custom is the escape hatch for caller-supplied rendering logic: the
// closed-variant analog of the original writer's two last-resort
// instanceof checks for user-defined FunctionCall/Comparison
// subclasses. The writer invokes Render directly instead of dispatching
// through its own type switch.
type Custom struct {
	Render      func(ctx *WriterContext) (string, error)
	ReturnsFlag bool
}

func (c *Custom) Returns() bool { return c.ReturnsFlag }
