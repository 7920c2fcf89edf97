package cydb

import (
	"fmt"
	"strconv"
	"strings"
)

// LimitStyle selects how a Writer renders a SelectStatement's Limit
// range, since the ANSI "limit/offset" syntax has no SQL Server
// equivalent.
type LimitStyle int

const (
	// LimitOffsetStyle renders "limit N offset M" (postgres, mysql,
	// mariadb, sqlite).
	LimitOffsetStyle LimitStyle = iota
	// TopStyle renders "top N" right after SELECT when there is no
	// offset, and falls back to "offset M rows fetch next N rows only"
	// when there is (sql server).
	TopStyle
)

// DialectOps is the small set of behavioral knobs a dialect package
// supplies to generalize Writer's clause renderers, composed into the
// Writer rather than selected through subclassing.
type DialectOps struct {
	Name string

	// SupportsFilterClause enables native "aggregate(...) filter (where
	// ...)"; when false, Aggregate.Filter is rewritten into a CASE
	// expression inside the aggregate's argument instead.
	SupportsFilterClause bool
	// SupportsReturning enables a RETURNING clause on
	// Insert/Update/Delete.
	SupportsReturning bool
	// SupportsOnConflict records that the dialect accepts ANSI-ish "on
	// conflict (...) do update set ..." / "do nothing". The Writer does
	// not read it: InsertStatement.OnConflict renders in that form
	// whenever SupportsOnDuplicateKey is false.
	SupportsOnConflict bool
	// SupportsOnDuplicateKey selects MySQL/MariaDB's "on duplicate key
	// update ..." rendering instead.
	SupportsOnDuplicateKey bool
	// SupportsMerge enables native MERGE rendering; otherwise
	// MergeStatement is rewritten into an equivalent upsert INSERT.
	SupportsMerge bool

	LimitStyle LimitStyle

	// InsertDefaultRow overrides the text emitted for an INSERT with no
	// values and no SELECT, with or without a column list; empty
	// defaults to "default values".
	InsertDefaultRow string
	// CurrentTimestampSQL overrides the rendering of CurrentTimestamp;
	// empty defaults to "current_timestamp".
	CurrentTimestampSQL string
	// RandomSQL overrides the rendering of Random; empty defaults to
	// "random()".
	RandomSQL string
}

// Writer renders an Expression tree (or a raw template string) into SQL
// text and a positional argument vector for one dialect. It holds no
// per-render state; WriterContext carries that for the duration of a
// single Prepare call, so a Writer is safe to share across concurrent
// callers.
type Writer struct {
	Escaper   Escaper
	Converter Converter
	Ops       DialectOps
}

// NewWriter builds a Writer for one dialect. A nil converter defaults
// to a fresh ConverterRegistry seeded with DefaultConverter.
func NewWriter(escaper Escaper, converter Converter, ops DialectOps) *Writer {
	if converter == nil {
		converter = NewConverterRegistry()
	}
	return &Writer{Escaper: escaper, Converter: converter, Ops: ops}
}

// Prepare renders input into a SqlString. input may be a plain string
// (a raw SQL passthrough, parsed for "?"/"??"/"?::TYPE" placeholders the
// same way Raw is), an Expression (rendered via the full formatter), or
// an already-prepared *SqlString, returned unchanged — prepare is
// idempotent.
func (w *Writer) Prepare(input any, opts ...QueryOptions) (*SqlString, error) {
	var o QueryOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	switch v := input.(type) {
	case *SqlString:
		return v, nil
	case string:
		return w.prepareRaw(v, nil, o)
	case Expression:
		ctx := NewWriterContext(w.Escaper, w.Converter)
		text, err := w.format(ctx, v)
		if err != nil {
			return nil, err
		}
		args, err := w.resolveArgs(ctx)
		if err != nil {
			return nil, err
		}
		return &SqlString{Text: text, Arguments: args, Options: o}, nil
	default:
		return nil, newBuilderError("Prepare", "unsupported input type %T", input)
	}
}

func (w *Writer) prepareRaw(template string, args []any, o QueryOptions) (*SqlString, error) {
	if !strings.Contains(template, "?") {
		if len(args) != 0 {
			return nil, newBuilderError("Prepare", "template has no placeholders but %d args given", len(args))
		}
		return &SqlString{Text: template, Options: o}, nil
	}
	ctx := NewWriterContext(w.Escaper, w.Converter)
	text, err := w.formatRawTemplate(ctx, template, args)
	if err != nil {
		return nil, err
	}
	resolved, err := w.resolveArgs(ctx)
	if err != nil {
		return nil, err
	}
	return &SqlString{Text: text, Arguments: resolved, Options: o}, nil
}

func (w *Writer) resolveArgs(ctx *WriterContext) ([]any, error) {
	bound := ctx.Bag.All()
	out := make([]any, len(bound))
	for i, b := range bound {
		v, err := w.Converter.Convert(b.Value, b.Type)
		if err != nil {
			return nil, &ValueConversionError{Value: b.Value, Type: b.Type, Cause: err}
		}
		out[i] = v
	}
	return out, nil
}

// needsParens reports whether e belongs to the small set of variants
// that must be parenthesized whenever they appear in a sub-expression
// position: ConstantTable, RawQuery, SelectStatement and Where. An
// Aliased wrapper is transparent to this check — it is the inner
// expression's class that decides, never Aliased itself.
func needsParens(e Expression) bool {
	if al, ok := e.(*Aliased); ok {
		e = al.Inner
	}
	switch e.(type) {
	case *ConstantTable, *RawQuery, *SelectStatement, *Where:
		return true
	}
	return false
}

// formatSub renders e for use inside another expression, adding
// parentheses when e's class requires them there. Top-level Prepare
// calls format directly and never parenthesizes the whole statement.
func (w *Writer) formatSub(ctx *WriterContext, e Expression) (string, error) {
	s, err := w.format(ctx, e)
	if err != nil {
		return "", err
	}
	if needsParens(e) {
		return "(" + s + ")", nil
	}
	return s, nil
}

// format is the exhaustive dispatch over every Expression variant.
// Custom is the only case that does not switch on a concrete cydb type.
func (w *Writer) format(ctx *WriterContext, e Expression) (string, error) {
	switch v := e.(type) {
	case NullValue:
		return "null", nil
	case *Value:
		return ctx.bind(v.Payload, v.Type), nil
	case *Row:
		return w.formatRow(ctx, v)
	case *ArrayValue:
		return w.formatArray(ctx, v)
	case *Identifier:
		return w.Escaper.EscapeIdentifier(v.Name), nil
	case *ColumnName:
		return w.formatColumnName(v), nil
	case *TableName:
		return w.formatTableName(v), nil
	case *Raw:
		return w.formatRawTemplate(ctx, v.Template, v.Args)
	case *RawQuery:
		return w.formatRawTemplate(ctx, v.Template, v.Args)
	case *Aliased:
		return w.formatAliased(ctx, v)
	case *Custom:
		return v.Render(ctx)
	case *Comparison:
		return w.formatComparison(ctx, v)
	case *Between:
		return w.formatBetween(ctx, v)
	case *Not:
		return w.formatNot(ctx, v)
	case *IfThen:
		return w.formatIfThen(ctx, v)
	case *CaseWhen:
		return w.formatCaseWhen(ctx, v)
	case *Concat:
		return w.formatConcat(ctx, v)
	case *Cast:
		return w.formatCast(ctx, v)
	case *FunctionCall:
		return w.formatFunctionCall(ctx, v)
	case *Aggregate:
		return w.formatAggregate(ctx, v)
	case *Window:
		return w.formatWindowInline(ctx, v)
	case CurrentTimestamp:
		return w.formatCurrentTimestamp(), nil
	case Random:
		return w.formatRandom(), nil
	case *RandomInt:
		return w.formatRandomInt(ctx, v)
	case *LikePattern:
		return w.formatLike(ctx, v)
	case *SimilarToPattern:
		return w.formatSimilarTo(ctx, v)
	case *ConstantTable:
		return w.formatConstantTable(ctx, v)
	case *Table:
		return w.formatTable(v), nil
	case *SubQuery:
		return w.formatSubQuery(ctx, v)
	case *ConstTableSource:
		return w.formatConstTableSource(ctx, v)
	case *JoinStatement:
		return w.formatOneJoin(ctx, v)
	case *WithStatement:
		return w.formatWith(ctx, v)
	case *OrderByStatement:
		return w.formatOrderBy(ctx, v)
	case *SelectColumn:
		return w.format(ctx, As(v.Expr, v.Alias))
	case *Where:
		return w.formatWhereBody(ctx, v)
	case *SelectStatement:
		return w.formatSelect(ctx, v)
	case *InsertStatement:
		return w.formatInsert(ctx, v)
	case *UpdateStatement:
		return w.formatUpdate(ctx, v)
	case *DeleteStatement:
		return w.formatDelete(ctx, v)
	case *MergeStatement:
		return w.formatMerge(ctx, v)
	default:
		return "", &UnsupportedExpressionError{Expr: e}
	}
}

func (w *Writer) formatRawTemplate(ctx *WriterContext, template string, args []any) (string, error) {
	if !strings.Contains(template, "?") {
		if len(args) != 0 {
			return "", newBuilderError("Raw", "template %q has no placeholders but %d args given", template, len(args))
		}
		return template, nil
	}
	tokens := parseRawTemplate(w.Escaper, template)
	var sb strings.Builder
	argIdx := 0
	for _, t := range tokens {
		switch t.Kind {
		case rawLiteral:
			sb.WriteString(t.Text)
		case rawPlaceholder:
			var arg any
			if argIdx < len(args) {
				arg = args[argIdx]
			}
			argIdx++
			hint := strings.TrimPrefix(t.Cast, "::")
			expr, err := ctx.Converter.ToExpression(arg, hint)
			if err != nil {
				return "", &ValueConversionError{Value: arg, Type: hint, Cause: err}
			}
			s, err := w.formatSub(ctx, expr)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		}
	}
	if argIdx != len(args) {
		return "", newBuilderError("Raw", "too many arguments for template %q", template)
	}
	return sb.String(), nil
}

func (w *Writer) formatRow(ctx *WriterContext, r *Row) (string, error) {
	parts := make([]string, len(r.Values))
	for i, v := range r.Values {
		s, err := w.formatSub(ctx, v)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	body := "(" + strings.Join(parts, ", ") + ")"
	if r.Cast != "" {
		return "cast(" + body + " as " + r.Cast + ")", nil
	}
	return body, nil
}

func (w *Writer) formatArray(ctx *WriterContext, a *ArrayValue) (string, error) {
	parts := make([]string, len(a.Values))
	for i, v := range a.Values {
		s, err := w.formatSub(ctx, v)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	body := "array[" + strings.Join(parts, ", ") + "]"
	if a.CastArray {
		body += "::" + a.ElemType + "[]"
	}
	return body, nil
}

func (w *Writer) joinQualified(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		escaped = append(escaped, w.Escaper.EscapeIdentifier(p))
	}
	return strings.Join(escaped, ".")
}

func (w *Writer) formatColumnName(c *ColumnName) string {
	var parts []string
	if c.Schema != "" {
		parts = append(parts, w.Escaper.EscapeIdentifier(c.Schema))
	}
	if c.Table != "" {
		parts = append(parts, w.Escaper.EscapeIdentifier(c.Table))
	}
	if c.Name == "*" {
		parts = append(parts, "*")
	} else {
		parts = append(parts, w.Escaper.EscapeIdentifier(c.Name))
	}
	return strings.Join(parts, ".")
}

func (w *Writer) formatTableName(t *TableName) string {
	return w.joinQualified(t.Schema, t.Name)
}

func selfIdentical(inner Expression, alias string) bool {
	switch e := inner.(type) {
	case *ColumnName:
		return e.Name == alias
	case *Identifier:
		return e.Name == alias
	}
	return false
}

func (w *Writer) formatAliased(ctx *WriterContext, a *Aliased) (string, error) {
	inner, err := w.formatSub(ctx, a.Inner)
	if err != nil {
		return "", err
	}
	if a.Alias == "" || isNumericAlias(a.Alias) || selfIdentical(a.Inner, a.Alias) {
		return inner, nil
	}
	return inner + " as " + w.Escaper.EscapeIdentifier(a.Alias), nil
}

func (w *Writer) formatComparison(ctx *WriterContext, c *Comparison) (string, error) {
	var left, right string
	var err error
	if c.Left != nil {
		if left, err = w.formatSub(ctx, c.Left); err != nil {
			return "", err
		}
	}
	if c.Right != nil {
		if right, err = w.formatSub(ctx, c.Right); err != nil {
			return "", err
		}
	}
	switch {
	case c.Left != nil && c.Right != nil:
		return left + " " + c.Operator + " " + right, nil
	case c.Left != nil:
		return left + " " + c.Operator, nil
	case c.Right != nil:
		return c.Operator + " " + right, nil
	default:
		return c.Operator, nil
	}
}

func (w *Writer) formatBetween(ctx *WriterContext, b *Between) (string, error) {
	col, err := w.formatSub(ctx, b.Column)
	if err != nil {
		return "", err
	}
	from, err := w.formatSub(ctx, b.From)
	if err != nil {
		return "", err
	}
	to, err := w.formatSub(ctx, b.To)
	if err != nil {
		return "", err
	}
	return col + " between " + from + " and " + to, nil
}

func (w *Writer) formatNot(ctx *WriterContext, n *Not) (string, error) {
	inner, err := w.format(ctx, n.Inner)
	if err != nil {
		return "", err
	}
	return "not (" + inner + ")", nil
}

func (w *Writer) formatIfThen(ctx *WriterContext, it *IfThen) (string, error) {
	return w.formatCaseWhen(ctx, &CaseWhen{Arms: []*IfThen{it}})
}

// formatCaseCondition renders a CASE WHEN arm's condition. A *Where is
// rendered as its bare body rather than through formatSub: WHEN already
// is a boolean-predicate position the way a WHERE clause's own body is,
// so it does not need the parens formatSub would add for a Where used
// as a value inside some other expression.
func (w *Writer) formatCaseCondition(ctx *WriterContext, e Expression) (string, error) {
	if wh, ok := e.(*Where); ok {
		return w.formatWhereBody(ctx, wh)
	}
	return w.formatSub(ctx, e)
}

func (w *Writer) formatCaseWhen(ctx *WriterContext, c *CaseWhen) (string, error) {
	if len(c.Arms) == 0 {
		if c.Else != nil {
			return w.format(ctx, c.Else)
		}
		return "null", nil
	}
	var sb strings.Builder
	sb.WriteString("case")
	for _, arm := range c.Arms {
		condText, err := w.formatCaseCondition(ctx, arm.Condition)
		if err != nil {
			return "", err
		}
		thenText, err := w.formatSub(ctx, arm.Then)
		if err != nil {
			return "", err
		}
		sb.WriteString(" when " + condText + " then " + thenText)
	}
	if c.Else != nil {
		elseText, err := w.formatSub(ctx, c.Else)
		if err != nil {
			return "", err
		}
		sb.WriteString(" else " + elseText)
	}
	sb.WriteString(" end")
	return sb.String(), nil
}

func (w *Writer) formatConcat(ctx *WriterContext, c *Concat) (string, error) {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		s, err := w.formatSub(ctx, a)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, " || "), nil
}

func (w *Writer) formatCast(ctx *WriterContext, c *Cast) (string, error) {
	inner, err := w.formatSub(ctx, c.Inner)
	if err != nil {
		return "", err
	}
	return "cast(" + inner + " as " + c.Type + ")", nil
}

func (w *Writer) formatFunctionCall(ctx *WriterContext, f *FunctionCall) (string, error) {
	if f.Name == "" {
		return "", newBuilderError("FunctionCall", "function name is required")
	}
	name := f.Name
	if !isPlainAlphanumeric(name) {
		name = w.Escaper.EscapeIdentifier(name)
	}
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		s, err := w.formatSub(ctx, a)
		if err != nil {
			return "", err
		}
		args[i] = s
	}
	return name + "(" + strings.Join(args, ", ") + ")", nil
}

func (w *Writer) formatAggregate(ctx *WriterContext, a *Aggregate) (string, error) {
	useFilterClause := a.Filter != nil && w.Ops.SupportsFilterClause
	column := a.Column
	if a.Filter != nil && !useFilterClause {
		replacement := column
		if replacement == nil {
			replacement = Val(1)
		}
		column = Case(When(a.Filter, replacement))
	}
	argText := "*"
	if column != nil {
		s, err := w.formatSub(ctx, column)
		if err != nil {
			return "", err
		}
		argText = s
	}
	distinct := ""
	if a.Distinct {
		distinct = "distinct "
	}
	// Unlike FunctionCall, an Aggregate's name is always identifier-quoted:
	// aggregate names are a small closed set and the dialects all treat
	// them as ordinary identifiers, so there is no ambiguity to avoid by
	// leaving a plain-alphanumeric name bare.
	name := w.Escaper.EscapeIdentifier(a.Function)
	out := name + "(" + distinct + argText + ")"
	if useFilterClause {
		body, err := w.formatWhereBody(ctx, a.Filter)
		if err != nil {
			return "", err
		}
		out += " filter (where " + body + ")"
	}
	if a.Over != nil {
		overText, err := w.formatWindowInline(ctx, a.Over)
		if err != nil {
			return "", err
		}
		out += " over " + overText
	}
	return out, nil
}

func (w *Writer) formatWindowInline(ctx *WriterContext, win *Window) (string, error) {
	if win.Name != "" && len(win.PartitionBy) == 0 && len(win.OrderBy) == 0 {
		return w.Escaper.EscapeIdentifier(win.Name), nil
	}
	return w.formatWindowBody(ctx, win)
}

func (w *Writer) formatWindowBody(ctx *WriterContext, win *Window) (string, error) {
	var parts []string
	if len(win.PartitionBy) > 0 {
		cols := make([]string, len(win.PartitionBy))
		for i, c := range win.PartitionBy {
			s, err := w.formatSub(ctx, c)
			if err != nil {
				return "", err
			}
			cols[i] = s
		}
		parts = append(parts, "partition by "+strings.Join(cols, ", "))
	}
	if len(win.OrderBy) > 0 {
		obs := make([]string, len(win.OrderBy))
		for i, o := range win.OrderBy {
			s, err := w.formatOrderBy(ctx, o)
			if err != nil {
				return "", err
			}
			obs[i] = s
		}
		parts = append(parts, "order by "+strings.Join(obs, ", "))
	}
	return "(" + strings.Join(parts, " ") + ")", nil
}

func (w *Writer) formatWindowDef(ctx *WriterContext, win *Window) (string, error) {
	body, err := w.formatWindowBody(ctx, win)
	if err != nil {
		return "", err
	}
	return w.Escaper.EscapeIdentifier(win.Name) + " as " + body, nil
}

func (w *Writer) formatCurrentTimestamp() string {
	if w.Ops.CurrentTimestampSQL != "" {
		return w.Ops.CurrentTimestampSQL
	}
	return "current_timestamp"
}

func (w *Writer) formatRandom() string {
	if w.Ops.RandomSQL != "" {
		return w.Ops.RandomSQL
	}
	return "random()"
}

func (w *Writer) formatRandomInt(ctx *WriterContext, r *RandomInt) (string, error) {
	rnd, err := w.format(ctx, Rand)
	if err != nil {
		return "", err
	}
	span := r.Max - r.Min + 1
	return fmt.Sprintf("(%d + cast(floor(%s * %d) as bigint))", r.Min, rnd, span), nil
}

func (w *Writer) formatLike(ctx *WriterContext, l *LikePattern) (string, error) {
	colText, err := w.formatSub(ctx, l.Column)
	if err != nil {
		return "", err
	}
	escaped := w.Escaper.EscapeLike(l.Value, l.Reserved)
	wrapped := EscapeLikePattern(escaped, l.PType)
	placeholder := ctx.bind(wrapped, "string")
	template := l.Template
	if template == "" {
		template = "%c like %s"
	}
	out := strings.Replace(template, "%c", colText, 1)
	out = strings.Replace(out, "%s", placeholder, 1)
	return out, nil
}

func (w *Writer) formatSimilarTo(ctx *WriterContext, s *SimilarToPattern) (string, error) {
	colText, err := w.formatSub(ctx, s.Column)
	if err != nil {
		return "", err
	}
	placeholder := ctx.bind(s.Pattern, "string")
	if s.Regex {
		op := "~"
		if !s.CaseSensitive {
			op = "~*"
		}
		return colText + " " + op + " " + placeholder, nil
	}
	return colText + " similar to " + placeholder, nil
}

func (w *Writer) formatConstantTable(ctx *WriterContext, c *ConstantTable) (string, error) {
	rows := make([]string, len(c.Rows))
	for i, row := range c.Rows {
		vals := make([]string, len(row))
		for j, v := range row {
			s, err := w.formatSub(ctx, v)
			if err != nil {
				return "", err
			}
			vals[j] = s
		}
		rows[i] = "(" + strings.Join(vals, ", ") + ")"
	}
	return "values " + strings.Join(rows, ", "), nil
}

func (w *Writer) formatTable(t *Table) string {
	text := w.joinQualified(t.Schema, t.Name)
	if t.Alias != "" {
		text += " as " + w.Escaper.EscapeIdentifier(t.Alias)
	}
	return text
}

func (w *Writer) formatSubQuery(ctx *WriterContext, s *SubQuery) (string, error) {
	body, err := w.format(ctx, s.Query)
	if err != nil {
		return "", err
	}
	text := "(" + body + ")"
	if s.Alias != "" {
		text += " as " + w.Escaper.EscapeIdentifier(s.Alias)
	}
	return text, nil
}

func (w *Writer) formatConstTableSource(ctx *WriterContext, c *ConstTableSource) (string, error) {
	body, err := w.formatConstantTable(ctx, c.Table)
	if err != nil {
		return "", err
	}
	text := "(" + body + ")"
	if c.Alias != "" {
		text += " as " + w.Escaper.EscapeIdentifier(c.Alias)
	}
	if len(c.Table.Columns) > 0 {
		cols := make([]string, len(c.Table.Columns))
		for i, col := range c.Table.Columns {
			cols[i] = w.Escaper.EscapeIdentifier(col)
		}
		text += " (" + strings.Join(cols, ", ") + ")"
	}
	return text, nil
}

func joinKeyword(mode JoinMode, hasCondition bool) string {
	if mode == JoinNatural {
		return "natural join"
	}
	if !hasCondition {
		return "cross join"
	}
	switch mode {
	case JoinLeft:
		return "left join"
	case JoinLeftOuter:
		return "left outer join"
	case JoinRight:
		return "right join"
	case JoinRightOuter:
		return "right outer join"
	default:
		return "inner join"
	}
}

func (w *Writer) formatOneJoin(ctx *WriterContext, j *JoinStatement) (string, error) {
	hasCond := j.Condition != nil && len(j.Condition.Conditions) > 0
	tableText, err := w.format(ctx, j.Table)
	if err != nil {
		return "", err
	}
	out := joinKeyword(j.Mode, hasCond) + " " + tableText
	if hasCond {
		condText, err := w.formatWhereBody(ctx, j.Condition)
		if err != nil {
			return "", err
		}
		out += " on " + condText
	}
	return out, nil
}

func (w *Writer) formatJoins(ctx *WriterContext, joins []*JoinStatement) (string, error) {
	var sb strings.Builder
	for _, j := range joins {
		s, err := w.formatOneJoin(ctx, j)
		if err != nil {
			return "", err
		}
		sb.WriteString(" ")
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func (w *Writer) formatWith(ctx *WriterContext, ws *WithStatement) (string, error) {
	name := w.Escaper.EscapeIdentifier(ws.Alias)
	cols := ""
	if len(ws.ColumnList) > 0 {
		quoted := make([]string, len(ws.ColumnList))
		for i, c := range ws.ColumnList {
			quoted[i] = w.Escaper.EscapeIdentifier(c)
		}
		cols = "(" + strings.Join(quoted, ", ") + ")"
	}
	body, err := w.format(ctx, ws.Query)
	if err != nil {
		return "", err
	}
	return name + cols + " as (" + body + ")", nil
}

func (w *Writer) formatOrderBy(ctx *WriterContext, o *OrderByStatement) (string, error) {
	colText, err := w.formatSub(ctx, o.Column)
	if err != nil {
		return "", err
	}
	if o.Desc {
		colText += " desc"
	}
	switch o.Nulls {
	case NullsFirst:
		colText += " nulls first"
	case NullsLast:
		colText += " nulls last"
	}
	return colText, nil
}

// formatWhereBody renders where's conditions joined by its operator, the
// empty-Where-is-"1" rule, and skipping any nested Where that is itself
// empty rather than emitting "()" for it.
func (w *Writer) formatWhereBody(ctx *WriterContext, where *Where) (string, error) {
	if where == nil || len(where.Conditions) == 0 {
		return "1", nil
	}
	parts := make([]string, 0, len(where.Conditions))
	for _, c := range where.Conditions {
		if nested, ok := c.(*Where); ok && len(nested.Conditions) == 0 {
			continue
		}
		s, err := w.formatSub(ctx, c)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "1", nil
	}
	sep := " and "
	if where.Operator == WhereOr {
		sep = " or "
	}
	return strings.Join(parts, sep), nil
}

// joinClauses joins a statement's top-level clauses one per line,
// dropping any that are empty — the layout spec.md §8's worked
// end-to-end scenarios show for SELECT/INSERT/UPDATE/DELETE (e.g.
// `select "a"\nfrom "t"\nwhere "a" = ?`).
func joinClauses(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

func (w *Writer) formatSelect(ctx *WriterContext, s *SelectStatement) (string, error) {
	var withClause string
	if len(s.With) > 0 {
		parts := make([]string, len(s.With))
		for i, cte := range s.With {
			t, err := w.formatWith(ctx, cte)
			if err != nil {
				return "", err
			}
			parts[i] = t
		}
		withClause = "with " + strings.Join(parts, ", ")
	}

	var selectLine strings.Builder
	selectLine.WriteString("select ")
	if s.Distinct {
		selectLine.WriteString("distinct ")
	}
	if w.Ops.LimitStyle == TopStyle && s.Limit.Count > 0 && s.Limit.Offset == 0 {
		selectLine.WriteString("top ")
		selectLine.WriteString(strconv.FormatInt(s.Limit.Count, 10))
		selectLine.WriteString(" ")
	}
	if len(s.Columns) == 0 {
		selectLine.WriteString("*")
	} else {
		cols := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			t, err := w.format(ctx, c)
			if err != nil {
				return "", err
			}
			cols[i] = t
		}
		selectLine.WriteString(strings.Join(cols, ", "))
	}

	var fromClause string
	if s.From != nil {
		fromText, err := w.format(ctx, s.From)
		if err != nil {
			return "", err
		}
		fromClause = "from " + fromText
	}

	var joinsClause string
	if len(s.Joins) > 0 {
		t, err := w.formatJoins(ctx, s.Joins)
		if err != nil {
			return "", err
		}
		joinsClause = strings.TrimPrefix(t, " ")
	}

	var whereClause string
	if s.Where != nil && len(s.Where.Conditions) > 0 {
		whereText, err := w.formatWhereBody(ctx, s.Where)
		if err != nil {
			return "", err
		}
		whereClause = "where " + whereText
	}

	var groupByClause string
	if len(s.GroupBy) > 0 {
		parts := make([]string, len(s.GroupBy))
		for i, g := range s.GroupBy {
			t, err := w.formatSub(ctx, g)
			if err != nil {
				return "", err
			}
			parts[i] = t
		}
		groupByClause = "group by " + strings.Join(parts, ", ")
	}

	var havingClause string
	if s.Having != nil && len(s.Having.Conditions) > 0 {
		t, err := w.formatWhereBody(ctx, s.Having)
		if err != nil {
			return "", err
		}
		havingClause = "having " + t
	}

	var windowClause string
	if len(s.Windows) > 0 {
		parts := make([]string, len(s.Windows))
		for i, win := range s.Windows {
			t, err := w.formatWindowDef(ctx, win)
			if err != nil {
				return "", err
			}
			parts[i] = t
		}
		windowClause = "window " + strings.Join(parts, ", ")
	}

	var orderByClause string
	if len(s.OrderBy) > 0 {
		parts := make([]string, len(s.OrderBy))
		for i, o := range s.OrderBy {
			t, err := w.formatOrderBy(ctx, o)
			if err != nil {
				return "", err
			}
			parts[i] = t
		}
		orderByClause = "order by " + strings.Join(parts, ", ")
	}

	limitClause := w.formatLimitOffset(s.Limit)

	var unionClause string
	if len(s.Unions) > 0 {
		parts := make([]string, len(s.Unions))
		for i, u := range s.Unions {
			t, err := w.formatSelect(ctx, u.Query)
			if err != nil {
				return "", err
			}
			parts[i] = string(u.Op) + "\n" + t
		}
		unionClause = strings.Join(parts, "\n")
	}

	var forUpdateClause string
	if s.ForUpdate {
		forUpdateClause = "for update"
	}

	return joinClauses(
		withClause,
		selectLine.String(),
		fromClause,
		joinsClause,
		whereClause,
		groupByClause,
		havingClause,
		windowClause,
		orderByClause,
		limitClause,
		unionClause,
		forUpdateClause,
	), nil
}

// formatLimitOffset renders the LIMIT/OFFSET (or SQL Server TOP/OFFSET
// FETCH) clause as its own line, or "" when range(0,0) applies.
func (w *Writer) formatLimitOffset(r Range) string {
	if w.Ops.LimitStyle == TopStyle {
		if r.Offset <= 0 {
			return ""
		}
		out := fmt.Sprintf("offset %d rows", r.Offset)
		if r.Count > 0 {
			out += fmt.Sprintf(" fetch next %d rows only", r.Count)
		}
		return out
	}
	var sb strings.Builder
	if r.Count > 0 {
		fmt.Fprintf(&sb, "limit %d", r.Count)
	}
	if r.Offset > 0 {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "offset %d", r.Offset)
	}
	return sb.String()
}

func (w *Writer) formatReturning(ctx *WriterContext, cols []*SelectColumn) (string, error) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		t, err := w.format(ctx, c)
		if err != nil {
			return "", err
		}
		parts[i] = t
	}
	return "returning " + strings.Join(parts, ", "), nil
}

// formatSetValue renders an UPDATE/MERGE/upsert SET assignment's RHS.
// Unlike a normal sub-expression position, a SET value is always
// parenthesized regardless of its expression class: it may be an
// arbitrary expression (e.g. a Raw "col + 1"), and the assignment
// position has no operator precedence of its own to rely on.
func (w *Writer) formatSetValue(ctx *WriterContext, e Expression) (string, error) {
	s, err := w.format(ctx, e)
	if err != nil {
		return "", err
	}
	return "(" + s + ")", nil
}

func (w *Writer) formatOnConflict(ctx *WriterContext, oc *OnConflictClause) (string, error) {
	if w.Ops.SupportsOnDuplicateKey {
		if len(oc.DoUpdate) == 0 {
			return "", nil
		}
		parts := make([]string, len(oc.DoUpdate))
		for i, sc := range oc.DoUpdate {
			val, err := w.formatSetValue(ctx, sc.Value)
			if err != nil {
				return "", err
			}
			parts[i] = w.Escaper.EscapeIdentifier(sc.Column) + " = " + val
		}
		return "on duplicate key update " + strings.Join(parts, ", "), nil
	}
	var sb strings.Builder
	sb.WriteString("on conflict")
	if len(oc.Targets) > 0 {
		cols := make([]string, len(oc.Targets))
		for i, c := range oc.Targets {
			cols[i] = w.Escaper.EscapeIdentifier(c)
		}
		sb.WriteString(" (" + strings.Join(cols, ", ") + ")")
	}
	if len(oc.DoUpdate) == 0 {
		sb.WriteString(" do nothing")
		return sb.String(), nil
	}
	sb.WriteString(" do update set ")
	parts := make([]string, len(oc.DoUpdate))
	for i, sc := range oc.DoUpdate {
		val, err := w.formatSetValue(ctx, sc.Value)
		if err != nil {
			return "", err
		}
		parts[i] = w.Escaper.EscapeIdentifier(sc.Column) + " = " + val
	}
	sb.WriteString(strings.Join(parts, ", "))
	return sb.String(), nil
}

func (w *Writer) formatInsert(ctx *WriterContext, ins *InsertStatement) (string, error) {
	if ins.Table == nil {
		return "", newBuilderError("Insert", "table is required")
	}
	verb := "insert into "
	if ins.OnConflict != nil && w.Ops.SupportsOnDuplicateKey && len(ins.OnConflict.DoUpdate) == 0 {
		// ON DUPLICATE KEY has no "do nothing" form; INSERT IGNORE is the
		// no-op conflict handling there.
		verb = "insert ignore into "
	}
	headerLine := verb + w.formatTable(ins.Table)

	var columnsClause string
	if len(ins.Columns) > 0 {
		cols := make([]string, len(ins.Columns))
		for i, c := range ins.Columns {
			cols[i] = w.Escaper.EscapeIdentifier(c)
		}
		columnsClause = "(" + strings.Join(cols, ", ") + ")"
	}

	var valueClauses []string
	switch {
	case ins.Select != nil:
		sel, err := w.formatSelect(ctx, ins.Select)
		if err != nil {
			return "", err
		}
		valueClauses = []string{sel}
	case len(ins.Values) > 0:
		rows := make([]string, len(ins.Values))
		for i, row := range ins.Values {
			vals := make([]string, len(row))
			for j, v := range row {
				s, err := w.formatSub(ctx, v)
				if err != nil {
					return "", err
				}
				vals[j] = s
			}
			rows[i] = "(" + strings.Join(vals, ", ") + ")"
		}
		valueClauses = []string{"values " + rows[0]}
		for _, row := range rows[1:] {
			valueClauses = append(valueClauses, ","+row)
		}
	default:
		row := w.Ops.InsertDefaultRow
		if row == "" {
			row = "default values"
		}
		valueClauses = []string{row}
	}

	var onConflictClause string
	if ins.OnConflict != nil {
		t, err := w.formatOnConflict(ctx, ins.OnConflict)
		if err != nil {
			return "", err
		}
		onConflictClause = t
	}

	var returningClause string
	if len(ins.Returning) > 0 && w.Ops.SupportsReturning {
		t, err := w.formatReturning(ctx, ins.Returning)
		if err != nil {
			return "", err
		}
		returningClause = t
	}

	parts := []string{headerLine, columnsClause}
	parts = append(parts, valueClauses...)
	parts = append(parts, onConflictClause, returningClause)
	return joinClauses(parts...), nil
}

func (w *Writer) formatUpdate(ctx *WriterContext, u *UpdateStatement) (string, error) {
	if u.Table == nil {
		return "", newBuilderError("Update", "table is required")
	}
	if len(u.Set) == 0 {
		return "", newBuilderError("Update", "set list is empty")
	}
	headerLine := "update " + w.formatTable(u.Table)

	var setParts []string
	for _, sc := range u.Set {
		val, err := w.formatSetValue(ctx, sc.Value)
		if err != nil {
			return "", err
		}
		setParts = append(setParts, w.Escaper.EscapeIdentifier(sc.Column)+" = "+val)
	}
	setClause := "set " + strings.Join(setParts, ", ")

	where := u.Where
	var fromClause string
	if len(u.Joins) > 0 {
		first := u.Joins[0]
		if first.Mode != JoinInner && first.Mode != JoinNatural {
			return "", newBuilderError("Update", "first join must be inner or natural to promote into the leading table list, got %q", first.Mode)
		}
		ft, err := w.format(ctx, first.Table)
		if err != nil {
			return "", err
		}
		fromClause = "from " + ft
		if len(u.Joins) > 1 {
			rest, err := w.formatJoins(ctx, u.Joins[1:])
			if err != nil {
				return "", err
			}
			fromClause += rest
		}
		if first.Condition != nil && len(first.Condition.Conditions) > 0 {
			merged := And()
			if where != nil {
				merged.Conditions = append(merged.Conditions, where.Conditions...)
			}
			merged.Conditions = append(merged.Conditions, first.Condition.Conditions...)
			where = merged
		}
	}

	var whereClause string
	if where != nil && len(where.Conditions) > 0 {
		wt, err := w.formatWhereBody(ctx, where)
		if err != nil {
			return "", err
		}
		whereClause = "where " + wt
	}

	var returningClause string
	if len(u.Returning) > 0 && w.Ops.SupportsReturning {
		rt, err := w.formatReturning(ctx, u.Returning)
		if err != nil {
			return "", err
		}
		returningClause = rt
	}

	return joinClauses(headerLine, setClause, fromClause, whereClause, returningClause), nil
}

func (w *Writer) formatDelete(ctx *WriterContext, d *DeleteStatement) (string, error) {
	if d.Table == nil {
		return "", newBuilderError("Delete", "table is required")
	}
	headerLine := "delete from " + w.formatTable(d.Table)
	where := d.Where

	var usingClause string
	if len(d.Joins) > 0 {
		first := d.Joins[0]
		if first.Mode != JoinInner && first.Mode != JoinNatural {
			return "", newBuilderError("Delete", "first join must be inner or natural to promote into the leading table list, got %q", first.Mode)
		}
		ft, err := w.format(ctx, first.Table)
		if err != nil {
			return "", err
		}
		usingClause = "using " + ft
		if first.Condition != nil && len(first.Condition.Conditions) > 0 {
			merged := And()
			if where != nil {
				merged.Conditions = append(merged.Conditions, where.Conditions...)
			}
			merged.Conditions = append(merged.Conditions, first.Condition.Conditions...)
			where = merged
		}
		if len(d.Joins) > 1 {
			rest, err := w.formatJoins(ctx, d.Joins[1:])
			if err != nil {
				return "", err
			}
			usingClause += rest
		}
	}

	var whereClause string
	if where != nil && len(where.Conditions) > 0 {
		wt, err := w.formatWhereBody(ctx, where)
		if err != nil {
			return "", err
		}
		whereClause = "where " + wt
	}

	var returningClause string
	if len(d.Returning) > 0 && w.Ops.SupportsReturning {
		rt, err := w.formatReturning(ctx, d.Returning)
		if err != nil {
			return "", err
		}
		returningClause = rt
	}

	return joinClauses(headerLine, usingClause, whereClause, returningClause), nil
}

func (w *Writer) formatMerge(ctx *WriterContext, m *MergeStatement) (string, error) {
	if !w.Ops.SupportsMerge {
		return w.formatMergeAsUpsert(ctx, m)
	}
	var sb strings.Builder
	sb.WriteString("merge into ")
	sb.WriteString(w.formatTable(m.Target))
	sb.WriteString(" using ")
	st, err := w.format(ctx, m.Source)
	if err != nil {
		return "", err
	}
	sb.WriteString(st)
	sb.WriteString(" on ")
	ot, err := w.formatWhereBody(ctx, m.On)
	if err != nil {
		return "", err
	}
	sb.WriteString(ot)
	if len(m.MatchedSet) > 0 || m.MatchedDelete {
		sb.WriteString(" when matched then ")
		if m.MatchedDelete {
			sb.WriteString("delete")
		} else {
			parts := make([]string, len(m.MatchedSet))
			for i, sc := range m.MatchedSet {
				v, err := w.formatSetValue(ctx, sc.Value)
				if err != nil {
					return "", err
				}
				parts[i] = w.Escaper.EscapeIdentifier(sc.Column) + " = " + v
			}
			sb.WriteString("update set " + strings.Join(parts, ", "))
		}
	}
	if m.NotMatched != nil {
		sb.WriteString(" when not matched then insert ")
		if len(m.NotMatched.Columns) > 0 {
			cols := make([]string, len(m.NotMatched.Columns))
			for i, c := range m.NotMatched.Columns {
				cols[i] = w.Escaper.EscapeIdentifier(c)
			}
			sb.WriteString("(" + strings.Join(cols, ", ") + ") ")
		}
		if len(m.NotMatched.Values) > 0 {
			vals := make([]string, len(m.NotMatched.Values[0]))
			for i, v := range m.NotMatched.Values[0] {
				s, err := w.formatSub(ctx, v)
				if err != nil {
					return "", err
				}
				vals[i] = s
			}
			sb.WriteString("values (" + strings.Join(vals, ", ") + ")")
		}
	}
	return sb.String(), nil
}

// formatMergeAsUpsert rewrites a MergeStatement into an equivalent
// upsert INSERT for dialects with no native MERGE support.
func (w *Writer) formatMergeAsUpsert(ctx *WriterContext, m *MergeStatement) (string, error) {
	if m.NotMatched == nil {
		return "", newBuilderError("Merge", "dialect has no MERGE support and statement has no insert branch to rewrite from")
	}
	ins := *m.NotMatched
	ins.OnConflict = &OnConflictClause{DoUpdate: m.MatchedSet}
	return w.formatInsert(ctx, &ins)
}
