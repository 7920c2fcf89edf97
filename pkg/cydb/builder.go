package cydb

import "github.com/duke-git/lancet/v2/slice"

// SelectBuilder builds up a SelectStatement fluently. No SQL is rendered
// until the result is handed to a Writer's Prepare.
type SelectBuilder struct {
	stmt *SelectStatement
}

// Select starts a new SELECT over the given projection columns (string
// shorthand is parsed the same way Col parses "table.column" paths; use
// Proj/As for anything needing an alias or a non-column expression).
func Select(columns ...string) *SelectBuilder {
	cols := make([]*SelectColumn, len(columns))
	for i, c := range columns {
		cols[i] = Proj(Col(c))
	}
	return &SelectBuilder{stmt: &SelectStatement{Columns: cols}}
}

// SelectExpr starts a new SELECT over arbitrary expressions.
func SelectExpr(columns ...*SelectColumn) *SelectBuilder {
	return &SelectBuilder{stmt: &SelectStatement{Columns: columns}}
}

func (b *SelectBuilder) With(ctes ...*WithStatement) *SelectBuilder {
	b.stmt.With = append(b.stmt.With, ctes...)
	return b
}

func (b *SelectBuilder) DistinctRows() *SelectBuilder {
	b.stmt.Distinct = true
	return b
}

func (b *SelectBuilder) From(table TableSource) *SelectBuilder {
	b.stmt.From = table
	return b
}

func (b *SelectBuilder) Join(join *JoinStatement) *SelectBuilder {
	b.stmt.Joins = append(b.stmt.Joins, join)
	return b
}

func (b *SelectBuilder) Where(where *Where) *SelectBuilder {
	b.stmt.Where = where
	return b
}

func (b *SelectBuilder) GroupBy(columns ...Expression) *SelectBuilder {
	b.stmt.GroupBy = append(b.stmt.GroupBy, columns...)
	return b
}

func (b *SelectBuilder) Having(having *Where) *SelectBuilder {
	b.stmt.Having = having
	return b
}

func (b *SelectBuilder) Window(windows ...*Window) *SelectBuilder {
	b.stmt.Windows = append(b.stmt.Windows, windows...)
	return b
}

func (b *SelectBuilder) OrderBy(items ...*OrderByStatement) *SelectBuilder {
	b.stmt.OrderBy = append(b.stmt.OrderBy, items...)
	return b
}

func (b *SelectBuilder) Limit(count int64) *SelectBuilder {
	b.stmt.Limit.Count = count
	return b
}

func (b *SelectBuilder) Offset(offset int64) *SelectBuilder {
	b.stmt.Limit.Offset = offset
	return b
}

// Union appends other's result set with the given combination operator
// (UnionDistinct or UnionAll).
func (b *SelectBuilder) Union(op UnionOp, other *SelectStatement) *SelectBuilder {
	b.stmt.Unions = append(b.stmt.Unions, &UnionClause{Op: op, Query: other})
	return b
}

// ForUpdate marks the statement as a locking SELECT ... FOR UPDATE.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.stmt.ForUpdate = true
	return b
}

// Build returns the accumulated SelectStatement, usable directly as an
// Expression (e.g. nested as a subquery) or handed to Writer.Prepare.
func (b *SelectBuilder) Build() *SelectStatement { return b.stmt }

func (b *SelectBuilder) Returns() bool { return true }

// InsertBuilder builds up an InsertStatement fluently.
type InsertBuilder struct {
	stmt *InsertStatement
}

// Insert starts a new INSERT into table.
func Insert(table string) *InsertBuilder {
	return &InsertBuilder{stmt: &InsertStatement{Table: AsTable(table)}}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.stmt.Columns = slice.Unique(columns)
	return b
}

func (b *InsertBuilder) Values(row ...Expression) *InsertBuilder {
	b.stmt.Values = append(b.stmt.Values, row)
	return b
}

func (b *InsertBuilder) FromSelect(sel *SelectStatement) *InsertBuilder {
	b.stmt.Select = sel
	return b
}

func (b *InsertBuilder) OnConflict(oc *OnConflictClause) *InsertBuilder {
	b.stmt.OnConflict = oc
	return b
}

func (b *InsertBuilder) Returning(columns ...*SelectColumn) *InsertBuilder {
	b.stmt.Returning = columns
	return b
}

func (b *InsertBuilder) Build() *InsertStatement { return b.stmt }

// UpdateBuilder builds up an UpdateStatement fluently.
type UpdateBuilder struct {
	stmt *UpdateStatement
}

// Update starts a new UPDATE of table.
func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{stmt: &UpdateStatement{Table: AsTable(table)}}
}

func (b *UpdateBuilder) Join(join *JoinStatement) *UpdateBuilder {
	b.stmt.Joins = append(b.stmt.Joins, join)
	return b
}

func (b *UpdateBuilder) Set(column string, value Expression) *UpdateBuilder {
	b.stmt.Set = append(b.stmt.Set, Assign(column, value))
	return b
}

func (b *UpdateBuilder) Where(where *Where) *UpdateBuilder {
	b.stmt.Where = where
	return b
}

func (b *UpdateBuilder) Returning(columns ...*SelectColumn) *UpdateBuilder {
	b.stmt.Returning = columns
	return b
}

func (b *UpdateBuilder) Build() *UpdateStatement { return b.stmt }

// DeleteBuilder builds up a DeleteStatement fluently.
type DeleteBuilder struct {
	stmt *DeleteStatement
}

// Delete starts a new DELETE from table.
func Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{stmt: &DeleteStatement{Table: AsTable(table)}}
}

func (b *DeleteBuilder) Join(join *JoinStatement) *DeleteBuilder {
	b.stmt.Joins = append(b.stmt.Joins, join)
	return b
}

func (b *DeleteBuilder) Where(where *Where) *DeleteBuilder {
	b.stmt.Where = where
	return b
}

func (b *DeleteBuilder) Returning(columns ...*SelectColumn) *DeleteBuilder {
	b.stmt.Returning = columns
	return b
}

func (b *DeleteBuilder) Build() *DeleteStatement { return b.stmt }

// MergeBuilder builds up a MergeStatement fluently.
type MergeBuilder struct {
	stmt *MergeStatement
}

// Merge starts a new MERGE into target.
func Merge(target string) *MergeBuilder {
	return &MergeBuilder{stmt: &MergeStatement{Target: AsTable(target)}}
}

func (b *MergeBuilder) Using(source TableSource) *MergeBuilder {
	b.stmt.Source = source
	return b
}

func (b *MergeBuilder) On(on *Where) *MergeBuilder {
	b.stmt.On = on
	return b
}

func (b *MergeBuilder) WhenMatchedUpdate(set ...SetClause) *MergeBuilder {
	b.stmt.MatchedSet = set
	return b
}

func (b *MergeBuilder) WhenMatchedDelete() *MergeBuilder {
	b.stmt.MatchedDelete = true
	return b
}

func (b *MergeBuilder) WhenNotMatchedInsert(ins *InsertStatement) *MergeBuilder {
	b.stmt.NotMatched = ins
	return b
}

func (b *MergeBuilder) Build() *MergeStatement { return b.stmt }
