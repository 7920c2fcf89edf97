package cydb

// Range clamps a LIMIT/OFFSET pair: Count==0 means no LIMIT is
// rendered; Offset==0 means no OFFSET is rendered. range(10,0) is
// "limit 10"; range(0,0) renders neither clause.
type Range struct {
	Count  int64
	Offset int64
}

// SetClause is one "column = value" assignment in an UPDATE's SET list
// or a MERGE's WHEN MATCHED THEN UPDATE list. Kept as an ordered slice
// on the owning statement rather than a map, so SET order always
// matches call order.
type SetClause struct {
	Column string
	Value  Expression
}

// Assign builds a SetClause.
func Assign(column string, value Expression) SetClause {
	return SetClause{Column: column, Value: value}
}

// UnionOp selects plain UNION (duplicate-eliminating) or UNION ALL.
type UnionOp string

const (
	UnionDistinct UnionOp = "union"
	UnionAll      UnionOp = "union all"
)

// UnionClause appends another SELECT to a statement's result set.
type UnionClause struct {
	Op    UnionOp
	Query *SelectStatement
}

// SelectStatement is a full SELECT, usable standalone or nested as a
// subquery/CTE member.
type SelectStatement struct {
	With      []*WithStatement
	Distinct  bool
	Columns   []*SelectColumn
	From      TableSource
	Joins     []*JoinStatement
	Where     *Where
	GroupBy   []Expression
	Having    *Where
	Windows   []*Window
	OrderBy   []*OrderByStatement
	Limit     Range
	Unions    []*UnionClause
	ForUpdate bool
}

func (*SelectStatement) Returns() bool { return true }

// InsertStatement is a full INSERT, either a literal VALUES list or an
// INSERT ... SELECT. Exactly one of Values/Select should be set; if
// both are empty the statement inserts a single row of defaults
// (DialectOps.InsertDefaultRow).
type InsertStatement struct {
	Table      *Table
	Columns    []string
	Values     [][]Expression
	Select     *SelectStatement
	OnConflict *OnConflictClause
	Returning  []*SelectColumn
}

func (*InsertStatement) Returns() bool { return true }

// OnConflictClause renders the dialect's upsert syntax (ON CONFLICT /
// ON DUPLICATE KEY UPDATE / MERGE, depending on dialect capability).
// Targets is the conflicting column list (ignored by dialects that
// don't require naming it); DoUpdate, if empty, renders a no-op
// conflict clause (DO NOTHING / IGNORE).
type OnConflictClause struct {
	Targets  []string
	DoUpdate []SetClause
}

// UpdateStatement is a full UPDATE, including multi-table joins for
// dialects that support them (the first JoinStatement's table is
// promoted into a leading "from" clause and its condition is merged into
// the WHERE clause; see Writer.formatUpdate).
type UpdateStatement struct {
	Table     *Table
	Joins     []*JoinStatement
	Set       []SetClause
	Where     *Where
	Returning []*SelectColumn
}

func (*UpdateStatement) Returns() bool { return true }

// DeleteStatement is a full DELETE, including multi-table joins for
// dialects that support them.
type DeleteStatement struct {
	Table     *Table
	Joins     []*JoinStatement
	Where     *Where
	Returning []*SelectColumn
}

func (*DeleteStatement) Returns() bool { return true }

// MergeStatement is a full MERGE/upsert across a target and a source,
// rendered natively on dialects with MERGE support and rewritten to an
// equivalent INSERT ... ON CONFLICT / ON DUPLICATE KEY form elsewhere
// (see Writer.formatMerge).
type MergeStatement struct {
	Target        *Table
	Source        TableSource
	On            *Where
	MatchedSet    []SetClause
	MatchedDelete bool
	NotMatched    *InsertStatement
}

func (*MergeStatement) Returns() bool { return true }
