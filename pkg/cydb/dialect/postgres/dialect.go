package postgres

import "github.com/cydbgo/cydb/pkg/cydb"

// Ops returns the DialectOps PostgreSQL supports.
func Ops() cydb.DialectOps {
	return cydb.DialectOps{
		Name:                 "postgresql",
		SupportsFilterClause: true,
		SupportsReturning:    true,
		SupportsOnConflict:   true,
		SupportsMerge:        true,
		LimitStyle:           cydb.LimitOffsetStyle,
		InsertDefaultRow:     "default values",
		CurrentTimestampSQL:  "now()",
		RandomSQL:            "random()",
	}
}

// NewWriter builds a Writer configured for PostgreSQL.
func NewWriter() *cydb.Writer {
	return cydb.NewWriter(Escaper{}, cydb.NewConverterRegistry(), Ops())
}

func init() {
	cydb.RegisterDialect("postgresql", NewWriter)
}
