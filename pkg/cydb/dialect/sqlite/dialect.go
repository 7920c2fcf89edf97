package sqlite

import "github.com/cydbgo/cydb/pkg/cydb"

// Ops returns the DialectOps SQLite supports.
func Ops() cydb.DialectOps {
	return cydb.DialectOps{
		Name:                "sqlite",
		SupportsReturning:   true,
		SupportsOnConflict:  true,
		LimitStyle:          cydb.LimitOffsetStyle,
		InsertDefaultRow:    "default values",
		CurrentTimestampSQL: "current_timestamp",
		RandomSQL:           "random()",
	}
}

// NewWriter builds a Writer configured for SQLite.
func NewWriter() *cydb.Writer {
	return cydb.NewWriter(Escaper{}, cydb.NewConverterRegistry(), Ops())
}

func init() {
	cydb.RegisterDialect("sqlite", NewWriter)
}
