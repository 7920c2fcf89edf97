package mysql

import "github.com/cydbgo/cydb/pkg/cydb"

// Ops returns the DialectOps MySQL supports.
func Ops() cydb.DialectOps {
	return cydb.DialectOps{
		Name:                   "mysql",
		SupportsFilterClause:   false,
		SupportsReturning:      false,
		SupportsOnDuplicateKey: true,
		SupportsMerge:          false,
		LimitStyle:             cydb.LimitOffsetStyle,
		InsertDefaultRow:       "() values ()",
		CurrentTimestampSQL:    "current_timestamp()",
		RandomSQL:              "rand()",
	}
}

// NewWriter builds a Writer configured for MySQL.
func NewWriter() *cydb.Writer {
	return cydb.NewWriter(Escaper{}, cydb.NewConverterRegistry(), Ops())
}

func init() {
	cydb.RegisterDialect("mysql", NewWriter)
}
