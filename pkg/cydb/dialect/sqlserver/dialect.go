package sqlserver

import "github.com/cydbgo/cydb/pkg/cydb"

// Ops returns the DialectOps SQL Server supports.
func Ops() cydb.DialectOps {
	return cydb.DialectOps{
		Name: "sqlserver",
		// SQL Server has no RETURNING clause (it uses OUTPUT, which
		// sits in a different clause position entirely); Returning on a
		// statement against this dialect is silently dropped rather
		// than misrendered. See DESIGN.md.
		SupportsReturning: false,
		SupportsMerge:     true,
		LimitStyle:          cydb.TopStyle,
		InsertDefaultRow:    "default values",
		CurrentTimestampSQL: "getdate()",
		RandomSQL:           "rand()",
	}
}

// NewWriter builds a Writer configured for SQL Server.
func NewWriter() *cydb.Writer {
	return cydb.NewWriter(Escaper{}, cydb.NewConverterRegistry(), Ops())
}

func init() {
	cydb.RegisterDialect("sqlserver", NewWriter)
}
