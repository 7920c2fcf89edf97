// Package mariadb wraps pkg/cydb/dialect/mysql: MariaDB's wire syntax
// is close enough to MySQL's that it reuses the same Escaper, diverging
// only in DialectOps (MariaDB added native RETURNING in 10.5).
package mariadb

import (
	"github.com/cydbgo/cydb/pkg/cydb"
	"github.com/cydbgo/cydb/pkg/cydb/dialect/mysql"
)

// Ops returns the DialectOps MariaDB supports.
func Ops() cydb.DialectOps {
	ops := mysql.Ops()
	ops.Name = "mariadb"
	ops.SupportsReturning = true
	return ops
}

// NewWriter builds a Writer configured for MariaDB.
func NewWriter() *cydb.Writer {
	return cydb.NewWriter(mysql.Escaper{}, cydb.NewConverterRegistry(), Ops())
}

func init() {
	cydb.RegisterDialect("mariadb", NewWriter)
}
