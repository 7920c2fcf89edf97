package cydb_test

import (
	"testing"

	"github.com/cydbgo/cydb/pkg/cydb"
	_ "github.com/cydbgo/cydb/pkg/cydb/dialect/mariadb"
	_ "github.com/cydbgo/cydb/pkg/cydb/dialect/mysql"
	_ "github.com/cydbgo/cydb/pkg/cydb/dialect/postgres"
	_ "github.com/cydbgo/cydb/pkg/cydb/dialect/sqlite"
	_ "github.com/cydbgo/cydb/pkg/cydb/dialect/sqlserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriterForKnownDialects(t *testing.T) {
	for _, name := range []string{"postgresql", "mysql", "mariadb", "sqlite", "sqlserver"} {
		w, err := cydb.NewWriterFor(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, w.Ops.Name)
	}
}

func TestNewWriterForUnknownDialectErrors(t *testing.T) {
	_, err := cydb.NewWriterFor("db2")
	assert.Error(t, err)
}

func TestDialectsListsAllRegistered(t *testing.T) {
	names := cydb.Dialects()
	assert.Contains(t, names, "postgresql")
	assert.Contains(t, names, "mysql")
	assert.Contains(t, names, "mariadb")
	assert.Contains(t, names, "sqlite")
	assert.Contains(t, names, "sqlserver")
}
