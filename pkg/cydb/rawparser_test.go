package cydb_test

import (
	"testing"

	"github.com/cydbgo/cydb/pkg/cydb"
	"github.com/cydbgo/cydb/pkg/cydb/dialect/postgres"
	"github.com/cydbgo/cydb/pkg/cydb/dialect/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawPlaceholderInsideQuotedStringIsNotBound(t *testing.T) {
	w := sqlite.NewWriter()
	sql, err := w.Prepare(cydb.NewRaw("select '?' , ?", 1))
	require.NoError(t, err)
	assert.Equal(t, "select '?' , ?", sql.Text)
	assert.Equal(t, []any{1}, sql.Arguments)
}

func TestRawPlaceholderInsideBacktickIsNotBound(t *testing.T) {
	w := sqlite.NewWriter()
	sql, err := w.Prepare(cydb.NewRaw("select `?col` , ?", 1))
	require.NoError(t, err)
	assert.Equal(t, "select `?col` , ?", sql.Text)
	assert.Equal(t, []any{1}, sql.Arguments)
}

func TestRawPlaceholderInsidePostgresDollarQuoteIsNotBound(t *testing.T) {
	w := postgres.NewWriter()
	sql, err := w.Prepare(cydb.NewRaw("select $$literal ? text$$, ?", 1))
	require.NoError(t, err)
	assert.Equal(t, "select $$literal ? text$$, $1", sql.Text)
	assert.Equal(t, []any{1}, sql.Arguments)
}

func TestRawArrayCastPlaceholder(t *testing.T) {
	w := postgres.NewWriter()
	sql, err := w.Prepare(cydb.NewRaw("select ?::array", []any{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, "select array[$1, $2, $3]", sql.Text)
	assert.Equal(t, []any{1, 2, 3}, sql.Arguments)
}

func TestRawDoubleQuestionEscapeTakesPrecedenceOverPlaceholder(t *testing.T) {
	w := sqlite.NewWriter()
	sql, err := w.Prepare(cydb.NewRaw("a ?? b"))
	require.NoError(t, err)
	assert.Equal(t, "a ? b", sql.Text)
	assert.Empty(t, sql.Arguments)

	sql, err = w.Prepare(cydb.NewRaw("x = ? and y ?? z", 1))
	require.NoError(t, err)
	assert.Equal(t, "x = ? and y ? z", sql.Text)
	assert.Equal(t, []any{1}, sql.Arguments)
}

func TestRawTemplateWithNoPlaceholdersButArgsErrors(t *testing.T) {
	w := postgres.NewWriter()
	_, err := w.Prepare(cydb.NewRaw("select 1", 5))
	assert.Error(t, err)
}
