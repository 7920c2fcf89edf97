package cydb_test

import (
	"testing"

	"github.com/cydbgo/cydb/pkg/cydb"
	"github.com/cydbgo/cydb/pkg/cydb/dialect/postgres"
	"github.com/cydbgo/cydb/pkg/cydb/dialect/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentPlaceholderBijection(t *testing.T) {
	w := postgres.NewWriter()
	where := cydb.And(
		cydb.Eq(cydb.Col("a"), cydb.Val(1)),
		cydb.Eq(cydb.Col("b"), cydb.Val(2)),
		cydb.Eq(cydb.Col("c"), cydb.Val(3)),
	)
	sql := prepare(t, w, where)
	require.Equal(t, 3, len(sql.Arguments))
	assert.Equal(t, "$1", sql.Text[len(`"a" = `):len(`"a" = `)+2])
	assert.Equal(t, []any{1, 2, 3}, sql.Arguments)
}

func TestIdempotentRePrepare(t *testing.T) {
	w := postgres.NewWriter()
	e := cydb.Eq(cydb.Col("a"), cydb.Val(1))

	first, err := w.Prepare(e)
	require.NoError(t, err)

	second, err := w.Prepare(first)
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Arguments, second.Arguments)
	assert.Same(t, first, second)
}

func TestIdentifierSafetyAcrossDialects(t *testing.T) {
	pg := postgres.NewWriter()
	sql := prepare(t, pg, cydb.Col("name"))
	assert.True(t, len(sql.Text) >= 2)
	assert.Equal(t, byte('"'), sql.Text[0])
	assert.Equal(t, byte('"'), sql.Text[len(sql.Text)-1])

	sql = prepare(t, pg, cydb.Col("*"))
	assert.Equal(t, "*", sql.Text)
}

func TestEmptyWhereLaw(t *testing.T) {
	w := postgres.NewWriter()

	sql := prepare(t, w, cydb.EmptyWhere())
	assert.Equal(t, "1", sql.Text)

	nested := cydb.And(cydb.EmptyWhere(), cydb.EmptyWhere())
	sql = prepare(t, w, nested)
	assert.Equal(t, "1", sql.Text)
}

func TestRawFastPath(t *testing.T) {
	w := postgres.NewWriter()
	sql := prepare(t, w, cydb.NewRaw("select 1"))
	assert.Equal(t, "select 1", sql.Text)
	assert.Empty(t, sql.Arguments)
}

func TestDoubleQuestionEscapeRendersUnescapeChar(t *testing.T) {
	w := sqlite.NewWriter()
	sql := prepare(t, w, cydb.NewRaw("is it a ?? mark"))
	assert.Equal(t, "is it a ? mark", sql.Text)
	assert.Empty(t, sql.Arguments)
}

func TestRangeRule(t *testing.T) {
	w := postgres.NewWriter()

	sel := cydb.Select("a").From(cydb.AsTable("t")).Build()
	sql := prepare(t, w, sel)
	assert.NotContains(t, sql.Text, "limit")
	assert.NotContains(t, sql.Text, "offset")

	sel = cydb.Select("a").From(cydb.AsTable("t")).Limit(10).Build()
	sql = prepare(t, w, sel)
	assert.Contains(t, sql.Text, "limit 10")
	assert.NotContains(t, sql.Text, "offset")

	sel = cydb.Select("a").From(cydb.AsTable("t")).Offset(5).Build()
	sql = prepare(t, w, sel)
	assert.Contains(t, sql.Text, "offset 5")
	assert.NotContains(t, sql.Text, "limit")

	sel = cydb.Select("a").From(cydb.AsTable("t")).Limit(10).Offset(5).Build()
	sql = prepare(t, w, sel)
	assert.Contains(t, sql.Text, "limit 10 offset 5")
}
