package cydb_test

import (
	"testing"

	"github.com/cydbgo/cydb/pkg/cydb"
	"github.com/cydbgo/cydb/pkg/cydb/dialect/postgres"
	"github.com/cydbgo/cydb/pkg/cydb/dialect/sqlserver"
	"github.com/stretchr/testify/assert"
)

func TestLikeContainsDefaultTemplate(t *testing.T) {
	w := postgres.NewWriter()
	sql := prepare(t, w, cydb.Like(cydb.Col("name"), "a_b", cydb.LikeContains))
	assert.Equal(t, `"name" like $1`, sql.Text)
	assert.Equal(t, []any{`%a\_b%`}, sql.Arguments)
}

func TestLikeStartsWithAndEndsWith(t *testing.T) {
	w := postgres.NewWriter()

	sql := prepare(t, w, cydb.Like(cydb.Col("name"), "abc", cydb.LikeStartsWith))
	assert.Equal(t, []any{"abc%"}, sql.Arguments)

	sql = prepare(t, w, cydb.Like(cydb.Col("name"), "abc", cydb.LikeEndsWith))
	assert.Equal(t, []any{"%abc"}, sql.Arguments)
}

func TestLikeExactAndNoneAddNoWildcards(t *testing.T) {
	w := postgres.NewWriter()

	sql := prepare(t, w, cydb.Like(cydb.Col("name"), "abc", cydb.LikeExact))
	assert.Equal(t, []any{"abc"}, sql.Arguments)

	sql = prepare(t, w, cydb.Like(cydb.Col("name"), "abc", cydb.LikeNone))
	assert.Equal(t, []any{"abc"}, sql.Arguments)
}

func TestLikeUsesDialectEscaperForReservedChars(t *testing.T) {
	pg := postgres.NewWriter()
	sql := prepare(t, pg, cydb.Like(cydb.Col("name"), "100%_done", cydb.LikeContains))
	assert.Equal(t, []any{`%100\%\_done%`}, sql.Arguments)

	ss := sqlserver.NewWriter()
	sql = prepare(t, ss, cydb.Like(cydb.Col("name"), "100%_done", cydb.LikeContains))
	assert.Equal(t, []any{`%100[%][_]done%`}, sql.Arguments)
}

func TestLikeCustomTemplate(t *testing.T) {
	w := postgres.NewWriter()
	lp := cydb.Like(cydb.Col("name"), "abc", cydb.LikeContains).WithTemplate("lower(%c) like lower(%s)")
	sql := prepare(t, w, lp)
	assert.Equal(t, `lower("name") like lower($1)`, sql.Text)
}

func TestSimilarToNonRegex(t *testing.T) {
	w := postgres.NewWriter()
	sql := prepare(t, w, cydb.SimilarTo(cydb.Col("name"), "abc%", true, false))
	assert.Equal(t, `"name" similar to $1`, sql.Text)
	assert.Equal(t, []any{"abc%"}, sql.Arguments)
}

func TestSimilarToRegexCaseSensitivity(t *testing.T) {
	w := postgres.NewWriter()

	sql := prepare(t, w, cydb.SimilarTo(cydb.Col("name"), "^a.*", true, true))
	assert.Equal(t, `"name" ~ $1`, sql.Text)

	sql = prepare(t, w, cydb.SimilarTo(cydb.Col("name"), "^a.*", false, true))
	assert.Equal(t, `"name" ~* $1`, sql.Text)
}
