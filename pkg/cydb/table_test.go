package cydb_test

import (
	"testing"

	"github.com/cydbgo/cydb/pkg/cydb"
	"github.com/cydbgo/cydb/pkg/cydb/dialect/postgres"
	"github.com/stretchr/testify/assert"
)

func TestEmptyWhereRendersAsOne(t *testing.T) {
	w := postgres.NewWriter()

	sql := prepare(t, w, cydb.EmptyWhere())
	assert.Equal(t, "1", sql.Text)

	sql = prepare(t, w, cydb.And())
	assert.Equal(t, "1", sql.Text)
}

func TestWhereNestedEmptyIsSkippedNotParens(t *testing.T) {
	w := postgres.NewWriter()
	where := cydb.And(cydb.Eq(cydb.Col("a"), cydb.Val(1)), cydb.And())
	sql := prepare(t, w, where)
	assert.Equal(t, `"a" = $1`, sql.Text)
}

func TestWhereOrOperator(t *testing.T) {
	w := postgres.NewWriter()
	where := cydb.Or(cydb.Eq(cydb.Col("a"), cydb.Val(1)), cydb.Eq(cydb.Col("b"), cydb.Val(2)))
	sql := prepare(t, w, where)
	assert.Equal(t, `"a" = $1 or "b" = $2`, sql.Text)
}

func TestWhereAsSubExpressionIsParenthesized(t *testing.T) {
	w := postgres.NewWriter()
	inner := cydb.Or(cydb.Eq(cydb.Col("a"), cydb.Val(1)), cydb.Eq(cydb.Col("b"), cydb.Val(2)))
	sql := prepare(t, w, cydb.Negate(inner))
	assert.Equal(t, `not ("a" = $1 or "b" = $2)`, sql.Text)
}

func TestConstantTableRendering(t *testing.T) {
	w := postgres.NewWriter()
	ct := cydb.Values(
		[]cydb.Expression{cydb.Val(1), cydb.Val("a")},
		[]cydb.Expression{cydb.Val(2), cydb.Val("b")},
	)
	sql := prepare(t, w, ct)
	assert.Equal(t, "values ($1, $2), ($3, $4)", sql.Text)
}

func TestConstantTableForcesParensAsSub(t *testing.T) {
	w := postgres.NewWriter()
	ct := cydb.Values([]cydb.Expression{cydb.Val(1)})
	sql := prepare(t, w, cydb.Negate(ct))
	assert.Equal(t, "not (values ($1))", sql.Text)
}

func TestTableRendering(t *testing.T) {
	w := postgres.NewWriter()

	sql := prepare(t, w, cydb.AsTable("users"))
	assert.Equal(t, `"users"`, sql.Text)

	sql = prepare(t, w, cydb.AsTable("app.users", "u"))
	assert.Equal(t, `"app"."users" as "u"`, sql.Text)
}

func TestSubQueryRendering(t *testing.T) {
	w := postgres.NewWriter()
	sel := cydb.Select("id").From(cydb.AsTable("users")).Build()
	sub := cydb.Sub(sel, "u")
	sql := prepare(t, w, sub)
	assert.Equal(t, `(select "id"\nfrom "users") as "u"`, unescapeNewlines(sql.Text))
}

func TestSubAutoGeneratesAliasWithPrefix(t *testing.T) {
	sel := cydb.Select("id").Build()
	sub := cydb.SubAuto(sel)
	assert.Regexp(t, `^t_[0-9a-f-]{8}$`, sub.Alias)
}

func TestJoinKeywordSelection(t *testing.T) {
	w := postgres.NewWriter()

	sel := cydb.Select("a.id").
		From(cydb.AsTable("a")).
		Join(cydb.Join(cydb.JoinLeft, cydb.AsTable("b"), cydb.And(cydb.Eq(cydb.Col("a.id"), cydb.Col("b.a_id"))))).
		Build()
	sql := prepare(t, w, sel)
	assert.Contains(t, sql.Text, `left join "b" on "a"."id" = "b"."a_id"`)
}

func TestJoinWithoutConditionDegradesToCrossJoin(t *testing.T) {
	w := postgres.NewWriter()
	sel := cydb.Select("a.id").
		From(cydb.AsTable("a")).
		Join(cydb.Join(cydb.JoinInner, cydb.AsTable("b"), nil)).
		Build()
	sql := prepare(t, w, sel)
	assert.Contains(t, sql.Text, `cross join "b"`)
}

func TestNaturalJoinIgnoresCondition(t *testing.T) {
	w := postgres.NewWriter()
	sel := cydb.Select("a.id").
		From(cydb.AsTable("a")).
		Join(cydb.Join(cydb.JoinNatural, cydb.AsTable("b"), nil)).
		Build()
	sql := prepare(t, w, sel)
	assert.Contains(t, sql.Text, `natural join "b"`)
}

func unescapeNewlines(s string) string {
	out := ""
	for _, r := range s {
		if r == '\n' {
			out += `\n`
			continue
		}
		out += string(r)
	}
	return out
}
