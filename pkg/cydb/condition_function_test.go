package cydb_test

import (
	"testing"

	"github.com/cydbgo/cydb/pkg/cydb"
	"github.com/cydbgo/cydb/pkg/cydb/dialect/postgres"
	"github.com/cydbgo/cydb/pkg/cydb/dialect/sqlserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparisonOneSided(t *testing.T) {
	w := postgres.NewWriter()

	sql := prepare(t, w, cydb.Eq(cydb.Col("a"), cydb.Val(1)))
	assert.Equal(t, `"a" = $1`, sql.Text)

	sql = prepare(t, w, &cydb.Comparison{Left: cydb.Col("a"), Operator: "is not null"})
	assert.Equal(t, `"a" is not null`, sql.Text)

	sql = prepare(t, w, &cydb.Comparison{Operator: "exists", Right: cydb.Col("b")})
	assert.Equal(t, `exists "b"`, sql.Text)

	sql = prepare(t, w, &cydb.Comparison{Operator: "default"})
	assert.Equal(t, "default", sql.Text)
}

func TestBetween(t *testing.T) {
	w := postgres.NewWriter()
	sql := prepare(t, w, cydb.Betw(cydb.Col("a"), cydb.Val(1), cydb.Val(10)))
	assert.Equal(t, `"a" between $1 and $2`, sql.Text)
}

func TestNotForcesParens(t *testing.T) {
	w := postgres.NewWriter()
	sql := prepare(t, w, cydb.Negate(cydb.Eq(cydb.Col("a"), cydb.Val(1))))
	assert.Equal(t, `not ("a" = $1)`, sql.Text)
}

func TestCaseWhenConditionIsNotParenthesized(t *testing.T) {
	w := postgres.NewWriter()
	where := cydb.And(cydb.Gt(cydb.Col("a"), cydb.Val(0)))
	sql := prepare(t, w, cydb.Case(cydb.When(where, cydb.Col("*"))))
	assert.Equal(t, `case when "a" > $1 then * end`, sql.Text)
}

func TestCaseWhenWithElseAndNonWhereCondition(t *testing.T) {
	w := postgres.NewWriter()
	sql := prepare(t, w, cydb.Case(
		cydb.When(cydb.Eq(cydb.Col("a"), cydb.Val(1)), cydb.Val("one")),
	).WithElse(cydb.Val("other")))
	assert.Equal(t, `case when "a" = $1 then $2 else $3 end`, sql.Text)
}

func TestCaseWhenNoArmsDegeneratesToElseOrNull(t *testing.T) {
	w := postgres.NewWriter()

	sql := prepare(t, w, &cydb.CaseWhen{})
	assert.Equal(t, "null", sql.Text)

	sql = prepare(t, w, (&cydb.CaseWhen{}).WithElse(cydb.Val(5)))
	assert.Equal(t, "$1", sql.Text)
}

func TestIfThenReducesToSingleArmCase(t *testing.T) {
	w := postgres.NewWriter()
	sql := prepare(t, w, cydb.When(cydb.Eq(cydb.Col("a"), cydb.Val(1)), cydb.Val("yes")))
	assert.Equal(t, `case when "a" = $1 then $2 end`, sql.Text)
}

func TestConcat(t *testing.T) {
	w := postgres.NewWriter()
	sql := prepare(t, w, cydb.ConcatOf(cydb.Col("first"), cydb.Val(" "), cydb.Col("last")))
	assert.Equal(t, `"first" || $1 || "last"`, sql.Text)
}

func TestCast(t *testing.T) {
	w := postgres.NewWriter()
	sql := prepare(t, w, cydb.CastTo(cydb.Col("a"), "bigint"))
	assert.Equal(t, `cast("a" as bigint)`, sql.Text)
}

func TestFunctionCallNameQuoting(t *testing.T) {
	w := postgres.NewWriter()

	sql := prepare(t, w, cydb.Fn("lower", cydb.Col("a")))
	assert.Equal(t, `lower("a")`, sql.Text)

	sql = prepare(t, w, cydb.Fn("schema.fn", cydb.Col("a")))
	assert.Equal(t, `"schema.fn"("a")`, sql.Text)
}

func TestFunctionCallEmptyNameErrors(t *testing.T) {
	w := postgres.NewWriter()
	_, err := w.Prepare(cydb.Fn(""))
	require.Error(t, err)
}

func TestAggregateCountStar(t *testing.T) {
	w := postgres.NewWriter()
	sql := prepare(t, w, cydb.Agg("count", nil))
	assert.Equal(t, `"count"(*)`, sql.Text)
}

func TestAggregateDistinctAndNameAlwaysQuoted(t *testing.T) {
	w := postgres.NewWriter()
	agg := cydb.Agg("sum", cydb.Col("amount"))
	agg.Distinct = true
	sql := prepare(t, w, agg)
	assert.Equal(t, `"sum"(distinct "amount")`, sql.Text)
}

func TestAggregateFilterNativeWhenSupported(t *testing.T) {
	w := postgres.NewWriter()
	agg := cydb.Agg("count", cydb.Col("id")).WithFilter(cydb.And(cydb.Eq(cydb.Col("status"), cydb.Val("active"))))
	sql := prepare(t, w, agg)
	assert.Equal(t, `"count"("id") filter (where "status" = $1)`, sql.Text)
}

func TestAggregateFilterRewrittenToCaseWhenUnsupported(t *testing.T) {
	w := sqlserver.NewWriter()
	agg := cydb.Agg("sum", cydb.Col("amount")).WithFilter(cydb.And(cydb.Eq(cydb.Col("status"), cydb.Val("active"))))
	sql := prepare(t, w, agg)
	assert.Equal(t, `[sum](case when [status] = @p1 then [amount] end)`, sql.Text)
}

func TestAggregateFilterRewrittenCountStarBecomesValOne(t *testing.T) {
	w := sqlserver.NewWriter()
	agg := cydb.Agg("count", nil).WithFilter(cydb.And(cydb.Eq(cydb.Col("status"), cydb.Val("active"))))
	sql := prepare(t, w, agg)
	assert.Equal(t, `[count](case when [status] = @p1 then @p2 end)`, sql.Text)
	assert.Equal(t, []any{"active", 1}, sql.Arguments)
}

func TestAggregateOverWindow(t *testing.T) {
	w := postgres.NewWriter()
	win := cydb.NewWindow().PartitionedBy(cydb.Col("dept")).OrderedBy(cydb.Asc(cydb.Col("id")))
	agg := cydb.Agg("row_number", nil).WithOver(win)
	sql := prepare(t, w, agg)
	assert.Equal(t, `"row_number"(*) over (partition by "dept" order by "id")`, sql.Text)
}

func TestAggregateOverNamedWindowReference(t *testing.T) {
	w := postgres.NewWriter()
	agg := cydb.Agg("sum", cydb.Col("amount")).WithOver(cydb.NewWindow().Named("w1"))
	sql := prepare(t, w, agg)
	assert.Equal(t, `"sum"("amount") over "w1"`, sql.Text)
}

func TestCurrentTimestampAndRandomDialectOverrides(t *testing.T) {
	pg := postgres.NewWriter()
	sql := prepare(t, pg, cydb.Now)
	assert.Equal(t, "now()", sql.Text)

	sql = prepare(t, pg, cydb.Rand)
	assert.Equal(t, "random()", sql.Text)

	ss := sqlserver.NewWriter()
	sql = prepare(t, ss, cydb.Now)
	assert.Equal(t, "getdate()", sql.Text)
}

func TestRandomIntRendersFloorExpression(t *testing.T) {
	w := postgres.NewWriter()
	sql := prepare(t, w, cydb.RandBetween(1, 10))
	assert.Equal(t, "(1 + cast(floor(random() * 10) as bigint))", sql.Text)
}

func TestRandBetweenPanicsOnInvalidRange(t *testing.T) {
	assert.Panics(t, func() {
		cydb.RandBetween(10, 1)
	})
}
