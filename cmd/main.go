// Command cydb-demo renders a handful of representative queries for the
// one dialect selected with -dialect (postgresql by default), to
// exercise the builder/writer pipeline end-to-end from the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cydbgo/cydb/pkg/cydb"
	_ "github.com/cydbgo/cydb/pkg/cydb/dialect/mariadb"
	_ "github.com/cydbgo/cydb/pkg/cydb/dialect/mysql"
	_ "github.com/cydbgo/cydb/pkg/cydb/dialect/postgres"
	_ "github.com/cydbgo/cydb/pkg/cydb/dialect/sqlite"
	_ "github.com/cydbgo/cydb/pkg/cydb/dialect/sqlserver"
	"github.com/cydbgo/cydb/pkg/cyutil"
	"github.com/cydbgo/cydb/pkg/cylog"
)

func main() {
	dialect := flag.String("dialect", "postgresql", "dialect to render for")
	listDialects := flag.Bool("list-dialects", false, "print registered dialects and exit")
	flag.Parse()

	cylog.InitDefault(cylog.WithLevelStr("info"), cylog.WithFormat("text"))

	if *listDialects {
		fmt.Println(cydb.Dialects())
		return
	}

	writer, err := cydb.NewWriterFor(*dialect)
	if err != nil {
		cylog.Errorf("building writer: %v", err)
		os.Exit(1)
	}

	for _, q := range sampleQueries() {
		start := time.Now()
		sql, err := writer.Prepare(q.expr)
		elapsed := time.Since(start)
		if err != nil {
			cylog.Errorf("preparing %s: %v", q.name, err)
			continue
		}
		fmt.Printf("-- %s (%s, %s)\n%s\nargs: %s\n\n",
			q.name, *dialect, cyutil.FormatDuration(elapsed), sql.Text, cyutil.ToStr(sql.Arguments))
	}
}

type namedQuery struct {
	name string
	expr cydb.Expression
}

func sampleQueries() []namedQuery {
	selectQuery := cydb.Select("id", "name", "email").
		From(cydb.AsTable("users", "u")).
		Where(cydb.And(
			cydb.Eq(cydb.Col("u.active"), cydb.Val(true)),
			cydb.Gt(cydb.Col("u.created_at"), cydb.Val("2024-01-01")),
		)).
		OrderBy(cydb.Desc(cydb.Col("u.created_at"))).
		Limit(20).
		Build()

	aggregateQuery := cydb.SelectExpr(
		cydb.Proj(cydb.Col("u.country")),
		cydb.Proj(cydb.Agg("count", cydb.Col("u.id")), "total"),
	).
		From(cydb.AsTable("users", "u")).
		GroupBy(cydb.Col("u.country")).
		Having(cydb.And(cydb.Gt(cydb.Agg("count", cydb.Col("u.id")), cydb.Val(10)))).
		Build()

	upsert := cydb.Insert("users").
		Columns("id", "name", "email").
		Values(cydb.Val(1), cydb.Val("ada"), cydb.Val("ada@example.com")).
		OnConflict(&cydb.OnConflictClause{
			Targets:  []string{"id"},
			DoUpdate: []cydb.SetClause{cydb.Assign("name", cydb.Col("excluded.name"))},
		}).
		Build()

	update := cydb.Update("users").
		Set("last_login", cydb.Now).
		Where(cydb.Eq(cydb.Col("id"), cydb.Val(1))).
		Build()

	activeUsers := cydb.CTE("active_users", cydb.Select("id", "country").
		From(cydb.AsTable("users")).
		Where(cydb.And(cydb.Eq(cydb.Col("active"), cydb.Val(true)))).
		Build())
	countryTotals := cydb.CTE("country_totals", cydb.SelectExpr(
		cydb.Proj(cydb.Col("country")),
		cydb.Proj(cydb.Agg("count", cydb.Col("id")), "total"),
	).
		From(cydb.AsTable("active_users")).
		GroupBy(cydb.Col("country")).
		Build())

	ordered, err := cydb.OrderCTEs(
		[]*cydb.WithStatement{countryTotals, activeUsers},
		map[string]map[string]struct{}{
			"country_totals": {"active_users": {}},
		},
	)
	if err != nil {
		cylog.Errorf("ordering CTEs: %v", err)
		ordered = []*cydb.WithStatement{activeUsers, countryTotals}
	}

	withQuery := cydb.Select("country", "total").
		With(ordered...).
		From(cydb.AsTable("country_totals")).
		OrderBy(cydb.Desc(cydb.Col("total"))).
		Build()

	recentOrders := cydb.SubAuto(cydb.Select("user_id").
		From(cydb.AsTable("orders")).
		Where(cydb.And(cydb.Gt(cydb.Col("created_at"), cydb.Val("2024-06-01")))).
		Build())
	subqueryJoin := cydb.Select("u.id", "u.name").
		From(cydb.AsTable("users", "u")).
		Join(cydb.Join(cydb.JoinInner, recentOrders,
			cydb.And(cydb.Eq(cydb.Col("u.id"), cydb.Col(recentOrders.Alias+".user_id"))))).
		Build()

	return []namedQuery{
		{"select", selectQuery},
		{"aggregate", aggregateQuery},
		{"upsert", upsert},
		{"update", update},
		{"with", withQuery},
		{"subquery-join", subqueryJoin},
	}
}
