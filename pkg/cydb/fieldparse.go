package cydb

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser"
	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/format"
	_ "github.com/pingcap/tidb/parser/mysql"
	"github.com/pingcap/tidb/parser/opcode"
	"github.com/pingcap/tidb/parser/test_driver"
)

// ParseField parses a single column-expression shorthand — anything
// that could follow "select" in a MySQL statement, e.g. "t.amount * 2",
// "coalesce(a, b)", "count(distinct id)" — into an Expression tree. It
// is a convenience for callers migrating string-based query fragments;
// it does not attempt to cover full SQL syntax, and returns an error for
// anything the underlying grammar can't parse as a single select item.
func ParseField(expr string) (Expression, error) {
	p := parser.New()
	stmtNodes, _, err := p.Parse("select "+expr, "", "")
	if err != nil {
		return nil, newBuilderError("ParseField", "parse %q: %v", expr, err)
	}
	if len(stmtNodes) != 1 {
		return nil, newBuilderError("ParseField", "expected exactly one statement, got %d", len(stmtNodes))
	}
	sel, ok := stmtNodes[0].(*ast.SelectStmt)
	if !ok || sel.Fields == nil || len(sel.Fields.Fields) != 1 {
		return nil, newBuilderError("ParseField", "could not extract a single select field from %q", expr)
	}
	return buildFieldExpr(sel.Fields.Fields[0].Expr)
}

func buildFieldExpr(node ast.ExprNode) (Expression, error) {
	switch x := node.(type) {
	case *ast.ColumnNameExpr:
		return &ColumnName{Schema: x.Name.Schema.O, Table: x.Name.Table.O, Name: x.Name.Name.O}, nil

	case *ast.BinaryOperationExpr:
		left, err := buildFieldExpr(x.L)
		if err != nil {
			return nil, err
		}
		right, err := buildFieldExpr(x.R)
		if err != nil {
			return nil, err
		}
		op, err := restoreOperator(x.Op)
		if err != nil {
			return nil, err
		}
		return Cmp(left, op, right), nil

	case *ast.UnaryOperationExpr:
		operand, err := buildFieldExpr(x.V)
		if err != nil {
			return nil, err
		}
		switch x.Op {
		case opcode.Plus:
			return operand, nil
		case opcode.Minus:
			return Cmp(Val(0), "-", operand), nil
		default:
			return nil, newBuilderError("ParseField", "unsupported unary operator %v", x.Op)
		}

	case *ast.ParenthesesExpr:
		return buildFieldExpr(x.Expr)

	case *ast.FuncCallExpr:
		args := make([]Expression, 0, len(x.Args))
		for _, a := range x.Args {
			e, err := buildFieldExpr(a)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
		return Fn(x.FnName.O, args...), nil

	case *ast.AggregateFuncExpr:
		var column Expression
		if len(x.Args) > 0 {
			e, err := buildFieldExpr(x.Args[0])
			if err != nil {
				return nil, err
			}
			column = e
		}
		if strings.EqualFold(x.F, "count") && len(x.Args) == 1 {
			if _, ok := x.Args[0].(*test_driver.ValueExpr); ok {
				column = nil
			}
		}
		agg := Agg(x.F, column)
		agg.Distinct = x.Distinct
		return agg, nil

	case *test_driver.ValueExpr:
		return Val(x.Datum.GetValue()), nil

	default:
		return nil, newBuilderError("ParseField", "unsupported expression node %T", node)
	}
}

func restoreOperator(op opcode.Op) (string, error) {
	var buf strings.Builder
	ctx := format.NewRestoreCtx(format.RestoreStringSingleQuotes, &buf)
	expr := &ast.BinaryOperationExpr{Op: op}
	if err := expr.Op.Restore(ctx); err != nil {
		return "", fmt.Errorf("cydb: restore operator: %w", err)
	}
	return buf.String(), nil
}
