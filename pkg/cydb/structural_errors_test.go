package cydb_test

import (
	"testing"

	"github.com/cydbgo/cydb/pkg/cydb"
	"github.com/cydbgo/cydb/pkg/cydb/dialect/postgres"
	"github.com/stretchr/testify/assert"
)

func TestInsertWithoutTableErrors(t *testing.T) {
	w := postgres.NewWriter()
	ins := &cydb.InsertStatement{}
	_, err := w.Prepare(ins)
	assert.Error(t, err)
}

func TestUpdateWithoutTableErrors(t *testing.T) {
	w := postgres.NewWriter()
	upd := &cydb.UpdateStatement{Set: []cydb.SetClause{cydb.Assign("a", cydb.Val(1))}}
	_, err := w.Prepare(upd)
	assert.Error(t, err)
}

func TestUpdateWithEmptySetErrors(t *testing.T) {
	w := postgres.NewWriter()
	upd := cydb.Update("t").Build()
	_, err := w.Prepare(upd)
	assert.Error(t, err)
}

func TestDeleteWithoutTableErrors(t *testing.T) {
	w := postgres.NewWriter()
	del := &cydb.DeleteStatement{}
	_, err := w.Prepare(del)
	assert.Error(t, err)
}

func TestUpdateIllegalJoinModePromotionErrors(t *testing.T) {
	w := postgres.NewWriter()
	upd := cydb.Update("t").
		Set("x", cydb.Val(1)).
		Join(cydb.Join(cydb.JoinLeft, cydb.AsTable("u"), cydb.And(cydb.Eq(cydb.Col("t.id"), cydb.Col("u.t_id"))))).
		Build()
	_, err := w.Prepare(upd)
	assert.Error(t, err)
}

func TestDeleteIllegalJoinModePromotionErrors(t *testing.T) {
	w := postgres.NewWriter()
	del := cydb.Delete("t").
		Join(cydb.Join(cydb.JoinRight, cydb.AsTable("u"), cydb.And(cydb.Eq(cydb.Col("t.id"), cydb.Col("u.t_id"))))).
		Build()
	_, err := w.Prepare(del)
	assert.Error(t, err)
}

func TestDeleteNaturalJoinPromotionIsLegal(t *testing.T) {
	w := postgres.NewWriter()
	del := cydb.Delete("t").
		Join(cydb.Join(cydb.JoinNatural, cydb.AsTable("u"), nil)).
		Build()
	sql, err := w.Prepare(del)
	assert.NoError(t, err)
	assert.Contains(t, sql.Text, `using "u"`)
}

func TestPrepareUnsupportedInputTypeErrors(t *testing.T) {
	w := postgres.NewWriter()
	_, err := w.Prepare(42)
	assert.Error(t, err)
}
