package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingQuerier struct {
	sql string
}

func (f *failingQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.sql = sql
	return nil, errors.New("relation does not exist")
}

func TestQueryCareers_QueryError(t *testing.T) {
	db := &failingQuerier{}

	_, err := queryCareers(context.Background(), db, "")

	var loadErr *DataLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Message, "careers")
	assert.Contains(t, db.sql, `FROM "careers"`)
	assert.Contains(t, db.sql, "ORDER BY id")
}

func TestQueryCareers_SanitizesTable(t *testing.T) {
	db := &failingQuerier{}

	_, _ = queryCareers(context.Background(), db, `jobs"; DROP TABLE x; --`)

	assert.Contains(t, db.sql, `FROM "jobs""; DROP TABLE x; --"`)
}

func TestLoadPostgres_BadURL(t *testing.T) {
	_, err := LoadPostgres(context.Background(), "postgres://%zz", "")

	var loadErr *DataLoadError
	assert.ErrorAs(t, err, &loadErr)
}
