package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mmrzaf/mocker/internal/domain"
	"github.com/mmrzaf/mocker/internal/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersTable() exec.TableData {
	return exec.TableData{
		Name: "users",
		Columns: []domain.ColumnData{
			{Name: "id", Type: domain.UnsignedIntType},
			{Name: "name", Type: domain.StringType(20)},
			{Name: "score", Type: domain.FloatType},
			{Name: "active", Type: domain.BooleanType},
		},
	}
}

func TestSQLiteTargetLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mocker.db")
	target := NewSQLiteTarget(path)
	require.NoError(t, target.Connect())
	defer target.Close()

	table := usersTable()
	require.NoError(t, target.CreateTableIfNotExists(table))
	require.NoError(t, target.CreateTableIfNotExists(table))

	columns := table.ColumnNames()
	require.NoError(t, target.InsertBatch("users", columns, [][]interface{}{
		{uint64(1), "Ada", 1.5, true},
		{uint64(2), "Grace", -2.0, false},
	}))
	require.NoError(t, target.InsertBatch("users", columns, nil))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 2, count)

	var name string
	var active int
	require.NoError(t, db.QueryRow("SELECT name, active FROM users WHERE id = 2").Scan(&name, &active))
	assert.Equal(t, "Grace", name)
	assert.Equal(t, 0, active)

	require.NoError(t, target.TruncateTable("users"))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestMapColumnType(t *testing.T) {
	assert.Equal(t, "INTEGER", mapColumnType(domain.IntType))
	assert.Equal(t, "INTEGER", mapColumnType(domain.BooleanType))
	assert.Equal(t, "REAL", mapColumnType(domain.FloatType))
	assert.Equal(t, "TEXT", mapColumnType(domain.StringType(domain.UnboundedLength)))
}
