package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/mmrzaf/mocker/internal/domain"
	"github.com/mmrzaf/mocker/internal/exec"
)

// maxParams is the bind parameter limit of a single postgres statement.
const maxParams = 65535

type PostgresTarget struct {
	dsn    string
	schema string
	db     *sql.DB
}

func NewPostgresTarget(dsn, schema string) *PostgresTarget {
	if schema == "" {
		schema = "public"
	}
	return &PostgresTarget{
		dsn:    dsn,
		schema: schema,
	}
}

// NewPostgresTargetWithDB uses an already opened database handle.
func NewPostgresTargetWithDB(db *sql.DB, schema string) *PostgresTarget {
	t := NewPostgresTarget("", schema)
	t.db = db
	return t
}

func (t *PostgresTarget) Connect() error {
	if t.db != nil {
		return t.db.Ping()
	}
	db, err := sql.Open("postgres", t.dsn)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return err
	}
	t.db = db
	return nil
}

func (t *PostgresTarget) Close() error {
	if t.db != nil {
		return t.db.Close()
	}
	return nil
}

func (t *PostgresTarget) CreateTableIfNotExists(table exec.TableData) error {
	var exists bool
	query := `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = $1 AND table_name = $2
	)`
	err := t.db.QueryRow(query, t.schema, table.Name).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	columnDefs := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		columnDefs[i] = fmt.Sprintf("%s %s NOT NULL", col.Name, mapColumnType(col.Type))
	}

	createSQL := fmt.Sprintf("CREATE TABLE %s.%s (%s)",
		t.schema, table.Name, strings.Join(columnDefs, ", "))

	_, err = t.db.Exec(createSQL)
	return err
}

func mapColumnType(colType domain.ColumnType) string {
	switch colType.Kind {
	case domain.KindInt:
		return "BIGINT"
	case domain.KindUnsignedInt:
		return "NUMERIC(20)"
	case domain.KindFloat:
		return "DOUBLE PRECISION"
	case domain.KindBoolean:
		return "BOOLEAN"
	case domain.KindString:
		if colType.MaxLength != domain.UnboundedLength {
			return fmt.Sprintf("VARCHAR(%d)", colType.MaxLength)
		}
		return "TEXT"
	default:
		return "TEXT"
	}
}

func (t *PostgresTarget) TruncateTable(tableName string) error {
	_, err := t.db.Exec(fmt.Sprintf("TRUNCATE TABLE %s.%s", t.schema, tableName))
	return err
}

func (t *PostgresTarget) InsertBatch(tableName string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 || len(columns) == 0 {
		return nil
	}

	perStmt := maxParams / len(columns)
	for start := 0; start < len(rows); start += perStmt {
		end := min(start+perStmt, len(rows))
		if err := t.insertRows(tableName, columns, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (t *PostgresTarget) insertRows(tableName string, columns []string, rows [][]interface{}) error {
	placeholders := make([]string, len(rows))
	args := make([]interface{}, 0, len(rows)*len(columns))

	for i, row := range rows {
		rowPlaceholders := make([]string, len(columns))
		for j := range columns {
			rowPlaceholders[j] = fmt.Sprintf("$%d", i*len(columns)+j+1)
			args = append(args, row[j])
		}
		placeholders[i] = "(" + strings.Join(rowPlaceholders, ", ") + ")"
	}

	insertSQL := fmt.Sprintf("INSERT INTO %s.%s (%s) VALUES %s",
		t.schema, tableName, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	_, err := t.db.Exec(insertSQL, args...)
	return err
}
