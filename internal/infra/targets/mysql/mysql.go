package mysql

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/mmrzaf/mocker/internal/domain"
	"github.com/mmrzaf/mocker/internal/exec"
)

type MySQLTarget struct {
	dsn string
	db  *sql.DB
}

func NewMySQLTarget(dsn string) *MySQLTarget {
	return &MySQLTarget{dsn: dsn}
}

// NewMySQLTargetWithDB uses an already opened database handle.
func NewMySQLTargetWithDB(db *sql.DB) *MySQLTarget {
	return &MySQLTarget{db: db}
}

func (t *MySQLTarget) Connect() error {
	if t.db != nil {
		return t.db.Ping()
	}

	cfg, err := mysql.ParseDSN(t.dsn)
	if err != nil {
		return fmt.Errorf("invalid mysql dsn: %w", err)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return err
	}

	db := sql.OpenDB(connector)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return err
	}
	t.db = db
	return nil
}

func (t *MySQLTarget) Close() error {
	if t.db != nil {
		return t.db.Close()
	}
	return nil
}

func (t *MySQLTarget) CreateTableIfNotExists(table exec.TableData) error {
	columnDefs := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		columnDefs[i] = fmt.Sprintf("%s %s NOT NULL", col.Name, mapColumnType(col.Type))
	}

	createSQL := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table.Name, strings.Join(columnDefs, ", "))

	_, err := t.db.Exec(createSQL)
	return err
}

func mapColumnType(colType domain.ColumnType) string {
	switch colType.Kind {
	case domain.KindInt:
		return "BIGINT"
	case domain.KindUnsignedInt:
		return "BIGINT UNSIGNED"
	case domain.KindFloat:
		return "DOUBLE"
	case domain.KindBoolean:
		return "BOOLEAN"
	case domain.KindString:
		if colType.MaxLength != domain.UnboundedLength && colType.MaxLength <= 16383 {
			return fmt.Sprintf("VARCHAR(%d)", colType.MaxLength)
		}
		return "TEXT"
	default:
		return "TEXT"
	}
}

func (t *MySQLTarget) TruncateTable(tableName string) error {
	_, err := t.db.Exec(fmt.Sprintf("TRUNCATE TABLE %s", tableName))
	return err
}

func (t *MySQLTarget) InsertBatch(tableName string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	placeholders := make([]string, len(rows))
	args := make([]interface{}, 0, len(rows)*len(columns))
	for i, row := range rows {
		placeholders[i] = rowPlaceholder
		args = append(args, row...)
	}

	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		tableName, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	_, err := t.db.Exec(insertSQL, args...)
	return err
}
