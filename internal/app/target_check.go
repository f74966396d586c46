package app

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mmrzaf/mocker/internal/domain"
	"github.com/mmrzaf/mocker/internal/exec"
	"github.com/mmrzaf/mocker/internal/infra/targets"
)

type TargetCapabilities struct {
	CanCreate   bool `json:"can_create"`
	CanInsert   bool `json:"can_insert"`
	CanTruncate bool `json:"can_truncate"`
}

type TargetCheck struct {
	ID           string             `json:"id"`
	Driver       string             `json:"driver"`
	DSN          string             `json:"dsn"`
	OK           bool               `json:"ok"`
	Error        string             `json:"error,omitempty"`
	LatencyMS    int64              `json:"latency_ms"`
	ServerVer    string             `json:"server_version,omitempty"`
	Capabilities TargetCapabilities `json:"capabilities"`
	CheckedAt    time.Time          `json:"checked_at"`
}

// CheckTarget connects to a load target and reports its version and what
// the configured user may do. With probe set, a scratch table is created,
// written and emptied.
func CheckTarget(driver, dsn, schema string, probe bool) (*TargetCheck, error) {
	check := &TargetCheck{
		ID:        uuid.NewString(),
		Driver:    driver,
		DSN:       targets.RedactDSN(driver, dsn),
		CheckedAt: time.Now().UTC(),
	}

	tgt, err := targets.New(driver, dsn, schema)
	if err != nil {
		check.Error = err.Error()
		return check, err
	}

	start := time.Now()
	if err := tgt.Connect(); err != nil {
		check.Error = err.Error()
		check.LatencyMS = time.Since(start).Milliseconds()
		return check, err
	}
	defer tgt.Close()

	check.OK = true
	check.LatencyMS = time.Since(start).Milliseconds()
	if ver, verErr := serverVersion(driver, dsn); verErr == nil {
		check.ServerVer = ver
	}
	if probe {
		check.Capabilities = probeCapabilities(tgt)
	}
	return check, nil
}

func serverVersion(driver, dsn string) (string, error) {
	var sqlDriver, query string
	switch driver {
	case "postgres":
		sqlDriver, query = "postgres", "SHOW server_version"
	case "sqlite":
		sqlDriver, query = "sqlite3", "SELECT sqlite_version()"
	case "mysql":
		sqlDriver, query = "mysql", "SELECT VERSION()"
	default:
		return "", fmt.Errorf("unsupported target driver: %s", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return "", err
	}
	defer db.Close()
	var version string
	if err := db.QueryRow(query).Scan(&version); err != nil {
		return "", err
	}
	return version, nil
}

func probeCapabilities(tgt exec.Target) TargetCapabilities {
	table := exec.TableData{
		Name: "mocker_check_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Columns: []domain.ColumnData{
			{Name: "id", Type: domain.IntType},
		},
	}

	var caps TargetCapabilities
	if err := tgt.CreateTableIfNotExists(table); err != nil {
		return caps
	}
	caps.CanCreate = true

	if err := tgt.InsertBatch(table.Name, []string{"id"}, [][]interface{}{{int64(1)}}); err != nil {
		return caps
	}
	caps.CanInsert = true

	if err := tgt.TruncateTable(table.Name); err != nil {
		return caps
	}
	caps.CanTruncate = true
	return caps
}
