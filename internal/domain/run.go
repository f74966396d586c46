package domain

import (
	"encoding/json"
	"time"
)

type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

type RunKind string

const (
	RunKindGenerate RunKind = "generate"
	RunKindLoad     RunKind = "load"
)

// RunRecord is the history entry kept for every generate or load run.
// Sink is the output format for generate runs and the driver for load runs.
type RunRecord struct {
	ID          string          `json:"id"`
	Kind        RunKind         `json:"kind"`
	ConfigPath  string          `json:"config_path"`
	ConfigHash  string          `json:"config_hash,omitempty"`
	RunHash     string          `json:"run_hash,omitempty"`
	Sink        string          `json:"sink"`
	Seed        int64           `json:"seed"`
	RowCount    int             `json:"row_count"`
	TotalRows   int64           `json:"total_rows"`
	Status      RunStatus       `json:"status"`
	Error       string          `json:"error,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Stats       json.RawMessage `json:"stats,omitempty"`
}
