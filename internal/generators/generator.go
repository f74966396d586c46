package generators

import (
	"errors"
	"fmt"
	"io"

	"github.com/mmrzaf/mocker/internal/domain"
)

var ErrUninitialized = errors.New("generator used before init")

// Generator serializes the columns of one table. Init must be called before
// every table; Generate writes rowCount rows to the sink given to Init.
type Generator interface {
	Init(tableName string, rowCount int, out io.Writer) error
	Generate(columns []domain.ColumnData) error
}

type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ShortColumnError reports a column holding fewer values than rows.
type ShortColumnError struct {
	Column string
	Have   int
	Want   int
}

func (e *ShortColumnError) Error() string {
	return fmt.Sprintf("column '%s' has %d values, expected %d", e.Column, e.Have, e.Want)
}

// Extension returns the file extension used for a format's output files.
func Extension(format string) string {
	if format == "tsql" {
		return "sql"
	}
	return format
}

// sink holds the per-table state shared by every generator.
type sink struct {
	table       string
	rowCount    int
	out         io.Writer
	initialized bool
}

func (s *sink) Init(tableName string, rowCount int, out io.Writer) error {
	if out == nil {
		return errors.New("nil output writer")
	}
	if rowCount < 0 {
		return fmt.Errorf("negative row count %d", rowCount)
	}
	s.table = tableName
	s.rowCount = rowCount
	s.out = out
	s.initialized = true
	return nil
}

func (s *sink) check(columns []domain.ColumnData) error {
	if !s.initialized {
		return ErrUninitialized
	}
	for _, col := range columns {
		if len(col.Data) < s.rowCount {
			return &ShortColumnError{Column: col.Name, Have: len(col.Data), Want: s.rowCount}
		}
	}
	return nil
}

func (s *sink) write(p []byte) error {
	if _, err := s.out.Write(p); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

func columnNames(columns []domain.ColumnData) []string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	return names
}
