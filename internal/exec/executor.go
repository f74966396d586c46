package exec

import (
	"fmt"
	"time"

	"github.com/mmrzaf/mocker/internal/domain"
	"github.com/mmrzaf/mocker/internal/logging"
	"github.com/mmrzaf/mocker/internal/registry"
	"github.com/mmrzaf/mocker/internal/validation"
)

const batchSize = 1000

type Target interface {
	Connect() error
	Close() error
	CreateTableIfNotExists(table TableData) error
	TruncateTable(name string) error
	InsertBatch(name string, columns []string, rows [][]interface{}) error
}

// TableData holds the generated columns of one table, in declared order.
type TableData struct {
	Name    string
	Columns []domain.ColumnData
}

func (t TableData) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Data)
}

func (t TableData) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

type MockData struct {
	Tables []TableData
}

type TableLoadStats struct {
	Table           string  `json:"table"`
	Rows            int64   `json:"rows"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type LoadStats struct {
	Tables    []TableLoadStats `json:"tables"`
	TotalRows int64            `json:"total_rows"`
}

type Executor struct {
	providers  *registry.ProviderRegistry
	generators *registry.GeneratorRegistry
	logger     *logging.Logger

	// LenientTypes keeps values that do not fit their column type and logs
	// one warning per column instead of failing.
	LenientTypes bool
}

func NewExecutor(providers *registry.ProviderRegistry, generators *registry.GeneratorRegistry, logger *logging.Logger) *Executor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Executor{
		providers:  providers,
		generators: generators,
		logger:     logger.WithComponent("exec"),
	}
}

// Generate draws rowCount values for every column of every table.
func (e *Executor) Generate(cfg *domain.Config, rowCount int) (*MockData, error) {
	if rowCount <= 0 {
		return nil, fmt.Errorf("row count must be positive, got %d", rowCount)
	}

	data := &MockData{Tables: make([]TableData, 0, len(cfg.Tables))}
	for _, table := range cfg.Tables {
		startTime := time.Now()
		td := TableData{Name: table.Name, Columns: make([]domain.ColumnData, 0, len(table.Columns))}

		for _, col := range table.Columns {
			cd, err := e.generateColumn(col, rowCount)
			if err != nil {
				return nil, fmt.Errorf("table '%s', %w", table.Name, err)
			}
			td.Columns = append(td.Columns, cd)
		}

		data.Tables = append(data.Tables, td)
		e.logger.Debugw("table.generated", map[string]any{
			"table":       table.Name,
			"rows":        rowCount,
			"columns":     len(table.Columns),
			"duration_ms": time.Since(startTime).Milliseconds(),
		})
	}
	return data, nil
}

func (e *Executor) generateColumn(col domain.Column, rowCount int) (domain.ColumnData, error) {
	provider, err := e.providers.Get(col.Provider.Name)
	if err != nil {
		return domain.ColumnData{}, fmt.Errorf("column '%s': %w", col.Name, err)
	}
	if err := provider.Reset(col.Provider.Arguments); err != nil {
		return domain.ColumnData{}, fmt.Errorf("column '%s': provider '%s': %w", col.Name, col.Provider.Name, err)
	}

	values := make([]domain.CellValue, rowCount)
	warned := false
	for row := 0; row < rowCount; row++ {
		v, err := provider.Provide()
		if err != nil {
			return domain.ColumnData{}, fmt.Errorf("column '%s', row %d: %w", col.Name, row, err)
		}
		if err := domain.CheckCompatible(col.Type, v); err != nil {
			if !e.LenientTypes {
				return domain.ColumnData{}, fmt.Errorf("column '%s', row %d: %w", col.Name, row, err)
			}
			if !warned {
				e.logger.Warnw("column.incompatible_type", map[string]any{
					"column":   col.Name,
					"provider": col.Provider.Name,
					"row":      row,
					"error":    err.Error(),
				})
				warned = true
			}
		}
		values[row] = v
	}

	return domain.ColumnData{Name: col.Name, Type: col.Type, Data: values}, nil
}

// Write serializes every table with the generator registered for format.
// open is called once per table and the returned sink is closed after the
// table is written.
func (e *Executor) Write(data *MockData, format string, open SinkOpener) error {
	gen, err := e.generators.Get(format)
	if err != nil {
		return fmt.Errorf("output format '%s': %w", format, err)
	}

	for _, table := range data.Tables {
		out, err := open(table.Name)
		if err != nil {
			return fmt.Errorf("table '%s': failed to open output: %w", table.Name, err)
		}

		if err := gen.Init(table.Name, table.RowCount(), out); err != nil {
			_ = out.Close()
			return fmt.Errorf("table '%s': %w", table.Name, err)
		}
		if err := gen.Generate(table.Columns); err != nil {
			_ = out.Close()
			return fmt.Errorf("table '%s': %w", table.Name, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("table '%s': failed to close output: %w", table.Name, err)
		}

		e.logger.Infow("table.written", map[string]any{
			"table":  table.Name,
			"format": format,
			"rows":   table.RowCount(),
		})
	}
	return nil
}

// Load inserts the generated data into target. mode is one of create,
// truncate or append.
func (e *Executor) Load(data *MockData, target Target, mode string) (*LoadStats, error) {
	if mode == "" {
		mode = validation.ModeCreate
	}
	if !validation.IsValidMode(mode) {
		return nil, fmt.Errorf("unknown table mode: %s", mode)
	}
	for _, table := range data.Tables {
		if !validation.IsValidIdentifier(table.Name) {
			return nil, fmt.Errorf("invalid table identifier: %s", table.Name)
		}
		for _, col := range table.Columns {
			if !validation.IsValidIdentifier(col.Name) {
				return nil, fmt.Errorf("table '%s': invalid column identifier: %s", table.Name, col.Name)
			}
		}
	}

	if err := target.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to target: %w", err)
	}
	defer target.Close()

	stats := &LoadStats{Tables: make([]TableLoadStats, 0, len(data.Tables))}
	for _, table := range data.Tables {
		startTime := time.Now()

		switch mode {
		case validation.ModeCreate:
			if err := target.CreateTableIfNotExists(table); err != nil {
				return nil, fmt.Errorf("failed to create table '%s': %w", table.Name, err)
			}
		case validation.ModeTruncate:
			if err := target.CreateTableIfNotExists(table); err != nil {
				return nil, fmt.Errorf("failed to create table '%s': %w", table.Name, err)
			}
			if err := target.TruncateTable(table.Name); err != nil {
				return nil, fmt.Errorf("failed to truncate table '%s': %w", table.Name, err)
			}
		case validation.ModeAppend:
		}

		columnNames := table.ColumnNames()
		rowCount := table.RowCount()
		batch := make([][]interface{}, 0, min(batchSize, rowCount))

		for rowIdx := 0; rowIdx < rowCount; rowIdx++ {
			row := make([]interface{}, len(table.Columns))
			for colIdx, col := range table.Columns {
				row[colIdx] = col.Data[rowIdx].Interface()
			}
			batch = append(batch, row)

			if len(batch) >= batchSize {
				if err := target.InsertBatch(table.Name, columnNames, batch); err != nil {
					return nil, fmt.Errorf("failed to insert batch for table '%s': %w", table.Name, err)
				}
				batch = batch[:0]
			}
		}

		if len(batch) > 0 {
			if err := target.InsertBatch(table.Name, columnNames, batch); err != nil {
				return nil, fmt.Errorf("failed to insert final batch for table '%s': %w", table.Name, err)
			}
		}

		duration := time.Since(startTime)
		stats.Tables = append(stats.Tables, TableLoadStats{
			Table:           table.Name,
			Rows:            int64(rowCount),
			DurationSeconds: duration.Seconds(),
		})
		stats.TotalRows += int64(rowCount)

		e.logger.Infow("table.loaded", map[string]any{
			"table": table.Name,
			"mode":  mode,
			"rows":  rowCount,
		})
	}

	return stats, nil
}
