package generators

import (
	"encoding/csv"

	"github.com/mmrzaf/mocker/internal/domain"
)

type CSVGenerator struct {
	sink
}

func NewCSVGenerator() (Generator, error) {
	return &CSVGenerator{}, nil
}

func (g *CSVGenerator) Generate(columns []domain.ColumnData) error {
	if err := g.check(columns); err != nil {
		return err
	}

	w := csv.NewWriter(g.out)
	if err := w.Write(columnNames(columns)); err != nil {
		return &WriteError{Err: err}
	}

	record := make([]string, len(columns))
	for row := 0; row < g.rowCount; row++ {
		for i, col := range columns {
			record[i] = col.Data[row].String()
		}
		if err := w.Write(record); err != nil {
			return &WriteError{Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}
