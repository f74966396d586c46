package generators

import (
	"strings"

	"github.com/mmrzaf/mocker/internal/domain"
)

// TsqlGenerator writes one insert statement per row. String values are
// quoted but embedded quotes are written as is.
type TsqlGenerator struct {
	sink
}

func NewTsqlGenerator() (Generator, error) {
	return &TsqlGenerator{}, nil
}

func (g *TsqlGenerator) Generate(columns []domain.ColumnData) error {
	if err := g.check(columns); err != nil {
		return err
	}

	prefix := "insert into " + g.table + " (" + strings.Join(columnNames(columns), ", ") + ") values ("

	var b strings.Builder
	for row := 0; row < g.rowCount; row++ {
		b.Reset()
		b.WriteString(prefix)
		for i, col := range columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatTsql(col.Data[row]))
		}
		b.WriteString(");\n")

		if err := g.write([]byte(b.String())); err != nil {
			return err
		}
	}
	return nil
}

func formatTsql(v domain.CellValue) string {
	switch v.Kind {
	case domain.ValueString:
		return "'" + v.Str + "'"
	case domain.ValueBoolean:
		if v.Bool {
			return "1"
		}
		return "0"
	default:
		return v.String()
	}
}
