package generators

import (
	"bytes"
	"encoding/json"

	"github.com/mmrzaf/mocker/internal/domain"
)

// JSONGenerator writes a JSON array with one object per row. Keys follow
// the declared column order.
type JSONGenerator struct {
	sink
}

func NewJSONGenerator() (Generator, error) {
	return &JSONGenerator{}, nil
}

func (g *JSONGenerator) Generate(columns []domain.ColumnData) error {
	if err := g.check(columns); err != nil {
		return err
	}

	keys := make([][]byte, len(columns))
	for i, col := range columns {
		k, err := json.Marshal(col.Name)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	var buf bytes.Buffer
	buf.WriteString("[")
	for row := 0; row < g.rowCount; row++ {
		if row > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		for i, col := range columns {
			if i > 0 {
				buf.WriteString(", ")
			}
			v, err := json.Marshal(col.Data[row].Interface())
			if err != nil {
				return err
			}
			buf.Write(keys[i])
			buf.WriteString(": ")
			buf.Write(v)
		}
		buf.WriteString("}")

		if err := g.write(buf.Bytes()); err != nil {
			return err
		}
		buf.Reset()
	}
	if g.rowCount > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")
	return g.write(buf.Bytes())
}
