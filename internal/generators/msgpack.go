package generators

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mmrzaf/mocker/internal/domain"
)

// MsgpackGenerator writes one msgpack array holding a map per row. Map
// entries are encoded in column order.
type MsgpackGenerator struct {
	sink
}

func NewMsgpackGenerator() (Generator, error) {
	return &MsgpackGenerator{}, nil
}

func (g *MsgpackGenerator) Generate(columns []domain.ColumnData) error {
	if err := g.check(columns); err != nil {
		return err
	}

	enc := msgpack.NewEncoder(writerFunc(g.write))
	if err := enc.EncodeArrayLen(g.rowCount); err != nil {
		return err
	}
	for row := 0; row < g.rowCount; row++ {
		if err := enc.EncodeMapLen(len(columns)); err != nil {
			return err
		}
		for _, col := range columns {
			if err := enc.EncodeString(col.Name); err != nil {
				return err
			}
			if err := enc.Encode(col.Data[row].Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

// writerFunc adapts the sink's write so encoder failures surface as
// WriteError.
type writerFunc func([]byte) error

func (f writerFunc) Write(p []byte) (int, error) {
	if err := f(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
