package generators

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/mmrzaf/mocker/internal/domain"
)

// YAMLGenerator writes a sequence of mappings built as yaml nodes so the
// column order is kept.
type YAMLGenerator struct {
	sink
}

func NewYAMLGenerator() (Generator, error) {
	return &YAMLGenerator{}, nil
}

func (g *YAMLGenerator) Generate(columns []domain.ColumnData) error {
	if err := g.check(columns); err != nil {
		return err
	}

	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for row := 0; row < g.rowCount; row++ {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, col := range columns {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col.Name},
				yamlScalar(col.Data[row]),
			)
		}
		doc.Content = append(doc.Content, m)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return g.write(buf.Bytes())
}

func yamlScalar(v domain.CellValue) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: v.String()}
	switch v.Kind {
	case domain.ValueInt, domain.ValueUnsignedInt:
		n.Tag = "!!int"
	case domain.ValueFloat:
		n.Tag = "!!float"
	case domain.ValueBoolean:
		n.Tag = "!!bool"
	default:
		n.Tag = "!!str"
	}
	return n
}
