package providers

import "github.com/mmrzaf/mocker/internal/domain"

// RowProvider yields 1, 2, 3, ... and starts over on every Reset.
type RowProvider struct {
	next uint64
}

func NewRowProvider(Context) (Provider, error) {
	return &RowProvider{next: 1}, nil
}

func (p *RowProvider) Reset([]domain.Argument) error {
	p.next = 1
	return nil
}

func (p *RowProvider) Provide() (domain.CellValue, error) {
	v := p.next
	p.next++
	return domain.UintValue(v), nil
}
