package providers

import (
	"github.com/mmrzaf/mocker/internal/domain"
)

type ConstProvider struct {
	value domain.CellValue
}

func NewConstProvider(Context) (Provider, error) {
	return &ConstProvider{}, nil
}

func (p *ConstProvider) Reset(args []domain.Argument) error {
	switch {
	case len(args) == 0:
		return domain.TooFewArguments(0, 1)
	case len(args) > 1:
		return domain.TooManyArguments(len(args), 1)
	}
	p.value = domain.CellValueFromArgument(args[0])
	return nil
}

func (p *ConstProvider) Provide() (domain.CellValue, error) {
	return p.value, nil
}
