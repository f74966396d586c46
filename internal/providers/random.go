package providers

import (
	"errors"
	"math/rand"

	"github.com/mmrzaf/mocker/internal/domain"
)

const minRandomItems = 2

// RandomProvider picks uniformly from the literals given to Reset.
type RandomProvider struct {
	rng   *rand.Rand
	items []domain.CellValue
}

func NewRandomProvider(ctx Context) (Provider, error) {
	return &RandomProvider{rng: ctx.rng()}, nil
}

func (p *RandomProvider) Reset(args []domain.Argument) error {
	if len(args) < minRandomItems {
		return domain.TooFewArguments(len(args), minRandomItems)
	}
	items := make([]domain.CellValue, len(args))
	for i, arg := range args {
		items[i] = domain.CellValueFromArgument(arg)
	}
	p.items = items
	return nil
}

func (p *RandomProvider) Provide() (domain.CellValue, error) {
	if len(p.items) == 0 {
		return domain.CellValue{}, errors.New("random provider used before reset")
	}
	return p.items[p.rng.Intn(len(p.items))], nil
}
