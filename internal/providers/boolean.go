package providers

import (
	"math/rand"

	"github.com/mmrzaf/mocker/internal/domain"
)

const defaultTruePercentage = 50

type BooleanProvider struct {
	rng     *rand.Rand
	percent int64
}

func NewBooleanProvider(ctx Context) (Provider, error) {
	return &BooleanProvider{rng: ctx.rng(), percent: defaultTruePercentage}, nil
}

// Reset takes an optional percentage (0-100) of rows that are true.
func (p *BooleanProvider) Reset(args []domain.Argument) error {
	if err := maxArgs(args, 1); err != nil {
		return err
	}
	if len(args) == 0 {
		p.percent = defaultTruePercentage
		return nil
	}
	v, err := intArg(args[0])
	if err != nil {
		return err
	}
	if v < 0 || v > 100 {
		return &UnexpectedArgumentError{Value: args[0].String(), Expected: "percentage (0-100)"}
	}
	p.percent = v
	return nil
}

func (p *BooleanProvider) Provide() (domain.CellValue, error) {
	return domain.BoolValue(p.rng.Int63n(100) < p.percent), nil
}
