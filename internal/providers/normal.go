package providers

import (
	"math/rand"

	"github.com/mmrzaf/mocker/internal/domain"
)

// NormalProvider draws floats from a normal distribution.
type NormalProvider struct {
	rng  *rand.Rand
	mean float64
	std  float64
}

func NewNormalProvider(ctx Context) (Provider, error) {
	return &NormalProvider{rng: ctx.rng(), std: 1}, nil
}

// Reset accepts (), (mean) or (mean, std).
func (p *NormalProvider) Reset(args []domain.Argument) error {
	if err := maxArgs(args, 2); err != nil {
		return err
	}

	mean, std := 0.0, 1.0
	if len(args) > 0 {
		v, err := floatArg(args[0])
		if err != nil {
			return err
		}
		mean = v
	}
	if len(args) > 1 {
		v, err := floatArg(args[1])
		if err != nil {
			return err
		}
		if v < 0 {
			return &UnexpectedArgumentError{Value: args[1].String(), Expected: "non-negative float"}
		}
		std = v
	}

	p.mean, p.std = mean, std
	return nil
}

func (p *NormalProvider) Provide() (domain.CellValue, error) {
	return domain.FloatValue(p.rng.NormFloat64()*p.std + p.mean), nil
}
