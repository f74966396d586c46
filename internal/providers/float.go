package providers

import (
	"math"
	"math/rand"

	"github.com/mmrzaf/mocker/internal/domain"
)

// FloatProvider draws floats uniformly from [min, max).
type FloatProvider struct {
	rng *rand.Rand
	min float64
	max float64
}

func NewFloatProvider(ctx Context) (Provider, error) {
	return &FloatProvider{rng: ctx.rng(), max: 1}, nil
}

// Reset accepts () for [0, 1) or (min, max).
func (p *FloatProvider) Reset(args []domain.Argument) error {
	if err := maxArgs(args, 2); err != nil {
		return err
	}

	bounds := []float64{0, 1}
	for i, arg := range args {
		v, err := floatArg(arg)
		if err != nil {
			return err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &UnexpectedArgumentError{Value: arg.String(), Expected: "finite float"}
		}
		bounds[i] = v
	}
	if len(args) == 1 {
		return domain.TooFewArguments(1, 2)
	}

	min, max := bounds[0], bounds[1]
	if max < min {
		return &UnexpectedArgumentError{Value: args[1].String(), Expected: "float >= min"}
	}
	if math.IsInf(max-min, 0) {
		return &UnexpectedArgumentError{Value: args[1].String(), Expected: "float range with a finite width"}
	}

	p.min, p.max = min, max
	return nil
}

func (p *FloatProvider) Provide() (domain.CellValue, error) {
	return domain.FloatValue(p.min + p.rng.Float64()*(p.max-p.min)), nil
}
