package providers

import (
	"math"
	"math/rand"

	"github.com/mmrzaf/mocker/internal/domain"
)

const (
	defaultNumberMin int64 = 0
	defaultNumberMax int64 = math.MaxInt64
)

// NumberProvider draws integers uniformly from the closed range [min, max].
type NumberProvider struct {
	rng *rand.Rand
	min int64
	max int64
}

func NewNumberProvider(ctx Context) (Provider, error) {
	return &NumberProvider{
		rng: ctx.rng(),
		min: defaultNumberMin,
		max: defaultNumberMax,
	}, nil
}

// Reset accepts no arguments (defaults), (min) or (min, max).
func (p *NumberProvider) Reset(args []domain.Argument) error {
	if err := maxArgs(args, 2); err != nil {
		return err
	}

	min, max := defaultNumberMin, defaultNumberMax
	if len(args) > 0 {
		v, err := intArg(args[0])
		if err != nil {
			return err
		}
		min = v
	}
	if len(args) > 1 {
		v, err := intArg(args[1])
		if err != nil {
			return err
		}
		max = v
	}
	if max < min {
		return &UnexpectedArgumentError{Value: args[len(args)-1].String(), Expected: "int >= min"}
	}

	p.min, p.max = min, max
	return nil
}

func (p *NumberProvider) Provide() (domain.CellValue, error) {
	return domain.IntValue(int64InRange(p.rng, p.min, p.max)), nil
}

// int64InRange returns a uniform value in [min, max] without overflowing
// when the span covers most of the int64 range.
func int64InRange(rng *rand.Rand, min, max int64) int64 {
	span := uint64(max) - uint64(min) + 1
	switch {
	case span == 0:
		return int64(rng.Uint64())
	case span <= math.MaxInt64:
		return min + rng.Int63n(int64(span))
	default:
		return int64(uint64(min) + rng.Uint64()%span)
	}
}
