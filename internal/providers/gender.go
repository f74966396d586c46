package providers

import (
	"math/rand"

	"github.com/mmrzaf/mocker/internal/domain"
)

type gender struct {
	short string
	long  string
}

var genders = []gender{
	{short: "F", long: "FEMALE"},
	{short: "M", long: "MALE"},
	{short: "O", long: "OTHER"},
}

type GenderProvider struct {
	rng  *rand.Rand
	long bool
}

func NewGenderProvider(ctx Context) (Provider, error) {
	return &GenderProvider{rng: ctx.rng()}, nil
}

// Reset takes an optional boolean selecting the long form.
func (p *GenderProvider) Reset(args []domain.Argument) error {
	if err := maxArgs(args, 1); err != nil {
		return err
	}
	if len(args) == 0 {
		p.long = false
		return nil
	}
	if args[0].Kind != domain.ArgBoolean {
		return &UnexpectedArgumentError{Value: args[0].String(), Expected: "Boolean"}
	}
	p.long = args[0].Bool
	return nil
}

func (p *GenderProvider) Provide() (domain.CellValue, error) {
	g := genders[p.rng.Intn(len(genders))]
	if p.long {
		return domain.StringValue(g.long), nil
	}
	return domain.StringValue(g.short), nil
}
