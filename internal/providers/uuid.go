package providers

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/mmrzaf/mocker/internal/domain"
)

// UUIDProvider builds version 4 UUIDs from the provider's random source, so
// a seeded run produces the same identifiers.
type UUIDProvider struct {
	NopReset
	rng *rand.Rand
}

func NewUUIDProvider(ctx Context) (Provider, error) {
	return &UUIDProvider{rng: ctx.rng()}, nil
}

func (p *UUIDProvider) Provide() (domain.CellValue, error) {
	uuidBytes := make([]byte, 16)
	p.rng.Read(uuidBytes)
	uuidBytes[6] = (uuidBytes[6] & 0x0f) | 0x40
	uuidBytes[8] = (uuidBytes[8] & 0x3f) | 0x80
	u, err := uuid.FromBytes(uuidBytes)
	if err != nil {
		return domain.CellValue{}, err
	}
	return domain.StringValue(u.String()), nil
}
