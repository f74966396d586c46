package providers

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/mmrzaf/mocker/internal/domain"
)

// FakerProvider adapts a go-faker function. Faker keeps its own random
// source, so these values are not reproduced by --seed.
type FakerProvider struct {
	NopReset
	fake func() string
}

func NewFakerNameProvider(Context) (Provider, error) {
	return &FakerProvider{fake: func() string { return faker.Name() }}, nil
}

func NewFakerEmailProvider(Context) (Provider, error) {
	return &FakerProvider{fake: func() string { return faker.Email() }}, nil
}

func NewFakerUsernameProvider(Context) (Provider, error) {
	return &FakerProvider{fake: func() string { return faker.Username() }}, nil
}

func (p *FakerProvider) Provide() (domain.CellValue, error) {
	return domain.StringValue(p.fake()), nil
}

// cities backs the city provider. It draws from the provider rand source
// so that city columns follow --seed, unlike the faker-backed providers.
var cities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
	"Austin", "Jacksonville", "Fort Worth", "Columbus", "Charlotte",
	"San Francisco", "Indianapolis", "Seattle", "Denver", "Washington",
	"Boston", "Nashville", "Detroit", "Portland", "Las Vegas",
	"London", "Paris", "Tokyo", "Berlin", "Madrid",
	"Rome", "Amsterdam", "Vienna", "Prague", "Barcelona",
	"Munich", "Milan", "Stockholm", "Copenhagen", "Oslo",
}

type CityProvider struct {
	NopReset
	rng *rand.Rand
}

func NewCityProvider(ctx Context) (Provider, error) {
	return &CityProvider{rng: ctx.rng()}, nil
}

func (p *CityProvider) Provide() (domain.CellValue, error) {
	return domain.StringValue(cities[p.rng.Intn(len(cities))]), nil
}
