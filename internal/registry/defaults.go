package registry

import (
	"github.com/mmrzaf/mocker/internal/generators"
	"github.com/mmrzaf/mocker/internal/providers"
)

type ProviderRegistry = Registry[providers.Provider, providers.Context]

type GeneratorRegistry = Registry[generators.Generator, struct{}]

func DefaultProviderRegistry(ctx providers.Context) *ProviderRegistry {
	r := New[providers.Provider](ctx)
	r.MustRegister("row", providers.NewRowProvider)
	r.MustRegister("number", providers.NewNumberProvider)
	r.MustRegister("gender", providers.NewGenderProvider)
	r.MustRegister("random", providers.NewRandomProvider)
	r.MustRegister("first_name", providers.NewFirstNameProvider)
	r.MustRegister("last_name", providers.NewLastNameProvider)
	r.MustRegister("uuid", providers.NewUUIDProvider)
	r.MustRegister("const", providers.NewConstProvider)
	r.MustRegister("float", providers.NewFloatProvider)
	r.MustRegister("normal", providers.NewNormalProvider)
	r.MustRegister("boolean", providers.NewBooleanProvider)
	r.MustRegister("name", providers.NewFakerNameProvider)
	r.MustRegister("email", providers.NewFakerEmailProvider)
	r.MustRegister("username", providers.NewFakerUsernameProvider)
	r.MustRegister("city", providers.NewCityProvider)
	return r
}

func DefaultGeneratorRegistry() *GeneratorRegistry {
	r := New[generators.Generator](struct{}{})
	r.MustRegister("tsql", withoutData(generators.NewTsqlGenerator))
	r.MustRegister("csv", withoutData(generators.NewCSVGenerator))
	r.MustRegister("json", withoutData(generators.NewJSONGenerator))
	r.MustRegister("yaml", withoutData(generators.NewYAMLGenerator))
	r.MustRegister("msgpack", withoutData(generators.NewMsgpackGenerator))
	return r
}

func withoutData[T any](create func() (T, error)) Factory[T, struct{}] {
	return func(struct{}) (T, error) {
		return create()
	}
}
