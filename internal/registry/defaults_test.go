package registry

import (
	"math/rand"
	"testing"

	"github.com/mmrzaf/mocker/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProviderRegistry(t *testing.T) {
	r := DefaultProviderRegistry(providers.Context{RowCount: 5, Rand: rand.New(rand.NewSource(1))})

	for _, name := range []string{"row", "number", "gender", "random", "first_name", "last_name", "uuid"} {
		assert.True(t, r.Has(name), name)
	}

	row, err := r.Get("row")
	require.NoError(t, err)
	again, err := r.Get("row")
	require.NoError(t, err)
	assert.Same(t, row, again)
}

func TestDefaultProviderRegistryMissingWordList(t *testing.T) {
	r := DefaultProviderRegistry(providers.Context{WordListDir: t.TempDir()})

	_, err := r.Get("first_name")
	var creation *CreationError
	require.ErrorAs(t, err, &creation)
	assert.Equal(t, "first_name", creation.Name)

	var unknown *providers.UnknownError
	assert.ErrorAs(t, err, &unknown)
}

func TestDefaultGeneratorRegistry(t *testing.T) {
	r := DefaultGeneratorRegistry()
	assert.Equal(t, []string{"csv", "json", "msgpack", "tsql", "yaml"}, r.Names())

	g, err := r.Get("tsql")
	require.NoError(t, err)
	assert.NotNil(t, g)

	_, err = r.Get("xml")
	assert.ErrorIs(t, err, ErrUnknownCreator)
}
