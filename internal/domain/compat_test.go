package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnTypeAccepts(t *testing.T) {
	tests := []struct {
		name  string
		typ   ColumnType
		value CellValue
		want  bool
	}{
		{"int for int", IntType, IntValue(1), true},
		{"uint for uint", UnsignedIntType, UintValue(1), true},
		{"uint for int", IntType, UintValue(1), false},
		{"int for uint", UnsignedIntType, IntValue(1), false},
		{"int widens to float", FloatType, IntValue(3), true},
		{"float for float", FloatType, FloatValue(1.5), true},
		{"float for int", IntType, FloatValue(1.5), false},
		{"bool for bool", BooleanType, BoolValue(true), true},
		{"bool for int", IntType, BoolValue(true), false},
		{"string fits", StringType(10), StringValue(strings.Repeat("a", 10)), true},
		{"string too long", StringType(10), StringValue(strings.Repeat("a", 11)), false},
		{"string counts runes", StringType(2), StringValue("éé"), true},
		{"unbounded string", StringType(UnboundedLength), StringValue(strings.Repeat("x", 4096)), true},
		{"int for string", StringType(UnboundedLength), IntValue(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Accepts(tt.value))
		})
	}
}

func TestCheckCompatibleReportsExpectedAndActual(t *testing.T) {
	err := CheckCompatible(IntType, BoolValue(true))
	require.Error(t, err)

	var incompatible *IncompatibleTypeError
	require.True(t, errors.As(err, &incompatible))
	assert.Equal(t, IntType, incompatible.Expected)
	assert.Equal(t, BoolValue(true), incompatible.Actual)
	assert.Equal(t, "incompatible type: expected int, got Boolean(true)", err.Error())

	assert.NoError(t, CheckCompatible(FloatType, IntValue(2)))
}

func TestArityErrorMessages(t *testing.T) {
	assert.Equal(t, "too few arguments: got 0, expected 1", TooFewArguments(0, 1).Error())
	assert.Equal(t, "too many arguments: got 2, expected 1", TooManyArguments(2, 1).Error())
}

func TestCellValueFromArgument(t *testing.T) {
	assert.Equal(t, IntValue(4), CellValueFromArgument(IntArg(4)))
	assert.Equal(t, FloatValue(0.5), CellValueFromArgument(FloatArg(0.5)))
	assert.Equal(t, StringValue("x"), CellValueFromArgument(StringArg("x")))
	assert.Equal(t, BoolValue(true), CellValueFromArgument(BoolArg(true)))
}

func TestColumnTypeString(t *testing.T) {
	assert.Equal(t, "string", StringType(UnboundedLength).String())
	assert.Equal(t, "string(12)", StringType(12).String())
	assert.Equal(t, "uint", UnsignedIntType.String())
}
