package domain

import (
	"fmt"
	"math"
	"strconv"
)

type Config struct {
	Tables []Table `json:"tables" yaml:"tables"`
}

type Table struct {
	Name    string   `json:"name" yaml:"name"`
	Columns []Column `json:"columns" yaml:"columns"`
}

type Column struct {
	Name        string       `json:"name" yaml:"name"`
	Type        ColumnType   `json:"type" yaml:"type"`
	Constraints []Constraint `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Provider    ProviderSpec `json:"provider" yaml:"provider"`
}

// Constraint is declared on a column but not consumed by generation.
type Constraint struct {
	Name      string     `json:"name" yaml:"name"`
	Arguments []Argument `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

const (
	ConstraintPrimary = "primary"
	ConstraintNull    = "null"
	ConstraintLink    = "link"
)

type ProviderSpec struct {
	Name      string     `json:"name" yaml:"name"`
	Arguments []Argument `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

type TypeKind int

const (
	KindInt TypeKind = iota
	KindUnsignedInt
	KindFloat
	KindBoolean
	KindString
)

func (k TypeKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindUnsignedInt:
		return "uint"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "bool"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("TypeKind(%d)", int(k))
	}
}

// UnboundedLength is the maximum length of a plain `string` column.
const UnboundedLength = math.MaxInt

type ColumnType struct {
	Kind      TypeKind `json:"kind" yaml:"kind"`
	MaxLength int      `json:"max_length,omitempty" yaml:"max_length,omitempty"`
}

var (
	IntType         = ColumnType{Kind: KindInt}
	UnsignedIntType = ColumnType{Kind: KindUnsignedInt}
	FloatType       = ColumnType{Kind: KindFloat}
	BooleanType     = ColumnType{Kind: KindBoolean}
)

func StringType(maxLength int) ColumnType {
	return ColumnType{Kind: KindString, MaxLength: maxLength}
}

func (t ColumnType) String() string {
	if t.Kind == KindString && t.MaxLength != UnboundedLength {
		return fmt.Sprintf("string(%d)", t.MaxLength)
	}
	return t.Kind.String()
}

type ArgumentKind int

const (
	ArgInt ArgumentKind = iota
	ArgFloat
	ArgString
	ArgBoolean
)

// Argument is a literal written inside a constraint or provider call.
type Argument struct {
	Kind  ArgumentKind `json:"kind" yaml:"kind"`
	Int   int64        `json:"int,omitempty" yaml:"int,omitempty"`
	Float float64      `json:"float,omitempty" yaml:"float,omitempty"`
	Str   string       `json:"string,omitempty" yaml:"string,omitempty"`
	Bool  bool         `json:"bool,omitempty" yaml:"bool,omitempty"`
}

func IntArg(v int64) Argument     { return Argument{Kind: ArgInt, Int: v} }
func FloatArg(v float64) Argument { return Argument{Kind: ArgFloat, Float: v} }
func StringArg(v string) Argument { return Argument{Kind: ArgString, Str: v} }
func BoolArg(v bool) Argument     { return Argument{Kind: ArgBoolean, Bool: v} }

func (a Argument) String() string {
	switch a.Kind {
	case ArgInt:
		return strconv.FormatInt(a.Int, 10)
	case ArgFloat:
		return strconv.FormatFloat(a.Float, 'g', -1, 64)
	case ArgBoolean:
		return strconv.FormatBool(a.Bool)
	default:
		return a.Str
	}
}

type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueUnsignedInt
	ValueFloat
	ValueString
	ValueBoolean
)

func (k ValueKind) String() string {
	switch k {
	case ValueInt:
		return "Int"
	case ValueUnsignedInt:
		return "UnsignedInt"
	case ValueFloat:
		return "Float"
	case ValueString:
		return "String"
	case ValueBoolean:
		return "Boolean"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// CellValue is a generated value. It mirrors Argument but carries data
// produced by a provider rather than configured by the user.
type CellValue struct {
	Kind  ValueKind
	Int   int64
	Uint  uint64
	Float float64
	Str   string
	Bool  bool
}

func IntValue(v int64) CellValue     { return CellValue{Kind: ValueInt, Int: v} }
func UintValue(v uint64) CellValue   { return CellValue{Kind: ValueUnsignedInt, Uint: v} }
func FloatValue(v float64) CellValue { return CellValue{Kind: ValueFloat, Float: v} }
func StringValue(v string) CellValue { return CellValue{Kind: ValueString, Str: v} }
func BoolValue(v bool) CellValue     { return CellValue{Kind: ValueBoolean, Bool: v} }

func CellValueFromArgument(a Argument) CellValue {
	switch a.Kind {
	case ArgInt:
		return IntValue(a.Int)
	case ArgFloat:
		return FloatValue(a.Float)
	case ArgBoolean:
		return BoolValue(a.Bool)
	default:
		return StringValue(a.Str)
	}
}

// String renders the value in plain decimal/text form without quoting.
func (v CellValue) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueUnsignedInt:
		return strconv.FormatUint(v.Uint, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case ValueBoolean:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Interface returns the value as a plain Go value, suitable for encoders
// and database drivers.
func (v CellValue) Interface() interface{} {
	switch v.Kind {
	case ValueInt:
		return v.Int
	case ValueUnsignedInt:
		return v.Uint
	case ValueFloat:
		return v.Float
	case ValueBoolean:
		return v.Bool
	default:
		return v.Str
	}
}

type ColumnData struct {
	Name string
	Type ColumnType
	Data []CellValue
}
