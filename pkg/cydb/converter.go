package cydb

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/spf13/cast"
)

// Converter turns a native Go value bound via Val/TypedVal into a value
// the Writer can hand to ArgumentBag.Append for driver binding. typeHint
// is whatever was passed to TypedVal (empty if none). A
// ConverterRegistry tries the most recently registered Converter first;
// ErrNoConversion means "not mine, try the
// next one", any other error aborts the prepare() call with a
// ValueConversionError wrapping it.
//
// ToExpression is the other half of the contract, used while parsing a
// Raw template's "?"/"?::TYPE" placeholders: it turns one positional
// argument plus its optional "::TYPE" hint into the Expression the
// Writer should format in that position, rather than a driver-bound
// value. The two operations run at different times (ToExpression while
// building the SQL text, Convert while draining the finished
// ArgumentBag) and are not required to agree on type-hint spelling.
type Converter interface {
	Convert(value any, typeHint string) (any, error)
	ToExpression(value any, typeHint string) (Expression, error)
}

// ErrNoConversion is returned by a Converter that declines to handle a
// value, letting the registry fall through to the next candidate.
var ErrNoConversion = fmt.Errorf("cydb: no conversion")

// ConverterFunc adapts a plain function to the Converter interface.
type ConverterFunc func(value any, typeHint string) (any, error)

func (f ConverterFunc) Convert(value any, typeHint string) (any, error) { return f(value, typeHint) }

// ConverterRegistry is a read-biased, ordered list of Converters tried
// in turn. Registration happens once at startup in the common case, so
// Convert takes an RLock and a fresh registration takes a brief
// exclusive lock; there is no per-call allocation on the hot path.
type ConverterRegistry struct {
	mu    sync.RWMutex
	chain []Converter
}

// NewConverterRegistry builds a registry seeded with DefaultConverter as
// the final fallback.
func NewConverterRegistry() *ConverterRegistry {
	return &ConverterRegistry{chain: []Converter{DefaultConverter{}}}
}

// Register prepends conv so it is consulted before any previously
// registered converter, including the default fallback.
func (r *ConverterRegistry) Register(conv Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chain = append([]Converter{conv}, r.chain...)
}

// Convert runs value/typeHint through the chain, returning the first
// non-ErrNoConversion result. If every candidate declines, the original
// value is returned unchanged so the underlying driver gets a chance to
// handle it natively.
func (r *ConverterRegistry) Convert(value any, typeHint string) (any, error) {
	r.mu.RLock()
	chain := r.chain
	r.mu.RUnlock()
	for _, c := range chain {
		out, err := c.Convert(value, typeHint)
		if err == nil {
			return out, nil
		}
		if err != ErrNoConversion {
			return nil, err
		}
	}
	return value, nil
}

// DefaultConverter is the built-in fallback: it honors a handful of
// well-known type hints and otherwise guesses from the value's Go type,
// using spf13/cast for numeric/string coercion the way cyutil does
// elsewhere in this module.
type DefaultConverter struct{}

func (DefaultConverter) Convert(value any, typeHint string) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch typeHint {
	case "":
		return guessConvert(value)
	case "string":
		return cast.ToStringE(value)
	case "int", "integer", "bigint":
		return cast.ToInt64E(value)
	case "float", "double", "numeric", "decimal":
		return cast.ToFloat64E(value)
	case "bool", "boolean":
		return cast.ToBoolE(value)
	case "time", "timestamp", "datetime":
		return cast.ToTimeE(value)
	case "json", "jsonb":
		b, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("cydb: marshal json value: %w", err)
		}
		return string(b), nil
	default:
		return guessConvert(value)
	}
}

// guessConvert inspects value's Go type directly, leaving it untouched
// for everything the database/sql driver already understands natively
// (numeric kinds, strings, bools, []byte, time.Time) and only
// normalizing container types to JSON text.
func guessConvert(value any) (any, error) {
	switch value.(type) {
	case string, []byte, bool, time.Time,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return value, nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		b, err := json.Marshal(value)
		if err != nil {
			return nil, ErrNoConversion
		}
		return string(b), nil
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, nil
		}
		return guessConvert(rv.Elem().Interface())
	}
	return value, nil
}

// ToExpression implements the registry's side of the Converter
// contract; it does not consult the registered conversion chain (that
// chain exists for the Convert/to_sql path only), since dispatching a
// type hint to an Expression constructor is a fixed, structural
// operation rather than a pluggable one.
func (r *ConverterRegistry) ToExpression(value any, typeHint string) (Expression, error) {
	return toExpression(value, typeHint)
}

// ToExpression implements the same dispatch directly, for callers that
// construct a DefaultConverter standalone instead of through a registry.
func (DefaultConverter) ToExpression(value any, typeHint string) (Expression, error) {
	return toExpression(value, typeHint)
}

// toExpression implements spec's to_expression contract: nil becomes
// NullValue, an already-built Expression passes through unchanged, and
// otherwise the type hint selects among the structural constructors
// (array/column/identifier/row/table/value) or, for any other
// non-empty hint, a typed Value; an absent hint yields an untyped
// Value.
func toExpression(value any, typeHint string) (Expression, error) {
	if value == nil {
		return NullValue{}, nil
	}
	if e, ok := value.(Expression); ok {
		return e, nil
	}
	switch typeHint {
	case "array":
		elems, err := toExpressionSlice(value)
		if err != nil {
			return nil, err
		}
		return NewArray("", elems...), nil
	case "row":
		elems, err := toExpressionSlice(value)
		if err != nil {
			return nil, err
		}
		return NewRow(elems...), nil
	case "column":
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, err
		}
		return Col(s), nil
	case "identifier":
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, err
		}
		return Ident(s), nil
	case "table":
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, err
		}
		return Tbl(s), nil
	case "value":
		return Val(value), nil
	case "":
		return Val(value), nil
	default:
		return TypedVal(value, typeHint), nil
	}
}

// toExpressionSlice converts a native slice/array value into a slice of
// Val-wrapped Expressions, for the "array"/"row" type hints.
func toExpressionSlice(value any) ([]Expression, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("cydb: expected a slice for array/row placeholder, got %T", value)
	}
	out := make([]Expression, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = Val(rv.Index(i).Interface())
	}
	return out, nil
}

// InputTypeGuesser infers a type hint string for a value with no
// explicit hint from its Go type, returning "" for types it does not
// recognize. ParseField does not call it; its literals become untyped
// Values.
func InputTypeGuesser(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float32, float64:
		return "float"
	case time.Time:
		return "time"
	default:
		return ""
	}
}
