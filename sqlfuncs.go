package vecindex

import (
	"github.com/xDarkicex/vecindex/internal/vecvalue"
)

// ScalarFunc is a single SQL scalar function implementation: it
// receives the raw SQL argument values and returns the raw result
// value or an error.
type ScalarFunc func(args []any) (any, error)

// SQLRegistrar is the narrow collaborator a host database implements
// to receive this package's scalar functions (spec.md §1: "external
// collaborator through a narrow interface"; SPEC_FULL.md §4.9). It
// mirrors how the teacher registers Prometheus collectors through
// promauto against a registry it does not own.
type SQLRegistrar interface {
	RegisterScalar(name string, arity int, fn ScalarFunc) error
}

// RegisterVectorFunctions registers the three scalar functions of
// spec.md §6 against r: vector(text) -> blob, vector_extract(blob or
// text) -> text, vector_distance_cos(a, b) -> double.
func RegisterVectorFunctions(r SQLRegistrar) error {
	if err := r.RegisterScalar("vector", 1, sqlVector); err != nil {
		return err
	}
	if err := r.RegisterScalar("vector_extract", 1, sqlVectorExtract); err != nil {
		return err
	}
	if err := r.RegisterScalar("vector_distance_cos", 2, sqlVectorDistanceCos); err != nil {
		return err
	}
	return nil
}

// sqlVector parses a textual vector literal and returns its canonical
// blob form.
func sqlVector(args []any) (any, error) {
	text, ok := args[0].(string)
	if !ok {
		return nil, ErrInvalidText("vector() argument must be text")
	}
	v, err := vecvalue.ParseText(text)
	if err != nil {
		return nil, fromVecvalueErr(err)
	}
	return vecvalue.Serialize(v), nil
}

// sqlVectorExtract accepts either a blob or a textual vector and
// returns its canonical text form.
func sqlVectorExtract(args []any) (any, error) {
	v, err := decodeVectorArg(args[0])
	if err != nil {
		return nil, err
	}
	return vecvalue.FormatText(v), nil
}

// sqlVectorDistanceCos returns the cosine distance between two
// vectors, each accepted as either a blob or text literal.
func sqlVectorDistanceCos(args []any) (any, error) {
	a, err := decodeVectorArg(args[0])
	if err != nil {
		return nil, err
	}
	b, err := decodeVectorArg(args[1])
	if err != nil {
		return nil, err
	}
	dist, err := vecvalue.Cosine(a, b)
	if err != nil {
		return nil, fromVecvalueErr(err)
	}
	return dist, nil
}

// decodeVectorArg accepts either a []byte blob (§4.2 wire form) or a
// string textual literal, the two input shapes vector_extract and
// vector_distance_cos must both accept per spec.md §6.
func decodeVectorArg(arg any) (*vecvalue.Vector, error) {
	switch t := arg.(type) {
	case []byte:
		v, err := vecvalue.ParseBlob(t)
		if err != nil {
			return nil, fromVecvalueErr(err)
		}
		return v, nil
	case string:
		v, err := vecvalue.ParseText(t)
		if err != nil {
			return nil, fromVecvalueErr(err)
		}
		return v, nil
	default:
		return nil, ErrInvalidBlob("argument is neither a blob nor text")
	}
}

func fromVecvalueErr(err error) error {
	return fromInternal(err)
}
