package assertion

import (
	"fmt"
	"reflect"
)

var (
	assertionType  = reflect.TypeOf((*Assertion)(nil))
	outcomePtrType = reflect.TypeOf((*Outcome)(nil))
	outcomeType    = reflect.TypeOf(Outcome{})
	errorType      = reflect.TypeOf((*error)(nil)).Elem()
)

type resultShape int

const (
	resultNone resultShape = iota
	resultError
	resultOutcome
	resultOutcomeError
)

// shim adapts an arbitrary handler func to the Handler type.
type shim struct {
	fn       reflect.Value
	this     bool
	params   []reflect.Type
	variadic reflect.Type
	arity    int
	shape    resultShape
}

func newShim(fn any) (*shim, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("handler must be a func, got %T", fn)
	}
	t := v.Type()
	s := &shim{fn: v}

	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
		s.variadic = t.In(fixed).Elem()
	}

	start := 0
	if fixed > 0 && t.In(0) == assertionType {
		s.this = true
		start = 1
	}
	for i := start; i < fixed; i++ {
		s.params = append(s.params, t.In(i))
	}
	s.arity = len(s.params)

	shape, err := classifyResults(t)
	if err != nil {
		return nil, err
	}
	s.shape = shape
	return s, nil
}

func classifyResults(t reflect.Type) (resultShape, error) {
	isOutcome := func(rt reflect.Type) bool {
		return rt == outcomePtrType || rt == outcomeType
	}

	switch t.NumOut() {
	case 0:
		return resultNone, nil
	case 1:
		switch {
		case t.Out(0) == errorType:
			return resultError, nil
		case isOutcome(t.Out(0)):
			return resultOutcome, nil
		}
	case 2:
		if isOutcome(t.Out(0)) && t.Out(1) == errorType {
			return resultOutcomeError, nil
		}
	}
	return resultNone, fmt.Errorf("unsupported handler results in %s", t)
}

// call matches the Handler signature.
func (s *shim) call(a *Assertion, subject any, args ...any) (*Outcome, error) {
	values := append([]any{subject}, args...)

	in := make([]reflect.Value, 0, len(values)+1)
	if s.this {
		in = append(in, reflect.ValueOf(a))
	}
	for i, pt := range s.params {
		var v any
		if i < len(values) {
			v = values[i]
		}
		rv, err := adapt(v, pt)
		if err != nil {
			return nil, argumentError(i, err)
		}
		in = append(in, rv)
	}
	if s.variadic != nil {
		for i := len(s.params); i < len(values); i++ {
			rv, err := adapt(values[i], s.variadic)
			if err != nil {
				return nil, argumentError(i, err)
			}
			in = append(in, rv)
		}
	}

	return s.results(s.fn.Call(in))
}

func (s *shim) results(out []reflect.Value) (*Outcome, error) {
	switch s.shape {
	case resultError:
		err, _ := out[0].Interface().(error)
		return nil, err
	case resultOutcome:
		return toOutcome(out[0]), nil
	case resultOutcomeError:
		err, _ := out[1].Interface().(error)
		if err != nil {
			return nil, err
		}
		return toOutcome(out[0]), nil
	}
	return nil, nil
}

func toOutcome(v reflect.Value) *Outcome {
	switch o := v.Interface().(type) {
	case *Outcome:
		return o
	case Outcome:
		return &o
	}
	return nil
}

func argumentError(index int, err error) error {
	if index == 0 {
		return Usagef("subject: %w", err)
	}
	return Usagef("argument %d: %w", index, err)
}

// adapt turns v into a value of type t. nil and missing values
// become the zero value; numbers convert between numeric kinds.
func adapt(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(t) &&
		(rv.Kind() == t.Kind() || (isNumeric(rv.Kind()) && isNumeric(t.Kind()))) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, t)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
