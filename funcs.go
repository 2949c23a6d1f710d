package calc

import (
	"math"
	"strconv"
)

// Func is a unary function recognized by the tokenizer.
type Func int8

const (
	FnNone Func = iota
	FnSin
	FnCos
	FnTan
	FnSqrt
	FnLn
	FnLog10
)

type monadic struct {
	name string
	f    func(float64) float64
	// dom reports whether x is in the function's domain. nil means every
	// real number is.
	dom func(x float64) bool
	// invalid is the message for arguments outside dom.
	invalid string
}

// NaN is in every domain so that it reaches the non-finite result check.
func nonneg(x float64) bool   { return !(x < 0) }
func positive(x float64) bool { return !(x <= 0) }

var funcs = [...]monadic{
	FnSin:   {name: "sin", f: math.Sin},
	FnCos:   {name: "cos", f: math.Cos},
	FnTan:   {name: "tan", f: math.Tan},
	FnSqrt:  {name: "sqrt", f: math.Sqrt, dom: nonneg, invalid: "invalid sqrt"},
	FnLn:    {name: "ln", f: math.Log, dom: positive, invalid: "invalid ln"},
	FnLog10: {name: "log10", f: math.Log10, dom: positive, invalid: "invalid log"},
}

// lookupFunc finds the function with the given lower-case name.
func lookupFunc(name string) (Func, bool) {
	for i := range funcs {
		if i != int(FnNone) && funcs[i].name == name {
			return Func(i), true
		}
	}
	return FnNone, false
}

// Funcs returns the names of the recognized functions.
func Funcs() []string {
	r := make([]string, 0, len(funcs)-1)
	for _, m := range funcs[1:] {
		r = append(r, m.name)
	}
	return r
}

func (fn Func) String() string {
	if fn <= FnNone || int(fn) >= len(funcs) {
		return "Func(" + strconv.Itoa(int(fn)) + ")"
	}
	return funcs[fn].name
}

// call applies fn to x. col is the position to report in errors.
func (fn Func) call(x float64, col int) (float64, error) {
	if fn <= FnNone || int(fn) >= len(funcs) {
		panic("calc: invalid function " + fn.String())
	}
	m := &funcs[fn]
	if m.dom != nil && !m.dom(x) {
		return 0, &EvalError{Col: col, Msg: m.invalid, Err: &DomainError{X: x, Func: m.name}}
	}
	return m.f(x), nil
}

// DomainError is an error returned when a function is called on an argument
// outside its domain. DomainError unwraps to ErrDomain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is the function name.
	Func string
}

func (err *DomainError) Error() string {
	return strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain of " + err.Func
}

func (err *DomainError) Unwrap() error {
	return ErrDomain
}
