package calc

import (
	"math"
)

// EvalRPN runs RPN code and returns the single value it leaves. The error, if
// not nil, is an *EvalError. EvalRPN does not reject NaN or infinite results;
// Eval and Program.Eval do.
func EvalRPN(code []Instr) (float64, error) {
	stack := make([]float64, 0, len(code))
	pop := func() float64 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return r
	}
	for _, in := range code {
		switch in.Kind {
		case InstrNum:
			stack = append(stack, in.Num)
		case InstrOp:
			if len(stack) < in.Op.Info().Arity {
				return 0, &EvalError{Col: in.Pos, Msg: "invalid expression", Err: ErrInvalidExpr}
			}
			if in.Op == OpNeg {
				stack = append(stack, -pop())
				continue
			}
			b := pop()
			a := pop()
			r, err := binary(in, a, b)
			if err != nil {
				return 0, err
			}
			stack = append(stack, r)
		case InstrFunc:
			if len(stack) == 0 {
				return 0, &EvalError{Col: in.Pos, Msg: "invalid function argument", Err: ErrInvalidExpr}
			}
			r, err := in.Fn.call(pop(), in.Pos)
			if err != nil {
				return 0, err
			}
			stack = append(stack, r)
		default:
			panic("calc: invalid instruction " + in.String())
		}
	}
	if len(stack) != 1 {
		return 0, &EvalError{Msg: "invalid expression", Err: ErrInvalidExpr}
	}
	return stack[0], nil
}

// binary applies a binary operator instruction to a and b, where a was pushed
// first.
func binary(in Instr, a, b float64) (float64, error) {
	switch in.Op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, &EvalError{Col: in.Pos, Msg: "division by zero", Err: ErrDivByZero}
		}
		return a / b, nil
	case OpMod:
		// Truncating remainder, with the sign of a.
		return math.Mod(a, b), nil
	case OpPow:
		return math.Pow(a, b), nil
	default:
		panic("calc: invalid binary operator " + in.Op.String())
	}
}

// finite rejects NaN and infinite results and turns -0 into 0.
func finite(r float64) (float64, error) {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, &EvalError{Msg: "non-finite result", Err: ErrNonFinite}
	}
	if r == 0 {
		// Drop the sign of -0.
		r = 0
	}
	return r, nil
}

// Eval evaluates the program. The result is always finite; otherwise the
// error is an *EvalError.
func (p *Program) Eval() (float64, error) {
	r, err := EvalRPN(p.code)
	if err != nil {
		return 0, err
	}
	return finite(r)
}

// Eval is a shortcut to compile and evaluate an expression. The error, if not
// nil, implements InputError.
func Eval(src string) (float64, error) {
	p, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return p.Eval()
}
