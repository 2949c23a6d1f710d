package calc

import "strconv"

// Op is an arithmetic operator.
type Op int8

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	// OpNeg is prefix negation, lexed from a - that has no left operand and
	// is not followed by a number.
	OpNeg
)

// binops maps byte positions in Operators to their binary operators.
var binops = [len(Operators)]Op{OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow}

// Assoc is the associativity of an operator.
type Assoc int8

const (
	AssocLeft Assoc = iota
	AssocRight
)

// OpInfo describes how an operator binds.
type OpInfo struct {
	// Prec is the precedence value. Higher is more binding.
	Prec int8
	// Assoc is the grouping of chains of operators with equal precedence.
	Assoc Assoc
	// Arity is the number of operands.
	Arity int
}

var opinfo = [...]OpInfo{
	OpAdd: {1, AssocLeft, 2},
	OpSub: {1, AssocLeft, 2},
	OpMul: {5, AssocLeft, 2},
	OpDiv: {5, AssocLeft, 2},
	OpMod: {5, AssocLeft, 2},
	OpNeg: {10, AssocRight, 1},
	OpPow: {15, AssocRight, 2},
}

// Info returns the precedence, associativity, and arity of op. Panics if op
// is not a valid operator.
func (op Op) Info() OpInfo {
	if op <= OpNone || int(op) >= len(opinfo) {
		panic("calc: invalid operator " + op.String())
	}
	return opinfo[op]
}

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	case OpNeg:
		return "neg"
	default:
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
}

// popsFor reports whether a pending operator top must be emitted before the
// incoming binary operator op is pushed.
func popsFor(top, op Op) bool {
	t, o := top.Info(), op.Info()
	if t.Prec != o.Prec {
		return t.Prec > o.Prec
	}
	return o.Assoc == AssocLeft
}

// ToRPN converts an infix token sequence into RPN code using the
// shunting-yard algorithm. The error, if not nil, is a *ParseError.
//
// Commas are ignored, so grouping like f(a, b) leaves two operands for f and
// fails during evaluation.
func ToRPN(toks []Token) ([]Instr, error) {
	out := make([]Instr, 0, len(toks))
	// stack holds pending TokenOp, TokenFunc, and TokenOpen tokens.
	var stack []Token
	emit := func(tok Token) {
		switch tok.Kind {
		case TokenOp:
			out = append(out, Instr{Kind: InstrOp, Op: tok.Op, Text: tok.Text, Pos: tok.Pos})
		case TokenFunc:
			out = append(out, Instr{Kind: InstrFunc, Fn: tok.Fn, Text: tok.Text, Pos: tok.Pos})
		default:
			panic("calc: emitting pending token " + tok.String())
		}
	}
	for _, tok := range toks {
		switch tok.Kind {
		case TokenNum, TokenConst:
			out = append(out, Instr{Kind: InstrNum, Num: tok.Num, Text: tok.Text, Pos: tok.Pos})
		case TokenFunc:
			stack = append(stack, tok)
		case TokenOp:
			if tok.Op.Info().Arity == 1 {
				// Prefix operators have no left operand to resolve.
				stack = append(stack, tok)
				continue
			}
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != TokenOp || !popsFor(top.Op, tok.Op) {
					break
				}
				emit(top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		case TokenOpen:
			stack = append(stack, tok)
		case TokenClose:
			for {
				if len(stack) == 0 {
					return nil, &ParseError{Col: tok.Pos, Err: ErrMismatchedParens}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == TokenOpen {
					break
				}
				emit(top)
			}
			if len(stack) > 0 && stack[len(stack)-1].Kind == TokenFunc {
				emit(stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		case TokenSep:
			// Single-argument grammar; nothing to do.
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == TokenOpen {
			return nil, &ParseError{Col: top.Pos, Err: ErrMismatchedParens}
		}
		emit(top)
	}
	return out, nil
}
