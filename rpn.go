package calc

import (
	"strconv"
	"strings"
)

// Instr is one instruction of RPN code.
type Instr struct {
	// Kind is the instruction's variant.
	Kind InstrKind
	// Num is the value pushed by an InstrNum.
	Num float64
	// Op is the operator applied by an InstrOp.
	Op Op
	// Fn is the function applied by an InstrFunc.
	Fn Func
	// Text is the source text of the token the instruction came from.
	Text string
	// Pos is the rune column of that token.
	Pos int
}

// InstrKind identifies the variant of an Instr.
type InstrKind int8

const (
	InstrNone InstrKind = iota
	// InstrNum pushes Num.
	InstrNum
	// InstrOp pops the operator's operands and pushes its result.
	InstrOp
	// InstrFunc pops one operand and pushes the function's result.
	InstrFunc
)

func (k InstrKind) String() string {
	switch k {
	case InstrNone:
		return "None"
	case InstrNum:
		return "Num"
	case InstrOp:
		return "Op"
	case InstrFunc:
		return "Func"
	default:
		return "InstrKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (in Instr) String() string {
	switch in.Kind {
	case InstrNum:
		if in.Text != "" {
			return in.Text
		}
		return strconv.FormatFloat(in.Num, 'g', -1, 64)
	case InstrOp:
		return in.Op.String()
	case InstrFunc:
		return in.Fn.String()
	default:
		return "$" + in.Kind.String()
	}
}

// Program is compiled RPN code ready for evaluation. A Program is immutable
// and safe for concurrent use.
type Program struct {
	src  string
	code []Instr
}

// Compile tokenizes and parses src. The error, if not nil, is a *LexError or
// *ParseError.
func Compile(src string) (*Program, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	code, err := ToRPN(toks)
	if err != nil {
		return nil, err
	}
	return &Program{src: src, code: code}, nil
}

// Source returns the text the program was compiled from.
func (p *Program) Source() string {
	return p.src
}

// Code returns a copy of the program's instructions.
func (p *Program) Code() []Instr {
	return append([]Instr(nil), p.code...)
}

// String formats the program in postfix notation, e.g. "2 3 4 * +".
func (p *Program) String() string {
	var b strings.Builder
	for i, in := range p.code {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(in.String())
	}
	return b.String()
}
