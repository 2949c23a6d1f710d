package calc

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical token of a calculator expression.
type Token struct {
	// Kind is the token's variant. The remaining fields are meaningful only
	// for the kinds noted on them.
	Kind TokenKind
	// Text is the source text of the token. Identifiers are lower-cased.
	Text string
	// Num is the value of a TokenNum or TokenConst.
	Num float64
	// Op is the operator of a TokenOp.
	Op Op
	// Fn is the function of a TokenFunc.
	Fn Func
	// Pos is the 1-based rune column at which the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind identifies the variant of a Token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a numeric literal, possibly signed.
	TokenNum
	// TokenConst is the constant PI.
	TokenConst
	// TokenOp is an operator.
	TokenOp
	// TokenFunc is a function name.
	TokenFunc
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenSep is a comma.
	TokenSep
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNum:
		return "Num"
	case TokenConst:
		return "Const"
	case TokenOp:
		return "Op"
	case TokenFunc:
		return "Func"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	case TokenSep:
		return "Sep"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are lexed as binary operators.
const Operators = "+-*/%^"

type lexer struct {
	src  *strings.Reader
	buf  strings.Builder
	rune int
	// prev is the kind of the last token scanned.
	prev TokenKind
}

// Tokenize splits src into tokens. The error, if not nil, is a *LexError.
func Tokenize(src string) ([]Token, error) {
	l := lexer{src: strings.NewReader(src)}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
		l.prev = tok.Kind
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// peek returns up to the next two unread bytes without consuming them.
func (l *lexer) peek() []byte {
	var b [2]byte
	n, _ := l.src.ReadAt(b[:], l.src.Size()-int64(l.src.Len()))
	return b[:n]
}

// peekDigit reports whether the next rune is a digit.
func (l *lexer) peekDigit() bool {
	b := l.peek()
	return len(b) >= 1 && isDigit(rune(b[0]))
}

// peekNum reports whether the upcoming runes begin a number, i.e. a digit or
// a dot followed by a digit.
func (l *lexer) peekNum() bool {
	b := l.peek()
	switch {
	case len(b) >= 1 && isDigit(rune(b[0])):
		return true
	case len(b) == 2 && b[0] == '.' && isDigit(rune(b[1])):
		return true
	default:
		return false
	}
}

// literalPos reports whether a - at the current position cannot be a binary
// operator.
func (l *lexer) literalPos() bool {
	switch l.prev {
	case TokenNone, TokenOpen, TokenSep, TokenOp:
		return true
	default:
		return false
	}
}

// next scans the next token from the input. At the end of the input, the
// result is io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		tok := Token{Pos: l.rune}
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '(':
			tok.Kind, tok.Text = TokenOpen, "("
			return tok, nil
		case r == ')':
			tok.Kind, tok.Text = TokenClose, ")"
			return tok, nil
		case r == ',':
			tok.Kind, tok.Text = TokenSep, ","
			return tok, nil
		case r == '-' && l.literalPos():
			if !l.peekNum() {
				tok.Kind, tok.Text, tok.Op = TokenOp, "-", OpNeg
				return tok, nil
			}
			l.buf.WriteRune(r)
			return l.scanNum(tok)
		case isDigit(r), r == '.' && l.peekDigit():
			l.unreadRune()
			return l.scanNum(tok)
		case unicode.IsLetter(r):
			l.unreadRune()
			return l.scanIdent(tok)
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.Kind, tok.Text, tok.Op = TokenOp, Operators[k:k+1], binops[k]
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error(tok.Pos, ErrUnexpectedChar)
		}
	}
}

// scanNum scans the maximal run of digits and dots following whatever is
// already in the buffer.
func (l *lexer) scanNum(tok Token) (Token, error) {
	dots := 0
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return tok, err
		}
		if r == '.' {
			dots++
		} else if !isDigit(r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	if dots > 1 {
		return tok, l.error(tok.Pos, ErrMalformedNumber)
	}
	tok.Kind = TokenNum
	tok.Text = l.buf.String()
	x, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return tok, l.error(tok.Pos, ErrMalformedNumber)
	}
	// Out of range literals are ±Inf, which the finite check rejects after
	// evaluation.
	tok.Num = x
	return tok, nil
}

func (l *lexer) scanIdent(tok Token) (Token, error) {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return tok, err
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(unicode.ToLower(r))
	}
	tok.Text = l.buf.String()
	if tok.Text == "pi" {
		tok.Kind, tok.Num = TokenConst, math.Pi
		return tok, nil
	}
	fn, ok := lookupFunc(tok.Text)
	if !ok {
		return tok, l.error(tok.Pos, ErrUnknownIdent)
	}
	tok.Kind, tok.Fn = TokenFunc, fn
	return tok, nil
}

func (l *lexer) error(col int, kind error) error {
	return &LexError{
		Text: l.buf.String(),
		Col:  col,
		Err:  kind,
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the text the lexer was scanning when the error occurred, for
	// unexpected characters the character itself.
	Text string
	// Col is the rune column at which the invalid token starts.
	Col int
	// Err is one of ErrUnexpectedChar, ErrUnknownIdent, or
	// ErrMalformedNumber.
	Err error
}

func (err *LexError) Error() string {
	return errpos(err.Col, err.Err.Error()+" "+strconv.Quote(err.Text))
}

func (err *LexError) Unwrap() error {
	return err.Err
}

func (err *LexError) Pos() int {
	return err.Col
}
