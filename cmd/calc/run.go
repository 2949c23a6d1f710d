package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/zephyrtronium/calc"
)

type runner struct {
	cfg *Config
	log *logrus.Logger
	out io.Writer
}

// run evaluates args, or the configured input if there are none. The error
// reports expressions that failed; each failure has already been printed.
func (r *runner) run(stdin io.Reader, args []string) error {
	if len(args) > 0 {
		return r.batch(args)
	}
	in, f, err := r.input(stdin)
	if err != nil {
		return err
	}
	if in == nil {
		return r.repl()
	}
	if f != nil {
		defer f.Close()
	}
	var exprs []string
	if r.cfg.Lines {
		scan := bufio.NewScanner(in)
		for scan.Scan() {
			if line := strings.TrimSpace(scan.Text()); line != "" {
				exprs = append(exprs, line)
			}
		}
		if err := scan.Err(); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	} else {
		b, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if s := strings.TrimSpace(string(b)); s != "" {
			exprs = append(exprs, s)
		}
	}
	return r.batch(exprs)
}

// input opens the configured input. The reader is nil if calc should run
// interactively instead. The file, if not nil, is the opened input file.
func (r *runner) input(stdin io.Reader) (io.Reader, *os.File, error) {
	switch r.cfg.In {
	case "":
		if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return nil, nil, nil
		}
		return stdin, nil, nil
	case "-":
		return stdin, nil, nil
	default:
		f, err := os.Open(r.cfg.In)
		if err != nil {
			return nil, nil, fmt.Errorf("opening input: %w", err)
		}
		return f, f, nil
	}
}

func (r *runner) batch(exprs []string) error {
	failed := 0
	for _, src := range exprs {
		if !r.eval(src) {
			failed++
		}
	}
	r.log.WithFields(logrus.Fields{"total": len(exprs), "failed": failed}).Info("evaluated input")
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(exprs))
	}
	return nil
}

// eval evaluates and prints one expression, reporting whether it succeeded.
func (r *runner) eval(src string) bool {
	if r.cfg.Glyphs {
		src = calc.Normalize(src)
	}
	p, err := calc.Compile(src)
	if err == nil {
		if r.cfg.Echo {
			fmt.Fprintf(r.out, "%v : ", p)
		}
		var x float64
		x, err = p.Eval()
		if err == nil {
			fmt.Fprintf(r.out, r.cfg.Format+"\n", x)
			return true
		}
	}
	fmt.Fprintf(r.out, "Error: %v\n", err)
	fields := logrus.Fields{"expr": src, "kind": errorKind(err)}
	var ie calc.InputError
	if errors.As(err, &ie) {
		fields["col"] = ie.Pos()
	}
	r.log.WithFields(fields).WithError(err).Debug("evaluation failed")
	return false
}

var errorKinds = []error{
	calc.ErrUnexpectedChar,
	calc.ErrUnknownIdent,
	calc.ErrMalformedNumber,
	calc.ErrMismatchedParens,
	calc.ErrInvalidExpr,
	calc.ErrDivByZero,
	calc.ErrDomain,
	calc.ErrNonFinite,
}

// errorKind names the kind of an evaluation error for logging.
func errorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return "unknown"
}
