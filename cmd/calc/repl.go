package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/calc"
)

// repl prompts for expressions until EOF or :quit. Failures are printed but
// do not end the session. History lasts only as long as the session.
func (r *runner) repl() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)

	r.log.Debug("starting interactive session")
	for {
		line, err := ln.Prompt(r.cfg.Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(r.out)
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return nil
		}
		ln.AppendHistory(line)
		r.eval(line)
	}
}

// complete suggests function names and PI for the identifier at the end of
// line.
func complete(line string) []string {
	i := len(line)
	for i > 0 {
		c := rune(line[i-1])
		if c >= 0x80 || !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			break
		}
		i--
	}
	prefix := strings.ToLower(line[i:])
	if prefix == "" {
		return nil
	}
	var r []string
	for _, name := range calc.Funcs() {
		if strings.HasPrefix(name, prefix) {
			r = append(r, line[:i]+name+"(")
		}
	}
	if strings.HasPrefix("pi", prefix) {
		r = append(r, line[:i]+"PI")
	}
	return r
}
