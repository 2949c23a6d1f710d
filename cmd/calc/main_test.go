package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// execute runs the calc command with the given arguments and stdin.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errout)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommand(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		out   string
		fail  bool
	}{
		{"args", "", []string{"2+3*4", "2^3^2", "3*-2"}, "14\n512\n-6\n", false},
		{"lines", "2+2\n\n  sqrt(16) \n", nil, "4\n4\n", false},
		{"stdin-dash", "1+1\n", []string{"--in", "-"}, "2\n", false},
		{"whole", "2+\n2\n", []string{"--lines=false"}, "4\n", false},
		{"whole-short", "2*\n3\n", []string{"-n=false"}, "6\n", false},
		{"empty", "\n \n", nil, "", false},
		{"echo", "", []string{"--echo", "2+3*4"}, "2 3 4 * + : 14\n", false},
		{"fmt", "", []string{"--fmt", "%.3f", "PI"}, "3.142\n", false},
		{"glyphs", "", []string{"2×3÷4", "2×π−π"}, "1.5\n3.141592653589793\n", false},
		{"no-glyphs", "", []string{"--glyphs=false", "2×3"}, "Error: 2: unexpected character \"×\"\n", true},
		{"div-zero", "", []string{"5/0", "1+1"}, "Error: 2: division by zero\n2\n", true},
		{"lines-fail", "(2+3\n2+3\n", nil, "Error: 1: mismatched parentheses\n5\n", true},
		{"non-finite", "", []string{"10^400"}, "Error: non-finite result\n", true},
		{"nan-sqrt", "", []string{"sqrt((-1)^0.5)"}, "Error: non-finite result\n", true},
		{"neg-zero", "", []string{"-0", "0*-1"}, "0\n0\n", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := execute(t, c.stdin, c.args...)
			if out != c.out {
				t.Errorf("wrong output:\n\twant %q\n\tgot  %q", c.out, out)
			}
			if c.fail != (err != nil) {
				t.Errorf("wrong error: want failure %v, got %v", c.fail, err)
			}
		})
	}
}

func TestCommandFailureCount(t *testing.T) {
	_, err := execute(t, "", "1/0", "2", "sqrt(-4)")
	if err == nil || err.Error() != "2 of 3 expressions failed" {
		t.Errorf("wrong error %v", err)
	}
}

func TestCommandInputFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "exprs.txt")
	if err := os.WriteFile(name, []byte("1+2\nln(1)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "", "--in", name)
	if err != nil {
		t.Fatal(err)
	}
	if out != "3\n0\n" {
		t.Errorf("wrong output %q", out)
	}
	if _, err := execute(t, "", "--in", name+".missing"); err == nil {
		t.Error("missing input file gave no error")
	}
}

func TestCommandConfigFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "calc.yaml")
	cfg := "fmt: \"%.2f\"\necho: true\n"
	if err := os.WriteFile(name, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "", "--config", name, "PI")
	if err != nil {
		t.Fatal(err)
	}
	if out != "pi : 3.14\n" {
		t.Errorf("wrong output %q", out)
	}
	// Flags override the file.
	out, err = execute(t, "", "--config", name, "--echo=false", "--fmt", "%.1f", "PI")
	if err != nil {
		t.Fatal(err)
	}
	if out != "3.1\n" {
		t.Errorf("wrong output %q", out)
	}
	if _, err := execute(t, "", "--config", name+".missing", "1"); err == nil {
		t.Error("missing config file gave no error")
	}
}

func TestCommandEnv(t *testing.T) {
	t.Setenv("CALC_FMT", "%.4f")
	out, err := execute(t, "", "PI")
	if err != nil {
		t.Fatal(err)
	}
	if out != "3.1416\n" {
		t.Errorf("wrong output %q", out)
	}
	out, err = execute(t, "", "--fmt", "%.0f", "PI")
	if err != nil {
		t.Fatal(err)
	}
	if out != "3\n" {
		t.Errorf("flag should override env, got %q", out)
	}
}

func TestCommandBadSettings(t *testing.T) {
	cases := [][]string{
		{"--fmt", "result", "1"},
		{"--fmt", "%g %g", "1"},
		{"--fmt", "%d", "1"},
		{"--fmt", "%s", "1"},
		{"--log-level", "loud", "1"},
		{"--log-format", "xml", "1"},
	}
	for _, args := range cases {
		out, err := execute(t, "", args...)
		if err == nil {
			t.Errorf("%q gave no error", args)
		}
		if out != "" {
			t.Errorf("%q evaluated anyway: %q", args, out)
		}
	}
	if _, err := execute(t, "", "--fmt", "%.1f%%", "50"); err != nil {
		t.Errorf("escaped percent should be allowed: %v", err)
	}
}

func TestConfigCheck(t *testing.T) {
	base := Config{Format: "%g", LogLevel: "warn", LogFormat: "text"}
	if err := base.check(); err != nil {
		t.Fatalf("default settings rejected: %v", err)
	}
	cases := []struct {
		name string
		mod  func(*Config)
		msg  string
	}{
		{"fmt", func(c *Config) { c.Format = "x" }, `result format "x" must contain exactly one floating-point verb`},
		{"level", func(c *Config) { c.LogLevel = "loud" }, `invalid log-level "loud"`},
		{"format", func(c *Config) { c.LogFormat = "xml" }, `invalid log-format "xml"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := base
			c.mod(&cfg)
			err := cfg.check()
			if err == nil {
				t.Fatal("no error")
			}
			if !strings.HasPrefix(err.Error(), c.msg) {
				t.Errorf("want %q, got %q", c.msg, err.Error())
			}
		})
	}
}

func TestFloatVerb(t *testing.T) {
	cases := []struct {
		format string
		ok     bool
	}{
		{"%g", true},
		{"%.3f", true},
		{"%+10.2e", true},
		{"= %v", true},
		{"%x", true},
		{"%.1f%%", true},
		{"%%%G", true},
		{"", false},
		{"x", false},
		{"%%", false},
		{"%d", false},
		{"%s", false},
		{"%q", false},
		{"%g %g", false},
		{"%.2", false},
		{"%5%", false},
	}
	for _, c := range cases {
		if got := floatVerb(c.format); got != c.ok {
			t.Errorf("floatVerb(%q): want %v, got %v", c.format, c.ok, got)
		}
	}
}

func TestEvalLogsFailures(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	var out bytes.Buffer
	r := &runner{cfg: &Config{Format: "%g"}, log: log, out: &out}
	if r.eval("1 + $") {
		t.Fatal("eval succeeded")
	}
	e := hook.LastEntry()
	if e == nil {
		t.Fatal("nothing logged")
	}
	if e.Level != logrus.DebugLevel || e.Message != "evaluation failed" {
		t.Errorf("wrong entry %v %q", e.Level, e.Message)
	}
	want := map[string]interface{}{"expr": "1 + $", "kind": "unexpected character", "col": 5}
	for k, v := range want {
		if e.Data[k] != v {
			t.Errorf("field %s: want %v, got %v", k, v, e.Data[k])
		}
	}
	if e.Data[logrus.ErrorKey] == nil {
		t.Error("no error field")
	}

	hook.Reset()
	if !r.eval("1+1") {
		t.Fatal("eval failed")
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("success logged %v", hook.AllEntries())
	}
}

func TestLoggerJSON(t *testing.T) {
	var b bytes.Buffer
	log, err := newLogger(&Config{LogLevel: "info", LogFormat: "json"}, &b)
	if err != nil {
		t.Fatal(err)
	}
	log.WithField("expr", "1+1").Info("hello")
	var m map[string]interface{}
	if err := json.Unmarshal(b.Bytes(), &m); err != nil {
		t.Fatalf("%q is not JSON: %v", b.String(), err)
	}
	if m["msg"] != "hello" || m["expr"] != "1+1" {
		t.Errorf("wrong entry %v", m)
	}
}

func TestComplete(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"2+", nil},
		{"s", []string{"sin(", "sqrt("}},
		{"2*sq", []string{"2*sqrt("}},
		{"L", []string{"ln(", "log10("}},
		{"1+p", []string{"1+PI"}},
		{"cosx", nil},
	}
	for _, c := range cases {
		if got := complete(c.line); !reflect.DeepEqual(got, c.want) {
			t.Errorf("completing %q: want %q, got %q", c.line, c.want, got)
		}
	}
}
