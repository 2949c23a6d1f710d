package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd creates the calc command. Each command has its own viper
// instance so that settings never leak between executions.
func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "calc [expression...]",
		Short: "Evaluate calculator expressions",
		Long: `calc evaluates arithmetic expressions made of numbers, + - * / % ^,
parentheses, PI, and the functions sin cos tan sqrt ln log10.

Each argument is a separate expression. With no arguments, expressions are
read from --in or stdin, one per line unless --lines=false. When stdin is a
terminal, calc prompts for expressions interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			r := &runner{cfg: cfg, log: log, out: cmd.OutOrStdout()}
			return r.run(cmd.InOrStdin(), args)
		},
	}

	f := cmd.Flags()
	f.String("config", "", "config file (default calc.yaml in . or $HOME/.config/calc)")
	f.String("in", "", "input file, - for stdin (default stdin if no args given)")
	f.String("fmt", defaultFormat, "result formatting verb")
	f.BoolP("lines", "n", true, "evaluate separate input lines as separate expressions")
	f.Bool("echo", false, "print RPN code before each result")
	f.Bool("glyphs", true, "accept the display glyphs × ÷ − π")
	f.String("prompt", defaultPrompt, "interactive prompt")
	f.String("log-level", "warn", "log level (debug, info, warn, error)")
	f.String("log-format", "text", "log format (text or json)")
	if err := v.BindPFlags(f); err != nil {
		panic("calc: binding flags: " + err.Error())
	}
	return cmd
}
