// Command calc evaluates calculator expressions given as arguments, read from
// a file or stdin, or typed into an interactive prompt.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "calc:", err)
		os.Exit(1)
	}
}
