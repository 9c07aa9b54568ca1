// Package main provides pastctl, a terminal client for the Past or Prompt quiz.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	env := &appEnv{in: bufio.NewReader(os.Stdin), out: os.Stdout}
	if err := newRootCmd(env).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
