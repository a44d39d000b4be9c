// Package main provides the entry point for the sysperm CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/opencode-ai/sysperm/cmd/sysperm/commands"
)

func main() {
	// SYSPERM_* variables may live in a local .env during development.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
