// Package main is the entry point for the phonegen CLI.
package main

import (
	"os"

	"phonegen/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
