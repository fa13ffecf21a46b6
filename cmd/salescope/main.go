// Package main is the entry point for the salescope CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/salescope/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
