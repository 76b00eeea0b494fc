// Package main provides the entry point for the rgbridge CLI.
package main

import (
	"os"

	"github.com/Cyclone1070/rgbridge/cmd/rgbridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
