// Package main is the entry point for the wialon-registration service.
package main

import (
	"os"

	"github.com/terminusgps/wialon-registration/cmd/wialon-registration/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
