// Package main is the entry point for the wrctl CLI.
package main

import "github.com/terminusgps/wialon-registration/cmd/wrctl/cmd"

func main() {
	cmd.Execute()
}
