// Package main is the entry point for the checkgen CLI.
package main

import "checkgen.dev/pkg/checkgen/cmd"

func main() {
	cmd.Execute()
}
