// Package main provides the objpack CLI tool for packing files into
// self-describing compressed artifacts and unpacking them again.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
