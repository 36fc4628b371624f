// Command seeded-generator writes seeded encode/decode code for the
// annotated types of Go packages.
//
// Usage:
//
//	seeded-generator generate ./...
//	seeded-generator generate --check ./...
//	seeded-generator inspect ./pkg
package main

import (
	"os"

	"seeded-generator/internal/cli"
)

func main() {
	if err := cli.Execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
