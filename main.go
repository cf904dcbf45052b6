package main

import (
	"fmt"
	"os"

	"github.com/quarkusio/get-contributors/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main runs the get-contributors command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
