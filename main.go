package main

import (
	"fmt"
	"os"

	"github.com/temirov/clidriver/cmd/cli"
	"github.com/temirov/clidriver/cmd/cli/tool"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the clidriver command-line application and mirrors the driven tool's exit code.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}
	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	os.Exit(tool.ExitStatus(executionError))
}
