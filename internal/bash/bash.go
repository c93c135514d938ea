package bash

import (
	"context"
	"io"
	"os"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Global variable to track if exit-on-error is enabled (like bash 'set -e')
var exitOnError bool = false

// SetBuiltinHandler records 'set -e' and 'set +e'. It is a call handler
// because 'set' is a builtin and never reaches exec handlers. The arguments
// are passed through so the builtin still runs.
func SetBuiltinHandler() interp.CallHandlerFunc {
	return func(ctx context.Context, args []string) ([]string, error) {
		if len(args) == 0 || args[0] != "set" {
			return args, nil
		}

		for _, arg := range args[1:] {
			switch arg {
			case "-e":
				exitOnError = true
			case "+e":
				exitOnError = false
			}
		}

		return args, nil
	}
}

// ShouldExitOnError returns true if an rc file ran 'set -e'
func ShouldExitOnError() bool {
	return exitOnError
}

func RunBashScriptFromReader(ctx context.Context, runner *interp.Runner, reader io.Reader, name string) error {
	prog, err := syntax.NewParser().Parse(reader, name)
	if err != nil {
		return err
	}
	return runner.Run(ctx, prog)
}

func RunBashScriptFromFile(ctx context.Context, runner *interp.Runner, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return RunBashScriptFromReader(ctx, runner, f, filePath)
}
