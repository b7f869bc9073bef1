package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/filetug/treetug/pkg/cli"
)

var (
	version = "dev"
	osExit  = os.Exit
	run     = cli.Execute
)

func main() {
	cli.Version = version
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		reportError(os.Stderr, err)
		osExit(1)
	}
}

func reportError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}
