package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

const minArgsCommand = 2

func main() {
	if len(os.Args) < minArgsCommand {
		usage(os.Stderr)
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "show":
		exitOnErr(cmdShow(ctx, os.Args[2:], os.Stdout))
	case "paths":
		exitOnErr(cmdPaths(ctx, os.Args[2:], os.Stdout))
	case "version":
		exitOnErr(cmdVersion(os.Stdout))
	case "help", "-h", "--help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %q\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "langconfig <command> [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  show [--format json|yaml|toml] [--config FILE] [--concurrent]")
	fmt.Fprintln(w, "  paths [--config FILE] <language>...")
	fmt.Fprintln(w, "  version")
}

func exitOnErr(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
