package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/sghaida/inbean/inbean"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

type options struct {
	format  string
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{Level: level}))
}

func (o *options) parser() *inbean.Parser {
	return inbean.NewParser(inbean.WithLogger(o.logger()))
}

func (o *options) print(defs *inbean.Definitions) error {
	return render(o.stdout, o.format, defs)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "inbean",
		Short: "Show the mocks and spies a test fixture injects into other beans.",
		Long: `inbean scans a test fixture for mock and spy requests that target
beans other than the fixture itself, and prints one entry per distinct
mock/spy definition with every bean it must be injected into.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatJSON, formatYAML, formatDump:
				return nil
			default:
				return fmt.Errorf("unknown format %q (want json, yaml or dump)", opts.format)
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.format, "format", formatJSON, "Output format: json, yaml or dump")
	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log every merged definition to stderr")

	root.AddCommand(newScanCmd(opts), newDeclCmd(opts), newVersionCmd(opts))
	return root
}

func newVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the version of inbean",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(opts.stdout, "inbean %s\n", version)
		},
	}
}
