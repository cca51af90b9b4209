package main

import (
	"github.com/sghaida/inbean/inbean/srcscan"
	"github.com/spf13/cobra"
)

func newScanCmd(opts *options) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scan <package|dir> <Type> [Type...]",
		Short: "Parse fixtures declared in Go source",
		Long: `scan loads the package with go/packages and parses the named struct
types. Generic embedded structs are bound against the fixture.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := srcscan.Load(cmd.Context(), dir, args[0])
			if err != nil {
				return err
			}
			pkg, err := cat.PkgPath(args[0])
			if err != nil {
				return err
			}

			p := opts.parser()
			for _, name := range args[1:] {
				cls, err := cat.Class(pkg, name)
				if err != nil {
					return err
				}
				if err := p.Parse(cls); err != nil {
					return err
				}
			}
			return opts.print(p.Definitions())
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to load packages from (default: current directory)")
	return cmd
}
