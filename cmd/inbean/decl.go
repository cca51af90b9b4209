package main

import (
	"fmt"

	"github.com/sghaida/inbean/inbean/declarative"
	"github.com/spf13/cobra"
)

func newDeclCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "decl <file.yaml> [Class...]",
		Short: "Parse fixtures described in YAML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := declarative.Load(args[0])
			if err != nil {
				return err
			}

			names := args[1:]
			if len(names) == 0 {
				names = cat.Names()
			}

			p := opts.parser()
			for _, name := range names {
				cls, ok := cat.Class(name)
				if !ok {
					return fmt.Errorf("class %q not found in %s", name, args[0])
				}
				if err := p.Parse(cls); err != nil {
					return err
				}
			}
			return opts.print(p.Definitions())
		},
	}
}
