package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/compiler"
)

func newCheckCommand(verbosity *int, cfgPath *string) *cobra.Command {
	var (
		dimFlag string
		dumpAST bool
	)

	cmd := &cobra.Command{
		Use:   "check <module.kernel>",
		Short: "Validate a .kernel module without writing any artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := newLogger(*verbosity)
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			dim, err := parseDimensionality(dimFlag)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			p, err := compiler.New(cfg)
			if err != nil {
				return err
			}

			if dumpAST {
				f, err := p.Parse(args[0], string(data))
				if err != nil {
					return err
				}
				printer := ast.NewDebugPrinter()
				f.Accept(printer)
				fmt.Fprint(cmd.OutOrStdout(), printer.String())
			}

			if _, err := p.Compile(args[0], string(data), dim); err != nil {
				return err
			}
			l.Info("module is valid", "path", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dimFlag, "dim", "1", "dispatch iteration-space dimensionality: 1, 2, or 3")
	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST before validating")
	return cmd
}
