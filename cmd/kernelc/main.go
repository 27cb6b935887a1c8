// Command kernelc compiles .kernel host modules into WGSL shader text, a
// parsed module descriptor, a CPU-side mirror package, and typed façade
// builders. Grounded on the CLI shape gpu-control-plane's cmd/*/main.go
// entrypoints use (cobra root command, flags bound via pflag, fatal errors
// reported through a structured logger) rather than guix's WASM-only
// runtime entrypoint, which has no CLI surface to imitate.
package main

import (
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/gaarutyunov/kernelc/internal/logging"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		verbosity int
		cfgPath   string
	)

	root := &cobra.Command{
		Use:           "kernelc",
		Short:         "Compile .kernel host modules into GPU shader artifacts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "log verbosity (0=info, higher=debug)")
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file (defaults to env-only)")

	root.AddCommand(newBuildCommand(&verbosity, &cfgPath))
	root.AddCommand(newCheckCommand(&verbosity, &cfgPath))
	return root
}

func newLogger(verbosity int) logr.Logger {
	return logging.New(verbosity)
}
