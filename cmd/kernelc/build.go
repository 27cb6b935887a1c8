package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gaarutyunov/kernelc/internal/cache"
	"github.com/gaarutyunov/kernelc/internal/logging"
	"github.com/gaarutyunov/kernelc/pkg/kernel/compiler"
	"github.com/gaarutyunov/kernelc/pkg/kernel/config"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
)

func newBuildCommand(verbosity *int, cfgPath *string) *cobra.Command {
	var (
		outDir  string
		dimFlag string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "build <module.kernel>",
		Short: "Compile a .kernel module and write its shader, mirror, and façade artifacts",
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

			metrics := compiler.NewMetrics(prometheus.DefaultRegisterer)
			c, err := cache.Load(filepath.Join(cfg.CacheDir, "hashes.json"))
			if err != nil {
				return err
			}

			srcPath := args[0]
			needsRebuild, err := c.NeedsRegeneration(srcPath)
			if err != nil {
				return err
			}
			if !needsRebuild && !force {
				metrics.CacheHits.Inc()
				l.Info("module unchanged, skipping recompile", "path", srcPath)
				return nil
			}

			data, err := os.ReadFile(srcPath)
			if err != nil {
				return err
			}

			p, err := compiler.New(cfg)
			if err != nil {
				return err
			}

			metrics.Compiles.Inc()
			var result *compiler.Result
			start := time.Now()
			timedErr := logging.Timed(l, "compile", func() error {
				result, err = p.Compile(srcPath, string(data), dim)
				return err
			})
			metrics.CompileSeconds.Observe(time.Since(start).Seconds())
			if timedErr != nil {
				metrics.RecordError(timedErr)
				logging.FatalCompile(l, timedErr)
				return timedErr
			}

			if err := writeArtifacts(outDir, result); err != nil {
				return err
			}
			if err := c.Save(); err != nil {
				return err
			}
			l.Info("compiled kernel module", "path", srcPath, "out", outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write generated artifacts into")
	cmd.Flags().StringVar(&dimFlag, "dim", "1", "dispatch iteration-space dimensionality: 1, 2, or 3")
	cmd.Flags().BoolVar(&force, "force", false, "recompile even if the source hash is unchanged")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func parseDimensionality(s string) (descriptor.Dimensionality, error) {
	switch s {
	case "1":
		return descriptor.Dim1, nil
	case "2":
		return descriptor.Dim2, nil
	case "3":
		return descriptor.Dim3, nil
	default:
		return 0, fmt.Errorf("invalid --dim %q: must be 1, 2, or 3", s)
	}
}

func writeArtifacts(outDir string, result *compiler.Result) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	files := map[string]string{
		"shader.wgsl": result.ShaderText,
		"mirror.go":   result.MirrorText,
		"facade.go":   result.FacadeText,
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(outDir, name), []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}
