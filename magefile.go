//go:build mage
// +build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Format runs gofmt on all Go files
func Format() error {
	fmt.Println("Running gofmt...")
	return sh.RunV("gofmt", "-w", ".")
}

// Vet runs go vet on all packages
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Test runs all tests
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "./...")
}

// Build builds the kernelc CLI and all packages
func Build() error {
	fmt.Println("Building packages...")
	return sh.RunV("go", "build", "./...")
}

// Check compiles every example .kernel module without writing artifacts
func Check() error {
	fmt.Println("Checking example modules...")
	examples := []string{"particle_collision"}
	for _, example := range examples {
		path := "examples/" + example + "/particle.kernel"
		if err := sh.RunV("go", "run", "./cmd/kernelc", "check", path); err != nil {
			return fmt.Errorf("failed to check %s: %w", example, err)
		}
	}
	return nil
}

// Generate compiles every example .kernel module and writes its artifacts
// alongside the source.
func Generate() error {
	fmt.Println("Regenerating example artifacts...")
	examples := []string{"particle_collision"}
	for _, example := range examples {
		dir := "examples/" + example
		path := dir + "/particle.kernel"
		if err := sh.RunV("go", "run", "./cmd/kernelc", "build", path, "--out", dir); err != nil {
			return fmt.Errorf("failed to generate %s: %w", example, err)
		}
	}
	return nil
}

// PreCommit runs all pre-commit checks (format, vet, test, build)
func PreCommit() error {
	fmt.Println("Running pre-commit checks...")
	mg.Deps(Format)
	mg.Deps(Vet)
	mg.Deps(Test)
	mg.Deps(Build)
	fmt.Println("✓ All pre-commit checks passed!")
	return nil
}

// CI runs all CI checks (same as PreCommit plus a check pass over examples)
func CI() error {
	fmt.Println("Running CI checks...")
	if err := PreCommit(); err != nil {
		return err
	}
	mg.Deps(Check)
	fmt.Println("✓ All CI checks passed!")
	return nil
}

// Clean removes build artifacts and generated files
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	patterns := []string{
		"examples/*/shader.wgsl",
		"examples/*/mirror.go",
		"examples/*/facade.go",
		"*.test",
	}
	for _, pattern := range patterns {
		if err := sh.Run("sh", "-c", "rm -f "+pattern); err != nil {
			fmt.Printf("Warning: failed to clean %s: %v\n", pattern, err)
		}
	}
	fmt.Println("✓ Clean complete!")
	return nil
}

// Default target runs PreCommit
var Default = PreCommit
