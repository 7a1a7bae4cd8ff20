//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Ingest stores every parse document in output/ into the register.
// See prd008-register for full requirements.
func Ingest() error {
	mg.Deps(Build)

	documents, err := filepath.Glob(filepath.Join("output", "*.json"))
	if err != nil {
		return err
	}
	if len(documents) == 0 {
		fmt.Println("[register] No parse documents in output/.")
		return nil
	}

	args := append([]string{"register", "store"}, documents...)
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("register store: %w", err)
	}
	return nil
}
