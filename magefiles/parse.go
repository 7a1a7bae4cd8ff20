//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

// Parse extracts every transcription in data/transcriptions, writing
// JSON and JavaScript artifacts into output/.
// See prd003-structured-extraction, prd007-export for full requirements.
func Parse() error {
	mg.Deps(Build)

	transcriptions, err := filepath.Glob(filepath.Join("data", "transcriptions", "*.xml"))
	if err != nil {
		return err
	}
	if len(transcriptions) == 0 {
		fmt.Println("[parse] No transcriptions in data/transcriptions.")
		return nil
	}

	for _, path := range transcriptions {
		base := strings.TrimSuffix(filepath.Base(path), ".xml")
		cmd := exec.Command(filepath.Join(binDir, binName), "parse", path,
			"--json", filepath.Join("output", base+".json"),
			"--js", filepath.Join("output", base+".js"))
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return nil
}
