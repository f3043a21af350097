package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Cleanup removes every staging subdirectory of the output directory
// along with its contents, leaving the rendered artifacts that live
// directly inside it. Idempotent: running it on an already-clean
// directory is a no-op.
func (a *Archive) Cleanup() error {
	entries, err := os.ReadDir(a.outputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read output directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := os.RemoveAll(filepath.Join(a.outputDir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
	}
	return nil
}
