package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const filePerm = 0o644

// WriteFile writes the generated file into its package directory and returns
// the path written.
func WriteFile(file *GeneratedFile) (string, error) {
	if file.Dir == "" {
		return "", fmt.Errorf("no package directory for %s", file.Filename)
	}

	outputPath := filepath.Join(file.Dir, file.Filename)

	if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
		return "", fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	return outputPath, nil
}
