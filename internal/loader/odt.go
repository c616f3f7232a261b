package loader

import (
	"fmt"

	"github.com/lu4p/cat"
)

// extractODT extracts text from an OpenDocument Text file.
func extractODT(path string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		return "", fmt.Errorf("extract ODT: %w", err)
	}
	return text, nil
}
