package canon

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ParseSpecFile reads a YAML fixture file and unmarshals it into out.
func ParseSpecFile(path string, out *CanonicalTests) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read canonical fixture %s: %w", path, err)
	}
	return ParseSpecData(data, out)
}

// ParseSpecData unmarshals raw YAML fixture content into out.
func ParseSpecData(data []byte, out *CanonicalTests) error {
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal canonical fixture: %w", err)
	}
	return nil
}
