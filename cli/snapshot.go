package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"travmd-form/models"
)

// loadSnapshot reads a saved form. Files ending in .yaml or .yml are YAML, anything else
// is JSON.
func loadSnapshot(path string) (models.FormSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.FormSnapshot{}, fmt.Errorf("failed to read form: %w", err)
	}

	var snapshot models.FormSnapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &snapshot)
	default:
		err = json.Unmarshal(data, &snapshot)
	}
	if err != nil {
		return models.FormSnapshot{}, fmt.Errorf("failed to parse form %s: %w", path, err)
	}
	return snapshot, nil
}
