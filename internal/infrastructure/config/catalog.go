package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// catalogFile is the on-disk layout of a flow catalog
type catalogFile struct {
	Flows []types.EndpointConfig `yaml:"flows" toml:"flows"`
}

// LoadCatalog reads a YAML or TOML flow catalog, chosen by file extension.
func LoadCatalog(path string) ([]types.EndpointConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data, filepath.Ext(path))
}

// ParseCatalog decodes catalog data. ext is ".yaml", ".yml" or ".toml".
func ParseCatalog(data []byte, ext string) ([]types.EndpointConfig, error) {
	var file catalogFile

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("invalid YAML catalog: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("invalid TOML catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (must be .yaml, .yml or .toml)", ext)
	}

	known := make(map[string]bool)
	for _, key := range types.FlowKeys() {
		known[key] = true
	}

	seen := make(map[string]bool, len(file.Flows))
	for i, entry := range file.Flows {
		if entry.Key == "" {
			return nil, fmt.Errorf("catalog flow[%d]: key required", i)
		}
		if !known[entry.Key] {
			return nil, fmt.Errorf("catalog flow[%d]: unknown flow key %q", i, entry.Key)
		}
		if seen[entry.Key] {
			return nil, fmt.Errorf("catalog flow[%d]: duplicate flow key %q", i, entry.Key)
		}
		seen[entry.Key] = true
	}

	return file.Flows, nil
}
