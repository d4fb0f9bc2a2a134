package config

import (
	_ "embed"
	"fmt"
	"os"

	"nutrilog/models"
	"nutrilog/utils"

	"gopkg.in/yaml.v3"
)

//go:embed nutrients.yaml
var defaultNutrients []byte

type nutrientFile struct {
	Nutrients []models.NutrientDefinition `yaml:"nutrients"`
}

// LoadCatalog reads the nutrient table from path, or the built-in table when
// path is empty.
func LoadCatalog(path string) (*utils.Catalog, error) {
	raw := defaultNutrients
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read nutrients file: %w", err)
		}
		raw = b
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (*utils.Catalog, error) {
	var f nutrientFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse nutrients: %w", err)
	}
	return utils.NewCatalog(f.Nutrients)
}
