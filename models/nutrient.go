package models

// NutrientDefinition is one row of the static reference table.
type NutrientDefinition struct {
	Name            string  `json:"name" yaml:"name"`
	Target          float64 `json:"target" yaml:"target"`
	Unit            string  `json:"unit" yaml:"unit"`
	Purpose         string  `json:"purpose" yaml:"purpose"`
	Sources         string  `json:"sources" yaml:"sources"`
	Recommendations string  `json:"recommendations" yaml:"recommendations"`
}
