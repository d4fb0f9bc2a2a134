package utils

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"nutrilog/models"
)

// Catalog is the immutable nutrient reference table. Build it once at start-up
// and share it; nothing mutates it afterwards.
type Catalog struct {
	defs  map[string]models.NutrientDefinition
	order []string
}

func NewCatalog(defs []models.NutrientDefinition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, errors.New("nutrient catalog is empty")
	}
	c := &Catalog{
		defs:  make(map[string]models.NutrientDefinition, len(defs)),
		order: make([]string, 0, len(defs)),
	}
	for _, d := range defs {
		d.Name = strings.TrimSpace(d.Name)
		if d.Name == "" {
			return nil, errors.New("nutrient with empty name")
		}
		if _, dup := c.defs[d.Name]; dup {
			return nil, fmt.Errorf("duplicate nutrient %q", d.Name)
		}
		if math.IsNaN(d.Target) || math.IsInf(d.Target, 0) || d.Target < 0 {
			return nil, fmt.Errorf("nutrient %q: target must be a finite non-negative number", d.Name)
		}
		c.defs[d.Name] = d
		c.order = append(c.order, d.Name)
	}
	return c, nil
}

// Lookup reports whether name is a recognized nutrient.
func (c *Catalog) Lookup(name string) (models.NutrientDefinition, bool) {
	d, ok := c.defs[name]
	return d, ok
}

// Names returns nutrient names in table order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) All() []models.NutrientDefinition {
	out := make([]models.NutrientDefinition, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.defs[n])
	}
	return out
}

func (c *Catalog) Len() int { return len(c.order) }
