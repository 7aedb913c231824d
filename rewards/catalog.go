// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rewards

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/ecocondor/models"
)

type catalogEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	PointsCost  int64  `yaml:"pointsCost"`
	Available   *bool  `yaml:"available"`
}

type catalogFile struct {
	Rewards []catalogEntry `yaml:"rewards"`
}

// LoadCatalog reads a rewards YAML file:
//
//	rewards:
//	  - id: bolsa-reutilizable
//	    name: Bolsa reutilizable
//	    pointsCost: 60
//	    available: true
//
// available defaults to true when omitted.
func LoadCatalog(path string) ([]models.Reward, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) ([]models.Reward, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	seen := make(map[string]bool, len(f.Rewards))
	out := make([]models.Reward, 0, len(f.Rewards))
	for i, e := range f.Rewards {
		if e.ID == "" {
			return nil, fmt.Errorf("reward %d: id is required", i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("reward %q: duplicate id", e.ID)
		}
		seen[e.ID] = true
		if e.Name == "" {
			return nil, fmt.Errorf("reward %q: name is required", e.ID)
		}
		if e.PointsCost <= 0 {
			return nil, fmt.Errorf("reward %q: pointsCost must be positive", e.ID)
		}

		available := true
		if e.Available != nil {
			available = *e.Available
		}
		out = append(out, models.Reward{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			PointsCost:  e.PointsCost,
			Available:   available,
		})
	}
	return out, nil
}
