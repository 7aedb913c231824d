// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recycling

import (
	"math"
	"sort"
	"strings"

	"github.com/danielhkuo/ecocondor/models"
)

// DefaultRate applies to materials missing from the table. Unknown
// materials are accepted, not rejected.
const DefaultRate = 5

// Points per kg or unit, keyed by lower-cased material name. Spanish names
// are what the mobile app sends; English aliases earn the same.
var rates = map[string]int64{
	"plastico":    10,
	"vidrio":      8,
	"papel":       5,
	"metal":       15,
	"organico":    3,
	"electronico": 25,

	"plastic":    10,
	"glass":      8,
	"paper":      5,
	"organic":    3,
	"electronic": 25,
}

// NormalizeMaterial is the stored form of a material name.
func NormalizeMaterial(material string) string {
	return strings.ToLower(strings.TrimSpace(material))
}

// RateFor returns the points per unit for material.
func RateFor(material string) int64 {
	if r, ok := rates[NormalizeMaterial(material)]; ok {
		return r
	}
	return DefaultRate
}

// Known reports whether material has its own rate.
func Known(material string) bool {
	_, ok := rates[NormalizeMaterial(material)]
	return ok
}

// PointsFor is round(quantity × rate), halves rounding up.
func PointsFor(material string, quantity float64) int64 {
	return int64(math.Round(quantity * float64(RateFor(material))))
}

// Rates lists the table sorted by material name.
func Rates() models.MaterialRates {
	out := models.MaterialRates{
		Rates:       make([]models.MaterialRate, 0, len(rates)),
		DefaultRate: DefaultRate,
	}
	for m, r := range rates {
		out.Rates = append(out.Rates, models.MaterialRate{Material: m, PointsPerUnit: r})
	}
	sort.Slice(out.Rates, func(i, j int) bool {
		return out.Rates[i].Material < out.Rates[j].Material
	})
	return out
}
