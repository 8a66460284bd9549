/*
Copyright © 2023 the Seaweed Scale-Up authors.
This file is part of the Seaweed Scale-Up Model.

The Seaweed Scale-Up Model is free software: you can redistribute it and/or
modify it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

The Seaweed Scale-Up Model is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the Seaweed Scale-Up Model.  If not, see <http://www.gnu.org/licenses/>.
*/

package seaweed

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/unit"
	"github.com/spf13/cast"
)

// literatureNames are the values that must be present in a literature
// parameter table.
var literatureNames = []string{
	"calorie_demand",                           // kcal/person/day
	"population",                               // people
	"food_waste_in_catastrophe",                // %
	"seedling_line_length_per_longline",        // m
	"seedling_line_per_longline",               // -
	"length_of_module",                         // m
	"width_of_module",                          // m
	"longline_per_module",                      // -
	"buoys_per_longline",                       // -
	"longline_length",                          // m
	"longline_density",                         // t/km
	"seedling_line_density",                    // t/km
	"synthetic_fiber_production_global_useful", // t/year
	"runtime",                                  // % of the day machines run
	"production_year",                          // t/year of rope
	"cost_per_longline_machine",                // $
	"cost_per_seedling_line_machine",           // $
	"increased_cost_due_to_rapid_tooling",      // %
}

// Parameters holds literature values describing seaweed farm construction
// and values derived from them. It is created once by NewParameters and
// is read-only afterwards.
type Parameters struct {
	values map[string]float64

	// GlobalFoodDemandInCatastrophe is the global calorie demand including
	// waste [kcal/day].
	GlobalFoodDemandInCatastrophe float64

	// WeightRopeTotalPerArea is the mass of rope needed to build
	// one km² of farm [t/km²].
	WeightRopeTotalPerArea float64

	// SyntheticFiberPerDay is the useful global synthetic fiber
	// production [t/day].
	SyntheticFiberPerDay float64

	// NewModuleAreaPerDay is the farm area that can be built each day
	// from the global synthetic fiber production [km²/day].
	NewModuleAreaPerDay float64

	// TotalCostRopeMachinery is the cost of the rope making machines
	// needed to twist all synthetic fiber into rope [$].
	TotalCostRopeMachinery float64
}

// LoadParameters reads a literature parameter table from the TOML
// file at path. See ReadParameters.
func LoadParameters(path string) (Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("seaweed: opening parameter file: %v", err)
	}
	defer f.Close()
	return ReadParameters(f)
}

// ReadParameters reads a flat TOML table of named literature values
// and calculates the derived parameters.
func ReadParameters(r io.Reader) (Parameters, error) {
	var raw map[string]interface{}
	if _, err := toml.DecodeReader(r, &raw); err != nil {
		return Parameters{}, fmt.Errorf("seaweed: parsing parameter file: %v", err)
	}
	table := make(map[string]float64, len(raw))
	for k, v := range raw {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return Parameters{}, fmt.Errorf("seaweed: parameter %s: %v", k, err)
		}
		table[k] = f
	}
	return NewParameters(table)
}

// NewParameters creates a parameter set from a table of literature values,
// adding the derived farm design, material and machinery values.
func NewParameters(table map[string]float64) (Parameters, error) {
	v := make(map[string]float64, len(table)+24)
	for k, val := range table {
		v[k] = val
	}
	for _, name := range literatureNames {
		if _, ok := v[name]; !ok {
			return Parameters{}, &ConfigurationError{Field: name, Value: math.NaN(),
				Reason: "is missing from the parameter table"}
		}
	}
	p := Parameters{values: v}

	// Global food demand.
	v["global_food_demand_in_catastrophe"] = v["calorie_demand"] * v["population"] *
		(1 + v["food_waste_in_catastrophe"]/100)

	// Farm design.
	v["seedling_line_length"] = v["seedling_line_length_per_longline"] / v["seedling_line_per_longline"]
	v["space_between_seedling_line"] = v["length_of_module"] / v["seedling_line_per_longline"]

	// Farm design per km².
	v["modules_per_area"] = 1e6 / (v["length_of_module"] * v["width_of_module"])
	v["longline_per_area"] = v["longline_per_module"] * v["modules_per_area"]
	v["seedling_line_per_area"] = v["modules_per_area"] * v["longline_per_module"] * v["seedling_line_per_longline"]
	v["buoys_per_area"] = v["modules_per_area"] * v["longline_per_module"] * v["buoys_per_longline"]
	v["length_longline_per_area"] = v["longline_per_area"] * v["longline_length"] / 1000
	v["length_seedling_line_per_area"] = v["seedling_line_per_area"] * v["seedling_line_length"] / 1000
	v["weight_longline_per_area"] = v["length_longline_per_area"] * v["longline_density"]
	v["weight_seedling_line_per_area"] = v["length_seedling_line_per_area"] * v["seedling_line_density"]
	v["weight_rope_total_per_area"] = v["weight_longline_per_area"] + v["weight_seedling_line_per_area"]

	// Synthetic fiber and scaling.
	v["synthetic_fiber_production_global_day"] = v["synthetic_fiber_production_global_useful"] / 365
	area, err := moduleAreaPerDay(v["synthetic_fiber_production_global_day"], v["weight_rope_total_per_area"])
	if err != nil {
		return Parameters{}, err
	}
	v["new_module_area_per_day"] = area

	// Rope machinery.
	v["production_rate_per_longline_machine"] = 2502. / 1000 * (24. / 8) * v["runtime"] / 100
	v["production_rate_per_seedling_line_machine"] = 71. / 1000 * (24. / 8) * v["runtime"] / 100
	v["production_day"] = v["production_year"] / 365
	v["upscale_needed_to_twist_all_synthetic_fiber"] = v["synthetic_fiber_production_global_day"] / v["production_day"]
	v["longline_machines_needed"] = v["new_module_area_per_day"] *
		(v["weight_longline_per_area"] / v["production_rate_per_longline_machine"])
	v["seedling_line_machines_needed"] = v["new_module_area_per_day"] *
		v["weight_seedling_line_per_area"] / v["production_rate_per_seedling_line_machine"]
	tooling := 1 + v["increased_cost_due_to_rapid_tooling"]/100
	v["total_cost_longline_machines"] = v["cost_per_longline_machine"] * v["longline_machines_needed"] * tooling
	v["total_cost_seedling_line_machines"] = v["cost_per_seedling_line_machine"] * v["seedling_line_machines_needed"] * tooling
	v["total_cost_rope_machinery"] = v["total_cost_longline_machines"] + v["total_cost_seedling_line_machines"]

	p.GlobalFoodDemandInCatastrophe = v["global_food_demand_in_catastrophe"]
	p.WeightRopeTotalPerArea = v["weight_rope_total_per_area"]
	p.SyntheticFiberPerDay = v["synthetic_fiber_production_global_day"]
	p.NewModuleAreaPerDay = v["new_module_area_per_day"]
	p.TotalCostRopeMachinery = v["total_cost_rope_machinery"]
	return p, nil
}

const (
	kgPerTon      = 1000.
	secondsPerDay = 86400.
	m2PerKm2      = 1e6
)

var kgPerM2 = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -2}
var kgPerSecond = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -1}
var m2PerSecond = unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -1}

// moduleAreaPerDay returns the farm area [km²/day] that can be built from
// fiberPerDay [t/day] of rope when each km² needs ropePerArea [t/km²].
func moduleAreaPerDay(fiberPerDay, ropePerArea float64) (float64, error) {
	fiber := unit.New(fiberPerDay*kgPerTon/secondsPerDay, kgPerSecond)
	rope := unit.New(ropePerArea*kgPerTon/m2PerKm2, kgPerM2)
	area := unit.Div(fiber, rope)
	if err := area.Check(m2PerSecond); err != nil {
		return 0, fmt.Errorf("seaweed: new module area: %v", err)
	}
	return area.Value() * secondsPerDay / m2PerKm2, nil
}

// Get returns the literature or derived value with the given name.
func (p Parameters) Get(name string) (float64, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Names returns the names of all values in p in alphabetical order.
func (p Parameters) Names() []string {
	names := make([]string, 0, len(p.values))
	for n := range p.values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
