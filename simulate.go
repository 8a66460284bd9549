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
	"math"
)

// Minimum and maximum seaweed densities [t/km²], based on
// James, S.C. and Boriah, V. (2010).
const (
	DefaultMinDensity = 1200.
	DefaultMaxDensity = 3600.
)

// Allocation specifies how harvested seaweed is used to stock built but
// unused farm area when there is not enough of it to stock all of that area.
type Allocation int

const (
	// AllocateByBiomass stocks as much new area as the harvest can fill
	// at the minimum density.
	AllocateByBiomass Allocation = iota

	// AllocateByNeed stocks all of the built area regardless of how much
	// seaweed was harvested. It reproduces earlier model versions and does
	// not conserve biomass.
	AllocateByNeed
)

// BuildOutSchedule returns the module area [km²] that can be built on a
// given day.
type BuildOutSchedule func(day int) float64

// Params holds the settings for a farm simulation.
type Params struct {
	InitialSeaweed   float64 // t
	InitialAreaBuilt float64 // km²
	InitialAreaUsed  float64 // km²

	// NewModuleAreaPerDay is the module area built per day [km²]. If it
	// is zero no area is built, which is how the model is run to estimate
	// the productivity of a fixed area.
	NewModuleAreaPerDay float64

	// BuildOut, if not nil, replaces NewModuleAreaPerDay on each day
	// as long as NewModuleAreaPerDay is greater than zero.
	BuildOut BuildOutSchedule

	MinDensity float64 // t/km²
	MaxDensity float64 // t/km²
	MaxArea    float64 // km²

	// OptimalGrowthRate is the growth rate under ideal conditions [% per day].
	OptimalGrowthRate float64

	// GrowthRate is the fraction of the optimal growth rate achieved.
	GrowthRate GrowthRate

	// InitialLag is the number of days before any area is built.
	InitialLag int

	// PercentUsableForGrowth is the percentage of the module area that
	// seaweed can be grown on.
	PercentUsableForGrowth float64

	DaysToRun int

	// HarvestLossFraction is the fraction of each harvest that is lost.
	HarvestLossFraction float64

	// DisableSelfShading turns off the growth reduction at high densities.
	DisableSelfShading bool

	Allocation Allocation
}

// Validate checks that the settings in p describe a valid farm.
func (p *Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"InitialSeaweed", p.InitialSeaweed},
		{"InitialAreaBuilt", p.InitialAreaBuilt},
		{"InitialAreaUsed", p.InitialAreaUsed},
		{"MinDensity", p.MinDensity},
	}
	for _, v := range positive {
		if !(v.v > 0) || math.IsInf(v.v, 0) {
			return &ConfigurationError{Field: v.name, Value: v.v, Reason: "but should be > 0"}
		}
	}
	if p.InitialAreaUsed > p.InitialAreaBuilt {
		return &ConfigurationError{Field: "InitialAreaUsed", Value: p.InitialAreaUsed,
			Reason: "but should be <= InitialAreaBuilt"}
	}
	if !(p.NewModuleAreaPerDay >= 0) {
		return &ConfigurationError{Field: "NewModuleAreaPerDay", Value: p.NewModuleAreaPerDay,
			Reason: "but should be >= 0"}
	}
	if !(p.MaxDensity > p.MinDensity) {
		return &ConfigurationError{Field: "MaxDensity", Value: p.MaxDensity,
			Reason: "but should be > MinDensity"}
	}
	if !(p.MaxArea >= p.InitialAreaBuilt) {
		return &ConfigurationError{Field: "MaxArea", Value: p.MaxArea,
			Reason: "but should be >= InitialAreaBuilt"}
	}
	if math.IsInf(p.MaxArea, 0) {
		return &ConfigurationError{Field: "MaxArea", Value: p.MaxArea,
			Reason: "but should be finite"}
	}
	if math.IsNaN(p.OptimalGrowthRate) || math.IsInf(p.OptimalGrowthRate, 0) {
		return &ConfigurationError{Field: "OptimalGrowthRate", Value: p.OptimalGrowthRate,
			Reason: "but should be finite"}
	}
	if p.InitialLag < 0 {
		return &ConfigurationError{Field: "InitialLag", Value: float64(p.InitialLag),
			Reason: "but should be >= 0"}
	}
	if !(p.PercentUsableForGrowth >= 0 && p.PercentUsableForGrowth <= 100) {
		return &ConfigurationError{Field: "PercentUsableForGrowth", Value: p.PercentUsableForGrowth,
			Reason: "but should be between 0 and 100"}
	}
	if p.DaysToRun <= 0 {
		return &ConfigurationError{Field: "DaysToRun", Value: float64(p.DaysToRun),
			Reason: "but should be > 0"}
	}
	if !(p.HarvestLossFraction >= 0 && p.HarvestLossFraction <= 1) {
		return &ConfigurationError{Field: "HarvestLossFraction", Value: p.HarvestLossFraction,
			Reason: "but should be between 0 and 1"}
	}
	return p.GrowthRate.check(p.DaysToRun)
}

// NewFarm returns a farm that will be simulated with the settings in p.
// Additional functions can be added to the returned farm's RunFuncs
// before it is initialized.
func NewFarm(p Params) *Farm {
	return &Farm{
		Params:    p,
		InitFuncs: []FarmManipulator{SetInitialState()},
		RunFuncs: []FarmManipulator{
			BuildArea(),
			Grow(),
			Harvest(),
			Record(),
			DayLimit(p.DaysToRun),
		},
	}
}

// Simulate runs a farm simulation with the settings in p and returns one
// record for each day, where the index of each record is its day.
func Simulate(p Params) ([]DailyRecord, error) {
	f := NewFarm(p)
	if err := f.Init(); err != nil {
		return nil, err
	}
	if err := f.Run(); err != nil {
		return nil, err
	}
	if err := f.Cleanup(); err != nil {
		return nil, err
	}
	return f.Records, nil
}
