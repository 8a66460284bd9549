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

// Package seaweed models the scale-up of global seaweed farming after an
// abrupt loss of conventional agriculture. A farm is stepped forward one
// day at a time: farm area is built, seaweed grows subject to self
// shading, and the farm is harvested whenever the seaweed density
// reaches its maximum. Harvested seaweed first stocks newly built area and
// the remainder is available as food.
package seaweed

// Version gives the version number.
const Version = "1.0.0"

// State holds the mutable state of a single farm simulation.
type State struct {
	AreaBuilt float64 // km²
	AreaUsed  float64 // km²
	Seaweed   float64 // wet biomass, t
	Density   float64 // t/km²

	// HarvestIntervalCounter is the number of days since the last harvest.
	HarvestIntervalCounter int

	// CumulativeHarvestForFood is the total harvest available as food [t].
	CumulativeHarvestForFood float64

	// StockingNeed is the biomass that was needed to stock all built but
	// unused area at the most recent harvest [t].
	StockingNeed float64
}

// DailyRecord is the output for one simulated day. The pointer fields are
// only set on days when the farm was harvested.
type DailyRecord struct {
	Day int

	AreaBuilt float64
	AreaUsed  float64
	Seaweed   float64
	Density   float64

	// HarvestIntervalCounter is the number of days since the last harvest
	// as of this day's harvest check. It is 0 on harvest days.
	HarvestIntervalCounter int

	CumulativeHarvestForFood float64
	StockingNeed             float64

	// NewModuleAreaPerDay is the nominal module area built on this day
	// [km²], before accounting for the fraction usable for growth.
	NewModuleAreaPerDay float64

	HarvestInterval        *float64 // days since the previous harvest
	HarvestForFood         *float64 // t
	HarvestWet             *float64 // t
	HarvestWetWithLoss     *float64 // t
	NewAreaUsed            *float64 // km²
	SeaweedRemainingToGrow *float64 // t
}

// Harvested reports whether the farm was harvested on this day.
func (r *DailyRecord) Harvested() bool { return r.HarvestInterval != nil }

// FarmManipulator is a function that operates on a farm.
type FarmManipulator func(f *Farm) error

// Farm holds the current state of a farm simulation. A Farm is owned by
// a single run and must not be shared between goroutines.
type Farm struct {
	State

	// Params are the settings the farm was created with. They are not
	// modified by the simulation.
	Params Params

	// Day is the index of the day currently being simulated.
	Day int

	// Done specifies whether the simulation is finished.
	Done bool

	// Records holds one record for every completed day.
	Records []DailyRecord

	// today holds the event fields for the day being simulated.
	today DailyRecord

	// InitFuncs are functions to be called in the given order
	// at the beginning of the simulation.
	InitFuncs []FarmManipulator

	// RunFuncs are functions to be called in the given order repeatedly
	// until "Done" is true. Each call corresponds to one day.
	RunFuncs []FarmManipulator

	// CleanupFuncs are functions to be called in the given order
	// after the simulation has finished.
	CleanupFuncs []FarmManipulator
}

// Init initializes the simulation by running f.InitFuncs.
func (f *Farm) Init() error {
	for _, fn := range f.InitFuncs {
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// Run carries out the simulation by running f.RunFuncs once per day
// until f.Done is true. Errors are annotated with the day they occurred on.
func (f *Farm) Run() error {
	for !f.Done {
		f.today = DailyRecord{Day: f.Day}
		for _, fn := range f.RunFuncs {
			if err := fn(f); err != nil {
				return &SimulationError{Day: f.Day, Wrapped: err}
			}
		}
		f.Day++
	}
	return nil
}

// Cleanup finishes the simulation by running f.CleanupFuncs.
func (f *Farm) Cleanup() error {
	for _, fn := range f.CleanupFuncs {
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
