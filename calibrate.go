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

// Calibration holds the stabilized harvest cycle of a 1 km² reference farm.
type Calibration struct {
	// Productivity is the food harvested per area and day [t/km²/day].
	Productivity float64

	// StableHarvestInterval is the number of days between the last two
	// harvests.
	StableHarvestInterval float64

	// StableHarvestForFood is the food obtained from the last harvest
	// that produced food [t].
	StableHarvestForFood float64
}

// UnitParams returns a copy of template that describes a 1 km² reference
// farm that is fully built and stocked at the start and never grows.
func UnitParams(template Params) Params {
	p := template
	p.InitialSeaweed = 1
	p.InitialAreaBuilt = 1
	p.InitialAreaUsed = 1
	p.MaxArea = 1
	p.NewModuleAreaPerDay = 0
	p.BuildOut = nil
	p.InitialLag = 0
	return p
}

// Calibrate runs the reference farm described by UnitParams(template)
// and derives its productivity from the last harvest cycle. If the farm
// never produces food within template.DaysToRun days, or its last food
// harvest is empty, ErrInsufficientProductivity is returned.
func Calibrate(template Params) (Calibration, error) {
	records, err := Simulate(UnitParams(template))
	if err != nil {
		return Calibration{}, err
	}
	var interval, food *float64
	for i := len(records) - 1; i >= 0 && (interval == nil || food == nil); i-- {
		r := &records[i]
		if interval == nil && r.HarvestInterval != nil {
			interval = r.HarvestInterval
		}
		if food == nil && r.HarvestForFood != nil {
			food = r.HarvestForFood
		}
	}
	if interval == nil || food == nil || *interval == 0 || !(*food > 0) {
		return Calibration{}, ErrInsufficientProductivity
	}
	return Calibration{
		Productivity:          *food / *interval,
		StableHarvestInterval: *interval,
		StableHarvestForFood:  *food,
	}, nil
}

// Productivity returns the food produced per km² and day by the reference
// farm described by UnitParams(template). See Calibrate.
func Productivity(template Params) (float64, error) {
	c, err := Calibrate(template)
	if err != nil {
		return 0, err
	}
	return c.Productivity, nil
}

// RequiredArea returns the farm area [km²] needed to harvest
// seaweedNeededPerDay [t/day] at the given productivity [t/km²/day].
func RequiredArea(seaweedNeededPerDay, productivity float64) float64 {
	return seaweedNeededPerDay / productivity
}
