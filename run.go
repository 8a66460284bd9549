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
	"github.com/sirupsen/logrus"
)

// kgPerM2PerTPerKm2 converts a density in t/km² to kg/m².
const kgPerM2PerTPerKm2 = 1. / 1000.

// SetInitialState checks the farm parameters and sets the starting state
// of the farm from them.
func SetInitialState() FarmManipulator {
	return func(f *Farm) error {
		p := &f.Params
		if err := p.Validate(); err != nil {
			return err
		}
		f.State = State{
			AreaBuilt: p.InitialAreaBuilt,
			AreaUsed:  p.InitialAreaUsed,
			Seaweed:   p.InitialSeaweed,
			Density:   p.InitialSeaweed / p.InitialAreaUsed,
		}
		f.Day = 0
		f.Done = false
		f.Records = make([]DailyRecord, 0, p.DaysToRun)
		return nil
	}
}

// BuildArea returns a function that builds new farm area once the
// initial lag is over, until the maximum area is reached.
func BuildArea() FarmManipulator {
	return func(f *Farm) error {
		p := &f.Params
		if f.Day <= p.InitialLag || f.AreaBuilt >= p.MaxArea {
			return nil
		}
		nominal := p.NewModuleAreaPerDay
		if nominal > 0 && p.BuildOut != nil {
			nominal = p.BuildOut(f.Day)
		}
		if nominal < 0 {
			nominal = 0
		}
		f.today.NewModuleAreaPerDay = nominal
		f.AreaBuilt += nominal * p.PercentUsableForGrowth / 100
		if f.AreaBuilt > p.MaxArea {
			f.AreaBuilt = p.MaxArea
		}
		return nil
	}
}

// Grow returns a function that lets the seaweed grow for one day and
// updates the seaweed density.
func Grow() FarmManipulator {
	return func(f *Farm) error {
		p := &f.Params
		shading := 1.
		if !p.DisableSelfShading {
			var err error
			shading, err = SelfShading(f.Density * kgPerM2PerTPerKm2)
			if err != nil {
				return err
			}
		}
		f.Seaweed *= ActualGrowthRate(p.OptimalGrowthRate, p.GrowthRate.At(f.Day), shading)
		f.Density = f.Seaweed / f.AreaUsed
		return nil
	}
}

// Harvest returns a function that harvests the farm when the seaweed
// density has reached the maximum density. The harvest first restocks
// the used area to the minimum density, then stocks as much of the built
// but unused area as possible; anything left is food. The days since the
// last harvest are counted here as well.
func Harvest() FarmManipulator {
	return func(f *Farm) error {
		p := &f.Params
		if f.Density >= p.MaxDensity {
			interval := float64(f.HarvestIntervalCounter)
			f.HarvestIntervalCounter = 0

			remaining := f.AreaUsed * p.MinDensity
			wet := f.Seaweed - remaining
			wetWithLoss := wet * (1 - p.HarvestLossFraction)
			f.StockingNeed = (f.AreaBuilt - f.AreaUsed) * p.MinDensity

			var newArea float64
			if f.StockingNeed > wetWithLoss {
				// Not enough to stock everything: all of the harvest
				// goes back into the water.
				switch p.Allocation {
				case AllocateByNeed:
					newArea = f.StockingNeed / p.MinDensity
				default:
					newArea = wetWithLoss / p.MinDensity
				}
				f.AreaUsed += newArea
				f.Seaweed = remaining + wetWithLoss
			} else {
				food := wetWithLoss - f.StockingNeed
				f.CumulativeHarvestForFood += food
				f.today.HarvestForFood = &food
				newArea = f.StockingNeed / p.MinDensity
				f.AreaUsed += newArea
				f.Seaweed = f.AreaUsed * p.MinDensity
			}
			if f.AreaUsed > f.AreaBuilt {
				f.AreaUsed = f.AreaBuilt
			}

			f.today.HarvestInterval = &interval
			f.today.SeaweedRemainingToGrow = &remaining
			f.today.HarvestWet = &wet
			f.today.HarvestWetWithLoss = &wetWithLoss
			f.today.NewAreaUsed = &newArea
		}
		// Recorded after any reset, so harvest days show 0.
		f.today.HarvestIntervalCounter = f.HarvestIntervalCounter
		f.HarvestIntervalCounter++
		return nil
	}
}

// Record returns a function that appends the state of the farm at the
// end of the day to f.Records.
func Record() FarmManipulator {
	return func(f *Farm) error {
		r := f.today
		r.Day = f.Day
		r.AreaBuilt = f.AreaBuilt
		r.AreaUsed = f.AreaUsed
		r.Seaweed = f.Seaweed
		r.Density = f.Density
		r.CumulativeHarvestForFood = f.CumulativeHarvestForFood
		r.StockingNeed = f.StockingNeed
		f.Records = append(f.Records, r)
		return nil
	}
}

// DayLimit returns a function that sets f.Done once numDays days
// have been simulated.
func DayLimit(numDays int) FarmManipulator {
	return func(f *Farm) error {
		if f.Day+1 >= numDays {
			f.Done = true
		}
		return nil
	}
}

// Log returns a function that writes a message to l every time the
// farm is harvested.
func Log(l logrus.FieldLogger) FarmManipulator {
	return func(f *Farm) error {
		if f.today.HarvestInterval == nil {
			return nil
		}
		fields := logrus.Fields{
			"day":                   f.Day,
			"days_since_harvest":    *f.today.HarvestInterval,
			"harvest_wet":           *f.today.HarvestWet,
			"harvest_wet_with_loss": *f.today.HarvestWetWithLoss,
			"area_used":             f.AreaUsed,
			"area_built":            f.AreaBuilt,
		}
		if f.today.HarvestForFood != nil {
			fields["harvest_for_food"] = *f.today.HarvestForFood
		}
		l.WithFields(fields).Debug("harvest")
		return nil
	}
}
