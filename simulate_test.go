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
	"errors"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// testParams returns settings for a farm that is built out from
// 100 to 1000 km² while it is harvested.
func testParams() Params {
	return Params{
		InitialSeaweed:         10000,
		InitialAreaBuilt:       100,
		InitialAreaUsed:        100,
		NewModuleAreaPerDay:    100,
		MinDensity:             DefaultMinDensity,
		MaxDensity:             DefaultMaxDensity,
		MaxArea:                1000,
		OptimalGrowthRate:      60,
		GrowthRate:             Scalar(0.5),
		InitialLag:             5,
		PercentUsableForGrowth: 50,
		DaysToRun:              200,
		HarvestLossFraction:    0.2,
	}
}

func TestSimulate(t *testing.T) {
	p := testParams()
	records, err := Simulate(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != p.DaysToRun {
		t.Fatalf("have %d records, want %d", len(records), p.DaysToRun)
	}
	var harvests, foodHarvests int
	for i, r := range records {
		if r.Day != i {
			t.Errorf("record %d has day %d", i, r.Day)
		}
		if r.AreaUsed > r.AreaBuilt || r.AreaBuilt > p.MaxArea {
			t.Errorf("day %d: used %g, built %g, max %g", i, r.AreaUsed, r.AreaBuilt, p.MaxArea)
		}
		if i <= p.InitialLag && r.AreaBuilt != p.InitialAreaBuilt {
			t.Errorf("day %d: area built %g during initial lag", i, r.AreaBuilt)
		}
		if r.Harvested() != (r.Density >= p.MaxDensity) {
			t.Errorf("day %d: harvested=%v at density %g", i, r.Harvested(), r.Density)
		}
		prevCounter := -1
		if i > 0 {
			prevCounter = records[i-1].HarvestIntervalCounter
			if r.CumulativeHarvestForFood < records[i-1].CumulativeHarvestForFood {
				t.Errorf("day %d: cumulative harvest decreased", i)
			}
		}
		if r.Harvested() {
			harvests++
			if r.HarvestIntervalCounter != 0 {
				t.Errorf("day %d: counter %d on harvest day", i, r.HarvestIntervalCounter)
			}
			if *r.HarvestInterval != float64(prevCounter+1) {
				t.Errorf("day %d: interval %g, want %d", i, *r.HarvestInterval, prevCounter+1)
			}
			if *r.HarvestWetWithLoss > *r.HarvestWet {
				t.Errorf("day %d: loss increased the harvest", i)
			}
		} else {
			if r.HarvestIntervalCounter != prevCounter+1 {
				t.Errorf("day %d: counter %d, want %d", i, r.HarvestIntervalCounter, prevCounter+1)
			}
			if r.HarvestWet != nil || r.HarvestForFood != nil || r.NewAreaUsed != nil {
				t.Errorf("day %d: harvest fields set without a harvest", i)
			}
		}
		if r.HarvestForFood != nil {
			foodHarvests++
			if *r.HarvestForFood < 0 {
				t.Errorf("day %d: negative food harvest", i)
			}
		}
	}
	if harvests != 17 || foodHarvests != 15 {
		t.Errorf("have %d harvests and %d food harvests, want 17 and 15", harvests, foodHarvests)
	}
	last := records[len(records)-1]
	if last.AreaBuilt != p.MaxArea || last.AreaUsed != p.MaxArea {
		t.Errorf("farm not completed: built %g, used %g", last.AreaBuilt, last.AreaUsed)
	}
	if !floats.EqualWithinAbsOrRel(last.CumulativeHarvestForFood, 2.9353720945728812e+07, 1e-6, 1e-6) {
		t.Errorf("cumulative harvest: have %g", last.CumulativeHarvestForFood)
	}
}

func TestSimulateBuildOut(t *testing.T) {
	p := testParams()
	p.InitialLag = 0
	p.BuildOut = func(day int) float64 { return float64(day) }
	records, err := Simulate(p)
	if err != nil {
		t.Fatal(err)
	}
	if records[0].NewModuleAreaPerDay != 0 || records[0].AreaBuilt != 100 {
		t.Errorf("day 0: built %g", records[0].AreaBuilt)
	}
	for i := 1; i < 5; i++ {
		if records[i].NewModuleAreaPerDay != float64(i) {
			t.Errorf("day %d: nominal area %g", i, records[i].NewModuleAreaPerDay)
		}
		want := records[i-1].AreaBuilt + float64(i)*p.PercentUsableForGrowth/100
		if records[i].AreaBuilt != want {
			t.Errorf("day %d: built %g, want %g", i, records[i].AreaBuilt, want)
		}
	}

	// No area is built when NewModuleAreaPerDay is zero, even with a schedule.
	p.NewModuleAreaPerDay = 0
	records, err = Simulate(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		if r.AreaBuilt != p.InitialAreaBuilt {
			t.Fatalf("day %d: built %g", r.Day, r.AreaBuilt)
		}
	}
}

func TestSimulateZeroGrowth(t *testing.T) {
	p := testParams()
	p.GrowthRate = Scalar(0)
	p.DaysToRun = 50
	records, err := Simulate(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		if r.Seaweed != p.InitialSeaweed || r.Harvested() || r.CumulativeHarvestForFood != 0 {
			t.Fatalf("day %d: %+v", r.Day, r)
		}
	}
}

func TestSimulateOneDay(t *testing.T) {
	p := testParams()
	p.DaysToRun = 1
	records, err := Simulate(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("have %d records", len(records))
	}
	want := p.InitialSeaweed * 1.3
	if !floats.EqualWithinAbsOrRel(records[0].Seaweed, want, 1e-9, 1e-12) {
		t.Errorf("seaweed: have %g, want %g", records[0].Seaweed, want)
	}
}

func TestSimulateDisableSelfShading(t *testing.T) {
	p := UnitParams(testParams())
	p.InitialSeaweed = 3000
	p.DaysToRun = 1
	shaded, err := Simulate(p)
	if err != nil {
		t.Fatal(err)
	}
	p.DisableSelfShading = true
	unshaded, err := Simulate(p)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbsOrRel(unshaded[0].Density, 3900, 1e-9, 1e-12) {
		t.Errorf("without shading: have %g, want 3900", unshaded[0].Density)
	}
	if shaded[0].Density >= unshaded[0].Density {
		t.Errorf("shading should reduce growth: %g >= %g", shaded[0].Density, unshaded[0].Density)
	}
}

func TestSimulateSeries(t *testing.T) {
	p := testParams()
	p.DaysToRun = 10
	series := make([]float64, 10)
	series[3] = 0.5
	p.GrowthRate = Series(series)
	records, err := Simulate(p)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range records {
		want := p.InitialSeaweed
		if i >= 3 {
			want *= 1.3
		}
		if !floats.EqualWithinAbsOrRel(r.Seaweed, want, 1e-9, 1e-12) {
			t.Errorf("day %d: have %g, want %g", i, r.Seaweed, want)
		}
	}
}

func TestSimulateAllocation(t *testing.T) {
	// A farm with much more area built than it can stock.
	p := Params{
		InitialSeaweed:         1200,
		InitialAreaBuilt:       100,
		InitialAreaUsed:        1,
		MinDensity:             DefaultMinDensity,
		MaxDensity:             DefaultMaxDensity,
		MaxArea:                100,
		OptimalGrowthRate:      60,
		GrowthRate:             Scalar(1),
		PercentUsableForGrowth: 50,
		DaysToRun:              30,
	}
	first := func(p Params) DailyRecord {
		records, err := Simulate(p)
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range records {
			if r.Harvested() {
				return r
			}
		}
		t.Fatal("no harvest")
		return DailyRecord{}
	}

	r := first(p)
	if r.HarvestForFood != nil {
		t.Error("there should not be enough seaweed for food")
	}
	wantArea := 1 + *r.HarvestWetWithLoss/p.MinDensity
	if !floats.EqualWithinAbsOrRel(r.AreaUsed, wantArea, 1e-9, 1e-12) {
		t.Errorf("area used: have %g, want %g", r.AreaUsed, wantArea)
	}
	if !floats.EqualWithinAbsOrRel(r.Seaweed, r.AreaUsed*p.MinDensity, 1e-9, 1e-12) {
		t.Errorf("seaweed %g should be at minimum density over %g km²", r.Seaweed, r.AreaUsed)
	}

	p.Allocation = AllocateByNeed
	r = first(p)
	if r.AreaUsed != p.InitialAreaBuilt {
		t.Errorf("AllocateByNeed: area used %g, want %g", r.AreaUsed, p.InitialAreaBuilt)
	}
}

func TestSimulateErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Params)
		check  func(err error) bool
	}{
		{
			name:   "used>built",
			modify: func(p *Params) { p.InitialAreaUsed = 200 },
			check:  isConfigurationError,
		},
		{
			name:   "zero seaweed",
			modify: func(p *Params) { p.InitialSeaweed = 0 },
			check:  isConfigurationError,
		},
		{
			name:   "max<min",
			modify: func(p *Params) { p.MaxDensity = 1000 },
			check:  isConfigurationError,
		},
		{
			name:   "no days",
			modify: func(p *Params) { p.DaysToRun = 0 },
			check:  isConfigurationError,
		},
		{
			name:   "harvest loss",
			modify: func(p *Params) { p.HarvestLossFraction = 20 },
			check:  isConfigurationError,
		},
		{
			name:   "max area",
			modify: func(p *Params) { p.MaxArea = 10 },
			check:  isConfigurationError,
		},
		{
			name:   "infinite max area",
			modify: func(p *Params) { p.MaxArea = math.Inf(1) },
			check:  isConfigurationError,
		},
		{
			name:   "short series",
			modify: func(p *Params) { p.GrowthRate = Series(make([]float64, 10)) },
			check: func(err error) bool {
				var e *InputShapeError
				return errors.As(err, &e) && e.Want == 200 && e.Have == 10
			},
		},
		{
			name: "negative seaweed",
			modify: func(p *Params) {
				p.OptimalGrowthRate = -400
				p.GrowthRate = Scalar(1)
			},
			check: func(err error) bool {
				var se *SimulationError
				var de *DomainError
				return errors.As(err, &se) && se.Day == 1 && errors.As(err, &de)
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := testParams()
			test.modify(&p)
			_, err := Simulate(p)
			if !test.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func isConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

func TestLog(t *testing.T) {
	l := logrus.New()
	var n int
	l.Hooks.Add(&countHook{n: &n})
	l.Level = logrus.DebugLevel

	p := testParams()
	f := NewFarm(p)
	f.RunFuncs = append(f.RunFuncs, Log(l))
	if err := f.Init(); err != nil {
		t.Fatal(err)
	}
	if err := f.Run(); err != nil {
		t.Fatal(err)
	}
	if n != 17 {
		t.Errorf("have %d log messages, want 17", n)
	}
}

type countHook struct{ n *int }

func (h *countHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *countHook) Fire(*logrus.Entry) error {
	*h.n++
	return nil
}
