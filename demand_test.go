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
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestSeaweedNeed(t *testing.T) {
	tests := []struct {
		d    Demand
		want float64
	}{
		{
			d: Demand{Population: 1e6, CaloriesPerPersonPerDay: 2000, CaloriesPerTonWet: 1e6,
				FoodLimit: 10},
			want: 200,
		},
		{
			d: Demand{Population: 1e6, CaloriesPerPersonPerDay: 2000, FoodWaste: 0.14,
				CaloriesPerTonWet: 1e6, FoodLimit: 5, FeedLimit: 3, BiofuelLimit: 2},
			want: 228,
		},
		{
			d: Demand{Population: 7.8e9, CaloriesPerPersonPerDay: 2250, FoodWaste: 0.14,
				CaloriesPerTonWet: 286000, FoodLimit: 10, FeedLimit: 10, BiofuelLimit: 10},
			want: 20986363.636363637,
		},
		{
			d:    Demand{Population: 1e6, CaloriesPerPersonPerDay: 2000, CaloriesPerTonWet: 1e6},
			want: 0,
		},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.want), func(t *testing.T) {
			have := SeaweedNeed(test.d)
			if !floats.EqualWithinAbsOrRel(have, test.want, 1e-9, 1e-12) {
				t.Errorf("have %g, want %g", have, test.want)
			}
		})
	}
}

func TestFarmAreaPerDay(t *testing.T) {
	tests := []struct {
		day  int
		want float64
	}{
		{day: 0, want: 5.845464301073385},
		{day: 100, want: 636.7068862361671},
		{day: 1000, want: 4115.076786127705},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.day), func(t *testing.T) {
			have := FarmAreaPerDay(test.day)
			if !floats.EqualWithinAbsOrRel(have, test.want, 1e-9, 1e-12) {
				t.Errorf("have %g, want %g", have, test.want)
			}
		})
	}
	for day := 1; day < 1000; day++ {
		if FarmAreaPerDay(day) <= FarmAreaPerDay(day-1) {
			t.Fatalf("build-out decreases on day %d", day)
		}
	}
}

func TestLogisticCurve(t *testing.T) {
	if have := LogisticCurve(5, 10, 1, 5, 2); have != 7 {
		t.Errorf("midpoint: have %g, want 7", have)
	}
}
