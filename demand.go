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

import "math"

// Demand describes how much seaweed is wanted by the global population.
type Demand struct {
	Population              float64
	CaloriesPerPersonPerDay float64

	// FoodWaste is the fraction of food that is wasted.
	FoodWaste float64

	// CaloriesPerTonWet is the energy content of wet seaweed [kcal/t].
	CaloriesPerTonWet float64

	// FoodLimit, FeedLimit and BiofuelLimit are the percentages of
	// food, feed and biofuel calories that can be replaced by seaweed.
	// Their sum is limited by the iodine content of seaweed.
	FoodLimit    float64
	FeedLimit    float64
	BiofuelLimit float64
}

// Limit returns the total percentage of calories that can come
// from seaweed.
func (d Demand) Limit() float64 {
	return d.FoodLimit + d.FeedLimit + d.BiofuelLimit
}

// SeaweedNeed returns the wet seaweed needed per day [t/day] to supply
// the fraction of the global calorie demand given by d.Limit.
func SeaweedNeed(d Demand) float64 {
	demand := d.Population * d.CaloriesPerPersonPerDay
	demand *= (1 + d.FoodWaste)
	demand *= d.Limit() / 100
	return demand / d.CaloriesPerTonWet
}

// LogisticCurve returns the value of a logistic function at x, where maxL
// is the maximum value of the curve, k is the growth rate, x0 is the
// midpoint and off is an offset added to the result.
func LogisticCurve(x, maxL, k, x0, off float64) float64 {
	return maxL/(1+math.Exp(-k*(x-x0))) + off
}

// Logistic fit of the module area that can be built per day as global
// rope production is scaled up.
const (
	buildOutMaxL = 4.15610385e03
	buildOutK    = 2.83799528e-02
	buildOutX0   = 1.57630971e02
	buildOutOff  = -4.10270637e01
)

// FarmAreaPerDay estimates the module area [km²] that can be built on
// the given day after the start of the scale-up. It is a logistic fit
// to the expected ramp-up of synthetic rope production. FarmAreaPerDay
// can be used as a BuildOutSchedule.
func FarmAreaPerDay(day int) float64 {
	return LogisticCurve(float64(day), buildOutMaxL, buildOutK, buildOutX0, buildOutOff)
}
