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

	"gonum.org/v1/gonum/stat"
)

type growthKind int

const (
	growthUnset growthKind = iota
	growthScalar
	growthSeries
)

// GrowthRate is the fraction of the optimal growth rate that is achieved
// on each day. It is either a single value used for every day or a
// series with one value per simulated day.
type GrowthRate struct {
	kind   growthKind
	scalar float64
	series []float64
}

// Scalar returns a GrowthRate that is the same on every day.
func Scalar(fraction float64) GrowthRate {
	return GrowthRate{kind: growthScalar, scalar: fraction}
}

// Series returns a GrowthRate that takes element i on day i.
// The values are copied.
func Series(fractions []float64) GrowthRate {
	s := make([]float64, len(fractions))
	copy(s, fractions)
	return GrowthRate{kind: growthSeries, series: s}
}

// IsSeries reports whether g varies by day.
func (g GrowthRate) IsSeries() bool { return g.kind == growthSeries }

// At returns the growth rate fraction on the given day.
func (g GrowthRate) At(day int) float64 {
	if g.kind == growthSeries {
		return g.series[day]
	}
	return g.scalar
}

// Mean returns the average fraction over the series, or the scalar value.
func (g GrowthRate) Mean() float64 {
	if g.kind == growthSeries {
		return MeanFraction(g.series)
	}
	return g.scalar
}

// check makes sure g can be indexed for days simulated days.
func (g GrowthRate) check(days int) error {
	switch g.kind {
	case growthScalar:
		return nil
	case growthSeries:
		if len(g.series) < days {
			return &InputShapeError{Want: days, Have: len(g.series)}
		}
		return nil
	default:
		return &InputShapeError{Reason: "growth rate must be a scalar or a series"}
	}
}

// MeanFraction returns the arithmetic mean of a daily growth rate
// fraction series.
func MeanFraction(fractions []float64) float64 {
	if len(fractions) == 0 {
		return 0
	}
	return stat.Mean(fractions, nil)
}

// selfShadingThreshold is the density [kg/m²] below which self shading
// has no effect.
const selfShadingThreshold = 0.4

// SelfShading returns the fraction of the growth rate that remains
// after self shading at the given seaweed density [kg/m²]. It is based on:
//
// James, S.C. and Boriah, V. (2010), Modeling algae growth in an
// open-channel raceway. Journal of Computational Biology, 17(7), 895−906.
func SelfShading(density float64) (float64, error) {
	if !(density > 0) {
		return 0, &DomainError{Quantity: "seaweed density", Value: density}
	}
	if density < selfShadingThreshold {
		return 1, nil
	}
	return math.Exp(-0.513 * (density - selfShadingThreshold)), nil
}

// ActualGrowthRate returns the daily biomass multiplier for an optimal
// growth rate [% per day], the growth rate fraction for the day and the
// self shading factor.
func ActualGrowthRate(optimal, fraction, shading float64) float64 {
	return 1 + (optimal*fraction*shading)/100
}
