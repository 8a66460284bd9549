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
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// DaysPerMonth is the number of days each monthly growth rate is
// repeated for when creating a daily series.
const DaysPerMonth = 30

// ExpandMonthly returns a daily series in which each value of monthly is
// repeated daysPerMonth times.
func ExpandMonthly(monthly []float64, daysPerMonth int) []float64 {
	if daysPerMonth <= 0 {
		return nil
	}
	o := make([]float64, 0, len(monthly)*daysPerMonth)
	for _, m := range monthly {
		for i := 0; i < daysPerMonth; i++ {
			o = append(o, m)
		}
	}
	return o
}

// ClusterColumn is the name of the column holding the cluster id of each
// grid cell in a monthly growth table.
const ClusterColumn = "cluster"

// ReadMonthlyGrowth reads a CSV table of monthly growth rate fractions with
// one row per grid cell, a ClusterColumn column and one column per month,
// and returns the median value of each month for each cluster. Months are
// kept in the order of the columns.
func ReadMonthlyGrowth(r io.Reader) (map[int][]float64, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("seaweed: reading monthly growth header: %v", err)
	}
	clusterCol := -1
	var months []int
	for i, h := range header {
		h = strings.TrimSpace(h)
		switch {
		case h == ClusterColumn:
			clusterCol = i
		case h == "" && i == 0: // index column
		default:
			months = append(months, i)
		}
	}
	if clusterCol < 0 {
		return nil, fmt.Errorf("seaweed: monthly growth table has no %q column", ClusterColumn)
	}
	if len(months) == 0 {
		return nil, fmt.Errorf("seaweed: monthly growth table has no month columns")
	}

	values := make(map[int][][]float64) // cluster -> month -> cells
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("seaweed: reading monthly growth: %v", err)
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(rec[clusterCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("seaweed: monthly growth line %d: cluster: %v", line, err)
		}
		cluster := int(c)
		if values[cluster] == nil {
			values[cluster] = make([][]float64, len(months))
		}
		for j, col := range months {
			s := strings.TrimSpace(rec[col])
			if s == "" {
				continue // missing cells are skipped when taking the median
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("seaweed: monthly growth line %d, column %s: %v",
					line, header[col], err)
			}
			values[cluster][j] = append(values[cluster][j], v)
		}
	}

	o := make(map[int][]float64, len(values))
	for cluster, ms := range values {
		med := make([]float64, len(ms))
		for j, cells := range ms {
			if len(cells) == 0 {
				return nil, &InputShapeError{Want: 1, Have: 0,
					Reason: fmt.Sprintf("no values for cluster %d in month column %s", cluster, header[months[j]])}
			}
			med[j] = median(cells)
		}
		o[cluster] = med
	}
	return o, nil
}

// median returns the median of x, averaging the two central values when
// len(x) is even. x is sorted in place.
func median(x []float64) float64 {
	sort.Float64s(x)
	n := len(x)
	if n%2 == 1 {
		return x[n/2]
	}
	return (x[n/2-1] + x[n/2]) / 2
}

// DailyGrowthTable creates a table of daily growth rate fractions by
// expanding the monthly values of each cluster with ExpandMonthly.
func DailyGrowthTable(monthly map[int][]float64, daysPerMonth int) *GrowthTable {
	t := &GrowthTable{series: make(map[int][]float64, len(monthly))}
	for c, m := range monthly {
		t.series[c] = ExpandMonthly(m, daysPerMonth)
	}
	return t
}
