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
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestExpandMonthly(t *testing.T) {
	tests := []struct {
		monthly []float64
		days    int
		want    []float64
	}{
		{monthly: []float64{1, 2}, days: 3, want: []float64{1, 1, 1, 2, 2, 2}},
		{monthly: []float64{0.5}, days: 1, want: []float64{0.5}},
		{monthly: nil, days: 30, want: []float64{}},
		{monthly: []float64{1}, days: 0, want: nil},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.monthly, test.days), func(t *testing.T) {
			have := ExpandMonthly(test.monthly, test.days)
			if !reflect.DeepEqual(have, test.want) {
				t.Errorf("have %v, want %v", have, test.want)
			}
		})
	}
	if n := len(ExpandMonthly(make([]float64, 12), DaysPerMonth)); n != 360 {
		t.Errorf("a year should have 360 days, have %d", n)
	}
}

func TestReadMonthlyGrowth(t *testing.T) {
	in := ",cluster,jan,feb\n" +
		"0,0,0.4,0.1\n" +
		"1,1,0.3,0.2\n" +
		"2,0,0.6,\n" +
		"3,1,0.1,0.4\n" +
		"4,1,0.2,0.3\n"
	m, err := ReadMonthlyGrowth(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := map[int][]float64{
		0: {0.5, 0.1},
		1: {0.2, 0.3},
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("have %v, want %v", m, want)
	}

	g := DailyGrowthTable(m, 2)
	c1, _ := g.Cluster(1)
	if !reflect.DeepEqual(c1, []float64{0.2, 0.2, 0.3, 0.3}) {
		t.Errorf("daily: have %v", c1)
	}
}

func TestReadMonthlyGrowthErrors(t *testing.T) {
	for _, in := range []string{
		"jan,feb\n0.1,0.2\n",
		"cluster\n0\n",
		"cluster,jan\nx,0.1\n",
		"cluster,jan\n0,abc\n",
	} {
		if _, err := ReadMonthlyGrowth(strings.NewReader(in)); err == nil {
			t.Errorf("%q: expected an error", in)
		}
	}
	_, err := ReadMonthlyGrowth(strings.NewReader("cluster,jan,feb\n0,0.1,\n"))
	var se *InputShapeError
	if !errors.As(err, &se) {
		t.Errorf("missing month: want InputShapeError, have %v", err)
	}
}
