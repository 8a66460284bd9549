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

package seaweedutil

import (
	"fmt"

	"github.com/allfed/seaweed"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func resultLabel(r *seaweed.ClusterResult) string {
	return fmt.Sprintf("%s cluster %d", r.Scenario, r.Cluster)
}

// PlotSatisfaction saves a figure of the percentage of the daily seaweed
// need satisfied over time for each cluster that was not skipped.
func PlotSatisfaction(path string, results []seaweed.ClusterResult) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = "Calorie need satisfaction"
	p.X.Label.Text = "Days since start"
	p.Y.Label.Text = "% need satisfied"

	var lines []interface{}
	for i := range results {
		r := &results[i]
		if r.Skipped {
			continue
		}
		_, pct := seaweed.Satisfaction(r.Records, r.SeaweedNeededPerDay)
		xy := make(plotter.XYs, len(pct))
		for d, v := range pct {
			xy[d].X = float64(r.Records[d].Day)
			xy[d].Y = v
		}
		lines = append(lines, resultLabel(r), xy)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return fmt.Errorf("seaweed: plotting need satisfaction: %v", err)
	}
	if err := p.Save(9*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("seaweed: saving %s: %v", path, err)
	}
	return nil
}

// PlotArea saves a bar chart of the farm area needed by each cluster that
// was not skipped.
func PlotArea(path string, results []seaweed.ClusterResult) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = "Area needed"
	p.Y.Label.Text = "Area [km²]"

	var (
		area  plotter.Values
		names []string
	)
	for i := range results {
		r := &results[i]
		if r.Skipped {
			continue
		}
		area = append(area, r.MaxArea)
		names = append(names, resultLabel(r))
	}
	if len(area) > 0 {
		bars, err := plotter.NewBarChart(area, vg.Points(20))
		if err != nil {
			return fmt.Errorf("seaweed: plotting area: %v", err)
		}
		bars.Color = plotutil.Color(0)
		p.Add(bars)
		p.NominalX(names...)
	}
	if err := p.Save(10*vg.Inch, 3*vg.Inch, path); err != nil {
		return fmt.Errorf("seaweed: saving %s: %v", path, err)
	}
	return nil
}
