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

	"github.com/tealeg/xlsx"
)

// GrowthColumnPrefix is the prefix of the column names holding the daily
// growth rate fraction of each cluster.
const GrowthColumnPrefix = "growth_daily_cluster_"

// GrowthTable holds a daily growth rate fraction series for each
// cluster of a scenario.
type GrowthTable struct {
	series map[int][]float64
}

// NewGrowthTable creates a growth table from a series for each cluster.
func NewGrowthTable(series map[int][]float64) *GrowthTable {
	t := &GrowthTable{series: make(map[int][]float64, len(series))}
	for c, s := range series {
		t.series[c] = append([]float64(nil), s...)
	}
	return t
}

// Clusters returns the cluster ids in t in increasing order.
func (t *GrowthTable) Clusters() []int {
	o := make([]int, 0, len(t.series))
	for c := range t.series {
		o = append(o, c)
	}
	sort.Ints(o)
	return o
}

// Cluster returns the growth rate fraction series for cluster c.
func (t *GrowthTable) Cluster(c int) ([]float64, bool) {
	s, ok := t.series[c]
	return s, ok
}

// ReadGrowthTable reads a CSV table with one row per day and one
// GrowthColumnPrefix+"<cluster>" column per cluster. Other columns,
// such as a leading index column, are ignored. A cluster's series ends
// at its first empty cell, so series of different lengths can share a
// table.
func ReadGrowthTable(r io.Reader) (*GrowthTable, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("seaweed: reading growth table header: %v", err)
	}
	cols := make(map[int]int) // column index -> cluster
	for i, h := range header {
		h = strings.TrimSpace(h)
		if !strings.HasPrefix(h, GrowthColumnPrefix) {
			continue
		}
		c, err := strconv.Atoi(strings.TrimPrefix(h, GrowthColumnPrefix))
		if err != nil {
			return nil, fmt.Errorf("seaweed: invalid growth table column %q: %v", h, err)
		}
		cols[i] = c
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("seaweed: growth table has no %s columns", GrowthColumnPrefix)
	}
	t := &GrowthTable{series: make(map[int][]float64, len(cols))}
	ended := make(map[int]bool) // clusters whose series ended with an empty cell
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("seaweed: reading growth table: %v", err)
		}
		for i, c := range cols {
			cell := strings.TrimSpace(rec[i])
			if cell == "" {
				ended[c] = true
				continue
			}
			if ended[c] {
				return nil, fmt.Errorf("seaweed: growth table line %d, cluster %d: value after the end of the series", line, c)
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("seaweed: growth table line %d, cluster %d: %v", line, c, err)
			}
			t.series[c] = append(t.series[c], v)
		}
	}
	return t, nil
}

// WriteGrowthTable writes t in the format read by ReadGrowthTable, with
// a leading day index column.
func WriteGrowthTable(w io.Writer, t *GrowthTable) error {
	clusters := t.Clusters()
	header := []string{""}
	n := 0
	for _, c := range clusters {
		header = append(header, GrowthColumnPrefix+strconv.Itoa(c))
		if len(t.series[c]) > n {
			n = len(t.series[c])
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for day := 0; day < n; day++ {
		row := []string{strconv.Itoa(day)}
		for _, c := range clusters {
			s := t.series[c]
			if day < len(s) {
				row = append(row, formatFloat(s[day]))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// RecordColumns are the names of the columns in a table of daily records.
var RecordColumns = []string{
	"day",
	"current_area_built",
	"current_area_used",
	"current_seaweed",
	"current_density",
	"harvest_interval_counter",
	"cumulative_harvest_for_food",
	"current_seaweed_need",
	"new_module_area_per_day",
	"harvest_interval",
	"harvest_for_food",
	"harvest_wet",
	"harvest_wet_with_loss",
	"new_area_used",
	"seaweed_remaining_to_grow",
}

// summaryColumns are added to the daily records of a cluster result.
var summaryColumns = []string{"max_area", "cluster", "seaweed_needed_per_day"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

// row returns the values of r in the order of RecordColumns.
func (r *DailyRecord) row() []string {
	return []string{
		strconv.Itoa(r.Day),
		formatFloat(r.AreaBuilt),
		formatFloat(r.AreaUsed),
		formatFloat(r.Seaweed),
		formatFloat(r.Density),
		strconv.Itoa(r.HarvestIntervalCounter),
		formatFloat(r.CumulativeHarvestForFood),
		formatFloat(r.StockingNeed),
		formatFloat(r.NewModuleAreaPerDay),
		formatOptional(r.HarvestInterval),
		formatOptional(r.HarvestForFood),
		formatOptional(r.HarvestWet),
		formatOptional(r.HarvestWetWithLoss),
		formatOptional(r.NewAreaUsed),
		formatOptional(r.SeaweedRemainingToGrow),
	}
}

// WriteRecords writes records to w as CSV with the columns in
// RecordColumns. Fields that are only set on harvest days are left
// empty on other days.
func WriteRecords(w io.Writer, records []DailyRecord) error {
	return writeRecords(w, records, nil, nil)
}

func writeRecords(w io.Writer, records []DailyRecord, extraHeader, extra []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, RecordColumns...), extraHeader...)); err != nil {
		return err
	}
	for i := range records {
		if err := cw.Write(append(records[i].row(), extra...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the daily records of r to w, adding the maximum area,
// cluster and daily seaweed need to every row.
func (r *ClusterResult) WriteCSV(w io.Writer) error {
	return writeRecords(w, r.Records, summaryColumns, []string{
		formatFloat(r.MaxArea),
		strconv.Itoa(r.Cluster),
		formatFloat(r.SeaweedNeededPerDay),
	})
}

// SummaryColumns are the columns written by WriteSummary.
var SummaryColumns = []string{
	"scenario", "cluster", "max_growth_rate", "productivity", "max_area",
	"seaweed_needed_per_day", "skipped",
}

// WriteSummary writes one row per cluster result with the mean growth
// rate fraction and the calibration outcome.
func WriteSummary(w io.Writer, results []ClusterResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryColumns); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{
			r.Scenario,
			strconv.Itoa(r.Cluster),
			formatFloat(r.MeanGrowthFraction),
			formatFloat(r.Productivity),
			formatFloat(r.MaxArea),
			formatFloat(r.SeaweedNeededPerDay),
			strconv.FormatBool(r.Skipped),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// maxSheetName is the longest sheet name allowed in an xlsx workbook.
const maxSheetName = 31

// sheetName returns a unique, valid sheet name for a cluster result.
func sheetName(r *ClusterResult, used map[string]bool) string {
	name := strings.NewReplacer("/", "_", "\\", "_", "?", "_", "*", "_",
		"[", "_", "]", "_", ":", "_").Replace(fmt.Sprintf("%s_%d", r.Scenario, r.Cluster))
	if len(name) > maxSheetName {
		name = name[len(name)-maxSheetName:]
	}
	base := name
	for i := 1; used[name]; i++ {
		suffix := "~" + strconv.Itoa(i)
		if len(base)+len(suffix) > maxSheetName {
			name = base[:maxSheetName-len(suffix)] + suffix
		} else {
			name = base + suffix
		}
	}
	used[name] = true
	return name
}

// WriteXLSX saves results to an Excel workbook at path, with a summary
// sheet followed by one sheet of daily records for every cluster that
// was not skipped.
func WriteXLSX(path string, results []ClusterResult) error {
	f := xlsx.NewFile()
	used := map[string]bool{"summary": true}
	summary, err := f.AddSheet("summary")
	if err != nil {
		return fmt.Errorf("seaweed: creating summary sheet: %v", err)
	}
	addStringRow(summary, SummaryColumns)
	for _, r := range results {
		row := summary.AddRow()
		row.AddCell().SetString(r.Scenario)
		row.AddCell().SetInt(r.Cluster)
		row.AddCell().SetFloat(r.MeanGrowthFraction)
		row.AddCell().SetFloat(r.Productivity)
		row.AddCell().SetFloat(r.MaxArea)
		row.AddCell().SetFloat(r.SeaweedNeededPerDay)
		row.AddCell().SetBool(r.Skipped)
	}
	for i := range results {
		r := &results[i]
		if r.Skipped {
			continue
		}
		sheet, err := f.AddSheet(sheetName(r, used))
		if err != nil {
			return fmt.Errorf("seaweed: creating sheet for %s cluster %d: %v", r.Scenario, r.Cluster, err)
		}
		addStringRow(sheet, RecordColumns)
		for j := range r.Records {
			row := sheet.AddRow()
			for _, v := range r.Records[j].row() {
				c := row.AddCell()
				if v == "" {
					continue
				}
				if fv, err := strconv.ParseFloat(v, 64); err == nil {
					c.SetFloat(fv)
				} else {
					c.SetString(v)
				}
			}
		}
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("seaweed: saving %s: %v", path, err)
	}
	return nil
}

func addStringRow(s *xlsx.Sheet, values []string) {
	row := s.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
