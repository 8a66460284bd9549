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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/allfed/seaweed"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GrowthFile is the name of the daily growth rate table in each
// scenario directory.
const GrowthFile = "actual_growth_rate_by_cluster.csv"

// RunConfig holds the input and output locations of a model run.
type RunConfig struct {
	// GrowthData is the directory with one subdirectory per scenario.
	GrowthData string
	Scenarios  []string

	OutputDir string

	// LogFile is where log messages are saved in addition to the
	// command output. It defaults to seaweed.log in OutputDir.
	LogFile string

	// Format is the format of the result tables, csv or xlsx.
	Format string

	// Plot specifies whether figures are saved, and PlotOnly
	// specifies whether the result tables are skipped.
	Plot, PlotOnly bool
}

// LoadScenarios reads the daily growth rate table of each named scenario
// from dir, which may be a local directory, an http(s) URL or a blob
// storage location.
func LoadScenarios(ctx context.Context, dir string, names []string) ([]seaweed.ScenarioInput, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("seaweed: no scenarios specified")
	}
	o := make([]seaweed.ScenarioInput, len(names))
	for i, name := range names {
		f, err := openInput(ctx, joinPath(dir, name, GrowthFile))
		if err != nil {
			return nil, fmt.Errorf("seaweed: opening growth data for scenario %s: %v", name, err)
		}
		t, err := seaweed.ReadGrowthTable(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("seaweed: scenario %s: %v", name, err)
		}
		o[i] = seaweed.ScenarioInput{Name: name, Growth: t}
	}
	return o, nil
}

// Run runs runner for the scenarios in cfg and saves the results.
// Log messages are written to the output of cmd and to cfg.LogFile.
func Run(ctx context.Context, cmd *cobra.Command, runner *seaweed.Runner, cfg RunConfig) error {
	startTime := time.Now()

	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return fmt.Errorf("seaweed: creating output directory: %v", err)
	}
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = filepath.Join(cfg.OutputDir, "seaweed.log")
	}
	logfile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("seaweed: problem creating log file: %v", err)
	}
	defer logfile.Close()
	log := logrus.New()
	log.Out = io.MultiWriter(cmd.OutOrStdout(), logfile)
	log.Level = logrus.GetLevel()
	runner.Log = log

	scenarios, err := LoadScenarios(ctx, cfg.GrowthData, cfg.Scenarios)
	if err != nil {
		return err
	}
	log.WithField("seaweed_needed_per_day", seaweed.SeaweedNeed(runner.Demand)).Info("starting run")

	results, err := runner.Run(ctx, scenarios)
	if err != nil {
		return err
	}

	if !cfg.PlotOnly {
		switch cfg.Format {
		case formatXLSX:
			path := filepath.Join(cfg.OutputDir, "results.xlsx")
			if err := seaweed.WriteXLSX(path, results); err != nil {
				return err
			}
		default:
			if err := writeCSVResults(cfg.OutputDir, results); err != nil {
				return err
			}
		}
	}
	if cfg.Plot {
		if err := PlotSatisfaction(filepath.Join(cfg.OutputDir, "food_satisfaction.png"), results); err != nil {
			return err
		}
		if err := PlotArea(filepath.Join(cfg.OutputDir, "area.png"), results); err != nil {
			return err
		}
	}
	log.WithField("duration", time.Since(startTime).String()).Info("run finished")
	return nil
}

// writeCSVResults writes one table per cluster into a directory for each
// scenario, and a summary table of all clusters.
func writeCSVResults(dir string, results []seaweed.ClusterResult) error {
	for i := range results {
		r := &results[i]
		if r.Skipped {
			continue
		}
		sdir := filepath.Join(dir, r.Scenario)
		if err := os.MkdirAll(sdir, os.ModePerm); err != nil {
			return fmt.Errorf("seaweed: creating scenario output directory: %v", err)
		}
		path := filepath.Join(sdir, fmt.Sprintf("harvest_df_cluster_%d.csv", r.Cluster))
		if err := writeFile(path, r.WriteCSV); err != nil {
			return err
		}
	}
	return writeFile(filepath.Join(dir, "scenario_max_growth_rates.csv"), func(w io.Writer) error {
		return seaweed.WriteSummary(w, results)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("seaweed: creating output file: %v", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("seaweed: writing %s: %v", path, err)
	}
	return f.Close()
}

// LoadParameters reads the literature value table at p, which may be a
// local file, an http(s) URL or a blob storage location.
func LoadParameters(ctx context.Context, p string) (seaweed.Parameters, error) {
	f, err := openInput(ctx, p)
	if err != nil {
		return seaweed.Parameters{}, fmt.Errorf("seaweed: opening constants: %v", err)
	}
	defer f.Close()
	return seaweed.ReadParameters(f)
}

// Preproc reads the monthly growth table at in, and writes a table of
// daily growth rate fractions for each cluster to the local file out.
func Preproc(ctx context.Context, in, out string, daysPerMonth int) error {
	if daysPerMonth <= 0 {
		return &seaweed.ConfigurationError{Field: "Preproc.DaysPerMonth", Value: float64(daysPerMonth),
			Reason: "but should be > 0"}
	}
	f, err := openInput(ctx, in)
	if err != nil {
		return fmt.Errorf("seaweed: opening monthly growth data: %v", err)
	}
	monthly, err := seaweed.ReadMonthlyGrowth(f)
	f.Close()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("seaweed: creating output directory: %v", err)
		}
	}
	t := seaweed.DailyGrowthTable(monthly, daysPerMonth)
	return writeFile(out, func(w io.Writer) error {
		return seaweed.WriteGrowthTable(w, t)
	})
}
