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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/allfed/seaweed"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// templateParams creates the simulation settings shared by all clusters
// from cfg. The growth rate and maximum area are left unset.
func templateParams(cfg *viper.Viper) (seaweed.Params, error) {
	loss := cfg.GetFloat64("HarvestLoss")
	if !(loss >= 0 && loss <= 100) {
		return seaweed.Params{}, &seaweed.ConfigurationError{Field: "HarvestLoss", Value: loss,
			Reason: "but should be a percentage between 0 and 100"}
	}
	p := seaweed.Params{
		InitialSeaweed:         cfg.GetFloat64("InitialSeaweed"),
		InitialAreaBuilt:       cfg.GetFloat64("InitialAreaBuilt"),
		InitialAreaUsed:        cfg.GetFloat64("InitialAreaUsed"),
		NewModuleAreaPerDay:    cfg.GetFloat64("NewModuleAreaPerDay"),
		MinDensity:             cfg.GetFloat64("MinDensity"),
		MaxDensity:             cfg.GetFloat64("MaxDensity"),
		OptimalGrowthRate:      cfg.GetFloat64("OptimalGrowthRate"),
		InitialLag:             cfg.GetInt("InitialLag"),
		PercentUsableForGrowth: cfg.GetFloat64("PercentUsableForGrowth"),
		DaysToRun:              cfg.GetInt("DaysToRun"),
		HarvestLossFraction:    loss / 100,
		DisableSelfShading:     cfg.GetBool("DisableSelfShading"),
	}
	if cfg.GetBool("AllocateByNeed") {
		p.Allocation = seaweed.AllocateByNeed
	}
	return p, nil
}

// demand returns the seaweed demand described by cfg.
func demand(cfg *viper.Viper) seaweed.Demand {
	return seaweed.Demand{
		Population:              cfg.GetFloat64("Demand.Population"),
		CaloriesPerPersonPerDay: cfg.GetFloat64("Demand.CaloriesPerPersonPerDay"),
		FoodWaste:               cfg.GetFloat64("Demand.FoodWaste"),
		CaloriesPerTonWet:       cfg.GetFloat64("Demand.CaloriesPerTonWet"),
		FoodLimit:               cfg.GetFloat64("Demand.FoodLimit"),
		FeedLimit:               cfg.GetFloat64("Demand.FeedLimit"),
		BiofuelLimit:            cfg.GetFloat64("Demand.BiofuelLimit"),
	}
}

// newRunner creates a scenario runner from cfg.
func newRunner(cfg *viper.Viper) (*seaweed.Runner, error) {
	p, err := templateParams(cfg)
	if err != nil {
		return nil, err
	}
	d := demand(cfg)
	if !(d.CaloriesPerTonWet > 0) {
		return nil, &seaweed.ConfigurationError{Field: "Demand.CaloriesPerTonWet",
			Value: d.CaloriesPerTonWet, Reason: "but should be > 0"}
	}
	clusters, err := toIntSliceE(cfg.Get("Clusters"))
	if err != nil {
		return nil, fmt.Errorf("seaweed: reading 'Clusters': %v", err)
	}
	return &seaweed.Runner{
		Template: p,
		Demand:   d,
		Clusters: clusters,
		Workers:  cfg.GetInt("Workers"),
	}, nil
}

// toIntSliceE converts a list of integers from a configuration file, or
// a JSON array set from the command line, to a slice.
func toIntSliceE(s interface{}) ([]int, error) {
	switch v := s.(type) {
	case nil:
		return nil, nil
	case []int:
		return v, nil
	case []interface{}:
		o := make([]int, len(v))
		for i, val := range v {
			var err error
			if o[i], err = cast.ToIntE(val); err != nil {
				return nil, err
			}
		}
		return o, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		var o []int
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return cast.ToIntSliceE(s)
	}
}

// Output formats.
const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

// checkOutputFormat ensures that an acceptable output format was specified.
func checkOutputFormat(f string) (string, error) {
	f = strings.ToLower(strings.TrimSpace(f))
	switch f {
	case formatCSV, formatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("seaweed: OutputFormat must be %q or %q, but is %q", formatCSV, formatXLSX, f)
	}
}

// setLogLevel sets the level of the standard logger.
func setLogLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("seaweed: invalid LogLevel: %v", err)
	}
	logrus.SetLevel(l)
	return nil
}
