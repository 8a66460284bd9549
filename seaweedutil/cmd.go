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

// Package seaweedutil contains the command-line interface of the
// seaweed scale-up model.
package seaweedutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/allfed/seaweed"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the model.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum level of log messages to print. It can be
              one of debug, info, warning, or error. Harvests are logged at the
              debug level.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can include
              environment variables. If LogFile is left blank, the logfile will be saved
              in OutputDir.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "GrowthData",
			usage: `
              GrowthData is the directory holding one subdirectory for each
              scenario, each containing a daily growth rate table named
              actual_growth_rate_by_cluster.csv. It can be a local directory, an
              http(s) URL, or a blob storage location (gs://, s3://, or file://),
              and can include environment variables.`,
			defaultVal: "data",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Scenarios",
			usage: `
              Scenarios are the names of the scenarios to run.`,
			defaultVal: []string{"150tg"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Clusters",
			usage: `
              Clusters are the ids of the clusters to run. If empty, all
              clusters in the growth data are run.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir is the directory results are written to. A subdirectory
              is created for each scenario. It can include environment variables.`,
			defaultVal: "results",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "OutputFormat",
			usage: `
              OutputFormat is the format of the results. It can be csv, to write
              one file per cluster, or xlsx, to write a single workbook.`,
			defaultVal: "csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Plot",
			usage: `
              If Plot is true, figures of the need satisfaction and the required
              area are saved in OutputDir after the run.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Workers",
			usage: `
              Workers is the number of clusters simulated at the same time.
              If it is 0, the number of processors is used.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "DaysToRun",
			usage: `
              DaysToRun is the number of days to simulate.`,
			defaultVal: 360,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), productivityCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "OptimalGrowthRate",
			usage: `
              OptimalGrowthRate is the growth rate of seaweed under ideal
              conditions in percent per day.`,
			defaultVal: 60.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), productivityCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "GrowthRateFraction",
			usage: `
              GrowthRateFraction is the fraction of the optimal growth rate
              that is reached. It is only used by the productivity command.`,
			defaultVal: 0.5,
			flagsets:   []*pflag.FlagSet{productivityCmd.Flags()},
		},
		{
			name: "PercentUsableForGrowth",
			usage: `
              PercentUsableForGrowth is the percentage of the module area
              that seaweed can be grown on.`,
			defaultVal: 50.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), productivityCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "HarvestLoss",
			usage: `
              HarvestLoss is the percentage of each harvest that is lost.`,
			defaultVal: 20.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), productivityCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "MinDensity",
			usage: `
              MinDensity is the seaweed density a farm is restocked to after a
              harvest [t/km²].`,
			defaultVal: seaweed.DefaultMinDensity,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), productivityCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "MaxDensity",
			usage: `
              MaxDensity is the seaweed density at which a farm is harvested [t/km²].`,
			defaultVal: seaweed.DefaultMaxDensity,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), productivityCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "DisableSelfShading",
			usage: `
              If DisableSelfShading is true, the growth rate is not reduced at
              high seaweed densities.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), productivityCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "AllocateByNeed",
			usage: `
              If AllocateByNeed is true, all built area is stocked after a
              harvest even when the harvest is too small to stock it, as in
              earlier versions of the model.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), productivityCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "InitialSeaweed",
			usage: `
              InitialSeaweed is the seaweed in the water at the start of the
              scale-up [t].`,
			defaultVal: 10000.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "InitialAreaBuilt",
			usage: `
              InitialAreaBuilt is the farm area built at the start of the
              scale-up [km²].`,
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "InitialAreaUsed",
			usage: `
              InitialAreaUsed is the farm area stocked with seaweed at the start
              of the scale-up [km²].`,
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "NewModuleAreaPerDay",
			usage: `
              NewModuleAreaPerDay is the module area built per day [km²]. If it
              is greater than zero, the logistic rope production ramp-up is used
              instead of this value. If it is zero, no area is built.`,
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "InitialLag",
			usage: `
              InitialLag is the number of days before construction starts.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Demand.Population",
			usage: `
              Demand.Population is the number of people to be fed.`,
			defaultVal: 7.8e9,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Demand.CaloriesPerPersonPerDay",
			usage: `
              Demand.CaloriesPerPersonPerDay is the calorie need of one person [kcal/day].`,
			defaultVal: 2250.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Demand.FoodWaste",
			usage: `
              Demand.FoodWaste is the fraction of food that is wasted.`,
			defaultVal: 0.14,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Demand.CaloriesPerTonWet",
			usage: `
              Demand.CaloriesPerTonWet is the energy content of wet seaweed [kcal/t].`,
			defaultVal: 286000.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Demand.FoodLimit",
			usage: `
              Demand.FoodLimit is the percentage of food calories that can be
              replaced by seaweed.`,
			defaultVal: 10.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Demand.FeedLimit",
			usage: `
              Demand.FeedLimit is the percentage of animal feed calories that can
              be replaced by seaweed.`,
			defaultVal: 10.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Demand.BiofuelLimit",
			usage: `
              Demand.BiofuelLimit is the percentage of biofuel calories that can
              be replaced by seaweed.`,
			defaultVal: 10.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Constants",
			usage: `
              Constants is the path to the TOML table of literature values
              describing farm construction. It can be a local file, an http(s)
              URL, or a blob storage location (gs://, s3://, or file://), and
              can include environment variables.`,
			defaultVal: "constants.toml",
			flagsets:   []*pflag.FlagSet{parametersCmd.Flags()},
		},
		{
			name: "Preproc.MonthlyGrowth",
			usage: `
              Preproc.MonthlyGrowth is the path to a CSV table of monthly growth
              rate fractions with one row per grid cell and a cluster column.
              It can be a local file, an http(s) URL, or a blob storage location,
              and can include environment variables.`,
			defaultVal: "data/seaweed_growth_rate_clustered.csv",
			flagsets:   []*pflag.FlagSet{preprocCmd.Flags()},
		},
		{
			name: "Preproc.DaysPerMonth",
			usage: `
              Preproc.DaysPerMonth is the number of days each monthly value is
              repeated for.`,
			defaultVal: seaweed.DaysPerMonth,
			flagsets:   []*pflag.FlagSet{preprocCmd.Flags()},
		},
		{
			name: "Preproc.OutputFile",
			usage: `
              Preproc.OutputFile is the path the daily growth rate table is
              written to. It can include environment variables.`,
			defaultVal: "data/actual_growth_rate_by_cluster.csv",
			flagsets:   []*pflag.FlagSet{preprocCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("SEAWEED")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
			case []string:
				set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
			case int:
				set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
			case []int:
				set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(productivityCmd)
	Root.AddCommand(parametersCmd)
	Root.AddCommand(preprocCmd)
	Root.AddCommand(plotCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("seaweed: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "seaweed",
	Short: "A model of the global scale-up of seaweed farming.",
	Long: `seaweed models how fast seaweed farming could be scaled up to feed
the world after an abrupt loss of conventional agriculture. For each
scenario and cluster of ocean grid cells, the productivity of a fully
stocked farm is estimated, and the farm area needed to meet the seaweed
need is built up day by day.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'SEAWEED_var' where 'var' is the
name of the variable to be set, with dots replaced by underscores.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setConfig(); err != nil {
			return err
		}
		return setLogLevel(Cfg.GetString("LogLevel"))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of the seaweed model.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("seaweed v%s\n", seaweed.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd is a command that runs all scenarios and saves the results.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model.",
	Long: `run estimates the productivity of every cluster in every scenario and
simulates the scale-up of the farm area needed to meet the seaweed need.
Daily results are written to OutputDir, together with a summary table
of the mean growth rate and productivity of each cluster.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner(Cfg)
		if err != nil {
			return err
		}
		format, err := checkOutputFormat(Cfg.GetString("OutputFormat"))
		if err != nil {
			return err
		}
		return Run(context.Background(), cmd, runner, RunConfig{
			GrowthData: os.ExpandEnv(Cfg.GetString("GrowthData")),
			Scenarios:  Cfg.GetStringSlice("Scenarios"),
			OutputDir:  os.ExpandEnv(Cfg.GetString("OutputDir")),
			LogFile:    os.ExpandEnv(Cfg.GetString("LogFile")),
			Format:     format,
			Plot:       Cfg.GetBool("Plot"),
		})
	},
	DisableAutoGenTag: true,
}

// productivityCmd is a command that calibrates a 1 km² farm.
var productivityCmd = &cobra.Command{
	Use:   "productivity",
	Short: "Estimate the productivity of a farm.",
	Long: `productivity simulates a fully built 1 km² farm with a constant growth
rate and prints the food it produces per km² and day once its harvest
cycle has stabilized.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := templateParams(Cfg)
		if err != nil {
			return err
		}
		p.GrowthRate = seaweed.Scalar(Cfg.GetFloat64("GrowthRateFraction"))
		c, err := seaweed.Calibrate(p)
		if errors.Is(err, seaweed.ErrInsufficientProductivity) {
			cmd.Println("the farm does not produce any food")
			return nil
		} else if err != nil {
			return err
		}
		cmd.Printf("productivity: %g t/km²/day\n", c.Productivity)
		cmd.Printf("harvest interval: %g days\n", c.StableHarvestInterval)
		cmd.Printf("harvest for food: %g t/km²\n", c.StableHarvestForFood)
		return nil
	},
	DisableAutoGenTag: true,
}

// parametersCmd is a command that prints the farm construction parameters.
var parametersCmd = &cobra.Command{
	Use:   "parameters",
	Short: "Print the farm construction parameters.",
	Long: `parameters reads the table of literature values given by Constants and
prints them together with the values derived from them, such as the
rope needed per km² of farm and the farm area that can be built per day.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := LoadParameters(context.Background(), os.ExpandEnv(Cfg.GetString("Constants")))
		if err != nil {
			return err
		}
		for _, name := range p.Names() {
			v, _ := p.Get(name)
			cmd.Printf("%s = %g\n", name, v)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// preprocCmd is a command that creates daily growth rate tables.
var preprocCmd = &cobra.Command{
	Use:   "preproc",
	Short: "Preprocess growth model output",
	Long: `preproc reads monthly growth rate fractions of clustered grid cells,
takes the median of each cluster and month, and saves a daily growth
rate table for use by the run command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Preproc(context.Background(),
			os.ExpandEnv(Cfg.GetString("Preproc.MonthlyGrowth")),
			os.ExpandEnv(Cfg.GetString("Preproc.OutputFile")),
			Cfg.GetInt("Preproc.DaysPerMonth"),
		)
	},
	DisableAutoGenTag: true,
}

// plotCmd is a command that runs all scenarios and plots the results.
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Run the model and plot the results.",
	Long: `plot runs the model as the run command does, but only saves figures of
the daily need satisfaction and the required farm area of each cluster.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner(Cfg)
		if err != nil {
			return err
		}
		return Run(context.Background(), cmd, runner, RunConfig{
			GrowthData: os.ExpandEnv(Cfg.GetString("GrowthData")),
			Scenarios:  Cfg.GetStringSlice("Scenarios"),
			OutputDir:  os.ExpandEnv(Cfg.GetString("OutputDir")),
			LogFile:    os.ExpandEnv(Cfg.GetString("LogFile")),
			Plot:       true,
			PlotOnly:   true,
		})
	},
	DisableAutoGenTag: true,
}
