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
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/ctessum/requestcache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ScenarioInput is the growth data for one scenario.
type ScenarioInput struct {
	Name   string
	Growth *GrowthTable
}

// ClusterResult is the outcome of running one cluster of one scenario.
type ClusterResult struct {
	Scenario string
	Cluster  int

	// MeanGrowthFraction is the mean of the cluster's daily growth rate
	// fractions. It is used to calibrate the productivity.
	MeanGrowthFraction float64

	// Productivity is the food harvested per km² and day by a fully
	// stocked farm [t/km²/day].
	Productivity float64

	// MaxArea is the farm area needed to meet the seaweed need [km²].
	MaxArea float64

	SeaweedNeededPerDay float64 // t/day

	// Records holds the daily output of the full scale simulation.
	Records []DailyRecord

	// Skipped is true if the cluster is not productive enough for any
	// food to be harvested, in which case no full scale simulation is run.
	Skipped bool
}

// Runner simulates the scale-up of seaweed farming for every cluster of
// a set of scenarios.
type Runner struct {
	// Template holds the settings shared by all simulations. The
	// growth rate and the maximum area are set for each cluster.
	Template Params

	// BuildOut is the build-out schedule of the full scale simulations.
	// FarmAreaPerDay is used if it is nil.
	BuildOut BuildOutSchedule

	Demand Demand

	// Clusters, if not empty, limits the clusters that are run.
	Clusters []int

	// Workers is the number of clusters run at the same time. If it is
	// not positive, runtime.GOMAXPROCS(-1) is used.
	Workers int

	// CacheSize is the number of calibrations kept in memory.
	CacheSize int

	Log logrus.FieldLogger

	cacheInit sync.Once
	cache     *requestcache.Cache
}

type calibrationResult struct {
	c   Calibration
	err error
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(-1)
}

// calibrate returns the calibration for the growth rate in p, reusing
// results for identical settings.
func (r *Runner) calibrate(ctx context.Context, p Params) (Calibration, error) {
	r.cacheInit.Do(func() {
		size := r.CacheSize
		if size <= 0 {
			size = 100
		}
		// Calibration errors are part of the result so that they are
		// cached as well.
		r.cache = requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
			c, err := Calibrate(request.(Params))
			return calibrationResult{c: c, err: err}, nil
		}, r.workers(), requestcache.Memory(size), requestcache.Deduplicate())
	})
	key := fmt.Sprintf("%g_%g_%g_%g_%g_%g_%d_%t_%d", p.GrowthRate.Mean(), p.OptimalGrowthRate,
		p.PercentUsableForGrowth, p.MinDensity, p.MaxDensity, p.HarvestLossFraction,
		p.DaysToRun, p.DisableSelfShading, p.Allocation)
	result, err := r.cache.NewRequest(ctx, p, key).Result()
	if err != nil {
		return Calibration{}, err
	}
	cr := result.(calibrationResult)
	return cr.c, cr.err
}

type clusterJob struct {
	scenario string
	cluster  int
	growth   []float64
}

// Run simulates every selected cluster of every scenario in parallel and
// returns the results in scenario order and then in increasing cluster
// order. Clusters that are not productive enough are marked as skipped.
// Any other error stops the run.
func (r *Runner) Run(ctx context.Context, scenarios []ScenarioInput) ([]ClusterResult, error) {
	var jobs []clusterJob
	for _, s := range scenarios {
		clusters := r.Clusters
		if len(clusters) == 0 {
			clusters = s.Growth.Clusters()
		}
		for _, c := range clusters {
			g, ok := s.Growth.Cluster(c)
			if !ok {
				return nil, fmt.Errorf("seaweed: scenario %s has no growth data for cluster %d", s.Name, c)
			}
			jobs = append(jobs, clusterJob{scenario: s.Name, cluster: c, growth: g})
		}
	}
	need := SeaweedNeed(r.Demand)

	results := make([]ClusterResult, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			res, err := r.runCluster(ctx, j, need)
			if err != nil {
				return fmt.Errorf("seaweed: scenario %s, cluster %d: %w", j.scenario, j.cluster, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runCluster(ctx context.Context, j clusterJob, need float64) (ClusterResult, error) {
	if err := ctx.Err(); err != nil {
		return ClusterResult{}, err
	}
	log := r.logger().WithFields(logrus.Fields{"scenario": j.scenario, "cluster": j.cluster})
	res := ClusterResult{
		Scenario:            j.scenario,
		Cluster:             j.cluster,
		MeanGrowthFraction:  MeanFraction(j.growth),
		SeaweedNeededPerDay: need,
	}

	unit := r.Template
	unit.GrowthRate = Scalar(res.MeanGrowthFraction)
	c, err := r.calibrate(ctx, unit)
	if errors.Is(err, ErrInsufficientProductivity) {
		log.Warn("not enough productivity in cluster for a food harvest; skipping")
		res.Skipped = true
		return res, nil
	} else if err != nil {
		return res, err
	}
	res.Productivity = c.Productivity
	res.MaxArea = RequiredArea(need, c.Productivity)

	p := r.Template
	p.GrowthRate = Series(j.growth)
	p.MaxArea = res.MaxArea
	p.BuildOut = r.BuildOut
	if p.BuildOut == nil {
		p.BuildOut = FarmAreaPerDay
	}
	if p.MaxArea < p.InitialAreaBuilt {
		// The whole farm fits in the initial area, so start smaller.
		scale := p.MaxArea / p.InitialAreaBuilt
		p.InitialAreaBuilt = p.MaxArea
		p.InitialAreaUsed *= scale
		p.InitialSeaweed *= scale
		log.WithField("max_area", p.MaxArea).Info("scaling down initial farm to the required area")
	}

	f := NewFarm(p)
	f.RunFuncs = append(f.RunFuncs, Log(log))
	if err := f.Init(); err != nil {
		return res, err
	}
	if err := f.Run(); err != nil {
		return res, err
	}
	if err := f.Cleanup(); err != nil {
		return res, err
	}
	res.Records = f.Records
	log.WithFields(logrus.Fields{
		"productivity":  res.Productivity,
		"max_area":      res.MaxArea,
		"food_produced": lastCumulative(res.Records),
	}).Info("finished cluster")
	return res, nil
}

func lastCumulative(records []DailyRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	return records[len(records)-1].CumulativeHarvestForFood
}

// Satisfaction returns the mean daily food harvest [t/day] and the
// percentage of needPerDay it satisfies for each day in records. Each
// food harvest is spread evenly over the harvest interval leading up to
// it. Days after the last food harvest keep its value.
func Satisfaction(records []DailyRecord, needPerDay float64) (meanDaily, percent []float64) {
	n := len(records)
	meanDaily = make([]float64, n)
	percent = make([]float64, n)

	food := make([]float64, n)
	interval := make([]float64, n)
	nextFood, nextInterval := -1, -1
	var lastFood, lastInterval float64
	haveFood, haveInterval := false, false
	for i := n - 1; i >= 0; i-- {
		if records[i].HarvestForFood != nil {
			nextFood = i
			if !haveFood {
				lastFood, haveFood = *records[i].HarvestForFood, true
			}
		}
		if records[i].HarvestInterval != nil {
			nextInterval = i
			if !haveInterval {
				lastInterval, haveInterval = *records[i].HarvestInterval, true
			}
		}
		if nextFood >= 0 {
			food[i] = *records[nextFood].HarvestForFood
		}
		if nextInterval >= 0 {
			interval[i] = *records[nextInterval].HarvestInterval
		}
	}
	// Days after the last harvest.
	for i := n - 1; i >= 0; i-- {
		if records[i].HarvestForFood != nil {
			break
		}
		food[i] = lastFood
	}
	for i := n - 1; i >= 0; i-- {
		if records[i].HarvestInterval != nil {
			break
		}
		interval[i] = lastInterval
	}

	for i := range records {
		if interval[i] > 0 {
			meanDaily[i] = food[i] / interval[i]
		}
		if needPerDay > 0 {
			percent[i] = meanDaily[i] / needPerDay * 100
		}
	}
	return meanDaily, percent
}
