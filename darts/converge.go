package darts

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// StudyConfig describes a convergence study.
type StudyConfig struct {
	// Sizes are the dart counts to estimate with.
	Sizes []int
	// Trials is the number of independent estimates per size.
	Trials int
	// Workers defaults to GOMAXPROCS.
	Workers int
	Seed    int64
}

// Study summarizes the trials for one dart count.
type Study struct {
	N          int
	Trials     int
	Mean       float64
	StdDev     float64
	MeanAbsErr float64
}

// Sample estimates pi with n uniform points from rng. It is the drawing-free
// counterpart of Thrower.MontePi.
func Sample(rng *rand.Rand, n int) (float64, error) {
	if n < 1 {
		return 0, ErrNoDarts
	}
	inside := 0
	for i := 0; i < n; i++ {
		x := -1 + 2*rng.Float64()
		y := -1 + 2*rng.Float64()
		if math.Hypot(x, y) <= 1 {
			inside++
		}
	}
	return Estimate(inside, n), nil
}

type trialJob struct {
	size  int
	trial int
}

type trialResult struct {
	size     int
	estimate float64
}

// Converge runs cfg.Trials estimates for every size on a worker pool and
// returns one Study per size, ordered by size. Each trial has its own
// deterministic source derived from cfg.Seed.
func Converge(ctx context.Context, cfg StudyConfig) ([]Study, error) {
	if len(cfg.Sizes) == 0 {
		return nil, errors.New("darts: no sizes to study")
	}
	if cfg.Trials < 1 {
		return nil, errors.New("darts: need at least one trial")
	}
	sizes := append([]int(nil), cfg.Sizes...)
	sort.Ints(sizes)
	uniq := sizes[:0]
	for _, n := range sizes {
		if n < 1 {
			return nil, ErrNoDarts
		}
		if len(uniq) > 0 && uniq[len(uniq)-1] == n {
			continue
		}
		uniq = append(uniq, n)
	}
	sizes = uniq

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	jobs := make(chan trialJob)
	results := make(chan trialResult)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				rng := rand.New(rand.NewSource(trialSeed(cfg.Seed, j)))
				est, _ := Sample(rng, j.size)
				select {
				case results <- trialResult{size: j.size, estimate: est}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, n := range sizes {
			for i := 0; i < cfg.Trials; i++ {
				select {
				case jobs <- trialJob{size: n, trial: i}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	estimates := make(map[int][]float64, len(sizes))
	for r := range results {
		estimates[r.size] = append(estimates[r.size], r.estimate)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Study, 0, len(sizes))
	for _, n := range sizes {
		out = append(out, summarize(n, estimates[n]))
	}
	return out, nil
}

func trialSeed(base int64, j trialJob) int64 {
	return base + int64(j.size)*7919 + int64(j.trial)*104729
}

func summarize(n int, est []float64) Study {
	// Results arrive in completion order; sort so the summary does not depend
	// on scheduling.
	sort.Float64s(est)
	absErr := make([]float64, len(est))
	for i, e := range est {
		absErr[i] = math.Abs(e - math.Pi)
	}
	mean, std := stat.MeanStdDev(est, nil)
	if len(est) < 2 {
		std = 0
	}
	return Study{
		N:          n,
		Trials:     len(est),
		Mean:       mean,
		StdDev:     std,
		MeanAbsErr: stat.Mean(absErr, nil),
	}
}
