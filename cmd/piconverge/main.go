package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"montepi/darts"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func main() {
	var (
		sizes    = flag.String("sizes", "100,1000,10000,100000,1000000", "Comma separated dart counts.")
		trials   = flag.Int("trials", 20, "Independent estimates per dart count.")
		workers  = flag.Int("workers", 0, "Worker goroutines (0 = GOMAXPROCS).")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "Base seed.")
		plotPath = flag.String("plot", "", "Write a PNG chart of mean |error| against dart count.")
		verbose  = flag.Bool("v", false, "Log progress to stderr.")
	)
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	ns, err := parseSizes(*sizes)
	if err != nil {
		fatalf("sizes: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	log.WithFields(logrus.Fields{"sizes": ns, "trials": *trials, "seed": *seed}).Debug("converge: start")
	studies, err := darts.Converge(ctx, darts.StudyConfig{
		Sizes:   ns,
		Trials:  *trials,
		Workers: *workers,
		Seed:    *seed,
	})
	if err != nil {
		fatalf("converge: %v", err)
	}
	log.WithField("elapsed", time.Since(start)).Debug("converge: done")

	if err := writeTable(os.Stdout, studies); err != nil {
		fatalf("write: %v", err)
	}

	if *plotPath != "" {
		if err := savePlot(*plotPath, studies); err != nil {
			fatalf("plot: %v", err)
		}
		log.WithField("path", *plotPath).Info("plot written")
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func parseSizes(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad size %q", f)
		}
		if n < 1 {
			return nil, fmt.Errorf("size %d: %w", n, darts.ErrNoDarts)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return out, nil
}

// expectedAbsErr is E|estimate - pi| for n darts under the normal
// approximation: sqrt(2/pi) times the binomial standard deviation.
func expectedAbsErr(n int) float64 {
	p := math.Pi / 4
	return math.Sqrt(2/math.Pi) * 4 * math.Sqrt(p*(1-p)/float64(n))
}

func writeTable(w io.Writer, studies []darts.Study) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "darts\ttrials\tmean\tstddev\tmean |err|\texpected |err|\t")
	for _, s := range studies {
		fmt.Fprintf(tw, "%d\t%d\t%.6f\t%.6f\t%.6f\t%.6f\t\n",
			s.N, s.Trials, s.Mean, s.StdDev, s.MeanAbsErr, expectedAbsErr(s.N))
	}
	return tw.Flush()
}

func savePlot(path string, studies []darts.Study) error {
	p := plot.New()
	p.Title.Text = "Monte Carlo pi: error vs darts"
	p.X.Label.Text = "darts"
	p.Y.Label.Text = "mean |estimate - pi|"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	measured := make(plotter.XYs, 0, len(studies))
	expected := make(plotter.XYs, 0, len(studies))
	for _, s := range studies {
		// A log axis cannot show an exact hit.
		if s.MeanAbsErr > 0 {
			measured = append(measured, plotter.XY{X: float64(s.N), Y: s.MeanAbsErr})
		}
		expected = append(expected, plotter.XY{X: float64(s.N), Y: expectedAbsErr(s.N)})
	}

	line, points, err := plotter.NewLinePoints(measured)
	if err != nil {
		return err
	}
	ref, err := plotter.NewLine(expected)
	if err != nil {
		return err
	}
	ref.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	p.Add(plotter.NewGrid(), line, points, ref)
	p.Legend.Add("measured", line, points)
	p.Legend.Add("expected", ref)

	return p.Save(14*vg.Centimeter, 10*vg.Centimeter, path)
}
