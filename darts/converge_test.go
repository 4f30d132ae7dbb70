package darts

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestConvergeErrorShrinks(t *testing.T) {
	studies, err := Converge(context.Background(), StudyConfig{
		Sizes:   []int{1000000, 100, 10000},
		Trials:  16,
		Workers: 4,
		Seed:    11,
	})
	if err != nil {
		t.Fatalf("Converge: %v", err)
	}
	if len(studies) != 3 {
		t.Fatalf("studies=%d", len(studies))
	}
	for i, want := range []int{100, 10000, 1000000} {
		if studies[i].N != want || studies[i].Trials != 16 {
			t.Fatalf("study %d = %+v", i, studies[i])
		}
	}
	for i := 1; i < len(studies); i++ {
		if studies[i].MeanAbsErr >= studies[i-1].MeanAbsErr {
			t.Fatalf("error did not shrink: N=%d err=%v, N=%d err=%v",
				studies[i-1].N, studies[i-1].MeanAbsErr, studies[i].N, studies[i].MeanAbsErr)
		}
	}
	if last := studies[len(studies)-1]; math.Abs(last.Mean-math.Pi) > 0.01 {
		t.Fatalf("N=%d mean=%v", last.N, last.Mean)
	}
}

func TestConvergeIndependentOfWorkers(t *testing.T) {
	cfg := StudyConfig{Sizes: []int{500, 500, 2000}, Trials: 5, Seed: 3}
	cfg.Workers = 1
	a, err := Converge(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Converge: %v", err)
	}
	cfg.Workers = 8
	b, err := Converge(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Converge: %v", err)
	}
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("duplicate sizes not merged: %d %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("study %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestConvergeRejectsBadConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := Converge(ctx, StudyConfig{Trials: 1}); err == nil {
		t.Fatal("expected error for empty sizes")
	}
	if _, err := Converge(ctx, StudyConfig{Sizes: []int{10}}); err == nil {
		t.Fatal("expected error for zero trials")
	}
	if _, err := Converge(ctx, StudyConfig{Sizes: []int{10, 0}, Trials: 1}); !errors.Is(err, ErrNoDarts) {
		t.Fatalf("err=%v", err)
	}
}

func TestConvergeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Converge(ctx, StudyConfig{Sizes: []int{1000}, Trials: 100}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
}

func TestSample(t *testing.T) {
	if _, err := Sample(rand.New(rand.NewSource(1)), 0); !errors.Is(err, ErrNoDarts) {
		t.Fatalf("err=%v", err)
	}
	est, err := Sample(rand.New(rand.NewSource(1)), 1)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if est != 0 && est != 4 {
		t.Fatalf("single dart estimate=%v", est)
	}
}
