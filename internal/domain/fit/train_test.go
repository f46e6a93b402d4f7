package fit

import (
	"errors"
	"math/rand"
	"testing"
)

func syntheticTrainingSet(n int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]Sample, 0, n)
	for i := 0; i < n/2; i++ {
		samples = append(samples, SynthesizeSample(1, rng))
		samples = append(samples, SynthesizeSample(0, rng))
	}
	return samples
}

func TestTrain_RefusesInsufficientData(t *testing.T) {
	samples := syntheticTrainingSet(40, 1)

	_, _, err := Train(samples, TrainOptions{MinSamples: 100})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestTrain_RefusesSingleClass(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	samples := make([]Sample, 0, 120)
	for i := 0; i < 120; i++ {
		samples = append(samples, SynthesizeSample(1, rng))
	}

	_, _, err := Train(samples, TrainOptions{MinSamples: 100})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for single-class data, got %v", err)
	}
}

func TestTrain_ProducesReport(t *testing.T) {
	samples := syntheticTrainingSet(240, 3)

	forest, report, err := Train(samples, TrainOptions{
		Params: Params{Trees: 20, MaxDepth: 8, Seed: 5},
		Seed:   5,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if forest == nil || len(forest.Trees) != 20 {
		t.Fatalf("expected a 20-tree forest")
	}

	if report.SampleCount != 240 {
		t.Fatalf("expected sample_count 240, got %d", report.SampleCount)
	}
	if report.SyntheticSamples != 240 || report.RealSamples != 0 {
		t.Fatalf("expected 240 synthetic / 0 real, got %d/%d", report.SyntheticSamples, report.RealSamples)
	}

	// Synthetic archetypes are nearly separable; a forest that cannot get
	// F1 above 0.8 on them is broken.
	if report.Metrics.F1 < 0.8 {
		t.Fatalf("expected F1 >= 0.8 on synthetic archetypes, got %v", report.Metrics.F1)
	}
	if report.Metrics.ROCAUC < 0.8 {
		t.Fatalf("expected AUC >= 0.8, got %v", report.Metrics.ROCAUC)
	}
	if report.Metrics.CVF1Mean <= 0 {
		t.Fatalf("expected positive CV F1 mean, got %v", report.Metrics.CVF1Mean)
	}

	if len(report.Importance) != NumFeatures {
		t.Fatalf("expected %d importance entries, got %d", NumFeatures, len(report.Importance))
	}
	for i := 1; i < len(report.Importance); i++ {
		if report.Importance[i].Score > report.Importance[i-1].Score {
			t.Fatalf("importance ranking not sorted at %d", i)
		}
	}

	total := 0
	for _, row := range report.Confusion {
		for _, c := range row {
			total += c
		}
	}
	if total == 0 {
		t.Fatalf("confusion matrix empty")
	}
}

func TestAugment_BalancesClasses(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	real := make([]Sample, 0, 12)
	for i := 0; i < 10; i++ {
		real = append(real, SynthesizeSample(0, rng))
	}
	real = append(real, SynthesizeSample(1, rng), SynthesizeSample(1, rng))
	for i := range real {
		real[i].Synthetic = false
	}

	out := Augment(real, 100, rng)

	if len(out) < 100 {
		t.Fatalf("expected at least 100 samples, got %d", len(out))
	}
	pos, neg := 0, 0
	for _, s := range out {
		if s.Label == 1 {
			pos++
		} else {
			neg++
		}
	}
	if diff := pos - neg; diff < -1 || diff > 1 {
		t.Fatalf("classes not balanced: %d positive vs %d negative", pos, neg)
	}

	synthetic := 0
	for _, s := range out {
		if s.Synthetic {
			synthetic++
		}
	}
	if synthetic != len(out)-len(real) {
		t.Fatalf("expected %d synthetic rows, got %d", len(out)-len(real), synthetic)
	}
}
