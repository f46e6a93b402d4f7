package fit

import (
	"math/rand"
	"testing"
)

// separableDataset builds a toy 2-feature problem where label == 1 iff
// feature 0 exceeds 0.5, with feature 1 pure noise.
func separableDataset(n int, rng *rand.Rand) ([][]float64, []int) {
	X := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		a := rng.Float64()
		X[i] = []float64{a, rng.Float64()}
		if a > 0.5 {
			y[i] = 1
		}
	}
	return X, y
}

func TestTrainForest_LearnsSeparableData(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	X, y := separableDataset(400, rng)

	f := TrainForest(X, y, Params{Trees: 25, MaxDepth: 6, Seed: 7})

	correct := 0
	for i := 0; i < 200; i++ {
		a := rng.Float64()
		p := f.Predict([]float64{a, rng.Float64()})
		predicted := 0
		if p >= 0.5 {
			predicted = 1
		}
		want := 0
		if a > 0.5 {
			want = 1
		}
		if predicted == want {
			correct++
		}
	}
	if correct < 180 {
		t.Fatalf("forest accuracy too low on separable data: %d/200", correct)
	}
}

func TestTrainForest_ImportanceFavorsInformativeFeature(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	X, y := separableDataset(400, rng)

	f := TrainForest(X, y, Params{Trees: 25, MaxDepth: 6, Seed: 11})

	if len(f.Importance) != 2 {
		t.Fatalf("expected 2 importance entries, got %d", len(f.Importance))
	}
	if f.Importance[0] <= f.Importance[1] {
		t.Fatalf("expected informative feature to dominate, got %v", f.Importance)
	}
	sum := f.Importance[0] + f.Importance[1]
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("expected normalized importance, sum=%v", sum)
	}
}

func TestTrainForest_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	X, y := separableDataset(120, rng)

	a := TrainForest(X, y, Params{Trees: 10, Seed: 99})
	b := TrainForest(X, y, Params{Trees: 10, Seed: 99})

	probe := []float64{0.42, 0.17}
	if a.Predict(probe) != b.Predict(probe) {
		t.Fatalf("same seed produced different forests")
	}
}

func TestForest_PredictRange(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	X, y := separableDataset(150, rng)
	f := TrainForest(X, y, Params{Trees: 15, Seed: 2})

	for i := 0; i < 50; i++ {
		p := f.Predict([]float64{rng.Float64() * 2, rng.Float64() * 2})
		if p < 0 || p > 1 {
			t.Fatalf("probability out of range: %v", p)
		}
	}
}

func TestTrainForest_EmptyInput(t *testing.T) {
	f := TrainForest(nil, nil, Params{})
	if got := f.Predict([]float64{1, 2}); got != 0 {
		t.Fatalf("expected 0 from empty forest, got %v", got)
	}
}
