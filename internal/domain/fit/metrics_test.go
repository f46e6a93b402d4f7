package fit

import (
	"math"
	"testing"
)

func TestEvaluateBinary_PerfectClassifier(t *testing.T) {
	y := []int{1, 1, 0, 0, 1, 0}
	scores := []float64{0.9, 0.8, 0.1, 0.2, 0.95, 0.3}

	m := EvaluateBinary(y, scores, 0.5)

	if m.Accuracy != 1 || m.Precision != 1 || m.Recall != 1 || m.F1 != 1 {
		t.Fatalf("expected perfect metrics, got %+v", m)
	}
	if m.ROCAUC != 1 {
		t.Fatalf("expected AUC 1, got %v", m.ROCAUC)
	}
	want := [2][2]int{{3, 0}, {0, 3}}
	if m.Confusion != want {
		t.Fatalf("expected confusion %v, got %v", want, m.Confusion)
	}
}

func TestEvaluateBinary_KnownConfusion(t *testing.T) {
	//           tp   fn   fp   tn
	y := []int{1, 1, 0, 0}
	scores := []float64{0.9, 0.2, 0.8, 0.1}

	m := EvaluateBinary(y, scores, 0.5)

	want := [2][2]int{{1, 1}, {1, 1}}
	if m.Confusion != want {
		t.Fatalf("expected confusion %v, got %v", want, m.Confusion)
	}
	if m.Accuracy != 0.5 {
		t.Fatalf("expected accuracy 0.5, got %v", m.Accuracy)
	}
	if m.Precision != 0.5 || m.Recall != 0.5 || m.F1 != 0.5 {
		t.Fatalf("expected precision/recall/f1 0.5, got %+v", m)
	}
}

func TestEvaluateBinary_Empty(t *testing.T) {
	m := EvaluateBinary(nil, nil, 0.5)
	if m.Accuracy != 0 || m.F1 != 0 {
		t.Fatalf("expected zero metrics on empty input, got %+v", m)
	}
}

func TestROCAUC_RandomScoresSingleClass(t *testing.T) {
	// No negatives: AUC degenerates to 0.5 by convention.
	m := EvaluateBinary([]int{1, 1, 1}, []float64{0.2, 0.5, 0.9}, 0.5)
	if m.ROCAUC != 0.5 {
		t.Fatalf("expected AUC 0.5 with a single class, got %v", m.ROCAUC)
	}
}

func TestROCAUC_TiedScores(t *testing.T) {
	// All scores identical: any threshold is as good as chance.
	m := EvaluateBinary([]int{1, 0, 1, 0}, []float64{0.4, 0.4, 0.4, 0.4}, 0.5)
	if math.Abs(m.ROCAUC-0.5) > 1e-9 {
		t.Fatalf("expected AUC 0.5 for fully tied scores, got %v", m.ROCAUC)
	}
}

func TestROCAUC_Inverted(t *testing.T) {
	m := EvaluateBinary([]int{1, 1, 0, 0}, []float64{0.1, 0.2, 0.8, 0.9}, 0.5)
	if m.ROCAUC != 0 {
		t.Fatalf("expected AUC 0 for inverted ranking, got %v", m.ROCAUC)
	}
}
