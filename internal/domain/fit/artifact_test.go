package fit

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func sampleReport() *Report {
	return &Report{
		TrainedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		SampleCount:      200,
		RealSamples:      80,
		SyntheticSamples: 120,
		Metrics: MetricsSummary{
			Accuracy:  0.9,
			Precision: 0.88,
			Recall:    0.92,
			F1:        0.9,
			ROCAUC:    0.95,
			CVF1Mean:  0.89,
			CVF1Std:   0.02,
		},
		Confusion: [2][2]int{{18, 2}, {2, 18}},
		Importance: []FeatureImportance{
			{Name: "weighted_coverage", Score: 0.4},
			{Name: "skill_jaccard", Score: 0.35},
			{Name: "experience_delta", Score: 0.25},
		},
	}
}

func TestReport_MarshalKeepsImportanceOrder(t *testing.T) {
	b, err := json.Marshal(sampleReport())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)

	iCov := strings.Index(s, `"weighted_coverage"`)
	iJac := strings.Index(s, `"skill_jaccard"`)
	iExp := strings.Index(s, `"experience_delta"`)
	if iCov < 0 || iJac < 0 || iExp < 0 {
		t.Fatalf("importance keys missing from %s", s)
	}
	if !(iCov < iJac && iJac < iExp) {
		t.Fatalf("importance keys out of ranking order in %s", s)
	}
	if !strings.Contains(s, `"confusion_matrix":[[18,2],[2,18]]`) {
		t.Fatalf("confusion matrix shape wrong in %s", s)
	}
	if !strings.Contains(s, `"metrics":{`) {
		t.Fatalf("metrics object missing in %s", s)
	}
}

func TestReport_RoundTrip(t *testing.T) {
	in := sampleReport()
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Report
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.SampleCount != in.SampleCount || out.Metrics != in.Metrics || out.Confusion != in.Confusion {
		t.Fatalf("round trip changed scalar fields: %+v", out)
	}
	if len(out.Importance) != len(in.Importance) {
		t.Fatalf("expected %d importance entries, got %d", len(in.Importance), len(out.Importance))
	}
	for i := range in.Importance {
		if out.Importance[i] != in.Importance[i] {
			t.Fatalf("importance entry %d changed: %+v vs %+v", i, out.Importance[i], in.Importance[i])
		}
	}
}

func TestRankImportance_SortsDescending(t *testing.T) {
	ranked := rankImportance([]float64{0.1, 0.5, 0.5, 0.0})
	if len(ranked) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("not sorted at %d: %+v", i, ranked)
		}
		if ranked[i].Score == ranked[i-1].Score && ranked[i].Name < ranked[i-1].Name {
			t.Fatalf("tie not broken by name at %d: %+v", i, ranked)
		}
	}
}

func TestSaveLoadArtifact(t *testing.T) {
	samples := syntheticTrainingSet(200, 11)
	forest, rep, err := Train(samples, TrainOptions{
		Params: Params{Trees: 10, MaxDepth: 6, Seed: 11},
		Seed:   11,
	})
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	dir := t.TempDir()
	art := &Artifact{
		Version:      1,
		TrainedAt:    time.Now().UTC(),
		FeatureNames: FeatureNames,
		Forest:       forest,
	}
	if err := SaveArtifact(dir, art, rep); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadArtifact(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Forest.Dims != forest.Dims || len(loaded.Forest.Trees) != len(forest.Trees) {
		t.Fatalf("loaded forest shape differs: %d/%d vs %d/%d",
			loaded.Forest.Dims, len(loaded.Forest.Trees), forest.Dims, len(forest.Trees))
	}

	// Same inputs must score identically through the persisted copy.
	vec := samples[0].Features
	if got, want := loaded.Forest.Predict(vec), forest.Predict(vec); got != want {
		t.Fatalf("persisted forest predicts %v, in-memory %v", got, want)
	}

	gotRep, err := LoadReport(dir)
	if err != nil {
		t.Fatalf("load report: %v", err)
	}
	if gotRep.SampleCount != rep.SampleCount {
		t.Fatalf("report sample_count %d, want %d", gotRep.SampleCount, rep.SampleCount)
	}
}

func TestLoadArtifact_Missing(t *testing.T) {
	_, err := LoadArtifact(t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestStore_PublishAndPredict(t *testing.T) {
	store := NewStore()

	if _, err := store.Predict(make([]float64, NumFeatures)); !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}

	samples := syntheticTrainingSet(200, 13)
	forest, _, err := Train(samples, TrainOptions{
		Params: Params{Trees: 10, MaxDepth: 6, Seed: 13},
		Seed:   13,
	})
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	store.Publish(&Artifact{Version: 1, FeatureNames: FeatureNames, Forest: forest})

	p, err := store.Predict(samples[0].Features)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if p < 0 || p > 1 {
		t.Fatalf("probability out of range: %v", p)
	}

	if _, err := store.Predict([]float64{1, 2}); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
}
