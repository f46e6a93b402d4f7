package fit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	modelFileName  = "model.json"
	reportFileName = "report.json"
)

// MetricsSummary is the metrics block of the persisted report.
type MetricsSummary struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	ROCAUC    float64 `json:"roc_auc"`
	CVF1Mean  float64 `json:"cv_f1_mean"`
	CVF1Std   float64 `json:"cv_f1_std"`
}

// FeatureImportance is one entry of the importance ranking.
type FeatureImportance struct {
	Name  string
	Score float64
}

// Report is the JSON training report. Its shape (a "metrics" object, a
// "confusion_matrix" 2x2 nested list and a "feature_importance" object
// ordered by descending score) is consumed by external reporting tooling
// and must not change.
type Report struct {
	TrainedAt        time.Time           `json:"trained_at"`
	SampleCount      int                 `json:"sample_count"`
	RealSamples      int                 `json:"real_samples"`
	SyntheticSamples int                 `json:"synthetic_samples"`
	Metrics          MetricsSummary      `json:"metrics"`
	Confusion        [2][2]int           `json:"confusion_matrix"`
	Importance       []FeatureImportance `json:"feature_importance"`
}

// rankImportance pairs scores with FeatureNames and sorts descending;
// ties break on name so the ranking is total.
func rankImportance(scores []float64) []FeatureImportance {
	out := make([]FeatureImportance, 0, len(scores))
	for i, s := range scores {
		name := fmt.Sprintf("feature_%d", i)
		if i < len(FeatureNames) {
			name = FeatureNames[i]
		}
		out = append(out, FeatureImportance{Name: name, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// MarshalJSON renders the ranking as a JSON object whose keys appear in
// ranking order, which is what the downstream report consumers expect.
func (r Report) MarshalJSON() ([]byte, error) {
	var imp bytes.Buffer
	imp.WriteByte('{')
	for i, fi := range r.Importance {
		if i > 0 {
			imp.WriteByte(',')
		}
		key, err := json.Marshal(fi.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(fi.Score)
		if err != nil {
			return nil, err
		}
		imp.Write(key)
		imp.WriteByte(':')
		imp.Write(val)
	}
	imp.WriteByte('}')

	type alias Report
	base, err := json.Marshal(struct {
		alias
		Importance json.RawMessage `json:"feature_importance"`
	}{alias(r), imp.Bytes()})
	if err != nil {
		return nil, err
	}
	return base, nil
}

// UnmarshalJSON reads the importance object back preserving key order.
func (r *Report) UnmarshalJSON(data []byte) error {
	type alias Report
	var raw struct {
		alias
		Importance json.RawMessage `json:"feature_importance"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Report(raw.alias)
	r.Importance = nil

	if len(raw.Importance) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw.Importance))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("feature_importance: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("feature_importance: non-string key %v", keyTok)
		}
		var score float64
		if err := dec.Decode(&score); err != nil {
			return err
		}
		r.Importance = append(r.Importance, FeatureImportance{Name: name, Score: score})
	}
	return nil
}

// Artifact is the persisted, immutable model. Once loaded it is never
// mutated; publication replaces the whole pointer.
type Artifact struct {
	Version      int       `json:"version"`
	TrainedAt    time.Time `json:"trained_at"`
	FeatureNames []string  `json:"feature_names"`
	Forest       *Forest   `json:"forest"`
}

// SaveArtifact writes model.json and report.json into dir atomically
// (temp file + rename), so a concurrently loading reader never observes a
// half-written model.
func SaveArtifact(dir string, art *Artifact, rep *Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if err := writeJSONAtomic(filepath.Join(dir, modelFileName), art); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	if err := writeJSONAtomic(filepath.Join(dir, reportFileName), rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// LoadArtifact reads a previously saved model. A missing directory or file
// returns os.ErrNotExist wrapped, which callers treat as "no model yet".
func LoadArtifact(dir string) (*Artifact, error) {
	b, err := os.ReadFile(filepath.Join(dir, modelFileName))
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var art Artifact
	if err := json.Unmarshal(b, &art); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if art.Forest == nil || len(art.Forest.Trees) == 0 {
		return nil, fmt.Errorf("decode model: empty forest")
	}
	return &art, nil
}

// LoadReport reads the training report back.
func LoadReport(dir string) (*Report, error) {
	b, err := os.ReadFile(filepath.Join(dir, reportFileName))
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var rep Report
	if err := json.Unmarshal(b, &rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}

func writeJSONAtomic(path string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
