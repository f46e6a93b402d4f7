package fit

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData halts training when the combined real+synthetic
// sample count is below the configured minimum. Training on too little data
// must fail loudly, never proceed silently.
var ErrInsufficientData = errors.New("insufficient training data")

const (
	// DefaultMinSamples is the minimum combined sample count.
	DefaultMinSamples = 100

	defaultFolds        = 5
	defaultTestFraction = 0.2
	decisionThreshold   = 0.5
)

// TrainOptions configures a training run.
type TrainOptions struct {
	Params       Params
	MinSamples   int
	Folds        int
	TestFraction float64
	Seed         int64
}

func (o TrainOptions) normalized() TrainOptions {
	if o.MinSamples <= 0 {
		o.MinSamples = DefaultMinSamples
	}
	if o.Folds <= 1 {
		o.Folds = defaultFolds
	}
	if o.TestFraction <= 0 || o.TestFraction >= 1 {
		o.TestFraction = defaultTestFraction
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	return o
}

// Train fits a forest on the provided samples: stratified 80/20 train/test
// split, k-fold cross-validation on the training portion reported as F1
// mean and std, final fit on the training portion, held-out evaluation on
// the test portion. The returned report carries every acceptance metric.
func Train(samples []Sample, opts TrainOptions) (*Forest, *Report, error) {
	opts = opts.normalized()

	if len(samples) < opts.MinSamples {
		return nil, nil, fmt.Errorf("%w: have %d samples, need at least %d",
			ErrInsufficientData, len(samples), opts.MinSamples)
	}

	pos, neg, synthetic := 0, 0, 0
	for _, s := range samples {
		if s.Label == 1 {
			pos++
		} else {
			neg++
		}
		if s.Synthetic {
			synthetic++
		}
	}
	if pos == 0 || neg == 0 {
		return nil, nil, fmt.Errorf("%w: need both classes, have %d positive and %d negative",
			ErrInsufficientData, pos, neg)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	train, test := stratifiedSplit(samples, opts.TestFraction, rng)

	foldF1 := crossValidate(train, opts)
	cvMean := stat.Mean(foldF1, nil)
	cvStd := stat.StdDev(foldF1, nil)

	forest := TrainForest(featureMatrix(train), labels(train), opts.Params)

	scores := make([]float64, len(test))
	for i, s := range test {
		scores[i] = forest.Predict(s.Features)
	}
	m := EvaluateBinary(labels(test), scores, decisionThreshold)

	report := &Report{
		TrainedAt:        time.Now().UTC(),
		SampleCount:      len(samples),
		SyntheticSamples: synthetic,
		RealSamples:      len(samples) - synthetic,
		Metrics: MetricsSummary{
			Accuracy:  m.Accuracy,
			Precision: m.Precision,
			Recall:    m.Recall,
			F1:        m.F1,
			ROCAUC:    m.ROCAUC,
			CVF1Mean:  cvMean,
			CVF1Std:   cvStd,
		},
		Confusion:  m.Confusion,
		Importance: rankImportance(forest.Importance),
	}
	return forest, report, nil
}

// stratifiedSplit shuffles within each class and carves off testFraction of
// each, so the held-out set preserves the class balance.
func stratifiedSplit(samples []Sample, testFraction float64, rng *rand.Rand) (train, test []Sample) {
	var pos, neg []Sample
	for _, s := range samples {
		if s.Label == 1 {
			pos = append(pos, s)
		} else {
			neg = append(neg, s)
		}
	}
	for _, class := range [][]Sample{pos, neg} {
		rng.Shuffle(len(class), func(i, j int) { class[i], class[j] = class[j], class[i] })
		cut := int(float64(len(class)) * testFraction)
		test = append(test, class[:cut]...)
		train = append(train, class[cut:]...)
	}
	rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
	rng.Shuffle(len(test), func(i, j int) { test[i], test[j] = test[j], test[i] })
	return train, test
}

// crossValidate runs k-fold CV on the training portion and returns per-fold
// F1. Folds are round-robin assigned after a stratified shuffle so each fold
// sees both classes.
func crossValidate(train []Sample, opts TrainOptions) []float64 {
	folds := opts.Folds
	assignment := make([]int, len(train))
	posSeen, negSeen := 0, 0
	for i, s := range train {
		if s.Label == 1 {
			assignment[i] = posSeen % folds
			posSeen++
		} else {
			assignment[i] = negSeen % folds
			negSeen++
		}
	}

	f1s := make([]float64, 0, folds)
	for fold := 0; fold < folds; fold++ {
		var foldTrain, foldTest []Sample
		for i, s := range train {
			if assignment[i] == fold {
				foldTest = append(foldTest, s)
			} else {
				foldTrain = append(foldTrain, s)
			}
		}
		if len(foldTest) == 0 || len(foldTrain) == 0 {
			continue
		}

		params := opts.Params
		params.Seed = opts.Seed + int64(fold+1)
		forest := TrainForest(featureMatrix(foldTrain), labels(foldTrain), params)

		scores := make([]float64, len(foldTest))
		for i, s := range foldTest {
			scores[i] = forest.Predict(s.Features)
		}
		f1s = append(f1s, EvaluateBinary(labels(foldTest), scores, decisionThreshold).F1)
	}
	return f1s
}

func featureMatrix(samples []Sample) [][]float64 {
	X := make([][]float64, len(samples))
	for i, s := range samples {
		X[i] = s.Features
	}
	return X
}

func labels(samples []Sample) []int {
	y := make([]int, len(samples))
	for i, s := range samples {
		y[i] = s.Label
	}
	return y
}
