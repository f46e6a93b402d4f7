package fit

import (
	"math"
	"math/rand"
	"sort"
)

// Params controls forest training. Zero values fall back to defaults.
type Params struct {
	Trees       int     `json:"trees"`
	MaxDepth    int     `json:"max_depth"`
	MinLeaf     int     `json:"min_leaf"`
	MaxFeatures int     `json:"max_features"` // features tried per split; 0 = sqrt(dims)
	Seed        int64   `json:"seed"`
}

func DefaultParams() Params {
	return Params{Trees: 200, MaxDepth: 12, MinLeaf: 2, Seed: 1}
}

func (p Params) normalized(dims int) Params {
	d := DefaultParams()
	if p.Trees <= 0 {
		p.Trees = d.Trees
	}
	if p.MaxDepth <= 0 {
		p.MaxDepth = d.MaxDepth
	}
	if p.MinLeaf <= 0 {
		p.MinLeaf = d.MinLeaf
	}
	if p.MaxFeatures <= 0 || p.MaxFeatures > dims {
		p.MaxFeatures = int(math.Ceil(math.Sqrt(float64(dims))))
	}
	if p.Seed == 0 {
		p.Seed = d.Seed
	}
	return p
}

// node is one decision node. Leaves carry the positive-class fraction of the
// training samples that reached them.
type node struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t"`
	Left      int32   `json:"l"`
	Right     int32   `json:"r"`
	Leaf      bool    `json:"leaf,omitempty"`
	Value     float64 `json:"v"`
}

// Tree is a CART tree stored as a flat node slice; index 0 is the root.
type Tree struct {
	Nodes []node `json:"nodes"`
}

func (t Tree) predict(x []float64) float64 {
	i := int32(0)
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Forest is a bagged ensemble of CART trees over the engineered features.
// Once trained (or loaded) it is read-only; Predict is safe for concurrent
// use.
type Forest struct {
	Params     Params    `json:"params"`
	Dims       int       `json:"dims"`
	Trees      []Tree    `json:"trees"`
	Importance []float64 `json:"importance"`
}

// Predict returns the mean leaf probability across all trees, in [0,1].
func (f *Forest) Predict(x []float64) float64 {
	if f == nil || len(f.Trees) == 0 {
		return 0
	}
	var sum float64
	for _, t := range f.Trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.Trees))
}

// TrainForest fits the ensemble with bootstrap sampling. Feature importance
// is the Gini impurity decrease accumulated per feature, normalized to sum
// to 1. Deterministic for a fixed Params.Seed.
func TrainForest(X [][]float64, y []int, p Params) *Forest {
	dims := 0
	if len(X) > 0 {
		dims = len(X[0])
	}
	p = p.normalized(dims)

	f := &Forest{
		Params:     p,
		Dims:       dims,
		Trees:      make([]Tree, 0, p.Trees),
		Importance: make([]float64, dims),
	}
	if len(X) == 0 || dims == 0 {
		return f
	}

	for ti := 0; ti < p.Trees; ti++ {
		rng := rand.New(rand.NewSource(p.Seed + int64(ti)*7919))

		sample := make([]int, len(X))
		for i := range sample {
			sample[i] = rng.Intn(len(X))
		}

		b := treeBuilder{X: X, y: y, params: p, rng: rng, importance: f.Importance}
		b.grow(sample, 0)
		f.Trees = append(f.Trees, Tree{Nodes: b.nodes})
	}

	var total float64
	for _, v := range f.Importance {
		total += v
	}
	if total > 0 {
		for i := range f.Importance {
			f.Importance[i] /= total
		}
	}
	return f
}

type treeBuilder struct {
	X          [][]float64
	y          []int
	params     Params
	rng        *rand.Rand
	nodes      []node
	importance []float64
}

func (b *treeBuilder) grow(idx []int, depth int) int32 {
	pos := 0
	for _, i := range idx {
		pos += b.y[i]
	}
	value := float64(pos) / float64(len(idx))

	if depth >= b.params.MaxDepth || len(idx) < 2*b.params.MinLeaf || pos == 0 || pos == len(idx) {
		return b.leaf(value)
	}

	feature, threshold, gain := b.bestSplit(idx)
	if feature < 0 {
		return b.leaf(value)
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if b.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < b.params.MinLeaf || len(right) < b.params.MinLeaf {
		return b.leaf(value)
	}

	b.importance[feature] += gain * float64(len(idx))

	self := int32(len(b.nodes))
	b.nodes = append(b.nodes, node{Feature: feature, Threshold: threshold})
	b.nodes[self].Left = b.grow(left, depth+1)
	b.nodes[self].Right = b.grow(right, depth+1)
	return self
}

func (b *treeBuilder) leaf(value float64) int32 {
	self := int32(len(b.nodes))
	b.nodes = append(b.nodes, node{Leaf: true, Value: value})
	return self
}

// bestSplit searches MaxFeatures randomly chosen features for the threshold
// with the greatest Gini impurity decrease. Returns feature -1 when no split
// improves on the parent.
func (b *treeBuilder) bestSplit(idx []int) (int, float64, float64) {
	dims := len(b.X[idx[0]])
	parent := gini(b.y, idx)

	features := b.rng.Perm(dims)[:b.params.MaxFeatures]

	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	values := make([]float64, len(idx))
	order := make([]int, len(idx))
	for _, feature := range features {
		for k, i := range idx {
			values[k] = b.X[i][feature]
			order[k] = i
		}
		sort.Sort(&byValue{values: values, order: order})

		// Sweep left-to-right maintaining class counts on each side.
		leftPos, leftN := 0, 0
		totalPos := 0
		for _, i := range idx {
			totalPos += b.y[i]
		}
		total := len(idx)

		for k := 0; k < total-1; k++ {
			leftPos += b.y[order[k]]
			leftN++
			if values[k] == values[k+1] {
				continue
			}

			rightN := total - leftN
			rightPos := totalPos - leftPos

			gl := giniFromCounts(leftPos, leftN)
			gr := giniFromCounts(rightPos, rightN)
			weighted := (float64(leftN)*gl + float64(rightN)*gr) / float64(total)
			gain := parent - weighted

			if gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = (values[k] + values[k+1]) / 2
			}
		}
	}

	return bestFeature, bestThreshold, bestGain
}

type byValue struct {
	values []float64
	order  []int
}

func (s *byValue) Len() int           { return len(s.values) }
func (s *byValue) Less(i, j int) bool { return s.values[i] < s.values[j] }
func (s *byValue) Swap(i, j int) {
	s.values[i], s.values[j] = s.values[j], s.values[i]
	s.order[i], s.order[j] = s.order[j], s.order[i]
}

func gini(y []int, idx []int) float64 {
	pos := 0
	for _, i := range idx {
		pos += y[i]
	}
	return giniFromCounts(pos, len(idx))
}

func giniFromCounts(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 2 * p * (1 - p)
}
