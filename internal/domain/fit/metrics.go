package fit

import "sort"

// Metrics are the acceptance metrics for a trained model. Confusion is
// [[tn, fp], [fn, tp]], matching the persisted report's nested-list shape.
type Metrics struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	ROCAUC    float64
	Confusion [2][2]int
}

// EvaluateBinary scores predictions against truth at the given decision
// threshold. Inputs must be the same length; an empty input yields zeroes.
func EvaluateBinary(yTrue []int, scores []float64, threshold float64) Metrics {
	var m Metrics
	if len(yTrue) == 0 || len(yTrue) != len(scores) {
		return m
	}

	var tn, fp, fn, tp int
	for i, y := range yTrue {
		predicted := 0
		if scores[i] >= threshold {
			predicted = 1
		}
		switch {
		case y == 1 && predicted == 1:
			tp++
		case y == 1:
			fn++
		case predicted == 1:
			fp++
		default:
			tn++
		}
	}
	m.Confusion = [2][2]int{{tn, fp}, {fn, tp}}

	total := float64(len(yTrue))
	m.Accuracy = float64(tp+tn) / total
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	m.ROCAUC = rocAUC(yTrue, scores)
	return m
}

// rocAUC is the rank-based (Mann-Whitney) estimate with tied scores given
// their average rank. Returns 0.5 when either class is absent.
func rocAUC(yTrue []int, scores []float64) float64 {
	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return scores[order[a]] < scores[order[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && scores[order[j+1]] == scores[order[i]] {
			j++
		}
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[order[k]] = avgRank
		}
		i = j + 1
	}

	var posRankSum float64
	pos := 0
	for i, y := range yTrue {
		if y == 1 {
			pos++
			posRankSum += ranks[i]
		}
	}
	neg := n - pos
	if pos == 0 || neg == 0 {
		return 0.5
	}
	return (posRankSum - float64(pos)*float64(pos+1)/2) / float64(pos) / float64(neg)
}
