package predict

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrNotEnoughSamples is returned when the split leaves no training rows.
var ErrNotEnoughSamples = errors.New("not enough samples to train")

const (
	defaultTestFraction = 0.2
	defaultSeed         = 42
	defaultIterations   = 500
	defaultLearningRate = 0.5
)

// Options tune training. Zero values fall back to defaults, except
// TestFraction which uses a negative value to mean "no holdout".
type Options struct {
	TestFraction float64
	Seed         int64
	Iterations   int
	LearningRate float64
}

// DefaultOptions mirrors a 80/20 split with a fixed seed.
func DefaultOptions() Options {
	return Options{
		TestFraction: defaultTestFraction,
		Seed:         defaultSeed,
		Iterations:   defaultIterations,
		LearningRate: defaultLearningRate,
	}
}

func (o Options) withDefaults() Options {
	if o.TestFraction == 0 {
		o.TestFraction = defaultTestFraction
	}
	if o.TestFraction < 0 {
		o.TestFraction = 0
	}
	if o.Seed == 0 {
		o.Seed = defaultSeed
	}
	if o.Iterations <= 0 {
		o.Iterations = defaultIterations
	}
	if o.LearningRate <= 0 {
		o.LearningRate = defaultLearningRate
	}
	return o
}

// ClassReport holds precision and recall for one label.
type ClassReport struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	Support   int     `json:"support"`
}

// Evaluation scores a model on the held out split.
type Evaluation struct {
	TrainSize int         `json:"trainSize"`
	TestSize  int         `json:"testSize"`
	Accuracy  float64     `json:"accuracy"`
	Win       ClassReport `json:"win"`
	Loss      ClassReport `json:"loss"`
}

// Train shuffles samples with the seed, holds out TestFraction of them and
// fits logistic regression on the rest by batch gradient descent.
func Train(samples []Sample, opts Options) (*Model, error) {
	opts = opts.withDefaults()
	if opts.TestFraction >= 1 {
		return nil, fmt.Errorf("test fraction %.2f leaves no training data", opts.TestFraction)
	}

	train, test := split(samples, opts.TestFraction, opts.Seed)
	if len(train) == 0 {
		return nil, fmt.Errorf("%w: have %d", ErrNotEnoughSamples, len(samples))
	}

	weights := fit(train, opts.Iterations, opts.LearningRate)
	model := &Model{
		Features:  append([]string(nil), FeatureNames...),
		Weights:   weights,
		TrainedAt: time.Now().UTC(),
	}
	model.Evaluation = evaluate(model, test)
	model.Evaluation.TrainSize = len(train)
	return model, nil
}

// split holds out ceil(n*fraction) shuffled samples for testing.
func split(samples []Sample, fraction float64, seed int64) (train, test []Sample) {
	n := len(samples)
	nTest := int(math.Ceil(float64(n) * fraction))
	if nTest >= n {
		nTest = n - 1
	}
	if nTest < 0 {
		nTest = 0
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	test = make([]Sample, 0, nTest)
	train = make([]Sample, 0, n-nTest)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, samples[idx])
		} else {
			train = append(train, samples[idx])
		}
	}
	return train, test
}

func fit(train []Sample, iterations int, lr float64) []float64 {
	w := make([]float64, len(FeatureNames)+1)
	grad := make([]float64, len(w))
	n := float64(len(train))
	for iter := 0; iter < iterations; iter++ {
		for k := range grad {
			grad[k] = 0
		}
		for _, s := range train {
			x := s.vector()
			diff := sigmoid(dot(w, x)) - boolFloat(s.Win)
			for k := range grad {
				grad[k] += diff * x[k]
			}
		}
		for k := range w {
			w[k] -= lr * grad[k] / n
		}
	}
	return w
}

func evaluate(m *Model, test []Sample) Evaluation {
	ev := Evaluation{TestSize: len(test)}
	if len(test) == 0 {
		return ev
	}
	var tp, fp, tn, fn int
	for _, s := range test {
		pred := m.Predict(s.Features) >= 0.5
		switch {
		case pred && s.Win:
			tp++
		case pred && !s.Win:
			fp++
		case !pred && !s.Win:
			tn++
		default:
			fn++
		}
	}
	ev.Accuracy = float64(tp+tn) / float64(len(test))
	ev.Win = ClassReport{Precision: ratio(tp, tp+fp), Recall: ratio(tp, tp+fn), Support: tp + fn}
	ev.Loss = ClassReport{Precision: ratio(tn, tn+fn), Recall: ratio(tn, tn+fp), Support: tn + fp}
	return ev
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
