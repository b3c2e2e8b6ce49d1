package artifact

import "math"

// Prediction is the outcome of evaluating one feature row.
type Prediction struct {
	Kind string
	// Value holds the regression output for linear predictors, and the
	// probability of Label for logistic predictors.
	Value float64
	// Label and Probabilities are set for logistic predictors only.
	Label         string
	Probabilities map[string]float64
}

// Predict evaluates a single feature row. The row width must match the
// coefficient width exactly.
func (a *Artifact) Predict(features []float64) (Prediction, error) {
	want := a.NumFeatures()
	if len(features) != want {
		return Prediction{}, &WidthError{Got: len(features), Want: want}
	}
	switch a.Meta.Kind {
	case KindLinear:
		return Prediction{
			Kind:  KindLinear,
			Value: dot(a.Coef[0], features) + a.Intercept[0],
		}, nil
	case KindLogistic:
		scores := make([]float64, len(a.Coef))
		for i, row := range a.Coef {
			scores[i] = dot(row, features) + a.Intercept[i]
		}
		probs := softmax(scores)
		best := 0
		for i := range probs {
			if probs[i] > probs[best] {
				best = i
			}
		}
		byClass := make(map[string]float64, len(probs))
		for i, c := range a.Meta.Classes {
			byClass[c] = probs[i]
		}
		return Prediction{
			Kind:          KindLogistic,
			Value:         probs[best],
			Label:         a.Meta.Classes[best],
			Probabilities: byClass,
		}, nil
	}
	// validate() rejects unknown kinds at decode time.
	return Prediction{}, &WidthError{Got: len(features), Want: want}
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// softmax shifts by the max score before exponentiating so large scores do
// not overflow.
func softmax(scores []float64) []float64 {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = math.Exp(s - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
