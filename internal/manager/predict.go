package manager

import (
	"context"
	"errors"
	"time"

	"predictd/internal/artifact"
	"predictd/pkg/types"
)

// Predict centralizes prediction behavior: resolve the model id, ensure its
// instance is loaded, pass admission, evaluate the row.
func (m *Manager) Predict(ctx context.Context, req types.PredictRequest) (types.PredictResponse, error) {
	modelID := req.Model
	if modelID == "" {
		modelID = m.defaultModel
		if modelID == "" {
			return types.PredictResponse{}, modelNotFoundError{id: "(unspecified)"}
		}
	}
	if len(req.Features) == 0 {
		return types.PredictResponse{}, ErrBadInput("features are required")
	}

	// The instance can be evicted between ensure and admission under cache
	// pressure; one retry covers it.
	var inst *Instance
	var release func()
	for attempt := 0; ; attempt++ {
		if err := m.EnsureInstance(ctx, modelID); err != nil {
			return types.PredictResponse{}, err
		}
		var err error
		inst, release, err = m.beginPredict(ctx, modelID)
		if err == nil {
			break
		}
		if attempt == 0 && IsModelNotFound(err) {
			continue
		}
		return types.PredictResponse{}, err
	}
	defer release()

	start := time.Now()
	pred, err := inst.Predictor.Predict(req.Features)
	if err != nil {
		var we *artifact.WidthError
		if errors.As(err, &we) {
			return types.PredictResponse{}, ErrBadInput(err.Error())
		}
		return types.PredictResponse{}, err
	}
	resp := types.PredictResponse{
		Model:         modelID,
		Kind:          pred.Kind,
		Label:         pred.Label,
		Probabilities: pred.Probabilities,
		ElapsedMS:     float64(time.Since(start)) / float64(time.Millisecond),
	}
	if pred.Kind == artifact.KindLinear {
		v := pred.Value
		resp.Value = &v
	}
	return resp, nil
}
