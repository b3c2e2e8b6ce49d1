package types

// PredictRequest represents a prediction request payload.
type PredictRequest struct {
	// Optional model identifier. If empty, the server default is used.
	// example: iris-logistic.model
	Model string `json:"model,omitempty" example:"iris-logistic.model"`
	// Feature values for a single row, in artifact feature order.
	// example: [5.1, 3.5, 1.4, 0.2]
	Features []float64 `json:"features"`
}

// PredictResponse is returned by POST /api/v1/predict.
type PredictResponse struct {
	// Model id that served the request.
	// example: iris-logistic.model
	Model string `json:"model" example:"iris-logistic.model"`
	// Predictor kind (linear or logistic).
	// example: logistic
	Kind string `json:"kind" example:"logistic"`
	// Regression output. Present for linear predictors only.
	// example: 42.7
	Value *float64 `json:"value,omitempty" example:"42.7"`
	// Predicted class label. Present for logistic predictors only.
	// example: setosa
	Label string `json:"label,omitempty" example:"setosa"`
	// Per-class probabilities. Present for logistic predictors only.
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	// Wall-clock evaluation time in milliseconds.
	// example: 0.031
	ElapsedMS float64 `json:"elapsed_ms" example:"0.031"`
}

// ModelsResponse wraps the list of models returned by GET /api/v1/models.
type ModelsResponse struct {
	// List of available models.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: model not found: unknown.model
	Error string `json:"error" example:"model not found: unknown.model"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// InstanceStatus summarizes a loaded predictor instance for /api/v1/status.
type InstanceStatus struct {
	// ID of the model this instance serves.
	// example: iris-logistic.model
	ModelID string `json:"model_id" example:"iris-logistic.model"`
	// Current lifecycle state of the instance (loading, ready, draining).
	// example: ready
	State string `json:"state" example:"ready"`
	// Last time this instance served a request (unix seconds).
	// example: 1700000000
	LastUsed int64 `json:"last_used_unix" example:"1700000000"`
	// Current queue length for incoming requests.
	// example: 0
	QueueLen int `json:"queue_len" example:"0"`
	// Number of in-flight requests currently being processed.
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Maximum queued requests allowed before backpressure triggers.
	// example: 32
	MaxQueueDepth int `json:"max_queue_depth" example:"32"`
}

// StatusResponse is returned by GET /api/v1/status.
type StatusResponse struct {
	// Loaded/managed instances.
	Instances []InstanceStatus `json:"instances"`
	// Maximum number of instances kept loaded at once.
	// example: 4
	MaxLoaded int `json:"max_loaded" example:"4"`
	// Default model id used when a request omits the model.
	// example: iris-logistic.model
	DefaultModel string `json:"default_model,omitempty" example:"iris-logistic.model"`
	// Last load error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Total number of evictions performed to bound loaded instances.
	// example: 5
	EvictionsTotal uint64 `json:"evictions_total" example:"5"`
	// Total number of artifact loads.
	// example: 12
	LoadsTotal uint64 `json:"loads_total" example:"12"`
	// Number of instances currently warming up (loading).
	// example: 1
	WarmupsInProgress int `json:"warmups_in_progress" example:"1"`
	// Number of instances currently draining (unload in progress).
	// example: 0
	DrainingCount int `json:"draining_count" example:"0"`
}
