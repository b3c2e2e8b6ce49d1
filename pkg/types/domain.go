package types

// Model describes a discoverable predictor artifact on disk.
type Model struct {
	// Stable identifier for the model (the artifact filename).
	// example: iris-logistic.model
	ID string `json:"id" example:"iris-logistic.model"`
	// Human-friendly name from the artifact metadata.
	// example: Iris classifier
	Name string `json:"name" example:"Iris classifier"`
	// Absolute path to the artifact file on disk.
	// example: /home/user/models/predictors/iris-logistic.model
	Path string `json:"path" example:"/home/user/models/predictors/iris-logistic.model"`
	// Predictor kind (linear or logistic).
	// example: logistic
	Kind string `json:"kind" example:"logistic"`
	// Ordered feature names, when the exporter recorded them.
	Features []string `json:"features,omitempty"`
	// Class labels for logistic predictors.
	Classes []string `json:"classes,omitempty"`
}
