// Package manager owns predictor lifecycle: it loads serialized artifacts
// at most once per process, keeps a bounded LRU set of loaded instances,
// applies per-instance admission (queue + single in-flight slot), and
// evaluates prediction requests against the loaded predictor.
//
// Predictors are immutable after load, so concurrent Predict calls on one
// instance are safe; the admission queue exists for backpressure, not for
// memory safety.
package manager
