// Package carbon implements the carbon sequestration estimation pipeline:
// feature assembly from heterogeneous inputs, a trainable regression model
// with filesystem persistence, input quality scoring, and the estimation
// service that ties them together.
package carbon

import "errors"

// Sentinel errors for the estimation pipeline. Callers match them with
// errors.Is; wrapped messages carry the detail.
var (
	// ErrModelNotReady is returned by predict/retrain before any model
	// has been trained or loaded.
	ErrModelNotReady = errors.New("model not trained or loaded")

	// ErrBadData reports training input that cannot produce a meaningful
	// fit, such as too few samples.
	ErrBadData = errors.New("invalid training data")

	// ErrTraining reports a numeric fit failure (diverging or non-finite
	// loss). The model keeps its prior state.
	ErrTraining = errors.New("training failed")

	// ErrPersistence reports an artifact save/load integrity failure.
	ErrPersistence = errors.New("model persistence failed")
)
