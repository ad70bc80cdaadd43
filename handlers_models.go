package main

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Rohitdare/carbon/carbon"
)

// handleModelInfo reports the live model's artifact metadata.
func (a *App) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(a.estimator.Describe())
}

// handleRetrain retrains the model on submitted labeled samples and swaps
// the persisted artifact on success.
func (a *App) handleRetrain(w http.ResponseWriter, r *http.Request) {
	var req retrainReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	cfg := carbon.TrainConfig{
		Epochs:          req.Epochs,
		ValidationSplit: req.ValidationSplit,
	}
	result, err := a.estimator.Retrain(req.TrainingData, cfg)
	if err != nil {
		writeEstimationErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(result)
}

// handleModelPredict runs the model directly on supplied input groups,
// without touching the imagery collaborator.
func (a *App) handleModelPredict(w http.ResponseWriter, r *http.Request) {
	var in carbon.EstimationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	result, err := a.estimator.Predict(in)
	if err != nil {
		writeEstimationErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(result)
}

// handleModelValidate scores the current model against labeled samples.
func (a *App) handleModelValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	report, err := a.estimator.Validate(req.ValidationData)
	if err != nil {
		writeEstimationErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(report)
}

// handleModelPerformance summarizes model state for dashboards.
func (a *App) handleModelPerformance(w http.ResponseWriter, r *http.Request) {
	health := a.estimator.Health()
	_ = json.NewEncoder(w).Encode(bson.M{
		"model_status":    health.Status,
		"model_loaded":    health.ModelLoaded,
		"bootstrap_model": health.BootstrapModel,
		"last_update":     health.LastUpdate,
		"model_info":      health.ModelInfo,
	})
}
