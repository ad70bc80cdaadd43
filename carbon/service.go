package carbon

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"
)

// EstimationService owns the process-wide model and exposes the
// predict/retrain/health contract. The model pointer is swapped wholesale
// under the mutex, so predictions concurrent with a retrain observe either
// the old or the new artifact, never a partial one. Retrains are
// serialized.
type EstimationService struct {
	mu    sync.RWMutex // guards model, lastUpdate, bootstrapped
	model *Model

	trainMu sync.Mutex // at most one retrain in flight

	modelDir     string
	lastUpdate   *time.Time
	bootstrapped bool // model came from synthetic bootstrap data
}

// NewEstimationService returns a service persisting its artifact under
// modelDir. Call EnsureModel before serving predictions.
func NewEstimationService(modelDir string) *EstimationService {
	return &EstimationService{modelDir: modelDir, model: NewModel()}
}

// EnsureModel loads the persisted artifact when one exists, and otherwise
// trains and saves a placeholder model from synthetic bootstrap data so the
// service is servable without pre-existing labeled samples.
func (s *EstimationService) EnsureModel() error {
	if ArtifactExists(s.modelDir) {
		m := NewModel()
		if err := m.Load(s.modelDir); err != nil {
			return err
		}
		s.mu.Lock()
		s.model = m
		s.mu.Unlock()
		log.Printf("carbon estimation model loaded from %s", s.modelDir)
		return nil
	}

	log.Print("no pre-trained model found, training bootstrap model from synthetic data")
	samples := SyntheticTrainingData(time.Now().UnixNano())

	m := NewModel()
	if _, err := m.Train(samples, nil, TrainConfig{}); err != nil {
		return fmt.Errorf("bootstrap training: %w", err)
	}
	if err := m.Save(s.modelDir); err != nil {
		return err
	}
	s.mu.Lock()
	s.model = m
	s.bootstrapped = true
	s.mu.Unlock()
	log.Printf("bootstrap carbon estimation model trained and saved to %s", s.modelDir)
	return nil
}

// current returns the live model under the read lock.
func (s *EstimationService) current() *Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Predict runs the model on one input and attaches the quality analysis.
func (s *EstimationService) Predict(in EstimationInput) (EstimationResult, error) {
	result, err := s.current().Predict(in)
	if err != nil {
		return EstimationResult{}, err
	}
	result.Analysis = Analyze(in, result)
	log.Printf("carbon estimation completed: %.2f tCO2/ha/year (confidence %.2f)",
		result.CarbonEstimate, result.Confidence)
	return result, nil
}

// PerformanceMetrics summarizes a training run. When no per-epoch history
// is available only Status is set.
type PerformanceMetrics struct {
	Status    string   `json:"status,omitempty"` // history_not_available sentinel
	FinalLoss *float64 `json:"final_loss,omitempty"`
	FinalMAE  *float64 `json:"final_mae,omitempty"`
	FinalMAPE *float64 `json:"final_mape,omitempty"`
	ValLoss   *float64 `json:"val_loss,omitempty"`
	Epochs    int      `json:"epochs_trained"`
}

// RetrainResult reports the outcome of a retrain call.
type RetrainResult struct {
	Status             string             `json:"status"`
	SamplesUsed        int                `json:"samples_used"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
	LastUpdate         time.Time          `json:"last_update"`
}

// Retrain fits a fresh model on samples, persists it, and swaps it in
// atomically. The previous model keeps serving predictions until the swap.
func (s *EstimationService) Retrain(samples []TrainingSample, cfg TrainConfig) (RetrainResult, error) {
	s.trainMu.Lock()
	defer s.trainMu.Unlock()

	if !s.current().Trained() {
		return RetrainResult{}, ErrModelNotReady
	}

	log.Printf("retraining carbon model with %d samples", len(samples))
	m := NewModel()
	hist, err := m.Train(samples, nil, cfg)
	if err != nil {
		return RetrainResult{}, err
	}
	if err := m.Save(s.modelDir); err != nil {
		return RetrainResult{}, err
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.model = m
	s.lastUpdate = &now
	s.bootstrapped = false
	s.mu.Unlock()

	log.Print("carbon model retraining completed")
	return RetrainResult{
		Status:             "success",
		SamplesUsed:        len(samples),
		PerformanceMetrics: metricsFromHistory(hist),
		LastUpdate:         now,
	}, nil
}

func metricsFromHistory(hist *History) PerformanceMetrics {
	if hist.Epochs() == 0 {
		return PerformanceMetrics{Status: "history_not_available"}
	}
	last := hist.Epochs() - 1
	pm := PerformanceMetrics{
		FinalLoss: f64ptr(hist.Loss[last]),
		FinalMAE:  f64ptr(hist.MAE[last]),
		FinalMAPE: f64ptr(hist.MAPE[last]),
		Epochs:    hist.Epochs(),
	}
	if len(hist.ValLoss) > 0 {
		pm.ValLoss = f64ptr(hist.ValLoss[len(hist.ValLoss)-1])
	}
	return pm
}

func f64ptr(v float64) *float64 { return &v }

// ValidationReport is the model's error profile over labeled samples.
type ValidationReport struct {
	Samples int     `json:"samples"`
	MAE     float64 `json:"mae"`
	MAPE    float64 `json:"mape"`
	RMSE    float64 `json:"rmse"`
}

// Validate scores the current model against labeled samples without
// touching its weights.
func (s *EstimationService) Validate(samples []TrainingSample) (ValidationReport, error) {
	if len(samples) == 0 {
		return ValidationReport{}, fmt.Errorf("%w: no validation samples", ErrBadData)
	}
	m := s.current()

	var mae, mape, sse float64
	for _, sample := range samples {
		res, err := m.Predict(sample.EstimationInput)
		if err != nil {
			return ValidationReport{}, err
		}
		d := res.CarbonEstimate - sample.CarbonEstimate
		mae += math.Abs(d)
		mape += math.Abs(d) / math.Max(math.Abs(sample.CarbonEstimate), 1e-7)
		sse += d * d
	}
	n := float64(len(samples))
	return ValidationReport{
		Samples: len(samples),
		MAE:     mae / n,
		MAPE:    mape / n * 100,
		RMSE:    math.Sqrt(sse / n),
	}, nil
}

// HealthStatus reports service liveness and model state.
type HealthStatus struct {
	Status         string     `json:"status"`
	ModelLoaded    bool       `json:"model_loaded"`
	ModelPath      string     `json:"model_path"`
	BootstrapModel bool       `json:"bootstrap_model"`
	LastUpdate     *time.Time `json:"last_update,omitempty"`
	ModelInfo      *ModelInfo `json:"model_info,omitempty"`
}

// Health never fails; an unloaded model is reported, not raised.
func (s *EstimationService) Health() HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := s.model.Describe()
	return HealthStatus{
		Status:         "healthy",
		ModelLoaded:    s.model.Trained(),
		ModelPath:      s.modelDir,
		BootstrapModel: s.bootstrapped,
		LastUpdate:     s.lastUpdate,
		ModelInfo:      &info,
	}
}

// Describe exposes the live model's metadata.
func (s *EstimationService) Describe() ModelInfo {
	return s.current().Describe()
}
