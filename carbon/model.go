package carbon

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"
)

// ModelVersion tags persisted artifacts and every estimation result.
const ModelVersion = "1.0.0"

// MinTrainingSamples is the smallest training set accepted; a single-sample
// regression is degenerate.
const MinTrainingSamples = 2

// TrainConfig tunes the gradient descent fit. The zero value is usable;
// Train fills in defaults.
type TrainConfig struct {
	Epochs          int     // default 300
	LearningRate    float64 // default 0.05
	Patience        int     // early stopping patience, default 20
	LRDecayFactor   float64 // plateau decay multiplier, default 0.5
	LRDecayPatience int     // epochs without improvement before decay, default 10
	MinLearningRate float64 // default 1e-7
	ValidationSplit float64 // internal holdout when no validation set, default 0.2
	Seed            int64   // split shuffle seed; 0 means time-based
}

func (c TrainConfig) withDefaults() TrainConfig {
	if c.Epochs <= 0 {
		c.Epochs = 300
	}
	if c.LearningRate <= 0 {
		c.LearningRate = 0.05
	}
	if c.Patience <= 0 {
		c.Patience = 20
	}
	if c.LRDecayFactor <= 0 || c.LRDecayFactor >= 1 {
		c.LRDecayFactor = 0.5
	}
	if c.LRDecayPatience <= 0 {
		c.LRDecayPatience = 10
	}
	if c.MinLearningRate <= 0 {
		c.MinLearningRate = 1e-7
	}
	if c.ValidationSplit <= 0 || c.ValidationSplit >= 1 {
		c.ValidationSplit = 0.2
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// History records per-epoch training metrics.
type History struct {
	Loss    []float64 // training MSE
	ValLoss []float64 // empty when no validation rows were available
	MAE     []float64
	MAPE    []float64
}

// Epochs returns the number of epochs actually run.
func (h *History) Epochs() int {
	if h == nil {
		return 0
	}
	return len(h.Loss)
}

// EstimationResult is the model's answer for one input.
type EstimationResult struct {
	// CarbonEstimate is reported non-negative; the raw regression output
	// may be negative and is clamped for reporting.
	CarbonEstimate float64   `json:"carbon_estimate_tonnes_co2_per_hectare_per_year"`
	Confidence     float64   `json:"confidence"`
	Timestamp      time.Time `json:"timestamp"`
	ModelVersion   string    `json:"model_version"`
	Analysis       *Analysis `json:"analysis,omitempty"`
}

// Model is the carbon regression model plus its feature-scaling transform.
// A Model starts uninitialized; only a trained or loaded model predicts.
// Model is not safe for concurrent mutation; EstimationService serializes
// training and swaps whole instances.
type Model struct {
	weights   []float64 // one per feature column
	bias      float64
	scaler    *Scaler
	columns   []string
	version   string
	createdAt time.Time
	trained   bool
}

// NewModel returns an uninitialized model.
func NewModel() *Model {
	return &Model{columns: append([]string(nil), FeatureColumns...)}
}

// Trained reports whether the model can predict.
func (m *Model) Trained() bool { return m.trained }

// Train fits the scaler and regression weights on samples. When validation
// is nil an internal holdout split (cfg.ValidationSplit) is used. On any
// failure the model keeps its prior state.
func (m *Model) Train(samples, validation []TrainingSample, cfg TrainConfig) (*History, error) {
	if len(samples) < MinTrainingSamples {
		return nil, fmt.Errorf("%w: need at least %d samples, got %d",
			ErrBadData, MinTrainingSamples, len(samples))
	}
	cfg = cfg.withDefaults()

	trainRows, trainY := featureMatrix(samples)
	var valRows [][]float64
	var valY []float64

	if validation != nil {
		valRows, valY = featureMatrix(validation)
	} else {
		trainRows, trainY, valRows, valY = holdoutSplit(trainRows, trainY, cfg.ValidationSplit, cfg.Seed)
	}

	// Scaler is fitted on training rows only; validation reuses it.
	scaler := FitScaler(trainRows)
	X := denseFrom(scaler.TransformAll(trainRows))
	y := mat.NewVecDense(len(trainY), trainY)

	var XVal *mat.Dense
	var yVal *mat.VecDense
	if len(valRows) > 0 {
		XVal = denseFrom(scaler.TransformAll(valRows))
		yVal = mat.NewVecDense(len(valY), valY)
	}

	weights, bias, hist, err := descend(X, y, XVal, yVal, cfg)
	if err != nil {
		return nil, err
	}

	m.weights = weights
	m.bias = bias
	m.scaler = scaler
	m.columns = append([]string(nil), FeatureColumns...)
	m.version = ModelVersion
	m.createdAt = time.Now().UTC()
	m.trained = true
	return hist, nil
}

// Predict assembles the feature vector, applies the stored scaling and
// regression, and attaches the heuristic confidence.
func (m *Model) Predict(in EstimationInput) (EstimationResult, error) {
	if !m.trained {
		return EstimationResult{}, ErrModelNotReady
	}
	scaled := m.scaler.Transform(AssembleFeatures(in))

	raw := m.bias
	for j, w := range m.weights {
		raw += w * scaled[j]
	}

	// Heuristic only: monotone-decreasing in estimate magnitude, clamped
	// to [0.5, 0.95]. Not a calibrated uncertainty.
	confidence := math.Min(0.95, math.Max(0.5, 1.0-math.Abs(raw)*0.01))

	return EstimationResult{
		CarbonEstimate: math.Max(0, raw),
		Confidence:     confidence,
		Timestamp:      time.Now().UTC(),
		ModelVersion:   m.version,
	}, nil
}

// ModelInfo describes the loaded artifact for health and info endpoints.
type ModelInfo struct {
	Status         string            `json:"status"` // loaded | not_loaded
	InputShape     int               `json:"input_shape,omitempty"`
	TotalParams    int               `json:"total_params,omitempty"`
	FeatureColumns []string          `json:"feature_columns,omitempty"`
	EcosystemTypes map[Ecosystem]int `json:"ecosystem_types,omitempty"`
	ModelVersion   string            `json:"model_version,omitempty"`
	CreatedAt      *time.Time        `json:"created_at,omitempty"`
}

// Describe reports artifact metadata. It never fails: an untrained model
// reports the not_loaded status.
func (m *Model) Describe() ModelInfo {
	if !m.trained {
		return ModelInfo{Status: "not_loaded"}
	}
	created := m.createdAt
	return ModelInfo{
		Status:         "loaded",
		InputShape:     len(m.weights),
		TotalParams:    len(m.weights) + 1, // weights plus intercept
		FeatureColumns: append([]string(nil), m.columns...),
		EcosystemTypes: EcosystemEncoding,
		ModelVersion:   m.version,
		CreatedAt:      &created,
	}
}

// featureMatrix assembles every sample into feature rows and targets.
func featureMatrix(samples []TrainingSample) ([][]float64, []float64) {
	rows := make([][]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		rows[i] = AssembleFeatures(s.EstimationInput)
		ys[i] = s.CarbonEstimate
	}
	return rows, ys
}

// holdoutSplit shuffles rows and carves off the validation fraction. Tiny
// sets where the fraction rounds to zero keep everything in training.
func holdoutSplit(rows [][]float64, ys []float64, frac float64, seed int64) (tr [][]float64, trY []float64, val [][]float64, valY []float64) {
	n := len(rows)
	valN := int(float64(n) * frac)
	if valN == 0 {
		return rows, ys, nil, nil
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	for i, p := range perm {
		if i < valN {
			val = append(val, rows[p])
			valY = append(valY, ys[p])
		} else {
			tr = append(tr, rows[p])
			trY = append(trY, ys[p])
		}
	}
	return tr, trY, val, valY
}

func denseFrom(rows [][]float64) *mat.Dense {
	n, d := len(rows), len(rows[0])
	X := mat.NewDense(n, d, nil)
	for i, r := range rows {
		X.SetRow(i, r)
	}
	return X
}

// descend runs full-batch gradient descent with early stopping and
// learning-rate decay on plateau, returning the best weights seen.
func descend(X *mat.Dense, y *mat.VecDense, XVal *mat.Dense, yVal *mat.VecDense, cfg TrainConfig) ([]float64, float64, *History, error) {
	n, d := X.Dims()
	w := mat.NewVecDense(d, nil)
	bias := 0.0
	lr := cfg.LearningRate

	hist := &History{}
	best := math.Inf(1)
	bestW := make([]float64, d)
	bestBias := 0.0
	sinceBest := 0
	sinceDecay := 0

	var pred, resid, grad mat.VecDense
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		pred.MulVec(X, w)
		pred.AddScaledVec(&pred, 1, constVec(n, bias))
		resid.SubVec(&pred, y)

		loss, mae, mape := lossMetrics(&resid, y)
		if !isFinite(loss) {
			return nil, 0, nil, fmt.Errorf("%w: non-finite loss at epoch %d", ErrTraining, epoch)
		}
		hist.Loss = append(hist.Loss, loss)
		hist.MAE = append(hist.MAE, mae)
		hist.MAPE = append(hist.MAPE, mape)

		monitored := loss
		if XVal != nil {
			vl := evalLoss(XVal, yVal, w, bias)
			if !isFinite(vl) {
				return nil, 0, nil, fmt.Errorf("%w: non-finite validation loss at epoch %d", ErrTraining, epoch)
			}
			hist.ValLoss = append(hist.ValLoss, vl)
			monitored = vl
		}

		if monitored < best {
			best = monitored
			copy(bestW, w.RawVector().Data)
			bestBias = bias
			sinceBest, sinceDecay = 0, 0
		} else {
			sinceBest++
			sinceDecay++
			if sinceBest >= cfg.Patience {
				break
			}
			if sinceDecay >= cfg.LRDecayPatience {
				lr = math.Max(lr*cfg.LRDecayFactor, cfg.MinLearningRate)
				sinceDecay = 0
			}
		}

		// grad_w = 2/n * X^T resid, grad_b = 2/n * sum(resid)
		grad.MulVec(X.T(), &resid)
		w.AddScaledVec(w, -2*lr/float64(n), &grad)
		bias -= 2 * lr / float64(n) * mat.Sum(&resid)
	}

	return bestW, bestBias, hist, nil
}

func constVec(n int, v float64) *mat.VecDense {
	data := make([]float64, n)
	for i := range data {
		data[i] = v
	}
	return mat.NewVecDense(n, data)
}

func evalLoss(X *mat.Dense, y *mat.VecDense, w *mat.VecDense, bias float64) float64 {
	n, _ := X.Dims()
	var pred, resid mat.VecDense
	pred.MulVec(X, w)
	pred.AddScaledVec(&pred, 1, constVec(n, bias))
	resid.SubVec(&pred, y)
	loss, _, _ := lossMetrics(&resid, y)
	return loss
}

// lossMetrics computes MSE, MAE, and MAPE from residuals. MAPE guards the
// denominator against near-zero targets.
func lossMetrics(resid, y *mat.VecDense) (mse, mae, mape float64) {
	n := resid.Len()
	for i := 0; i < n; i++ {
		r := resid.AtVec(i)
		mse += r * r
		mae += math.Abs(r)
		mape += math.Abs(r) / math.Max(math.Abs(y.AtVec(i)), 1e-7)
	}
	fn := float64(n)
	return mse / fn, mae / fn, mape / fn * 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
