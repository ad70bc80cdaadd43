package carbon

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServicePredictBeforeEnsureModel(t *testing.T) {
	s := NewEstimationService(t.TempDir())
	_, err := s.Predict(EstimationInput{})
	require.ErrorIs(t, err, ErrModelNotReady)
	assert.Equal(t, "not_loaded", s.Describe().Status)
}

func TestServiceBootstrap(t *testing.T) {
	dir := t.TempDir()
	s := NewEstimationService(dir)
	require.NoError(t, s.EnsureModel())

	health := s.Health()
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.ModelLoaded)
	assert.True(t, health.BootstrapModel)
	assert.Nil(t, health.LastUpdate)
	require.NotNil(t, health.ModelInfo)
	assert.Equal(t, "loaded", health.ModelInfo.Status)

	info := s.Describe()
	assert.Equal(t, "loaded", info.Status)
	assert.Equal(t, NumFeatures, info.InputShape)
	assert.Equal(t, FeatureColumns, info.FeatureColumns)

	// Bootstrap persisted the artifact; a fresh service loads it instead
	// of retraining, and a loaded artifact is not flagged as bootstrap.
	assert.True(t, ArtifactExists(dir))
	s2 := NewEstimationService(dir)
	require.NoError(t, s2.EnsureModel())
	assert.False(t, s2.Health().BootstrapModel)
}

func TestServicePredictAttachesAnalysis(t *testing.T) {
	s := NewEstimationService(t.TempDir())
	require.NoError(t, s.EnsureModel())

	res, err := s.Predict(EstimationInput{
		Project: &ProjectInputs{EcosystemType: EcosystemMangrove},
	})
	require.NoError(t, err)

	// Bootstrap data centers mangrove labels on 12.0; an all-defaults
	// mangrove prediction should land in that neighborhood.
	assert.Greater(t, res.CarbonEstimate, 5.0)
	assert.Less(t, res.CarbonEstimate, 18.0)
	assert.GreaterOrEqual(t, res.Confidence, 0.5)
	assert.LessOrEqual(t, res.Confidence, 0.95)

	require.NotNil(t, res.Analysis)
	assert.Contains(t, res.Analysis.DataQuality.Issues, "No sensor data provided")
	assert.NotEmpty(t, res.Analysis.Recommendations)
}

func TestServiceRetrain(t *testing.T) {
	s := NewEstimationService(t.TempDir())
	require.NoError(t, s.EnsureModel())

	result, err := s.Retrain(linearSamples(200, 11), TrainConfig{Seed: 11})
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 200, result.SamplesUsed)
	assert.NotZero(t, result.PerformanceMetrics.Epochs)
	require.NotNil(t, result.PerformanceMetrics.FinalLoss)
	require.NotNil(t, result.PerformanceMetrics.FinalMAE)
	assert.Empty(t, result.PerformanceMetrics.Status)

	health := s.Health()
	assert.False(t, health.BootstrapModel)
	require.NotNil(t, health.LastUpdate)

	// The swapped-in model should now track the new relation.
	res, err := s.Predict(labeledSample(20, 0).EstimationInput)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, res.CarbonEstimate, 1.5)
}

func TestServiceRetrainBeforeModel(t *testing.T) {
	s := NewEstimationService(t.TempDir())
	_, err := s.Retrain(linearSamples(10, 12), TrainConfig{})
	require.ErrorIs(t, err, ErrModelNotReady)
}

func TestServiceRetrainBadDataKeepsModel(t *testing.T) {
	s := NewEstimationService(t.TempDir())
	require.NoError(t, s.EnsureModel())

	_, err := s.Retrain([]TrainingSample{labeledSample(1, 1)}, TrainConfig{})
	require.ErrorIs(t, err, ErrBadData)

	// Previous model still serves.
	_, err = s.Predict(EstimationInput{})
	require.NoError(t, err)
}

func TestServiceValidate(t *testing.T) {
	s := NewEstimationService(t.TempDir())
	require.NoError(t, s.EnsureModel())

	_, err := s.Retrain(linearSamples(200, 13), TrainConfig{Seed: 13})
	require.NoError(t, err)

	report, err := s.Validate(linearSamples(50, 14))
	require.NoError(t, err)
	assert.Equal(t, 50, report.Samples)
	assert.Less(t, report.MAE, 1.0)
	assert.Greater(t, report.RMSE, 0.0)

	_, err = s.Validate(nil)
	require.ErrorIs(t, err, ErrBadData)
}

func TestServiceConcurrentPredictDuringRetrain(t *testing.T) {
	s := NewEstimationService(t.TempDir())
	require.NoError(t, s.EnsureModel())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				res, err := s.Predict(EstimationInput{})
				if !assert.NoError(t, err) {
					return
				}
				assert.GreaterOrEqual(t, res.Confidence, 0.5)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.Retrain(linearSamples(100, 15), TrainConfig{Seed: 15})
		assert.NoError(t, err)
	}()
	wg.Wait()
}
