package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestAssessDataQualityFull(t *testing.T) {
	q := AssessDataQuality(EstimationInput{
		Satellite: &SatelliteInputs{NDVI: f(0.6), EVI: f(0.4), SAVI: f(0.5), NDWI: f(0.3)},
		Sensor:    &SensorInputs{Temperature: f(25), SoilMoisture: f(0.6), Salinity: f(35)},
		Field:     &FieldInputs{BiomassDensity: f(15), CanopyHeight: f(8)},
	})
	assert.InDelta(t, 100.0, q.Score, 1e-9)
	assert.Equal(t, "high", q.Level)
	assert.Empty(t, q.Issues)
}

func TestAssessDataQualityMissingSensorGroup(t *testing.T) {
	q := AssessDataQuality(EstimationInput{
		Satellite: &SatelliteInputs{NDVI: f(0.6), EVI: f(0.4), SAVI: f(0.5), NDWI: f(0.3)},
		Field:     &FieldInputs{BiomassDensity: f(15), CanopyHeight: f(8)},
	})
	// 6 of 6 available points: absent groups lower coverage via issues,
	// not the denominator.
	assert.InDelta(t, 100.0, q.Score, 1e-9)
	assert.Contains(t, q.Issues, "No sensor data provided")
	assert.NotContains(t, q.Issues, "No satellite data provided")
}

func TestAssessDataQualityPartialFields(t *testing.T) {
	q := AssessDataQuality(EstimationInput{
		Satellite: &SatelliteInputs{NDVI: f(0.6)},        // 1 of 4
		Sensor:    &SensorInputs{Temperature: f(25)},     // 1 of 3
		Field:     &FieldInputs{BiomassDensity: f(15)},   // 1 of 2
	})
	assert.InDelta(t, 100.0*3/9, q.Score, 1e-9)
	assert.Equal(t, "low", q.Level)
}

func TestAssessDataQualityAllAbsent(t *testing.T) {
	q := AssessDataQuality(EstimationInput{})
	assert.Zero(t, q.Score)
	assert.Equal(t, "low", q.Level)
	assert.Equal(t, []string{
		"No satellite data provided",
		"No sensor data provided",
		"No field measurements provided",
	}, q.Issues)
}

func TestQualityLevels(t *testing.T) {
	assert.Equal(t, "high", qualityLevel(81))
	assert.Equal(t, "medium", qualityLevel(80))
	assert.Equal(t, "medium", qualityLevel(61))
	assert.Equal(t, "low", qualityLevel(60))
}

func TestRecommendationOrder(t *testing.T) {
	// Low-quality, low-confidence mangrove input under one hectare
	// triggers all four recommendations, in the fixed precedence order.
	area := 0.5
	in := EstimationInput{
		Project: &ProjectInputs{EcosystemType: EcosystemMangrove, AreaHectares: &area},
	}
	quality := DataQuality{Score: 40}
	result := EstimationResult{Confidence: 0.55}

	recs := Recommendations(in, quality, result)
	require.Len(t, recs, 4)
	assert.Contains(t, recs[0], "comprehensive data")
	assert.Contains(t, recs[1], "confidence is low")
	assert.Contains(t, recs[2], "Mangrove")
	assert.Contains(t, recs[3], "Small project areas")
}

func TestRecommendationsSeagrass(t *testing.T) {
	area := 5.0
	in := EstimationInput{
		Project: &ProjectInputs{EcosystemType: EcosystemSeagrass, AreaHectares: &area},
	}
	recs := Recommendations(in, DataQuality{Score: 90}, EstimationResult{Confidence: 0.9})
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "Seagrass")
}

func TestAnalyzeComposition(t *testing.T) {
	a := Analyze(EstimationInput{}, EstimationResult{Confidence: 0.85})
	require.NotNil(t, a)
	assert.Equal(t, "high", a.ConfidenceLevel)
	assert.Len(t, a.DataQuality.Issues, 3)
	assert.NotEmpty(t, a.Recommendations)
}
