package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleFeaturesAllDefaults(t *testing.T) {
	got := AssembleFeatures(EstimationInput{})
	want := []float64{
		0.0, 0.0, 0.0, 0.0, // indices
		25.0, 70.0, 0.5, // temperature, humidity, soil moisture
		35.0, 7.0, 2.0, // salinity, ph, organic matter
		10.0, 5.0, // biomass, canopy
		1.0, 0.0, // area, mangrove encoding
	}
	require.Len(t, got, NumFeatures)
	assert.Equal(t, want, got)
}

func TestAssembleFeaturesDeterministic(t *testing.T) {
	ndvi, temp := 0.65, 28.5
	in := EstimationInput{
		Satellite: &SatelliteInputs{NDVI: &ndvi},
		Sensor:    &SensorInputs{Temperature: &temp},
		Project:   &ProjectInputs{EcosystemType: EcosystemSeagrass},
	}
	first := AssembleFeatures(in)
	second := AssembleFeatures(in)
	assert.Equal(t, first, second)

	assert.Equal(t, 0.65, first[0])
	assert.Equal(t, 28.5, first[4])
	assert.Equal(t, 2.0, first[13])

	// Caller structs must be untouched.
	assert.Equal(t, 0.65, ndvi)
	assert.Equal(t, 28.5, temp)
}

func TestEcosystemEncoding(t *testing.T) {
	assert.Equal(t, 0, EcosystemMangrove.Encode())
	assert.Equal(t, 1, EcosystemSaltmarsh.Encode())
	assert.Equal(t, 2, EcosystemSeagrass.Encode())
	assert.Equal(t, 3, EcosystemTidalMarsh.Encode())
}

func TestUnknownEcosystemDegradesToMangrove(t *testing.T) {
	unknown := AssembleFeatures(EstimationInput{
		Project: &ProjectInputs{EcosystemType: "kelp_forest"},
	})
	mangrove := AssembleFeatures(EstimationInput{
		Project: &ProjectInputs{EcosystemType: EcosystemMangrove},
	})
	assert.Equal(t, mangrove[13], unknown[13])
	assert.Equal(t, Ecosystem("").Encode(), EcosystemMangrove.Encode())
}

func TestFeatureColumnsOrder(t *testing.T) {
	require.Len(t, FeatureColumns, NumFeatures)
	assert.Equal(t, "ndvi", FeatureColumns[0])
	assert.Equal(t, "ecosystem_type_encoded", FeatureColumns[13])
}
