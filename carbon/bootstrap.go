package carbon

import (
	"math"
	"math/rand"
)

// BootstrapSamplesPerEcosystem is how many synthetic samples are drawn for
// each ecosystem type when no persisted model exists.
const BootstrapSamplesPerEcosystem = 250

// ecosystemCarbonBaseline is the mean synthetic carbon value per ecosystem
// type, in tCO2/ha/yr.
var ecosystemCarbonBaseline = map[Ecosystem]float64{
	EcosystemMangrove:   12.0,
	EcosystemSaltmarsh:  8.0,
	EcosystemSeagrass:   6.0,
	EcosystemTidalMarsh: 7.0,
}

// SyntheticTrainingData draws a labeled bootstrap dataset: every feature is
// sampled from an independent Gaussian around a realistic value, and each
// carbon label is the ecosystem baseline plus N(0, 2) noise, clamped
// non-negative. The resulting model is an explicit placeholder, not a
// production-quality one.
func SyntheticTrainingData(seed int64) []TrainingSample {
	rng := rand.New(rand.NewSource(seed))
	ecosystems := []Ecosystem{
		EcosystemMangrove, EcosystemSaltmarsh, EcosystemSeagrass, EcosystemTidalMarsh,
	}

	samples := make([]TrainingSample, 0, len(ecosystems)*BootstrapSamplesPerEcosystem)
	for _, eco := range ecosystems {
		for i := 0; i < BootstrapSamplesPerEcosystem; i++ {
			samples = append(samples, syntheticSample(rng, eco))
		}
	}
	return samples
}

func syntheticSample(rng *rand.Rand, eco Ecosystem) TrainingSample {
	norm := func(mean, std float64) *float64 {
		v := rng.NormFloat64()*std + mean
		return &v
	}
	area := rng.Float64()*99 + 1 // uniform 1..100 ha

	return TrainingSample{
		EstimationInput: EstimationInput{
			Satellite: &SatelliteInputs{
				NDVI: norm(0.6, 0.2),
				EVI:  norm(0.4, 0.15),
				SAVI: norm(0.5, 0.18),
				NDWI: norm(0.3, 0.2),
			},
			Sensor: &SensorInputs{
				Temperature:   norm(25, 5),
				Humidity:      norm(75, 10),
				SoilMoisture:  norm(0.6, 0.2),
				Salinity:      norm(35, 5),
				PH:            norm(7.5, 0.5),
				OrganicMatter: norm(3, 1),
			},
			Field: &FieldInputs{
				BiomassDensity: norm(15, 5),
				CanopyHeight:   norm(8, 3),
			},
			Project: &ProjectInputs{
				AreaHectares:  &area,
				EcosystemType: eco,
			},
		},
		CarbonEstimate: math.Max(0, ecosystemCarbonBaseline[eco]+rng.NormFloat64()*2),
	}
}
