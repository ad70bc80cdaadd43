package carbon

// Ecosystem is the closed set of blue carbon ecosystem types.
type Ecosystem string

const (
	EcosystemMangrove   Ecosystem = "mangrove"
	EcosystemSaltmarsh  Ecosystem = "saltmarsh"
	EcosystemSeagrass   Ecosystem = "seagrass"
	EcosystemTidalMarsh Ecosystem = "tidal_marsh"
)

// EcosystemEncoding maps ecosystem types to their stable integer encoding.
// The encoding is part of the persisted model artifact; changing it
// invalidates trained weights.
var EcosystemEncoding = map[Ecosystem]int{
	EcosystemMangrove:   0,
	EcosystemSaltmarsh:  1,
	EcosystemSeagrass:   2,
	EcosystemTidalMarsh: 3,
}

// Encode returns the integer encoding for e. Unknown or empty values
// deliberately degrade to the mangrove encoding.
func (e Ecosystem) Encode() int {
	if v, ok := EcosystemEncoding[e]; ok {
		return v
	}
	return EcosystemEncoding[EcosystemMangrove]
}

// FeatureColumns is the fixed feature order the model is trained on.
// Regression weights are positional, so this order is an invariant; the
// artifact loader rejects any artifact recorded with a different order.
var FeatureColumns = []string{
	"ndvi", "evi", "savi", "ndwi",
	"temperature", "humidity", "soil_moisture",
	"salinity", "ph", "organic_matter",
	"biomass_density", "canopy_height",
	"area_hectares", "ecosystem_type_encoded",
}

// NumFeatures is the length of the assembled feature vector.
const NumFeatures = 14

// SatelliteInputs carries area-mean vegetation indices from the imagery
// collaborator. Nil fields fall back to 0.0.
type SatelliteInputs struct {
	NDVI *float64 `json:"ndvi,omitempty"`
	EVI  *float64 `json:"evi,omitempty"`
	SAVI *float64 `json:"savi,omitempty"`
	NDWI *float64 `json:"ndwi,omitempty"`
	GCI  *float64 `json:"gci,omitempty"` // reported only, not a model feature
}

// SensorInputs carries IoT sensor readings.
type SensorInputs struct {
	Temperature   *float64 `json:"temperature,omitempty"`    // °C, default 25.0
	Humidity      *float64 `json:"humidity,omitempty"`       // %, default 70.0
	SoilMoisture  *float64 `json:"soil_moisture,omitempty"`  // 0-1, default 0.5
	Salinity      *float64 `json:"salinity,omitempty"`       // ppt, default 35.0
	PH            *float64 `json:"ph,omitempty"`             // default 7.0
	OrganicMatter *float64 `json:"organic_matter,omitempty"` // %, default 2.0
}

// FieldInputs carries on-site field measurements. StemDensity and
// LeafAreaIndex are accepted for completeness but are not model features.
type FieldInputs struct {
	BiomassDensity *float64 `json:"biomass_density,omitempty"` // kg/m², default 10.0
	CanopyHeight   *float64 `json:"canopy_height,omitempty"`   // m, default 5.0
	StemDensity    *float64 `json:"stem_density,omitempty"`
	LeafAreaIndex  *float64 `json:"leaf_area_index,omitempty"`
}

// ProjectInputs carries project metadata.
type ProjectInputs struct {
	AreaHectares  *float64  `json:"area_hectares,omitempty"` // default 1.0
	EcosystemType Ecosystem `json:"ecosystem_type,omitempty"`
	ProjectID     string    `json:"project_id,omitempty"`
}

// EstimationInput groups the four input categories for one prediction.
// Every group is optional; defaults cover the gaps.
type EstimationInput struct {
	Satellite *SatelliteInputs `json:"satellite_data,omitempty"`
	Sensor    *SensorInputs    `json:"sensor_data,omitempty"`
	Field     *FieldInputs     `json:"field_measurements,omitempty"`
	Project   *ProjectInputs   `json:"project_data,omitempty"`
}

// TrainingSample is an EstimationInput with its ground-truth carbon value
// in tCO2/ha/yr.
type TrainingSample struct {
	EstimationInput
	CarbonEstimate float64 `json:"carbon_estimate"`
}

func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

// AssembleFeatures maps one estimation input to the fixed-order feature
// vector, substituting the documented default for every absent value.
// It is pure: identical inputs always produce the identical vector and
// caller-supplied structs are never mutated.
func AssembleFeatures(in EstimationInput) []float64 {
	sat := in.Satellite
	if sat == nil {
		sat = &SatelliteInputs{}
	}
	sen := in.Sensor
	if sen == nil {
		sen = &SensorInputs{}
	}
	fld := in.Field
	if fld == nil {
		fld = &FieldInputs{}
	}
	prj := in.Project
	if prj == nil {
		prj = &ProjectInputs{}
	}

	return []float64{
		orDefault(sat.NDVI, 0.0),
		orDefault(sat.EVI, 0.0),
		orDefault(sat.SAVI, 0.0),
		orDefault(sat.NDWI, 0.0),
		orDefault(sen.Temperature, 25.0),
		orDefault(sen.Humidity, 70.0),
		orDefault(sen.SoilMoisture, 0.5),
		orDefault(sen.Salinity, 35.0),
		orDefault(sen.PH, 7.0),
		orDefault(sen.OrganicMatter, 2.0),
		orDefault(fld.BiomassDensity, 10.0),
		orDefault(fld.CanopyHeight, 5.0),
		orDefault(prj.AreaHectares, 1.0),
		float64(prj.EcosystemType.Encode()),
	}
}
