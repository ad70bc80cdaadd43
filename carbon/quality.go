package carbon

// Analysis enriches an estimation result with a qualitative read of the
// prediction and its inputs.
type Analysis struct {
	ConfidenceLevel string      `json:"confidence_level"` // high | medium | low
	DataQuality     DataQuality `json:"data_quality"`
	Recommendations []string    `json:"recommendations"`
}

// DataQuality scores the completeness of the optional input groups.
type DataQuality struct {
	Score  float64  `json:"score"` // 0-100
	Level  string   `json:"level"` // high | medium | low
	Issues []string `json:"issues"`
}

// AssessDataQuality awards one point per present sub-field across the
// optional input groups (satellite fields worth up to 4, sensor up to 3,
// field measurements up to 2) and normalizes against the points available
// from the groups that were supplied at all. Entirely absent groups add an
// issue instead of lowering the denominator. Never fails.
func AssessDataQuality(in EstimationInput) DataQuality {
	score, max := 0, 0
	issues := []string{}

	if sat := in.Satellite; sat != nil {
		max += 4
		for _, f := range []*float64{sat.NDVI, sat.EVI, sat.SAVI, sat.NDWI} {
			if f != nil {
				score++
			}
		}
	} else {
		issues = append(issues, "No satellite data provided")
	}

	if sen := in.Sensor; sen != nil {
		max += 3
		for _, f := range []*float64{sen.Temperature, sen.SoilMoisture, sen.Salinity} {
			if f != nil {
				score++
			}
		}
	} else {
		issues = append(issues, "No sensor data provided")
	}

	if fld := in.Field; fld != nil {
		max += 2
		for _, f := range []*float64{fld.BiomassDensity, fld.CanopyHeight} {
			if f != nil {
				score++
			}
		}
	} else {
		issues = append(issues, "No field measurements provided")
	}

	pct := 0.0
	if max > 0 {
		pct = float64(score) / float64(max) * 100
	}
	return DataQuality{Score: pct, Level: qualityLevel(pct), Issues: issues}
}

func qualityLevel(pct float64) string {
	switch {
	case pct > 80:
		return "high"
	case pct > 60:
		return "medium"
	default:
		return "low"
	}
}

func confidenceLevel(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "high"
	case confidence > 0.6:
		return "medium"
	default:
		return "low"
	}
}

// Recommendations derives advisory strings from the input and result.
// The append order is fixed (completeness, confidence, ecosystem note,
// small-area caveat) so output is deterministic.
func Recommendations(in EstimationInput, quality DataQuality, result EstimationResult) []string {
	recs := []string{}

	if quality.Score < 60 {
		recs = append(recs, "Consider collecting more comprehensive data to improve prediction accuracy")
	}
	if result.Confidence < 0.7 {
		recs = append(recs, "Prediction confidence is low. Consider additional field measurements")
	}

	var ecosystem Ecosystem
	areaHectares := 0.0
	if in.Project != nil {
		ecosystem = in.Project.EcosystemType
		if in.Project.AreaHectares != nil {
			areaHectares = *in.Project.AreaHectares
		}
	}
	switch ecosystem {
	case EcosystemMangrove:
		recs = append(recs, "Mangrove ecosystems typically have high carbon sequestration potential")
	case EcosystemSeagrass:
		recs = append(recs, "Seagrass meadows are important carbon sinks but require careful monitoring")
	}
	if areaHectares < 1 {
		recs = append(recs, "Small project areas may have higher uncertainty in carbon estimates")
	}
	return recs
}

// Analyze composes the full analysis block for a result.
func Analyze(in EstimationInput, result EstimationResult) *Analysis {
	quality := AssessDataQuality(in)
	return &Analysis{
		ConfidenceLevel: confidenceLevel(result.Confidence),
		DataQuality:     quality,
		Recommendations: Recommendations(in, quality, result),
	}
}
