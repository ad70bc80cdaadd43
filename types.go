package main

import (
	"encoding/json"

	"github.com/Rohitdare/carbon/carbon"
	"github.com/Rohitdare/carbon/indices"
)

// Request/response DTOs. Keep them minimal and explicit.

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// estimateReq carries the four optional input groups plus an optional scene
// request; when satellite_scene is set and no explicit indices were given,
// the imagery collaborator is queried first.
type estimateReq struct {
	SatelliteScene *sceneReq               `json:"satellite_scene,omitempty"`
	SatelliteData  *carbon.SatelliteInputs `json:"satellite_data,omitempty"`
	SensorData     *carbon.SensorInputs    `json:"sensor_data,omitempty"`
	FieldData      *carbon.FieldInputs     `json:"field_measurements,omitempty"`
	ProjectData    *carbon.ProjectInputs   `json:"project_data,omitempty"`
}

func (r estimateReq) input() carbon.EstimationInput {
	return carbon.EstimationInput{
		Satellite: r.SatelliteData,
		Sensor:    r.SensorData,
		Field:     r.FieldData,
		Project:   r.ProjectData,
	}
}

type estimateResp struct {
	carbon.EstimationResult
	SatelliteData   map[string]float64 `json:"satellite_data,omitempty"`
	Recommendations []string           `json:"recommendations"`
}

type batchEstimateResp struct {
	TotalRequests int               `json:"total_requests"`
	Successful    int               `json:"successful"`
	Failed        int               `json:"failed"`
	Results       []batchItemResult `json:"results"`
}

type batchItemResult struct {
	ProjectID string        `json:"project_id,omitempty"`
	Status    string        `json:"status"` // success | error
	Result    *estimateResp `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
}

type retrainReq struct {
	TrainingData    []carbon.TrainingSample `json:"training_data"`
	ValidationSplit float64                 `json:"validation_split,omitempty"`
	Epochs          int                     `json:"epochs,omitempty"`
}

type validateReq struct {
	ValidationData []carbon.TrainingSample `json:"validation_data"`
}

// sceneReq is the payload forwarded to the imagery collaborator.
type sceneReq struct {
	Geometry            json.RawMessage `json:"geometry"` // GeoJSON
	StartDate           string          `json:"start_date"`
	EndDate             string          `json:"end_date"`
	CloudCoverThreshold float64         `json:"cloud_cover_threshold,omitempty"`
}

type bandsReq struct {
	Bands map[string]indices.Grid `json:"bands"`
}

// trendsReq is a time-ordered series of area-mean index values.
type trendsReq struct {
	Series []map[string]float64 `json:"series"`
}

type trendsResp struct {
	Trends     map[string]indices.Trend `json:"trends"`
	DataPoints int                      `json:"data_points"`
}
