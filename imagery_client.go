// file: imagery_client.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Rohitdare/carbon/carbon"
)

// ImageryClient talks to the satellite imagery collaborator, which queries
// a remote imagery catalog and returns pre-reduced band statistics and
// area-mean vegetation indices for a geometry.
type ImageryClient struct {
	baseURL string
	client  *http.Client
}

func NewImageryClient(baseURL string) *ImageryClient {
	if baseURL == "" || baseURL == "local" {
		baseURL = "http://127.0.0.1:8000"
	}
	return &ImageryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 25 * time.Second},
	}
}

// Scene is the collaborator's answer for one scene query.
type Scene struct {
	ImageID           string             `json:"image_id"`
	AcquisitionDate   string             `json:"acquisition_date"`
	CloudCover        float64            `json:"cloud_cover"`
	VegetationIndices map[string]float64 `json:"vegetation_indices"`
	ProcessedAt       string             `json:"processed_at,omitempty"`
}

// knownIndices restricts collaborator payloads to the index names the
// pipeline understands.
var knownIndices = map[string]bool{
	"ndvi": true, "evi": true, "savi": true, "ndwi": true, "gci": true,
}

// RetrieveScene calls POST {baseURL}/satellite/retrieve with the scene
// query and filters the returned index mapping to known index names.
func (c *ImageryClient) RetrieveScene(ctx context.Context, in sceneReq) (*Scene, error) {
	// Defensive: basic validation
	if len(in.Geometry) == 0 {
		return nil, fmt.Errorf("empty geometry")
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal imagery req: %w", err)
	}

	url := c.baseURL + "/satellite/retrieve"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagery call failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("imagery non-2xx: %s, body: %s", resp.Status, string(data))
	}

	var out Scene
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode imagery resp: %w", err)
	}
	for k := range out.VegetationIndices {
		if !knownIndices[k] {
			delete(out.VegetationIndices, k)
		}
	}
	return &out, nil
}

// Health pings the collaborator's health endpoint.
func (c *ImageryClient) Health(ctx context.Context) map[string]any {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return map[string]any{"status": "unhealthy", "error": err.Error()}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return map[string]any{"status": "unreachable", "error": err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return map[string]any{"status": "unhealthy", "http_status": resp.StatusCode}
	}
	return map[string]any{"status": "healthy", "base_url": c.baseURL}
}

// satelliteInputs converts a scene's index mapping into the typed satellite
// input group. Missing indices stay nil so assembler defaults apply.
func (s *Scene) satelliteInputs() *carbon.SatelliteInputs {
	get := func(name string) *float64 {
		if v, ok := s.VegetationIndices[name]; ok {
			vv := v
			return &vv
		}
		return nil
	}
	return &carbon.SatelliteInputs{
		NDVI: get("ndvi"),
		EVI:  get("evi"),
		SAVI: get("savi"),
		NDWI: get("ndwi"),
		GCI:  get("gci"),
	}
}
